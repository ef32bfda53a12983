package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Site     SiteConfig     `yaml:"site" json:"site"`
	Data     DataConfig     `yaml:"data" json:"data"`
	Research ResearchConfig `yaml:"research" json:"research"`
	Icons    IconsConfig    `yaml:"icons" json:"icons"`
	Nav      NavConfig      `yaml:"nav" json:"nav"`
	Webhooks WebhooksConfig `yaml:"webhooks" json:"webhooks"`
	Telegram TelegramConfig `yaml:"telegram" json:"telegram"`
	Security SecurityConfig `yaml:"security" json:"security"`
}

type SiteConfig struct {
	// BaseURL is the public URL of this installation, without a trailing slash.
	BaseURL         string `yaml:"base_url" json:"base_url"`
	Listen          string `yaml:"listen" json:"listen"`
	DefaultLanguage string `yaml:"default_language" json:"default_language"`
}

type DataConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

type ResearchConfig struct {
	// SpeciesMax is the highest species number reports may reference.
	SpeciesMax int `yaml:"species_max" json:"species_max"`
}

type IconsConfig struct {
	DefaultSet string             `yaml:"default_set" json:"default_set"`
	Sets       map[string]IconSet `yaml:"sets" json:"sets"`
}

// IconSet describes where a theme's icons live. URLs are built as
// <base_url>/<variant>/<label>.<ext>; Raster is empty for vector-only sets.
type IconSet struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	Vector  string `yaml:"vector" json:"vector"`
	Raster  string `yaml:"raster" json:"raster"`
}

type NavConfig struct {
	DefaultProvider string            `yaml:"default_provider" json:"default_provider"`
	Providers       map[string]string `yaml:"providers" json:"providers"`
}

type WebhooksConfig struct {
	File      string `yaml:"file" json:"file"`
	FanOut    int    `yaml:"fan_out" json:"fan_out"`
	TimeoutS  int    `yaml:"timeout_s" json:"timeout_s"`
	Geofences string `yaml:"geofences" json:"geofences"`
}

type TelegramConfig struct {
	APIBase       string  `yaml:"api_base" json:"api_base"`
	RatePerSecond float64 `yaml:"rate_per_second" json:"rate_per_second"`
}

type SecurityConfig struct {
	// SecretKey is the hex-encoded AES key used for secrets at rest.
	// FREEFIELD_SECRET_KEY overrides it so the key can stay out of the file.
	SecretKey string `yaml:"secret_key" json:"secret_key"`
}

func (c *Config) ApplyDefaults() {
	if c.Site.Listen == "" {
		c.Site.Listen = ":8080"
	}
	if c.Site.DefaultLanguage == "" {
		c.Site.DefaultLanguage = "en"
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Research.SpeciesMax == 0 {
		c.Research.SpeciesMax = 1008
	}
	if c.Icons.DefaultSet == "" {
		c.Icons.DefaultSet = "default"
	}
	if c.Nav.DefaultProvider == "" {
		c.Nav.DefaultProvider = "google"
	}
	if c.Nav.Providers == nil {
		c.Nav.Providers = map[string]string{
			"google": "https://www.google.com/maps/search/?api=1&query={lat},{lon}",
			"apple":  "https://maps.apple.com/?q={name}&ll={lat},{lon}",
			"osm":    "https://www.openstreetmap.org/?mlat={lat}&mlon={lon}",
			"waze":   "https://waze.com/ul?ll={lat},{lon}",
		}
	}
	if c.Webhooks.File == "" {
		c.Webhooks.File = "webhooks.yml"
	}
	if c.Webhooks.FanOut == 0 {
		c.Webhooks.FanOut = 4
	}
	if c.Webhooks.TimeoutS == 0 {
		c.Webhooks.TimeoutS = 10
	}
	if c.Telegram.APIBase == "" {
		c.Telegram.APIBase = "https://api.telegram.org"
	}
	if c.Telegram.RatePerSecond == 0 {
		c.Telegram.RatePerSecond = 1
	}
	if key := os.Getenv("FREEFIELD_SECRET_KEY"); key != "" {
		c.Security.SecretKey = key
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}
