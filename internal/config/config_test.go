package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	if c.Site.Listen != ":8080" {
		t.Errorf("listen default = %q", c.Site.Listen)
	}
	if c.Site.DefaultLanguage != "en" {
		t.Errorf("language default = %q", c.Site.DefaultLanguage)
	}
	if c.Research.SpeciesMax != 1008 {
		t.Errorf("species_max default = %d", c.Research.SpeciesMax)
	}
	if c.Webhooks.FanOut != 4 {
		t.Errorf("fan_out default = %d", c.Webhooks.FanOut)
	}
	if _, ok := c.Nav.Providers["google"]; !ok {
		t.Error("google nav provider missing from defaults")
	}
	if c.Telegram.APIBase != "https://api.telegram.org" {
		t.Errorf("telegram api base default = %q", c.Telegram.APIBase)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freefield.yml")
	data := `
site:
  base_url: https://map.example.org
  listen: ":9000"
research:
  species_max: 500
webhooks:
  file: hooks.yml
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Site.BaseURL != "https://map.example.org" {
		t.Errorf("base_url = %q", c.Site.BaseURL)
	}
	if c.Site.Listen != ":9000" {
		t.Errorf("listen = %q", c.Site.Listen)
	}
	if c.Research.SpeciesMax != 500 {
		t.Errorf("species_max = %d", c.Research.SpeciesMax)
	}
	if c.Webhooks.File != "hooks.yml" {
		t.Errorf("webhooks file = %q", c.Webhooks.File)
	}
	// Unset fields still pick up defaults.
	if c.Site.DefaultLanguage != "en" {
		t.Errorf("language = %q", c.Site.DefaultLanguage)
	}
}

func TestSecretKeyEnvOverride(t *testing.T) {
	t.Setenv("FREEFIELD_SECRET_KEY", "deadbeef")
	c := Config{Security: SecurityConfig{SecretKey: "from-file"}}
	c.ApplyDefaults()
	if c.Security.SecretKey != "deadbeef" {
		t.Errorf("env key should win, got %q", c.Security.SecretKey)
	}
}
