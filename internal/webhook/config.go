package webhook

import (
	"context"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stevear22/FreeField/internal/taxonomy"
)

// SinkKind selects the delivery mechanism for a webhook.
type SinkKind string

const (
	SinkJSON     SinkKind = "json"
	SinkTelegram SinkKind = "telegram"
)

// FilterMode says whether matching a filter set keeps or drops an event.
type FilterMode string

const (
	ModeWhitelist FilterMode = "whitelist"
	ModeBlacklist FilterMode = "blacklist"
)

// FilterSet is an ordered list of partial instances plus the mode they
// apply in. An empty list matches everything regardless of mode.
type FilterSet struct {
	Mode    FilterMode          `yaml:"mode" json:"mode"`
	Filters []taxonomy.Instance `yaml:"filters" json:"filters"`
}

// TelegramOptions carries the Telegram-specific sink settings. BotToken is
// ciphertext; it is decrypted immediately before each send and never
// retained.
type TelegramOptions struct {
	BotToken           string `yaml:"bot_token" json:"bot_token"`
	DisableNotification bool   `yaml:"disable_notification" json:"disable_notification"`
	DisableLinkPreview  bool   `yaml:"disable_link_preview" json:"disable_link_preview"`
	ParseMode           string `yaml:"parse_mode" json:"parse_mode"`
}

// Config is one outbound webhook as the administrator authored it.
type Config struct {
	ID         string          `yaml:"id" json:"id"`
	Active     bool            `yaml:"active" json:"active"`
	Kind       SinkKind        `yaml:"type" json:"type"`
	Target     string          `yaml:"target" json:"target"`
	Language   string          `yaml:"language" json:"language"`
	IconSet    string          `yaml:"icon_set" json:"icon_set"`
	Geofence   string          `yaml:"geofence" json:"geofence"`
	Objectives FilterSet       `yaml:"objectives" json:"objectives"`
	Rewards    FilterSet       `yaml:"rewards" json:"rewards"`
	Body       string          `yaml:"body" json:"body"`
	Telegram   TelegramOptions `yaml:"telegram" json:"telegram"`
}

// Repo lists the configured webhooks. Implementations load fresh on every
// call; the dispatch engine never caches configs across events.
type Repo interface {
	List(ctx context.Context) ([]Config, error)
}

// FileRepo reads webhook configs from a yaml file on each List, so admin
// edits take effect on the next event without a restart.
type FileRepo struct {
	path string
}

func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

func (r *FileRepo) List(_ context.Context) ([]Config, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var configs []Config
	if err := yaml.Unmarshal(b, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}
