package serverapp

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/stevear22/FreeField/internal/config"
	"github.com/stevear22/FreeField/internal/geo"
	"github.com/stevear22/FreeField/internal/httpmw"
	"github.com/stevear22/FreeField/internal/i18n"
	"github.com/stevear22/FreeField/internal/icons"
	"github.com/stevear22/FreeField/internal/identity"
	"github.com/stevear22/FreeField/internal/poi"
	"github.com/stevear22/FreeField/internal/secret"
	"github.com/stevear22/FreeField/internal/taxonomy"
	"github.com/stevear22/FreeField/internal/telemetry"
	"github.com/stevear22/FreeField/internal/webhook"
)

type Options struct {
	Config *config.Config
	Logger *log.Logger
}

// NewHandler wires the whole service: taxonomy, localization, webhook
// dispatch and the POI report surface.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	cfg := opts.Config

	// A catalog slot missing from the type registry is a configuration
	// fault; refuse to start rather than fail at render time.
	if err := taxonomy.VerifyCatalog(); err != nil {
		return nil, err
	}

	localizer := i18n.Builtin()
	stringsDir := filepath.Join(cfg.Data.Dir, "strings")
	if err := localizer.LoadDir(stringsDir); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	validator := taxonomy.NewValidator(cfg.Research.SpeciesMax)
	resolver := taxonomy.NewResolver(localizer)

	geofences, err := geo.LoadRegistry(dataPath(cfg, cfg.Webhooks.Geofences, "geofences.yml"))
	if err != nil {
		return nil, err
	}
	secrets, err := secret.NewAESStore(cfg.Security.SecretKey)
	if err != nil {
		return nil, err
	}

	dispatcher := webhook.NewDispatcher(webhook.Options{
		Repo:            webhook.NewFileRepo(dataPath(cfg, cfg.Webhooks.File, "webhooks.yml")),
		Geofences:       geofences,
		Icons:           icons.NewRegistry(cfg.Icons),
		Secrets:         secrets,
		Localizer:       localizer,
		Taxonomy:        resolver,
		Client:          &http.Client{Timeout: time.Duration(cfg.Webhooks.TimeoutS) * time.Second},
		Logger:          opts.Logger,
		SiteURL:         cfg.Site.BaseURL,
		DefaultLanguage: cfg.Site.DefaultLanguage,
		NavProvider:     cfg.Nav.DefaultProvider,
		NavProviders:    cfg.Nav.Providers,
		TelegramAPIBase: cfg.Telegram.APIBase,
		TelegramRate:    cfg.Telegram.RatePerSecond,
		FanOut:          cfg.Webhooks.FanOut,
	})

	poiRepo, err := poi.NewFileRepo(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}
	events := telemetry.NewMemoryRepository()
	poiHandler := poi.NewHandler(poiRepo, validator, resolver, dispatcher, events, opts.Logger)
	statsHandler := telemetry.NewHandler(events)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true,"service":"freefield"}`))
	})
	mux.HandleFunc("/api/poi/report", poiHandler.Report)
	mux.HandleFunc("/api/poi/list", poiHandler.List)
	mux.HandleFunc("/api/research/reset", poiHandler.ResetResearch)
	mux.HandleFunc("/api/stats", statsHandler.Stats)

	handler := httpmw.Chain(
		mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
		httpmw.WithAccessLog(opts.Logger),
		identity.Middleware,
	)
	return handler, nil
}

// dataPath resolves an admin-authored file path relative to the data dir
// unless it is already absolute.
func dataPath(cfg *config.Config, path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.Data.Dir, path)
}
