package webhook

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/stevear22/FreeField/internal/geo"
	"github.com/stevear22/FreeField/internal/i18n"
	"github.com/stevear22/FreeField/internal/icons"
	"github.com/stevear22/FreeField/internal/secret"
	"github.com/stevear22/FreeField/internal/taxonomy"
	"github.com/stevear22/FreeField/internal/template"
)

// Event is one accepted POI update, as seen by the dispatch engine. It is
// built after the update has committed; ReportedAt is computed exactly once
// and shared by every webhook's render.
type Event struct {
	POIName    string
	Latitude   float64
	Longitude  float64
	Objective  taxonomy.Instance
	Reward     taxonomy.Instance
	Reporter   string
	ReportedAt time.Time
}

// Result is the per-webhook outcome of one dispatch. Failures are recorded
// here and logged; they never propagate to the caller.
type Result struct {
	ID      string
	Skipped bool
	Err     error
}

type Options struct {
	Repo      Repo
	Geofences *geo.Registry
	Icons     *icons.Registry
	Secrets   secret.Store
	Localizer i18n.Resolver
	Taxonomy  *taxonomy.Resolver
	Client    *http.Client
	Logger    *log.Logger

	SiteURL         string
	DefaultLanguage string
	NavProvider     string
	NavProviders    map[string]string

	TelegramAPIBase string
	TelegramRate    float64

	// FanOut bounds concurrent deliveries for one event.
	FanOut int
}

// Dispatcher fans an accepted POI update out to every matching webhook.
// Delivery is fire-and-forget, at-most-once: no retry, no queue, no
// persisted failure record.
type Dispatcher struct {
	opts    Options
	limiter *rate.Limiter
}

func NewDispatcher(opts Options) *Dispatcher {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.FanOut < 1 {
		opts.FanOut = 1
	}
	if opts.TelegramRate <= 0 {
		opts.TelegramRate = 1
	}
	return &Dispatcher{
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.TelegramRate), 1),
	}
}

// Dispatch loads the webhook list and delivers the event to each webhook
// that passes its filters. Each webhook renders and posts independently;
// one failure is logged and the rest continue.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) []Result {
	configs, err := d.opts.Repo.List(ctx)
	if err != nil {
		d.opts.Logger.Printf("webhooks: load configs: %v", err)
		return nil
	}

	results := make([]Result, len(configs))
	sem := make(chan struct{}, d.opts.FanOut)
	var wg sync.WaitGroup
	for i, cfg := range configs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, cfg Config) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = d.deliver(ctx, cfg, ev)
		}(i, cfg)
	}
	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			d.opts.Logger.Printf("webhook %s: delivery failed: %v", r.ID, r.Err)
		}
	}
	return results
}

// deliver evaluates one webhook's filters in order, short-circuiting on the
// first failure, then renders and posts. Panics in a render are contained
// to this webhook.
func (d *Dispatcher) deliver(ctx context.Context, cfg Config, ev Event) (res Result) {
	res.ID = cfg.ID
	defer func() {
		if rec := recover(); rec != nil {
			res.Err = fmt.Errorf("panic: %v", rec)
		}
	}()

	if !cfg.Active {
		res.Skipped = true
		return res
	}
	if cfg.Geofence != "" {
		fence, ok := d.opts.Geofences.Get(cfg.Geofence)
		if !ok || !fence.Contains(ev.Latitude, ev.Longitude) {
			res.Skipped = true
			return res
		}
	}
	if !keep(cfg.Objectives, ev.Objective) || !keep(cfg.Rewards, ev.Reward) {
		res.Skipped = true
		return res
	}

	language := cfg.Language
	if language == "" {
		language = d.opts.DefaultLanguage
	}
	tctx := &template.Context{
		POIName:      ev.POIName,
		Latitude:     ev.Latitude,
		Longitude:    ev.Longitude,
		Objective:    ev.Objective,
		Reward:       ev.Reward,
		Reporter:     ev.Reporter,
		ReportedAt:   ev.ReportedAt,
		Language:     language,
		SiteURL:      d.opts.SiteURL,
		NavProvider:  d.opts.NavProvider,
		NavProviders: d.opts.NavProviders,
		Theme:        d.opts.Icons.Theme(cfg.IconSet),
		Localizer:    d.opts.Localizer,
		Taxonomy:     d.opts.Taxonomy,
	}

	switch cfg.Kind {
	case SinkTelegram:
		text := template.Render(cfg.Body, tctx, template.EscapeNone)
		res.Err = d.postTelegram(ctx, cfg, text)
	case SinkJSON:
		body := template.Render(cfg.Body, tctx, template.EscapeJSON)
		res.Err = d.postJSON(ctx, cfg, body)
	default:
		res.Err = fmt.Errorf("unknown sink kind %q", cfg.Kind)
	}
	return res
}

// keep applies a filter set: with no filters everything passes; otherwise
// the event survives iff "any filter matches" agrees with the mode.
func keep(fs FilterSet, inst taxonomy.Instance) bool {
	if len(fs.Filters) == 0 {
		return true
	}
	matched := false
	for _, f := range fs.Filters {
		if taxonomy.Matches(inst, f) {
			matched = true
			break
		}
	}
	return matched == (fs.Mode != ModeBlacklist)
}
