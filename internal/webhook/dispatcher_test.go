package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevear22/FreeField/internal/config"
	"github.com/stevear22/FreeField/internal/geo"
	"github.com/stevear22/FreeField/internal/i18n"
	"github.com/stevear22/FreeField/internal/icons"
	"github.com/stevear22/FreeField/internal/secret"
	"github.com/stevear22/FreeField/internal/taxonomy"
)

type memRepo struct {
	configs []Config
	err     error
}

func (m *memRepo) List(context.Context) ([]Config, error) { return m.configs, m.err }

func testDispatcher(repo Repo, extra func(*Options)) *Dispatcher {
	loc := i18n.Builtin()
	opts := Options{
		Repo:            repo,
		Geofences:       geo.NewRegistry(nil),
		Icons:           icons.NewRegistry(config.IconsConfig{}),
		Localizer:       loc,
		Taxonomy:        taxonomy.NewResolver(loc),
		Logger:          log.New(io.Discard, "", 0),
		SiteURL:         "https://map.example.com",
		DefaultLanguage: "en",
		TelegramAPIBase: "https://api.telegram.org",
		FanOut:          2,
	}
	if extra != nil {
		extra(&opts)
	}
	return NewDispatcher(opts)
}

func catchEvent(quantity int) Event {
	return Event{
		POIName:   "Fountain Square",
		Latitude:  48.85832,
		Longitude: 2.2945,
		Objective: taxonomy.Instance{Kind: "catch", Params: taxonomy.Params{"quantity": quantity}},
		Reward:    taxonomy.Instance{Kind: "stardust", Params: taxonomy.Params{"quantity": 500}},
		Reporter:  "alice",
		ReportedAt: time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC),
	}
}

func jsonHook(id, target string) Config {
	return Config{
		ID:     id,
		Active: true,
		Kind:   SinkJSON,
		Target: target,
		Body:   `{"poi":"<%POI%>","objective":"<%OBJECTIVE%>"}`,
	}
}

func TestDispatchPostsRenderedJSON(t *testing.T) {
	var got []byte
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		got, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	d := testDispatcher(&memRepo{configs: []Config{jsonHook("wh1", srv.URL)}}, nil)
	results := d.Dispatch(context.Background(), catchEvent(3))

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.False(t, results[0].Skipped)
	assert.Equal(t, "application/json", contentType)

	var body map[string]string
	require.NoError(t, json.Unmarshal(got, &body))
	assert.Equal(t, "Fountain Square", body["poi"])
	assert.Equal(t, "Catch 3 Pokémon", body["objective"])
}

func TestWhitelistMatchesAnyQuantity(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	hook := jsonHook("wh1", srv.URL)
	hook.Objectives = FilterSet{
		Mode:    ModeWhitelist,
		Filters: []taxonomy.Instance{{Kind: "catch", Params: taxonomy.Params{}}},
	}
	d := testDispatcher(&memRepo{configs: []Config{hook}}, nil)

	// Fires for any catch quantity.
	res := d.Dispatch(context.Background(), catchEvent(1))
	assert.False(t, res[0].Skipped)
	res = d.Dispatch(context.Background(), catchEvent(7))
	assert.False(t, res[0].Skipped)
	assert.Equal(t, 2, hits)

	// Must not fire for a hatch objective.
	ev := catchEvent(1)
	ev.Objective = taxonomy.Instance{Kind: "hatch", Params: taxonomy.Params{"quantity": 1}}
	res = d.Dispatch(context.Background(), ev)
	assert.True(t, res[0].Skipped)
	assert.Equal(t, 2, hits)
}

func TestBlacklistInvertsTheMatch(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	hook := jsonHook("wh1", srv.URL)
	hook.Objectives = FilterSet{
		Mode:    ModeBlacklist,
		Filters: []taxonomy.Instance{{Kind: "catch"}},
	}
	d := testDispatcher(&memRepo{configs: []Config{hook}}, nil)

	res := d.Dispatch(context.Background(), catchEvent(3))
	assert.True(t, res[0].Skipped)

	ev := catchEvent(1)
	ev.Objective = taxonomy.Instance{Kind: "hatch", Params: taxonomy.Params{"quantity": 1}}
	res = d.Dispatch(context.Background(), ev)
	assert.False(t, res[0].Skipped)
	assert.Equal(t, 1, hits)
}

func TestInactiveWebhookSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inactive webhook must not post")
	}))
	defer srv.Close()

	hook := jsonHook("wh1", srv.URL)
	hook.Active = false
	d := testDispatcher(&memRepo{configs: []Config{hook}}, nil)
	res := d.Dispatch(context.Background(), catchEvent(1))
	assert.True(t, res[0].Skipped)
}

func TestGeofenceFiltering(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	paris := geo.Fence{Name: "paris", Vertices: []geo.Point{
		{Latitude: 48.7, Longitude: 2.2}, {Latitude: 49.0, Longitude: 2.2},
		{Latitude: 49.0, Longitude: 2.5}, {Latitude: 48.7, Longitude: 2.5},
	}}
	hook := jsonHook("wh1", srv.URL)
	hook.Geofence = "paris"
	d := testDispatcher(&memRepo{configs: []Config{hook}}, func(o *Options) {
		o.Geofences = geo.NewRegistry([]geo.Fence{paris})
	})

	res := d.Dispatch(context.Background(), catchEvent(1))
	assert.False(t, res[0].Skipped)
	assert.Equal(t, 1, hits)

	ev := catchEvent(1)
	ev.Latitude, ev.Longitude = 40.0, -74.0
	res = d.Dispatch(context.Background(), ev)
	assert.True(t, res[0].Skipped)

	// An unknown fence name fails closed.
	hook.Geofence = "atlantis"
	d = testDispatcher(&memRepo{configs: []Config{hook}}, func(o *Options) {
		o.Geofences = geo.NewRegistry([]geo.Fence{paris})
	})
	res = d.Dispatch(context.Background(), catchEvent(1))
	assert.True(t, res[0].Skipped)
}

func TestFailureIsolation(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	bad.Close() // refuse connections

	d := testDispatcher(&memRepo{configs: []Config{
		jsonHook("broken", bad.URL),
		jsonHook("working", good.URL),
	}}, nil)
	results := d.Dispatch(context.Background(), catchEvent(2))

	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}

func TestTelegramDelivery(t *testing.T) {
	secrets, err := secret.NewAESStore("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	token, err := secrets.Encrypt("123456:bot-secret", "webhook", "bot_token")
	require.NoError(t, err)

	var path string
	var msg telegramMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&msg)
	}))
	defer srv.Close()

	hook := Config{
		ID:       "tg1",
		Active:   true,
		Kind:     SinkTelegram,
		Target:   "-1001234",
		Language: "en",
		Body:     "<%POI%>: <%OBJECTIVE%>",
		Telegram: TelegramOptions{
			BotToken:            token,
			DisableNotification: true,
			DisableLinkPreview:  true,
			ParseMode:           "Markdown",
		},
	}
	d := testDispatcher(&memRepo{configs: []Config{hook}}, func(o *Options) {
		o.Secrets = secrets
		o.TelegramAPIBase = srv.URL
	})

	results := d.Dispatch(context.Background(), catchEvent(3))
	require.NoError(t, results[0].Err)

	assert.Equal(t, "/bot123456:bot-secret/sendMessage", path)
	assert.Equal(t, int64(-1001234), msg.ChatID)
	assert.Equal(t, "Fountain Square: Catch 3 Pokémon", msg.Text)
	assert.True(t, msg.DisableNotification)
	assert.True(t, msg.DisableWebPagePreview)
	assert.Equal(t, "Markdown", msg.ParseMode)
}

func TestTelegramMalformedChatID(t *testing.T) {
	secrets, err := secret.NewAESStore("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	token, err := secrets.Encrypt("t", "webhook", "bot_token")
	require.NoError(t, err)

	hook := Config{
		ID: "tg1", Active: true, Kind: SinkTelegram,
		Target:   "not-a-chat",
		Body:     "x",
		Telegram: TelegramOptions{BotToken: token},
	}
	d := testDispatcher(&memRepo{configs: []Config{hook}}, func(o *Options) {
		o.Secrets = secrets
	})
	results := d.Dispatch(context.Background(), catchEvent(1))
	assert.Error(t, results[0].Err)
}

func TestRepoErrorYieldsNoResults(t *testing.T) {
	d := testDispatcher(&memRepo{err: io.ErrUnexpectedEOF}, nil)
	assert.Nil(t, d.Dispatch(context.Background(), catchEvent(1)))
}
