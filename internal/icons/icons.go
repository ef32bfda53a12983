package icons

import (
	"fmt"
	"strings"

	"github.com/stevear22/FreeField/internal/config"
)

// Theme resolves icon URLs for objective and reward labels. Both lookups
// return false when the theme cannot serve the label in that format.
type Theme interface {
	IconURL(label, variant string) (string, bool)
	RasterURL(label, variant string) (string, bool)
}

// URLTheme builds icon URLs as <base>/<variant>/<label>.<ext>. It does not
// know which labels actually exist server-side; the catalog's ordered
// category lists give callers their fallback chain instead.
type URLTheme struct {
	base   string
	vector string
	raster string
}

func NewURLTheme(set config.IconSet) *URLTheme {
	return &URLTheme{
		base:   strings.TrimSuffix(set.BaseURL, "/"),
		vector: set.Vector,
		raster: set.Raster,
	}
}

func (t *URLTheme) url(label, variant, ext string) (string, bool) {
	if t.base == "" || ext == "" || label == "" {
		return "", false
	}
	if variant != "dark" {
		variant = "light"
	}
	return fmt.Sprintf("%s/%s/%s.%s", t.base, variant, label, ext), true
}

func (t *URLTheme) IconURL(label, variant string) (string, bool) {
	return t.url(label, variant, t.vector)
}

func (t *URLTheme) RasterURL(label, variant string) (string, bool) {
	return t.url(label, variant, t.raster)
}

// Registry holds the configured icon sets and the process default.
type Registry struct {
	def    string
	themes map[string]Theme
}

func NewRegistry(cfg config.IconsConfig) *Registry {
	themes := make(map[string]Theme, len(cfg.Sets))
	for name, set := range cfg.Sets {
		themes[name] = NewURLTheme(set)
	}
	return &Registry{def: cfg.DefaultSet, themes: themes}
}

// Theme returns the named set, falling back to the process default, then
// to an empty theme that resolves nothing.
func (r *Registry) Theme(name string) Theme {
	if t, ok := r.themes[name]; ok {
		return t
	}
	if t, ok := r.themes[r.def]; ok {
		return t
	}
	return &URLTheme{}
}

// Default returns the process default theme.
func (r *Registry) Default() Theme {
	return r.Theme(r.def)
}
