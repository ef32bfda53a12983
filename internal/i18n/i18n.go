package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Resolver looks up localized strings. Implementations must never fail:
// an unknown token resolves to the token itself so a missing translation
// degrades visibly instead of breaking a message.
type Resolver interface {
	Resolve(token, language string) string
	ResolveArgs(token, language string, args ...string) string
}

// Table is a Resolver backed by per-language token tables.
// Positional arguments substitute %1..%n in the stored string.
type Table struct {
	mu        sync.RWMutex
	fallback  string
	languages map[string]map[string]string
}

func NewTable(fallbackLanguage string) *Table {
	if fallbackLanguage == "" {
		fallbackLanguage = "en"
	}
	return &Table{
		fallback:  fallbackLanguage,
		languages: map[string]map[string]string{},
	}
}

// LoadDir merges every <lang>.yml file in dir into the table, overriding
// any strings already present.
func (t *Table) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yml") {
			continue
		}
		lang := strings.TrimSuffix(name, ".yml")
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		var strs map[string]string
		if err := yaml.Unmarshal(b, &strs); err != nil {
			return fmt.Errorf("strings %s: %w", name, err)
		}
		t.Add(lang, strs)
	}
	return nil
}

// Add merges strings into a language's table.
func (t *Table) Add(language string, strs map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tab := t.languages[language]
	if tab == nil {
		tab = map[string]string{}
		t.languages[language] = tab
	}
	for k, v := range strs {
		tab[k] = v
	}
}

func (t *Table) lookup(token, language string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if s, ok := t.languages[language][token]; ok {
		return s, true
	}
	if s, ok := t.languages[t.fallback][token]; ok {
		return s, true
	}
	return "", false
}

func (t *Table) Resolve(token, language string) string {
	if s, ok := t.lookup(token, language); ok {
		return s
	}
	return token
}

func (t *Table) ResolveArgs(token, language string, args ...string) string {
	s := t.Resolve(token, language)
	return SubstituteArgs(s, args)
}

// SubstituteArgs replaces %1..%n with the given values, highest index
// first so %10 is not clobbered by %1.
func SubstituteArgs(s string, args []string) string {
	for i := len(args); i >= 1; i-- {
		s = strings.ReplaceAll(s, fmt.Sprintf("%%%d", i), args[i-1])
	}
	return s
}
