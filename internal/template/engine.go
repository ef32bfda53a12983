package template

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/stevear22/FreeField/internal/i18n"
	"github.com/stevear22/FreeField/internal/icons"
	"github.com/stevear22/FreeField/internal/taxonomy"
)

// EscapeFunc post-processes each resolved value during final assembly.
// It differs per sink: JSON bodies need string-literal escaping, Telegram
// takes the text verbatim.
type EscapeFunc func(string) string

// EscapeNone returns the value unchanged.
func EscapeNone(s string) string { return s }

// EscapeJSON escapes a value for use inside a JSON string literal. The
// surrounding quotes stay with the template author, who controls the
// enclosing JSON document structure.
func EscapeJSON(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(b[1 : len(b)-1])
}

// Context carries the event data a render draws from. One Context is built
// per (event, webhook) pair; ReportedAt is computed once per event and
// shared across every webhook so time-derived tokens agree.
type Context struct {
	POIName    string
	Latitude   float64
	Longitude  float64
	Objective  taxonomy.Instance
	Reward     taxonomy.Instance
	Reporter   string
	ReportedAt time.Time
	Language   string

	SiteURL      string
	NavProvider  string
	NavProviders map[string]string

	Theme     icons.Theme
	Localizer i18n.Resolver
	Taxonomy  *taxonomy.Resolver
}

// Render interprets every substitution tag in body and assembles the final
// text with the given escape function.
//
// Each resolved tag collapses to a fresh opaque id; the id, never the
// value, goes back into the body. Ids un-collapse only inside the argument
// list of an enclosing tag, and the final pass swaps ids for escaped
// values without rescanning. A value is therefore never re-interpreted as
// a tag, which is what keeps untrusted data (reporter names, POI names)
// from injecting substitutions.
func Render(body string, ctx *Context, escape EscapeFunc) string {
	if escape == nil {
		escape = EscapeNone
	}
	table := replacementTable{}
	for {
		t, ok := nextTag(body)
		if !ok {
			break
		}
		var args []string
		if t.hasArgs {
			args = splitArgs(t.rawArgs)
			for i := range args {
				args[i] = table.expand(args[i])
			}
		}
		result := dispatch(t.name, args, ctx)
		id := table.newID(body)
		table[id] = result
		body = body[:t.start] + id + body[t.end:]
	}
	return table.finalize(body, escape)
}

// replacementTable maps opaque placeholder ids to resolved values for the
// duration of a single render. Never shared across renders.
type replacementTable map[string]string

// expand replaces placeholder ids occurring in an argument with their
// values, so an outer function sees nested output as plain text.
func (t replacementTable) expand(arg string) string {
	for id, value := range t {
		if strings.Contains(arg, id) {
			arg = strings.ReplaceAll(arg, id, value)
		}
	}
	return arg
}

// newID generates a random id that appears nowhere in the current body and
// collides with no existing key. A predictable or colliding id would let
// crafted body text smuggle itself past the final pass, hence crypto/rand
// and the containment check.
func (t replacementTable) newID(body string) string {
	for {
		raw := make([]byte, 16)
		if _, err := rand.Read(raw); err != nil {
			// crypto/rand failing is unrecoverable for safe rendering.
			panic(err)
		}
		id := hex.EncodeToString(raw)
		if strings.Contains(body, id) {
			continue
		}
		if _, exists := t[id]; exists {
			continue
		}
		return id
	}
}

// finalize swaps every placeholder id for its escaped value. Values are not
// rescanned for tags.
func (t replacementTable) finalize(body string, escape EscapeFunc) string {
	for id, value := range t {
		if strings.Contains(body, id) {
			body = strings.ReplaceAll(body, id, escape(value))
		}
	}
	return body
}
