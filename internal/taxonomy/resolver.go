package taxonomy

import (
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/stevear22/FreeField/internal/i18n"
)

// Resolver turns instances into localized display text. It owns a small
// cache of species display names, since species rendering is by far the
// hottest localization lookup; InvalidateSpecies flushes it when research
// is reset.
type Resolver struct {
	loc     i18n.Resolver
	species *gocache.Cache
}

func NewResolver(loc i18n.Resolver) *Resolver {
	return &Resolver{
		loc:     loc,
		species: gocache.New(12*time.Hour, time.Hour),
	}
}

// ObjectiveText renders an objective instance for a language.
func (r *Resolver) ObjectiveText(kind string, params Params, language string) string {
	return r.Text(ScopeObjective, kind, params, language)
}

// RewardText renders a reward instance for a language.
func (r *Resolver) RewardText(kind string, params Params, language string) string {
	return r.Text(ScopeReward, kind, params, language)
}

// Text resolves the localized template for (scope, kind) and substitutes
// each parameter slot positionally, in the order the catalog declares.
// When the instance carries a quantity the singular or plural template
// form is chosen on quantity == 1; that is the only pluralization rule.
// Unknown kinds fall back to the raw kind token with no parameters.
func (r *Resolver) Text(scope Scope, kind string, params Params, language string) string {
	def, ok := Lookup(scope)[kind]
	if !ok {
		return r.loc.Resolve(kind, language)
	}

	token := string(scope) + "." + kind
	if qty, present := params[ParamQuantity]; present {
		if n, ok := intValue(qty); ok && n == 1 {
			token += ".singular"
		} else {
			token += ".plural"
		}
	}

	args := make([]string, 0, len(def.ParamSlots))
	for _, slot := range def.ParamSlots {
		args = append(args, r.renderParam(slot, params[slot], language))
	}
	return r.loc.ResolveArgs(token, language, args...)
}

func (r *Resolver) renderParam(typeID string, value any, language string) string {
	switch typeID {
	case ParamQuantity, ParamMinTier:
		if n, ok := intValue(value); ok {
			return strconv.Itoa(n)
		}
		return ""
	case ParamSpecies:
		ids, ok := intSlice(value)
		if !ok {
			return ""
		}
		names := make([]string, 0, len(ids))
		for _, id := range ids {
			names = append(names, r.SpeciesName(id, language))
		}
		return r.joinSet(names, language)
	case ParamTypeID:
		typeNames, ok := stringSlice(value)
		if !ok {
			return ""
		}
		names := make([]string, 0, len(typeNames))
		for _, t := range typeNames {
			names = append(names, r.loc.Resolve("type."+t, language))
		}
		return r.joinSet(names, language)
	}
	return ""
}

// joinSet phrases a one/two/three element set as the language dictates,
// e.g. "A", "A or B", "A, B, or C" in English.
func (r *Resolver) joinSet(names []string, language string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return r.loc.ResolveArgs("multi.or.2", language, names...)
	default:
		return r.loc.ResolveArgs("multi.or.3", language, names[:3]...)
	}
}

// SpeciesName resolves a species display name, memoized per (id, language).
// A species with no translation renders as "#<id>".
func (r *Resolver) SpeciesName(id int, language string) string {
	key := language + "/" + strconv.Itoa(id)
	if name, found := r.species.Get(key); found {
		return name.(string)
	}
	token := fmt.Sprintf("species.%d.name", id)
	name := r.loc.Resolve(token, language)
	if name == token {
		name = "#" + strconv.Itoa(id)
	}
	r.species.Set(key, name, gocache.DefaultExpiration)
	return name
}

// InvalidateSpecies drops every cached species name. Wired to the research
// reset operation so renamed or newly translated species pick up cleanly.
func (r *Resolver) InvalidateSpecies() {
	r.species.Flush()
}
