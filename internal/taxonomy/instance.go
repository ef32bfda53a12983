package taxonomy

// Params maps parameter slot ids to values. Canonical value forms are
// int (quantity, min_tier), []int (species) and []string (type); see
// Validator.Normalize.
type Params map[string]any

// Instance is a concrete objective or reward: a catalog kind plus its
// parameter values. Webhook filters reuse the same shape with a partial
// param set.
type Instance struct {
	Kind   string `json:"type" yaml:"type"`
	Params Params `json:"params" yaml:"params"`
}

// Validator validates submitted instances against the catalog and the
// parameter type registry.
type Validator struct {
	speciesMax int
}

// NewValidator builds a validator. speciesMax bounds the species parameter;
// values below one fall back to a permissive maximum.
func NewValidator(speciesMax int) *Validator {
	if speciesMax < 1 {
		speciesMax = 1 << 15
	}
	return &Validator{speciesMax: speciesMax}
}

// Validate reports whether (kind, params) is a well-formed instance for the
// given scope: the kind exists, the param keys exactly equal the kind's
// slots, every type allows the scope, and every value passes its predicate.
func (v *Validator) Validate(scope Scope, kind string, params Params) bool {
	def, ok := Lookup(scope)[kind]
	if !ok {
		return false
	}
	for _, slot := range def.ParamSlots {
		if _, present := params[slot]; !present {
			return false
		}
	}
	if len(params) != len(def.ParamSlots) {
		return false
	}
	for key, value := range params {
		pt, ok := Types[key]
		if !ok || !pt.InScope(scope) {
			return false
		}
		if !v.validValue(key, value) {
			return false
		}
	}
	return true
}

// ValidateObjective is Validate in the objective scope.
func (v *Validator) ValidateObjective(kind string, params Params) bool {
	return v.Validate(ScopeObjective, kind, params)
}

// ValidateReward is Validate in the reward scope.
func (v *Validator) ValidateReward(kind string, params Params) bool {
	return v.Validate(ScopeReward, kind, params)
}

func (v *Validator) validValue(typeID string, value any) bool {
	switch typeID {
	case ParamQuantity:
		n, ok := intValue(value)
		return ok && n >= 1
	case ParamMinTier:
		n, ok := intValue(value)
		return ok && n >= 1 && n <= 5
	case ParamSpecies:
		ids, ok := intSlice(value)
		if !ok || len(ids) < 1 || len(ids) > 3 {
			return false
		}
		seen := map[int]bool{}
		for _, id := range ids {
			if id < 1 || id > v.speciesMax || seen[id] {
				return false
			}
			seen[id] = true
		}
		return true
	case ParamTypeID:
		names, ok := stringSlice(value)
		if !ok || len(names) < 1 || len(names) > 3 {
			return false
		}
		seen := map[string]bool{}
		for _, name := range names {
			if !IsSpeciesType(name) || seen[name] {
				return false
			}
			seen[name] = true
		}
		return true
	}
	return false
}

// Normalize rewrites params into canonical value forms so that instances
// decoded from JSON and filters decoded from yaml compare equal. Callers
// normalize after a successful Validate.
func (v *Validator) Normalize(params Params) Params {
	out := make(Params, len(params))
	for key, value := range params {
		switch key {
		case ParamQuantity, ParamMinTier:
			if n, ok := intValue(value); ok {
				out[key] = n
				continue
			}
		case ParamSpecies:
			if ids, ok := intSlice(value); ok {
				out[key] = ids
				continue
			}
		case ParamTypeID:
			if names, ok := stringSlice(value); ok {
				out[key] = names
				continue
			}
		}
		out[key] = value
	}
	return out
}

// Matches reports whether instance satisfies filter: equal kinds, and every
// param the filter names present in the instance with an equal value. Params
// the filter does not name are ignored, so a filter on kind alone matches
// any parameterization. Set-valued params compare element-wise in order.
func Matches(instance, filter Instance) bool {
	if instance.Kind != filter.Kind {
		return false
	}
	for key, want := range filter.Params {
		got, present := instance.Params[key]
		if !present || !equalValue(got, want) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	if an, ok := intValue(a); ok {
		bn, ok := intValue(b)
		return ok && an == bn
	}
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		return ok && as == bs
	}
	if ai, ok := intSlice(a); ok {
		bi, ok := intSlice(b)
		if !ok || len(ai) != len(bi) {
			return false
		}
		for i := range ai {
			if ai[i] != bi[i] {
				return false
			}
		}
		return true
	}
	if as, ok := stringSlice(a); ok {
		bs, ok := stringSlice(b)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if as[i] != bs[i] {
				return false
			}
		}
		return true
	}
	return false
}

// intValue accepts the integer representations produced by the JSON and
// yaml decoders. Non-integral floats are rejected.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func intSlice(v any) ([]int, bool) {
	switch s := v.(type) {
	case []int:
		return s, true
	case []any:
		out := make([]int, 0, len(s))
		for _, e := range s {
			n, ok := intValue(e)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	}
	return nil, false
}

func stringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}
