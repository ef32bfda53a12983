package taxonomy

// Scope says whether a parameter type may appear on objectives, rewards,
// or both.
type Scope string

const (
	ScopeObjective Scope = "objective"
	ScopeReward    Scope = "reward"
)

// Parameter type identifiers. The set is closed: validation and rendering
// switch over these ids rather than dispatching on runtime types.
const (
	ParamQuantity = "quantity"
	ParamMinTier  = "min_tier"
	ParamSpecies  = "species"
	ParamTypeID   = "type"
)

// ParamType describes one typed parameter slot kind.
type ParamType struct {
	ID     string
	Scopes []Scope
}

func (p ParamType) InScope(s Scope) bool {
	for _, sc := range p.Scopes {
		if sc == s {
			return true
		}
	}
	return false
}

// Types is the process-wide parameter type registry. Immutable after
// package init.
var Types = map[string]ParamType{
	ParamQuantity: {ID: ParamQuantity, Scopes: []Scope{ScopeObjective, ScopeReward}},
	ParamMinTier:  {ID: ParamMinTier, Scopes: []Scope{ScopeObjective}},
	ParamSpecies:  {ID: ParamSpecies, Scopes: []Scope{ScopeObjective, ScopeReward}},
	ParamTypeID:   {ID: ParamTypeID, Scopes: []Scope{ScopeObjective}},
}

// SpeciesTypes is the fixed enumeration the "type" parameter draws from.
var SpeciesTypes = []string{
	"normal", "fighting", "flying", "poison", "ground", "rock",
	"bug", "ghost", "steel", "fire", "water", "grass",
	"electric", "psychic", "ice", "dragon", "dark", "fairy",
}

var speciesTypeSet = func() map[string]bool {
	m := make(map[string]bool, len(SpeciesTypes))
	for _, t := range SpeciesTypes {
		m[t] = true
	}
	return m
}()

// IsSpeciesType reports whether name is one of the fixed type enumeration.
func IsSpeciesType(name string) bool {
	return speciesTypeSet[name]
}
