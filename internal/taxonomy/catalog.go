package taxonomy

import "fmt"

// Definition describes one objective or reward kind: the categories used
// for icon fallback (most specific first) and the ordered parameter slots
// that fix positional substitution order in localized templates.
type Definition struct {
	ID         string
	Categories []string
	ParamSlots []string
}

// Objectives is the static objective catalog.
var Objectives = map[string]Definition{
	// Battle
	"battle_gym": {ID: "battle_gym", Categories: []string{"battle"}, ParamSlots: []string{ParamQuantity}},
	"win_gym":    {ID: "win_gym", Categories: []string{"battle"}, ParamSlots: []string{ParamQuantity}},
	"battle_raid": {ID: "battle_raid", Categories: []string{"raid", "battle"}, ParamSlots: []string{ParamQuantity}},
	"win_raid":    {ID: "win_raid", Categories: []string{"raid", "battle"}, ParamSlots: []string{ParamQuantity}},
	"level_raid":  {ID: "level_raid", Categories: []string{"raid", "battle"}, ParamSlots: []string{ParamMinTier, ParamQuantity}},

	// Catch
	"catch":          {ID: "catch", Categories: []string{"catch"}, ParamSlots: []string{ParamQuantity}},
	"catch_type":     {ID: "catch_type", Categories: []string{"catch"}, ParamSlots: []string{ParamTypeID, ParamQuantity}},
	"catch_specific": {ID: "catch_specific", Categories: []string{"catch"}, ParamSlots: []string{ParamSpecies, ParamQuantity}},
	"catch_daily":    {ID: "catch_daily", Categories: []string{"catch"}, ParamSlots: []string{ParamQuantity}},

	// Throwing skill
	"throw_nice":  {ID: "throw_nice", Categories: []string{"throwing_skill"}, ParamSlots: []string{ParamQuantity}},
	"throw_great": {ID: "throw_great", Categories: []string{"throwing_skill"}, ParamSlots: []string{ParamQuantity}},
	"throw_curve": {ID: "throw_curve", Categories: []string{"throwing_skill"}, ParamSlots: []string{ParamQuantity}},

	// Exploration
	"hatch": {ID: "hatch", Categories: []string{"hatch"}, ParamSlots: []string{ParamQuantity}},
	"spin":  {ID: "spin", Categories: []string{"explore"}, ParamSlots: []string{ParamQuantity}},

	// Evolution & management
	"evolve":          {ID: "evolve", Categories: []string{"evolve"}, ParamSlots: []string{ParamQuantity}},
	"evolve_type":     {ID: "evolve_type", Categories: []string{"evolve"}, ParamSlots: []string{ParamTypeID, ParamQuantity}},
	"evolve_specific": {ID: "evolve_specific", Categories: []string{"evolve"}, ParamSlots: []string{ParamSpecies, ParamQuantity}},
	"power_up":        {ID: "power_up", Categories: []string{"power_up"}, ParamSlots: []string{ParamQuantity}},
	"transfer":        {ID: "transfer", Categories: []string{"trash"}, ParamSlots: []string{ParamQuantity}},

	// Social
	"send_gift": {ID: "send_gift", Categories: []string{"social"}, ParamSlots: []string{ParamQuantity}},
	"trade":     {ID: "trade", Categories: []string{"social"}, ParamSlots: []string{ParamQuantity}},
}

// Rewards is the static reward catalog.
var Rewards = map[string]Definition{
	"encounter":  {ID: "encounter", Categories: []string{"encounter"}, ParamSlots: []string{ParamSpecies}},
	"stardust":   {ID: "stardust", Categories: []string{"stardust"}, ParamSlots: []string{ParamQuantity}},
	"candy":      {ID: "candy", Categories: []string{"candy"}, ParamSlots: []string{ParamQuantity}},
	"rare_candy": {ID: "rare_candy", Categories: []string{"candy"}, ParamSlots: []string{ParamQuantity}},

	"potion":       {ID: "potion", Categories: []string{"potion", "item"}, ParamSlots: []string{ParamQuantity}},
	"super_potion": {ID: "super_potion", Categories: []string{"potion", "item"}, ParamSlots: []string{ParamQuantity}},
	"max_potion":   {ID: "max_potion", Categories: []string{"potion", "item"}, ParamSlots: []string{ParamQuantity}},
	"revive":       {ID: "revive", Categories: []string{"revive", "item"}, ParamSlots: []string{ParamQuantity}},
	"max_revive":   {ID: "max_revive", Categories: []string{"revive", "item"}, ParamSlots: []string{ParamQuantity}},

	"poke_ball":  {ID: "poke_ball", Categories: []string{"ball", "item"}, ParamSlots: []string{ParamQuantity}},
	"great_ball": {ID: "great_ball", Categories: []string{"ball", "item"}, ParamSlots: []string{ParamQuantity}},
	"ultra_ball": {ID: "ultra_ball", Categories: []string{"ball", "item"}, ParamSlots: []string{ParamQuantity}},
}

// Lookup returns the definition table for a scope.
func Lookup(scope Scope) map[string]Definition {
	if scope == ScopeReward {
		return Rewards
	}
	return Objectives
}

// VerifyCatalog checks that every parameter slot referenced by the catalog
// exists in the type registry and allows the catalog's scope. A failure here
// is a build-time configuration fault, so callers treat a non-nil error as
// fatal at startup.
func VerifyCatalog() error {
	for _, scope := range []Scope{ScopeObjective, ScopeReward} {
		for id, def := range Lookup(scope) {
			for _, slot := range def.ParamSlots {
				pt, ok := Types[slot]
				if !ok {
					return fmt.Errorf("%s %q references unknown parameter type %q", scope, id, slot)
				}
				if !pt.InScope(scope) {
					return fmt.Errorf("%s %q uses parameter type %q outside its scope", scope, id, slot)
				}
			}
		}
	}
	return nil
}
