package i18n

// Builtin returns a Table preloaded with the English strings the shipped
// catalog needs. Deployments layer translated yaml tables on top via Add
// or LoadDir.
func Builtin() *Table {
	t := NewTable("en")
	t.Add("en", builtinEnglish)
	return t
}

var builtinEnglish = map[string]string{
	// Set phrasing
	"multi.or.2": "%1 or %2",
	"multi.or.3": "%1, %2, or %3",

	// Species types
	"type.normal":   "Normal",
	"type.fighting": "Fighting",
	"type.flying":   "Flying",
	"type.poison":   "Poison",
	"type.ground":   "Ground",
	"type.rock":     "Rock",
	"type.bug":      "Bug",
	"type.ghost":    "Ghost",
	"type.steel":    "Steel",
	"type.fire":     "Fire",
	"type.water":    "Water",
	"type.grass":    "Grass",
	"type.electric": "Electric",
	"type.psychic":  "Psychic",
	"type.ice":      "Ice",
	"type.dragon":   "Dragon",
	"type.dark":     "Dark",
	"type.fairy":    "Fairy",

	// Objectives
	"objective.battle_gym.singular": "Battle in a Gym",
	"objective.battle_gym.plural":   "Battle in a Gym %1 times",
	"objective.win_gym.singular":    "Win a Gym battle",
	"objective.win_gym.plural":      "Win %1 Gym battles",
	"objective.battle_raid.singular": "Battle in a Raid",
	"objective.battle_raid.plural":   "Battle in %1 Raids",
	"objective.win_raid.singular":    "Win a Raid",
	"objective.win_raid.plural":      "Win %1 Raids",
	"objective.level_raid.singular":  "Win a level %1 or higher Raid",
	"objective.level_raid.plural":    "Win %2 level %1 or higher Raids",

	"objective.catch.singular":          "Catch a Pokémon",
	"objective.catch.plural":            "Catch %1 Pokémon",
	"objective.catch_type.singular":     "Catch a %1-type Pokémon",
	"objective.catch_type.plural":       "Catch %2 %1-type Pokémon",
	"objective.catch_specific.singular": "Catch a %1",
	"objective.catch_specific.plural":   "Catch %2 %1",
	"objective.catch_daily.singular":    "Catch a Pokémon",
	"objective.catch_daily.plural":      "Catch a Pokémon %1 days in a row",

	"objective.throw_nice.singular":  "Make a Nice Throw",
	"objective.throw_nice.plural":    "Make %1 Nice Throws",
	"objective.throw_great.singular": "Make a Great Throw",
	"objective.throw_great.plural":   "Make %1 Great Throws",
	"objective.throw_curve.singular": "Make a Curveball Throw",
	"objective.throw_curve.plural":   "Make %1 Curveball Throws",

	"objective.hatch.singular": "Hatch an Egg",
	"objective.hatch.plural":   "Hatch %1 Eggs",
	"objective.spin.singular":  "Spin a PokéStop",
	"objective.spin.plural":    "Spin %1 PokéStops",

	"objective.evolve.singular":          "Evolve a Pokémon",
	"objective.evolve.plural":            "Evolve %1 Pokémon",
	"objective.evolve_type.singular":     "Evolve a %1-type Pokémon",
	"objective.evolve_type.plural":       "Evolve %2 %1-type Pokémon",
	"objective.evolve_specific.singular": "Evolve a %1",
	"objective.evolve_specific.plural":   "Evolve %2 %1",
	"objective.power_up.singular":        "Power up a Pokémon",
	"objective.power_up.plural":          "Power up Pokémon %1 times",
	"objective.transfer.singular":        "Transfer a Pokémon",
	"objective.transfer.plural":          "Transfer %1 Pokémon",

	"objective.send_gift.singular": "Send a Gift to a friend",
	"objective.send_gift.plural":   "Send %1 Gifts to friends",
	"objective.trade.singular":     "Trade a Pokémon",
	"objective.trade.plural":       "Trade %1 Pokémon",

	// Rewards
	"reward.encounter":            "%1 encounter",
	"reward.stardust.singular":    "%1 Stardust",
	"reward.stardust.plural":      "%1 Stardust",
	"reward.candy.singular":       "%1 Candy",
	"reward.candy.plural":         "%1 Candies",
	"reward.rare_candy.singular":  "%1 Rare Candy",
	"reward.rare_candy.plural":    "%1 Rare Candies",
	"reward.potion.singular":      "%1 Potion",
	"reward.potion.plural":        "%1 Potions",
	"reward.super_potion.singular": "%1 Super Potion",
	"reward.super_potion.plural":   "%1 Super Potions",
	"reward.max_potion.singular":  "%1 Max Potion",
	"reward.max_potion.plural":    "%1 Max Potions",
	"reward.revive.singular":      "%1 Revive",
	"reward.revive.plural":        "%1 Revives",
	"reward.max_revive.singular":  "%1 Max Revive",
	"reward.max_revive.plural":    "%1 Max Revives",
	"reward.poke_ball.singular":   "%1 Poké Ball",
	"reward.poke_ball.plural":     "%1 Poké Balls",
	"reward.great_ball.singular":  "%1 Great Ball",
	"reward.great_ball.plural":    "%1 Great Balls",
	"reward.ultra_ball.singular":  "%1 Ultra Ball",
	"reward.ultra_ball.plural":    "%1 Ultra Balls",

	// A starter set of species names; full tables ship as yaml.
	"species.1.name":   "Bulbasaur",
	"species.4.name":   "Charmander",
	"species.7.name":   "Squirtle",
	"species.25.name":  "Pikachu",
	"species.133.name": "Eevee",
}
