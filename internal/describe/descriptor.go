// Package describe renders human-readable summaries of player statistics.
// Each stat maps to a descriptor naming the row fields it reads and the
// sentence templates it fills, so formatting needs no per-stat conditional
// logic.
package describe

import "github.com/minetally/minetally/internal/domain"

// Descriptor declares how rows of one stat are rendered. Fields lists the
// auxiliary row fields, in template argument order, appended after the row
// value. Total is the template for the per-stat aggregate; Row for a single
// row.
type Descriptor struct {
	Fields []string
	Total  string
	Row    string
}

// descriptors covers every declared stat. A stat missing here renders as
// ok=false rather than a broken sentence.
var descriptors = map[domain.Stat]Descriptor{
	domain.StatJoins: {
		Total: "has joined the server %v times",
		Row:   "joined the server %v times",
	},
	domain.StatDeaths: {
		Fields: []string{"world"},
		Total:  "died %v times",
		Row:    "died %v times in world %v",
	},
	domain.StatKills: {
		Fields: []string{"weapon", "world"},
		Total:  "killed %v mobs",
		Row:    "killed %v mobs with %v in world %v",
	},
	domain.StatBlocksBroken: {
		Fields: []string{"block", "world"},
		Total:  "broke %v blocks",
		Row:    "broke %v %v blocks in world %v",
	},
	domain.StatBlocksPlaced: {
		Fields: []string{"block", "world"},
		Total:  "placed %v blocks",
		Row:    "placed %v %v blocks in world %v",
	},
	domain.StatDistanceTravelled: {
		Fields: []string{"moveType", "world"},
		Total:  "travelled %v blocks",
		Row:    "travelled %v blocks by %v in world %v",
	},
	domain.StatTimePlayed: {
		Total: "has played for %v",
		Row:   "played for %v in world %v",
		// Fields deliberately empty: the value renders as a duration, see
		// Formatter.RowLine.
	},
	domain.StatVotes: {
		Total: "voted %v times",
		Row:   "voted %v times",
	},
	domain.StatArrowsShot: {
		Fields: []string{"forceShot", "world"},
		Total:  "shot %v arrows",
		Row:    "shot %v arrows with force %v in world %v",
	},
	domain.StatXPGained: {
		Fields: []string{"world"},
		Total:  "gained %v experience points",
		Row:    "gained %v experience points in world %v",
	},
	domain.StatCommandsPerformed: {
		Fields: []string{"command", "world"},
		Total:  "performed %v commands",
		Row:    "performed %v times the command %v in world %v",
	},
	domain.StatDamageTaken: {
		Fields: []string{"cause", "world"},
		Total:  "took %v points of damage",
		Row:    "took %v points of damage from %v in world %v",
	},
	domain.StatFoodEaten: {
		Fields: []string{"foodEaten", "world"},
		Total:  "ate %v pieces of food",
		Row:    "ate %v of %v in world %v",
	},
	domain.StatBucketsFilled: {
		Fields: []string{"world"},
		Total:  "filled %v buckets",
		Row:    "filled %v buckets in world %v",
	},
	domain.StatBucketsEmptied: {
		Fields: []string{"world"},
		Total:  "emptied %v buckets",
		Row:    "emptied %v buckets in world %v",
	},
	domain.StatEggsThrown: {
		Fields: []string{"world"},
		Total:  "threw %v eggs",
		Row:    "threw %v eggs in world %v",
	},
	domain.StatEnteredBeds: {
		Fields: []string{"world"},
		Total:  "slept %v times",
		Row:    "slept %v times in world %v",
	},
	domain.StatTimesShorn: {
		Fields: []string{"world"},
		Total:  "shore %v sheep",
		Row:    "shore %v sheep in world %v",
	},
	domain.StatItemsCrafted: {
		Fields: []string{"item", "world"},
		Total:  "crafted %v items",
		Row:    "crafted %v %v in world %v",
	},
	domain.StatTeleports: {
		Fields: []string{"destWorld"},
		Total:  "teleported %v times",
		Row:    "teleported %v times to world %v",
	},
	domain.StatWorldsChanged: {
		Fields: []string{"world"},
		Total:  "changed worlds %v times",
		Row:    "entered world %v times into %v",
	},
	domain.StatToolsBroken: {
		Fields: []string{"item"},
		Total:  "broke %v tools",
		Row:    "broke %v of the tool %v",
	},
}

// DescriptorFor returns the descriptor for the stat, if one is declared.
func DescriptorFor(stat domain.Stat) (Descriptor, bool) {
	d, ok := descriptors[stat]
	return d, ok
}
