package domain

// Stat identifies a category of tracked player activity. The set is closed:
// persistence tables, description formatting and reconciliation all iterate
// over AllStats, so adding a stat means adding it to the declaration below.
type Stat string

const (
	StatJoins             Stat = "joins"
	StatDeaths            Stat = "deaths"
	StatKills             Stat = "kills"
	StatBlocksBroken      Stat = "blocks_broken"
	StatBlocksPlaced      Stat = "blocks_placed"
	StatDistanceTravelled Stat = "distance_travelled"
	StatTimePlayed        Stat = "time_played"
	StatVotes             Stat = "votes"
	StatArrowsShot        Stat = "arrows_shot"
	StatXPGained          Stat = "xp_gained"
	StatCommandsPerformed Stat = "commands_performed"
	StatDamageTaken       Stat = "damage_taken"
	StatFoodEaten         Stat = "food_eaten"
	StatBucketsFilled     Stat = "buckets_filled"
	StatBucketsEmptied    Stat = "buckets_emptied"
	StatEggsThrown        Stat = "eggs_thrown"
	StatEnteredBeds       Stat = "entered_beds"
	StatTimesShorn        Stat = "times_shorn"
	StatItemsCrafted      Stat = "items_crafted"
	StatTeleports         Stat = "teleports"
	StatWorldsChanged     Stat = "worlds_changed"
	StatToolsBroken       Stat = "tools_broken"
)

// allStats is the declared iteration order. AllRows, TotalRowCount and the
// reconciler walk stats in exactly this order, so it must stay stable.
var allStats = []Stat{
	StatJoins,
	StatDeaths,
	StatKills,
	StatBlocksBroken,
	StatBlocksPlaced,
	StatDistanceTravelled,
	StatTimePlayed,
	StatVotes,
	StatArrowsShot,
	StatXPGained,
	StatCommandsPerformed,
	StatDamageTaken,
	StatFoodEaten,
	StatBucketsFilled,
	StatBucketsEmptied,
	StatEggsThrown,
	StatEnteredBeds,
	StatTimesShorn,
	StatItemsCrafted,
	StatTeleports,
	StatWorldsChanged,
	StatToolsBroken,
}

// AllStats returns every declared stat in stable iteration order.
// The returned slice is a copy and may be modified by the caller.
func AllStats() []Stat {
	stats := make([]Stat, len(allStats))
	copy(stats, allStats)
	return stats
}

// validStats is built once from allStats for O(1) membership checks.
var validStats = func() map[Stat]bool {
	m := make(map[Stat]bool, len(allStats))
	for _, s := range allStats {
		m[s] = true
	}
	return m
}()

// Valid reports whether s is one of the declared stats.
func (s Stat) Valid() bool {
	return validStats[s]
}

func (s Stat) String() string {
	return string(s)
}
