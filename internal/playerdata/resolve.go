package playerdata

import (
	"github.com/minetally/minetally/internal/domain"
)

// ResolveConflicts merges this store with another store for the same player
// into a fresh store that keeps every row that did not conflict and exactly
// one merged replacement row per conflicting pair. Neither input is
// modified; the result shares no mutable state with them.
//
// The merged store takes its player identity from the receiver. For each
// declared stat:
//
//   - If neither store has data for the stat, the stat stays absent from
//     the result.
//   - If one side has no rows, the other side's rows are kept as-is.
//   - Otherwise every row on one side is compared against every row on the
//     other side. Each conflicting pair contributes its resolved
//     replacement, and both originals are marked consumed. Rows not
//     consumed by any conflict are appended afterwards, receiver side
//     first.
//
// A row that conflicts with several rows on the other side produces one
// replacement per pair but is excluded from the remainder only once.
// Consumed rows are tracked by their position in the input slice, not by
// value equality, so a row that happens to be structurally equal to a
// conflicting row is still kept when it did not itself conflict.
func (p *PlayerInfo) ResolveConflicts(other *PlayerInfo) (*PlayerInfo, error) {
	if other == nil {
		return nil, domain.ErrPlayerInfoNotSet
	}

	merged := New(p.playerID)

	for _, stat := range domain.AllStats() {
		if !p.HasStat(stat) && !other.HasStat(stat) {
			continue
		}

		rows := p.Rows(stat)
		comparedRows := other.Rows(stat)

		resolved := []domain.Row{}

		switch {
		case len(comparedRows) == 0:
			// The other side never conflicts, keep everything.
			resolved = append(resolved, rows...)
		case len(rows) == 0:
			resolved = append(resolved, comparedRows...)
		default:
			consumed := make(map[int]bool, len(rows))
			consumedOther := make(map[int]bool, len(comparedRows))

			for i, row := range rows {
				for j, comparedRow := range comparedRows {
					if row.ConflictsWith(comparedRow) {
						resolved = append(resolved, row.ResolveConflict(comparedRow))
						consumed[i] = true
						consumedOther[j] = true
					}
				}
			}

			for i, row := range rows {
				if !consumed[i] {
					resolved = append(resolved, row)
				}
			}
			for j, comparedRow := range comparedRows {
				if !consumedOther[j] {
					resolved = append(resolved, comparedRow)
				}
			}
		}

		// Written even when empty: both inputs had an opinion about this
		// stat, and the merged store must reflect that.
		if err := merged.SetRows(stat, resolved); err != nil {
			return nil, err
		}
	}

	return merged, nil
}
