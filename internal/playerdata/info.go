// Package playerdata holds the in-memory statistics store for a single
// player and the reconciliation of two independently-loaded stores.
//
// A PlayerInfo maps each stat to the rows loaded for it, where each row
// mirrors one row in the database. The persistence layer populates and
// drains stores; the presentation layer reads aggregates from them.
package playerdata

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/minetally/minetally/internal/domain"
	"github.com/minetally/minetally/internal/utils"
)

// PlayerInfo stores the recorded statistics of one player as (stat, rows)
// pairs. A stat that has never been set is absent from the map; a stat that
// was explicitly set to an empty slice is present with no rows. The
// distinction matters: HasStat answers "has this store been told about this
// stat", not "are there any rows".
//
// PlayerInfo is not safe for concurrent mutation; one owner mutates a store
// at a time.
type PlayerInfo struct {
	playerID   uuid.UUID
	statistics map[domain.Stat][]domain.Row
}

// New creates an empty PlayerInfo for the given player.
func New(playerID uuid.UUID) *PlayerInfo {
	return &PlayerInfo{
		playerID:   playerID,
		statistics: make(map[domain.Stat][]domain.Row),
	}
}

// PlayerID returns the identity of the player this store describes.
func (p *PlayerInfo) PlayerID() uuid.UUID {
	return p.playerID
}

// Clone returns a store with a copied stat mapping that can be mutated
// without affecting the receiver. Rows are shared between the two stores;
// they are immutable value objects.
func (p *PlayerInfo) Clone() *PlayerInfo {
	clone := New(p.playerID)
	for stat, rows := range p.statistics {
		if rows == nil {
			continue
		}
		copied := make([]domain.Row, len(rows))
		copy(copied, rows)
		clone.statistics[stat] = copied
	}
	return clone
}

// Rows returns the rows stored for the given stat. Absence is always
// represented as an empty slice, never nil-with-meaning. The returned slice
// is a copy; mutating it does not affect the store.
func (p *PlayerInfo) Rows(stat domain.Stat) []domain.Row {
	rows, ok := p.statistics[stat]
	if !ok || rows == nil {
		return []domain.Row{}
	}
	out := make([]domain.Row, len(rows))
	copy(out, rows)
	return out
}

// Row returns the row at the given index for the stat, or ok=false if the
// index is out of range.
func (p *PlayerInfo) Row(stat domain.Stat, index int) (domain.Row, bool) {
	rows, ok := p.statistics[stat]
	if !ok || index < 0 || index >= len(rows) {
		return nil, false
	}
	return rows[index], true
}

// HasStat reports whether this store holds a row slice for the stat. An
// explicitly empty slice still counts as present.
func (p *PlayerInfo) HasStat(stat domain.Stat) bool {
	rows, ok := p.statistics[stat]
	return ok && rows != nil
}

// RowCount returns the number of rows stored for the stat.
func (p *PlayerInfo) RowCount(stat domain.Stat) int {
	return len(p.statistics[stat])
}

// TotalRowCount returns the number of rows stored across all declared stats.
func (p *PlayerInfo) TotalRowCount() int {
	total := 0
	for _, stat := range domain.AllStats() {
		total += p.RowCount(stat)
	}
	return total
}

// StatCount returns the number of stats with a mapped row slice.
func (p *PlayerInfo) StatCount() int {
	return len(p.statistics)
}

// FieldValue returns the named field of the row at the given index, or
// ok=false if the row does not exist or the field is absent.
func (p *PlayerInfo) FieldValue(stat domain.Stat, index int, fieldName string) (any, bool) {
	row, ok := p.Row(stat, index)
	if !ok {
		return nil, false
	}
	return row.Field(fieldName)
}

// TotalValue returns the sum of the value field across all rows of the stat,
// or 0 if there are none.
func (p *PlayerInfo) TotalValue(stat domain.Stat) float64 {
	total := 0.0
	for _, row := range p.statistics[stat] {
		total += row.Value()
	}
	return total
}

// TotalValueWhere returns the sum of the value field across the rows of the
// stat that satisfy every given predicate. With no predicates it is
// equivalent to TotalValue.
func (p *PlayerInfo) TotalValueWhere(stat domain.Stat, preds ...domain.Predicate) float64 {
	if len(preds) == 0 {
		return p.TotalValue(stat)
	}

	total := 0.0
	for _, row := range p.statistics[stat] {
		if !row.Satisfies(preds) {
			continue
		}
		total += row.Value()
	}
	return total
}

// TotalValueRounded returns TotalValue rounded to the given number of
// decimal places, half up.
func (p *PlayerInfo) TotalValueRounded(stat domain.Stat, decimals int) float64 {
	return utils.RoundTo(p.TotalValue(stat), decimals)
}

// SetRows replaces the row slice for the stat. An empty slice is legal and
// marks the stat as present with no rows.
func (p *PlayerInfo) SetRows(stat domain.Stat, rows []domain.Row) error {
	if stat == "" {
		return fmt.Errorf("%w: cannot set rows", domain.ErrStatNotSet)
	}
	if rows == nil {
		return fmt.Errorf("%w: cannot set rows for stat %s", domain.ErrRowsNotSet, stat)
	}
	p.statistics[stat] = rows
	return nil
}

// AddRow appends a row to the stat, creating the row slice if this is the
// first row for the stat.
func (p *PlayerInfo) AddRow(stat domain.Stat, row domain.Row) error {
	if stat == "" {
		return fmt.Errorf("%w: cannot add row", domain.ErrStatNotSet)
	}
	if row == nil {
		return fmt.Errorf("%w: cannot add row for stat %s", domain.ErrRowNotSet, stat)
	}
	rows, ok := p.statistics[stat]
	if !ok {
		rows = []domain.Row{}
	}
	p.statistics[stat] = append(rows, row)
	return nil
}

// RemoveRow removes the first row equal to the given row from the stat.
// Removing from a stat with no data is a no-op, not an error.
func (p *PlayerInfo) RemoveRow(stat domain.Stat, row domain.Row) error {
	if stat == "" {
		return fmt.Errorf("%w: cannot remove row", domain.ErrStatNotSet)
	}
	if row == nil {
		return fmt.Errorf("%w: cannot remove row for stat %s", domain.ErrRowNotSet, stat)
	}

	rows, ok := p.statistics[stat]
	if !ok {
		return nil
	}

	for i, stored := range rows {
		if stored.Equal(row) {
			p.statistics[stat] = append(rows[:i], rows[i+1:]...)
			break
		}
	}
	return nil
}

// Stats returns the stats currently mapped in this store, including stats
// whose row slice is empty. Order follows the declared stat order.
func (p *PlayerInfo) Stats() []domain.Stat {
	stats := make([]domain.Stat, 0, len(p.statistics))
	for _, stat := range domain.AllStats() {
		if _, ok := p.statistics[stat]; ok {
			stats = append(stats, stat)
		}
	}
	return stats
}

// AllRows returns every row in the store, concatenated per stat in declared
// stat order.
func (p *PlayerInfo) AllRows() []domain.Row {
	var rows []domain.Row
	for _, stat := range domain.AllStats() {
		rows = append(rows, p.Rows(stat)...)
	}
	return rows
}

// RowsByStat returns a snapshot of the full mapping, skipping any stat whose
// mapped slice is nil. The map and its slices are copies.
func (p *PlayerInfo) RowsByStat() map[domain.Stat][]domain.Row {
	snapshot := make(map[domain.Stat][]domain.Row, len(p.statistics))
	for stat, rows := range p.statistics {
		if rows == nil {
			continue
		}
		out := make([]domain.Row, len(rows))
		copy(out, rows)
		snapshot[stat] = out
	}
	return snapshot
}

// String renders the store for debugging. It is not a persistence or
// comparison format.
func (p *PlayerInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PlayerInfo of %s: {", p.playerID)

	first := true
	for _, stat := range domain.AllStats() {
		rows, ok := p.statistics[stat]
		if !ok {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false

		fmt.Fprintf(&b, "%s: {", stat)
		for i, row := range rows {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(row.String())
		}
		b.WriteString("}")
	}

	b.WriteString("}")
	return b.String()
}
