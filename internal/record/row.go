// Package record provides the concrete row value object stored in a
// playerdata.PlayerInfo. The persistence layer builds rows from database
// rows; the store and reconciler only ever see the domain.Row interface.
package record

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/minetally/minetally/internal/domain"
)

// valueField is the distinguished field name. Field("value") resolves to the
// aggregation value so callers can treat it like any other column.
const valueField = "value"

// Row is an immutable bag of named auxiliary fields plus the distinguished
// numeric value. Two rows conflict when they carry exactly the same
// auxiliary fields, meaning two data sources recorded the same logical
// event; the conflict resolves to a single row keeping the larger value
// (counters are monotonic, so the larger snapshot is the later one).
type Row struct {
	value  float64
	fields map[string]any
}

// New creates a row with the given value and auxiliary fields. The fields
// map is copied; the "value" key, if present, is ignored in favour of the
// explicit value argument.
func New(value float64, fields map[string]any) *Row {
	copied := make(map[string]any, len(fields))
	for name, v := range fields {
		if name == valueField {
			continue
		}
		copied[name] = v
	}
	return &Row{value: value, fields: copied}
}

// Field returns the named field, or ok=false if absent. "value" resolves to
// the distinguished value.
func (r *Row) Field(name string) (any, bool) {
	if name == valueField {
		return r.value, true
	}
	v, ok := r.fields[name]
	return v, ok
}

// NumericField returns the named field coerced to float64, or 0 when the
// field is absent or not numeric.
func (r *Row) NumericField(name string) float64 {
	v, ok := r.Field(name)
	if !ok {
		return 0
	}
	return toFloat(v)
}

// Value returns the distinguished numeric field used for aggregation.
func (r *Row) Value() float64 {
	return r.value
}

// Fields returns a copy of the auxiliary fields, without the value.
func (r *Row) Fields() map[string]any {
	copied := make(map[string]any, len(r.fields))
	for name, v := range r.fields {
		copied[name] = v
	}
	return copied
}

// ConflictsWith reports whether the other row describes the same logical
// event: same field names with equal values, the aggregation value aside.
func (r *Row) ConflictsWith(other domain.Row) bool {
	o, ok := other.(*Row)
	if !ok {
		return false
	}
	return fieldsEqual(r.fields, o.fields)
}

// ResolveConflict merges two conflicting rows into one replacement row
// carrying the union of their fields and the larger value.
func (r *Row) ResolveConflict(other domain.Row) domain.Row {
	merged := New(r.value, r.fields)
	o, ok := other.(*Row)
	if !ok {
		return merged
	}
	for name, v := range o.fields {
		if _, exists := merged.fields[name]; !exists {
			merged.fields[name] = v
		}
	}
	if o.value > merged.value {
		merged.value = o.value
	}
	return merged
}

// Equal reports structural equality: same value and same fields.
func (r *Row) Equal(other domain.Row) bool {
	o, ok := other.(*Row)
	if !ok {
		return false
	}
	return r.value == o.value && fieldsEqual(r.fields, o.fields)
}

// Satisfies reports whether the row matches every given predicate. An empty
// predicate list is vacuously satisfied.
func (r *Row) Satisfies(preds []domain.Predicate) bool {
	for _, pred := range preds {
		if !pred.Matches(r) {
			return false
		}
	}
	return true
}

// String renders the row for debugging, fields in sorted order.
func (r *Row) String() string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "{value: %v", r.value)
	for _, name := range names {
		fmt.Fprintf(&b, ", %s: %v", name, r.fields[name])
	}
	b.WriteString("}")
	return b.String()
}

// fieldsEqual compares two field maps by name and stringified value.
// Stringified comparison keeps rows loaded from jsonb (float64 numbers)
// equal to rows built in memory with int fields.
func fieldsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for name, av := range a {
		bv, ok := b[name]
		if !ok {
			return false
		}
		if !valueEqual(av, bv) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	if a == b {
		return true
	}
	af, aNum := numeric(a)
	bf, bNum := numeric(b)
	if aNum && bNum {
		return af == bf
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toFloat(v any) float64 {
	if f, ok := numeric(v); ok {
		return f
	}
	if s, ok := v.(string); ok {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}
