package record

import (
	"fmt"

	"github.com/minetally/minetally/internal/domain"
)

// Requirement restricts an aggregation to rows whose named field matches a
// value. Field values are compared by their string form, so numeric fields
// can be matched with "1" as well as 1.
//
// A typical call site:
//
//	info.TotalValueWhere(domain.StatBlocksBroken,
//		record.NewRequirement("world", "earth"))
type Requirement struct {
	FieldName string
	Want      string
}

// NewRequirement creates a requirement on a single field.
func NewRequirement(fieldName, want string) Requirement {
	return Requirement{FieldName: fieldName, Want: want}
}

// Matches reports whether the row carries the field with the wanted value.
func (q Requirement) Matches(row domain.Row) bool {
	v, ok := row.Field(q.FieldName)
	if !ok {
		return false
	}
	return fmt.Sprint(v) == q.Want
}
