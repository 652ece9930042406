package domain

// Row is one recorded observation for a Stat: a bag of named fields plus a
// distinguished numeric value used for aggregation. A Row corresponds to one
// row in the player_stats table.
//
// The store treats rows as opaque: equality, conflict detection and conflict
// resolution are owned by the implementation (see internal/record).
type Row interface {
	// Field returns the named field value, or ok=false if the row does not
	// carry that field.
	Field(name string) (any, bool)

	// NumericField returns the named field coerced to a float64, or 0 if the
	// field is absent or not numeric.
	NumericField(name string) float64

	// Value returns the distinguished numeric field used for aggregation.
	Value() float64

	// ConflictsWith reports whether this row and other describe the same
	// logical event recorded by two independent data sources.
	ConflictsWith(other Row) bool

	// ResolveConflict merges this row with a conflicting row into a single
	// replacement row. Neither input is modified.
	ResolveConflict(other Row) Row

	// Equal reports structural equality, used for containment and removal.
	Equal(other Row) bool

	// Satisfies reports whether the row matches every given predicate.
	// An empty predicate list is vacuously satisfied.
	Satisfies(preds []Predicate) bool

	String() string
}

// Predicate is a condition over a single row. A sequence of predicates has
// AND semantics: a row passes only if every predicate matches.
type Predicate interface {
	Matches(row Row) bool
}
