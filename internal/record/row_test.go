package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minetally/minetally/internal/domain"
)

func TestNewCopiesFields(t *testing.T) {
	fields := map[string]any{"world": "earth"}
	row := New(2, fields)

	fields["world"] = "nether"

	v, ok := row.Field("world")
	require.True(t, ok)
	assert.Equal(t, "earth", v)
}

func TestNewStripsValueKey(t *testing.T) {
	row := New(7, map[string]any{"value": 99, "world": "earth"})

	assert.Equal(t, 7.0, row.Value())
	v, ok := row.Field("value")
	require.True(t, ok)
	assert.Equal(t, 7.0, v)
	assert.NotContains(t, row.Fields(), "value")
}

func TestFieldAbsent(t *testing.T) {
	row := New(1, nil)

	_, ok := row.Field("world")
	assert.False(t, ok)
}

func TestNumericFieldCoercion(t *testing.T) {
	row := New(1, map[string]any{
		"ints":    3,
		"floats":  2.5,
		"strings": "4.25",
		"words":   "earth",
	})

	assert.Equal(t, 3.0, row.NumericField("ints"))
	assert.Equal(t, 2.5, row.NumericField("floats"))
	assert.Equal(t, 4.25, row.NumericField("strings"))
	assert.Equal(t, 0.0, row.NumericField("words"))
	assert.Equal(t, 0.0, row.NumericField("missing"))
	assert.Equal(t, 1.0, row.NumericField("value"))
}

func TestConflictsWithSameFields(t *testing.T) {
	a := New(1, map[string]any{"world": "earth"})
	b := New(5, map[string]any{"world": "earth"})
	c := New(1, map[string]any{"world": "nether"})
	d := New(1, map[string]any{"world": "earth", "cause": "fall"})

	assert.True(t, a.ConflictsWith(b))
	assert.True(t, b.ConflictsWith(a))
	assert.False(t, a.ConflictsWith(c))
	assert.False(t, a.ConflictsWith(d))
}

func TestConflictsWithNumericFieldsAcrossTypes(t *testing.T) {
	// Rows loaded from jsonb carry float64 numbers; rows built in memory may
	// carry ints. They still describe the same logical event.
	inMemory := New(1, map[string]any{"slot": 3})
	loaded := New(2, map[string]any{"slot": float64(3)})

	assert.True(t, inMemory.ConflictsWith(loaded))
	assert.True(t, loaded.ConflictsWith(inMemory))
}

func TestResolveConflictKeepsLargerValue(t *testing.T) {
	a := New(4, map[string]any{"world": "earth"})
	b := New(9, map[string]any{"world": "earth"})

	merged := a.ResolveConflict(b)
	assert.Equal(t, 9.0, merged.Value())

	merged = b.ResolveConflict(a)
	assert.Equal(t, 9.0, merged.Value())
}

func TestResolveConflictUnionsFields(t *testing.T) {
	a := New(1, map[string]any{"world": "earth"})
	b := New(2, map[string]any{"world": "end", "cause": "fall"})

	merged := a.ResolveConflict(b)

	world, ok := merged.Field("world")
	require.True(t, ok)
	assert.Equal(t, "earth", world, "receiver's field wins on collision")

	cause, ok := merged.Field("cause")
	require.True(t, ok)
	assert.Equal(t, "fall", cause)
}

func TestResolveConflictDoesNotMutateInputs(t *testing.T) {
	a := New(1, map[string]any{"world": "earth"})
	b := New(5, map[string]any{"world": "earth"})

	_ = a.ResolveConflict(b)

	assert.Equal(t, 1.0, a.Value())
	assert.Equal(t, 5.0, b.Value())
}

func TestEqual(t *testing.T) {
	a := New(1, map[string]any{"world": "earth"})
	b := New(1, map[string]any{"world": "earth"})
	c := New(2, map[string]any{"world": "earth"})
	d := New(1, map[string]any{"world": "nether"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestSatisfies(t *testing.T) {
	row := New(5, map[string]any{"world": "earth", "mob": "zombie"})

	assert.True(t, row.Satisfies(nil))
	assert.True(t, row.Satisfies([]domain.Predicate{
		NewRequirement("world", "earth"),
	}))
	assert.True(t, row.Satisfies([]domain.Predicate{
		NewRequirement("world", "earth"),
		NewRequirement("mob", "zombie"),
	}))
	assert.False(t, row.Satisfies([]domain.Predicate{
		NewRequirement("world", "earth"),
		NewRequirement("mob", "creeper"),
	}))
}

func TestRequirementMatchesStringForm(t *testing.T) {
	row := New(5, map[string]any{"slot": 3})

	assert.True(t, NewRequirement("slot", "3").Matches(row))
	assert.False(t, NewRequirement("slot", "4").Matches(row))
	assert.False(t, NewRequirement("missing", "3").Matches(row))
	assert.True(t, NewRequirement("value", "5").Matches(row))
}

func TestStringSortsFields(t *testing.T) {
	row := New(2, map[string]any{"world": "earth", "cause": "fall"})

	assert.Equal(t, "{value: 2, cause: fall, world: earth}", row.String())
}
