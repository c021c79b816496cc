package selection

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetIsImmutable(t *testing.T) {
	a := NewSet("x", "y", "x")
	b := a.With("z")
	c := b.Without("x")

	assert.Equal(t, []string{"x", "y"}, a.IDs())
	assert.Equal(t, []string{"x", "y", "z"}, b.IDs())
	assert.Equal(t, []string{"y", "z"}, c.IDs())
	assert.True(t, NewSet("z", "y").Equal(c))
}

func TestModes(t *testing.T) {
	s, ok := Select(ModeNone, Set{}, "a")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	s, ok = Select(ModeSingle, NewSet("a"), "b")
	assert.True(t, ok)
	assert.Equal(t, []string{"b"}, s.IDs())

	s, _ = Select(ModeMultiple, NewSet("a"), "b")
	assert.Equal(t, []string{"a", "b"}, s.IDs())

	s, _ = Toggle(ModeMultiple, s, "a")
	assert.Equal(t, []string{"b"}, s.IDs())

	_, ok = SelectAll(ModeSingle, []string{"a", "b"})
	assert.False(t, ok)
	s, ok = SelectAll(ModeMultiple, []string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestSingleModeNeverExceedsOne(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	ids := []string{"a", "b", "c", "d"}
	var s Set
	for i := 0; i < 500; i++ {
		id := ids[r.Intn(len(ids))]
		if r.Intn(2) == 0 {
			s, _ = Select(ModeSingle, s, id)
		} else {
			s, _ = Toggle(ModeSingle, s, id)
		}
		require.LessOrEqual(t, s.Len(), 1)
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusNone, StatusOf(Set{}, 3))
	assert.Equal(t, StatusSome, StatusOf(NewSet("a"), 3))
	assert.Equal(t, StatusAll, StatusOf(NewSet("a", "b", "c"), 3))
	assert.Equal(t, StatusSome, StatusOf(NewSet("a"), 0))
}

func TestSetJSON(t *testing.T) {
	data, err := json.Marshal(NewSet("b", "a"))
	require.NoError(t, err)
	assert.JSONEq(t, `["b","a"]`, string(data))

	var s Set
	require.NoError(t, json.Unmarshal([]byte(`["x","x","y"]`), &s))
	assert.Equal(t, []string{"x", "y"}, s.IDs())

	empty, err := json.Marshal(Set{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))
}
