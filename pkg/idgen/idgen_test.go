package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence(t *testing.T) {
	s := NewSequence("menu")
	assert.Equal(t, "menu-1", s.Next())
	assert.Equal(t, "menu-2", s.Next())

	other := NewSequence("")
	assert.Equal(t, "headless-1", other.Next(), "sequences do not share state")
}

func TestUUID(t *testing.T) {
	g := UUID("slider")
	a, b := g.Next(), g.Next()

	assert.True(t, strings.HasPrefix(a, "slider-"))
	assert.Len(t, a, len("slider-")+8)
	assert.NotEqual(t, a, b)
}

func TestFuncAndOrSequence(t *testing.T) {
	g := OrSequence(Func(func() string { return "fixed" }), "x")
	assert.Equal(t, "fixed", g.Next())
	assert.Equal(t, "x-1", OrSequence(nil, "x").Next())
}
