package aria

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProps(t *testing.T) {
	p := Props{"role": "option", "tabIndex": -1}
	q := p.Merge(Props{"aria-selected": Bool(true), "tabIndex": 0})

	assert.Equal(t, "option", q.String("role"))
	assert.Equal(t, "true", q.String("aria-selected"))
	idx, ok := q.TabIndex()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	// Merge does not touch the receiver.
	idx, _ = p.TabIndex()
	assert.Equal(t, -1, idx)
	assert.Equal(t, []string{"aria-selected", "role", "tabIndex"}, q.Keys())
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "25", Number(25))
	assert.Equal(t, "0.5", Number(0.5))
}
