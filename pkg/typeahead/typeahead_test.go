package typeahead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/headless/pkg/keys"
	"github.com/dshills/headless/pkg/timer"
)

type match struct {
	item  string
	index int
}

func newMatcher(items *[]string, clock *timer.Manual) (*Matcher[string], *[]match) {
	var got []match
	m := New(Options[string]{
		Items:     func() []string { return *items },
		Text:      func(s string) string { return s },
		OnMatch:   func(item string, index int) { got = append(got, match{item, index}) },
		Scheduler: clock,
	})
	return m, &got
}

func TestMatcher_PrefixAccumulates(t *testing.T) {
	items := []string{"Apple", "Banana", "Blueberry", "Cherry"}
	clock := timer.NewManual()
	m, got := newMatcher(&items, clock)

	m.HandleKeyDown(keys.New("b"))
	m.HandleKeyDown(keys.New("L"))

	assert.Equal(t, "bl", m.Buffer())
	assert.Equal(t, []match{{"Banana", 1}, {"Blueberry", 2}}, *got)
}

func TestMatcher_IgnoresModifiersAndNamedKeys(t *testing.T) {
	items := []string{"apple"}
	m, got := newMatcher(&items, timer.NewManual())

	assert.False(t, m.HandleKeyDown(&keys.Event{Key: "a", Ctrl: true}))
	assert.False(t, m.HandleKeyDown(&keys.Event{Key: "a", Meta: true}))
	assert.False(t, m.HandleKeyDown(&keys.Event{Key: "a", Alt: true}))
	assert.False(t, m.HandleKeyDown(keys.New(keys.ArrowDown)))
	assert.Empty(t, *got)
	assert.Equal(t, "", m.Buffer())
}

func TestMatcher_NoMatchKeepsBuffer(t *testing.T) {
	items := []string{"apple"}
	m, got := newMatcher(&items, timer.NewManual())

	m.HandleKeyDown(keys.New("z"))
	assert.Empty(t, *got)
	assert.Equal(t, "z", m.Buffer())
}

func TestMatcher_TimeoutResetsBuffer(t *testing.T) {
	items := []string{"alpha", "beta", "bravo"}
	clock := timer.NewManual()
	m, got := newMatcher(&items, clock)

	m.HandleKeyDown(keys.New("b"))
	clock.Advance(400 * time.Millisecond)
	m.HandleKeyDown(keys.New("r"))
	assert.Equal(t, "br", m.Buffer(), "each keystroke re-arms the timer")
	assert.Equal(t, 1, clock.Pending(), "at most one pending timer")

	clock.Advance(DefaultTimeout)
	assert.Equal(t, "", m.Buffer())
	assert.Equal(t, 0, clock.Pending())

	m.HandleKeyDown(keys.New("a"))
	assert.Equal(t, match{"alpha", 0}, (*got)[len(*got)-1], "fresh search after expiry")
}

func TestMatcher_ItemsReevaluatedEachKeystroke(t *testing.T) {
	items := []string{"one"}
	m, got := newMatcher(&items, timer.NewManual())

	m.HandleKeyDown(keys.New("t"))
	assert.Empty(t, *got)

	items = []string{"one", "two"}
	m.Reset()
	m.HandleKeyDown(keys.New("t"))
	assert.Equal(t, []match{{"two", 1}}, *got)
}

func TestMatcher_StartIndexWraps(t *testing.T) {
	items := []string{"cat", "car", "dog", "cow"}
	var got []int
	focused := 1
	m := New(Options[string]{
		Items:      func() []string { return items },
		Text:       func(s string) string { return s },
		StartIndex: func() int { return focused + 1 },
		OnMatch:    func(_ string, i int) { got = append(got, i) },
		Scheduler:  timer.NewManual(),
	})

	m.Type("c")
	assert.Equal(t, []int{3}, got)

	focused = 3
	m.Reset()
	m.Type("c")
	assert.Equal(t, []int{3, 0}, got, "wraps past the end")
}

func TestMatcher_DestroyIsIdempotent(t *testing.T) {
	items := []string{"apple"}
	clock := timer.NewManual()
	m, got := newMatcher(&items, clock)

	m.Type("a")
	m.Destroy()
	m.Destroy()
	assert.Equal(t, 0, clock.Pending())
	assert.Equal(t, "", m.Buffer())

	m.Type("a")
	assert.Len(t, *got, 1)
}

func TestMatcher_SkipAndBufferObserver(t *testing.T) {
	items := []string{"apple", "apricot"}
	clock := timer.NewManual()
	var buffers []string
	var got []int
	m := New(Options[string]{
		Items:          func() []string { return items },
		Text:           func(s string) string { return s },
		Skip:           func(_ string, i int) bool { return i == 0 },
		OnMatch:        func(_ string, i int) { got = append(got, i) },
		OnBufferChange: func(b string) { buffers = append(buffers, b) },
		Scheduler:      clock,
	})

	m.Type("a")
	clock.Advance(time.Second)

	assert.Equal(t, []int{1}, got)
	assert.Equal(t, []string{"a", ""}, buffers)
}
