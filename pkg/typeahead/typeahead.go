// Package typeahead jumps to the item whose text starts with the characters
// typed recently.
//
// Typed characters accumulate in a lowercase buffer. Every keystroke re-arms a
// single timer; when it fires the buffer empties and the next keystroke starts
// a fresh search.
package typeahead

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/headless/pkg/keys"
	"github.com/dshills/headless/pkg/timer"
)

// DefaultTimeout is how long the buffer survives without a keystroke.
const DefaultTimeout = 500 * time.Millisecond

// Options configures a Matcher.
type Options[T any] struct {
	// Items returns the current item list. It is called on every keystroke,
	// never cached.
	Items func() []T
	// Text returns the searchable text of an item.
	Text func(T) string
	// OnMatch receives the first matching item and its index.
	OnMatch func(item T, index int)
	// StartIndex, when set, returns where the scan begins; the scan then wraps
	// around the end of the list. When nil the scan starts at index 0.
	StartIndex func() int
	// OnBufferChange observes every buffer change, including the timeout clear.
	OnBufferChange func(buffer string)
	// Skip excludes items (for example disabled ones) from matching.
	Skip func(item T, index int) bool

	Timeout   time.Duration
	Scheduler timer.Scheduler
	Locale    language.Tag
	Logger    *zap.Logger
}

// Matcher accumulates typed characters and matches them against items.
type Matcher[T any] struct {
	opts   Options[T]
	logger *zap.Logger

	mu      sync.Mutex
	buffer  string
	pending timer.Stopper
	// generation guards against a stale timer clearing a newer buffer.
	generation uint64
	destroyed  bool
}

// New creates a Matcher.
func New[T any](opts Options[T]) *Matcher[T] {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	opts.Scheduler = timer.OrReal(opts.Scheduler)
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher[T]{opts: opts, logger: logger.Named("typeahead")}
}

// HandleKeyDown feeds a key event to the matcher. Events with Ctrl, Meta or
// Alt held and keys that are not a single printable character are ignored.
// It reports whether the key was consumed into the buffer.
func (m *Matcher[T]) HandleKeyDown(e *keys.Event) bool {
	if e.HasModifier() || !e.IsPrintable() {
		return false
	}
	return m.Type(e.Key)
}

// Type appends one character to the buffer, re-arms the timer and searches.
func (m *Matcher[T]) Type(char string) bool {
	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return false
	}
	m.buffer += m.lower(char)
	buffer := m.buffer
	m.rearmLocked()
	m.mu.Unlock()

	if m.opts.OnBufferChange != nil {
		m.opts.OnBufferChange(buffer)
	}
	m.search(buffer)
	return true
}

func (m *Matcher[T]) rearmLocked() {
	if m.pending != nil {
		m.pending.Stop()
	}
	m.generation++
	gen := m.generation
	m.pending = m.opts.Scheduler.AfterFunc(m.opts.Timeout, func() {
		m.expire(gen)
	})
}

func (m *Matcher[T]) expire(gen uint64) {
	m.mu.Lock()
	if gen != m.generation || m.destroyed {
		m.mu.Unlock()
		return
	}
	m.buffer = ""
	m.pending = nil
	m.mu.Unlock()

	m.logger.Debug("buffer expired")
	if m.opts.OnBufferChange != nil {
		m.opts.OnBufferChange("")
	}
}

func (m *Matcher[T]) search(buffer string) {
	if m.opts.Items == nil || m.opts.Text == nil {
		return
	}
	items := m.opts.Items()
	n := len(items)
	if n == 0 {
		return
	}

	start := 0
	if m.opts.StartIndex != nil {
		start = ((m.opts.StartIndex() % n) + n) % n
	}

	for i := 0; i < n; i++ {
		idx := (start + i) % n
		item := items[idx]
		if m.opts.Skip != nil && m.opts.Skip(item, idx) {
			continue
		}
		if strings.HasPrefix(m.lower(m.opts.Text(item)), buffer) {
			m.logger.Debug("match", zap.String("buffer", buffer), zap.Int("index", idx))
			if m.opts.OnMatch != nil {
				m.opts.OnMatch(item, idx)
			}
			return
		}
	}
	m.logger.Debug("no match", zap.String("buffer", buffer))
}

// lower folds text with the configured locale. A Caser is stateful, so a
// fresh one is built per call.
func (m *Matcher[T]) lower(s string) string {
	return cases.Lower(m.opts.Locale).String(s)
}

// Buffer returns the current buffer.
func (m *Matcher[T]) Buffer() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buffer
}

// Reset clears the buffer and cancels the pending timer.
func (m *Matcher[T]) Reset() {
	m.mu.Lock()
	changed := m.clearLocked()
	m.mu.Unlock()

	if changed && m.opts.OnBufferChange != nil {
		m.opts.OnBufferChange("")
	}
}

func (m *Matcher[T]) clearLocked() bool {
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
	m.generation++
	changed := m.buffer != ""
	m.buffer = ""
	return changed
}

// Destroy clears the buffer and timer. Later calls are ignored.
func (m *Matcher[T]) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
	m.destroyed = true
}
