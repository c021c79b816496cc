// Package selection is the selection vocabulary shared by the list and table
// behaviors: a mode constraining cardinality and an immutable set of ids.
package selection

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Mode constrains how many ids a Set may hold.
type Mode string

const (
	// ModeNone never selects anything.
	ModeNone Mode = "none"
	// ModeSingle holds at most one id.
	ModeSingle Mode = "single"
	// ModeMultiple holds any number of ids.
	ModeMultiple Mode = "multiple"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeNone || m == ModeSingle || m == ModeMultiple
}

// OrDefault returns m, or def when m is empty.
func (m Mode) OrDefault(def Mode) Mode {
	if m == "" {
		return def
	}
	return m
}

// Set is an immutable, insertion-ordered set of ids. Every operation returns a
// new Set; the zero value is empty and ready to use.
type Set struct {
	ids []string
}

// NewSet builds a set from ids, dropping duplicates.
func NewSet(ids ...string) Set {
	var s Set
	for _, id := range ids {
		if !s.Has(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// Has reports membership.
func (s Set) Has(id string) bool {
	for _, x := range s.ids {
		if x == id {
			return true
		}
	}
	return false
}

// Len returns the number of ids.
func (s Set) Len() int { return len(s.ids) }

// IDs returns the ids in insertion order.
func (s Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// With returns s plus id.
func (s Set) With(id string) Set {
	if s.Has(id) {
		return s
	}
	ids := make([]string, len(s.ids), len(s.ids)+1)
	copy(ids, s.ids)
	return Set{ids: append(ids, id)}
}

// Without returns s minus id.
func (s Set) Without(id string) Set {
	ids := make([]string, 0, len(s.ids))
	for _, x := range s.ids {
		if x != id {
			ids = append(ids, x)
		}
	}
	return Set{ids: ids}
}

// Equal compares membership, ignoring order.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, id := range s.ids {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as an array of ids.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON decodes an array of ids.
func (s *Set) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewSet(ids...)
	return nil
}

// EncodeMsgpack encodes the set as an array of ids.
func (s Set) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(s.IDs())
}

// DecodeMsgpack decodes an array of ids.
func (s *Set) DecodeMsgpack(dec *msgpack.Decoder) error {
	var ids []string
	if err := dec.Decode(&ids); err != nil {
		return err
	}
	*s = NewSet(ids...)
	return nil
}

// Select adds id under mode. Single mode replaces the current selection.
// The boolean is false only when mode forbids selection.
func Select(mode Mode, s Set, id string) (Set, bool) {
	switch mode {
	case ModeSingle:
		return NewSet(id), true
	case ModeMultiple:
		return s.With(id), true
	default:
		return s, false
	}
}

// Deselect removes id under mode.
func Deselect(mode Mode, s Set, id string) (Set, bool) {
	if mode != ModeSingle && mode != ModeMultiple {
		return s, false
	}
	return s.Without(id), true
}

// Toggle flips id's membership under mode.
func Toggle(mode Mode, s Set, id string) (Set, bool) {
	if s.Has(id) {
		return Deselect(mode, s, id)
	}
	return Select(mode, s, id)
}

// SelectAll selects every id. Only multiple mode allows it.
func SelectAll(mode Mode, ids []string) (Set, bool) {
	if mode != ModeMultiple {
		return Set{}, false
	}
	return NewSet(ids...), true
}

// Status summarizes a selection against a total for tri-state checkboxes.
type Status string

const (
	StatusNone Status = "none"
	StatusSome Status = "some"
	StatusAll  Status = "all"
)

// StatusOf returns "none" when nothing is selected, "all" when the selection
// covers total (and total is positive), otherwise "some".
func StatusOf(s Set, total int) Status {
	switch {
	case s.Len() == 0:
		return StatusNone
	case total > 0 && s.Len() >= total:
		return StatusAll
	default:
		return StatusSome
	}
}
