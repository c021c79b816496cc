package table

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortData returns a sorted copy of rows ordered by value. Strings compare
// with the locale's collation, times by millisecond and numbers numerically.
// Nil values always sort after non-nil ones, in either direction.
// DirectionNone returns an unsorted copy. The sort is stable.
func SortData[T any](rows []T, value func(T) any, dir Direction, locale language.Tag) []T {
	out := slices.Clone(rows)
	if dir != Ascending && dir != Descending {
		return out
	}
	c := newComparer(locale)
	slices.SortStableFunc(out, func(a, b T) int {
		va, vb := value(a), value(b)
		na, nb := isNull(va), isNull(vb)
		switch {
		case na && nb:
			return 0
		case na:
			return 1
		case nb:
			return -1
		}
		r := c.compare(va, vb)
		if dir == Descending {
			r = -r
		}
		return r
	})
	return out
}

type comparer struct {
	collator *collate.Collator
}

func newComparer(locale language.Tag) *comparer {
	return &comparer{collator: collate.New(locale)}
}

func (c *comparer) compare(a, b any) int {
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return c.collator.CompareString(sa, sb)
		}
	}
	if ta, ok := asTime(a); ok {
		if tb, ok := asTime(b); ok {
			return cmp.Compare(ta.UnixMilli(), tb.UnixMilli())
		}
	}
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return cmp.Compare(fa, fb)
		}
	}
	return c.collator.CompareString(fmt.Sprint(a), fmt.Sprint(b))
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		return *t, true
	}
	return time.Time{}, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
