// Package aria holds the plain attribute objects behaviors hand to rendering
// wrappers.
package aria

import (
	"sort"
	"strconv"
)

// Props is a set of element attributes: role, aria-*, id, tabIndex and a few
// data-* hooks. Values are strings except tabIndex, which is an int, and boolean
// HTML attributes such as disabled.
type Props map[string]any

// Bool renders a boolean ARIA state ("true"/"false").
func Bool(b bool) string {
	return strconv.FormatBool(b)
}

// Number renders a numeric ARIA value without trailing zeros.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Merge returns a new Props with other's entries layered over p's.
func (p Props) Merge(other Props) Props {
	out := make(Props, len(p)+len(other))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// String returns the attribute as a string, or "" if absent.
func (p Props) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// TabIndex returns the tabIndex entry and whether it is set.
func (p Props) TabIndex() (int, bool) {
	v, ok := p["tabIndex"].(int)
	return v, ok
}

// Keys returns the attribute names in sorted order.
func (p Props) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
