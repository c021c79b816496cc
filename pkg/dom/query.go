package dom

import (
	"strings"
)

// selector is one compound selector: tag#id.class[attr][attr=value].
type selector struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

// parseSelectors parses a comma-separated list of compound selectors.
// Combinators are not supported; behaviors query direct item sets only.
func parseSelectors(s string) []selector {
	var out []selector
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, parseCompound(part))
	}
	return out
}

func parseCompound(s string) selector {
	var sel selector
	i := 0
	readIdent := func() string {
		start := i
		for i < len(s) && !strings.ContainsRune("#.[", rune(s[i])) {
			i++
		}
		return s[start:i]
	}

	sel.tag = strings.ToLower(readIdent())
	if sel.tag == "*" {
		sel.tag = ""
	}
	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			sel.id = readIdent()
		case '.':
			i++
			sel.classes = append(sel.classes, readIdent())
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				end = len(s) - i
			}
			body := s[i+1 : i+end]
			i += end + 1
			if name, value, ok := strings.Cut(body, "="); ok {
				sel.attrs = append(sel.attrs, attrMatch{
					name:     strings.TrimSpace(name),
					value:    strings.Trim(strings.TrimSpace(value), `"'`),
					hasValue: true,
				})
			} else {
				sel.attrs = append(sel.attrs, attrMatch{name: strings.TrimSpace(body)})
			}
		default:
			i++
		}
	}
	return sel
}

func (sel selector) matches(n *Node) bool {
	if sel.tag != "" && sel.tag != n.tag {
		return false
	}
	if sel.id != "" && sel.id != n.ID() {
		return false
	}
	if len(sel.classes) > 0 {
		have := strings.Fields(n.Attr("class"))
		for _, c := range sel.classes {
			found := false
			for _, h := range have {
				if h == c {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	for _, a := range sel.attrs {
		v, ok := n.attrs[a.name]
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

// Matches reports whether n matches the selector list.
func (n *Node) Matches(selectors string) bool {
	for _, sel := range parseSelectors(selectors) {
		if sel.matches(n) {
			return true
		}
	}
	return false
}

// QueryAll returns descendants of n (not n itself) matching the selector
// list, in document order.
func (n *Node) QueryAll(selectors string) []*Node {
	sels := parseSelectors(selectors)
	var out []*Node
	for _, c := range n.children {
		walk(c, func(x *Node) bool {
			for _, sel := range sels {
				if sel.matches(x) {
					out = append(out, x)
					break
				}
			}
			return true
		})
	}
	return out
}

// Query returns the first match of QueryAll, or nil.
func (n *Node) Query(selectors string) *Node {
	all := n.QueryAll(selectors)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}
