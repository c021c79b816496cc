package dom

import "strconv"

// Apply writes an attribute map onto n the way a rendering wrapper would:
// strings become attributes, tabIndex sets the tab index, other ints are
// stringified, true sets a boolean attribute and false or nil removes it.
func (n *Node) Apply(props map[string]any) *Node {
	for k, v := range props {
		switch val := v.(type) {
		case string:
			n.SetAttr(k, val)
		case int:
			if k == "tabIndex" {
				n.SetTabIndex(val)
			} else {
				n.SetAttr(k, strconv.Itoa(val))
			}
		case bool:
			if val {
				n.SetAttr(k, "")
			} else {
				n.RemoveAttr(k)
			}
		case nil:
			n.RemoveAttr(k)
		}
	}
	return n
}
