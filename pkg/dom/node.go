package dom

import (
	"strconv"
	"strings"
)

// Node is an element in a Document.
type Node struct {
	doc      *Document
	tag      string
	attrs    map[string]string
	style    map[string]string
	text     string
	parent   *Node
	children []*Node
	rect     Rect

	listeners map[string][]*listener
	scrolls   []string
}

func newNode(doc *Document, tag string) *Node {
	return &Node{
		doc:       doc,
		tag:       strings.ToLower(tag),
		attrs:     make(map[string]string),
		style:     make(map[string]string),
		listeners: make(map[string][]*listener),
	}
}

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// Tag returns the lowercase tag name.
func (n *Node) Tag() string { return n.tag }

// ID returns the id attribute.
func (n *Node) ID() string { return n.attrs["id"] }

// SetID sets the id attribute.
func (n *Node) SetID(id string) *Node {
	return n.SetAttr("id", id)
}

// Attr returns an attribute value, or "" when absent.
func (n *Node) Attr(name string) string { return n.attrs[name] }

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// SetAttr sets an attribute and returns n for chaining.
func (n *Node) SetAttr(name, value string) *Node {
	n.attrs[name] = value
	return n
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, name)
}

// TabIndex returns the parsed tabindex attribute and whether it is set.
func (n *Node) TabIndex() (int, bool) {
	v, ok := n.attrs["tabindex"]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

// SetTabIndex sets the tabindex attribute.
func (n *Node) SetTabIndex(i int) {
	n.attrs["tabindex"] = strconv.Itoa(i)
}

// Style returns an inline style property.
func (n *Node) Style(prop string) string { return n.style[prop] }

// SetStyle sets an inline style property; an empty value removes it.
func (n *Node) SetStyle(prop, value string) {
	if value == "" {
		delete(n.style, prop)
		return
	}
	n.style[prop] = value
}

// SetText replaces the node's own text.
func (n *Node) SetText(text string) *Node {
	n.text = text
	return n
}

// Text returns the text content of the node and its descendants.
func (n *Node) Text() string {
	if len(n.children) == 0 {
		return n.text
	}
	var sb strings.Builder
	sb.WriteString(n.text)
	for _, c := range n.children {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

// BoundingRect returns the layout box.
func (n *Node) BoundingRect() Rect { return n.rect }

// SetRect sets the layout box.
func (n *Node) SetRect(r Rect) *Node {
	n.rect = r
	return n
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// AppendChild moves child under n.
func (n *Node) AppendChild(child *Node) *Node {
	if child.parent != nil {
		child.Remove()
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Remove detaches n from its parent. Focus inside the removed subtree falls
// back to the body.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
	if n.doc != nil && n.doc.active != nil && n.Contains(n.doc.active) {
		n.doc.active = nil
	}
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for c := other; c != nil; c = c.parent {
		if c == n {
			return true
		}
	}
	return false
}

// IsConnected reports whether the node is attached to its document body.
func (n *Node) IsConnected() bool {
	return n.doc != nil && n.doc.body.Contains(n)
}

// Focus moves document focus to n.
func (n *Node) Focus() {
	if n.doc != nil {
		n.doc.Focus(n)
	}
}

// ScrollIntoView asks the document's scroller to reveal n. block follows the
// DOM vocabulary: "start", "center", "end" or "nearest".
func (n *Node) ScrollIntoView(block string) {
	n.scrolls = append(n.scrolls, block)
	if n.doc != nil && n.doc.scroller != nil {
		n.doc.scroller(n, block)
	}
}

// ScrollRequests returns the block values of every ScrollIntoView call.
func (n *Node) ScrollRequests() []string {
	out := make([]string, len(n.scrolls))
	copy(out, n.scrolls)
	return out
}
