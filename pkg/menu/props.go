package menu

import (
	"strconv"

	"github.com/dshills/headless/pkg/aria"
)

func (m *Menu) triggerID() string { return m.id + "-trigger" }
func (m *Menu) contentID() string { return m.id + "-content" }

// ItemID returns the element id of item index.
func (m *Menu) ItemID(index int) string { return m.id + "-item-" + strconv.Itoa(index) }

// TriggerProps returns the attributes for the trigger button.
func (m *Menu) TriggerProps() aria.Props {
	p := aria.Props{
		"id":            m.triggerID(),
		"aria-haspopup": "menu",
		"aria-expanded": aria.Bool(m.state.Open()),
		"aria-controls": m.contentID(),
		"data-state":    string(m.state.Status),
	}
	if m.opts.Kind == KindSelect {
		p["role"] = "combobox"
		p["aria-haspopup"] = "listbox"
		if i := m.indexOf(m.state.Value); i >= 0 {
			p["aria-label"] = m.items[i].Label
		}
	}
	return p
}

// ContentProps returns the attributes for the popup.
func (m *Menu) ContentProps() aria.Props {
	role := "menu"
	if m.opts.Kind == KindSelect {
		role = "listbox"
	}
	p := aria.Props{
		"id":               m.contentID(),
		"role":             role,
		"aria-labelledby":  m.triggerID(),
		"aria-orientation": "vertical",
		"tabIndex":         -1,
		"data-state":       string(m.state.Status),
	}
	if !m.state.Open() {
		p["hidden"] = true
	}
	return p
}

// ItemProps returns the attributes for item index.
func (m *Menu) ItemProps(index int) aria.Props {
	p := aria.Props{
		"id":             m.ItemID(index),
		"role":           "menuitem",
		"data-menu-item": "",
		"data-index":     strconv.Itoa(index),
		"tabIndex":       -1,
	}
	if index < 0 || index >= len(m.items) {
		return p
	}
	it := m.items[index]
	if m.opts.Kind == KindSelect {
		p["role"] = "option"
		p["aria-selected"] = aria.Bool(it.Value == m.state.Value)
	}
	if it.Disabled {
		p["aria-disabled"] = "true"
	}
	if index == m.state.ActiveIndex {
		p["data-highlighted"] = ""
		p["tabIndex"] = 0
	}
	return p
}
