// Package roving implements the roving tabindex pattern over a live set of
// elements: exactly one item has tabindex=0, arrow keys move it, and native
// focus changes (clicks) keep it in sync.
package roving

import (
	"go.uber.org/zap"

	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/keys"
)

// Options configures a Controller.
type Options struct {
	// Container holds the items and receives the keydown/focusin listeners.
	Container *dom.Node
	// Selector picks the items inside Container. It is re-queried on every
	// interaction so items may come and go.
	Selector string
	// Orientation picks the arrow keys that move focus. Default Both.
	Orientation keys.Orientation
	// RTL mirrors the horizontal arrows.
	RTL bool
	// Loop wraps past either end; otherwise moves clamp at the ends.
	Loop bool
	// SkipDisabled steps over disabled items.
	SkipDisabled bool
	// OnFocus is called after focus moves to an item.
	OnFocus func(index int, el *dom.Node)

	Logger *zap.Logger
}

// Controller owns the roving tabindex for one container.
type Controller struct {
	opts    Options
	logger  *zap.Logger
	current int
	removes []func()
}

// New attaches a Controller to opts.Container. The initial index is the item
// already carrying tabindex=0, otherwise the first enabled item.
func New(opts Options) *Controller {
	opts.Orientation = opts.Orientation.OrDefault(keys.Both)
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{opts: opts, logger: logger.Named("roving"), current: -1}

	items := c.items()
	for i, el := range items {
		if ti, ok := el.TabIndex(); ok && ti == 0 {
			c.current = i
			break
		}
	}
	if c.current < 0 && len(items) > 0 {
		c.current = c.resolve(items, 0, 1)
	}
	c.applyTabIndex(items)

	if opts.Container != nil {
		c.removes = append(c.removes,
			opts.Container.AddEventListener(dom.EventKeyDown, c.handleKeyDown),
			opts.Container.AddEventListener(dom.EventFocusIn, c.handleFocusIn),
		)
	}
	return c
}

func (c *Controller) items() []*dom.Node {
	if c.opts.Container == nil {
		return nil
	}
	return c.opts.Container.QueryAll(c.opts.Selector)
}

// FocusedIndex returns the current index, or -1 when there are no items.
func (c *Controller) FocusedIndex() int {
	return c.current
}

// SetFocusedIndex moves focus toward index, resolving it against the loop and
// skip-disabled rules. When every item is disabled nothing changes.
func (c *Controller) SetFocusedIndex(index int) {
	step := 1
	if index < c.current {
		step = -1
	}
	c.moveTo(index, step)
}

func (c *Controller) moveTo(target, step int) {
	items := c.items()
	idx := c.resolve(items, target, step)
	if idx < 0 {
		c.logger.Debug("focus unchanged", zap.Int("target", target), zap.String("reason", "no enabled item"))
		return
	}
	c.current = idx
	c.applyTabIndex(items)
	el := items[idx]
	el.Focus()
	c.logger.Debug("focus moved", zap.Int("index", idx))
	if c.opts.OnFocus != nil {
		c.opts.OnFocus(idx, el)
	}
}

// resolve normalizes target by wrapping or clamping, then walks in the step
// direction past disabled items. It returns -1 for an empty list or when
// nothing is enabled.
func (c *Controller) resolve(items []*dom.Node, target, step int) int {
	n := len(items)
	if n == 0 {
		return -1
	}

	idx := target
	if c.opts.Loop {
		idx = ((target % n) + n) % n
	} else {
		idx = max(0, min(target, n-1))
	}
	if !c.opts.SkipDisabled || !items[idx].IsDisabled() {
		return idx
	}

	for i := 1; i < n; i++ {
		cand := idx + step*i
		if c.opts.Loop {
			cand = ((cand % n) + n) % n
		} else if cand < 0 || cand >= n {
			break
		}
		if !items[cand].IsDisabled() {
			return cand
		}
	}
	if !c.opts.Loop {
		// Ran into the end: settle on the nearest enabled item behind the target.
		for i := 1; i < n; i++ {
			cand := idx - step*i
			if cand < 0 || cand >= n {
				break
			}
			if !items[cand].IsDisabled() {
				return cand
			}
		}
	}
	return -1
}

func (c *Controller) applyTabIndex(items []*dom.Node) {
	for i, el := range items {
		if i == c.current {
			el.SetTabIndex(0)
		} else {
			el.SetTabIndex(-1)
		}
	}
}

func (c *Controller) handleKeyDown(e *dom.Event) {
	if e.Key == nil || e.Key.HasModifier() {
		return
	}
	keys.HandleArrow(e.Key, keys.ArrowOptions{
		Orientation: c.opts.Orientation,
		RTL:         c.opts.RTL,
		OnMove: func(m keys.Move, _ *keys.Event) {
			n := len(c.items())
			switch m {
			case keys.MovePrevious:
				c.moveTo(c.current-1, -1)
			case keys.MoveNext:
				c.moveTo(c.current+1, 1)
			case keys.MoveFirst:
				c.moveTo(0, 1)
			case keys.MoveLast:
				c.moveTo(n-1, -1)
			}
		},
	})
}

func (c *Controller) handleFocusIn(e *dom.Event) {
	items := c.items()
	for i, el := range items {
		if el == e.Target {
			if i != c.current {
				c.logger.Debug("focus synced", zap.Int("index", i))
			}
			c.current = i
			c.applyTabIndex(items)
			return
		}
	}
}

// Destroy removes the listeners. Tabindex values are left as they are.
func (c *Controller) Destroy() {
	for _, remove := range c.removes {
		remove()
	}
	c.removes = nil
}
