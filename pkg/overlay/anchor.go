package overlay

import (
	"strconv"
	"strings"

	"github.com/dshills/headless/pkg/dom"
)

// Side is the side of the anchor the floating element sits on.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Align positions the floating element along the anchor's edge.
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// Placement is a side plus an alignment, e.g. bottom-start.
type Placement struct {
	Side  Side
	Align Align
}

// String renders the placement as "side-align" ("bottom" for center).
func (p Placement) String() string {
	if p.Align == "" || p.Align == AlignCenter {
		return string(p.Side)
	}
	return string(p.Side) + "-" + string(p.Align)
}

// ParsePlacement reads "bottom", "top-end" and the like. Unknown input yields
// bottom-start.
func ParsePlacement(s string) Placement {
	p := Placement{Side: SideBottom, Align: AlignStart}
	side, align, hasAlign := strings.Cut(s, "-")
	switch Side(side) {
	case SideTop, SideBottom, SideLeft, SideRight:
		p.Side = Side(side)
		p.Align = AlignCenter
	default:
		return p
	}
	if hasAlign {
		switch Align(align) {
		case AlignStart, AlignEnd:
			p.Align = Align(align)
		}
	}
	return p
}

// Position is a computed floating position.
type Position struct {
	X         float64
	Y         float64
	Placement Placement
}

// AnchorOptions configures anchor positioning.
type AnchorOptions struct {
	Anchor    *dom.Node
	Floating  *dom.Node
	Placement Placement
	Offset    float64
	// Flip moves the floating element to the opposite side when it would
	// overflow Boundary.
	Flip     bool
	Boundary dom.Rect

	OnPositionChange func(Position)
}

// Anchor keeps a floating element positioned against its anchor.
type Anchor interface {
	Update()
	Destroy()
}

// AnchorFactory creates an Anchor. Composites accept one so hosts can plug in
// real layout.
type AnchorFactory func(AnchorOptions) Anchor

// NewAnchor is the default AnchorFactory. It positions from element
// rectangles, writes left/top styles on the floating element and computes
// once immediately.
func NewAnchor(opts AnchorOptions) Anchor {
	if opts.Placement.Side == "" {
		opts.Placement = Placement{Side: SideBottom, Align: AlignStart}
	}
	a := &rectAnchor{opts: opts}
	a.Update()
	return a
}

type rectAnchor struct {
	opts      AnchorOptions
	last      Position
	computed  bool
	destroyed bool
}

func (a *rectAnchor) Update() {
	if a.destroyed || a.opts.Anchor == nil || a.opts.Floating == nil {
		return
	}
	ref := a.opts.Anchor.BoundingRect()
	fl := a.opts.Floating.BoundingRect()
	pl := a.opts.Placement
	pos := place(ref, fl, pl, a.opts.Offset)
	if a.opts.Flip && overflows(pos, fl, a.opts.Boundary) {
		flipped := Placement{Side: opposite(pl.Side), Align: pl.Align}
		alt := place(ref, fl, flipped, a.opts.Offset)
		if !overflows(alt, fl, a.opts.Boundary) {
			pos = alt
		}
	}
	a.opts.Floating.SetStyle("left", px(pos.X))
	a.opts.Floating.SetStyle("top", px(pos.Y))
	a.opts.Floating.SetAttr("data-placement", pos.Placement.String())
	if a.computed && pos == a.last {
		return
	}
	a.computed = true
	a.last = pos
	if a.opts.OnPositionChange != nil {
		a.opts.OnPositionChange(pos)
	}
}

func (a *rectAnchor) Destroy() { a.destroyed = true }

func place(ref, fl dom.Rect, pl Placement, offset float64) Position {
	pos := Position{Placement: pl}
	switch pl.Side {
	case SideTop:
		pos.Y = ref.Y - fl.Height - offset
	case SideLeft:
		pos.X = ref.X - fl.Width - offset
	case SideRight:
		pos.X = ref.Right() + offset
	default:
		pos.Y = ref.Bottom() + offset
	}
	vertical := pl.Side == SideTop || pl.Side == SideBottom || pl.Side == ""
	switch {
	case vertical && pl.Align == AlignStart:
		pos.X = ref.X
	case vertical && pl.Align == AlignEnd:
		pos.X = ref.Right() - fl.Width
	case vertical:
		pos.X = ref.X + (ref.Width-fl.Width)/2
	case pl.Align == AlignStart:
		pos.Y = ref.Y
	case pl.Align == AlignEnd:
		pos.Y = ref.Bottom() - fl.Height
	default:
		pos.Y = ref.Y + (ref.Height-fl.Height)/2
	}
	return pos
}

func overflows(pos Position, fl, boundary dom.Rect) bool {
	if boundary.Width == 0 && boundary.Height == 0 {
		return false
	}
	return pos.X < boundary.X || pos.Y < boundary.Y ||
		pos.X+fl.Width > boundary.Right() || pos.Y+fl.Height > boundary.Bottom()
}

func opposite(s Side) Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideTop
	}
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
