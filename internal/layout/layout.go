// Package layout computes where menu containers and their children sit on
// screen. The computation is pure: anchors derive from the current tree state
// alone and can be recomputed at any time.
package layout

import (
	"github.com/atomicstack/tty-menu/internal/menu"
	"github.com/charmbracelet/x/ansi"
)

// Horizontal bar cells render as "  Name  |", or "  Name (H)  |" when the
// child carries a hotkey annotation.
const (
	cellPadding = 2 // blanks on each side of the label
	cellDivider = 1 // trailing "|"
)

// CellLabel is the text a horizontal bar cell displays for a child.
func CellLabel(n menu.Node) string {
	if hk := n.Key(); hk != 0 {
		return n.Label() + " (" + string(hk) + ")"
	}
	return n.Label()
}

// CellWidth is the number of columns a horizontal bar cell occupies.
func CellWidth(n menu.Node) int {
	return cellPadding + ansi.StringWidth(CellLabel(n)) + cellPadding + cellDivider
}

// AnchorFor returns the anchor point for the childIndex-th child of parent.
//
// For a horizontal parent, children run left to right along the bar row; each
// child's column is the running sum of the preceding cell widths. A container
// child opening from the bar paints its rows starting one row below the
// returned anchor.
//
// For a vertical parent, children occupy one row each starting below the
// parent's anchor. A container child anchors one column past the parent's
// right edge so entering it cascades a submenu rightward; its first row then
// lines up with the child's own entry row. A plain item anchors at the row it
// is painted on, in the parent's column.
func AnchorFor(parent *menu.Container, childIndex int) menu.Point {
	child := parent.Child(childIndex)
	if child == nil {
		return parent.Anchor
	}
	if parent.Orientation == menu.Horizontal {
		col := parent.Anchor.Col
		for i := 0; i < childIndex; i++ {
			col += CellWidth(parent.Child(i))
		}
		return menu.Point{Row: parent.Anchor.Row, Col: col}
	}
	if _, ok := child.(*menu.Container); ok {
		return menu.Point{
			Row: parent.Anchor.Row + childIndex,
			Col: parent.Anchor.Col + parent.Width(),
		}
	}
	return menu.Point{
		Row: parent.Anchor.Row + 1 + childIndex,
		Col: parent.Anchor.Col,
	}
}

// Place records the anchor on the selected child container so rendering and
// later erasure agree on its geometry.
func Place(parent *menu.Container, childIndex int) *menu.Container {
	child, ok := parent.Child(childIndex).(*menu.Container)
	if !ok {
		return nil
	}
	child.Anchor = AnchorFor(parent, childIndex)
	return child
}

// BarWidth is the total width of a horizontal container's rendered row.
func BarWidth(c *menu.Container) int {
	w := 0
	for _, child := range c.Children() {
		w += CellWidth(child)
	}
	return w
}
