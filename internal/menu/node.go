package menu

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
)

// ErrInvalidAttach reports structural misuse of the tree builder: attaching a
// node that already has a parent, or a duplicate child name.
var ErrInvalidAttach = errors.New("invalid attach")

// widthMargin pads the widest child name when computing a container's display
// width, leaving room for the row brackets and the submenu marker.
const widthMargin = 4

// Orientation selects how a container lays out its children.
type Orientation uint8

const (
	Horizontal Orientation = iota // single menu bar row
	Vertical                      // drop-down, one child per row
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Point is a 1-based screen position.
type Point struct {
	Row int
	Col int
}

// Node is one menu tree entry: either *Container or *Item. The set is sealed;
// navigation and rendering switch exhaustively over the two variants.
type Node interface {
	Label() string
	Key() rune
	Parent() *Container

	attach(parent *Container, index int) error
}

// Container holds ordered children and can be entered. Structure (name,
// children, width) is fixed once navigation starts; only the runtime fields
// Selection, Anchor, and Active mutate afterwards, and only through the
// navigation engine and layout.
type Container struct {
	Name        string
	Hotkey      rune
	Orientation Orientation

	// Selection is -1 (nothing selected) or an index into the children.
	Selection int
	// Anchor is where rendering of this container starts.
	Anchor Point
	// Active marks the container as painted and receiving key events.
	Active bool

	children []Node
	names    map[string]struct{}
	width    int
	parent   *Container
	index    int
}

// NewContainer builds an empty container. Display width starts at the name
// width and only grows as children attach.
func NewContainer(name string, orientation Orientation) *Container {
	return &Container{
		Name:        name,
		Orientation: orientation,
		Selection:   -1,
		names:       make(map[string]struct{}),
		width:       ansi.StringWidth(name),
		index:       -1,
	}
}

// Label implements Node.
func (c *Container) Label() string { return c.Name }

// Key implements Node.
func (c *Container) Key() rune { return c.Hotkey }

// Parent returns the owning container, nil for the root.
func (c *Container) Parent() *Container { return c.parent }

// Index is the node's position among its parent's children, -1 when detached.
func (c *Container) Index() int { return c.index }

// Width is the display width: the widest child name plus a fixed margin,
// never less than the container's own name width.
func (c *Container) Width() int { return c.width }

// Children returns the ordered child nodes. Insertion order is display order.
func (c *Container) Children() []Node { return c.children }

// ChildCount reports the number of attached children.
func (c *Container) ChildCount() int { return len(c.children) }

// Child returns the child at index i, or nil when out of range.
func (c *Container) Child(i int) Node {
	if i < 0 || i >= len(c.children) {
		return nil
	}
	return c.children[i]
}

// SelectedChild returns the child at the current selection, or nil.
func (c *Container) SelectedChild() Node {
	return c.Child(c.Selection)
}

// Attach adds child as the last entry of c. It fails when the child already
// has a parent or a sibling shares its name. Attach is a build-time, one-shot
// operation; there is no detach.
func (c *Container) Attach(child Node) error {
	return child.attach(c, len(c.children))
}

func (c *Container) attach(parent *Container, index int) error {
	if c.parent != nil {
		return fmt.Errorf("attach %q to %q: %w: node already has a parent", c.Name, parent.Name, ErrInvalidAttach)
	}
	if err := parent.admit(c); err != nil {
		return err
	}
	c.parent = parent
	c.index = index
	return nil
}

// admit records the child slot, enforcing name uniqueness and growing the
// display width.
func (c *Container) admit(child Node) error {
	name := child.Label()
	if _, dup := c.names[name]; dup {
		return fmt.Errorf("attach %q to %q: %w: duplicate child name", name, c.Name, ErrInvalidAttach)
	}
	c.names[name] = struct{}{}
	c.children = append(c.children, child)
	if w := ansi.StringWidth(name) + widthMargin; w > c.width {
		c.width = w
	}
	return nil
}

// ActionFunc is a leaf action body. Output must go through the supplied sink;
// the terminal belongs to the action boundary for the duration of the call.
type ActionFunc func(out io.Writer, args []interface{}) error

// Item is a leaf node bound to an invocable action.
type Item struct {
	Name   string
	Hotkey rune
	Action ActionFunc

	// Args are static arguments passed to the action. They take precedence
	// over prompted input.
	Args []interface{}
	// PromptForArgs requests a line of argument text before invocation.
	PromptForArgs bool
	// Background runs the action on its own goroutine.
	Background bool
	// Pause waits for a key press after the action finishes.
	Pause bool

	parent *Container
	index  int
}

// NewItem builds a leaf bound to the given action.
func NewItem(name string, action ActionFunc) *Item {
	return &Item{Name: name, Action: action, index: -1}
}

// Label implements Node.
func (i *Item) Label() string { return i.Name }

// Key implements Node.
func (i *Item) Key() rune { return i.Hotkey }

// Parent returns the owning container.
func (i *Item) Parent() *Container { return i.parent }

// Index is the node's position among its parent's children, -1 when detached.
func (i *Item) Index() int { return i.index }

func (i *Item) attach(parent *Container, index int) error {
	if i.parent != nil {
		return fmt.Errorf("attach %q to %q: %w: node already has a parent", i.Name, parent.Name, ErrInvalidAttach)
	}
	if err := parent.admit(i); err != nil {
		return err
	}
	i.parent = parent
	i.index = index
	return nil
}

// IsActivatable reports whether the node is a container that can be entered.
// A childless container can be focused on but never entered.
func IsActivatable(n Node) bool {
	c, ok := n.(*Container)
	return ok && len(c.children) > 0
}

// Count walks the tree and tallies containers and items, root included.
func Count(root *Container) (containers, items int) {
	containers = 1
	for _, child := range root.children {
		switch n := child.(type) {
		case *Container:
			sub, leaves := Count(n)
			containers += sub
			items += leaves
		case *Item:
			items++
		}
	}
	return containers, items
}
