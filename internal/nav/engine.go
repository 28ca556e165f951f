// Package nav implements the menu navigation state machine. One logical key
// is consumed per step; each step mutates the focus path and selection state,
// then asks the renderer to erase stale regions and paint updated ones.
// Rendering failures are logged and absorbed: terminal state never drives
// selection state.
package nav

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/atomicstack/tty-menu/internal/action"
	"github.com/atomicstack/tty-menu/internal/layout"
	"github.com/atomicstack/tty-menu/internal/logging"
	"github.com/atomicstack/tty-menu/internal/logging/events"
	"github.com/atomicstack/tty-menu/internal/menu"
	"github.com/atomicstack/tty-menu/internal/render"
	"github.com/atomicstack/tty-menu/internal/term"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Invoker runs a leaf item and reports how it went. Satisfied by
// *action.Boundary; tests substitute fakes.
type Invoker interface {
	Invoke(item *menu.Item) action.Outcome
}

// Engine drives the focus path over a menu tree.
type Engine struct {
	root     *menu.Container
	focus    *menu.Container
	renderer *render.Renderer
	keys     term.KeySource
	invoker  Invoker
}

// New builds an engine rooted at root. The root container becomes the initial
// focus with nothing selected.
func New(root *menu.Container, renderer *render.Renderer, keys term.KeySource, invoker Invoker) *Engine {
	root.Active = true
	root.Selection = -1
	if root.Anchor.Row < 1 {
		root.Anchor = menu.Point{Row: 1, Col: 1}
	}
	return &Engine{
		root:     root,
		focus:    root,
		renderer: renderer,
		keys:     keys,
		invoker:  invoker,
	}
}

// Focus returns the container currently receiving key events.
func (e *Engine) Focus() *menu.Container { return e.focus }

// Root returns the tree root.
func (e *Engine) Root() *menu.Container { return e.root }

// Run paints the root and processes keys until the exit key or the key
// source is exhausted. Each key is fully handled, erase and draw included,
// before the next is read.
func (e *Engine) Run() error {
	e.draw(e.root)
	e.renderer.Flush()
	for {
		key, err := e.keys.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read key: %w", err)
		}
		quit := e.HandleKey(key)
		e.renderer.Flush()
		if quit {
			events.Nav.Quit()
			return nil
		}
	}
}

// HandleKey processes a single logical key and reports whether the loop
// should terminate. Unrecognized symbols are absorbed.
func (e *Engine) HandleKey(key term.Key) bool {
	events.Nav.Key(e.focus.Name, key.String())
	switch key.Sym {
	case term.SymUp:
		e.handleUp()
	case term.SymDown:
		e.handleDown()
	case term.SymLeft:
		e.handleLeft()
	case term.SymRight:
		e.handleRight()
	case term.SymEnter:
		return e.handleEnter()
	case term.SymEscape:
		return e.handleEscape()
	case term.SymRune:
		e.handleRune(key.Rune)
	}
	return false
}

func (e *Engine) handleUp() {
	f := e.focus
	if f.Orientation == menu.Horizontal {
		return
	}
	if f.Selection > 0 {
		f.Selection--
		events.Nav.Cursor(f.Name, f.Selection)
		e.draw(f)
		return
	}
	// Below the first row there is nowhere to go but out.
	e.exitFocused()
}

func (e *Engine) handleDown() {
	f := e.focus
	if f.Orientation == menu.Horizontal {
		child := f.SelectedChild()
		if child != nil && menu.IsActivatable(child) {
			e.enterChild(f.Selection, 0)
		}
		return
	}
	if f.Selection < f.ChildCount()-1 {
		f.Selection++
		events.Nav.Cursor(f.Name, f.Selection)
		e.draw(f)
	}
}

func (e *Engine) handleRight() {
	f := e.focus
	if f.Orientation == menu.Horizontal {
		// Clamp at the last cell; the bar does not wrap around.
		if f.Selection < f.ChildCount()-1 {
			f.Selection++
			events.Nav.Cursor(f.Name, f.Selection)
			e.draw(f)
		}
		return
	}
	if f.Selection == -1 {
		if f.ChildCount() > 0 {
			f.Selection = 0
			events.Nav.Cursor(f.Name, f.Selection)
			e.draw(f)
		}
		return
	}
	if child := f.SelectedChild(); child != nil && menu.IsActivatable(child) {
		e.enterChild(f.Selection, -1)
	}
}

func (e *Engine) handleLeft() {
	f := e.focus
	if f.Orientation == menu.Horizontal {
		if f.Selection > 0 {
			f.Selection--
			events.Nav.Cursor(f.Name, f.Selection)
			e.draw(f)
		}
		return
	}
	if f.Selection <= 0 {
		e.exitFocused()
		return
	}
	f.Selection--
	events.Nav.Cursor(f.Name, f.Selection)
	e.draw(f)
}

func (e *Engine) handleEnter() bool {
	f := e.focus
	if f.Orientation == menu.Vertical && f.Selection == -1 {
		if f.ChildCount() > 0 {
			f.Selection = 0
			events.Nav.Cursor(f.Name, f.Selection)
			e.draw(f)
		}
		return false
	}
	child := f.SelectedChild()
	if child == nil {
		return false
	}
	switch n := child.(type) {
	case *menu.Container:
		if menu.IsActivatable(n) {
			e.enterChild(f.Selection, -1)
		}
		// A childless container is focusable but inert.
	case *menu.Item:
		return e.invokeLeaf(n)
	}
	return false
}

func (e *Engine) handleEscape() bool {
	f := e.focus
	if f.Parent() == nil {
		return true
	}
	if f.Orientation == menu.Vertical && f.Selection == -1 && f.Parent() == e.root {
		e.exitFocused()
	}
	return false
}

// handleRune moves the selection to the child whose hotkey matches, falling
// back to the best fuzzy name match.
func (e *Engine) handleRune(r rune) {
	f := e.focus
	if f.ChildCount() == 0 {
		return
	}
	idx := -1
	for i, child := range f.Children() {
		if hk := child.Key(); hk != 0 && unicode.ToLower(hk) == unicode.ToLower(r) {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = bestNameMatch(f, r)
	}
	if idx < 0 || idx == f.Selection {
		return
	}
	f.Selection = idx
	events.Nav.Cursor(f.Name, f.Selection)
	e.draw(f)
}

func bestNameMatch(f *menu.Container, r rune) int {
	labels := make([]string, f.ChildCount())
	for i, child := range f.Children() {
		labels[i] = child.Label()
	}
	query := string(r)
	for i, label := range labels {
		if strings.HasPrefix(strings.ToLower(label), strings.ToLower(query)) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	return best.OriginalIndex
}

// enterChild moves focus into the selected child container, anchoring and
// painting it. childSelection seeds the child's cursor (-1 or 0).
func (e *Engine) enterChild(index, childSelection int) {
	f := e.focus
	child := layout.Place(f, index)
	if child == nil {
		return
	}
	child.Active = true
	child.Selection = childSelection
	e.focus = child
	events.Nav.Enter(f.Name, child.Name)
	e.draw(child)
}

// exitFocused erases the focused container and walks focus back to its
// parent. The parent is repainted so any overlapped cells are restored.
func (e *Engine) exitFocused() {
	f := e.focus
	parent := f.Parent()
	if parent == nil {
		return
	}
	e.erase(f)
	f.Active = false
	e.focus = parent
	events.Nav.Exit(f.Name, parent.Name)
	e.draw(parent)
}

// invokeLeaf collapses the whole focus path, hands the terminal to the
// action boundary, and returns to a freshly painted root. The collapse runs
// first because the action may take over the entire surface; no menu chrome
// may survive underneath it.
func (e *Engine) invokeLeaf(item *menu.Item) bool {
	events.Nav.Collapse(e.focus.Name)
	for c := e.focus; c != nil && c.Parent() != nil; c = c.Parent() {
		e.erase(c)
		c.Active = false
	}
	e.root.Selection = -1
	e.focus = e.root
	e.draw(e.root)
	e.renderer.Flush()

	outcome := e.invoker.Invoke(item)
	if errors.Is(outcome.Err, action.ErrExit) {
		return true
	}

	e.root.Selection = -1
	e.draw(e.root)
	switch outcome.Kind {
	case action.Completed:
		e.renderer.Feedback(fmt.Sprintf("Executed: %s", item.Name))
	case action.ArgumentError:
		e.renderer.Feedback(outcome.Message)
	case action.ActionFailed:
		e.renderer.Feedback(fmt.Sprintf("%s failed", item.Name))
	}
	return false
}

func (e *Engine) draw(c *menu.Container) {
	if err := e.renderer.DrawContainer(c); err != nil {
		logging.Errorf("draw %s: %w", c.Name, err)
	}
}

func (e *Engine) erase(c *menu.Container) {
	if err := e.renderer.EraseContainer(c); err != nil {
		logging.Errorf("erase %s: %w", c.Name, err)
	}
}
