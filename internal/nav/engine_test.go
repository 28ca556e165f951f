package nav

import (
	"io"
	"testing"

	"github.com/atomicstack/tty-menu/internal/action"
	"github.com/atomicstack/tty-menu/internal/menu"
	"github.com/atomicstack/tty-menu/internal/render"
	"github.com/atomicstack/tty-menu/internal/term"
	"github.com/atomicstack/tty-menu/internal/testutil"
	"github.com/atomicstack/tty-menu/internal/theme"
)

func noop(out io.Writer, args []interface{}) error { return nil }

type fakeInvoker struct {
	invoked  []string
	outcomes []action.Outcome
}

func (f *fakeInvoker) Invoke(item *menu.Item) action.Outcome {
	f.invoked = append(f.invoked, item.Name)
	if len(f.outcomes) > 0 {
		out := f.outcomes[0]
		f.outcomes = f.outcomes[1:]
		return out
	}
	return action.Outcome{Kind: action.Completed}
}

// testTree builds File -> [Exit], Edit -> [Read, Sub -> [Inner]], plus a
// childless Help container.
func testTree(t *testing.T) *menu.Container {
	t.Helper()
	root := menu.NewContainer("Main", menu.Horizontal)
	file := menu.NewContainer("File", menu.Vertical)
	edit := menu.NewContainer("Edit", menu.Vertical)
	help := menu.NewContainer("Help", menu.Vertical)
	sub := menu.NewContainer("Sub", menu.Vertical)

	steps := []error{
		root.Attach(file),
		root.Attach(edit),
		root.Attach(help),
		file.Attach(menu.NewItem("Exit", noop)),
		edit.Attach(menu.NewItem("Read", noop)),
		edit.Attach(sub),
		sub.Attach(menu.NewItem("Inner", noop)),
	}
	for _, err := range steps {
		if err != nil {
			t.Fatalf("attach failed: %v", err)
		}
	}
	return root
}

func testEngine(t *testing.T, keys ...term.Key) (*Engine, *fakeInvoker, *term.CellSurface) {
	t.Helper()
	surface := term.NewCellSurface(80, 24)
	renderer := render.New(surface, theme.Default())
	invoker := &fakeInvoker{}
	engine := New(testTree(t), renderer, term.NewScriptSource(keys...), invoker)
	return engine, invoker, surface
}

func feed(t *testing.T, e *Engine, keys ...term.Key) bool {
	t.Helper()
	quit := false
	for _, key := range keys {
		quit = e.HandleKey(key)
	}
	return quit
}

func TestEnterFileAndInvokeLeaf(t *testing.T) {
	e, invoker, _ := testEngine(t)

	feed(t, e,
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymDown),
		term.KeyOf(term.SymDown),
		term.KeyOf(term.SymEnter),
	)
	if len(invoker.invoked) != 1 || invoker.invoked[0] != "Exit" {
		t.Fatalf("expected Exit invoked once, got %v", invoker.invoked)
	}
	if e.Focus() != e.Root() {
		t.Fatalf("expected focus back at root, got %s", e.Focus().Name)
	}
	if e.Root().Selection != -1 {
		t.Fatalf("expected root selection reset, got %d", e.Root().Selection)
	}
}

func TestNestedSubmenuInvocationCollapsesEverything(t *testing.T) {
	e, invoker, surface := testEngine(t)

	feed(t, e,
		term.KeyOf(term.SymRight), // select File
		term.KeyOf(term.SymRight), // select Edit
		term.KeyOf(term.SymEnter), // enter Edit, nothing selected
		term.KeyOf(term.SymRight), // select Read
		term.KeyOf(term.SymDown),  // select Sub
		term.KeyOf(term.SymRight), // enter Sub, nothing selected
		term.KeyOf(term.SymDown),  // select Inner
		term.KeyOf(term.SymEnter), // invoke Inner
	)
	if len(invoker.invoked) != 1 || invoker.invoked[0] != "Inner" {
		t.Fatalf("expected Inner invoked, got %v", invoker.invoked)
	}
	if e.Focus() != e.Root() {
		t.Fatalf("expected focus back at root, got %s", e.Focus().Name)
	}
	for row := 2; row <= 10; row++ {
		if got := surface.Row(row); got != "" {
			t.Fatalf("expected row %d erased after collapse, got %q", row, got)
		}
	}
	if got := surface.Row(23); got != "Executed: Inner" {
		t.Fatalf("expected feedback line, got %q", got)
	}
}

func TestSelectionStaysInBounds(t *testing.T) {
	e, _, _ := testEngine(t)

	feed(t, e,
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymRight),
	)
	if e.Root().Selection != 2 {
		t.Fatalf("expected selection clamped at last cell, got %d", e.Root().Selection)
	}
	feed(t, e,
		term.KeyOf(term.SymLeft),
		term.KeyOf(term.SymLeft),
		term.KeyOf(term.SymLeft),
		term.KeyOf(term.SymLeft),
	)
	if e.Root().Selection != 0 {
		t.Fatalf("expected selection clamped at first cell, got %d", e.Root().Selection)
	}
}

func TestChildlessContainerIsInert(t *testing.T) {
	e, invoker, _ := testEngine(t)

	feed(t, e,
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymRight), // Help selected
		term.KeyOf(term.SymDown),
		term.KeyOf(term.SymEnter),
	)
	if e.Focus() != e.Root() {
		t.Fatalf("expected focus to stay at root, got %s", e.Focus().Name)
	}
	if e.Root().Selection != 2 {
		t.Fatalf("expected Help to stay selected, got %d", e.Root().Selection)
	}
	if len(invoker.invoked) != 0 {
		t.Fatalf("expected no invocations, got %v", invoker.invoked)
	}
}

func TestLeftExitsDropDown(t *testing.T) {
	e, _, surface := testEngine(t)

	feed(t, e,
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymDown), // enter File, Exit selected
		term.KeyOf(term.SymLeft), // walk back out
	)
	if e.Focus() != e.Root() {
		t.Fatalf("expected focus back at root, got %s", e.Focus().Name)
	}
	file := e.Root().Child(0).(*menu.Container)
	if file.Selection != -1 {
		t.Fatalf("expected File selection reset on exit, got %d", file.Selection)
	}
	for row := 2; row <= 6; row++ {
		if got := surface.Row(row); got != "" {
			t.Fatalf("expected drop-down erased, row %d has %q", row, got)
		}
	}
}

func TestUpExitsDropDownFromFirstRow(t *testing.T) {
	e, _, _ := testEngine(t)

	feed(t, e,
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymDown),
		term.KeyOf(term.SymUp),
	)
	if e.Focus() != e.Root() {
		t.Fatalf("expected focus back at root, got %s", e.Focus().Name)
	}
}

func TestOffPathContainersHaveNoSelection(t *testing.T) {
	e, _, _ := testEngine(t)

	feed(t, e,
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymEnter),
		term.KeyOf(term.SymDown),
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymDown),
		term.KeyOf(term.SymEnter),
	)
	var walk func(c *menu.Container)
	walk = func(c *menu.Container) {
		if c != e.Root() && c.Selection != -1 {
			t.Fatalf("container %s off the focus path has selection %d", c.Name, c.Selection)
		}
		for _, child := range c.Children() {
			if sub, ok := child.(*menu.Container); ok {
				walk(sub)
			}
		}
	}
	walk(e.Root())
}

func TestEscapeAtRootQuits(t *testing.T) {
	e, _, _ := testEngine(t)
	if !e.HandleKey(term.KeyOf(term.SymEscape)) {
		t.Fatal("expected escape at root to end the loop")
	}
}

func TestEscapeClosesTopLevelDropDown(t *testing.T) {
	e, _, surface := testEngine(t)

	feed(t, e,
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymEnter), // enter File, nothing selected
	)
	if quit := feed(t, e, term.KeyOf(term.SymEscape)); quit {
		t.Fatal("expected non-root escape not to quit")
	}
	if e.Focus() != e.Root() {
		t.Fatalf("expected escape to close the drop-down, focus %s", e.Focus().Name)
	}
	for row := 2; row <= 6; row++ {
		if got := surface.Row(row); got != "" {
			t.Fatalf("expected drop-down erased, row %d has %q", row, got)
		}
	}
}

func TestEscapeIsNoOpWithSelectionOrBelowTopLevel(t *testing.T) {
	e, _, _ := testEngine(t)

	// With a row selected, escape does nothing.
	feed(t, e,
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymDown), // enter File, Exit selected
		term.KeyOf(term.SymEscape),
	)
	if e.Focus() == e.Root() {
		t.Fatal("expected escape with a selection to be a no-op")
	}

	// In a nested submenu, escape does nothing even with no selection.
	e2, _, _ := testEngine(t)
	feed(t, e2,
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymEnter), // enter Edit
		term.KeyOf(term.SymRight), // select Read
		term.KeyOf(term.SymDown),  // select Sub
		term.KeyOf(term.SymRight), // enter Sub, nothing selected
	)
	sub := e2.Focus()
	if sub.Name != "Sub" {
		t.Fatalf("expected focus on Sub, got %s", sub.Name)
	}
	if quit := feed(t, e2, term.KeyOf(term.SymEscape)); quit {
		t.Fatal("expected escape below the top level not to quit")
	}
	if e2.Focus() != sub {
		t.Fatalf("expected escape in nested submenu to be a no-op, focus %s", e2.Focus().Name)
	}
}

func TestHotkeyJumpMovesSelection(t *testing.T) {
	surface := term.NewCellSurface(80, 24)
	renderer := render.New(surface, theme.Default())
	root := menu.NewContainer("Main", menu.Horizontal)
	edit := menu.NewContainer("Edit", menu.Vertical)
	read := menu.NewItem("Read", noop)
	write := menu.NewItem("Write", noop)
	write.Hotkey = 'W'
	steps := []error{root.Attach(edit), edit.Attach(read), edit.Attach(write)}
	for _, err := range steps {
		if err != nil {
			t.Fatalf("attach failed: %v", err)
		}
	}
	invoker := &fakeInvoker{}
	e := New(root, renderer, term.NewScriptSource(), invoker)

	feed(t, e,
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymDown), // enter Edit
		term.RuneKey('w'),
	)
	if edit.Selection != 1 {
		t.Fatalf("expected hotkey to select Write, got %d", edit.Selection)
	}
	if len(invoker.invoked) != 0 {
		t.Fatalf("expected jump not to invoke, got %v", invoker.invoked)
	}
}

func TestNameJumpMovesSelection(t *testing.T) {
	e, _, _ := testEngine(t)

	feed(t, e, term.RuneKey('h'))
	if e.Root().Selection != 2 {
		t.Fatalf("expected 'h' to select Help, got %d", e.Root().Selection)
	}
	feed(t, e, term.RuneKey('f'))
	if e.Root().Selection != 0 {
		t.Fatalf("expected 'f' to select File, got %d", e.Root().Selection)
	}
	sel := e.Root().Selection
	feed(t, e, term.RuneKey('z'))
	if e.Root().Selection != sel {
		t.Fatalf("expected unmatched rune to be absorbed, got %d", e.Root().Selection)
	}
}

func TestRunEndsWhenKeysAreExhausted(t *testing.T) {
	surface := term.NewCellSurface(80, 24)
	renderer := render.New(surface, theme.Default())
	invoker := &fakeInvoker{}
	e := New(testTree(t), renderer, term.NewScriptSource(), invoker)

	if err := e.Run(); err != nil {
		t.Fatalf("expected clean end at EOF, got %v", err)
	}
	testutil.AssertGolden(t, "nav/root_bar.txt", surface.Frame())
}

func TestRunStopsOnExitOutcome(t *testing.T) {
	surface := term.NewCellSurface(80, 24)
	renderer := render.New(surface, theme.Default())
	invoker := &fakeInvoker{outcomes: []action.Outcome{{Kind: action.Completed, Err: action.ErrExit}}}
	keys := term.NewScriptSource(
		term.KeyOf(term.SymRight),
		term.KeyOf(term.SymDown),
		term.KeyOf(term.SymEnter),
		term.KeyOf(term.SymDown), // must never be read
	)
	e := New(testTree(t), renderer, keys, invoker)

	if err := e.Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(invoker.invoked) != 1 || invoker.invoked[0] != "Exit" {
		t.Fatalf("expected Exit invoked once, got %v", invoker.invoked)
	}
	if keys.Remaining() != 1 {
		t.Fatalf("expected loop to stop before the trailing key, %d left", keys.Remaining())
	}
}
