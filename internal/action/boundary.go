// Package action wraps the invocation of leaf menu items: argument
// resolution, output capture, optional background execution, and the
// return-to-menu contract. While an invocation runs, the boundary owns the
// terminal surface; the navigation engine gets it back when Invoke returns.
package action

import (
	"errors"
	"fmt"
	"io"

	"github.com/atomicstack/tty-menu/internal/logging"
	"github.com/atomicstack/tty-menu/internal/logging/events"
	"github.com/atomicstack/tty-menu/internal/menu"
	"github.com/atomicstack/tty-menu/internal/render"
	"github.com/atomicstack/tty-menu/internal/term"
	"github.com/atomicstack/tty-menu/internal/theme"
)

// OutcomeKind classifies the result of an invocation.
type OutcomeKind uint8

const (
	Completed OutcomeKind = iota
	ArgumentError
	ActionFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case Completed:
		return "completed"
	case ArgumentError:
		return "argument-error"
	default:
		return "action-failed"
	}
}

// ErrExit is returned by an action to request a clean shutdown of the menu
// loop. The boundary reports it as a completed outcome with Err set; the
// navigation engine ends its loop when it sees it.
var ErrExit = errors.New("exit requested")

// Outcome reports what an invocation did. The navigation engine treats every
// kind the same way (return to root); the kinds differ only in what was shown
// to the user.
type Outcome struct {
	Kind    OutcomeKind
	Message string
	Err     error
}

const (
	argPromptFormat = "Arguments for %s (comma-separated, blank for none): "
	pausePrompt     = "Press any key to return to menu"
)

// Boundary invokes leaf actions. It borrows the renderer's surface for
// capture output, prompts, and banners.
type Boundary struct {
	renderer *render.Renderer
	keys     term.KeySource
	styles   *theme.Styles
}

// New builds an action boundary.
func New(renderer *render.Renderer, keys term.KeySource, styles *theme.Styles) *Boundary {
	if styles == nil {
		styles = theme.Default()
	}
	return &Boundary{renderer: renderer, keys: keys, styles: styles}
}

// Invoke runs item's action and blocks until control can return to the menu.
// The screen region the menu occupied has already been collapsed by the
// caller; everything painted here is cleaned up by the root redraw that
// follows.
func (b *Boundary) Invoke(item *menu.Item) Outcome {
	events.Action.Invoke(item.Name, item.Background, item.Pause)

	args, outcome := b.resolveArgs(item)
	if outcome != nil {
		return *outcome
	}

	if item.Background {
		return b.invokeBackground(item, args)
	}
	return b.invokeSync(item, args)
}

// resolveArgs applies the precedence rules: static args win, then prompted
// text, then zero arguments. A non-nil outcome aborts the invocation.
func (b *Boundary) resolveArgs(item *menu.Item) ([]interface{}, *Outcome) {
	if len(item.Args) > 0 {
		return item.Args, nil
	}
	if !item.PromptForArgs {
		return nil, nil
	}

	surface := b.renderer.Surface()
	width, height := surface.Size()
	row := height - 1
	prompt := fmt.Sprintf(argPromptFormat, item.Name)
	surface.ClearRegion(row, 1, width)
	surface.MoveTo(row, 1)
	surface.WriteStyled(prompt, b.styles.ArgPrompt)
	surface.Flush()

	line, ok, err := term.ReadLine(b.keys, surface, row, len(prompt)+1, nil)
	surface.ClearRegion(row, 1, width)
	surface.Flush()
	if err != nil {
		return nil, &Outcome{Kind: ArgumentError, Message: "argument entry interrupted", Err: err}
	}
	if !ok {
		events.Action.ArgumentError(item.Name, "cancelled")
		return nil, &Outcome{Kind: ArgumentError, Message: "argument entry cancelled"}
	}
	args, perr := ParseArgs(line)
	if perr != nil {
		msg := fmt.Sprintf("Error parsing arguments: %v", perr)
		events.Action.ArgumentError(item.Name, perr.Error())
		b.renderer.Error(msg)
		b.pressAnyKey()
		return nil, &Outcome{Kind: ArgumentError, Message: msg, Err: perr}
	}
	return args, nil
}

func (b *Boundary) invokeSync(item *menu.Item, args []interface{}) Outcome {
	capture := NewCapture(b.renderer.Surface(), b.styles.Capture)
	err := safeCall(item.Action, capture, args)
	if errors.Is(err, ErrExit) {
		events.Action.Completed(item.Name)
		return Outcome{Kind: Completed, Err: ErrExit}
	}
	if err != nil {
		return b.failed(item, err)
	}
	if item.Pause {
		b.pause()
	}
	events.Action.Completed(item.Name)
	return Outcome{Kind: Completed}
}

// invokeBackground launches the action on its own goroutine. The background
// task writes to the log, never the terminal: the surface capability stays
// with the menu. With Pause set the boundary joins the goroutine before
// returning; otherwise the task is fire-and-forget and its result is logged
// when it lands.
func (b *Boundary) invokeBackground(item *menu.Item, args []interface{}) Outcome {
	done := make(chan error, 1)
	go func() {
		done <- safeCall(item.Action, logSink{name: item.Name}, args)
	}()
	if item.Pause {
		err := <-done
		if errors.Is(err, ErrExit) {
			events.Action.Completed(item.Name)
			return Outcome{Kind: Completed, Err: ErrExit}
		}
		if err != nil {
			return b.failed(item, err)
		}
		b.pause()
		events.Action.Completed(item.Name)
		return Outcome{Kind: Completed}
	}
	go func() {
		if err := <-done; err != nil {
			events.Action.Failed(item.Name, err)
			logging.Errorf("background action %s: %w", item.Name, err)
		} else {
			events.Action.Completed(item.Name)
		}
	}()
	return Outcome{Kind: Completed}
}

// failed shows the error banner and always demands an acknowledging key
// press, whatever the item's pause setting; this is the one forced pause.
func (b *Boundary) failed(item *menu.Item, err error) Outcome {
	events.Action.Failed(item.Name, err)
	b.renderer.Error(fmt.Sprintf("%s failed: %v", item.Name, err))
	b.pressAnyKey()
	return Outcome{Kind: ActionFailed, Message: err.Error(), Err: err}
}

// pause shows the return-to-menu prompt and waits for any key.
func (b *Boundary) pause() {
	surface := b.renderer.Surface()
	width, height := surface.Size()
	row := height - 1
	surface.ClearRegion(row, 1, width)
	surface.MoveTo(row, 1)
	surface.WriteStyled(pausePrompt, b.styles.PausePrompt)
	surface.Flush()
	b.pressAnyKey()
	surface.ClearRegion(row, 1, width)
	surface.Flush()
}

func (b *Boundary) pressAnyKey() {
	b.keys.ReadKey()
}

// safeCall shields the menu loop from panicking actions.
func safeCall(fn menu.ActionFunc, out io.Writer, args []interface{}) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("action panic: %v", rec)
		}
	}()
	if fn == nil {
		return fmt.Errorf("no action bound")
	}
	return fn(out, args)
}

// logSink routes background action output into the shared log.
type logSink struct {
	name string
}

func (s logSink) Write(p []byte) (int, error) {
	logging.Trace("action.output", map[string]interface{}{"item": s.name, "text": string(p)})
	return len(p), nil
}
