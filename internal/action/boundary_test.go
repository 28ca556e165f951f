package action

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/tty-menu/internal/menu"
	"github.com/atomicstack/tty-menu/internal/render"
	"github.com/atomicstack/tty-menu/internal/term"
	"github.com/atomicstack/tty-menu/internal/theme"
)

type recordedCall struct {
	args []interface{}
}

func testBoundary(keys ...term.Key) (*Boundary, *term.CellSurface, *term.ScriptSource) {
	surface := term.NewCellSurface(40, 12)
	renderer := render.New(surface, theme.Default())
	src := term.NewScriptSource(keys...)
	return New(renderer, src, theme.Default()), surface, src
}

func recordingItem(name string, calls *[]recordedCall, result error) *menu.Item {
	return menu.NewItem(name, func(out io.Writer, args []interface{}) error {
		*calls = append(*calls, recordedCall{args: args})
		return result
	})
}

func typed(text string) []term.Key {
	keys := make([]term.Key, 0, len(text)+1)
	for _, r := range text {
		keys = append(keys, term.RuneKey(r))
	}
	return append(keys, term.KeyOf(term.SymEnter))
}

func TestInvokePassesStaticArgs(t *testing.T) {
	var calls []recordedCall
	b, _, src := testBoundary()
	item := recordingItem("Echo", &calls, nil)
	item.Args = []interface{}{1, "two"}

	outcome := b.Invoke(item)
	if outcome.Kind != Completed {
		t.Fatalf("expected Completed, got %v", outcome.Kind)
	}
	if len(calls) != 1 || !reflect.DeepEqual(calls[0].args, []interface{}{1, "two"}) {
		t.Fatalf("expected static args passed through, got %v", calls)
	}
	if src.Remaining() != 0 {
		t.Fatal("expected no keys consumed without pause")
	}
}

func TestInvokePromptsAndParsesArgs(t *testing.T) {
	var calls []recordedCall
	b, _, _ := testBoundary(typed("3,4")...)
	item := recordingItem("Sum", &calls, nil)
	item.PromptForArgs = true

	outcome := b.Invoke(item)
	if outcome.Kind != Completed {
		t.Fatalf("expected Completed, got %v (%s)", outcome.Kind, outcome.Message)
	}
	if len(calls) != 1 || !reflect.DeepEqual(calls[0].args, []interface{}{3, 4}) {
		t.Fatalf("expected parsed args (3, 4), got %v", calls)
	}
}

func TestStaticArgsWinOverPrompt(t *testing.T) {
	var calls []recordedCall
	b, _, src := testBoundary(typed("9")...)
	item := recordingItem("Echo", &calls, nil)
	item.Args = []interface{}{1}
	item.PromptForArgs = true

	if outcome := b.Invoke(item); outcome.Kind != Completed {
		t.Fatalf("expected Completed, got %v", outcome.Kind)
	}
	if len(calls) != 1 || !reflect.DeepEqual(calls[0].args, []interface{}{1}) {
		t.Fatalf("expected static args to win, got %v", calls)
	}
	if src.Remaining() != len("9")+1 {
		t.Fatal("expected prompt to be skipped entirely")
	}
}

func TestPromptParseFailureAbortsInvocation(t *testing.T) {
	var calls []recordedCall
	keys := append(typed("*bad*"), term.KeyOf(term.SymEnter)) // trailing ack key
	b, surface, _ := testBoundary(keys...)
	item := recordingItem("Sum", &calls, nil)
	item.PromptForArgs = true

	outcome := b.Invoke(item)
	if outcome.Kind != ArgumentError {
		t.Fatalf("expected ArgumentError, got %v", outcome.Kind)
	}
	if len(calls) != 0 {
		t.Fatalf("expected no action call after parse failure, got %d", len(calls))
	}
	if !strings.Contains(outcome.Message, "parsing arguments") {
		t.Fatalf("unexpected message %q", outcome.Message)
	}
	_ = surface
}

func TestPromptEscapeCancels(t *testing.T) {
	var calls []recordedCall
	b, _, src := testBoundary(term.KeyOf(term.SymEscape))
	item := recordingItem("Sum", &calls, nil)
	item.PromptForArgs = true

	outcome := b.Invoke(item)
	if outcome.Kind != ArgumentError {
		t.Fatalf("expected ArgumentError, got %v", outcome.Kind)
	}
	if outcome.Message != "argument entry cancelled" {
		t.Fatalf("unexpected message %q", outcome.Message)
	}
	if len(calls) != 0 {
		t.Fatal("expected no action call after cancel")
	}
	if src.Remaining() != 0 {
		t.Fatal("expected only the escape key consumed")
	}
}

func TestActionErrorForcesAcknowledgement(t *testing.T) {
	var calls []recordedCall
	b, surface, src := testBoundary(term.KeyOf(term.SymEnter))
	item := recordingItem("Broken", &calls, errors.New("boom"))

	outcome := b.Invoke(item)
	if outcome.Kind != ActionFailed {
		t.Fatalf("expected ActionFailed, got %v", outcome.Kind)
	}
	if outcome.Message != "boom" {
		t.Fatalf("unexpected message %q", outcome.Message)
	}
	if src.Remaining() != 0 {
		t.Fatal("expected forced press-any-key to consume a key")
	}
	if got := surface.Row(11); !strings.Contains(got, "Broken failed") {
		t.Fatalf("expected error banner, got %q", got)
	}
}

func TestPauseWaitsForKey(t *testing.T) {
	var calls []recordedCall
	b, _, src := testBoundary(term.RuneKey('x'))
	item := recordingItem("Hello", &calls, nil)
	item.Pause = true

	if outcome := b.Invoke(item); outcome.Kind != Completed {
		t.Fatalf("expected Completed, got %v", outcome.Kind)
	}
	if src.Remaining() != 0 {
		t.Fatal("expected pause to consume one key")
	}
}

func TestPanicIsCaught(t *testing.T) {
	b, _, src := testBoundary(term.KeyOf(term.SymEnter))
	item := menu.NewItem("Panicky", func(out io.Writer, args []interface{}) error {
		panic("kaboom")
	})

	outcome := b.Invoke(item)
	if outcome.Kind != ActionFailed {
		t.Fatalf("expected ActionFailed, got %v", outcome.Kind)
	}
	if !strings.Contains(outcome.Message, "kaboom") {
		t.Fatalf("expected panic message preserved, got %q", outcome.Message)
	}
	if src.Remaining() != 0 {
		t.Fatal("expected forced acknowledgement after panic")
	}
}

func TestNilActionFails(t *testing.T) {
	b, _, _ := testBoundary(term.KeyOf(term.SymEnter))
	outcome := b.Invoke(menu.NewItem("Empty", nil))
	if outcome.Kind != ActionFailed {
		t.Fatalf("expected ActionFailed for nil action, got %v", outcome.Kind)
	}
}

func TestBackgroundWithPauseJoins(t *testing.T) {
	done := make(chan struct{})
	b, _, src := testBoundary(term.RuneKey('x'))
	item := menu.NewItem("Slow", func(out io.Writer, args []interface{}) error {
		close(done)
		return nil
	})
	item.Background = true
	item.Pause = true

	outcome := b.Invoke(item)
	if outcome.Kind != Completed {
		t.Fatalf("expected Completed, got %v", outcome.Kind)
	}
	select {
	case <-done:
	default:
		t.Fatal("expected background action joined before return")
	}
	if src.Remaining() != 0 {
		t.Fatal("expected pause to consume one key")
	}
}

func TestBackgroundFireAndForget(t *testing.T) {
	ran := make(chan struct{})
	b, _, src := testBoundary()
	item := menu.NewItem("Detached", func(out io.Writer, args []interface{}) error {
		close(ran)
		return nil
	})
	item.Background = true
	item.Pause = false

	outcome := b.Invoke(item)
	if outcome.Kind != Completed {
		t.Fatalf("expected immediate Completed, got %v", outcome.Kind)
	}
	if src.Remaining() != 0 {
		t.Fatal("expected no keys consumed")
	}
	<-ran
}

func TestExitErrorReportsExit(t *testing.T) {
	b, _, _ := testBoundary()
	item := menu.NewItem("Exit", func(out io.Writer, args []interface{}) error {
		return ErrExit
	})

	outcome := b.Invoke(item)
	if outcome.Kind != Completed {
		t.Fatalf("expected Completed, got %v", outcome.Kind)
	}
	if !errors.Is(outcome.Err, ErrExit) {
		t.Fatalf("expected ErrExit passed through, got %v", outcome.Err)
	}
}

func TestCaptureEvictsOldestLines(t *testing.T) {
	surface := term.NewCellSurface(40, 8) // capture region holds 5 lines
	capture := NewCapture(surface, theme.Default().Capture)

	for i := 1; i <= 7; i++ {
		fmt.Fprintf(capture, "line %d\n", i)
	}
	lines := capture.Lines()
	if len(lines) != 5 {
		t.Fatalf("expected 5 retained lines, got %d", len(lines))
	}
	if lines[0] != "line 3" || lines[4] != "line 7" {
		t.Fatalf("expected oldest lines evicted, got %v", lines)
	}
	if got := surface.Row(2); got != "line 3" {
		t.Fatalf("expected capture region repainted from row 2, got %q", got)
	}
	if got := surface.Row(6); got != "line 7" {
		t.Fatalf("expected newest line on last capture row, got %q", got)
	}

	capture.Reset()
	if len(capture.Lines()) != 0 {
		t.Fatal("expected reset to drop all lines")
	}
	if got := surface.Row(2); got != "" {
		t.Fatalf("expected capture region blanked, got %q", got)
	}
}

func TestCaptureSplitsMultiLineWrites(t *testing.T) {
	surface := term.NewCellSurface(40, 10)
	capture := NewCapture(surface, theme.Default().Capture)

	io.WriteString(capture, "first\nsecond\n\nthird")
	want := []string{"first", "second", "third"}
	if got := capture.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
