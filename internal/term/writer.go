package term

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Pre-built ANSI fragments; cursor positioning is formatted per call.
const (
	seqClearScreen = "\x1b[2J\x1b[H"
	seqCursorHide  = "\x1b[?25l"
	seqCursorShow  = "\x1b[?25h"
	seqAltEnter    = "\x1b[?1049h"
	seqAltExit     = "\x1b[?1049l"
	seqReset       = "\x1b[0m"
)

// Writer is the ANSI escape-sequence Surface backend. It buffers output and
// emits cursor-addressed, attribute-styled writes to the wrapped stream.
type Writer struct {
	w      *bufio.Writer
	width  int
	height int
}

// NewWriter wraps an output stream with a fixed viewport size.
func NewWriter(w io.Writer, width, height int) *Writer {
	return &Writer{w: bufio.NewWriter(w), width: width, height: height}
}

// MoveTo positions the cursor, clamping to 1-based coordinates.
func (s *Writer) MoveTo(row, col int) error {
	_, err := fmt.Fprintf(s.w, "\x1b[%d;%dH", Clamp(row), Clamp(col))
	return err
}

// WriteStyled renders text at the current cursor position. A nil style writes
// plain text.
func (s *Writer) WriteStyled(text string, style *lipgloss.Style) error {
	if style != nil {
		text = style.Render(text)
	}
	_, err := io.WriteString(s.w, text)
	return err
}

// ClearRegion blanks the inclusive column span on one row and leaves the
// cursor at the start of the span.
func (s *Writer) ClearRegion(row, colStart, colEnd int) error {
	row = Clamp(row)
	colStart = Clamp(colStart)
	if colEnd < colStart {
		return nil
	}
	if err := s.MoveTo(row, colStart); err != nil {
		return err
	}
	for c := colStart; c <= colEnd; c++ {
		if err := s.w.WriteByte(' '); err != nil {
			return err
		}
	}
	return s.MoveTo(row, colStart)
}

// ClearScreen wipes the viewport and homes the cursor.
func (s *Writer) ClearScreen() error {
	_, err := io.WriteString(s.w, seqClearScreen)
	return err
}

// SetCursorVisible toggles the text cursor.
func (s *Writer) SetCursorVisible(visible bool) error {
	seq := seqCursorHide
	if visible {
		seq = seqCursorShow
	}
	_, err := io.WriteString(s.w, seq)
	return err
}

// Flush pushes buffered output to the terminal.
func (s *Writer) Flush() error {
	return s.w.Flush()
}

// Size reports the viewport dimensions.
func (s *Writer) Size() (int, int) {
	return s.width, s.height
}

// Session owns the real terminal for the lifetime of the menu: raw input
// mode, the alternate screen, and a hidden cursor. Close restores all three.
type Session struct {
	Surface *Writer
	Keys    *Decoder

	fd    int
	state *term.State
}

// OpenSession puts stdin into raw mode and prepares stdout for cursor
// addressed painting. Width/height of 0 probe the terminal.
func OpenSession(width, height int) (*Session, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	if width <= 0 || height <= 0 {
		w, h, err := term.GetSize(fd)
		if err != nil {
			return nil, fmt.Errorf("probe terminal size: %w", err)
		}
		if width <= 0 {
			width = w
		}
		if height <= 0 {
			height = h
		}
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}

	surface := NewWriter(os.Stdout, width, height)
	io.WriteString(os.Stdout, seqAltEnter)
	surface.ClearScreen()
	surface.SetCursorVisible(false)
	surface.Flush()

	return &Session{Surface: surface, Keys: NewDecoder(os.Stdin), fd: fd, state: state}, nil
}

// Close leaves the alternate screen and restores the cooked terminal state.
func (s *Session) Close() error {
	s.Surface.WriteStyled(seqReset, nil)
	s.Surface.SetCursorVisible(true)
	s.Surface.Flush()
	io.WriteString(os.Stdout, seqAltExit)
	return term.Restore(s.fd, s.state)
}
