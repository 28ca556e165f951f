// Package render paints menu containers onto a terminal surface and erases
// the rectangles they occupied. Drawing is best effort: write failures are
// reported to the caller but never block later paint calls, keeping terminal
// state and navigation state decoupled.
package render

import (
	"errors"
	"strings"

	"github.com/atomicstack/tty-menu/internal/layout"
	"github.com/atomicstack/tty-menu/internal/logging/events"
	"github.com/atomicstack/tty-menu/internal/menu"
	"github.com/atomicstack/tty-menu/internal/term"
	"github.com/atomicstack/tty-menu/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

// submenuMarker trails the name of a child that is itself a container.
const submenuMarker = " ▶"

// Renderer owns all painting of menu chrome.
type Renderer struct {
	surface term.Surface
	styles  *theme.Styles
}

// New builds a renderer over the given surface using the theme styles.
func New(surface term.Surface, styles *theme.Styles) *Renderer {
	if styles == nil {
		styles = theme.Default()
	}
	return &Renderer{surface: surface, styles: styles}
}

// Surface exposes the underlying terminal surface.
func (r *Renderer) Surface() term.Surface { return r.surface }

// Flush pushes buffered terminal output.
func (r *Renderer) Flush() error { return r.surface.Flush() }

// DrawContainer paints c at its anchor. Horizontal containers render as a
// single bar row; vertical ones as a bracketed drop-down with a bottom
// border. The selected child is highlighted.
func (r *Renderer) DrawContainer(c *menu.Container) error {
	var err error
	if c.Orientation == menu.Horizontal {
		err = r.drawBar(c)
	} else {
		err = r.drawDropDown(c)
	}
	events.Render.Draw(c.Name, c.Anchor.Row, c.Anchor.Col, c.Width(), c.ChildCount())
	if err != nil {
		events.Render.IOError(err)
	}
	return err
}

func (r *Renderer) drawBar(c *menu.Container) error {
	var errs []error
	errs = append(errs, r.surface.MoveTo(c.Anchor.Row, c.Anchor.Col))
	for i, child := range c.Children() {
		style := r.styles.Bar
		if i == c.Selection {
			style = r.styles.BarSelected
		}
		cell := "  " + layout.CellLabel(child) + "  "
		errs = append(errs, r.surface.WriteStyled(cell, style))
		errs = append(errs, r.surface.WriteStyled("|", nil))
	}
	return errors.Join(errs...)
}

func (r *Renderer) drawDropDown(c *menu.Container) error {
	var errs []error
	width := c.Width()
	row := c.Anchor.Row + 1
	for i, child := range c.Children() {
		label := child.Label()
		if _, ok := child.(*menu.Container); ok {
			label += submenuMarker
		}
		label = truncate.String(label, uint(width))
		if pad := width - ansi.StringWidth(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		style := r.styles.Item
		if i == c.Selection {
			style = r.styles.SelectedItem
		}
		errs = append(errs, r.surface.MoveTo(row, c.Anchor.Col-1))
		errs = append(errs, r.surface.WriteStyled("| "+label+"|", style))
		row++
	}
	border := "\\" + strings.Repeat("_", width+1) + "/"
	errs = append(errs, r.surface.MoveTo(row, c.Anchor.Col-1))
	errs = append(errs, r.surface.WriteStyled(border, r.styles.Border))
	return errors.Join(errs...)
}

// EraseContainer blanks every cell the most recent DrawContainer touched and
// resets the container's selection. Erasing a container that was never drawn
// only writes blanks over blanks, so the call is idempotent.
func (r *Renderer) EraseContainer(c *menu.Container) error {
	var errs []error
	if c.Orientation == menu.Horizontal {
		end := c.Anchor.Col + layout.BarWidth(c) - 1
		errs = append(errs, r.surface.ClearRegion(c.Anchor.Row, c.Anchor.Col, end))
	} else {
		// Same clamped origin the draw used, so the spans line up.
		colStart := term.Clamp(c.Anchor.Col - 1)
		colEnd := colStart + c.Width() + 2
		for row := c.Anchor.Row + 1; row <= c.Anchor.Row+1+c.ChildCount(); row++ {
			errs = append(errs, r.surface.ClearRegion(row, colStart, colEnd))
		}
	}
	c.Selection = -1
	events.Render.Erase(c.Name)
	err := errors.Join(errs...)
	if err != nil {
		events.Render.IOError(err)
	}
	return err
}

// Feedback writes a status message on the feedback row, clearing it first.
func (r *Renderer) Feedback(message string) error {
	return r.statusLine(message, r.styles.Feedback)
}

// Error writes a highlighted error message on the feedback row.
func (r *Renderer) Error(message string) error {
	return r.statusLine(message, r.styles.ErrorBanner)
}

func (r *Renderer) statusLine(message string, style *lipgloss.Style) error {
	width, height := r.surface.Size()
	row := height - 1
	var errs []error
	errs = append(errs, r.surface.ClearRegion(row, 1, width))
	if message != "" {
		message = truncate.String(message, uint(width))
		errs = append(errs, r.surface.MoveTo(row, 1))
		errs = append(errs, r.surface.WriteStyled(message, style))
	}
	err := errors.Join(errs...)
	if err != nil {
		events.Render.IOError(err)
	}
	return err
}
