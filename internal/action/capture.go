package action

import (
	"strings"
	"sync"

	"github.com/atomicstack/tty-menu/internal/term"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Capture is the OutputSink handed to synchronous actions. Written lines
// accumulate in a bounded buffer and are painted into the menu body region as
// they arrive; once the buffer is full the oldest lines are evicted so the
// most recent output stays visible. The bound comes from the terminal height.
type Capture struct {
	mu      sync.Mutex
	surface term.Surface
	style   *lipgloss.Style
	lines   []string
	max     int
}

// NewCapture builds a sink painting into rows 2..height-2 of the surface.
func NewCapture(surface term.Surface, style *lipgloss.Style) *Capture {
	_, height := surface.Size()
	max := height - 3
	if max < 1 {
		max = 1
	}
	return &Capture{surface: surface, style: style, max: max}
}

// Write implements io.Writer. Each non-blank line of p becomes one captured
// row; the region repaints immediately.
func (c *Capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c.lines = append(c.lines, line)
	}
	for len(c.lines) > c.max {
		c.lines = c.lines[1:]
	}
	c.paint()
	return len(p), nil
}

// Lines returns a copy of the captured buffer.
func (c *Capture) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// Reset clears the buffer and blanks the capture region.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.paint()
}

func (c *Capture) paint() {
	width, height := c.surface.Size()
	for row := 2; row <= height-2; row++ {
		c.surface.ClearRegion(row, 1, width)
	}
	for i, line := range c.lines {
		c.surface.MoveTo(2+i, 1)
		c.surface.WriteStyled(truncate.String(line, uint(width)), c.style)
	}
	c.surface.Flush()
}
