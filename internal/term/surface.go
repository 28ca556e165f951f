package term

import "github.com/charmbracelet/lipgloss"

// Surface is the character-cell output device the menu paints on. Rows and
// columns are 1-based; implementations clamp coordinates to at least 1.
// Writes are best effort: an error reports a failed write but implementations
// keep accepting calls afterwards.
type Surface interface {
	MoveTo(row, col int) error
	WriteStyled(text string, style *lipgloss.Style) error
	ClearRegion(row, colStart, colEnd int) error
	ClearScreen() error
	SetCursorVisible(visible bool) error
	Flush() error
	Size() (width, height int)
}

// Clamp bounds a 1-based coordinate.
func Clamp(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
