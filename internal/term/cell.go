package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CellSurface is an in-memory Surface used by tests. It records plain rune
// content and the style each cell was last painted with, so erase/draw
// behaviour can be asserted without a terminal.
type CellSurface struct {
	width  int
	height int
	cells  [][]rune
	styles [][]*lipgloss.Style

	curRow  int // 0-based internally
	curCol  int
	Visible bool

	// Err, when set, is returned by every write operation. Lets tests
	// exercise the best-effort render contract.
	Err error
}

// NewCellSurface allocates a blank width x height grid.
func NewCellSurface(width, height int) *CellSurface {
	cells := make([][]rune, height)
	styles := make([][]*lipgloss.Style, height)
	for i := range cells {
		cells[i] = make([]rune, width)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
		styles[i] = make([]*lipgloss.Style, width)
	}
	return &CellSurface{width: width, height: height, cells: cells, styles: styles, Visible: true}
}

func (s *CellSurface) MoveTo(row, col int) error {
	if s.Err != nil {
		return s.Err
	}
	s.curRow = Clamp(row) - 1
	s.curCol = Clamp(col) - 1
	return nil
}

func (s *CellSurface) WriteStyled(text string, style *lipgloss.Style) error {
	if s.Err != nil {
		return s.Err
	}
	for _, r := range text {
		if s.curRow >= 0 && s.curRow < s.height && s.curCol >= 0 && s.curCol < s.width {
			s.cells[s.curRow][s.curCol] = r
			s.styles[s.curRow][s.curCol] = style
		}
		s.curCol++
	}
	return nil
}

func (s *CellSurface) ClearRegion(row, colStart, colEnd int) error {
	if s.Err != nil {
		return s.Err
	}
	r := Clamp(row) - 1
	if r >= s.height {
		return nil
	}
	start := Clamp(colStart) - 1
	for c := start; c <= colEnd-1 && c < s.width; c++ {
		s.cells[r][c] = ' '
		s.styles[r][c] = nil
	}
	s.curRow, s.curCol = r, start
	return nil
}

func (s *CellSurface) ClearScreen() error {
	if s.Err != nil {
		return s.Err
	}
	for r := range s.cells {
		for c := range s.cells[r] {
			s.cells[r][c] = ' '
			s.styles[r][c] = nil
		}
	}
	s.curRow, s.curCol = 0, 0
	return nil
}

func (s *CellSurface) SetCursorVisible(visible bool) error {
	if s.Err != nil {
		return s.Err
	}
	s.Visible = visible
	return nil
}

func (s *CellSurface) Flush() error {
	return s.Err
}

func (s *CellSurface) Size() (int, int) {
	return s.width, s.height
}

// Row returns the plain text of a 1-based row, right-trimmed.
func (s *CellSurface) Row(row int) string {
	r := row - 1
	if r < 0 || r >= s.height {
		return ""
	}
	return strings.TrimRight(string(s.cells[r]), " ")
}

// Frame dumps the whole grid with trailing blanks trimmed per row.
func (s *CellSurface) Frame() string {
	rows := make([]string, s.height)
	for i := 1; i <= s.height; i++ {
		rows[i-1] = s.Row(i)
	}
	return strings.TrimRight(strings.Join(rows, "\n"), "\n")
}

// StyleAt reports the style a 1-based cell was last painted with.
func (s *CellSurface) StyleAt(row, col int) *lipgloss.Style {
	r, c := row-1, col-1
	if r < 0 || r >= s.height || c < 0 || c >= s.width {
		return nil
	}
	return s.styles[r][c]
}
