package term

import "github.com/charmbracelet/lipgloss"

// ReadLine collects an echoed line of text from the key source, painting each
// character at the given position. Backspace removes the previous character;
// Enter finishes the line. Escape abandons input and returns ok=false.
func ReadLine(src KeySource, surface Surface, row, col int, style *lipgloss.Style) (line string, ok bool, err error) {
	buf := make([]rune, 0, 64)
	surface.SetCursorVisible(true)
	defer func() {
		surface.SetCursorVisible(false)
		surface.Flush()
	}()
	if err := surface.MoveTo(row, col); err != nil {
		return "", false, err
	}
	surface.Flush()
	for {
		key, rerr := src.ReadKey()
		if rerr != nil {
			return string(buf), false, rerr
		}
		switch key.Sym {
		case SymEnter:
			return string(buf), true, nil
		case SymEscape:
			return "", false, nil
		case SymBackspace:
			if len(buf) == 0 {
				continue
			}
			buf = buf[:len(buf)-1]
			surface.ClearRegion(row, col+len(buf), col+len(buf))
			surface.MoveTo(row, col+len(buf))
			surface.Flush()
		case SymRune:
			buf = append(buf, key.Rune)
			surface.WriteStyled(string(key.Rune), style)
			surface.Flush()
		default:
			// Arrow keys have no meaning during line input.
		}
	}
}
