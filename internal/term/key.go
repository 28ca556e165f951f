package term

// Key is one logical key event delivered to the navigation engine. Multi-byte
// escape sequences are decoded below this boundary; the engine only ever sees
// these symbols.
type Key struct {
	Sym  Sym
	Rune rune // populated when Sym == SymRune
}

// Sym enumerates the logical key symbols the menu understands.
type Sym uint8

const (
	SymNone Sym = iota // unrecognized input, treated as a no-op
	SymRune            // printable character (check Key.Rune)
	SymUp
	SymDown
	SymLeft
	SymRight
	SymEnter
	SymEscape
	SymBackspace
)

var symNames = map[Sym]string{
	SymNone:      "none",
	SymRune:      "rune",
	SymUp:        "up",
	SymDown:      "down",
	SymLeft:      "left",
	SymRight:     "right",
	SymEnter:     "enter",
	SymEscape:    "escape",
	SymBackspace: "backspace",
}

func (s Sym) String() string {
	if name, ok := symNames[s]; ok {
		return name
	}
	return "unknown"
}

func (k Key) String() string {
	if k.Sym == SymRune {
		return string(k.Rune)
	}
	return k.Sym.String()
}

// KeyOf builds a symbolic key.
func KeyOf(sym Sym) Key {
	return Key{Sym: sym}
}

// RuneKey builds a printable-character key.
func RuneKey(r rune) Key {
	return Key{Sym: SymRune, Rune: r}
}
