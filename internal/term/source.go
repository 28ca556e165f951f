package term

import (
	"bufio"
	"io"
	"unicode"
)

// KeySource produces one logical key per call. The sequence is lazy, infinite
// for interactive sources, and not restartable.
type KeySource interface {
	ReadKey() (Key, error)
}

// Decoder turns raw terminal bytes into logical keys. It understands CSI
// arrow sequences (ESC [ A..D), their SS3 variants (ESC O A..D), carriage
// return / line feed, backspace, and printable runes. Anything else decodes
// to SymNone so the engine can absorb it.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder wraps a raw-mode input stream.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// csiKeys maps the final byte of a CSI sequence to a key symbol.
var csiKeys = map[byte]Sym{
	'A': SymUp,
	'B': SymDown,
	'C': SymRight,
	'D': SymLeft,
}

// ReadKey blocks until one decoded key is available.
func (d *Decoder) ReadKey() (Key, error) {
	r, _, err := d.r.ReadRune()
	if err != nil {
		return Key{}, err
	}
	switch r {
	case '\r', '\n':
		return KeyOf(SymEnter), nil
	case 0x08, 0x7f:
		return KeyOf(SymBackspace), nil
	case 0x1b:
		return d.readEscape()
	}
	if unicode.IsPrint(r) {
		return RuneKey(r), nil
	}
	return KeyOf(SymNone), nil
}

// readEscape consumes the remainder of an escape sequence. A bare ESC (no
// buffered continuation byte) is reported as SymEscape.
func (d *Decoder) readEscape() (Key, error) {
	if d.r.Buffered() == 0 {
		return KeyOf(SymEscape), nil
	}
	b, err := d.r.ReadByte()
	if err != nil {
		return KeyOf(SymEscape), nil
	}
	switch b {
	case '[':
		return d.readCSI()
	case 'O':
		// SS3 sequences; same arrow finals as CSI.
		fin, err := d.r.ReadByte()
		if err != nil {
			return KeyOf(SymNone), nil
		}
		if sym, ok := csiKeys[fin]; ok {
			return KeyOf(sym), nil
		}
		return KeyOf(SymNone), nil
	default:
		// Alt-modified rune; the menu has no alt bindings.
		return KeyOf(SymNone), nil
	}
}

func (d *Decoder) readCSI() (Key, error) {
	// Parameter bytes (digits and ';') precede a single final byte.
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return KeyOf(SymNone), nil
		}
		if (b >= '0' && b <= '9') || b == ';' {
			continue
		}
		if sym, ok := csiKeys[b]; ok {
			return KeyOf(sym), nil
		}
		return KeyOf(SymNone), nil
	}
}

// ScriptSource replays a fixed key sequence; tests drive the engine with it.
// Reading past the end returns io.EOF.
type ScriptSource struct {
	keys []Key
	pos  int
}

// NewScriptSource builds a source over the given keys.
func NewScriptSource(keys ...Key) *ScriptSource {
	return &ScriptSource{keys: keys}
}

// ReadKey returns the next scripted key.
func (s *ScriptSource) ReadKey() (Key, error) {
	if s.pos >= len(s.keys) {
		return Key{}, io.EOF
	}
	k := s.keys[s.pos]
	s.pos++
	return k, nil
}

// Remaining reports how many scripted keys are left unread.
func (s *ScriptSource) Remaining() int {
	return len(s.keys) - s.pos
}
