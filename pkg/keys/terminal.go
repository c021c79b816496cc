package keys

import "unicode/utf8"

// ParseTerminal converts raw bytes read from a terminal in raw mode into an
// event. Unknown escape sequences decode as Escape.
func ParseTerminal(buf []byte) *Event {
	if len(buf) == 0 {
		return &Event{}
	}

	// Escape sequences (arrow keys, Home/End, paging)
	if buf[0] == 27 {
		if len(buf) == 1 {
			return New(Escape)
		}
		if len(buf) > 2 && (buf[1] == '[' || buf[1] == 'O') {
			switch buf[2] {
			case 'A':
				return New(ArrowUp)
			case 'B':
				return New(ArrowDown)
			case 'C':
				return New(ArrowRight)
			case 'D':
				return New(ArrowLeft)
			case 'H':
				return New(Home)
			case 'F':
				return New(End)
			case 'Z':
				return &Event{Key: Tab, Shift: true}
			}
			if len(buf) > 3 && buf[3] == '~' {
				switch buf[2] {
				case '1', '7':
					return New(Home)
				case '4', '8':
					return New(End)
				case '3':
					return New(Delete)
				case '5':
					return New(PageUp)
				case '6':
					return New(PageDown)
				}
			}
		}
		if len(buf) == 2 {
			// Alt+key arrives as ESC followed by the key
			e := ParseTerminal(buf[1:])
			e.Alt = true
			return e
		}
		return New(Escape)
	}

	switch buf[0] {
	case 9:
		return New(Tab)
	case 13, 10:
		return New(Enter)
	case 127, 8:
		return New(Backspace)
	case 32:
		return New(Space)
	case 0:
		return &Event{Key: Space, Ctrl: true}
	}

	// Ctrl combinations
	if buf[0] < 32 {
		return &Event{Key: string(rune(buf[0] + 'a' - 1)), Ctrl: true}
	}

	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return &Event{}
	}
	return &Event{
		Key:   string(r),
		Shift: r >= 'A' && r <= 'Z',
	}
}
