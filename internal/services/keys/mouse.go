package keys

import "fmt"

const (
	mousePrefix = "\x1b[M"
	mouseLen    = len(mousePrefix) + 3
	mouseOffset = 32
)

// MouseButton is the button reported in an X10 click.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// MouseEvent is a decoded X10 click. Row and Col are 0-based.
type MouseEvent struct {
	Button MouseButton
	Row    int
	Col    int
}

func (m MouseEvent) String() string {
	return fmt.Sprintf("Mouse(%d) %d,%d", int(m.Button), m.Row, m.Col)
}

// DecodeMouse parses an X10 report, ESC [ M followed by button, column and
// row bytes each offset by 32.
func DecodeMouse(b []byte) (MouseEvent, bool) {
	if len(b) != mouseLen || string(b[:len(mousePrefix)]) != mousePrefix {
		return MouseEvent{}, false
	}
	cb, cx, cy := int(b[3]), int(b[4]), int(b[5])
	if cb < mouseOffset || cx <= mouseOffset || cy <= mouseOffset {
		return MouseEvent{}, false
	}
	return MouseEvent{
		Button: MouseButton((cb - mouseOffset) & 3),
		Row:    cy - mouseOffset - 1,
		Col:    cx - mouseOffset - 1,
	}, true
}

// IsMousePrefix reports whether b could still grow into an X10 report.
func IsMousePrefix(b []byte) bool {
	if len(b) == 0 || len(b) >= mouseLen {
		return false
	}
	if len(b) <= len(mousePrefix) {
		return string(b) == mousePrefix[:len(b)]
	}
	return string(b[:len(mousePrefix)]) == mousePrefix
}
