package display

import "fmt"

// Color is one of the eight base terminal colors, optionally combined with
// Intensity to select the bright variant.
type Color int

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White

	Intensity Color = 8
)

const (
	Gray          = Black | Intensity
	BrightRed     = Red | Intensity
	BrightGreen   = Green | Intensity
	BrightYellow  = Yellow | Intensity
	BrightBlue    = Blue | Intensity
	BrightMagenta = Magenta | Intensity
	BrightCyan    = Cyan | Intensity
	BrightWhite   = White | Intensity
)

var names = [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Bright reports whether the intensity flag is set.
func (c Color) Bright() bool {
	return c&Intensity != 0
}

// Base strips the intensity flag.
func (c Color) Base() Color {
	return c & 7
}

func (c Color) String() string {
	switch {
	case c < 0 || c > 15:
		return fmt.Sprintf("Color(%d)", int(c))
	case c == Gray:
		return "gray"
	case c.Bright():
		return "bright-" + names[c.Base()]
	default:
		return names[c]
	}
}
