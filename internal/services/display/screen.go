// https://www.lihaoyi.com/post/BuildyourownCommandLinewithANSIescapecodes.html#colors
package display

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.td.teradata.com/sandbox/vtscreen/internal/utils"
)

const (
	ClearScreen = "\u001b[2J"     // clears entire screen
	ClearEnd    = "\u001b[0K"     // clears from cursor to end of line
	EraseCells  = "\u001b[%dX"    // erases n cells from the cursor
	SetPosition = "\u001b[%d;%dH" // moves cursor to row n column m

	SetColors       = "\u001b[%d;%dm"   // foreground;background
	SetBrightColors = "\u001b[%d;%d;1m" // foreground;background;bold
	Reset           = "\u001b[0m"

	// Show / Hide cursor
	Show = "\u001b[?25h"
	Hide = "\u001b[?25l"

	// X10 mouse reporting, button presses only
	MouseOn  = "\u001b[?9h"
	MouseOff = "\u001b[?9l"

	fgBase = 30
	bgBase = 40
)

// Screen encodes drawing operations as VT100 escape sequences and writes
// each one straight to the underlying writer. It keeps no cursor or color
// state of its own.
type Screen struct {
	out   io.Writer
	width *runewidth.Condition
}

func New(out io.Writer) *Screen {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	return &Screen{out: out, width: cond}
}

func (s *Screen) printf(format string, a ...interface{}) error {
	_, err := fmt.Fprintf(s.out, format, a...)
	return err
}

func (s *Screen) ClearScreen() error {
	return s.WriteText(ClearScreen)
}

// Goto moves the cursor to the 0-based row and column. Coordinates past the
// edge of the screen are left for the terminal to clip.
func (s *Screen) Goto(row int, col int) error {
	utils.Assertf(row >= 0 && col >= 0, "cursor position %d,%d is negative", row, col)
	return s.printf(SetPosition, row+1, col+1)
}

func (s *Screen) ClearToEOL() error {
	return s.WriteText(ClearEnd)
}

// ClearCells erases n cells starting at the cursor without moving it.
func (s *Screen) ClearCells(n int) error {
	if n <= 0 {
		return nil
	}
	return s.printf(EraseCells, n)
}

// SetColor selects foreground and background. A foreground with the
// Intensity flag switches to the bold variant. bg must be within [0,8].
func (s *Screen) SetColor(fg Color, bg Color) error {
	utils.Assertf(bg >= 0 && bg <= 8, "background color %d out of range", int(bg))
	if fg.Bright() {
		return s.printf(SetBrightColors, int(fg.Base())+fgBase, int(bg)+bgBase)
	}
	return s.printf(SetColors, int(fg.Base())+fgBase, int(bg)+bgBase)
}

func (s *Screen) ResetAttributes() error {
	return s.WriteText(Reset)
}

func (s *Screen) SetCursorVisible(visible bool) error {
	if visible {
		return s.WriteText(Show)
	}
	return s.WriteText(Hide)
}

func (s *Screen) EnableMouse() error {
	return s.WriteText(MouseOn)
}

func (s *Screen) DisableMouse() error {
	return s.WriteText(MouseOff)
}

// WriteRaw writes bs verbatim.
func (s *Screen) WriteRaw(bs []byte) error {
	_, err := s.out.Write(bs)
	return err
}

// WriteText writes the UTF-8 encoding of text.
func (s *Screen) WriteText(text string) error {
	_, err := io.WriteString(s.out, text)
	return err
}

// WriteFixedWidth writes text cut down to width cells and padded with spaces
// so the cursor always advances exactly width cells.
func (s *Screen) WriteFixedWidth(text string, width int) error {
	if width <= 0 {
		return nil
	}
	text = s.width.Truncate(text, width, "")
	return s.WriteText(s.width.FillRight(text, width))
}
