package display

import (
	"strings"

	"github.td.teradata.com/sandbox/vtscreen/internal/utils"
)

// Box drawing glyphs, see http://www.utf8-chartable.de/unicode-utf8-table.pl
const (
	TopLeft     = "\xe2\x94\x8c" // ┌
	Horizontal  = "\xe2\x94\x80" // ─
	TopRight    = "\xe2\x94\x90" // ┐
	BottomLeft  = "\xe2\x94\x94" // └
	BottomRight = "\xe2\x94\x98" // ┘
	Vertical    = "\xe2\x94\x82" // │
)

// Rect is a screen region in character cells.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

func (r Rect) Right() int {
	return r.Left + r.Width - 1
}

func (r Rect) Bottom() int {
	return r.Top + r.Height - 1
}

// Inset shrinks the rectangle by one cell on every side.
func (r Rect) Inset() Rect {
	return Rect{Left: r.Left + 1, Top: r.Top + 1, Width: r.Width - 2, Height: r.Height - 2}
}

// DrawBox draws a single line frame. Only the border cells are touched.
func (s *Screen) DrawBox(left int, top int, width int, height int) error {
	utils.Assertf(width >= 2 && height >= 2, "box %dx%d is too small", width, height)
	r := Rect{Left: left, Top: top, Width: width, Height: height}
	hor := strings.Repeat(Horizontal, width-2)

	if err := s.Goto(r.Top, r.Left); err != nil {
		return err
	}
	if err := s.WriteText(TopLeft + hor + TopRight); err != nil {
		return err
	}
	if err := s.Goto(r.Bottom(), r.Left); err != nil {
		return err
	}
	if err := s.WriteText(BottomLeft + hor + BottomRight); err != nil {
		return err
	}

	for row := r.Top + 1; row < r.Bottom(); row++ {
		if err := s.Goto(row, r.Left); err != nil {
			return err
		}
		if err := s.WriteText(Vertical); err != nil {
			return err
		}
		if err := s.Goto(row, r.Right()); err != nil {
			return err
		}
		if err := s.WriteText(Vertical); err != nil {
			return err
		}
	}
	return nil
}

// ClearBox fills the region with spaces one row at a time.
func (s *Screen) ClearBox(left int, top int, width int, height int) error {
	blank := strings.Repeat(" ", max(width, 0))
	for row := top; row < top+height; row++ {
		if err := s.Goto(row, left); err != nil {
			return err
		}
		if err := s.WriteText(blank); err != nil {
			return err
		}
	}
	return nil
}

// DrawDialog clears the interior, frames it and writes title over the top
// border starting one cell in. The title is neither centered nor clipped.
func (s *Screen) DrawDialog(left int, top int, width int, height int, title string) error {
	r := Rect{Left: left, Top: top, Width: width, Height: height}
	in := r.Inset()
	if err := s.ClearBox(in.Left, in.Top, in.Width, in.Height); err != nil {
		return err
	}
	if err := s.DrawBox(left, top, width, height); err != nil {
		return err
	}
	if title == "" {
		return nil
	}
	if err := s.Goto(top, left+1); err != nil {
		return err
	}
	return s.WriteText(title)
}
