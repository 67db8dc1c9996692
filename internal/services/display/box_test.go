package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawBox(t *testing.T) {
	s, buf := newTestScreen()
	require.NoError(t, s.DrawBox(0, 0, 4, 3))

	want := "\x1b[1;1H" + "┌──┐" +
		"\x1b[3;1H" + "└──┘" +
		"\x1b[2;1H" + "│" + "\x1b[2;4H" + "│"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 4, strings.Count(buf.String(), Horizontal))
}

func TestDrawBoxGlyphBytes(t *testing.T) {
	s, buf := newTestScreen()
	require.NoError(t, s.DrawBox(2, 1, 2, 2))

	want := []byte("\x1b[2;3H\xe2\x94\x8c\xe2\x94\x90\x1b[3;3H\xe2\x94\x94\xe2\x94\x98")
	assert.Equal(t, want, buf.Bytes())
}

func TestDrawBoxVerticalEdges(t *testing.T) {
	s, buf := newTestScreen()
	require.NoError(t, s.DrawBox(5, 10, 6, 5))

	out := buf.String()
	assert.Equal(t, 6, strings.Count(out, Vertical))
	for _, pos := range []string{"\x1b[12;6H", "\x1b[12;11H", "\x1b[13;6H", "\x1b[13;11H", "\x1b[14;6H", "\x1b[14;11H"} {
		assert.Contains(t, out, pos+Vertical)
	}
	assert.NotContains(t, out, "\x1b[15;6H"+Vertical)
}

func TestDrawBoxTooSmall(t *testing.T) {
	s, _ := newTestScreen()
	assert.Panics(t, func() { _ = s.DrawBox(0, 0, 1, 3) })
	assert.Panics(t, func() { _ = s.DrawBox(0, 0, 3, 1) })
}

func TestClearBox(t *testing.T) {
	s, buf := newTestScreen()
	require.NoError(t, s.ClearBox(3, 2, 4, 3))

	want := "\x1b[3;4H    " + "\x1b[4;4H    " + "\x1b[5;4H    "
	assert.Equal(t, want, buf.String())
}

func TestClearBoxEmpty(t *testing.T) {
	s, buf := newTestScreen()
	require.NoError(t, s.ClearBox(0, 0, 5, 0))
	assert.Empty(t, buf.String())
}

func TestDrawDialog(t *testing.T) {
	s, buf := newTestScreen()
	require.NoError(t, s.DrawDialog(0, 0, 5, 3, "Title too long"))

	want := "\x1b[2;2H   " +
		"\x1b[1;1H┌───┐\x1b[3;1H└───┘\x1b[2;1H│\x1b[2;5H│" +
		"\x1b[1;2HTitle too long"
	assert.Equal(t, want, buf.String())
}

func TestDrawDialogWithoutTitle(t *testing.T) {
	s, buf := newTestScreen()
	require.NoError(t, s.DrawDialog(1, 1, 3, 3, ""))
	assert.True(t, strings.HasSuffix(buf.String(), "\x1b[3;4H│"))
}

func TestDrawDialogStopsOnError(t *testing.T) {
	s := New(brokenWriter{})
	assert.ErrorIs(t, s.DrawDialog(0, 0, 4, 4, "x"), errClosed)
	assert.ErrorIs(t, s.DrawBox(0, 0, 4, 4), errClosed)
	assert.ErrorIs(t, s.ClearBox(0, 0, 4, 4), errClosed)
}

func TestRect(t *testing.T) {
	r := Rect{Left: 2, Top: 3, Width: 10, Height: 5}
	assert.Equal(t, 11, r.Right())
	assert.Equal(t, 7, r.Bottom())
	assert.Equal(t, Rect{Left: 3, Top: 4, Width: 8, Height: 3}, r.Inset())
}
