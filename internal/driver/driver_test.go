package driver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.td.teradata.com/sandbox/vtscreen/internal/config"
	"github.td.teradata.com/sandbox/vtscreen/internal/services/keys"
	"github.td.teradata.com/sandbox/vtscreen/internal/services/session"
	"github.td.teradata.com/sandbox/vtscreen/internal/services/tty"
)

// chunkReader hands out one chunk per Read, the way a raw terminal delivers
// one key sequence per read.
type chunkReader struct {
	chunks []string
	err    error
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		if c.err != nil {
			return 0, c.err
		}
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks[0] = c.chunks[0][n:]
	if c.chunks[0] == "" {
		c.chunks = c.chunks[1:]
	}
	return n, nil
}

func readAll(t *testing.T, in *Input) []Event {
	t.Helper()
	var events []Event
	for {
		ev, err := in.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestInputDecodesKeys(t *testing.T) {
	in := NewInput(&chunkReader{chunks: []string{"\x1b[A", "\x1b[5~", "\r", "\x03"}}, 16)
	events := readAll(t, in)
	require.Len(t, events, 4)
	for i, want := range []keys.KeyCode{keys.KeyUp, keys.KeyPgUp, keys.KeyEnter, keys.KeyQuit} {
		assert.Equal(t, EventKey, events[i].Kind)
		assert.Equal(t, want, events[i].Key)
	}
	assert.Equal(t, []byte("\x1b[5~"), events[1].Raw)
}

func TestInputAssemblesSplitSequences(t *testing.T) {
	in := NewInput(&chunkReader{chunks: []string{"\x1b", "[", "3~", "\x1bO", "H"}}, 16)
	events := readAll(t, in)
	require.Len(t, events, 2)
	assert.Equal(t, keys.KeyDelete, events[0].Key)
	assert.Equal(t, keys.KeyHome, events[1].Key)
}

func TestInputSplitsCombinedReads(t *testing.T) {
	in := NewInput(&chunkReader{chunks: []string{"ab\x1b[Dé"}}, 16)
	events := readAll(t, in)
	require.Len(t, events, 4)
	assert.Equal(t, []byte("a"), events[0].Raw)
	assert.Equal(t, []byte("b"), events[1].Raw)
	assert.Equal(t, keys.KeyLeft, events[2].Key)
	assert.Equal(t, EventRaw, events[3].Kind)
	assert.Equal(t, []byte("é"), events[3].Raw)
}

func TestInputPassesUnknownSequences(t *testing.T) {
	in := NewInput(&chunkReader{chunks: []string{"\x1b[99~", "x"}}, 16)
	events := readAll(t, in)
	require.Len(t, events, 2)
	assert.Equal(t, EventRaw, events[0].Kind)
	assert.Equal(t, []byte("\x1b[99~"), events[0].Raw)
	assert.Equal(t, []byte("x"), events[1].Raw)
}

func TestInputKeepsKeysAfterUnknownSequence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		raw   string
	}{
		{name: "shift tab then up", input: "\x1b[Z\x1b[A", raw: "\x1b[Z"},
		{name: "lone escape then up", input: "\x1b\x1b[A", raw: "\x1b"},
		{name: "alt key then up", input: "\x1bx\x1b[A", raw: "\x1bx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := readAll(t, NewInput(&chunkReader{chunks: []string{tt.input}}, 16))
			require.Len(t, events, 2)
			assert.Equal(t, EventRaw, events[0].Kind)
			assert.Equal(t, []byte(tt.raw), events[0].Raw)
			assert.Equal(t, EventKey, events[1].Kind)
			assert.Equal(t, keys.KeyUp, events[1].Key)
			assert.Equal(t, []byte("\x1b[A"), events[1].Raw)
		})
	}
}

func TestInputUnknownSequenceBeforeSplitKey(t *testing.T) {
	in := NewInput(&chunkReader{chunks: []string{"\x1b[Z\x1b[", "3~"}}, 16)
	events := readAll(t, in)
	require.Len(t, events, 2)
	assert.Equal(t, []byte("\x1b[Z"), events[0].Raw)
	assert.Equal(t, keys.KeyDelete, events[1].Key)
}

func TestInputWaitsForSplitRune(t *testing.T) {
	in := NewInput(&chunkReader{chunks: []string{"\xe2\x94", "\x80"}}, 16)
	events := readAll(t, in)
	require.Len(t, events, 1)
	assert.Equal(t, []byte("─"), events[0].Raw)
}

func TestInputMouse(t *testing.T) {
	in := NewInput(&chunkReader{chunks: []string{"\x1b[M", string([]byte{33, 40, 35})}}, 16)
	events := readAll(t, in)
	require.Len(t, events, 1)
	assert.Equal(t, EventMouse, events[0].Kind)
	assert.Equal(t, keys.MouseEvent{Button: keys.MouseMiddle, Row: 2, Col: 7}, events[0].Mouse)
}

func TestInputFlushesPendingOnError(t *testing.T) {
	failure := errors.New("gone")
	in := NewInput(&chunkReader{chunks: []string{"\x1b["}, err: failure}, 16)

	ev, err := in.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("\x1b["), ev.Raw)

	_, err = in.Next()
	assert.ErrorIs(t, err, failure)
	_, err = in.Next()
	assert.ErrorIs(t, err, failure)
}

func TestHistory(t *testing.T) {
	h := &History{}
	assert.Empty(t, h.Last(3))
	for i := 0; i < historyLimit+5; i++ {
		h.Add(string(rune('a' + i%26)))
	}
	assert.Equal(t, historyLimit, h.Len())
	assert.Len(t, h.Last(3), 3)
	assert.Nil(t, h.Last(0))
	assert.Len(t, h.Last(historyLimit*2), historyLimit)
}

func TestDumpLine(t *testing.T) {
	assert.Equal(t, "1B", HexData(0x1b))
	assert.Equal(t, "1B 5B 41", HexBytes([]byte("\x1b[A")))

	line := DumpLine(Event{Kind: EventKey, Key: keys.KeyUp, Raw: []byte("\x1b[A")})
	assert.True(t, strings.HasPrefix(line, "1B 5B 41"))
	assert.True(t, strings.HasSuffix(line, " Up\r\n"))

	line = DumpLine(Event{Kind: EventRaw, Raw: []byte("q")})
	assert.Contains(t, line, `raw "q"`)
}

func newTestDriver(chunks ...string) (*Driver, *bytes.Buffer) {
	out := &bytes.Buffer{}
	dev := &tty.Device{
		Name:   "test",
		In:     &chunkReader{chunks: chunks},
		Out:    out,
		Driver: session.NopDriver{},
	}
	return New(dev, config.DefaultConfig()), out
}

func TestRunEchoesKeysUntilQuit(t *testing.T) {
	d, out := newTestDriver("\x1b[A", "z", "\x03", "\x1b[B")
	require.NoError(t, d.Run(context.Background()))

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\x1b[?25l\x1b[2J"))
	assert.Contains(t, s, title)
	assert.Contains(t, s, helpText)
	assert.Contains(t, s, "Up")
	assert.Contains(t, s, `"z"`)
	assert.NotContains(t, s, "Down")
	assert.True(t, strings.HasSuffix(s, "\x1b[0m\x1b[2J\x1b[1;1H\x1b[?25h"))
	assert.Equal(t, 2, d.history.Len())

	s2, err := session.Enter(session.NopDriver{}, nil)
	require.NoError(t, err, "Run must release the raw mode session")
	require.NoError(t, s2.Exit())
}

func TestRunEnablesMouse(t *testing.T) {
	d, out := newTestDriver("\x03")
	d.cfg.Terminal.Mouse = true
	require.NoError(t, d.Run(context.Background()))
	assert.True(t, strings.HasPrefix(out.String(), "\x1b[?9h"))
	assert.Contains(t, out.String(), "\x1b[?9l")
}

func TestRunStopsAtEOF(t *testing.T) {
	d, _ := newTestDriver("a")
	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, 1, d.history.Len())
}

func TestRunShowsReadErrors(t *testing.T) {
	failure := errors.New("device unplugged")
	d, out := newTestDriver()
	d.input = NewInput(&chunkReader{err: failure}, 16)

	assert.ErrorIs(t, d.Run(context.Background()), failure)
	assert.Contains(t, out.String(), "Be right back")
	assert.Contains(t, out.String(), "device unplugged")
}

func TestDump(t *testing.T) {
	d, out := newTestDriver("\x1b[6~", "\x03", "x")
	require.NoError(t, d.Dump(context.Background()))
	lines := strings.Split(strings.TrimSuffix(out.String(), "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "PageDown"))
	assert.True(t, strings.HasSuffix(lines[1], "Quit"))
}
