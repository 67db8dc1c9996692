package driver

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.td.teradata.com/sandbox/vtscreen/internal/services/keys"
)

const esc = 0x1b

type EventKind int

const (
	EventKey EventKind = iota
	EventMouse
	EventRaw
)

// Event is one unit of input: a decoded key, a mouse click, or bytes that
// did not decode and are passed through untouched. Raw always holds the
// bytes the event was read from.
type Event struct {
	Kind  EventKind
	Key   keys.KeyCode
	Mouse keys.MouseEvent
	Raw   []byte
}

func (e Event) String() string {
	switch e.Kind {
	case EventKey:
		return e.Key.String()
	case EventMouse:
		return e.Mouse.String()
	default:
		return fmt.Sprintf("%q", e.Raw)
	}
}

// Input assembles reads into events. A read that ends part way through a
// known sequence is held until the next read completes it, so a lone Escape
// only shows up once something else is typed.
type Input struct {
	r       io.Reader
	buf     []byte
	pending []byte
	err     error
}

func NewInput(r io.Reader, size int) *Input {
	return &Input{r: r, buf: make([]byte, size)}
}

// Next blocks until an event is available. Bytes still pending when the
// reader fails are returned as a raw event before the error.
func (in *Input) Next() (Event, error) {
	for {
		if len(in.pending) > 0 {
			if n, ev, ok := in.match(in.pending); ok {
				in.consume(n)
				return ev, nil
			}
			if in.err == nil && in.incomplete(in.pending) {
				if err := in.fill(); err != nil {
					in.err = err
				}
				continue
			}
			n := in.rawLength(in.pending)
			ev := Event{Kind: EventRaw, Raw: clone(in.pending[:n])}
			in.consume(n)
			return ev, nil
		}
		if in.err != nil {
			return Event{}, in.err
		}
		if err := in.fill(); err != nil {
			in.err = err
		}
	}
}

func (in *Input) fill() error {
	n, err := in.r.Read(in.buf)
	in.pending = append(in.pending, in.buf[:n]...)
	return err
}

func (in *Input) consume(n int) {
	in.pending = in.pending[:copy(in.pending, in.pending[n:])]
}

// match decodes the key or mouse report at the start of b. Table sequences
// are prefix free, so the first length that decodes is the only one.
func (in *Input) match(b []byte) (int, Event, bool) {
	if len(b) >= 6 {
		if m, ok := keys.DecodeMouse(b[:6]); ok {
			return 6, Event{Kind: EventMouse, Mouse: m, Raw: clone(b[:6])}, true
		}
	}
	for n := 1; n <= len(b); n++ {
		if k, ok := keys.Decode(b[:n]); ok {
			return n, Event{Kind: EventKey, Key: k, Raw: clone(b[:n])}, true
		}
		if !keys.IsPrefix(b[:n]) {
			break
		}
	}
	return 0, Event{}, false
}

func (in *Input) incomplete(b []byte) bool {
	if keys.IsPrefix(b) || keys.IsMousePrefix(b) {
		return true
	}
	return b[0] != esc && !utf8.FullRune(b)
}

// An unknown CSI sequence runs to its final byte, any other escape sequence
// to the next ESC. Everything else goes out one character at a time.
func (in *Input) rawLength(b []byte) int {
	if b[0] != esc {
		_, n := utf8.DecodeRune(b)
		return n
	}
	csi := len(b) > 1 && b[1] == '['
	start := 1
	if csi {
		start = 2
	}
	for i := start; i < len(b); i++ {
		switch {
		case b[i] == esc:
			return i
		case csi && b[i] >= 0x40 && b[i] <= 0x7e:
			return i + 1
		}
	}
	return len(b)
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
