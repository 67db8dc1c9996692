package keys

import (
	"bytes"
	"fmt"
	"sort"
)

// KeyCode identifies a key recognised from a raw input sequence.
type KeyCode int

const (
	KeyUp KeyCode = iota + 1
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyQuit
	KeyEnter
	KeyBackspace
	KeyDelete
)

var keyNames = map[KeyCode]string{
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPgUp:      "PageUp",
	KeyPgDn:      "PageDown",
	KeyQuit:      "Quit",
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
}

func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KeyCode(%d)", int(k))
}

// Home and End each have two encodings: xterm sends the SS3 form in
// application cursor mode, the linux console and screen send the tilde form.
var keymap = map[string]KeyCode{
	"\x1b[A":  KeyUp,
	"\x1b[B":  KeyDown,
	"\x1b[D":  KeyLeft,
	"\x1b[C":  KeyRight,
	"\x1bOH":  KeyHome,
	"\x1bOF":  KeyEnd,
	"\x1b[1~": KeyHome,
	"\x1b[4~": KeyEnd,
	"\x1b[5~": KeyPgUp,
	"\x1b[6~": KeyPgDn,
	"\x03":    KeyQuit,
	"\r":      KeyEnter,
	"\x7f":    KeyBackspace,
	"\x1b[3~": KeyDelete,
}

// Decode classifies a complete input sequence. Sequences that are not in the
// table are left to the caller.
func Decode(b []byte) (KeyCode, bool) {
	k, ok := keymap[string(b)]
	return k, ok
}

// IsPrefix reports whether b is the start of a longer known sequence, so a
// reader should wait for more input before giving up on it.
func IsPrefix(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for seq := range keymap {
		if len(seq) > len(b) && bytes.HasPrefix([]byte(seq), b) {
			return true
		}
	}
	return false
}

// Sequence pairs a raw byte sequence with the key it decodes to.
type Sequence struct {
	Bytes []byte
	Key   KeyCode
}

// Sequences returns a copy of the table ordered by key code, then bytes.
func Sequences() []Sequence {
	seqs := make([]Sequence, 0, len(keymap))
	for s, k := range keymap {
		seqs = append(seqs, Sequence{Bytes: []byte(s), Key: k})
	}
	sort.Slice(seqs, func(i, j int) bool {
		if seqs[i].Key != seqs[j].Key {
			return seqs[i].Key < seqs[j].Key
		}
		return bytes.Compare(seqs[i].Bytes, seqs[j].Bytes) < 0
	})
	return seqs
}
