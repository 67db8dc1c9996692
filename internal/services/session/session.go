package session

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.td.teradata.com/sandbox/vtscreen/internal/log"
	"github.td.teradata.com/sandbox/vtscreen/internal/services/display"
)

var (
	ErrSessionActive = errors.New("a raw mode session is already active")
	ErrNotRaw        = errors.New("terminal is not in raw mode")
)

// Only one terminal can usefully be raw per process.
var active atomic.Pointer[Session]

// Session is a handle on a terminal in raw mode. It holds the attributes
// captured on entry and gives them back exactly once.
type Session struct {
	mu     sync.Mutex
	driver Driver
	screen *display.Screen
	saved  Attributes
	raw    bool
	mouse  bool
}

// Enter saves the current terminal attributes and switches to raw mode.
// Nothing is changed if the attributes cannot be read. The screen may be nil
// when mouse reporting is not needed.
func Enter(d Driver, scr *display.Screen) (*Session, error) {
	s := &Session{driver: d, screen: scr}
	if !active.CompareAndSwap(nil, s) {
		return nil, ErrSessionActive
	}

	saved, err := d.Snapshot()
	if err != nil {
		active.Store(nil)
		return nil, fmt.Errorf("reading terminal attributes: %w", err)
	}
	if err := d.MakeRaw(); err != nil {
		rerr := d.Restore(saved)
		active.Store(nil)
		return nil, fmt.Errorf("entering raw mode: %w", errors.Join(err, rerr))
	}

	s.saved = saved
	s.raw = true
	log.Debugf("terminal switched to raw mode")
	return s, nil
}

// Raw reports whether the session still holds the terminal in raw mode.
func (s *Session) Raw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// EnableMouseReporting asks the terminal for X10 click reports.
func (s *Session) EnableMouseReporting() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.raw {
		return ErrNotRaw
	}
	if s.screen == nil {
		return errors.New("session has no screen to write to")
	}
	if err := s.screen.EnableMouse(); err != nil {
		return err
	}
	s.mouse = true
	return nil
}

// Exit turns mouse reporting back off and restores the saved attributes.
// Later calls return ErrNotRaw.
func (s *Session) Exit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.raw {
		return ErrNotRaw
	}

	var merr error
	if s.mouse {
		merr = s.screen.DisableMouse()
		s.mouse = false
	}
	rerr := s.driver.Restore(s.saved)
	s.raw = false
	s.saved = nil
	active.CompareAndSwap(s, nil)

	if err := errors.Join(merr, rerr); err != nil {
		log.Errorf("restoring terminal: %v", err)
		return fmt.Errorf("restoring terminal: %w", err)
	}
	log.Debugf("terminal restored")
	return nil
}
