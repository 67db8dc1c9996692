package session

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.td.teradata.com/sandbox/vtscreen/internal/log"
)

// TerminateFunc ends the process after a signal has restored the terminal.
var TerminateFunc = func() { os.Exit(1) }

// Guard restores the terminal when the process is told to stop. Raw mode
// disables the interrupt character, so these arrive from outside the
// terminal. The returned function stops the guard.
func (s *Session) Guard(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer signal.Stop(sigs)
		select {
		case <-ctx.Done():
		case sig := <-sigs:
			log.Warnf("received %v, restoring terminal", sig)
			if s.screen != nil {
				_ = s.screen.SetCursorVisible(true)
				_ = s.screen.ResetAttributes()
			}
			_ = s.Exit()
			TerminateFunc()
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
