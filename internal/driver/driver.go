package driver

import (
	"context"
	"errors"
	"io"

	"github.td.teradata.com/sandbox/vtscreen/internal/config"
	"github.td.teradata.com/sandbox/vtscreen/internal/log"
	"github.td.teradata.com/sandbox/vtscreen/internal/services/display"
	"github.td.teradata.com/sandbox/vtscreen/internal/services/keys"
	"github.td.teradata.com/sandbox/vtscreen/internal/services/session"
	"github.td.teradata.com/sandbox/vtscreen/internal/services/tty"
)

const title = " vtscreen "

var defaultLayout = display.Rect{Left: 4, Top: 2, Width: 52, Height: 16}

// Driver runs the interactive key viewer on a device.
type Driver struct {
	dev     *tty.Device
	cfg     *config.Config
	screen  *display.Screen
	input   *Input
	history *History
	layout  display.Rect
}

func New(dev *tty.Device, cfg *config.Config) *Driver {
	return &Driver{
		dev:     dev,
		cfg:     cfg,
		screen:  display.New(dev.Out),
		input:   NewInput(dev.In, cfg.Terminal.ReadBuffer),
		history: &History{},
		layout:  defaultLayout,
	}
}

// Run draws a dialog and lists every decoded event in it until Ctrl-C or
// end of input. The terminal is back in its original mode when Run returns.
func (d *Driver) Run(ctx context.Context) error {
	return d.withSession(ctx, func() error {
		if err := d.screen.SetCursorVisible(false); err != nil {
			return err
		}
		defer d.screen.SetCursorVisible(true)

		if err := d.screen.ClearScreen(); err != nil {
			return err
		}
		for {
			if err := d.draw(); err != nil {
				return err
			}
			ev, err := d.input.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				log.Errorf("reading input: %v", err)
				_ = d.showError(err)
				return err
			}
			log.Debugf("event %s", ev)
			if ev.Kind == EventKey && ev.Key == keys.KeyQuit {
				return d.clear()
			}
			d.history.Add(ev.String())
		}
	})
}

// Dump prints one line per event with its raw bytes in hex.
func (d *Driver) Dump(ctx context.Context) error {
	return d.withSession(ctx, func() error {
		for _, s := range keys.Sequences() {
			log.Debugf("known sequence %s -> %s", HexBytes(s.Bytes), s.Key)
		}
		for {
			ev, err := d.input.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := d.screen.WriteText(DumpLine(ev)); err != nil {
				return err
			}
			if ev.Kind == EventKey && ev.Key == keys.KeyQuit {
				return nil
			}
		}
	})
}

func (d *Driver) withSession(ctx context.Context, body func() error) (err error) {
	s, err := session.Enter(d.dev.Driver, d.screen)
	if err != nil {
		return err
	}
	stop := s.Guard(ctx)
	defer stop()
	defer func() {
		if xerr := s.Exit(); err == nil {
			err = xerr
		}
	}()

	log.Infof("raw mode session on %s", d.dev.Name)
	if d.cfg.Terminal.Mouse {
		if err := s.EnableMouseReporting(); err != nil {
			return err
		}
	}
	return body()
}

func (d *Driver) draw() error {
	r := d.layout
	theme := d.cfg.Theme
	if err := d.screen.SetColor(display.Color(theme.Fg), display.Color(theme.Bg)); err != nil {
		return err
	}
	if err := d.screen.DrawDialog(r.Left, r.Top, r.Width, r.Height, ""); err != nil {
		return err
	}
	if err := d.screen.Goto(r.Top, r.Left+1); err != nil {
		return err
	}
	if err := d.screen.SetColor(display.Color(theme.TitleFg), display.Color(theme.Bg)); err != nil {
		return err
	}
	if err := d.screen.WriteText(title); err != nil {
		return err
	}
	if err := d.screen.SetColor(display.Color(theme.Fg), display.Color(theme.Bg)); err != nil {
		return err
	}

	in := r.Inset()
	lines := d.history.Last(in.Height - 2)
	for i, line := range lines {
		if err := d.screen.Goto(in.Top+i, in.Left+1); err != nil {
			return err
		}
		if err := d.screen.WriteFixedWidth(line, in.Width-2); err != nil {
			return err
		}
	}
	if err := d.drawHelp(r); err != nil {
		return err
	}
	return d.screen.ResetAttributes()
}

func (d *Driver) clear() error {
	if err := d.screen.ResetAttributes(); err != nil {
		return err
	}
	if err := d.screen.ClearScreen(); err != nil {
		return err
	}
	return d.screen.Goto(0, 0)
}
