package driver

import (
	"github.td.teradata.com/sandbox/vtscreen/internal/services/display"
)

const helpText = "Press keys to decode them, Ctrl-C to quit"

// drawHelp writes the key legend on the last interior row of the dialog.
func (d *Driver) drawHelp(r display.Rect) error {
	in := r.Inset()
	if err := d.screen.Goto(in.Bottom(), in.Left+1); err != nil {
		return err
	}
	if err := d.screen.SetColor(display.Gray, display.Color(d.cfg.Theme.Bg)); err != nil {
		return err
	}
	return d.screen.WriteFixedWidth(helpText, in.Width-2)
}
