package driver

import (
	"github.td.teradata.com/sandbox/vtscreen/internal/services/display"
)

// showError replaces the dialog with one describing err. The terminal is
// restored afterwards, so the message stays on screen after exit.
func (d *Driver) showError(err error) error {
	r := d.layout
	if e := d.screen.SetColor(display.BrightWhite, display.Red); e != nil {
		return e
	}
	if e := d.screen.DrawDialog(r.Left, r.Top, r.Width, r.Height, " Be right back "); e != nil {
		return e
	}
	in := r.Inset()
	if e := d.screen.Goto(in.Top+1, in.Left+1); e != nil {
		return e
	}
	if e := d.screen.WriteFixedWidth(err.Error(), in.Width-2); e != nil {
		return e
	}
	return d.screen.ResetAttributes()
}
