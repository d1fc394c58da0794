package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Diagnostics prints warnings, errors and progress for humans. Colors
// are only used when w is a terminal.
type Diagnostics struct {
	w    io.Writer
	warn *color.Color
	fail *color.Color
	info *color.Color

	inProgress bool
}

// NewDiagnostics creates diagnostics writing to w.
func NewDiagnostics(w io.Writer, noColor bool) *Diagnostics {
	d := &Diagnostics{
		w:    w,
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed),
		info: color.New(color.FgCyan),
	}
	f, ok := w.(*os.File)
	if noColor || !ok || !IsTerminal(f) {
		d.warn.DisableColor()
		d.fail.DisableColor()
		d.info.DisableColor()
	}
	return d
}

func (d *Diagnostics) endProgress() {
	if d.inProgress {
		fmt.Fprintln(d.w)
		d.inProgress = false
	}
}

// Warning prints a non-fatal message.
func (d *Diagnostics) Warning(msg string) {
	d.endProgress()
	d.warn.Fprintf(d.w, "Warning: %s\n", msg)
}

// Error prints a fatal error.
func (d *Diagnostics) Error(err error) {
	d.endProgress()
	d.fail.Fprintf(d.w, "Error: %v\n", err)
}

// Info prints an informational line.
func (d *Diagnostics) Info(format string, args ...any) {
	d.endProgress()
	d.info.Fprintf(d.w, format+"\n", args...)
}

// Progress redraws the progress line; p is in [0,1].
func (d *Diagnostics) Progress(p float64) {
	fmt.Fprintf(d.w, "\rProgress: %5.1f%%", p*100)
	d.inProgress = true
	if p >= 1 {
		d.endProgress()
	}
}
