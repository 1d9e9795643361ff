package termcolor

import (
	"os"
	"strings"
)

// NoColorEnv disables color whenever it is present in the environment.
const NoColorEnv = "NO_COLOR"

// Color is an ANSI SGR sequence. The zero value means no styling.
type Color string

const (
	Bold   Color = "\033[1m"
	Red    Color = "\033[31m"
	Green  Color = "\033[32m"
	Yellow Color = "\033[33m"
	Gray   Color = "\033[90m"
	Reset  Color = "\033[0m"
)

// Painter styles terminal text unless color is turned off.
type Painter struct {
	disabled bool
}

// NewPainter returns a Painter; color is off when forceDisable is set or
// NoColorEnv is present, even if empty.
func NewPainter(forceDisable bool) *Painter {
	_, noColor := os.LookupEnv(NoColorEnv)
	return &Painter{disabled: forceDisable || noColor}
}

// Enabled reports whether Paint emits escape sequences.
func (p *Painter) Enabled() bool { return !p.disabled }

// Paint wraps s in the given colors followed by Reset. Empty colors are
// ignored; with none left, s is returned as is.
func (p *Painter) Paint(s string, colors ...Color) string {
	if p.disabled {
		return s
	}
	var b strings.Builder
	for _, c := range colors {
		b.WriteString(string(c))
	}
	if b.Len() == 0 {
		return s
	}
	b.WriteString(s)
	b.WriteString(string(Reset))
	return b.String()
}
