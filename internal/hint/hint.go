package hint

import (
	"io"
	"os"

	"github.com/lugassawan/lintargs/internal/output"
	"github.com/lugassawan/lintargs/internal/termcolor"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// QuietEnv silences hints when set, whatever its value.
const QuietEnv = "LINTARGS_QUIET"

// Option is a flag worth suggesting for the running command.
type Option struct {
	Flag        string
	Description string
}

// Hints prints the flags a command run did not use, ahead of its output.
type Hints struct {
	cmd     *cobra.Command
	painter *termcolor.Painter
	options []Option
}

func New(cmd *cobra.Command, p *termcolor.Painter) *Hints {
	return &Hints{cmd: cmd, painter: p}
}

// Add registers a hint for flag, given without the leading "--".
func (h *Hints) Add(flag, description string) *Hints {
	h.options = append(h.options, Option{Flag: flag, Description: description})
	return h
}

// Pending returns the options whose flag was not passed explicitly.
func (h *Hints) Pending() []Option {
	return lo.Filter(h.options, func(o Option, _ int) bool {
		f := h.cmd.Flags().Lookup(o.Flag)
		return f == nil || !f.Changed
	})
}

// Show writes pending hints to stderr. Nothing is written in JSON mode, when
// QuietEnv is set, or when every hinted flag was already given.
func (h *Hints) Show() {
	if _, quiet := os.LookupEnv(QuietEnv); quiet || output.IsJSON(h.cmd) {
		return
	}
	pending := h.Pending()
	if len(pending) == 0 {
		return
	}

	tbl := termcolor.NewTable(1)
	for _, o := range pending {
		tbl.AddRow("  "+h.painter.Paint("--"+o.Flag, termcolor.Gray), h.painter.Paint(o.Description, termcolor.Gray))
	}

	w := h.cmd.ErrOrStderr()
	_, _ = io.WriteString(w, h.painter.Paint("Options:", termcolor.Gray)+"\n")
	_ = tbl.Render(w)
	_, _ = io.WriteString(w, "\n")
}
