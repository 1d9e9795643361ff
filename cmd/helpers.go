package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lugassawan/lintargs/internal/config"
	"github.com/lugassawan/lintargs/internal/executor"
	"github.com/lugassawan/lintargs/internal/lints"
	"github.com/lugassawan/lintargs/internal/output"
	"github.com/lugassawan/lintargs/internal/plan"
	"github.com/lugassawan/lintargs/internal/termcolor"
	"github.com/spf13/cobra"
)

// newRunFunc is overridden in tests to avoid running a real compiler.
var newRunFunc = executor.ExecRunner

func isJSON(cmd *cobra.Command) bool {
	return output.IsJSON(cmd)
}

func newPainter(cmd *cobra.Command) *termcolor.Painter {
	noColor, _ := cmd.Flags().GetBool(flagNoColor)
	return termcolor.NewPainter(noColor)
}

// manifestPath returns --manifest when given, else the configured manifest
// name in the working directory.
func manifestPath(cmd *cobra.Command, cfg *config.Config) string {
	if f := cmd.Flags().Lookup(flagManifest); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return filepath.Clean(cfg.Manifest)
}

func loadPlan(cmd *cobra.Command) (*plan.Result, error) {
	cfg := config.FromContext(cmd.Context())
	res, err := plan.Plan(cmd.Context(), manifestPath(cmd, cfg), cfg)
	return res, output.WithCode(output.ErrManifest, err)
}

// printWarnings writes lint warnings to stderr.
func printWarnings(cmd *cobra.Command, p *termcolor.Painter, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", p.Paint("warning:", termcolor.Bold, termcolor.Yellow), w)
	}
}

// paintFlags colors each lint list after its severity marker.
func paintFlags(p *termcolor.Painter, flags []string) string {
	parts := make([]string, 0, len(flags))
	for i, f := range flags {
		if i%2 == 1 {
			parts = append(parts, p.Paint(f, severityColor(flags[i-1])))
			continue
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, " ")
}

// severityColor returns the color for a severity flag marker.
func severityColor(marker string) termcolor.Color {
	switch marker {
	case lints.Allow.Flag():
		return termcolor.Gray
	case lints.Warn.Flag():
		return termcolor.Yellow
	case lints.Deny.Flag():
		return termcolor.Red
	default:
		return ""
	}
}
