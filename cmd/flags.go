package cmd

import (
	"fmt"

	"github.com/lugassawan/lintargs/internal/output"
	"github.com/lugassawan/lintargs/internal/plan"
	"github.com/lugassawan/lintargs/internal/termcolor"
	"github.com/spf13/cobra"
)

const flagDenyWarnings = "deny-warnings"

func init() {
	flagsCmd.Flags().StringP(flagManifest, "m", "", "path to the manifest (default: configured manifest in the current directory)")
	flagsCmd.Flags().Bool(flagDenyWarnings, false, "exit non-zero when a lint state is invalid")
	rootCmd.AddCommand(flagsCmd)
}

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Print the merged lint flags for each package",
	Long:  "Resolves the manifest (and its workspace, if any) and prints the -A/-W/-D flags each package would be compiled with. Package lints override workspace lints per lint name.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadPlan(cmd)
		if err != nil {
			return err
		}
		denyWarnings, _ := cmd.Flags().GetBool(flagDenyWarnings)

		if isJSON(cmd) {
			if err := output.WriteJSON(cmd.OutOrStdout(), version, "flags", flagsData(res)); err != nil {
				return err
			}
			if denyWarnings && len(res.Warnings) > 0 {
				return &output.SilentError{ExitCode: 1}
			}
			return nil
		}

		p := newPainter(cmd)
		printWarnings(cmd, p, res.Warnings)

		out := cmd.OutOrStdout()
		for _, pkg := range res.Packages {
			flags := pkg.LintFlags()
			line := paintFlags(p, flags)
			if len(flags) == 0 {
				line = p.Paint("(no lint flags)", termcolor.Gray)
			}
			fmt.Fprintf(out, "%s: %s\n", p.Paint(pkg.Name, termcolor.Bold), line)
		}

		if denyWarnings && len(res.Warnings) > 0 {
			return fmt.Errorf("%d invalid lint state(s)", len(res.Warnings))
		}
		return nil
	},
}

func flagsData(res *plan.Result) output.FlagsData {
	data := output.FlagsData{
		WorkspaceRoot: res.WorkspaceRoot,
		Packages:      make([]output.PackageFlags, 0, len(res.Packages)),
		Warnings:      res.Warnings,
	}
	if data.Warnings == nil {
		data.Warnings = []string{}
	}
	for _, pkg := range res.Packages {
		flags := pkg.LintFlags()
		if flags == nil {
			flags = []string{}
		}
		data.Packages = append(data.Packages, output.PackageFlags{
			Package:          pkg.Name,
			Dir:              pkg.Dir,
			Flags:            flags,
			Command:          pkg.Command.Argv(),
			RequiredFeatures: pkg.Lints.RequiredFeatures(),
		})
	}
	return data
}
