package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/lugassawan/lintargs/internal/config"
	"github.com/lugassawan/lintargs/internal/executor"
	"github.com/lugassawan/lintargs/internal/hint"
	"github.com/lugassawan/lintargs/internal/output"
	"github.com/lugassawan/lintargs/internal/plan"
	"github.com/lugassawan/lintargs/internal/termcolor"
	"github.com/spf13/cobra"
)

const (
	flagFailFast    = "fail-fast"
	flagConcurrency = "concurrency"

	hintFailFast    = "Stop after the first failing package"
	hintConcurrency = "Limit the number of parallel compiler runs"
)

func init() {
	checkCmd.Flags().StringP(flagManifest, "m", "", "path to the manifest (default: configured manifest in the current directory)")
	checkCmd.Flags().Bool(flagFailFast, false, "stop after the first failure")
	checkCmd.Flags().Int(flagConcurrency, 0, "max parallel compiler runs (0 = config value, else unlimited)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [-- extra compiler args...]",
	Short: "Run the compiler for each package with its lint flags",
	Long:  "Runs the configured compiler once per package, in the package directory, with the configured compiler args, the merged lint flags and any extra args given after --.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		res, err := loadPlan(cmd)
		if err != nil {
			return err
		}

		failFast := cfg.FailFast
		if cmd.Flags().Changed(flagFailFast) {
			failFast, _ = cmd.Flags().GetBool(flagFailFast)
		}
		concurrency := cfg.Concurrency
		if cmd.Flags().Changed(flagConcurrency) {
			concurrency, _ = cmd.Flags().GetInt(flagConcurrency)
		}
		if concurrency < 0 {
			return fmt.Errorf("--%s must not be negative", flagConcurrency)
		}

		p := newPainter(cmd)
		if !isJSON(cmd) {
			printWarnings(cmd, p, res.Warnings)
		}
		hint.New(cmd, p).
			Add(flagFailFast, hintFailFast).
			Add(flagConcurrency, hintConcurrency).
			Show()

		results := executor.Run(cmd.Context(), executor.Config{
			Targets:     checkTargets(res, args),
			Concurrency: concurrency,
			FailFast:    failFast,
			Runner:      newRunFunc(),
		})

		failed := 0
		for _, r := range results {
			if r.Failed() {
				failed++
			}
		}

		if isJSON(cmd) {
			if err := output.WriteJSON(cmd.OutOrStdout(), version, "check", checkData(res, results, failed == 0)); err != nil {
				return err
			}
		} else if err := printCheckResults(cmd.OutOrStdout(), p, results); err != nil {
			return err
		}

		if failed > 0 {
			if !isJSON(cmd) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d package(s) failed\n", failed, len(results))
			}
			return &output.SilentError{ExitCode: 1}
		}
		return nil
	},
}

func checkTargets(res *plan.Result, extra []string) []executor.Target {
	targets := make([]executor.Target, 0, len(res.Packages))
	for _, pkg := range res.Packages {
		targets = append(targets, executor.Target{
			Name:    pkg.Name,
			Command: pkg.Command.Clone().Args(extra...),
		})
	}
	return targets
}

func printCheckResults(w io.Writer, p *termcolor.Painter, results []executor.Result) error {
	tbl := termcolor.NewTable(2).AlignRight(2)
	for _, r := range results {
		status := p.Paint("ok", termcolor.Green)
		switch {
		case r.Cancelled:
			status = p.Paint("skipped", termcolor.Gray)
		case r.Err != nil:
			status = p.Paint("error", termcolor.Red)
		case r.ExitCode != 0:
			status = p.Paint(fmt.Sprintf("exit %d", r.ExitCode), termcolor.Red)
		}
		tbl.AddRow(status, p.Paint(r.Target.Name, termcolor.Bold), r.Duration.Round(time.Millisecond).String())
	}
	if err := tbl.Render(w); err != nil {
		return err
	}

	for _, r := range results {
		if !r.Failed() || r.Cancelled {
			continue
		}
		fmt.Fprintf(w, "\n%s %s\n", p.Paint("---", termcolor.Gray), r.Target.Command.String())
		if r.Err != nil {
			fmt.Fprintf(w, "%v\n", r.Err)
		}
		if len(r.Stderr) > 0 {
			_, _ = w.Write(r.Stderr)
		}
	}
	return nil
}

func checkData(res *plan.Result, results []executor.Result, success bool) output.CheckData {
	data := output.CheckData{
		Results:  make([]output.CheckResult, 0, len(results)),
		Warnings: res.Warnings,
		Success:  success,
	}
	if data.Warnings == nil {
		data.Warnings = []string{}
	}
	for _, r := range results {
		item := output.CheckResult{
			Package:    r.Target.Name,
			Command:    r.Target.Command.Argv(),
			ExitCode:   r.ExitCode,
			Stdout:     string(r.Stdout),
			Stderr:     string(r.Stderr),
			DurationMS: r.Duration.Milliseconds(),
			Cancelled:  r.Cancelled,
		}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		data.Results = append(data.Results, item)
	}
	return data
}
