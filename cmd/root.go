package cmd

import (
	"github.com/lugassawan/lintargs/internal/config"
	"github.com/lugassawan/lintargs/internal/output"
	"github.com/spf13/cobra"
)

const (
	flagNoColor  = "no-color"
	flagJSON     = output.JSONFlag
	flagConfig   = "config"
	flagManifest = "manifest"
)

// version is set at build time via -ldflags.
var version = "dev"

// commandName records the last command that started running, for error envelopes.
var commandName string

var rootCmd = &cobra.Command{
	Use:          "lintargs",
	Short:        "Turn manifest lint tables into compiler flags",
	Long:         "Lintargs reads the [lints] and [workspace.lints] tables of a Cargo-style manifest, merges them with package entries taking precedence, and prints or runs the resulting -A/-W/-D compiler flags.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		commandName = cmd.Name()

		// Skip config for Cobra internals (completion, __complete)
		if cmd.Name() == "completion" || cmd.Name() == "__complete" {
			return nil
		}

		// Skip config if any command in the chain is annotated
		for c := cmd; c != nil; c = c.Parent() {
			if c.Annotations != nil && c.Annotations["skipConfig"] == "true" {
				return nil
			}
		}

		path, _ := cmd.Flags().GetString(flagConfig)
		cfg, err := config.LoadOrDefault(path)
		if err != nil {
			return output.WithCode(output.ErrConfig, err)
		}
		cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool(flagNoColor, false, "disable colored output")
	rootCmd.PersistentFlags().Bool(flagJSON, false, "write machine-readable JSON output")
	rootCmd.PersistentFlags().String(flagConfig, config.FileName, "path to the lintargs config file")
}

func Execute() error {
	return rootCmd.Execute()
}

// Version returns the build version.
func Version() string { return version }

// CommandName returns the name of the command being executed.
func CommandName() string { return commandName }

// IsJSONMode reports whether --json was passed on the command line.
func IsJSONMode() bool {
	f := rootCmd.PersistentFlags().Lookup(flagJSON)
	return f != nil && f.Value.String() == "true"
}
