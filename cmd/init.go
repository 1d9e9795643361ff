package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/lugassawan/lintargs/internal/config"
	"github.com/spf13/cobra"
)

const flagCompiler = "compiler"

func init() {
	initCmd.Flags().String(flagCompiler, "", "compiler to run (default: rustc)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:         "init",
	Short:       "Create a lintargs config file",
	Long:        "Writes a .lintargs.toml with default settings (or to the path given by --config). An existing config is left untouched.",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{"skipConfig": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString(flagConfig)
		if path == "" {
			path = config.FileName
		}

		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Config %s already exists, skipping config creation\n", path)
			return nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check config: %w", err)
		}

		cfg := config.DefaultConfig()
		if compiler, _ := cmd.Flags().GetString(flagCompiler); compiler != "" {
			cfg.Compiler = compiler
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized lintargs\n")
		fmt.Fprintf(cmd.OutOrStdout(), "  Config:   %s\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "  Compiler: %s\n", cfg.Compiler)
		fmt.Fprintf(cmd.OutOrStdout(), "  Manifest: %s\n", cfg.Manifest)
		return nil
	},
}
