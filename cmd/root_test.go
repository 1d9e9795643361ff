package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lugassawan/lintargs/internal/config"
	"github.com/lugassawan/lintargs/internal/output"
	"github.com/spf13/cobra"
)

func TestRootLoadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	writeFile(t, path, "compiler = \"clippy-driver\"\nconcurrency = 3\n")

	cmd, _ := newTestCmd()
	cmd.SetContext(context.Background())
	_ = cmd.Flags().Set(flagConfig, path)

	if err := rootCmd.PersistentPreRunE(cmd, nil); err != nil {
		t.Fatalf("PersistentPreRunE: %v", err)
	}
	cfg := config.FromContext(cmd.Context())
	if cfg.Compiler != "clippy-driver" || cfg.Concurrency != 3 {
		t.Errorf("config = %+v", cfg)
	}
	if CommandName() != "test" {
		t.Errorf("CommandName() = %q, want test", CommandName())
	}
}

func TestRootMissingConfigUsesDefaults(t *testing.T) {
	cmd, _ := newTestCmd()
	cmd.SetContext(context.Background())
	_ = cmd.Flags().Set(flagConfig, filepath.Join(t.TempDir(), config.FileName))

	if err := rootCmd.PersistentPreRunE(cmd, nil); err != nil {
		t.Fatalf("PersistentPreRunE: %v", err)
	}
	if got := config.FromContext(cmd.Context()).Compiler; got != "rustc" {
		t.Errorf("Compiler = %q, want rustc", got)
	}
}

func TestRootInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	writeFile(t, path, "compiler = [[[")

	cmd, _ := newTestCmd()
	_ = cmd.Flags().Set(flagConfig, path)

	err := rootCmd.PersistentPreRunE(cmd, nil)
	if err == nil {
		t.Fatal(errExpected)
	}
	if code := output.Code(err); code != output.ErrConfig {
		t.Errorf("code = %q, want %q", code, output.ErrConfig)
	}
}

func TestRootSkipConfigAnnotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	writeFile(t, path, "compiler = [[[")

	parent := &cobra.Command{Use: "parent", Annotations: map[string]string{"skipConfig": "true"}}
	child, _ := newTestCmd()
	parent.AddCommand(child)
	_ = child.Flags().Set(flagConfig, path)

	if err := rootCmd.PersistentPreRunE(child, nil); err != nil {
		t.Fatalf("annotated command should skip config: %v", err)
	}
}

func TestIsJSONModeDefault(t *testing.T) {
	if IsJSONMode() {
		t.Error("IsJSONMode should be false without --json")
	}
}

func TestSeverityColor(t *testing.T) {
	if severityColor("-D") == "" || severityColor("-W") == "" || severityColor("-A") == "" {
		t.Error("every severity marker should have a color")
	}
	if severityColor("--edition") != "" {
		t.Error("unknown markers should have no color")
	}
}
