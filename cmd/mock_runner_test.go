package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/lugassawan/lintargs/internal/config"
	"github.com/lugassawan/lintargs/internal/executor"
	"github.com/spf13/cobra"
)

const (
	pkgApp = "app"
	pkgLib = "lib"

	rootManifest = `
[workspace]
members = ["app", "lib"]

[workspace.lints]
unused = "allow"
missing_docs = "warn"
`
	appManifest = `
[package]
name = "app"
required-features = ["nightly"]

[lints]
unused = "warn"
dead_code = "deny"
`
	libManifest = `
[package]
name = "lib"

[lints]
missing_docs = "loud"
`
	errExpected   = "expected error"
	fatalRunE     = "RunE: %v"
	outContainFmt = "output %q does not contain %q"
)

// runCall is one recorded invocation of the fake compiler.
type runCall struct {
	dir  string
	argv []string
}

// mockRun records calls and answers with a per-directory exit code.
type mockRun struct {
	mu       sync.Mutex
	calls    []runCall
	exitCode map[string]int
	stderr   string
}

func (m *mockRun) runFunc() executor.RunFunc {
	return func(_ context.Context, dir string, argv, _ []string) ([]byte, []byte, int, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.calls = append(m.calls, runCall{dir: dir, argv: argv})
		code := m.exitCode[filepath.Base(dir)]
		if code != 0 {
			return nil, []byte(m.stderr), code, nil
		}
		return []byte("ok"), nil, 0, nil
	}
}

// overrideRunFunc temporarily replaces newRunFunc for testing.
func overrideRunFunc(m *mockRun) func() {
	orig := newRunFunc
	newRunFunc = m.runFunc
	return func() { newRunFunc = orig }
}

// newTestCmd creates a cobra.Command carrying the flags the commands read,
// a default config in its context and a bytes.Buffer for output capture.
func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool(flagNoColor, true, "")
	cmd.Flags().Bool(flagJSON, false, "")
	cmd.Flags().String(flagConfig, "", "")
	cmd.Flags().String(flagManifest, "", "")
	cmd.Flags().Bool(flagDenyWarnings, false, "")
	cmd.Flags().Bool(flagFailFast, false, "")
	cmd.Flags().Int(flagConcurrency, 0, "")
	cmd.Flags().String(flagCompiler, "", "")
	cmd.SetContext(config.WithConfig(context.Background(), config.DefaultConfig()))
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

// newWorkspace writes a two-member workspace and returns the root manifest path.
func newWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, pkgApp, "Cargo.toml"), appManifest)
	writeFile(t, filepath.Join(root, pkgLib, "Cargo.toml"), libManifest)
	path := filepath.Join(root, "Cargo.toml")
	writeFile(t, path, rootManifest)
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}
