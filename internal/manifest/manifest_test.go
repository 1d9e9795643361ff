package manifest_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lugassawan/lintargs/internal/manifest"
)

const packageManifest = `
[package]
name = "demo"
required-features = ["nightly"]

[lints]
unused = "warn"
dead_code = "deny"
bogus = "loud"
`

const workspaceManifest = `
[workspace]
members = ["crates/b", "crates/a", "crates/a"]

[workspace.lints]
unused = "allow"
missing_docs = "warn"
`

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, manifest.DefaultFileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPackage(t *testing.T) {
	path := writeManifest(t, t.TempDir(), packageManifest)

	m, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.PackageName() != "demo" {
		t.Errorf("PackageName() = %q, want %q", m.PackageName(), "demo")
	}
	if m.IsWorkspace() {
		t.Error("package manifest should not be a workspace")
	}
	if m.Path() != path {
		t.Errorf("Path() = %q, want %q", m.Path(), path)
	}

	var warnings []string
	set := m.PackageLints(&warnings)
	if set.Len() != 2 {
		t.Errorf("Len() = %d, want 2", set.Len())
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], `"bogus"`) {
		t.Errorf("warnings = %q, want one for bogus", warnings)
	}
	if got := set.RequiredFeatures(); !reflect.DeepEqual(got, []string{"nightly"}) {
		t.Errorf("RequiredFeatures() = %v", got)
	}
}

func TestLoadWorkspace(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, workspaceManifest)

	m, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.IsWorkspace() {
		t.Fatal("expected workspace manifest")
	}

	want := []string{filepath.Join(root, "crates/a"), filepath.Join(root, "crates/b")}
	if got := m.MemberDirs(); !reflect.DeepEqual(got, want) {
		t.Errorf("MemberDirs() = %v, want %v", got, want)
	}

	ws := m.WorkspaceLints(nil)
	if !ws.Has("missing_docs") || !ws.Has("unused") {
		t.Errorf("workspace lints = %v", ws.Names())
	}
	if m.PackageLints(nil).Len() != 0 {
		t.Error("virtual manifest should have no package lints")
	}
	if m.PackageName() != filepath.Base(root) {
		t.Errorf("PackageName() = %q, want directory name", m.PackageName())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "invalid toml", content: "lints = [[[", wantErr: "invalid manifest"},
		{name: "non-string lint state", content: "[package]\nname = \"x\"\n[lints]\nunused = 1\n", wantErr: "invalid manifest"},
		{name: "empty", content: "", wantErr: manifest.ErrMsgEmpty},
		{name: "nested lint table", content: "[package]\nname = \"x\"\n[lints.rust]\nunused = \"warn\"\n", wantErr: "[lints] entry \"rust\""},
		{name: "nested workspace lint table", content: "[workspace]\n[workspace.lints.clippy]\npedantic = \"warn\"\n", wantErr: manifest.ErrMsgLintShape},
		{name: "unnamed package", content: "[package]\nrequired-features = []\n", wantErr: manifest.ErrMsgEmptyPackageName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			_, err := manifest.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := manifest.Load(filepath.Join(t.TempDir(), manifest.DefaultFileName))
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestFindWorkspaceRoot(t *testing.T) {
	root := t.TempDir()
	rootPath := writeManifest(t, root, workspaceManifest)
	member := filepath.Join(root, "crates", "a")
	writeManifest(t, member, packageManifest)

	got, ok, err := manifest.FindWorkspaceRoot(member, manifest.DefaultFileName)
	if err != nil {
		t.Fatalf("FindWorkspaceRoot: %v", err)
	}
	if !ok || got != rootPath {
		t.Errorf("FindWorkspaceRoot = %q, %v; want %q, true", got, ok, rootPath)
	}
}

func TestFindWorkspaceRootSkipsPackages(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, packageManifest)
	child := filepath.Join(root, "nested")
	writeManifest(t, child, packageManifest)

	_, ok, err := manifest.FindWorkspaceRoot(child, manifest.DefaultFileName)
	if err != nil {
		t.Fatalf("FindWorkspaceRoot: %v", err)
	}
	if ok {
		t.Error("package-only ancestors should not count as a workspace root")
	}
}

func TestFindWorkspaceRootNestedAncestorLints(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[workspace]\n[workspace.lints.rust]\nunused = \"warn\"\n")
	child := filepath.Join(root, "pkg")
	writeManifest(t, child, packageManifest)

	_, _, err := manifest.FindWorkspaceRoot(child, manifest.DefaultFileName)
	if err == nil {
		t.Fatal("expected error for nested ancestor lint table")
	}
	if !strings.Contains(err.Error(), "only flat lint tables are supported") {
		t.Errorf("error %q should explain the accepted lint table shape", err)
	}
}

func TestHasMember(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, workspaceManifest)

	m, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.HasMember(filepath.Join(root, "crates", "a")) {
		t.Error("crates/a should be a member")
	}
	if m.HasMember(filepath.Join(root, "vendor", "other")) {
		t.Error("vendor/other should not be a member")
	}
}
