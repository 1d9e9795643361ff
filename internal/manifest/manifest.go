package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/lugassawan/lintargs/internal/lints"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
)

// DefaultFileName is the manifest file name looked up in package directories.
const DefaultFileName = "Cargo.toml"

// Manifest is a decoded Cargo-style manifest.
type Manifest struct {
	Package   *Package          `toml:"package,omitempty"`
	Lints     map[string]string `toml:"lints,omitempty"`
	Workspace *Workspace        `toml:"workspace,omitempty"`

	path string
}

// Package holds the [package] table.
type Package struct {
	Name             string   `toml:"name"`
	RequiredFeatures []string `toml:"required-features,omitempty"`
}

// Workspace holds the [workspace] table.
type Workspace struct {
	Members []string          `toml:"members,omitempty"`
	Lints   map[string]string `toml:"lints,omitempty"`
}

// Validation error messages.
const (
	ErrMsgEmpty            = "manifest declares neither [package] nor [workspace]"
	ErrMsgEmptyPackageName = "package.name must not be empty"
	ErrMsgLintShape        = "unsupported lint table"
)

// Validate checks that the manifest describes a package, a workspace or both.
func (m *Manifest) Validate() error {
	var errs []error
	if m.Package == nil && m.Workspace == nil {
		errs = append(errs, errors.New(ErrMsgEmpty))
	}
	if m.Package != nil && m.Package.Name == "" {
		errs = append(errs, errors.New(ErrMsgEmptyPackageName))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid manifest %s: %w", m.path, errors.Join(errs...))
	}
	return nil
}

// Path returns the file the manifest was loaded from.
func (m *Manifest) Path() string { return m.path }

// Dir returns the directory containing the manifest.
func (m *Manifest) Dir() string { return filepath.Dir(m.path) }

// IsWorkspace reports whether the manifest declares a [workspace] table.
func (m *Manifest) IsWorkspace() bool { return m.Workspace != nil }

// PackageName returns package.name, or the directory name for virtual manifests.
func (m *Manifest) PackageName() string {
	if m.Package != nil && m.Package.Name != "" {
		return m.Package.Name
	}
	return filepath.Base(m.Dir())
}

// PackageLints builds the package-level lint set.
func (m *Manifest) PackageLints(warnings *[]string) *lints.Set {
	var features []string
	if m.Package != nil {
		features = m.Package.RequiredFeatures
	}
	return lints.New(m.Lints, features, warnings)
}

// WorkspaceLints builds the lint set from [workspace.lints].
func (m *Manifest) WorkspaceLints(warnings *[]string) *lints.Set {
	if m.Workspace == nil {
		return lints.New(nil, nil, warnings)
	}
	return lints.New(m.Workspace.Lints, nil, warnings)
}

// MemberDirs resolves workspace members against the manifest directory.
// The result is sorted and free of duplicates.
func (m *Manifest) MemberDirs() []string {
	if m.Workspace == nil {
		return nil
	}
	dirs := lo.Map(m.Workspace.Members, func(member string, _ int) string {
		if filepath.IsAbs(member) {
			return filepath.Clean(member)
		}
		return filepath.Join(m.Dir(), member)
	})
	dirs = lo.Uniq(dirs)
	slices.Sort(dirs)
	return dirs
}

// HasMember reports whether dir is one of the workspace members.
func (m *Manifest) HasMember(dir string) bool {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	return slices.Contains(m.MemberDirs(), abs)
}

// Load reads, decodes and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	m.path = path
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Parse decodes manifest TOML without validating it. Lint tables must be
// flat name = "state" maps; nested forms such as [lints.rust] are rejected
// with an error naming the offending entry.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		if shapeErr := lintShapeError(data); shapeErr != nil {
			return nil, shapeErr
		}
		return nil, err
	}
	return &m, nil
}

// lintTables mirrors the lint tables with untyped values.
type lintTables struct {
	Lints     map[string]any `toml:"lints"`
	Workspace struct {
		Lints map[string]any `toml:"lints"`
	} `toml:"workspace"`
}

func lintShapeError(data []byte) error {
	var raw lintTables
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, table := range []struct {
		name    string
		entries map[string]any
	}{
		{"lints", raw.Lints},
		{"workspace.lints", raw.Workspace.Lints},
	} {
		names := lo.Keys(table.entries)
		slices.Sort(names)
		for _, name := range names {
			if _, ok := table.entries[name].(string); !ok {
				return fmt.Errorf("%s: [%s] entry %q must be a string state (only flat lint tables are supported, not nested tables such as [lints.rust])",
					ErrMsgLintShape, table.name, name)
			}
		}
	}
	return nil
}

// FindWorkspaceRoot walks up from the parent of dir looking for a manifest
// that declares [workspace]. It returns the manifest path when one is found.
func FindWorkspaceRoot(dir, fileName string) (string, bool, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for cur := filepath.Dir(abs); ; cur = filepath.Dir(cur) {
		candidate := filepath.Join(cur, fileName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			m, err := Load(candidate)
			if err != nil {
				return "", false, err
			}
			if m.IsWorkspace() {
				return candidate, true, nil
			}
		}
		if parent := filepath.Dir(cur); parent == cur {
			return "", false, nil
		}
	}
}
