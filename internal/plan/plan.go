package plan

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lugassawan/lintargs/internal/config"
	"github.com/lugassawan/lintargs/internal/lints"
	"github.com/lugassawan/lintargs/internal/manifest"
	"github.com/lugassawan/lintargs/internal/process"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Package is one compilation unit together with its merged lint flags.
type Package struct {
	Name           string
	Dir            string
	ManifestPath   string
	Lints          *lints.Set
	WorkspaceLints *lints.Set
	Command        *process.Builder
}

// LintFlags returns only the lint arguments for the package.
func (p Package) LintFlags() []string {
	return p.Lints.Flags(p.WorkspaceLints)
}

// Result is the outcome of planning a manifest.
type Result struct {
	WorkspaceRoot string
	Packages      []Package
	// Warnings are prefixed with the manifest they came from.
	Warnings []string
}

// Plan resolves the manifest at path. A workspace root plans every member; a
// member plans itself, inheriting [workspace.lints] from the nearest enclosing
// workspace that lists it. Any other package plans itself with its own lints.
func Plan(ctx context.Context, path string, cfg *config.Config) (*Result, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	if m.IsWorkspace() {
		res.WorkspaceRoot = m.Path()
		wsLints := scopedLints(res, m, m.WorkspaceLints)

		if m.Package != nil {
			res.Packages = append(res.Packages, newPackage(res, m, wsLints, cfg))
		}
		// A root listing itself as a member is already planned above.
		dirs := lo.Without(m.MemberDirs(), m.Dir())
		members, err := loadMembers(ctx, dirs, cfg)
		if err != nil {
			return nil, err
		}
		for _, member := range members {
			res.Packages = append(res.Packages, newPackage(res, member, wsLints, cfg))
		}
		return res, nil
	}

	rootPath, ok, err := manifest.FindWorkspaceRoot(m.Dir(), cfg.Manifest)
	if err != nil {
		return nil, err
	}
	wsLints := lints.New(nil, nil, nil)
	if ok {
		root, err := manifest.Load(rootPath)
		if err != nil {
			return nil, err
		}
		if root.HasMember(m.Dir()) {
			res.WorkspaceRoot = rootPath
			wsLints = scopedLints(res, root, root.WorkspaceLints)
		}
	}
	res.Packages = append(res.Packages, newPackage(res, m, wsLints, cfg))
	return res, nil
}

// loadMembers reads member manifests concurrently, keeping dirs order. The
// first failure cancels loads that have not started yet.
func loadMembers(ctx context.Context, dirs []string, cfg *config.Config) ([]*manifest.Manifest, error) {
	members := make([]*manifest.Manifest, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}

	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := manifest.Load(filepath.Join(dir, cfg.Manifest))
			if err != nil {
				return fmt.Errorf("workspace member %s: %w", dir, err)
			}
			members[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return members, nil
}

func newPackage(res *Result, m *manifest.Manifest, wsLints *lints.Set, cfg *config.Config) Package {
	own := scopedLints(res, m, m.PackageLints)

	cmd := process.New(cfg.Compiler).Args(cfg.CompilerArgs...).Cwd(m.Dir())
	for k, v := range cfg.Env {
		cmd.Env(k, v)
	}
	own.ApplyFlags(wsLints, cmd)

	return Package{
		Name:           m.PackageName(),
		Dir:            m.Dir(),
		ManifestPath:   m.Path(),
		Lints:          own,
		WorkspaceLints: wsLints,
		Command:        cmd,
	}
}

func scopedLints(res *Result, m *manifest.Manifest, build func(*[]string) *lints.Set) *lints.Set {
	var warnings []string
	set := build(&warnings)
	for _, w := range warnings {
		res.Warnings = append(res.Warnings, m.Path()+": "+w)
	}
	return set
}
