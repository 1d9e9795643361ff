package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/lugassawan/lintargs/internal/process"
)

// RunFunc executes argv in dir with extra environment entries and returns its output.
// Non-zero exit codes are reported via exitCode (not err).
// err is non-nil only when the process could not start.
type RunFunc func(ctx context.Context, dir string, argv, env []string) (stdout, stderr []byte, exitCode int, err error)

// Target is one package to run the compiler for.
type Target struct {
	Name    string
	Command *process.Builder
}

// Config bundles all parameters for a parallel execution run.
type Config struct {
	Targets     []Target
	Concurrency int // 0 = len(Targets)
	FailFast    bool
	Runner      RunFunc
}

// Result holds the outcome of running a single target.
type Result struct {
	Target    Target
	ExitCode  int
	Stdout    []byte
	Stderr    []byte
	Duration  time.Duration
	Err       error // non-nil only if process couldn't start
	Cancelled bool  // true if skipped due to fail-fast
}

// Failed reports whether the target did not complete successfully.
func (r Result) Failed() bool {
	return r.Cancelled || r.Err != nil || r.ExitCode != 0
}

// Run executes every target concurrently.
// Results are returned in the same order as cfg.Targets.
func Run(ctx context.Context, cfg Config) []Result {
	if len(cfg.Targets) == 0 {
		return nil
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = len(cfg.Targets)
	}
	runner := cfg.Runner
	if runner == nil {
		runner = ExecRunner()
	}

	results := make([]Result, len(cfg.Targets))
	sem := make(chan struct{}, concurrency)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	for i, t := range cfg.Targets {
		wg.Add(1)
		go func(idx int, target Target) {
			defer wg.Done()

			// Check for cancellation before acquiring semaphore.
			select {
			case <-ctx.Done():
				results[idx] = Result{Target: target, Cancelled: true}
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			// Re-check after acquiring semaphore.
			select {
			case <-ctx.Done():
				results[idx] = Result{Target: target, Cancelled: true}
				return
			default:
			}

			cmd := target.Command
			start := time.Now()
			stdout, stderr, exitCode, err := runner(ctx, cmd.Dir(), cmd.Argv(), cmd.Environ())
			results[idx] = Result{
				Target:   target,
				ExitCode: exitCode,
				Stdout:   stdout,
				Stderr:   stderr,
				Duration: time.Since(start),
				Err:      err,
			}

			if cfg.FailFast && (exitCode != 0 || err != nil) {
				cancel()
			}
		}(i, t)
	}

	wg.Wait()
	return results
}

// ExecRunner returns a RunFunc that starts argv[0] directly, without a shell.
func ExecRunner() RunFunc {
	return func(ctx context.Context, dir string, argv, env []string) ([]byte, []byte, int, error) {
		if len(argv) == 0 {
			return nil, nil, 0, errors.New("empty command")
		}
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // argv comes from the user's config
		cmd.Dir = dir
		if len(env) > 0 {
			cmd.Env = append(os.Environ(), env...)
		}

		var stdout, stderr safeBuffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err := cmd.Run()
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), nil
			}
			// Process could not start (e.g. binary not found).
			return nil, nil, 0, err
		}

		return stdout.Bytes(), stderr.Bytes(), 0, nil
	}
}

// safeBuffer is a minimal concurrency-safe bytes.Buffer for capturing output.
type safeBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	b.buf = append(b.buf, p...)
	b.mu.Unlock()
	return len(p), nil
}

func (b *safeBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf...)
}
