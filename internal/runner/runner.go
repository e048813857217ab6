// Package runner lints many files in parallel and watches them for changes.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/jslint/internal/config"
	"github.com/leapstack-labs/jslint/pkg/lint"
	"golang.org/x/sync/errgroup"
)

// Options configures a Runner.
type Options struct {
	// Linter is shared by all workers.
	Linter *lint.Linter
	// Jobs limits the number of files linted at once; 0 means GOMAXPROCS.
	Jobs int
	// Files filters the files found in directories.
	Files config.FilesConfig
	// Cache is optional.
	Cache *Cache
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// FileResult is the outcome for one file. Err is set when the file could
// not be read or linted; Result is nil then.
type FileResult struct {
	Path   string
	Source []byte
	Result *lint.Result
	Err    error
	Cached bool
}

// Report is the outcome of one run.
type Report struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Files     []FileResult

	// Config holds diagnostics about the configuration itself, such as
	// duplicate plugin rules. The runner never fills it.
	Config []lint.Diagnostic
}

// Counts returns the number of kept diagnostics, suppressed diagnostics
// and failed files.
func (r *Report) Counts() (diagnostics, suppressed, failed int) {
	diagnostics = len(r.Config)
	for _, f := range r.Files {
		if f.Err != nil {
			failed++
			continue
		}
		diagnostics += len(f.Result.Diagnostics)
		suppressed += len(f.Result.Suppressed)
	}
	return diagnostics, suppressed, failed
}

// Exit codes.
const (
	ExitClean       = 0
	ExitDiagnostics = 1
	ExitError       = 2
)

// ExitCode maps the report to a process exit code.
func (r *Report) ExitCode() int {
	diagnostics, _, failed := r.Counts()
	switch {
	case failed > 0:
		return ExitError
	case diagnostics > 0:
		return ExitDiagnostics
	}
	return ExitClean
}

// Runner lints sets of files.
type Runner struct {
	linter *lint.Linter
	jobs   int
	files  config.FilesConfig
	cache  *Cache
	logger *slog.Logger
}

// New creates a runner.
func New(opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	linter := opts.Linter
	if linter == nil {
		linter = lint.New(lint.Options{Logger: logger})
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return &Runner{
		linter: linter,
		jobs:   jobs,
		files:  opts.Files,
		cache:  opts.Cache,
		logger: logger,
	}
}

// Run lints every file under paths. Per-file failures are recorded in the
// report; the error is only set for a bad path or a cancelled context.
func (r *Runner) Run(ctx context.Context, paths []string) (*Report, error) {
	files, err := Collect(paths, r.files)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files)
}

// RunFiles lints files in parallel. Results keep the order of files.
func (r *Runner) RunFiles(ctx context.Context, files []string) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
		Files:     make([]FileResult, len(files)),
	}
	logger := r.logger.With("run", report.RunID)
	logger.Debug("run started", "files", len(files), "jobs", r.jobs)

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(r.jobs, len(files))))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			// Cancellation only stops scheduling; a started file completes.
			// Index i is unique per goroutine, no lock needed.
			report.Files[i] = r.lintFile(context.WithoutCancel(gctx), path)
			if err := report.Files[i].Err; err != nil {
				logger.Warn("file failed", "file", path, "error", err)
			}
			logger.Debug("file done", "file", path, "done", done.Add(1), "total", len(files))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run %s: %w", report.RunID, err)
	}

	report.Duration = time.Since(report.StartedAt)
	logger.Debug("run finished", "duration", report.Duration)
	return report, nil
}

func (r *Runner) lintFile(ctx context.Context, path string) FileResult {
	src, err := os.ReadFile(path) //nolint:gosec // G304: paths come from the command line
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("failed to read %s: %w", path, err)}
	}

	var key string
	if r.cache != nil {
		if key, err = r.cache.Key(path, src); err != nil {
			return FileResult{Path: path, Err: err}
		}
		res, ok, err := r.cache.Get(key)
		if err != nil {
			r.logger.Warn("cache read failed", "file", path, "error", err)
		}
		if ok {
			return FileResult{Path: path, Source: src, Result: res, Cached: true}
		}
	}

	res, err := r.linter.LintSource(ctx, path, src)
	if err != nil {
		return FileResult{Path: path, Source: src, Err: err}
	}

	if r.cache != nil {
		if err := r.cache.Put(key, res); err != nil {
			r.logger.Warn("cache write failed", "file", path, "error", err)
		}
	}
	return FileResult{Path: path, Source: src, Result: res}
}
