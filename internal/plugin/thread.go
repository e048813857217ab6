package plugin

import (
	"log/slog"
	"sync"

	"go.starlark.net/starlark"
)

// DefaultMaxSteps bounds the work one plugin rule may do on one file.
const DefaultMaxSteps = 10_000_000

// ThreadPool manages a pool of Starlark threads shared by plugin rules.
// Linting workers take a thread per rule invocation and return it after.
type ThreadPool struct {
	mu       sync.Mutex
	threads  []*starlark.Thread
	maxSize  int
	maxSteps uint64
	logger   *slog.Logger
}

// NewThreadPool creates a new thread pool with the specified maximum size.
// print() output of scripts goes to logger at debug level.
func NewThreadPool(maxSize int, logger *slog.Logger) *ThreadPool {
	if maxSize <= 0 {
		maxSize = 10 // default pool size
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ThreadPool{
		threads:  make([]*starlark.Thread, 0, maxSize),
		maxSize:  maxSize,
		maxSteps: DefaultMaxSteps,
		logger:   logger,
	}
}

// SetMaxSteps changes the execution step budget of threads handed out
// after the call.
func (p *ThreadPool) SetMaxSteps(steps uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.maxSteps = steps
}

// Get retrieves a thread from the pool or creates a new one.
// The thread name is used for error reporting.
func (p *ThreadPool) Get(name string) *starlark.Thread {
	p.mu.Lock()
	defer p.mu.Unlock()

	var thread *starlark.Thread
	if n := len(p.threads); n > 0 {
		thread = p.threads[n-1]
		p.threads = p.threads[:n-1]
		thread.Name = name
	} else {
		logger := p.logger
		thread = &starlark.Thread{
			Name: name,
			Print: func(t *starlark.Thread, msg string) {
				logger.Debug("plugin print", "thread", t.Name, "msg", msg)
			},
		}
	}

	// Steps accumulate over the life of a thread, so the budget is relative.
	thread.SetMaxExecutionSteps(thread.ExecutionSteps() + p.maxSteps)
	return thread
}

// Put returns a thread to the pool for reuse.
// If the pool is full, the thread is discarded.
func (p *ThreadPool) Put(thread *starlark.Thread) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) < p.maxSize {
		// Clear any state that might leak between uses
		thread.Name = ""
		thread.Uncancel()
		thread.SetLocal(reportKey, nil)
		p.threads = append(p.threads, thread)
	}
}

// Size returns the current number of threads in the pool.
func (p *ThreadPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.threads)
}
