package async

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// ErrPanic is wrapped by errors produced from a recovered task panic
var ErrPanic = goerr.New("panic in worker task")

// ProgressFunc is called after every successfully finished task
type ProgressFunc func(done, total int)

type options struct {
	progress ProgressFunc
}

// Option configures Run
type Option func(*options)

// WithProgress registers a completion callback. Calls are serialized.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// Run executes task for every index in [0, total) on at most workers goroutines
//
// Behavior:
//   - Blocks until every started task has returned
//   - The first error (or recovered panic) cancels the context passed to
//     the remaining tasks, stops scheduling new ones and is returned
//   - Cancellation of ctx is reported as an error even if no task failed
//   - Panics are converted into errors wrapping ErrPanic with the stack trace
func Run(ctx context.Context, workers, total int, task func(ctx context.Context, i int) error, opts ...Option) error {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))

	var (
		mu   sync.Mutex
		done int
	)

	for i := range total {
		if egCtx.Err() != nil {
			break
		}

		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					ctxlog.From(egCtx).Error("panic in worker task",
						"recover", r,
						"stack", string(stack),
					)
					err = goerr.Wrap(ErrPanic, fmt.Sprint(r),
						goerr.V("index", i),
						goerr.V("stack", string(stack)),
					)
				}
			}()

			// A task admitted while another one was failing is skipped
			if egCtx.Err() != nil {
				return nil
			}

			if err := task(egCtx, i); err != nil {
				return err
			}

			if cfg.progress != nil {
				mu.Lock()
				done++
				cfg.progress(done, total)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	// Tasks skipped because the caller cancelled must not look like success
	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "worker pool interrupted")
	}
	return nil
}
