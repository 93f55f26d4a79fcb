package retry

import (
	"context"
	"fmt"
	"time"
)

// FileOp identifies the file operation being retried.
type FileOp struct {
	Kind   string
	Source string
	Target string
}

func (op FileOp) String() string {
	return fmt.Sprintf("%s %s -> %s", op.Kind, op.Source, op.Target)
}

// Classifier decides whether a failed file operation may succeed on a
// later try.
type Classifier interface {
	IsTransient(err error) bool
}

// Schedule yields the wait before each retry. Retries is the number of
// retries after the first try; it is never negative.
type Schedule interface {
	Delay(retry int) time.Duration
	Retries() int
}

// RetryFunc is told about every retry before the executor waits.
type RetryFunc func(op FileOp, retry int, err error, delay time.Duration)

// Executor runs file operations, retrying transient failures on a
// schedule. An Executor is immutable; OnRetry returns a copy.
type Executor struct {
	classifier Classifier
	schedule   Schedule
	onRetry    RetryFunc
}

// NewExecutor panics if classifier or schedule is nil.
func NewExecutor(classifier Classifier, schedule Schedule) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if schedule == nil {
		panic("schedule cannot be nil")
	}
	return &Executor{classifier: classifier, schedule: schedule}
}

// OnRetry returns a copy of e that reports retries to fn.
func (e *Executor) OnRetry(fn RetryFunc) *Executor {
	clone := *e
	clone.onRetry = fn
	return &clone
}

// Run performs fn for op. A transient failure is retried until the
// schedule runs out, at which point the last error is returned wrapped
// with op. Fatal errors come back unwrapped on the spot.
func (e *Executor) Run(ctx context.Context, op FileOp, fn func() error) error {
	retries := max(e.schedule.Retries(), 0)
	for retry := 0; ; retry++ {
		err := fn()
		if err == nil || !e.classifier.IsTransient(err) {
			return err
		}
		if retry == retries {
			return fmt.Errorf("%s: gave up after %d tries: %w", op, retry+1, err)
		}

		delay := e.schedule.Delay(retry)
		if e.onRetry != nil {
			e.onRetry(op, retry+1, err, delay)
		}
		if err := wait(ctx, delay); err != nil {
			return err
		}
	}
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
