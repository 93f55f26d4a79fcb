package services

import (
	"time"

	"github.com/vvka-141/frameseq/internal/checksum"
	"github.com/vvka-141/frameseq/internal/files/filesystem"
	"github.com/vvka-141/frameseq/internal/retry"
	"github.com/vvka-141/frameseq/pkg/frameseq"
)

// SequenceService inspects, compares and transfers sequences on a filesystem.
// Thread-Safety: NOT safe for concurrent Transfer() calls on the same instance
// when the approver keeps state, such as an "overwrite all" answer.
type SequenceService struct {
	fsys       filesystem.WritableFileSystem
	calculator checksum.Calculator
	approver   frameseq.Approver
	logger     frameseq.Logger
	executor   *retry.Executor
}

// NewSequenceService creates a new SequenceService with all dependencies injected.
//
// Panics on nil dependencies: these are programmer errors that should fail
// loudly at startup. Filesystem and approval failures are returned as errors.
func NewSequenceService(
	fsys filesystem.WritableFileSystem,
	calculator checksum.Calculator,
	approver frameseq.Approver,
	logger frameseq.Logger,
) *SequenceService {
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	executor := retry.NewExecutor(retry.NewFileOpClassifier(), retry.DefaultFileBackoff()).
		OnRetry(func(op retry.FileOp, n int, err error, delay time.Duration) {
			logger.Verbose("%s busy, retry %d in %v: %v", op, n, delay, err)
		})

	return &SequenceService{
		fsys:       fsys,
		calculator: calculator,
		approver:   approver,
		logger:     logger,
		executor:   executor,
	}
}

// WithExecutor replaces the retry executor, mainly so tests can avoid delays.
func (s *SequenceService) WithExecutor(executor *retry.Executor) *SequenceService {
	clone := *s
	clone.executor = executor
	return &clone
}
