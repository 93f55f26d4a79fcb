package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vvka-141/frameseq/internal/checksum"
	"github.com/vvka-141/frameseq/internal/files/filesystem"
	"github.com/vvka-141/frameseq/internal/files/scanner"
	"github.com/vvka-141/frameseq/internal/logging"
	"github.com/vvka-141/frameseq/internal/retry"
	"github.com/vvka-141/frameseq/pkg/frameseq"
)

type mockApprover struct {
	answer   bool
	err      error
	requests []string
}

func (m *mockApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	m.requests = append(m.requests, target)
	return m.answer, m.err
}

func newTestService(t *testing.T, approver frameseq.Approver) (*SequenceService, *filesystem.MemoryFileSystem) {
	t.Helper()
	fsys := filesystem.NewMemoryFileSystem("/project")
	svc := NewSequenceService(fsys, checksum.New(), approver, logging.NewNullLogger())
	fast := retry.NewExecutor(retry.NewFileOpClassifier(),
		&retry.FileBackoff{Initial: time.Millisecond, Max: time.Millisecond, Tries: 2})
	return svc.WithExecutor(fast), fsys
}

// resolve groups the files of dir on fsys and returns the single sequence.
func resolve(t *testing.T, fsys *filesystem.MemoryFileSystem, source string) *frameseq.Sequence {
	t.Helper()
	sc, err := scanner.NewScannerWithFS(frameseq.DefaultConfig(), fsys)
	require.NoError(t, err)
	seq, err := sc.Resolve(source)
	require.NoError(t, err)
	return seq
}

func TestNewSequenceService_NilDependencies(t *testing.T) {
	fsys := filesystem.NewMemoryFileSystem("/")
	calc := checksum.New()
	approver := &mockApprover{}
	logger := logging.NewNullLogger()

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil fsys", func() { NewSequenceService(nil, calc, approver, logger) }},
		{"nil calculator", func() { NewSequenceService(fsys, nil, approver, logger) }},
		{"nil approver", func() { NewSequenceService(fsys, calc, nil, logger) }},
		{"nil logger", func() { NewSequenceService(fsys, calc, approver, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("expected panic for %s", tt.name)
				}
			}()
			tt.fn()
		})
	}
}

func TestWithExecutor_DoesNotModifyOriginal(t *testing.T) {
	svc, _ := newTestService(t, &mockApprover{})
	before := svc.executor

	clone := svc.WithExecutor(retry.NewExecutor(retry.NewFileOpClassifier(), retry.DefaultFileBackoff()))

	if svc.executor != before {
		t.Error("WithExecutor modified the receiver")
	}
	if clone.executor == before {
		t.Error("clone kept the old executor")
	}
}
