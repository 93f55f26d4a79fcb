package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/vvka-141/frameseq/internal/retry"
	"github.com/vvka-141/frameseq/pkg/frameseq"
)

// TransferConfig describes a copy or move of one sequence.
type TransferConfig struct {
	// Dest is the destination directory. It is created when missing.
	Dest string

	// Rename replaces the head of the target names.
	Rename string

	// Renumber moves the first frame to this number. Gaps are kept.
	Renumber *int

	// Pad sets the target frame width; zero keeps the source padding.
	Pad int

	// Move removes the sources once their targets are written.
	Move bool

	// DryRun plans the transfer without touching the filesystem.
	DryRun bool
}

// Validate checks the configuration and returns every problem at once.
func (c TransferConfig) Validate() error {
	var errs []error
	if c.Dest == "" {
		errs = append(errs, fmt.Errorf("destination is required: %w", frameseq.ErrInvalidConfig))
	}
	if c.Pad < 0 {
		errs = append(errs, fmt.Errorf("pad cannot be negative: %w", frameseq.ErrInvalidConfig))
	}
	if c.Renumber != nil && *c.Renumber < 0 {
		errs = append(errs, fmt.Errorf("renumber start cannot be negative: %w", frameseq.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// TransferOp is one planned or performed file transfer.
type TransferOp struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Skipped bool   `json:"skipped,omitempty"`
}

// TransferResult summarises a transfer.
type TransferResult struct {
	Ops         []TransferOp `json:"ops"`
	Transferred int          `json:"transferred"`
	Skipped     int          `json:"skipped"`
}

// Plan computes the target path of every member of seq without touching
// the filesystem. Ops are ordered so that no op writes over a member that
// is still waiting to be transferred, which matters when a sequence is
// renumbered inside its own directory.
func (s *SequenceService) Plan(seq *frameseq.Sequence, cfg TransferConfig) ([]TransferOp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	head := seq.Head()
	if cfg.Rename != "" {
		head = cfg.Rename
	}
	pad := seq.Pad()
	if cfg.Pad > 0 {
		pad = cfg.Pad
	}
	offset := 0
	if cfg.Renumber != nil {
		offset = *cfg.Renumber - seq.Start()
	}

	ops := make([]TransferOp, 0, seq.Len())
	for _, it := range seq.Items() {
		name := it.Name()
		if frame, ok := it.Frame(); ok {
			name = head + padNumber(frame+offset, pad) + seq.Tail()
		}
		ops = append(ops, TransferOp{
			Source: it.Path(),
			Target: filepath.Join(cfg.Dest, name),
		})
	}
	return orderOps(ops), nil
}

// orderOps puts every op after the op that moves its target out of the
// way. Shifting frames up by two, for instance, runs the highest frame
// first.
func orderOps(ops []TransferOp) []TransferOp {
	bySource := make(map[string]int, len(ops))
	for i, op := range ops {
		bySource[pathKey(op.Source)] = i
	}

	ordered := make([]TransferOp, 0, len(ops))
	state := make([]byte, len(ops))
	const (
		pending byte = iota
		visiting
		done
	)
	for i := range ops {
		// follow the chain of targets iteratively, then emit it backwards
		var chain []int
		for j := i; state[j] == pending; {
			state[j] = visiting
			chain = append(chain, j)
			next, ok := bySource[pathKey(ops[j].Target)]
			if !ok || next == j {
				break
			}
			j = next
		}
		for k := len(chain) - 1; k >= 0; k-- {
			state[chain[k]] = done
			ordered = append(ordered, ops[chain[k]])
		}
	}
	return ordered
}

func pathKey(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func padNumber(n, pad int) string {
	return fmt.Sprintf("%0*d", pad, n)
}

// Transfer copies or moves seq into cfg.Dest. Existing targets are only
// replaced when the approver agrees; a denied target is skipped. An approver
// error, such as an abort, stops the transfer and is returned together with
// the work done so far.
func (s *SequenceService) Transfer(ctx context.Context, seq *frameseq.Sequence, cfg TransferConfig) (*TransferResult, error) {
	ops, err := s.Plan(seq, cfg)
	if err != nil {
		return nil, err
	}

	result := &TransferResult{}
	verb := "copy"
	if cfg.Move {
		verb = "move"
	}

	if cfg.DryRun {
		for _, op := range ops {
			s.logger.Verbose("would %s %s -> %s", verb, op.Source, op.Target)
		}
		result.Ops = ops
		return result, nil
	}

	if info, err := s.fsys.Stat(cfg.Dest); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("destination %s is not a directory", cfg.Dest)
	}
	if err := s.fsys.MkdirAll(cfg.Dest); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", cfg.Dest, err)
	}

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if pathKey(op.Source) == pathKey(op.Target) {
			s.logger.Info("skipping %s: source and target are the same file", op.Source)
			op.Skipped = true
			result.Ops = append(result.Ops, op)
			result.Skipped++
			continue
		}

		if _, err := s.fsys.Stat(op.Target); err == nil {
			approved, err := s.approver.RequestApproval(ctx, op.Target)
			if err != nil {
				return result, err
			}
			if !approved {
				s.logger.Info("file exists: %s (use --force to overwrite)", op.Target)
				op.Skipped = true
				result.Ops = append(result.Ops, op)
				result.Skipped++
				continue
			}
		}

		s.logger.Verbose("%s %s -> %s", verb, op.Source, op.Target)
		fileOp := retry.FileOp{Kind: verb, Source: op.Source, Target: op.Target}
		err := s.executor.Run(ctx, fileOp, func() error {
			if cfg.Move {
				return s.moveFile(op.Source, op.Target)
			}
			return s.copyFile(op.Source, op.Target)
		})
		if err != nil {
			return result, fmt.Errorf("failed to %s %s: %w", verb, op.Source, err)
		}
		result.Ops = append(result.Ops, op)
		result.Transferred++
	}
	return result, nil
}

// copyFile writes a temporary sibling of target and renames it into place,
// so an interrupted copy never leaves a truncated frame under the real name.
func (s *SequenceService) copyFile(source, target string) (err error) {
	tmp := filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+"."+uuid.NewString()+".tmp")

	r, err := s.fsys.OpenFile(source)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := s.fsys.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = s.fsys.Remove(tmp)
		}
	}()

	if _, err = io.Copy(w, r); err != nil {
		w.Close()
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	return s.fsys.Rename(tmp, target)
}

// moveFile renames source, falling back to copy and remove across devices.
func (s *SequenceService) moveFile(source, target string) error {
	err := s.fsys.Rename(source, target)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := s.copyFile(source, target); err != nil {
		return err
	}
	if err := s.fsys.Remove(source); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
