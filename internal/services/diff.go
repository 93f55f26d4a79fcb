package services

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

// Pair holds the A and B side of one compared attribute. It encodes as a
// two element JSON array.
type Pair[T comparable] struct {
	A T
	B T
}

// Differs reports whether the two sides disagree.
func (p Pair[T]) Differs() bool { return p.A != p.B }

// MarshalJSON writes [A, B].
func (p Pair[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]T{p.A, p.B})
}

// MissingDiff lists frames missing from one sequence but not the other.
// Lists stop growing at the missing expand limit and set Truncated.
type MissingDiff struct {
	AOnly     []int `json:"a_only"`
	BOnly     []int `json:"b_only"`
	Truncated bool  `json:"truncated,omitempty"`
}

// ContentDiff is the checksum comparison of frames present in both sequences.
type ContentDiff struct {
	Compared  int   `json:"compared"`
	Differing []int `json:"differing"`
}

// SequenceDiff is the attribute by attribute comparison of two sequences.
type SequenceDiff struct {
	A         string        `json:"a"`
	B         string        `json:"b"`
	Head      Pair[string]  `json:"head"`
	Tail      Pair[string]  `json:"tail"`
	Pad       Pair[int]     `json:"pad"`
	Start     Pair[int]     `json:"start"`
	End       Pair[int]     `json:"end"`
	Length    Pair[int]     `json:"length"`
	Missing   MissingDiff   `json:"missing"`
	DiskBytes *Pair[int64]  `json:"disk_bytes,omitempty"`
	DiskHuman *Pair[string] `json:"disk_human,omitempty"`
	Content   *ContentDiff  `json:"content,omitempty"`
}

// Equal reports whether no compared attribute differs.
func (d *SequenceDiff) Equal() bool {
	if d.Head.Differs() || d.Tail.Differs() || d.Pad.Differs() ||
		d.Start.Differs() || d.End.Differs() || d.Length.Differs() {
		return false
	}
	if len(d.Missing.AOnly) > 0 || len(d.Missing.BOnly) > 0 {
		return false
	}
	if d.DiskBytes != nil && d.DiskBytes.Differs() {
		return false
	}
	if d.Content != nil && len(d.Content.Differing) > 0 {
		return false
	}
	return true
}

// DiffOptions selects the optional, more expensive comparisons.
type DiffOptions struct {
	// Size compares total disk usage.
	Size bool

	// Checksum hashes every frame present in both sequences.
	Checksum bool
}

// Diff compares a with b.
func (s *SequenceService) Diff(ctx context.Context, a, b *frameseq.Sequence, opts DiffOptions) (*SequenceDiff, error) {
	limit := a.Config().MissingExpandLimit
	aOnly, aTrunc := expandRanges(subtractRanges(a.Missing().Ranges, b.Missing().Ranges), limit)
	bOnly, bTrunc := expandRanges(subtractRanges(b.Missing().Ranges, a.Missing().Ranges), limit)

	d := &SequenceDiff{
		A:      a.String(),
		B:      b.String(),
		Head:   Pair[string]{a.Head(), b.Head()},
		Tail:   Pair[string]{a.Tail(), b.Tail()},
		Pad:    Pair[int]{a.Pad(), b.Pad()},
		Start:  Pair[int]{a.Start(), b.Start()},
		End:    Pair[int]{a.End(), b.End()},
		Length: Pair[int]{a.Len(), b.Len()},
		Missing: MissingDiff{
			AOnly:     aOnly,
			BOnly:     bOnly,
			Truncated: aTrunc || bTrunc,
		},
	}

	if opts.Size {
		sizeA, err := a.Size()
		if err != nil {
			return nil, fmt.Errorf("disk usage of %s: %w", d.A, err)
		}
		sizeB, err := b.Size()
		if err != nil {
			return nil, fmt.Errorf("disk usage of %s: %w", d.B, err)
		}
		d.DiskBytes = &Pair[int64]{sizeA, sizeB}
		d.DiskHuman = &Pair[string]{
			strings.TrimSpace(frameseq.HumanBytes(sizeA)),
			strings.TrimSpace(frameseq.HumanBytes(sizeB)),
		}
	}

	if opts.Checksum {
		content, err := s.compareContent(ctx, a, b)
		if err != nil {
			return nil, err
		}
		d.Content = content
	}

	return d, nil
}

// compareContent hashes each frame number present in both sequences.
// Unresolved members carry no frame number and are not compared.
func (s *SequenceService) compareContent(ctx context.Context, a, b *frameseq.Sequence) (*ContentDiff, error) {
	pathsB := framePaths(b)
	result := &ContentDiff{Differing: []int{}}

	pathsA := framePaths(a)
	for _, frame := range slices.Sorted(maps.Keys(pathsA)) {
		pathA := pathsA[frame]
		pathB, ok := pathsB[frame]
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sumA, err := s.hashFile(pathA)
		if err != nil {
			return nil, err
		}
		sumB, err := s.hashFile(pathB)
		if err != nil {
			return nil, err
		}

		result.Compared++
		if sumA != sumB {
			result.Differing = append(result.Differing, frame)
			s.logger.Verbose("frame %d differs: %s %s", frame, pathA, pathB)
		}
	}
	return result, nil
}

func (s *SequenceService) hashFile(path string) (string, error) {
	r, err := s.fsys.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer r.Close()

	sum, err := s.calculator.CalculateReader(r)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return sum, nil
}

func framePaths(seq *frameseq.Sequence) map[int]string {
	paths := make(map[int]string, seq.Len())
	for _, it := range seq.Items() {
		if frame, ok := it.Frame(); ok {
			paths[frame] = it.Path()
		}
	}
	return paths
}

// subtractRanges returns the frames of a that no range of b covers. Both
// inputs are sorted and non-overlapping, as gap ranges always are.
func subtractRanges(a, b []frameseq.Range) []frameseq.Range {
	var out []frameseq.Range
	j := 0
	for _, r := range a {
		start := r.Start
		for j < len(b) && b[j].End < start {
			j++
		}
		for k := j; k < len(b) && b[k].Start <= r.End; k++ {
			if b[k].Start > start {
				out = append(out, frameseq.Range{Start: start, End: b[k].Start - 1})
			}
			start = max(start, b[k].End+1)
		}
		if start <= r.End {
			out = append(out, frameseq.Range{Start: start, End: r.End})
		}
	}
	return out
}

// expandRanges lists at most limit frames. A non-positive limit lists none
// and reports truncation whenever there is anything to list.
func expandRanges(ranges []frameseq.Range, limit int) ([]int, bool) {
	frames := []int{}
	for _, r := range ranges {
		for f := r.Start; f <= r.End; f++ {
			if len(frames) >= limit {
				return frames, true
			}
			frames = append(frames, f)
		}
	}
	return frames, false
}
