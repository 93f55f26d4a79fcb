package frameseq

import (
	"strconv"
	"strings"
)

// Range is an inclusive run of frame numbers.
type Range struct {
	Start int
	End   int
}

// Len is the number of frames the range covers.
func (r Range) Len() int { return r.End - r.Start + 1 }

// String renders "N" for single frame ranges and "N-M" otherwise.
func (r Range) String() string {
	if r.Start == r.End {
		return strconv.Itoa(r.Start)
	}
	return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End)
}

// ContiguousRanges folds sorted frames into maximal contiguous runs.
// Repeated frames extend the current run.
func ContiguousRanges(frames []int) []Range {
	if len(frames) == 0 {
		return nil
	}
	ranges := []Range{{Start: frames[0], End: frames[0]}}
	for _, f := range frames[1:] {
		last := &ranges[len(ranges)-1]
		if f <= last.End+1 {
			if f > last.End {
				last.End = f
			}
			continue
		}
		ranges = append(ranges, Range{Start: f, End: f})
	}
	return ranges
}

// ImpliedRange renders the bounding "start-end" span, ignoring gaps.
func ImpliedRange(frames []int) string {
	if len(frames) == 0 {
		return ""
	}
	return Range{Start: frames[0], End: frames[len(frames)-1]}.String()
}

// ExplicitRange renders the present runs, for example "[1-3, 6]".
func ExplicitRange(frames []int, sep string) string {
	return JoinRanges(ContiguousRanges(frames), sep)
}

// JoinRanges brackets ranges joined by sep. No ranges yields "".
func JoinRanges(ranges []Range, sep string) string {
	if len(ranges) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, r := range ranges {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(r.String())
	}
	b.WriteByte(']')
	return b.String()
}

// MissingSet is the complement of a frame set within its bounding span.
//
// Ranges is always populated. Frames is only populated when Expanded is
// true, which happens when the span fits within the expand limit.
type MissingSet struct {
	Frames   []int
	Ranges   []Range
	Expanded bool
}

// Empty reports whether no frame is missing.
func (m MissingSet) Empty() bool { return len(m.Ranges) == 0 }

// Count is the number of missing frames, computed from the ranges so it
// also works for unexpanded sets.
func (m MissingSet) Count() int {
	n := 0
	for _, r := range m.Ranges {
		n += r.Len()
	}
	return n
}

// ComputeMissing finds the gaps in sorted frames. Missing frames are only
// materialized when max-min+1 <= limit; wider spans keep memory bounded by
// the number of present frames.
func ComputeMissing(frames []int, limit int) MissingSet {
	if len(frames) < 2 {
		return MissingSet{Expanded: true}
	}

	var gaps []Range
	for i := 1; i < len(frames); i++ {
		if frames[i] > frames[i-1]+1 {
			gaps = append(gaps, Range{Start: frames[i-1] + 1, End: frames[i] - 1})
		}
	}

	span := frames[len(frames)-1] - frames[0] + 1
	if span > limit {
		return MissingSet{Ranges: gaps}
	}

	ms := MissingSet{Ranges: gaps, Expanded: true}
	for _, g := range gaps {
		for f := g.Start; f <= g.End; f++ {
			ms.Frames = append(ms.Frames, f)
		}
	}
	return ms
}

// expandList renders missing frames one by one, or as ranges when the set
// was too wide to expand.
func (m MissingSet) expandList(sep string) string {
	if m.Empty() {
		return "[]"
	}
	if !m.Expanded {
		return JoinRanges(m.Ranges, sep)
	}
	parts := make([]string, len(m.Frames))
	for i, f := range m.Frames {
		parts[i] = strconv.Itoa(f)
	}
	return "[" + strings.Join(parts, sep) + "]"
}
