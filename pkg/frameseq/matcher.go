package frameseq

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
)

// Difference describes one digit run that differs between two names.
type Difference struct {
	// Index is the ordinal of the digit run inside both names.
	Index int
	Start int
	End   int
	// Frames holds the two digit strings, first item first.
	Frames [2]string
}

// Matcher decides whether two items are siblings, that is whether they
// differ in exactly one digit run with identical surrounding text.
type Matcher struct {
	cfg     Config
	frameRe *regexp.Regexp
}

// NewMatcher builds a matcher for cfg. Zero fields take their defaults.
func NewMatcher(cfg Config) (*Matcher, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	re, err := compileFramePattern(cfg.FramePattern)
	if err != nil {
		return nil, fmt.Errorf("frame pattern %q: %w", cfg.FramePattern, ErrInvalidConfig)
	}
	return &Matcher{cfg: cfg, frameRe: re}, nil
}

// Config returns the configuration the matcher was built with.
func (m *Matcher) Config() Config { return m.cfg }

// Diff lists every digit run sitting at the same offset in both names but
// holding different text. Names with different run counts have no diff.
// Under strict padding, runs whose lengths differ are skipped.
func (m *Matcher) Diff(a, b *Item) []Difference {
	if len(a.runs) != len(b.runs) {
		return nil
	}

	var allowedA, allowedB map[[2]int]bool
	if m.frameRe != nil {
		allowedA = m.frameSpans(a.name)
		allowedB = m.frameSpans(b.name)
	}

	var d []Difference
	for i := range a.runs {
		ra, rb := a.runs[i], b.runs[i]
		if ra.Start != rb.Start || ra.Text == rb.Text {
			continue
		}
		if m.cfg.StrictPad && len(ra.Text) != len(rb.Text) {
			continue
		}
		if m.frameRe != nil {
			if !allowedA[[2]int{ra.Start, ra.End}] || !allowedB[[2]int{rb.Start, rb.End}] {
				continue
			}
		}
		d = append(d, Difference{
			Index:  i,
			Start:  ra.Start,
			End:    ra.End,
			Frames: [2]string{ra.Text, rb.Text},
		})
	}
	return d
}

// frameSpans returns the spans the custom frame pattern marks as frame
// digits: the first capture group when present, else the whole match.
func (m *Matcher) frameSpans(name string) map[[2]int]bool {
	spans := make(map[[2]int]bool)
	for _, loc := range m.frameRe.FindAllStringSubmatchIndex(name, -1) {
		start, end := loc[0], loc[1]
		if len(loc) >= 4 && loc[2] >= 0 {
			start, end = loc[2], loc[3]
		}
		spans[[2]int{start, end}] = true
	}
	return spans
}

// IsSibling reports whether a and b belong to the same sequence. On success
// both items are resolved on the differing digit run and share one pad.
//
// An item already resolved on another digit run is never a sibling, so a
// second match cannot contradict the first.
func (m *Matcher) IsSibling(a, b *Item) bool {
	d := m.Diff(a, b)
	if len(d) != 1 || !slices.Equal(a.parts, b.parts) {
		return false
	}
	diff := d[0]
	if (a.resolved && a.runIndex != diff.Index) || (b.resolved && b.runIndex != diff.Index) {
		return false
	}

	frameA, errA := strconv.Atoi(diff.Frames[0])
	frameB, errB := strconv.Atoi(diff.Frames[1])
	if errA != nil || errB != nil {
		return false
	}

	// a adopts b's pad when b already has one, otherwise its own digits
	// decide. b always ends up with a's pad.
	pad := b.pad
	if pad == 0 {
		pad = m.padSize(diff.Frames[0])
	}

	a.resolve(diff.Index, frameA, pad)
	b.resolve(diff.Index, frameB, pad)
	return true
}

// padSize is the width implied by one frame's digits. Without strict
// padding only a leading zero makes the width significant.
func (m *Matcher) padSize(digits string) int {
	if m.cfg.StrictPad {
		return len(digits)
	}
	if len(digits) > 1 && digits[0] == '0' {
		return len(digits)
	}
	return 0
}
