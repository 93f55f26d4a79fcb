package frameseq

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Sequence is an ordered group of items believed to share one naming
// family. Members keep insertion order; frame order is derived lazily.
//
// A Sequence is not safe for concurrent mutation.
type Sequence struct {
	matcher *Matcher
	items   []*Item

	dirty   bool
	frames  []int
	missing MissingSet
}

// NewSequence starts a sequence from a single seed item.
func NewSequence(m *Matcher, seed *Item) *Sequence {
	return &Sequence{matcher: m, items: []*Item{seed}, dirty: true}
}

// Config returns the configuration shared with the sequence's matcher.
func (s *Sequence) Config() Config { return s.matcher.cfg }

// Items returns the members in insertion order.
func (s *Sequence) Items() []*Item {
	return slices.Clone(s.items)
}

// Names returns member base names in insertion order.
func (s *Sequence) Names() []string {
	out := make([]string, len(s.items))
	for i, it := range s.items {
		out[i] = it.name
	}
	return out
}

// Len is the number of members.
func (s *Sequence) Len() int { return len(s.items) }

// First and Last return the boundary members.
func (s *Sequence) First() *Item { return s.items[0] }
func (s *Sequence) Last() *Item  { return s.items[len(s.items)-1] }

// Includes reports whether it could join the sequence: it must be a sibling
// of the last member, or failing that of the first member, or be the sole
// member itself. A positive answer resolves it.
func (s *Sequence) Includes(it *Item) bool {
	if len(s.items) == 0 {
		return true
	}
	last := s.Last()
	if !last.SamePath(it) {
		ok := s.matcher.IsSibling(last, it)
		if ok {
			s.dirty = true
		}
		if ok || len(s.items) == 1 {
			return ok
		}
	}
	first := s.First()
	if first != last && !first.SamePath(it) {
		ok := s.matcher.IsSibling(first, it)
		if ok {
			s.dirty = true
		}
		return ok
	}
	return len(s.items) == 1 && first.SamePath(it)
}

// Contains reports whether it belongs to the sequence and its frame lies
// within start and end.
func (s *Sequence) Contains(it *Item) bool {
	if len(s.items) == 0 || !s.Includes(it) {
		return false
	}
	frame, ok := it.Frame()
	if !ok {
		return slices.ContainsFunc(s.items, it.SamePath)
	}
	return frame >= s.Start() && frame <= s.End()
}

// Append adds it after validating membership. On failure the sequence is
// left unchanged and a *MembershipError is returned.
func (s *Sequence) Append(it *Item) error {
	if !s.Includes(it) {
		return &MembershipError{Item: it.path}
	}
	s.appendUnchecked(it)
	return nil
}

// Insert places it at index i after validating membership.
func (s *Sequence) Insert(i int, it *Item) error {
	if i < 0 || i > len(s.items) {
		return fmt.Errorf("insert index %d out of range [0,%d]", i, len(s.items))
	}
	if !s.Includes(it) {
		return &MembershipError{Item: it.path}
	}
	s.items = slices.Insert(s.items, i, it)
	s.dirty = true
	return nil
}

// Extend appends items in order. If any item is rejected, the members added
// by this call are removed again and the error is returned.
func (s *Sequence) Extend(items ...*Item) error {
	n := len(s.items)
	for _, it := range items {
		if err := s.Append(it); err != nil {
			s.items = s.items[:n]
			s.dirty = true
			return err
		}
	}
	return nil
}

// Remove drops the member with the same path as it.
func (s *Sequence) Remove(it *Item) bool {
	i := slices.IndexFunc(s.items, it.SamePath)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.dirty = true
	return true
}

func (s *Sequence) appendUnchecked(it *Item) {
	s.items = append(s.items, it)
	s.dirty = true
}

func (s *Sequence) refresh() {
	if !s.dirty {
		return
	}
	frames := make([]int, 0, len(s.items))
	for _, it := range s.items {
		if f, ok := it.Frame(); ok {
			frames = append(frames, f)
		}
	}
	slices.Sort(frames)
	s.frames = frames
	s.missing = ComputeMissing(frames, s.matcher.cfg.MissingExpandLimit)
	s.dirty = false
}

// Frames returns the sorted resolved frame numbers.
func (s *Sequence) Frames() []int {
	s.refresh()
	return slices.Clone(s.frames)
}

// Start is the lowest frame, or 0 when no frame is resolved.
func (s *Sequence) Start() int {
	s.refresh()
	if len(s.frames) == 0 {
		return 0
	}
	return s.frames[0]
}

// End is the highest frame, or 0 when no frame is resolved.
func (s *Sequence) End() int {
	s.refresh()
	if len(s.frames) == 0 {
		return 0
	}
	return s.frames[len(s.frames)-1]
}

// Missing returns the gaps between start and end.
func (s *Sequence) Missing() MissingSet {
	s.refresh()
	return s.missing
}

func (s *Sequence) Head() string { return s.items[0].head }
func (s *Sequence) Tail() string { return s.items[0].tail }

// Pad is the smallest member pad.
func (s *Sequence) Pad() int {
	pad := s.items[0].pad
	for _, it := range s.items[1:] {
		pad = min(pad, it.pad)
	}
	return pad
}

// Padding renders the printf style frame specimen, "%04d" or "%d". A
// sequence without resolved frames has no padding.
func (s *Sequence) Padding() string {
	if !s.items[0].resolved {
		return ""
	}
	pad := s.Pad()
	if pad < 2 {
		return "%d"
	}
	return fmt.Sprintf("%%0%dd", pad)
}

// Dir is the directory of the first member, "" for bare names.
func (s *Sequence) Dir() string { return s.items[0].dir }

// Directory is Dir with a trailing separator, as used by the %D directive.
func (s *Sequence) Directory() string {
	dir := s.Dir()
	if dir == "" {
		return ""
	}
	if os.IsPathSeparator(dir[len(dir)-1]) {
		return dir
	}
	return dir + string(filepath.Separator)
}

// Path joins the first member's directory with the default rendering.
func (s *Sequence) Path() string {
	return filepath.Join(s.Dir(), s.String())
}

// String renders the sequence with the configured default format.
func (s *Sequence) String() string {
	out, err := s.Format(s.matcher.cfg.DefaultFormat)
	if err != nil {
		out, _ = s.Format(DefaultFormat)
	}
	return out
}

// FramePath returns the path a member with the given frame would have.
// Pad overrides the sequence pad when positive.
func (s *Sequence) FramePath(frame, pad int) string {
	if pad <= 0 {
		pad = s.Pad()
	}
	name := s.Head() + padFrame(frame, pad) + s.Tail()
	return filepath.Join(s.Dir(), name)
}

// Size sums the sizes of all members.
func (s *Sequence) Size() (int64, error) {
	var total int64
	for _, it := range s.items {
		info, err := s.matcher.cfg.Stat(it.path)
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", it.path, err)
		}
		total += info.Size()
	}
	return total, nil
}

// HumanSize renders Size with binary units, for example "   12.5M".
func (s *Sequence) HumanSize() (string, error) {
	size, err := s.Size()
	if err != nil {
		return "", err
	}
	return HumanBytes(size), nil
}

// HumanBytes formats a byte count right aligned in seven columns with one
// decimal and a B, K, M, G or T suffix.
func HumanBytes(size int64) string {
	units := []string{"B", "K", "M", "G", "T"}
	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%7.1f%s", value, units[unit])
}

func padFrame(frame, pad int) string {
	if pad > 1 {
		return fmt.Sprintf("%0*d", pad, frame)
	}
	return fmt.Sprintf("%d", frame)
}
