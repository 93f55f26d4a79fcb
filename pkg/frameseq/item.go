package frameseq

import (
	"path/filepath"
	"strings"
)

// DigitRun is a maximal run of ASCII decimal digits inside a file name.
// Start and End are byte offsets into the name, End exclusive.
type DigitRun struct {
	Text  string
	Start int
	End   int
}

// Pather is implemented by caller values that know their own path. Such
// values are carried through aggregation unchanged as the item payload.
type Pather interface {
	Path() string
}

// Item is one file, real or synthetic, taking part in sequence detection.
//
// The frame, head, tail and pad fields start unresolved and are written by
// the Matcher the first time the item is found to be a sibling. Later
// matches may only confirm that resolution, never move it to another digit
// run.
type Item struct {
	path    string
	name    string
	dir     string
	runs    []DigitRun
	parts   []string
	payload any

	resolved bool
	runIndex int
	frame    int
	head     string
	tail     string
	pad      int
}

// NewItem tokenizes the base name of path.
func NewItem(path string) *Item {
	dir, name := filepath.Split(path)
	if dir != "" {
		dir = filepath.Clean(dir)
	}
	runs, parts := tokenize(name)
	return &Item{
		path:  path,
		name:  name,
		dir:   dir,
		runs:  runs,
		parts: parts,
		head:  name,
	}
}

// NewItemWithPayload builds an item that carries an opaque caller value.
func NewItemWithPayload(path string, payload any) *Item {
	it := NewItem(path)
	it.payload = payload
	return it
}

// NewItemFromPather builds an item from p.Path() and keeps p as payload.
func NewItemFromPather(p Pather) *Item {
	return NewItemWithPayload(p.Path(), p)
}

// tokenize splits name into digit runs and the text between them.
// A name without digits yields no runs and a single part.
func tokenize(name string) ([]DigitRun, []string) {
	var runs []DigitRun
	parts := make([]string, 0, 4)
	last := 0
	for i := 0; i < len(name); {
		if !isDigit(name[i]) {
			i++
			continue
		}
		j := i
		for j < len(name) && isDigit(name[j]) {
			j++
		}
		runs = append(runs, DigitRun{Text: name[i:j], Start: i, End: j})
		parts = append(parts, name[last:i])
		last = j
		i = j
	}
	parts = append(parts, name[last:])
	return runs, parts
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (it *Item) Path() string { return it.path }
func (it *Item) Name() string { return it.name }

// Dir is the directory part of the path, or "" for a bare name.
func (it *Item) Dir() string { return it.dir }

func (it *Item) Payload() any { return it.payload }

// DigitRuns returns a copy of the digit runs in name order.
func (it *Item) DigitRuns() []DigitRun {
	out := make([]DigitRun, len(it.runs))
	copy(out, it.runs)
	return out
}

// Digits returns just the text of each digit run.
func (it *Item) Digits() []string {
	out := make([]string, len(it.runs))
	for i, r := range it.runs {
		out[i] = r.Text
	}
	return out
}

// Parts returns the non-digit segments of the name.
func (it *Item) Parts() []string {
	out := make([]string, len(it.parts))
	copy(out, it.parts)
	return out
}

// Frame returns the resolved frame number and whether one is resolved.
func (it *Item) Frame() (int, bool) { return it.frame, it.resolved }

func (it *Item) Resolved() bool { return it.resolved }

// Head is the name before the frame digits. Unresolved items report the
// whole name.
func (it *Item) Head() string { return it.head }

func (it *Item) Tail() string { return it.tail }

// Pad is the resolved frame width, 0 when frames are not zero padded.
func (it *Item) Pad() int { return it.pad }

// SamePath reports whether both items point at the same path.
func (it *Item) SamePath(other *Item) bool {
	return other != nil && it.path == other.path
}

// Compare orders items by resolved frame. Unresolved items sort first and
// ties fall back to the name.
func (it *Item) Compare(other *Item) int {
	switch {
	case it.resolved && !other.resolved:
		return 1
	case !it.resolved && other.resolved:
		return -1
	case it.resolved && it.frame != other.frame:
		if it.frame < other.frame {
			return -1
		}
		return 1
	}
	return strings.Compare(it.name, other.name)
}

func (it *Item) String() string { return it.path }

func (it *Item) resolve(runIndex, frame, pad int) {
	r := it.runs[runIndex]
	it.resolved = true
	it.runIndex = runIndex
	it.frame = frame
	it.head = it.name[:r.Start]
	it.tail = it.name[r.End:]
	it.pad = pad
}
