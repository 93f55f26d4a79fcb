package frameseq

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Lister expands an aggregation source into paths: a directory lists its
// immediate entries and anything else is treated as a glob.
type Lister interface {
	List(source string) ([]string, error)
}

// OSLister lists sources on the local filesystem.
type OSLister struct{}

var _ Lister = OSLister{}

// List returns directory entries joined with the directory, or glob matches.
func (OSLister) List(source string) ([]string, error) {
	info, err := os.Stat(source)
	if err == nil && info.IsDir() {
		entries, err := os.ReadDir(source)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", source, err)
		}
		paths := make([]string, len(entries))
		for i, e := range entries {
			paths[i] = filepath.Join(source, e.Name())
		}
		return paths, nil
	}
	matches, err := filepath.Glob(source)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", source, err)
	}
	return matches, nil
}

// Aggregator groups flat file lists into sequences.
type Aggregator struct {
	matcher *Matcher
	lister  Lister
}

// NewAggregator creates an aggregator that lists sources on the local disk.
func NewAggregator(cfg Config) (*Aggregator, error) {
	return NewAggregatorWithLister(cfg, OSLister{})
}

// NewAggregatorWithLister creates an aggregator with a custom source lister.
func NewAggregatorWithLister(cfg Config, lister Lister) (*Aggregator, error) {
	m, err := NewMatcher(cfg)
	if err != nil {
		return nil, err
	}
	if lister == nil {
		lister = OSLister{}
	}
	return &Aggregator{matcher: m, lister: lister}, nil
}

// Matcher returns the sibling matcher used for grouping.
func (a *Aggregator) Matcher() *Matcher { return a.matcher }

// Group partitions names into sequences. Input order does not matter: names
// are sorted first, then each one joins the most recently created sequence
// that includes it, or starts a new one.
func (a *Aggregator) Group(names []string) []*Sequence {
	items := make([]*Item, len(names))
	for i, n := range names {
		items[i] = NewItem(n)
	}
	return a.GroupItems(items)
}

// GroupItems is Group for prepared items, which may carry payloads.
func (a *Aggregator) GroupItems(items []*Item) []*Sequence {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(x, y *Item) int {
		return strings.Compare(x.path, y.path)
	})

	var seqs []*Sequence
	for _, it := range sorted {
		placed := false
		for i := len(seqs) - 1; i >= 0; i-- {
			if seqs[i].Includes(it) {
				seqs[i].appendUnchecked(it)
				placed = true
				break
			}
		}
		if !placed {
			seqs = append(seqs, NewSequence(a.matcher, it))
		}
	}
	return seqs
}

// GroupSource lists a directory or expands a glob, then groups the result.
func (a *Aggregator) GroupSource(source string) ([]*Sequence, error) {
	paths, err := a.lister.List(source)
	if err != nil {
		return nil, err
	}
	return a.Group(paths), nil
}

// Stream yields sequences one at a time. Names are sorted by extension and
// then naturally, and each name is only compared with the current sequence,
// so memory stays flat for large listings. Output order therefore differs
// from Group.
func (a *Aggregator) Stream(names []string) iter.Seq[*Sequence] {
	sorted := slices.Clone(names)
	slices.SortStableFunc(sorted, ExtensionCompare)

	return func(yield func(*Sequence) bool) {
		var current *Sequence
		for _, n := range sorted {
			it := NewItem(n)
			if current != nil && current.Includes(it) {
				current.appendUnchecked(it)
				continue
			}
			if current != nil && !yield(current) {
				return
			}
			current = NewSequence(a.matcher, it)
		}
		if current != nil {
			yield(current)
		}
	}
}

// GetSequences groups names with the default configuration.
func GetSequences(names []string) []*Sequence {
	a, err := NewAggregator(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return a.Group(names)
}
