package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/vvka-141/frameseq/internal/files/filesystem"
	"github.com/vvka-141/frameseq/pkg/frameseq"
)

// Scanner discovers files on a filesystem and groups them into sequences.
// Scanner is safe for concurrent use by multiple goroutines as long as the
// provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
	agg        *frameseq.Aggregator
}

// NewScanner creates a new scanner on the OS filesystem.
func NewScanner(cfg frameseq.Config) (*Scanner, error) {
	return NewScannerWithFS(cfg, filesystem.NewOSFileSystem())
}

// NewScannerWithFS creates a new scanner with a custom filesystem provider.
// Disk usage is always read from fsProvider, replacing any Stat in cfg.
// Panics if fsProvider is nil.
func NewScannerWithFS(cfg frameseq.Config, fsProvider filesystem.FileSystemProvider) (*Scanner, error) {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	cfg.Stat = fsProvider.Stat

	s := &Scanner{fsProvider: fsProvider}
	agg, err := frameseq.NewAggregatorWithLister(cfg, s)
	if err != nil {
		return nil, err
	}
	s.agg = agg
	return s, nil
}

// Aggregator returns the aggregator grouping scanned files.
func (s *Scanner) Aggregator() *frameseq.Aggregator { return s.agg }

// Config returns the detection configuration in effect.
func (s *Scanner) Config() frameseq.Config { return s.agg.Matcher().Config() }

// List expands source into paths. A directory yields its immediate entries,
// anything else is treated as a glob. A glob matching nothing is not an error.
func (s *Scanner) List(source string) ([]string, error) {
	info, err := s.fsProvider.Stat(source)
	if err == nil && info.IsDir() {
		entries, err := s.fsProvider.ReadDir(source)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", source, err)
		}
		paths := make([]string, 0, len(entries))
		for _, e := range entries {
			paths = append(paths, filepath.Join(source, e.Name()))
		}
		return paths, nil
	}

	matches, err := s.fsProvider.Glob(source)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Sequences lists every source and groups the combined result.
func (s *Scanner) Sequences(sources ...string) ([]*frameseq.Sequence, error) {
	var paths []string
	for _, src := range sources {
		listed, err := s.List(src)
		if err != nil {
			return nil, err
		}
		paths = append(paths, listed...)
	}
	return s.agg.Group(paths), nil
}

// WalkOptions controls Walk.
type WalkOptions struct {
	// Level limits how many directory levels are visited. 1 visits only the
	// root; zero or negative visits everything.
	Level int

	// Hidden includes files and directories whose names start with a dot.
	Hidden bool
}

// DirEntry is one visited directory.
type DirEntry struct {
	// Path is the directory, joined onto the walked root.
	Path string

	// Depth is 0 for the root.
	Depth int

	// Dirs names the subdirectories that are visited after this one.
	Dirs []string

	// Sequences groups the files directly inside Path.
	Sequences []*frameseq.Sequence
}

type walkNode struct {
	entry DirEntry
	files []string
}

// Walk visits root and its subdirectories top-down in lexical order,
// calling fn with each directory's sequences. An error from fn stops the walk.
func (s *Scanner) Walk(root string, opts WalkOptions, fn func(DirEntry) error) error {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return fmt.Errorf("failed to open directory: %w", err)
	}

	nodes := make(map[string]*walkNode)
	var order []string

	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		rel := filepath.ToSlash(file.RelativePath())
		name := file.Info().Name()
		isRoot := rel == "."

		if !isRoot && !opts.Hidden && strings.HasPrefix(name, ".") {
			if file.Info().IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		parentRel := "."
		depth := 0
		if !isRoot {
			parentRel = filepath.ToSlash(filepath.Dir(rel))
			depth = strings.Count(rel, "/") + 1
		}

		if file.Info().IsDir() {
			if opts.Level > 0 && depth >= opts.Level {
				return fs.SkipDir
			}
			nodes[rel] = &walkNode{entry: DirEntry{
				Path:  joinRel(root, rel),
				Depth: depth,
			}}
			order = append(order, rel)
			if parent, ok := nodes[parentRel]; ok && !isRoot {
				parent.entry.Dirs = append(parent.entry.Dirs, name)
			}
			return nil
		}

		if parent, ok := nodes[parentRel]; ok {
			parent.files = append(parent.files, joinRel(root, rel))
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, rel := range order {
		node := nodes[rel]
		node.entry.Sequences = s.agg.Group(node.files)
		if err := fn(node.entry); err != nil {
			return err
		}
	}
	return nil
}

func joinRel(root, rel string) string {
	if rel == "." {
		return root
	}
	return filepath.Join(root, filepath.FromSlash(rel))
}

var patternDirective = regexp.MustCompile(`%(0(\d+))?d`)

// IsPatternString reports whether source names a sequence with a printf
// style frame directive such as "%d" or "%04d".
func IsPatternString(source string) bool {
	return patternDirective.MatchString(filepath.Base(source))
}

// Resolve turns a glob ("shot.*.exr") or a pattern string ("shot.%04d.exr")
// into exactly one sequence. No matching file returns ErrNoMatch; matches
// forming several sequences return an *AmbiguousError.
func (s *Scanner) Resolve(source string) (*frameseq.Sequence, error) {
	var paths []string
	var err error
	if IsPatternString(source) {
		paths, err = s.matchPattern(source)
	} else {
		paths, err = s.matchGlob(source)
	}
	if err != nil {
		return nil, err
	}

	seqs := s.agg.Group(paths)
	switch len(seqs) {
	case 0:
		return nil, fmt.Errorf("%s: %w", source, frameseq.ErrNoMatch)
	case 1:
		return seqs[0], nil
	default:
		return nil, &frameseq.AmbiguousError{Input: source, Sequences: seqs}
	}
}

func (s *Scanner) matchGlob(source string) ([]string, error) {
	matches, err := s.fsProvider.Glob(source)
	if err != nil {
		return nil, err
	}
	paths := matches[:0]
	for _, m := range matches {
		if info, err := s.fsProvider.Stat(m); err == nil && !info.IsDir() {
			paths = append(paths, m)
		}
	}
	return paths, nil
}

// matchPattern lists the directory of source and keeps the names where the
// directive stands for a run of digits at least as wide as its padding.
func (s *Scanner) matchPattern(source string) ([]string, error) {
	dir, base := filepath.Split(source)
	listDir := dir
	if listDir == "" {
		listDir = "."
	}

	var b strings.Builder
	b.WriteByte('^')
	last := 0
	for _, loc := range patternDirective.FindAllStringSubmatchIndex(base, -1) {
		b.WriteString(regexp.QuoteMeta(base[last:loc[0]]))
		last = loc[1]
		if loc[4] >= 0 {
			width, _ := strconv.Atoi(base[loc[4]:loc[5]])
			fmt.Fprintf(&b, `\d{%d,}`, width)
		} else {
			b.WriteString(`\d+`)
		}
	}
	b.WriteString(regexp.QuoteMeta(base[last:]))
	b.WriteByte('$')
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", source, err)
	}

	entries, err := s.fsProvider.ReadDir(listDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", source, frameseq.ErrNoMatch)
		}
		return nil, fmt.Errorf("failed to list %s: %w", listDir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !re.MatchString(e.Name()) {
			continue
		}
		paths = append(paths, dir+e.Name())
	}
	return paths, nil
}

// Verify Scanner implements the interface at compile time
var _ frameseq.Lister = (*Scanner)(nil)
