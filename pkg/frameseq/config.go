package frameseq

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

// StatFunc reports file metadata for a member path. It backs the disk usage
// directives and is replaced in tests by in-memory filesystems.
type StatFunc func(path string) (fs.FileInfo, error)

// Config carries every policy switch of the detection engine. It is passed
// by value into matchers, aggregators and parsers; there is no package level
// state, so two aggregations with different settings never interfere.
type Config struct {
	// StrictPad requires two frames to have the same digit count to be siblings.
	StrictPad bool

	// FramePattern restricts which digit runs may carry the frame number.
	// "%d" inside the pattern stands for the frame digits, for example "_v%d".
	FramePattern string

	// RangeSep joins the runs of explicit ranges and missing lists.
	RangeSep string

	// DefaultFormat is used by Sequence.String.
	DefaultFormat string

	// GlobalFormat is the long listing format.
	GlobalFormat string

	// MissingExpandLimit caps the span for which missing frames are listed
	// individually. Wider spans only report ranges.
	MissingExpandLimit int

	// Stat reports member file metadata. Defaults to os.Stat.
	Stat StatFunc
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		FramePattern:       DefaultFramePattern,
		RangeSep:           DefaultRangeSep,
		DefaultFormat:      DefaultFormat,
		GlobalFormat:       DefaultGlobalFormat,
		MissingExpandLimit: DefaultMissingExpandLimit,
		Stat:               os.Stat,
	}
}

// WithDefaults fills every zero field with its default value.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.FramePattern == "" {
		c.FramePattern = d.FramePattern
	}
	if c.RangeSep == "" {
		c.RangeSep = d.RangeSep
	}
	if c.DefaultFormat == "" {
		c.DefaultFormat = d.DefaultFormat
	}
	if c.GlobalFormat == "" {
		c.GlobalFormat = d.GlobalFormat
	}
	if c.MissingExpandLimit == 0 {
		c.MissingExpandLimit = d.MissingExpandLimit
	}
	if c.Stat == nil {
		c.Stat = d.Stat
	}
	return c
}

// Validate checks the configuration after defaults are applied.
// It returns a multi-error if multiple validation failures occur.
func (c Config) Validate() error {
	var errs []error
	c = c.WithDefaults()

	if _, err := compileFramePattern(c.FramePattern); err != nil {
		errs = append(errs, fmt.Errorf("frame pattern %q: %v: %w", c.FramePattern, err, ErrInvalidConfig))
	}

	if c.MissingExpandLimit < 0 {
		errs = append(errs, fmt.Errorf("missing expand limit cannot be negative: %w", ErrInvalidConfig))
	}

	for name, tmpl := range map[string]string{"default format": c.DefaultFormat, "global format": c.GlobalFormat} {
		if err := checkTemplate(tmpl); err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %v: %w", name, tmpl, err, ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// compileFramePattern returns nil for the default pattern, which accepts
// every digit run and needs no extra matching.
func compileFramePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" || pattern == DefaultFramePattern {
		return nil, nil
	}
	return regexp.Compile(strings.ReplaceAll(pattern, FramePlaceholder, `(\d+)`))
}
