package frameseq

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// parsePatterns maps invertible directives to the text they match.
// Numbers may carry the space padding of a width like "%4l". A head is
// greedy but must end on a non-digit, so the last numeric range in a name
// is the frame range even when the head holds something like "take1-2".
// The tail is lazy and may not start with a digit.
var parsePatterns = map[byte]string{
	's': ` *\d+`,
	'e': ` *\d+`,
	'l': ` *\d+`,
	'r': `\d+-\d+`,
	'R': `\[[^\]]*\]`,
	'M': `\[[^\]]*\]`,
	'm': `\[[^\]]*\]`,
	'p': `%0?\d*d`,
	'h': `(?:.*\D)?`,
	't': `(?:\D.*?)?`,
}

// Parser turns compressed strings back into sequences.
type Parser struct {
	agg *Aggregator
}

// NewParser creates a parser whose reconstructed sequences use cfg.
func NewParser(cfg Config) (*Parser, error) {
	agg, err := NewAggregatorWithLister(cfg, OSLister{})
	if err != nil {
		return nil, err
	}
	return &Parser{agg: agg}, nil
}

// Uncompress parses s with a one-off parser built from cfg.
func Uncompress(s, template string, cfg Config) (*Sequence, error) {
	p, err := NewParser(cfg)
	if err != nil {
		return nil, err
	}
	return p.Uncompress(s, template)
}

// Uncompress reconstructs the member names of a compressed sequence string
// that was rendered with template, for example
//
//	p.Uncompress("shot.%04d.exr [1-3, 6]", "%h%p%t %R")
//
// yields shot.0001.exr through shot.0003.exr and shot.0006.exr. Strings the
// template does not match return ErrNoMatch; strings that rebuild into
// several sequences return an *AmbiguousError.
func (p *Parser) Uncompress(s, template string) (*Sequence, error) {
	re, err := compileParseTemplate(template)
	if err != nil {
		return nil, err
	}

	dir, name := filepath.Split(s)
	match := re.FindStringSubmatch(name)
	if match == nil {
		return nil, fmt.Errorf("%q with template %q: %w", s, template, ErrNoMatch)
	}
	groups := make(map[string]string)
	for i, g := range re.SubexpNames() {
		switch g {
		case "":
		case "s", "e", "l":
			groups[g] = strings.TrimLeft(match[i], " ")
		default:
			groups[g] = match[i]
		}
	}

	sep := p.agg.matcher.cfg.RangeSep
	frames, endpoints, err := framesFromGroups(groups, sep)
	if err != nil {
		return nil, fmt.Errorf("%q: %v: %w", s, err, ErrNoMatch)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("%q has no frames: %w", s, ErrNoMatch)
	}

	pad := inferPad(groups["p"], endpoints)
	items := make([]*Item, 0, len(frames))
	for _, f := range frames {
		items = append(items, NewItem(dir+groups["h"]+padFrame(f, pad)+groups["t"]))
	}

	seqs := p.agg.GroupItems(items)
	switch len(seqs) {
	case 0:
		return nil, fmt.Errorf("%q: %w", s, ErrNoMatch)
	case 1:
		return seqs[0], nil
	default:
		return nil, &AmbiguousError{Input: s, Sequences: seqs}
	}
}

// compileParseTemplate quotes the literal text of template and swaps each
// directive for a capture group. Repeated directives match the same shape
// without capturing again.
func compileParseTemplate(template string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteByte('^')
	seen := make(map[byte]bool)
	last := 0
	for _, loc := range directiveRe.FindAllStringSubmatchIndex(template, -1) {
		b.WriteString(regexp.QuoteMeta(template[last:loc[0]]))
		last = loc[1]

		code := template[loc[4]]
		directive := "%" + string(code)
		switch code {
		case '%':
			b.WriteString(regexp.QuoteMeta(template[loc[2]:loc[3]] + "%"))
			continue
		case 'D':
			// the directory is split off the input before matching
			continue
		case 'f', 'd', 'H':
			return nil, &DirectiveError{Directive: directive, Reason: "value is not recoverable from a string"}
		}
		pattern, ok := parsePatterns[code]
		if !ok {
			return nil, &FormatError{Directive: directive}
		}
		if seen[code] {
			fmt.Fprintf(&b, "(?:%s)", pattern)
			continue
		}
		seen[code] = true
		fmt.Fprintf(&b, "(?P<%c>%s)", code, pattern)
	}
	b.WriteString(regexp.QuoteMeta(template[last:]))
	b.WriteByte('$')

	if !seen['R'] && !seen['r'] && !seen['s'] && !seen['e'] {
		return nil, &DirectiveError{Directive: template, Reason: "template has no frame range directive"}
	}
	return regexp.Compile(b.String())
}

// framesFromGroups prefers an explicit range, then an implied range, then
// bare start and end. Missing frames captured by %m or %M are removed.
// The endpoint texts are returned for padding inference.
func framesFromGroups(groups map[string]string, sep string) ([]int, []string, error) {
	var ranges []Range
	var endpoints []string

	switch {
	case groups["R"] != "":
		rs, texts, err := parseRangeList(groups["R"], sep)
		if err != nil {
			return nil, nil, err
		}
		ranges, endpoints = rs, texts
	case groups["r"] != "":
		lo, hi, _ := strings.Cut(groups["r"], "-")
		r, err := newRange(lo, hi)
		if err != nil {
			return nil, nil, err
		}
		ranges, endpoints = []Range{r}, []string{lo, hi}
	case groups["s"] != "":
		hi := groups["e"]
		if hi == "" {
			hi = groups["s"]
		}
		r, err := newRange(groups["s"], hi)
		if err != nil {
			return nil, nil, err
		}
		ranges, endpoints = []Range{r}, []string{groups["s"], hi}
	}

	missing := make(map[int]bool)
	for _, key := range []string{"M", "m"} {
		if groups[key] == "" {
			continue
		}
		rs, _, err := parseRangeList(groups[key], sep)
		if err != nil {
			return nil, nil, err
		}
		for _, r := range rs {
			for f := r.Start; f <= r.End; f++ {
				missing[f] = true
			}
		}
	}

	var frames []int
	for _, r := range ranges {
		for f := r.Start; f <= r.End; f++ {
			if !missing[f] {
				frames = append(frames, f)
			}
		}
	}
	return frames, endpoints, nil
}

// parseRangeList reads "[1-3, 6]" style lists. Entries are split on sep,
// with commas and whitespace accepted as fallback separators.
func parseRangeList(list, sep string) ([]Range, []string, error) {
	body := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(list, "["), "]"))
	if body == "" {
		return nil, nil, nil
	}
	if sep != "" {
		body = strings.ReplaceAll(body, sep, ",")
	}
	entries := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	var ranges []Range
	var texts []string
	for _, entry := range entries {
		lo, hi, found := strings.Cut(entry, "-")
		if !found {
			hi = lo
		}
		r, err := newRange(lo, hi)
		if err != nil {
			return nil, nil, err
		}
		ranges = append(ranges, r)
		texts = append(texts, lo, hi)
	}
	return ranges, texts, nil
}

func newRange(lo, hi string) (Range, error) {
	start, err := strconv.Atoi(lo)
	if err != nil {
		return Range{}, fmt.Errorf("bad frame %q", lo)
	}
	end, err := strconv.Atoi(hi)
	if err != nil {
		return Range{}, fmt.Errorf("bad frame %q", hi)
	}
	if end < start {
		return Range{}, fmt.Errorf("range %s-%s runs backwards", lo, hi)
	}
	return Range{Start: start, End: end}, nil
}

// inferPad honours an explicit "%0Nd" specimen. Otherwise the widest
// endpoint sets the width, but only when some endpoint is zero padded.
func inferPad(specimen string, endpoints []string) int {
	if specimen != "" {
		digits := strings.TrimSuffix(strings.TrimPrefix(specimen, "%"), "d")
		pad, _ := strconv.Atoi(digits)
		return pad
	}
	padded := false
	width := 0
	for _, e := range endpoints {
		if len(e) > 1 && e[0] == '0' {
			padded = true
		}
		width = max(width, len(e))
	}
	if !padded {
		return 0
	}
	return width
}
