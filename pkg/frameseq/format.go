package frameseq

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// directiveRe matches "%" with an optional width and a single letter field
// code, or the "%%" escape.
var directiveRe = regexp.MustCompile(`%(\d*)([A-Za-z%])`)

// fieldValue is what a directive provider produces. Numeric fields honour
// the directive width; text fields ignore it.
type fieldValue struct {
	text    string
	num     int64
	numeric bool
}

type fieldProvider func(s *Sequence) (fieldValue, error)

func numField(n int) (fieldValue, error) {
	return fieldValue{num: int64(n), numeric: true}, nil
}

func textField(s string) (fieldValue, error) {
	return fieldValue{text: s}, nil
}

// providers maps each directive letter to the sequence field it renders.
var providers = map[byte]fieldProvider{
	's': func(s *Sequence) (fieldValue, error) { return numField(s.Start()) },
	'e': func(s *Sequence) (fieldValue, error) { return numField(s.End()) },
	'l': func(s *Sequence) (fieldValue, error) { return numField(s.Len()) },
	'f': func(s *Sequence) (fieldValue, error) {
		return textField("[" + strings.Join(s.Names(), s.Config().RangeSep) + "]")
	},
	'm': func(s *Sequence) (fieldValue, error) {
		return textField(s.Missing().expandList(s.Config().RangeSep))
	},
	'M': func(s *Sequence) (fieldValue, error) {
		return textField(JoinRanges(s.Missing().Ranges, s.Config().RangeSep))
	},
	'p': func(s *Sequence) (fieldValue, error) { return textField(s.Padding()) },
	'r': func(s *Sequence) (fieldValue, error) { return textField(ImpliedRange(s.Frames())) },
	'R': func(s *Sequence) (fieldValue, error) {
		return textField(ExplicitRange(s.Frames(), s.Config().RangeSep))
	},
	'd': func(s *Sequence) (fieldValue, error) {
		size, err := s.Size()
		if err != nil {
			return fieldValue{}, err
		}
		return fieldValue{num: size, numeric: true}, nil
	},
	'H': func(s *Sequence) (fieldValue, error) {
		human, err := s.HumanSize()
		if err != nil {
			return fieldValue{}, err
		}
		return textField(human)
	},
	'D': func(s *Sequence) (fieldValue, error) { return textField(s.Directory()) },
	'h': func(s *Sequence) (fieldValue, error) { return textField(s.Head()) },
	't': func(s *Sequence) (fieldValue, error) { return textField(s.Tail()) },
}

// Format renders the sequence through a directive template such as
// "%h%p%t %R". Each provider runs at most once per call, however many
// times its directive appears.
//
// Supported directives:
//
//	%s start          %e end            %l length
//	%f member names   %m missing list   %M missing ranges
//	%p padding        %r implied range  %R explicit range
//	%d size in bytes  %H human size     %D directory
//	%h head           %t tail           %% literal percent
func (s *Sequence) Format(template string) (string, error) {
	memo := make(map[byte]fieldValue)
	var b strings.Builder
	last := 0

	for _, loc := range directiveRe.FindAllStringSubmatchIndex(template, -1) {
		b.WriteString(template[last:loc[0]])
		last = loc[1]

		width := template[loc[2]:loc[3]]
		code := template[loc[4]]
		if code == '%' {
			b.WriteString(width)
			b.WriteByte('%')
			continue
		}

		v, ok := memo[code]
		if !ok {
			provide, known := providers[code]
			if !known {
				return "", &FormatError{Directive: "%" + string(code)}
			}
			var err error
			if v, err = provide(s); err != nil {
				return "", fmt.Errorf("format %%%c: %w", code, err)
			}
			memo[code] = v
		}
		b.WriteString(v.render(width))
	}
	b.WriteString(template[last:])
	return b.String(), nil
}

// render right-justifies numeric values to width, zero padded when the
// width has a leading zero.
func (v fieldValue) render(width string) string {
	if !v.numeric {
		return v.text
	}
	n := strconv.FormatInt(v.num, 10)
	if width == "" {
		return n
	}
	w, _ := strconv.Atoi(width)
	if width[0] == '0' {
		return fmt.Sprintf("%0*d", w, v.num)
	}
	return fmt.Sprintf("%*s", w, n)
}

// checkTemplate rejects templates with unknown directive letters.
func checkTemplate(template string) error {
	for _, m := range directiveRe.FindAllStringSubmatch(template, -1) {
		code := m[2][0]
		if code == '%' {
			continue
		}
		if _, ok := providers[code]; !ok {
			return &FormatError{Directive: "%" + m[2]}
		}
	}
	return nil
}
