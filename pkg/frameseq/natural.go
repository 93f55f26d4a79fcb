package frameseq

import (
	"path/filepath"
	"strings"
)

// NaturalCompare orders strings so that digit runs compare by numeric value
// and everything else compares case-insensitively: "f2" sorts before "f10".
func NaturalCompare(a, b string) int {
	ca, cb := naturalChunks(a), naturalChunks(b)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		if c := compareChunk(ca[i], cb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(ca) < len(cb):
		return -1
	case len(ca) > len(cb):
		return 1
	}
	return 0
}

// ExtensionCompare orders by file extension first and then naturally by the
// rest of the path, so frames of one format stay together.
func ExtensionCompare(a, b string) int {
	ea, eb := filepath.Ext(a), filepath.Ext(b)
	if c := strings.Compare(ea, eb); c != 0 {
		return c
	}
	return NaturalCompare(strings.TrimSuffix(a, ea), strings.TrimSuffix(b, eb))
}

type chunk struct {
	text    string
	numeric bool
}

// naturalChunks alternates text and digit chunks, always starting with a
// (possibly empty) text chunk so both sides line up by kind.
func naturalChunks(s string) []chunk {
	runs, parts := tokenize(s)
	out := make([]chunk, 0, len(runs)+len(parts))
	for i, p := range parts {
		out = append(out, chunk{text: strings.ToLower(p)})
		if i < len(runs) {
			out = append(out, chunk{text: runs[i].Text, numeric: true})
		}
	}
	return out
}

func compareChunk(a, b chunk) int {
	if !a.numeric || !b.numeric {
		return strings.Compare(a.text, b.text)
	}
	ta, tb := strings.TrimLeft(a.text, "0"), strings.TrimLeft(b.text, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	return strings.Compare(ta, tb)
}
