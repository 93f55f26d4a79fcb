// Package frameseq detects numbered file sequences and compresses them into
// short range strings.
//
// Files such as shot.0001.exr, shot.0002.exr and shot.0004.exr belong to one
// sequence because their names differ in exactly one digit run at the same
// offset. The package groups flat name lists into sequences, computes their
// frame ranges and gaps, renders them through a directive template and parses
// such strings back into member names.
//
// # Example Usage
//
//	agg, err := frameseq.NewAggregator(frameseq.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	for _, seq := range agg.Group(names) {
//	    line, _ := seq.Format("%4l %h%p%t %R")
//	    fmt.Println(line) // "   3 shot.%04d.exr [1-2, 4]"
//	}
//
//	seq, err := frameseq.Uncompress("shot.%04d.exr [1-2, 4]", "%h%p%t %R", cfg)
//
// # Configuration
//
// All policy lives in Config: strict padding, the frame pattern, the range
// separator, the default templates and the missing frame expansion limit.
// Config is passed explicitly, so concurrent aggregations with different
// settings are independent. A single Sequence must not be mutated from
// several goroutines.
package frameseq
