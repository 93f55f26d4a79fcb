package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

// TimeLayout renders timestamps in stat output.
const TimeLayout = "2006-01-02 15:04:05 -0700"

// TimeRange holds a timestamp of the first and the last frame.
type TimeRange struct {
	First time.Time
	Last  time.Time
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s.. %s", r.First.Format(TimeLayout), r.Last.Format(TimeLayout))
}

// MarshalJSON writes both ends in TimeLayout.
func (r TimeRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"first": r.First.Format(TimeLayout),
		"last":  r.Last.Format(TimeLayout),
	})
}

// SequenceStat is the stat-like summary of one sequence.
type SequenceStat struct {
	Sequence      string    `json:"sequence"`
	Head          string    `json:"head"`
	Tail          string    `json:"tail"`
	Start         int       `json:"start"`
	End           int       `json:"end"`
	Length        int       `json:"length"`
	Pad           int       `json:"pad"`
	Range         string    `json:"range"`
	Missing       []int     `json:"missing"`
	MissingRanges string    `json:"missing_ranges"`
	SizeBytes     int64     `json:"size_bytes"`
	SizeHuman     string    `json:"size_human"`
	Modify        TimeRange `json:"modify"`
}

// Stat gathers the summary of seq. Member sizes come from the sequence's
// configured Stat function; frame times come from the service filesystem.
func (s *SequenceService) Stat(seq *frameseq.Sequence) (*SequenceStat, error) {
	first, err := s.fsys.Stat(seq.First().Path())
	if err != nil {
		return nil, fmt.Errorf("cannot stat frame: %w", err)
	}
	last, err := s.fsys.Stat(seq.Last().Path())
	if err != nil {
		return nil, fmt.Errorf("cannot stat frame: %w", err)
	}

	size, err := seq.Size()
	if err != nil {
		return nil, fmt.Errorf("cannot compute disk usage: %w", err)
	}

	cfg := seq.Config()
	missing := seq.Missing()
	frames := missing.Frames
	if frames == nil {
		frames = []int{}
	}

	return &SequenceStat{
		Sequence:      seq.String(),
		Head:          seq.Head(),
		Tail:          seq.Tail(),
		Start:         seq.Start(),
		End:           seq.End(),
		Length:        seq.Len(),
		Pad:           seq.Pad(),
		Range:         frameseq.ImpliedRange(seq.Frames()),
		Missing:       frames,
		MissingRanges: frameseq.JoinRanges(missing.Ranges, cfg.RangeSep),
		SizeBytes:     size,
		SizeHuman:     strings.TrimSpace(frameseq.HumanBytes(size)),
		Modify:        TimeRange{First: first.ModTime(), Last: last.ModTime()},
	}, nil
}
