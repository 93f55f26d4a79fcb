package retry

import (
	"math"
	"math/rand"
	"time"
)

// Defaults for retrying a frame copy or rename that hit a busy file.
const (
	DefaultInitialDelay = 50 * time.Millisecond
	DefaultMaxDelay     = 2 * time.Second
	DefaultRetries      = 3
	DefaultJitter       = 0.1
)

// FileBackoff waits Initial before the first retry and multiplies the wait
// by Factor for each further one, never beyond Max. Every wait is spread
// by up to plus or minus Jitter of itself.
type FileBackoff struct {
	Initial time.Duration
	Max     time.Duration
	Factor  float64
	Jitter  float64
	Tries   int

	// Rand returns values in [0, 1). Nil means math/rand.
	Rand func() float64
}

// DefaultFileBackoff is the schedule transfers use.
func DefaultFileBackoff() *FileBackoff {
	return &FileBackoff{
		Initial: DefaultInitialDelay,
		Max:     DefaultMaxDelay,
		Factor:  2,
		Jitter:  DefaultJitter,
		Tries:   DefaultRetries,
	}
}

// Delay implements Schedule.
func (b *FileBackoff) Delay(retry int) time.Duration {
	factor := b.Factor
	if factor <= 0 {
		factor = 2
	}
	d := float64(b.Initial) * math.Pow(factor, float64(retry))
	if b.Max > 0 {
		d = math.Min(d, float64(b.Max))
	}
	if b.Jitter > 0 {
		r := b.Rand
		if r == nil {
			r = rand.Float64
		}
		d *= 1 + b.Jitter*(2*r()-1)
	}
	return time.Duration(math.Round(d))
}

// Retries implements Schedule. Negative counts mean no retries.
func (b *FileBackoff) Retries() int {
	return max(b.Tries, 0)
}

var _ Schedule = (*FileBackoff)(nil)
