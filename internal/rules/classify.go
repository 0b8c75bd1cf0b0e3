package rules

import "strconv"

const (
	interestingLow  = 0.2
	interestingHigh = 0.3
)

// Interestingness summarises the share of live entries in a rule table.
type Interestingness struct {
	AliveRatio  float64
	Interesting bool
}

// Classify computes the alive ratio of entries. Only ratios strictly between
// 0.2 and 0.3 count as interesting; tables outside that band tend to die out
// or saturate.
func Classify(entries []uint8) Interestingness {
	if len(entries) == 0 {
		return Interestingness{}
	}
	alive := 0
	for _, e := range entries {
		if e > 0 {
			alive++
		}
	}
	ratio := float64(alive) / float64(len(entries))
	return Interestingness{
		AliveRatio:  ratio,
		Interesting: ratio > interestingLow && ratio < interestingHigh,
	}
}

// String renders the summary used in artifact names.
func (in Interestingness) String() string {
	ratio := strconv.FormatFloat(in.AliveRatio, 'f', -1, 64)
	if !in.Interesting {
		return "NotInteresting-" + ratio
	}
	return ratio
}
