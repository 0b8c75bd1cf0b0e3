// Package rules holds rule tables: the lookup from an encoded neighborhood to
// the next state of a binary cellular automaton.
package rules

import (
	"errors"
	"fmt"
	"math/bits"

	"ca-survey/internal/core"
)

var (
	// ErrUnsupported reports a dimension/radius combination with no table layout.
	ErrUnsupported = errors.New("unsupported rule table shape")
	// ErrInvalidTable reports supplied entries that do not form a valid table.
	ErrInvalidTable = errors.New("invalid rule table")
)

// Conway2DSize is the table length for the 3x3 Moore neighborhood.
const Conway2DSize = 512

// maxRadius1D keeps 1D tables addressable; 2^(2*12+1) entries is already 32M.
const maxRadius1D = 12

// Bias is the acceptance threshold of a uniform byte draw: an entry is 1 when
// the byte is below the threshold.
type Bias uint16

const (
	// FairBias yields 1 with probability 1/2.
	FairBias Bias = 128
	// QuarterBias yields 1 with probability 1/4.
	QuarterBias Bias = 64
)

// Table maps neighborhood encodings to next-state bits. Entries[i] governs the
// neighborhood whose encoding is i. A Table is never modified after construction.
type Table struct {
	dimension int
	radius    int
	entries   []uint8
}

// Size returns the table length for the given shape.
func Size(dimension, radius int) (int, error) {
	switch dimension {
	case 1:
		if radius < 0 || radius > maxRadius1D {
			return 0, fmt.Errorf("%w: 1D radius %d", ErrUnsupported, radius)
		}
		return 1 << (2*radius + 1), nil
	case 2:
		if radius != 1 {
			return 0, fmt.Errorf("%w: 2D radius %d", ErrUnsupported, radius)
		}
		return Conway2DSize, nil
	default:
		return 0, fmt.Errorf("%w: dimension %d", ErrUnsupported, dimension)
	}
}

// Random draws every entry independently from src using the given bias.
func Random(src core.BitSource, dimension, radius int, bias Bias) (*Table, error) {
	n, err := Size(dimension, radius)
	if err != nil {
		return nil, err
	}
	entries := make([]uint8, n)
	for i := range entries {
		if Bias(src.Byte()) < bias {
			entries[i] = 1
		}
	}
	return &Table{dimension: dimension, radius: radius, entries: entries}, nil
}

// Conway returns the 2D life rule. The count includes the centre bit, so a
// live cell survives on a count of 3 or 4 and a dead cell is born on 3.
func Conway() *Table {
	entries := make([]uint8, Conway2DSize)
	for i := range entries {
		alive := i&(1<<4) != 0
		cnt := bits.OnesCount(uint(i))
		if (!alive && cnt == 3) || (alive && (cnt == 3 || cnt == 4)) {
			entries[i] = 1
		}
	}
	return &Table{dimension: 2, radius: 1, entries: entries}
}

// FromEntries validates and copies a supplied table.
func FromEntries(dimension, radius int, entries []uint8) (*Table, error) {
	n, err := Size(dimension, radius)
	if err != nil {
		return nil, err
	}
	if len(entries) != n {
		return nil, fmt.Errorf("%w: got %d entries, want %d", ErrInvalidTable, len(entries), n)
	}
	for i, v := range entries {
		if v > 1 {
			return nil, fmt.Errorf("%w: entry %d is %d", ErrInvalidTable, i, v)
		}
	}
	return &Table{dimension: dimension, radius: radius, entries: append([]uint8(nil), entries...)}, nil
}

// Dimension is 1 or 2.
func (t *Table) Dimension() int { return t.dimension }

// Radius is the neighbor radius the table was built for.
func (t *Table) Radius() int { return t.radius }

// Len is the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Entry returns the next state for neighborhood encoding i.
func (t *Table) Entry(i int) uint8 { return t.entries[i] }

// Entries returns a copy of the table.
func (t *Table) Entries() []uint8 { return append([]uint8(nil), t.entries...) }

// Classify computes the interestingness of the table.
func (t *Table) Classify() Interestingness { return Classify(t.entries) }

// Key is the canonical identity of the table.
func (t *Table) Key() string { return t.Encode(false) }
