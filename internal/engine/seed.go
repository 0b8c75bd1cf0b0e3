package engine

import (
	"errors"
	"fmt"

	"ca-survey/internal/core"
)

// ErrUnknownSeeding reports an unrecognised seeding policy name.
var ErrUnknownSeeding = errors.New("unknown seeding policy")

// Seeding selects how generation 0 is initialised.
type Seeding string

const (
	// SeedSingle sets only the middle cell.
	SeedSingle Seeding = "single"
	// SeedRandom draws every cell from a fair coin.
	SeedRandom Seeding = "random"
)

// ParseSeeding validates a policy name.
func ParseSeeding(s string) (Seeding, error) {
	switch Seeding(s) {
	case SeedSingle, SeedRandom:
		return Seeding(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSeeding, s)
}

// Seed clears generation 0 and initialises it with the policy. src is only
// consulted by SeedRandom.
func Seed(space *core.Space, policy Seeding, src core.BitSource) error {
	space.ClearPlane(0)
	plane := space.Plane(0)
	switch policy {
	case SeedSingle:
		plane[space.Index(space.W/2, space.H/2)] = 1
	case SeedRandom:
		if src == nil {
			return errors.New("random seeding needs a bit source")
		}
		core.FillBinary(src, plane)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSeeding, policy)
	}
	return nil
}
