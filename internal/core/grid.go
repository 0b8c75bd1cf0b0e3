package core

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvalidSpace reports a space that cannot be allocated with the requested shape.
var ErrInvalidSpace = errors.New("invalid space")

// Space stores every generation of a 1D or 2D automaton as consecutive
// row-major planes: index (t, x, y) lives at t*W*H + y*W + x. One-dimensional
// spaces use H == 1.
type Space struct {
	Dimension int
	Steps     int
	W, H      int
	data      []uint8
}

// NewSpace allocates a zero-filled space for the given dimension. h is
// ignored for 1D spaces.
func NewSpace(dimension, steps, w, h int) (*Space, error) {
	switch dimension {
	case 1:
		h = 1
	case 2:
	default:
		return nil, fmt.Errorf("%w: dimension %d", ErrInvalidSpace, dimension)
	}
	if steps <= 0 || w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: steps=%d w=%d h=%d", ErrInvalidSpace, steps, w, h)
	}
	return &Space{Dimension: dimension, Steps: steps, W: w, H: h, data: make([]uint8, steps*w*h)}, nil
}

// Cells exposes the backing slice covering all planes.
func (s *Space) Cells() []uint8 { return s.data }

// PlaneSize is the number of cells in a single generation.
func (s *Space) PlaneSize() int { return s.W * s.H }

// Plane returns the slice holding generation t. Writes go straight to the space.
func (s *Space) Plane(t int) []uint8 {
	n := s.PlaneSize()
	return s.data[t*n : (t+1)*n]
}

// Index returns the linear index of (x, y) inside a plane.
func (s *Space) Index(x, y int) int { return y*s.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (s *Space) Wrap(x, y int) (int, int) {
	x = (x%s.W + s.W) % s.W
	y = (y%s.H + s.H) % s.H
	return x, y
}

// At reads the wrapped cell (x, y) of generation t.
func (s *Space) At(t, x, y int) uint8 {
	x, y = s.Wrap(x, y)
	return s.Plane(t)[s.Index(x, y)]
}

// FrameSize reports the dimensions of the frames yielded by Frames.
func (s *Space) FrameSize() (int, int) {
	if s.Dimension == 1 {
		return s.W, s.Steps
	}
	return s.W, s.H
}

// Frames yields one frame per generation for 2D spaces. A 1D space is a
// single frame where each row is one generation.
func (s *Space) Frames() iter.Seq[[]uint8] {
	return func(yield func([]uint8) bool) {
		if s.Dimension == 1 {
			yield(s.data)
			return
		}
		for t := 0; t < s.Steps; t++ {
			if !yield(s.Plane(t)) {
				return
			}
		}
	}
}

// ClearPlane zeroes generation t.
func (s *Space) ClearPlane(t int) {
	clear(s.Plane(t))
}
