package core

import (
	"errors"
	"testing"
)

func TestSpaceWrap(t *testing.T) {
	s, err := NewSpace(2, 2, 5, 3)
	if err != nil {
		t.Fatalf("new space: %v", err)
	}
	cases := []struct{ x, y, wx, wy int }{
		{-1, -1, 4, 2},
		{5, 3, 0, 0},
		{11, -4, 1, 2},
		{2, 1, 2, 1},
	}
	for _, c := range cases {
		x, y := s.Wrap(c.x, c.y)
		if x != c.wx || y != c.wy {
			t.Fatalf("Wrap(%d,%d) = (%d,%d), want (%d,%d)", c.x, c.y, x, y, c.wx, c.wy)
		}
	}
}

func TestSpacePlanesAreDisjoint(t *testing.T) {
	s, err := NewSpace(2, 3, 4, 2)
	if err != nil {
		t.Fatalf("new space: %v", err)
	}
	s.Plane(1)[s.Index(3, 1)] = 1
	if s.At(0, 3, 1) != 0 || s.At(2, 3, 1) != 0 {
		t.Fatal("write to plane 1 leaked into a neighbouring plane")
	}
	if s.At(1, -1, -1) != 1 {
		t.Fatal("At should wrap coordinates")
	}
	if got := len(s.Cells()); got != 3*4*2 {
		t.Fatalf("cells len %d", got)
	}
}

func TestSpaceFrames(t *testing.T) {
	s, err := NewSpace(2, 4, 3, 3)
	if err != nil {
		t.Fatalf("new space: %v", err)
	}
	frames := 0
	for f := range s.Frames() {
		if len(f) != 9 {
			t.Fatalf("frame len %d, want 9", len(f))
		}
		frames++
	}
	if frames != 4 {
		t.Fatalf("2D frames %d, want 4", frames)
	}

	line, err := NewSpace(1, 6, 10, 99)
	if err != nil {
		t.Fatalf("new space: %v", err)
	}
	if line.H != 1 {
		t.Fatalf("1D space height %d, want 1", line.H)
	}
	w, h := line.FrameSize()
	if w != 10 || h != 6 {
		t.Fatalf("1D frame size %dx%d, want 10x6", w, h)
	}
	frames = 0
	for f := range line.Frames() {
		if len(f) != 60 {
			t.Fatalf("1D frame len %d, want 60", len(f))
		}
		frames++
	}
	if frames != 1 {
		t.Fatalf("1D frames %d, want 1", frames)
	}
}

func TestNewSpaceRejectsBadShapes(t *testing.T) {
	for _, c := range [][4]int{{3, 1, 1, 1}, {1, 0, 5, 1}, {2, 2, 0, 2}, {2, 2, 2, -1}} {
		if _, err := NewSpace(c[0], c[1], c[2], c[3]); !errors.Is(err, ErrInvalidSpace) {
			t.Fatalf("NewSpace%v: expected ErrInvalidSpace, got %v", c, err)
		}
	}
}

func TestFillBinaryDeterministic(t *testing.T) {
	a := make([]uint8, 32)
	b := make([]uint8, 32)
	FillBinary(NewRNG(42), a)
	FillBinary(NewRNG(42), b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d differs: %d vs %d", i, a[i], b[i])
		}
		if a[i] > 1 {
			t.Fatalf("index %d holds %d", i, a[i])
		}
	}
}

func TestSpaceClearPlane(t *testing.T) {
	s, err := NewSpace(2, 2, 2, 2)
	if err != nil {
		t.Fatalf("new space: %v", err)
	}
	for i := range s.Cells() {
		s.Cells()[i] = 1
	}
	s.ClearPlane(0)
	for i, c := range s.Cells() {
		want := uint8(1)
		if i < s.PlaneSize() {
			want = 0
		}
		if c != want {
			t.Fatalf("cell %d = %d, want %d", i, c, want)
		}
	}
}
