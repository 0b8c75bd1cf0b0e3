package rules

import (
	"errors"
	"testing"

	"ca-survey/internal/core"
)

func TestEncodeBitOrder(t *testing.T) {
	table, err := FromEntries(1, 1, []uint8{0, 1, 0, 1, 0, 1, 0, 1})
	if err != nil {
		t.Fatalf("from entries: %v", err)
	}
	if got := table.Encode(false); got != "aa" {
		t.Fatalf("hex encoding %q, want %q", got, "aa")
	}
	if got := table.Encode(true); got != "10101010" {
		t.Fatalf("binary encoding %q, want %q", got, "10101010")
	}

	table, err = FromEntries(1, 1, []uint8{1, 0, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("from entries: %v", err)
	}
	if got := table.Key(); got != "01" {
		t.Fatalf("entry 0 must be the least significant bit, got %q", got)
	}
}

func TestEncodePartialByte(t *testing.T) {
	table, err := FromEntries(1, 0, []uint8{0, 1})
	if err != nil {
		t.Fatalf("from entries: %v", err)
	}
	if got := table.Key(); got != "02" {
		t.Fatalf("radius 0 key %q, want %q", got, "02")
	}
	back, err := Decode(1, 0, "02", false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Entry(0) != 0 || back.Entry(1) != 1 {
		t.Fatalf("decoded entries %v", back.Entries())
	}
	if _, err := Decode(1, 0, "06", false); !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("padding bits: expected ErrInvalidTable, got %v", err)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := Random(core.NewRNG(11), 2, 1, QuarterBias)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	b, err := FromEntries(2, 1, a.Entries())
	if err != nil {
		t.Fatalf("from entries: %v", err)
	}
	if a.Key() != b.Key() {
		t.Fatalf("identical entries produced different keys: %q vs %q", a.Key(), b.Key())
	}
	if len(a.Key()) != 128 {
		t.Fatalf("2d key length %d, want 128", len(a.Key()))
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	rng := core.NewRNG(3)
	shapes := []struct{ dim, radius int }{{1, 1}, {1, 2}, {1, 3}, {2, 1}}
	for _, shape := range shapes {
		table, err := Random(rng, shape.dim, shape.radius, FairBias)
		if err != nil {
			t.Fatalf("random %v: %v", shape, err)
		}
		for _, binary := range []bool{false, true} {
			s := table.Encode(binary)
			back, err := Decode(shape.dim, shape.radius, s, binary)
			if err != nil {
				t.Fatalf("decode %v binary=%v: %v", shape, binary, err)
			}
			if got := back.Encode(binary); got != s {
				t.Fatalf("round trip %v binary=%v: %q != %q", shape, binary, got, s)
			}
		}
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name   string
		s      string
		binary bool
	}{
		{"short", "a", false},
		{"long", "aaa", false},
		{"bad hex", "zz", false},
		{"bad binary", "10201010", true},
	}
	for _, c := range cases {
		if _, err := Decode(1, 1, c.s, c.binary); !errors.Is(err, ErrInvalidTable) {
			t.Fatalf("%s: expected ErrInvalidTable, got %v", c.name, err)
		}
	}
	if _, err := Decode(2, 2, "00", false); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
