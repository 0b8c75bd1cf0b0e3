package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode packs entries eight per byte, entry i landing in bit i%8 of byte
// i/8, and renders each byte as two hex digits or, when binary is set, as
// eight binary digits (most significant first).
func (t *Table) Encode(binary bool) string {
	packed := pack(t.entries)
	var sb strings.Builder
	for _, b := range packed {
		if binary {
			fmt.Fprintf(&sb, "%08b", b)
			continue
		}
		fmt.Fprintf(&sb, "%02x", b)
	}
	return sb.String()
}

// Decode rebuilds a table of the given shape from its Encode form.
func Decode(dimension, radius int, s string, binary bool) (*Table, error) {
	n, err := Size(dimension, radius)
	if err != nil {
		return nil, err
	}
	width, base := 2, 16
	if binary {
		width, base = 8, 2
	}
	nbytes := (n + 7) / 8
	if len(s) != nbytes*width {
		return nil, fmt.Errorf("%w: key length %d, want %d", ErrInvalidTable, len(s), nbytes*width)
	}
	packed := make([]byte, nbytes)
	for i := range packed {
		v, err := strconv.ParseUint(s[i*width:(i+1)*width], base, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: byte %d: %v", ErrInvalidTable, i, err)
		}
		packed[i] = byte(v)
	}
	entries := make([]uint8, n)
	for i := range entries {
		entries[i] = (packed[i/8] >> (i % 8)) & 1
	}
	if rem := n % 8; rem != 0 && packed[nbytes-1]>>rem != 0 {
		return nil, fmt.Errorf("%w: padding bits set", ErrInvalidTable)
	}
	return &Table{dimension: dimension, radius: radius, entries: entries}, nil
}

func pack(entries []uint8) []byte {
	out := make([]byte, (len(entries)+7)/8)
	for i, e := range entries {
		out[i/8] |= (e & 1) << (i % 8)
	}
	return out
}
