package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/gif"
	"slices"
	"testing"
)

func framesOf(frames ...[]uint8) func(func([]uint8) bool) {
	return func(yield func([]uint8) bool) {
		for _, f := range frames {
			if !yield(f) {
				return
			}
		}
	}
}

func TestGIFRendererLoopsForever(t *testing.T) {
	var buf bytes.Buffer
	r := &GIFRenderer{Delay: 5, Scale: 1}
	err := r.Render(&buf, Palette, 3, 2, framesOf(
		[]uint8{1, 0, 0, 0, 0, 1},
		[]uint8{0, 1, 0, 0, 1, 0},
	))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.LoopCount != 0 {
		t.Fatalf("loop count %d, want 0 (infinite)", decoded.LoopCount)
	}
	if len(decoded.Image) != 2 {
		t.Fatalf("frames %d, want 2", len(decoded.Image))
	}
	first := decoded.Image[0]
	if b := first.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("frame size %v", b)
	}
	if !slices.Equal(first.Pix, []uint8{1, 0, 0, 0, 0, 1}) {
		t.Fatalf("frame pixels %v", first.Pix)
	}
	if decoded.Delay[1] != 5 {
		t.Fatalf("delay %d, want 5", decoded.Delay[1])
	}
}

func TestGIFRendererScales(t *testing.T) {
	var buf bytes.Buffer
	r := &GIFRenderer{Scale: 3}
	if err := r.Render(&buf, Palette, 2, 1, framesOf([]uint8{0, 1})); err != nil {
		t.Fatalf("render: %v", err)
	}
	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	img := decoded.Image[0]
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("scaled size %v, want 6x3", b)
	}
	if img.ColorIndexAt(1, 1) != 0 || img.ColorIndexAt(4, 2) != 1 {
		t.Fatal("nearest-neighbour upscale lost cell values")
	}
}

func TestPlaceholderRenders(t *testing.T) {
	var buf bytes.Buffer
	w, h, frames := Placeholder()
	if err := NewGIFRenderer().Render(&buf, Palette, w, h, frames); err != nil {
		t.Fatalf("render placeholder: %v", err)
	}
	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Image) != 1 || !slices.Equal(decoded.Image[0].Pix, []uint8{0, 1}) {
		t.Fatalf("unexpected placeholder %v", decoded.Image[0].Pix)
	}
}

func TestGIFRendererRejectsBadInput(t *testing.T) {
	r := NewGIFRenderer()
	var buf bytes.Buffer
	if err := r.Render(&buf, Palette, 2, 2, framesOf([]uint8{0, 1})); !errors.Is(err, ErrBadFrame) {
		t.Fatalf("short frame: expected ErrBadFrame, got %v", err)
	}
	if err := r.Render(&buf, Palette, 2, 1, framesOf([]uint8{0, 2})); !errors.Is(err, ErrBadFrame) {
		t.Fatalf("non-binary cell: expected ErrBadFrame, got %v", err)
	}
	if err := r.Render(&buf, Palette, 2, 1, framesOf()); !errors.Is(err, ErrBadFrame) {
		t.Fatalf("no frames: expected ErrBadFrame, got %v", err)
	}
	if err := r.Render(&buf, color.Palette{color.Black}, 2, 1, framesOf([]uint8{0, 1})); !errors.Is(err, ErrBadFrame) {
		t.Fatalf("one-colour palette: expected ErrBadFrame, got %v", err)
	}
}

func TestFillPaletteRGBA(t *testing.T) {
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{0, 1, 7}, Palette)
	want := []byte{0, 0, 0, 255, 255, 255, 255, 255, 255, 255, 255, 255}
	if !slices.Equal(buf, want) {
		t.Fatalf("rgba %v, want %v", buf, want)
	}
}
