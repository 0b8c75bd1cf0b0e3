package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"iter"

	"golang.org/x/image/draw"
)

// ErrBadFrame reports a frame whose length or palette does not match the
// declared geometry.
var ErrBadFrame = errors.New("bad frame")

// Palette is the two-colour palette: index 0 dead, index 1 alive.
var Palette = color.Palette{color.Black, color.White}

// FrameRenderer consumes an ordered, single-pass sequence of row-major 0/1
// frames and writes one looping animation.
type FrameRenderer interface {
	Render(w io.Writer, palette color.Palette, width, height int, frames iter.Seq[[]uint8]) error
	Ext() string
}

// Placeholder is the 2x1 frame written in place of a boring run.
func Placeholder() (width, height int, frames iter.Seq[[]uint8]) {
	return 2, 1, func(yield func([]uint8) bool) {
		yield([]uint8{0, 1})
	}
}

// GIFRenderer encodes frames as an infinitely looping GIF.
type GIFRenderer struct {
	// Delay between frames in hundredths of a second.
	Delay int
	// Scale upsamples every cell to a Scale x Scale block.
	Scale int
}

// NewGIFRenderer returns a renderer with one-cell pixels and no delay.
func NewGIFRenderer() *GIFRenderer { return &GIFRenderer{Scale: 1} }

// Ext returns the artifact extension.
func (r *GIFRenderer) Ext() string { return "gif" }

// Render implements FrameRenderer.
func (r *GIFRenderer) Render(w io.Writer, palette color.Palette, width, height int, frames iter.Seq[[]uint8]) error {
	if len(palette) != 2 {
		return fmt.Errorf("%w: palette has %d colours, want 2", ErrBadFrame, len(palette))
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadFrame, width, height)
	}
	scale := r.Scale
	if scale <= 0 {
		scale = 1
	}
	anim := &gif.GIF{LoopCount: 0}
	n := 0
	for cells := range frames {
		if len(cells) != width*height {
			return fmt.Errorf("%w: frame %d has %d cells, want %d", ErrBadFrame, n, len(cells), width*height)
		}
		img := image.NewPaletted(image.Rect(0, 0, width, height), palette)
		for i, c := range cells {
			if c > 1 {
				return fmt.Errorf("%w: frame %d cell %d is %d", ErrBadFrame, n, i, c)
			}
			img.Pix[i] = c
		}
		if scale > 1 {
			img = upscale(img, scale)
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, r.Delay)
		n++
	}
	if n == 0 {
		return fmt.Errorf("%w: no frames", ErrBadFrame)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

func upscale(src *image.Paletted, scale int) *image.Paletted {
	b := src.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale), src.Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
