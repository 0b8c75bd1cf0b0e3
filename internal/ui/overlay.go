//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"ca-survey/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay highlights the cell under the cursor and prints the rule-table
// entry its neighborhood selects. P toggles it.
type Overlay struct {
	sim   core.Sim
	scale int
	show  bool
	pixel *ebiten.Image

	cellX, cellY int
	label        string
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update tracks the cursor and refreshes the probe label.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		o.show = !o.show
	}
	o.label = ""
	if !o.show {
		return
	}
	prober, ok := o.sim.(core.Prober)
	if !ok {
		return
	}
	mx, my := ebiten.CursorPosition()
	o.cellX, o.cellY = mx/o.scale, my/o.scale
	idx, entry, ok := prober.Probe(o.cellX, o.cellY)
	if !ok {
		return
	}
	o.label = fmt.Sprintf("(%d,%d) idx %d -> %d", o.cellX, o.cellY, idx, entry)
}

// Draw outlines the probed cell and prints the label.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.label == "" {
		return
	}
	highlight := color.RGBA{R: 255, G: 120, B: 40, A: 255}
	x := float64(o.cellX * o.scale)
	y := float64(o.cellY * o.scale)
	s := float64(o.scale)
	o.drawRect(screen, x-1, y-1, s+2, 1, highlight)
	o.drawRect(screen, x-1, y+s, s+2, 1, highlight)
	o.drawRect(screen, x-1, y, 1, s, highlight)
	o.drawRect(screen, x+s, y, 1, s, highlight)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, o.label)
	o.drawRect(screen, 0, 0, float64(bounds.Dx()+8), float64(bounds.Dy()+8), color.RGBA{R: 16, G: 16, B: 20, A: 200})
	text.Draw(screen, o.label, face, 4, 4-bounds.Min.Y, highlight)
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
