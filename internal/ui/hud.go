//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"ca-survey/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

var (
	panelColor  = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	groupColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	valueColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	buttonColor = color.RGBA{R: 54, G: 56, B: 64, A: 255}
)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []hudControlState
	intSetter    core.IntParameterSetter
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

type hudControlState struct {
	control   core.ParameterControl
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: "Parameters"}
	if name := sim.Name(); name != "" {
		h.title = strings.ToUpper(name[:1]) + name[1:]
	}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	h.refreshControls()
	return h
}

// Update refreshes the cached parameter snapshot and handles button clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	if provider, ok := h.sim.(parameterProvider); ok {
		h.snapshot = provider.Parameters()
	}
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	for _, group := range h.snapshot.Groups {
		y += lineHeight
		text.Draw(h.panel, group.Name, face, panelPadding, y, groupColor)
		for _, p := range group.Params {
			y += lineHeight
			text.Draw(h.panel, p.Label+": "+p.Value, face, panelPadding*2, y, valueColor)
		}
	}
	for _, state := range h.controls {
		h.drawButton(state.minusRect, "-")
		h.drawButton(state.plusRect, "+")
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

// refreshControls lays out one +/- pair per control below the parameters.
func (h *HUD) refreshControls() {
	provider, ok := h.sim.(core.ParameterControlsProvider)
	if !ok || h.width <= 0 {
		h.controls = nil
		return
	}
	controls := provider.ParameterControls()
	h.controls = make([]hudControlState, len(controls))
	for i, ctrl := range controls {
		top := controlsTop + i*(buttonSize+buttonGap)
		plus := image.Rect(h.width-panelPadding-buttonSize, top, h.width-panelPadding, top+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, top, plus.Min.X-buttonGap, top+buttonSize)
		h.controls[i] = hudControlState{control: ctrl, minusRect: minus, plusRect: plus}
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || h.intSetter == nil {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	p := image.Pt(mx-h.panelOffsetX, my)
	for _, state := range h.controls {
		switch {
		case p.In(state.minusRect):
			h.adjust(state.control, -1)
		case p.In(state.plusRect):
			h.adjust(state.control, 1)
		default:
			continue
		}
		h.refreshControls()
		return
	}
}

func (h *HUD) adjust(ctrl core.ParameterControl, direction int) {
	current, ok := h.intValue(ctrl.Key)
	if !ok {
		return
	}
	step := ctrl.Step
	if step <= 0 {
		step = 1
	}
	target := min(max(current+direction*step, ctrl.Min), ctrl.Max)
	if target != current {
		h.intSetter.SetIntParameter(ctrl.Key, target)
	}
}

func (h *HUD) intValue(key string) (int, bool) {
	for _, group := range h.snapshot.Groups {
		for _, p := range group.Params {
			if p.Key == key && p.Type == core.ParamTypeInt {
				v, err := strconv.Atoi(p.Value)
				return v, err == nil
			}
		}
	}
	return 0, false
}

func (h *HUD) drawButton(rect image.Rectangle, label string) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(buttonColor)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()+bounds.Dy())/2
	text.Draw(h.panel, label, face, x, y, valueColor)
}

const (
	panelPadding   = 12
	lineHeight     = 16
	buttonSize     = 20
	buttonGap      = 6
	headerBaseline = 14
	controlsTop    = panelPadding
)
