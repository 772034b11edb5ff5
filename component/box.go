package component

import (
	"github.com/lixenwraith/vi-scene/core"
	"github.com/lixenwraith/vi-scene/render"
	"github.com/lixenwraith/vi-scene/terminal"
)

// Box is a rectangle with an optional fill and border, anchored at its entity position
type Box struct {
	render.RenderableBase

	Width, Height int
	Fill          *terminal.RGB
	Border        *terminal.RGB
}

// NewBox creates a box on the given render layer
func NewBox(width, height int, layer int) *Box {
	b := &Box{Width: width, Height: height}
	b.SetRenderLayer(layer)
	return b
}

// WithFill sets the fill color
func (x *Box) WithFill(c terminal.RGB) *Box {
	x.Fill = &c
	return x
}

// WithBorder sets the border color
func (x *Box) WithBorder(c terminal.RGB) *Box {
	x.Border = &c
	return x
}

func (x *Box) Bounds() core.Area {
	p := x.Position()
	return core.Area{X: p.X, Y: p.Y, Width: x.Width, Height: x.Height}
}

func (x *Box) IsVisibleFromCamera(cam *render.Camera) bool {
	return render.VisibleFromCamera(x, cam)
}

func (x *Box) Render(b *render.Batcher, cam *render.Camera) {
	a := x.Bounds()
	if x.Fill != nil {
		b.FillRect(a, *x.Fill)
	}
	if x.Border != nil {
		b.DrawHollowRect(a, *x.Border)
	}
}

func (x *Box) DebugRender(b *render.Batcher) {
	render.DrawBounds(b, x, debugColor)
}
