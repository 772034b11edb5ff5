package component

import (
	"github.com/lixenwraith/vi-scene/core"
	"github.com/lixenwraith/vi-scene/render"
	"github.com/lixenwraith/vi-scene/terminal"
)

// debugColor is the overlay color for renderable bounds
var debugColor = terminal.RGB{R: 255, G: 0, B: 255}

// Glyph is a single-cell sprite at its entity position plus Offset
type Glyph struct {
	render.RenderableBase

	Rune   rune
	Fg     terminal.RGB
	Bg     *terminal.RGB // nil keeps the background underneath
	Attrs  terminal.Attr
	Offset core.Point
}

// NewGlyph creates a glyph on the given render layer
func NewGlyph(r rune, fg terminal.RGB, layer int) *Glyph {
	g := &Glyph{Rune: r, Fg: fg}
	g.SetRenderLayer(layer)
	return g
}

func (g *Glyph) Bounds() core.Area {
	p := g.Position().Add(g.Offset)
	return core.Area{X: p.X, Y: p.Y, Width: 1, Height: 1}
}

func (g *Glyph) IsVisibleFromCamera(cam *render.Camera) bool {
	return render.VisibleFromCamera(g, cam)
}

func (g *Glyph) Render(b *render.Batcher, cam *render.Camera) {
	p := g.Position().Add(g.Offset)
	if g.Bg != nil {
		b.DrawCell(p.X, p.Y, g.Rune, g.Fg, *g.Bg, g.Attrs)
		return
	}
	b.DrawRune(p.X, p.Y, g.Rune, g.Fg, g.Attrs)
}

func (g *Glyph) DebugRender(b *render.Batcher) {
	p := g.Position().Add(g.Offset)
	b.FillRect(core.Area{X: p.X, Y: p.Y, Width: 1, Height: 1}, debugColor)
}
