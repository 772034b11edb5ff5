package component

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-scene/core"
	"github.com/lixenwraith/vi-scene/render"
	"github.com/lixenwraith/vi-scene/terminal"
)

// Text draws one or more lines starting at its entity position plus Offset
type Text struct {
	render.RenderableBase

	Content string
	Fg      terminal.RGB
	Attrs   terminal.Attr
	Offset  core.Point
}

// NewText creates a text renderable on the given render layer
func NewText(content string, fg terminal.RGB, layer int) *Text {
	t := &Text{Content: content, Fg: fg}
	t.SetRenderLayer(layer)
	return t
}

func (t *Text) lines() []string {
	return strings.Split(t.Content, "\n")
}

func (t *Text) Bounds() core.Area {
	lines := t.lines()
	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l))
	}
	p := t.Position().Add(t.Offset)
	return core.Area{X: p.X, Y: p.Y, Width: width, Height: len(lines)}
}

func (t *Text) IsVisibleFromCamera(cam *render.Camera) bool {
	return render.VisibleFromCamera(t, cam)
}

func (t *Text) Render(b *render.Batcher, cam *render.Camera) {
	p := t.Position().Add(t.Offset)
	for i, line := range t.lines() {
		b.DrawString(p.X, p.Y+i, line, t.Fg, t.Attrs)
	}
}

func (t *Text) DebugRender(b *render.Batcher) {
	render.DrawBounds(b, t, debugColor)
}
