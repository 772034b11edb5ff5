package component

import (
	"github.com/lixenwraith/vi-scene/core"
	"github.com/lixenwraith/vi-scene/render"
)

// TargetView composites another renderer's render target at its entity position
// The source is read when drawn, so its renderer must run earlier in the frame
type TargetView struct {
	render.RenderableBase

	Source *render.RenderTarget
}

// NewTargetView creates a view of src on the given render layer
func NewTargetView(src *render.RenderTarget, layer int) *TargetView {
	v := &TargetView{Source: src}
	v.SetRenderLayer(layer)
	return v
}

func (v *TargetView) Bounds() core.Area {
	p := v.Position()
	if v.Source == nil {
		return core.Area{X: p.X, Y: p.Y}
	}
	w, h := v.Source.Size()
	return core.Area{X: p.X, Y: p.Y, Width: w, Height: h}
}

func (v *TargetView) IsVisibleFromCamera(cam *render.Camera) bool {
	return v.Source != nil && render.VisibleFromCamera(v, cam)
}

func (v *TargetView) Render(b *render.Batcher, cam *render.Camera) {
	p := v.Position()
	b.DrawTarget(v.Source, p.X, p.Y)
}

func (v *TargetView) DebugRender(b *render.Batcher) {
	render.DrawBounds(b, v, debugColor)
}
