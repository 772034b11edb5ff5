package render

import "slices"

// DefaultRenderer draws every renderable of the scene with the scene or renderer camera
type DefaultRenderer struct {
	RendererBase
}

// NewDefaultRenderer creates a renderer for all renderables; cam may be nil
func NewDefaultRenderer(renderOrder int, cam *Camera) *DefaultRenderer {
	return &DefaultRenderer{RendererBase: NewRendererBase(renderOrder, cam)}
}

func (r *DefaultRenderer) Render(s Scene) error {
	cam := r.CameraFor(s)
	return r.RenderPass(s, cam, slices.Values(s.Renderables().Items()), nil)
}
