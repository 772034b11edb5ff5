package render

// ScreenSpaceRenderer draws the listed layers without the scene camera, for UI
// It renders after post processors by default
type ScreenSpaceRenderer struct {
	RendererBase
	Layers []int
}

// NewScreenSpaceRenderer creates a UI renderer for the given layers
func NewScreenSpaceRenderer(renderOrder int, layers ...int) *ScreenSpaceRenderer {
	r := &ScreenSpaceRenderer{
		RendererBase: NewRendererBase(renderOrder, NewCamera(0, 0)),
		Layers:       layers,
	}
	r.WantsToRenderAfterPostProcessors = true
	r.WriteMask = MaskUI
	return r
}

func (r *ScreenSpaceRenderer) OnAddedToScene(s Scene) {
	r.RendererBase.OnAddedToScene(s)
	if r.Camera == nil {
		r.Camera = NewCamera(0, 0)
	}
	r.Camera.SetSize(s.SceneTargetSize())
}

func (r *ScreenSpaceRenderer) OnSceneBackBufferSizeChanged(width, height int) {
	r.RendererBase.OnSceneBackBufferSizeChanged(width, height)
	if r.Camera != nil {
		r.Camera.SetSize(width, height)
	}
}

func (r *ScreenSpaceRenderer) Render(s Scene) error {
	return r.RenderPass(s, r.Camera, layerItems(s.Renderables(), r.Layers), r.debugRender)
}

func (r *ScreenSpaceRenderer) debugRender(s Scene, cam *Camera) error {
	return debugLayers(&r.RendererBase, s, cam, r.Layers)
}
