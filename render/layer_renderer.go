package render

import (
	"fmt"
	"iter"
	"slices"
)

// RenderLayerRenderer draws only the listed layers, in list order
type RenderLayerRenderer struct {
	RendererBase
	Layers []int
}

// NewRenderLayerRenderer creates a renderer for the given layers
func NewRenderLayerRenderer(renderOrder int, cam *Camera, layers ...int) *RenderLayerRenderer {
	return &RenderLayerRenderer{
		RendererBase: NewRendererBase(renderOrder, cam),
		Layers:       layers,
	}
}

func (r *RenderLayerRenderer) Render(s Scene) error {
	cam := r.CameraFor(s)
	return r.RenderPass(s, cam, layerItems(s.Renderables(), r.Layers), r.debugRender)
}

// debugRender limits the overlay to renderables of the renderer layers
func (r *RenderLayerRenderer) debugRender(s Scene, cam *Camera) error {
	return debugLayers(&r.RendererBase, s, cam, r.Layers)
}

// RenderLayerExcludeRenderer draws every layer except the listed ones
type RenderLayerExcludeRenderer struct {
	RendererBase
	ExcludedLayers []int
}

// NewRenderLayerExcludeRenderer creates a renderer skipping the given layers
func NewRenderLayerExcludeRenderer(renderOrder int, cam *Camera, excluded ...int) *RenderLayerExcludeRenderer {
	return &RenderLayerExcludeRenderer{
		RendererBase:   NewRendererBase(renderOrder, cam),
		ExcludedLayers: excluded,
	}
}

func (r *RenderLayerExcludeRenderer) Render(s Scene) error {
	cam := r.CameraFor(s)
	items := func(yield func(Renderable) bool) {
		for _, rd := range s.Renderables().Items() {
			if r.excludes(rd) {
				continue
			}
			if !yield(rd) {
				return
			}
		}
	}
	return r.RenderPass(s, cam, items, r.debugRender)
}

func (r *RenderLayerExcludeRenderer) excludes(rd Renderable) bool {
	return slices.Contains(r.ExcludedLayers, rd.RenderLayer())
}

// debugRender draws every debug overlay except those of renderables on excluded layers
func (r *RenderLayerExcludeRenderer) debugRender(s Scene, cam *Camera) error {
	batcher := r.graphics.Batcher()
	if err := batcher.End(); err != nil {
		return fmt.Errorf("debug render: %w", err)
	}
	if err := batcher.Begin(DebugMaterial, cam); err != nil {
		return fmt.Errorf("debug render: %w", err)
	}
	for _, e := range s.Entities() {
		if !e.Enabled {
			continue
		}
		for _, c := range e.Components() {
			dr, ok := c.(DebugRenderer)
			if !ok || !dr.Enabled() {
				continue
			}
			if rd, ok := c.(Renderable); ok && r.excludes(rd) {
				continue
			}
			dr.DebugRender(batcher)
		}
	}
	return nil
}

func layerItems(list *RenderableList, layers []int) iter.Seq[Renderable] {
	return func(yield func(Renderable) bool) {
		for _, layer := range layers {
			for _, rd := range list.ForLayer(layer) {
				if !yield(rd) {
					return
				}
			}
		}
	}
}

func debugLayers(b *RendererBase, s Scene, cam *Camera, layers []int) error {
	batcher := b.graphics.Batcher()
	if err := batcher.End(); err != nil {
		return err
	}
	if err := batcher.Begin(DebugMaterial, cam); err != nil {
		return err
	}
	for rd := range layerItems(s.Renderables(), layers) {
		if rd.Enabled() {
			rd.DebugRender(batcher)
		}
	}
	return nil
}
