package render

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/lixenwraith/vi-scene/engine"
)

// ErrRendererDetached is returned when a renderer draws before being added to a scene
var ErrRendererDetached = errors.New("renderer is not added to a scene")

// Scene is the view of a scene that renderers and post processors draw from
type Scene interface {
	Graphics() *Graphics
	Camera() *Camera
	Renderables() *RenderableList
	Entities() []*engine.Entity
	// SceneTargetSize is the design resolution renderers draw at
	SceneTargetSize() (width, height int)
}

// Renderer issues draw calls for a batch of renderables each frame
type Renderer interface {
	// Base exposes the shared renderer state
	Base() *RendererBase
	OnAddedToScene(s Scene)
	Render(s Scene) error
	OnSceneBackBufferSizeChanged(width, height int)
	Unload()
}

// RendererBase holds the configuration and batch lifecycle shared by all renderers
type RendererBase struct {
	// Material is used for renderables without their own material
	Material *Material
	// Camera overrides the scene camera when non-nil
	Camera *Camera
	// RenderOrder sorts renderers, lower first, ties keep insertion order
	RenderOrder int
	// RenderTarget redirects output offscreen when non-nil
	RenderTarget *RenderTarget
	// RenderTargetClearColor is applied to RenderTarget on every BeginRender
	RenderTargetClearColor RGB
	// ShouldDebugRender draws debug overlays when Graphics.DebugRenderEnabled is set
	ShouldDebugRender bool
	// WantsToRenderAfterPostProcessors renders after the scene post processors
	WantsToRenderAfterPostProcessors bool
	// WriteMask is stamped on cells drawn with a material that carries no mask
	WriteMask uint8

	graphics        *Graphics
	currentMaterial *Material
}

// NewRendererBase creates renderer state; cam may be nil to follow the scene camera
func NewRendererBase(renderOrder int, cam *Camera) RendererBase {
	return RendererBase{
		Material:          DefaultMaterial,
		Camera:            cam,
		RenderOrder:       renderOrder,
		ShouldDebugRender: true,
		WriteMask:         MaskWorld,
	}
}

func (b *RendererBase) Base() *RendererBase {
	return b
}

// Graphics returns the graphics of the owning scene, nil before OnAddedToScene
func (b *RendererBase) Graphics() *Graphics {
	return b.graphics
}

// CameraFor returns the renderer camera or the scene camera
func (b *RendererBase) CameraFor(s Scene) *Camera {
	if b.Camera != nil {
		return b.Camera
	}
	return s.Camera()
}

// OnAddedToScene binds the renderer to the scene graphics and sizes its render target
func (b *RendererBase) OnAddedToScene(s Scene) {
	b.graphics = s.Graphics()
	if b.RenderTarget != nil {
		w, h := s.SceneTargetSize()
		b.resizeTarget(w, h)
	}
}

// Unload releases the render target
func (b *RendererBase) Unload() {
	if b.RenderTarget != nil {
		b.RenderTarget.Release()
		b.RenderTarget = nil
	}
	b.graphics = nil
}

// BeginRender redirects output to the render target if set, clears it,
// and opens a batch with the renderer material
func (b *RendererBase) BeginRender(cam *Camera) error {
	if b.graphics == nil {
		return ErrRendererDetached
	}
	if b.RenderTarget != nil {
		b.graphics.SetRenderTarget(b.RenderTarget)
		b.graphics.Clear(b.RenderTargetClearColor)
	}

	b.currentMaterial = b.baseMaterial()
	batcher := b.graphics.Batcher()
	batcher.DefaultMask = b.WriteMask
	if err := batcher.Begin(b.currentMaterial, cam); err != nil {
		return fmt.Errorf("begin render: %w", err)
	}
	return nil
}

// RenderAfterStateCheck switches material when the renderable needs a different one,
// flushing the batch, then draws the renderable
func (b *RendererBase) RenderAfterStateCheck(r Renderable, cam *Camera) error {
	if m := r.Material(); m != nil && m != b.currentMaterial {
		b.currentMaterial = m
		m.onPreRender(cam)
		if err := b.flushBatch(cam); err != nil {
			return err
		}
	} else if m == nil && b.currentMaterial != b.baseMaterial() {
		b.currentMaterial = b.baseMaterial()
		if err := b.flushBatch(cam); err != nil {
			return err
		}
	}
	r.Render(b.graphics.Batcher(), cam)
	return nil
}

func (b *RendererBase) baseMaterial() *Material {
	if b.Material == nil {
		return DefaultMaterial
	}
	return b.Material
}

// flushBatch ends the open batch and begins a new one with the current material
func (b *RendererBase) flushBatch(cam *Camera) error {
	batcher := b.graphics.Batcher()
	if err := batcher.End(); err != nil {
		return fmt.Errorf("flush batch: %w", err)
	}
	if err := batcher.Begin(b.currentMaterial, cam); err != nil {
		return fmt.Errorf("flush batch: %w", err)
	}
	return nil
}

// EndRender closes the batch
func (b *RendererBase) EndRender() error {
	if b.graphics == nil {
		return ErrRendererDetached
	}
	if err := b.graphics.Batcher().End(); err != nil {
		return fmt.Errorf("end render: %w", err)
	}
	return nil
}

// DebugEnabled reports whether debug overlays should draw this frame
func (b *RendererBase) DebugEnabled() bool {
	return b.ShouldDebugRender && b.graphics != nil && b.graphics.DebugRenderEnabled
}

// DebugRender restarts the batch with the debug material and draws the debug overlay
// of every enabled component of every enabled entity
func (b *RendererBase) DebugRender(s Scene, cam *Camera) error {
	batcher := b.graphics.Batcher()
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
			if dr, ok := c.(DebugRenderer); ok && dr.Enabled() {
				dr.DebugRender(batcher)
			}
		}
	}
	return nil
}

// OnSceneBackBufferSizeChanged resizes the render target per its resize behavior
func (b *RendererBase) OnSceneBackBufferSizeChanged(width, height int) {
	if b.RenderTarget != nil {
		b.resizeTarget(width, height)
	}
}

func (b *RendererBase) resizeTarget(sceneW, sceneH int) {
	t := b.RenderTarget
	switch t.ResizeBehavior {
	case ResizeToSceneTarget:
		t.Resize(sceneW, sceneH)
	case ResizeToScreen:
		if b.graphics != nil {
			t.Resize(b.graphics.ScreenSize())
		}
	}
}

// CompareRenderers orders renderers by RenderOrder
func CompareRenderers(a, b Renderer) int {
	return cmp.Compare(a.Base().RenderOrder, b.Base().RenderOrder)
}

// SortRenderers sorts by RenderOrder keeping insertion order for ties
func SortRenderers(renderers []Renderer) {
	slices.SortStableFunc(renderers, CompareRenderers)
}

// RenderPass draws every enabled renderable from items that is visible from cam,
// then the debug overlay when enabled. The batch is always closed on return
func (b *RendererBase) RenderPass(s Scene, cam *Camera, items iter.Seq[Renderable], debug func(s Scene, cam *Camera) error) (err error) {
	if err := b.BeginRender(cam); err != nil {
		return err
	}
	defer func() {
		if endErr := b.EndRender(); err == nil {
			err = endErr
		}
	}()

	for r := range items {
		if !r.Enabled() || !r.IsVisibleFromCamera(cam) {
			continue
		}
		if err := b.RenderAfterStateCheck(r, cam); err != nil {
			return err
		}
	}

	if b.DebugEnabled() {
		if debug == nil {
			debug = b.DebugRender
		}
		return debug(s, cam)
	}
	return nil
}
