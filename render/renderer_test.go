package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-scene/core"
)

func TestRendererBaseDefaults(t *testing.T) {
	b := NewRendererBase(5, nil)
	assert.Same(t, DefaultMaterial, b.Material)
	assert.Equal(t, 5, b.RenderOrder)
	assert.True(t, b.ShouldDebugRender)
	assert.False(t, b.WantsToRenderAfterPostProcessors)
	assert.Nil(t, b.RenderTarget)
	assert.Nil(t, b.Graphics())
}

func TestRendererDetached(t *testing.T) {
	r := NewDefaultRenderer(0, nil)
	require.ErrorIs(t, r.BeginRender(nil), ErrRendererDetached)
	require.ErrorIs(t, r.EndRender(), ErrRendererDetached)
}

func TestCameraForFallsBackToScene(t *testing.T) {
	s := newFakeScene(4, 4)
	r := NewDefaultRenderer(0, nil)
	assert.Same(t, s.camera, r.CameraFor(s))

	own := NewCamera(2, 2)
	r.Camera = own
	assert.Same(t, own, r.CameraFor(s))
}

func TestBeginRenderRedirectsAndClearsTarget(t *testing.T) {
	s := newFakeScene(4, 4)
	r := NewDefaultRenderer(0, nil)
	r.RenderTarget = NewRenderTarget(2, 2)
	r.RenderTarget.Set(0, 0, Cell{Rune: 'z'}, BlendReplace, 1, MaskWorld)
	r.RenderTargetClearColor = RGB{G: 42}
	r.OnAddedToScene(s)

	require.NoError(t, r.BeginRender(s.camera))
	assert.Same(t, r.RenderTarget, s.graphics.RenderTarget())
	c, touched := r.RenderTarget.Cell(0, 0)
	assert.False(t, touched)
	assert.Equal(t, RGB{G: 42}, c.Bg)
	assert.True(t, s.graphics.Batcher().IsBegun())
	assert.Same(t, DefaultMaterial, s.graphics.Batcher().Material())

	require.NoError(t, r.EndRender())
	assert.False(t, s.graphics.Batcher().IsBegun())
}

func TestBeginRenderTwiceFails(t *testing.T) {
	s := newFakeScene(4, 4)
	r := NewDefaultRenderer(0, nil)
	r.OnAddedToScene(s)

	require.NoError(t, r.BeginRender(nil))
	require.ErrorIs(t, r.BeginRender(nil), ErrBatchBegun)
}

func TestRenderAfterStateCheckFlushesOnMaterialChange(t *testing.T) {
	s := newFakeScene(8, 1)
	r := NewDefaultRenderer(0, nil)
	r.OnAddedToScene(s)

	special := NewMaterial(BlendAdd)
	var preRendered *Camera
	special.PreRender = func(cam *Camera) { preRendered = cam }

	plain1 := newTestRenderable('a', 0)
	custom := newTestRenderable('b', 0)
	custom.SetMaterial(special)
	plain2 := newTestRenderable('c', 0)
	s.add(0, 0, plain1)
	s.add(1, 0, custom)
	s.add(2, 0, plain2)

	batcher := s.graphics.Batcher()
	require.NoError(t, r.BeginRender(s.camera))

	require.NoError(t, r.RenderAfterStateCheck(plain1, s.camera))
	assert.Same(t, DefaultMaterial, batcher.Material())
	assert.Zero(t, batcher.Batches())

	require.NoError(t, r.RenderAfterStateCheck(custom, s.camera))
	assert.Same(t, special, batcher.Material())
	assert.Same(t, s.camera, preRendered)
	assert.Equal(t, 1, batcher.Batches(), "switching material flushes the batch")

	require.NoError(t, r.RenderAfterStateCheck(plain2, s.camera))
	assert.Same(t, DefaultMaterial, batcher.Material(), "renderable without material restores renderer material")
	assert.Equal(t, 2, batcher.Batches())

	require.NoError(t, r.EndRender())
	assert.Equal(t, 3, batcher.Batches())

	bb := s.graphics.BackBuffer()
	assert.Equal(t, 'a', runeAt(bb, 0, 0))
	assert.Equal(t, 'b', runeAt(bb, 1, 0))
	assert.Equal(t, 'c', runeAt(bb, 2, 0))
}

func TestRenderAfterStateCheckSameMaterialNoFlush(t *testing.T) {
	s := newFakeScene(4, 1)
	r := NewDefaultRenderer(0, nil)
	shared := NewMaterial(BlendReplace)
	r.Material = shared
	r.OnAddedToScene(s)

	a := newTestRenderable('a', 0)
	a.SetMaterial(shared)
	s.add(0, 0, a)

	require.NoError(t, r.BeginRender(nil))
	require.NoError(t, r.RenderAfterStateCheck(a, nil))
	assert.Zero(t, s.graphics.Batcher().Batches())
	require.NoError(t, r.EndRender())
}

func TestDefaultRendererRender(t *testing.T) {
	s := newFakeScene(4, 2)
	s.camera.Position = core.Point{X: 10, Y: 0}
	r := NewDefaultRenderer(0, nil)
	r.OnAddedToScene(s)

	visible := newTestRenderable('v', 0)
	hidden := newTestRenderable('h', 0)
	disabled := newTestRenderable('d', 0)
	s.add(11, 1, visible)
	s.add(0, 0, hidden)
	s.add(12, 0, disabled)
	disabled.SetEnabled(false)

	require.NoError(t, r.Render(s))

	assert.Equal(t, 1, visible.renders)
	assert.Zero(t, hidden.renders, "culled by camera")
	assert.Zero(t, disabled.renders)
	assert.Equal(t, 'v', runeAt(s.graphics.BackBuffer(), 1, 1))
	assert.False(t, s.graphics.Batcher().IsBegun())
}

func TestDebugRenderRequiresBothSwitches(t *testing.T) {
	tests := []struct {
		name       string
		hostDebug  bool
		rendDebug  bool
		wantDebugs int
	}{
		{"Both on", true, true, 1},
		{"Host off", false, true, 0},
		{"Renderer off", true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeScene(4, 4)
			s.graphics.DebugRenderEnabled = tt.hostDebug
			r := NewDefaultRenderer(0, nil)
			r.ShouldDebugRender = tt.rendDebug
			r.OnAddedToScene(s)

			tr := newTestRenderable('a', 0)
			s.add(1, 1, tr)

			require.NoError(t, r.Render(s))
			assert.Equal(t, tt.wantDebugs, tr.debugged)
			if tt.wantDebugs > 0 {
				assert.Equal(t, '#', runeAt(s.graphics.BackBuffer(), 1, 1))
				assert.Equal(t, MaskDebug, s.graphics.BackBuffer().Mask(1, 1))
			}
		})
	}
}

func TestDebugRenderSkipsDisabledEntities(t *testing.T) {
	s := newFakeScene(4, 4)
	s.graphics.DebugRenderEnabled = true
	r := NewDefaultRenderer(0, nil)
	r.OnAddedToScene(s)

	tr := newTestRenderable('a', 0)
	e := s.add(1, 1, tr)
	e.Enabled = false

	require.NoError(t, r.Render(s))
	assert.Zero(t, tr.renders)
	assert.Zero(t, tr.debugged)
}

func TestRendererResizeBehavior(t *testing.T) {
	s := newFakeScene(10, 6)
	s.graphics.Resize(30, 20)

	fixed := NewDefaultRenderer(0, nil)
	fixed.RenderTarget = NewRenderTarget(3, 3)
	scene := NewDefaultRenderer(0, nil)
	scene.RenderTarget = NewSizedRenderTarget(ResizeToSceneTarget)
	screen := NewDefaultRenderer(0, nil)
	screen.RenderTarget = NewSizedRenderTarget(ResizeToScreen)

	for _, r := range []*DefaultRenderer{fixed, scene, screen} {
		r.OnAddedToScene(s)
	}
	assert.Equal(t, 3, fixed.RenderTarget.Width())
	assert.Equal(t, 10, scene.RenderTarget.Width())
	assert.Equal(t, 30, screen.RenderTarget.Width())

	s.graphics.Resize(40, 25)
	for _, r := range []*DefaultRenderer{fixed, scene, screen} {
		r.OnSceneBackBufferSizeChanged(12, 7)
	}
	assert.Equal(t, 3, fixed.RenderTarget.Height())
	assert.Equal(t, 7, scene.RenderTarget.Height())
	assert.Equal(t, 25, screen.RenderTarget.Height())
}

func TestRendererUnloadReleasesTarget(t *testing.T) {
	s := newFakeScene(4, 4)
	r := NewDefaultRenderer(0, nil)
	rt := NewRenderTarget(4, 4)
	r.RenderTarget = rt
	r.OnAddedToScene(s)

	r.Unload()
	assert.Nil(t, r.RenderTarget)
	assert.Zero(t, rt.Width())
	assert.Nil(t, r.Graphics())
	r.OnSceneBackBufferSizeChanged(8, 8)
}

func TestSortRenderersStable(t *testing.T) {
	a := NewDefaultRenderer(10, nil)
	b := NewDefaultRenderer(-5, nil)
	c := NewDefaultRenderer(10, nil)
	d := NewDefaultRenderer(0, nil)

	list := []Renderer{a, b, c, d}
	SortRenderers(list)
	assert.Equal(t, []Renderer{b, d, a, c}, list)

	assert.Negative(t, CompareRenderers(b, a))
	assert.Zero(t, CompareRenderers(a, c))
}
