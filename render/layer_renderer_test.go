package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-scene/core"
)

func TestRenderLayerRendererDrawsOnlyItsLayers(t *testing.T) {
	s := newFakeScene(4, 1)
	r := NewRenderLayerRenderer(0, nil, 2, 1)
	r.OnAddedToScene(s)

	one := newTestRenderable('1', 1)
	two := newTestRenderable('2', 2)
	three := newTestRenderable('3', 3)
	s.add(0, 0, one)
	s.add(0, 0, two)
	s.add(1, 0, three)

	require.NoError(t, r.Render(s))

	assert.Equal(t, 1, one.renders)
	assert.Equal(t, 1, two.renders)
	assert.Zero(t, three.renders)
	assert.Equal(t, '1', runeAt(s.graphics.BackBuffer(), 0, 0), "layers draw in list order")
}

func TestRenderLayerRendererDebugLimitedToLayers(t *testing.T) {
	s := newFakeScene(4, 1)
	s.graphics.DebugRenderEnabled = true
	r := NewRenderLayerRenderer(0, nil, 1)
	r.OnAddedToScene(s)

	in := newTestRenderable('i', 1)
	out := newTestRenderable('o', 2)
	s.add(0, 0, in)
	s.add(1, 0, out)

	require.NoError(t, r.Render(s))
	assert.Equal(t, 1, in.debugged)
	assert.Zero(t, out.debugged)
}

func TestRenderLayerExcludeRenderer(t *testing.T) {
	s := newFakeScene(4, 1)
	r := NewRenderLayerExcludeRenderer(0, nil, 3)
	r.OnAddedToScene(s)

	one := newTestRenderable('1', 1)
	three := newTestRenderable('3', 3)
	s.add(0, 0, one)
	s.add(1, 0, three)

	require.NoError(t, r.Render(s))
	assert.Equal(t, 1, one.renders)
	assert.Zero(t, three.renders)
}

func TestRenderLayerExcludeRendererDebugSkipsExcludedLayers(t *testing.T) {
	s := newFakeScene(8, 3)
	s.graphics.DebugRenderEnabled = true
	r := NewRenderLayerExcludeRenderer(0, nil, 100)
	r.OnAddedToScene(s)

	world := newTestRenderable('w', 0)
	hud := newTestRenderable('h', 100)
	s.add(1, 1, world)
	s.add(5, 1, hud)
	collider := &debugOnly{}
	e := s.world.CreateEntity("collider")
	e.Position = core.Point{X: 3, Y: 2}
	s.world.AddComponent(e, collider)

	require.NoError(t, r.Render(s))

	bb := s.graphics.BackBuffer()
	assert.Equal(t, 1, world.debugged)
	assert.Zero(t, hud.renders)
	assert.Zero(t, hud.debugged, "excluded layer draws no debug overlay")
	assert.NotEqual(t, '#', runeAt(bb, 5, 1))
	assert.Equal(t, 1, collider.debugged, "non-renderable overlays still draw")
	assert.Equal(t, '+', runeAt(bb, 3, 2))
}

func TestScreenSpaceRendererDebugLimitedToLayers(t *testing.T) {
	s := newFakeScene(8, 3)
	s.graphics.DebugRenderEnabled = true
	r := NewScreenSpaceRenderer(OrderScreenSpace, 100)
	r.OnAddedToScene(s)

	hud := newTestRenderable('h', 100)
	world := newTestRenderable('w', 0)
	s.add(5, 1, hud)
	s.add(1, 1, world)
	overlay := &debugOnly{}
	s.world.AddComponent(s.world.CreateEntity("collider"), overlay)

	require.NoError(t, r.Render(s))

	assert.Equal(t, 1, hud.debugged)
	assert.Equal(t, '#', runeAt(s.graphics.BackBuffer(), 5, 1))
	assert.Zero(t, world.debugged)
	assert.Zero(t, overlay.debugged)
}

func TestScreenSpaceRendererIgnoresSceneCamera(t *testing.T) {
	s := newFakeScene(6, 3)
	s.camera.Position = core.Point{X: 100, Y: 100}
	r := NewScreenSpaceRenderer(OrderScreenSpace, 7)
	r.OnAddedToScene(s)

	assert.True(t, r.WantsToRenderAfterPostProcessors)
	w, h := r.Camera.Size()
	assert.Equal(t, 6, w)
	assert.Equal(t, 3, h)

	hud := newTestRenderable('h', 7)
	world := newTestRenderable('w', 0)
	s.add(2, 1, hud)
	s.add(101, 101, world)

	require.NoError(t, r.Render(s))

	bb := s.graphics.BackBuffer()
	assert.Equal(t, 'h', runeAt(bb, 2, 1))
	assert.Equal(t, MaskUI, bb.Mask(2, 1))
	assert.Zero(t, world.renders)

	r.OnSceneBackBufferSizeChanged(20, 10)
	w, h = r.Camera.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)
}
