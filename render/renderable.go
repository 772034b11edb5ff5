package render

import (
	"slices"

	"github.com/lixenwraith/vi-scene/core"
	"github.com/lixenwraith/vi-scene/engine"
)

// DebugRenderer is implemented by components that draw debug overlays
type DebugRenderer interface {
	engine.Component
	DebugRender(b *Batcher)
}

// Renderable is a component that issues draw calls for a renderer
type Renderable interface {
	DebugRenderer

	// RenderLayer groups renderables; higher layers draw first, behind lower ones
	RenderLayer() int
	// LayerDepth orders within a layer; higher depth draws first, behind lower ones
	LayerDepth() float64
	// Material overrides the renderer material when non-nil
	Material() *Material
	// Bounds is the world area covered
	Bounds() core.Area
	IsVisibleFromCamera(cam *Camera) bool
	Render(b *Batcher, cam *Camera)
}

type listBinder interface {
	bindList(l *RenderableList, owner Renderable)
}

// RenderableBase carries the layer, depth and material state of a renderable
// Embedders implement Bounds, Render and DebugRender
type RenderableBase struct {
	engine.ComponentBase

	layer    int
	depth    float64
	material *Material
	list     *RenderableList
	owner    Renderable
}

func (r *RenderableBase) RenderLayer() int        { return r.layer }
func (r *RenderableBase) LayerDepth() float64     { return r.depth }
func (r *RenderableBase) Material() *Material     { return r.material }
func (r *RenderableBase) SetMaterial(m *Material) { r.material = m }

// SetRenderLayer moves the renderable to another layer and marks its list for resort
func (r *RenderableBase) SetRenderLayer(layer int) {
	if r.layer == layer {
		return
	}
	if r.list != nil {
		r.list.updateLayer(r.owner, r.layer, layer)
	}
	r.layer = layer
}

// SetLayerDepth changes the in-layer order, clamped to [0, 1]
func (r *RenderableBase) SetLayerDepth(depth float64) {
	depth = min(max(depth, 0), 1)
	if r.depth == depth {
		return
	}
	r.depth = depth
	if r.list != nil {
		r.list.MarkDirty()
	}
}

func (r *RenderableBase) bindList(l *RenderableList, owner Renderable) {
	r.list = l
	r.owner = owner
}

// VisibleFromCamera is the default culling test on a renderable's bounds
func VisibleFromCamera(r Renderable, cam *Camera) bool {
	return cam.IsVisible(r.Bounds())
}

// DrawBounds is the default debug overlay: the bounds outline
func DrawBounds(b *Batcher, r Renderable, color RGB) {
	b.DrawHollowRect(r.Bounds(), color)
}

// RenderableList keeps renderables sorted for drawing and indexed by layer
type RenderableList struct {
	items   []Renderable
	byLayer map[int][]Renderable
	dirty   bool
	// layer index entries needing a resort
	dirtyLayers map[int]struct{}
}

// NewRenderableList creates an empty list
func NewRenderableList() *RenderableList {
	return &RenderableList{
		byLayer:     make(map[int][]Renderable),
		dirtyLayers: make(map[int]struct{}),
	}
}

// Add appends a renderable, adding twice is a no-op
func (l *RenderableList) Add(r Renderable) {
	if slices.Contains(l.items, r) {
		return
	}
	l.items = append(l.items, r)
	l.byLayer[r.RenderLayer()] = append(l.byLayer[r.RenderLayer()], r)
	if b, ok := r.(listBinder); ok {
		b.bindList(l, r)
	}
	l.markLayer(r.RenderLayer())
}

// Remove deletes a renderable, returns false if absent
func (l *RenderableList) Remove(r Renderable) bool {
	idx := slices.Index(l.items, r)
	if idx < 0 {
		return false
	}
	l.items = slices.Delete(l.items, idx, idx+1)
	layer := l.byLayer[r.RenderLayer()]
	if li := slices.Index(layer, r); li >= 0 {
		l.byLayer[r.RenderLayer()] = slices.Delete(layer, li, li+1)
	}
	if b, ok := r.(listBinder); ok {
		b.bindList(nil, nil)
	}
	return true
}

// Contains reports membership
func (l *RenderableList) Contains(r Renderable) bool {
	return slices.Contains(l.items, r)
}

// Count returns number of renderables
func (l *RenderableList) Count() int {
	return len(l.items)
}

// MarkDirty forces a full resort before the next read
func (l *RenderableList) MarkDirty() {
	l.dirty = true
	for layer := range l.byLayer {
		l.dirtyLayers[layer] = struct{}{}
	}
}

func (l *RenderableList) markLayer(layer int) {
	l.dirty = true
	l.dirtyLayers[layer] = struct{}{}
}

func (l *RenderableList) updateLayer(r Renderable, from, to int) {
	layer := l.byLayer[from]
	if li := slices.Index(layer, r); li >= 0 {
		l.byLayer[from] = slices.Delete(layer, li, li+1)
	}
	l.byLayer[to] = append(l.byLayer[to], r)
	l.markLayer(to)
}

// Items returns all renderables in draw order; the slice must not be modified
func (l *RenderableList) Items() []Renderable {
	if l.dirty {
		slices.SortStableFunc(l.items, compareRenderables)
		l.dirty = false
	}
	return l.items
}

// ForLayer returns the renderables of one layer in draw order
func (l *RenderableList) ForLayer(layer int) []Renderable {
	items := l.byLayer[layer]
	if _, ok := l.dirtyLayers[layer]; ok {
		slices.SortStableFunc(items, compareRenderables)
		delete(l.dirtyLayers, layer)
	}
	return items
}

// compareRenderables sorts higher layers then higher depths first
func compareRenderables(a, b Renderable) int {
	if a.RenderLayer() != b.RenderLayer() {
		if a.RenderLayer() > b.RenderLayer() {
			return -1
		}
		return 1
	}
	switch {
	case a.LayerDepth() > b.LayerDepth():
		return -1
	case a.LayerDepth() < b.LayerDepth():
		return 1
	}
	return 0
}
