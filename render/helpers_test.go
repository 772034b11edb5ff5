package render

import (
	"github.com/lixenwraith/vi-scene/core"
	"github.com/lixenwraith/vi-scene/engine"
	"github.com/lixenwraith/vi-scene/terminal"
)

// fakeScene is a minimal Scene over headless graphics
type fakeScene struct {
	graphics    *Graphics
	camera      *Camera
	renderables *RenderableList
	world       *engine.World
	w, h        int
}

func newFakeScene(w, h int) *fakeScene {
	s := &fakeScene{
		graphics:    NewHeadlessGraphics(w, h),
		camera:      NewCamera(w, h),
		renderables: NewRenderableList(),
		world:       engine.NewWorld(),
		w:           w,
		h:           h,
	}
	return s
}

func (s *fakeScene) Graphics() *Graphics          { return s.graphics }
func (s *fakeScene) Camera() *Camera              { return s.camera }
func (s *fakeScene) Renderables() *RenderableList { return s.renderables }
func (s *fakeScene) Entities() []*engine.Entity   { return s.world.Entities() }
func (s *fakeScene) SceneTargetSize() (int, int)  { return s.w, s.h }

// add creates an entity at x, y carrying r
func (s *fakeScene) add(x, y int, r Renderable) *engine.Entity {
	e := s.world.CreateEntity("")
	e.Position = core.Point{X: x, Y: y}
	s.world.AddComponent(e, r)
	s.renderables.Add(r)
	return e
}

// testRenderable draws one rune at its entity position
type testRenderable struct {
	RenderableBase
	r        rune
	fg       RGB
	renders  int
	debugged int
}

func newTestRenderable(r rune, layer int) *testRenderable {
	t := &testRenderable{r: r, fg: RGBWhite}
	t.SetRenderLayer(layer)
	return t
}

func (t *testRenderable) Bounds() core.Area {
	p := t.Position()
	return core.Area{X: p.X, Y: p.Y, Width: 1, Height: 1}
}

func (t *testRenderable) IsVisibleFromCamera(cam *Camera) bool {
	return VisibleFromCamera(t, cam)
}

func (t *testRenderable) Render(b *Batcher, cam *Camera) {
	t.renders++
	p := t.Position()
	b.DrawRune(p.X, p.Y, t.r, t.fg, terminal.AttrNone)
}

func (t *testRenderable) DebugRender(b *Batcher) {
	t.debugged++
	p := t.Position()
	b.DrawRune(p.X, p.Y, '#', RGB{R: 255}, terminal.AttrNone)
}

// runeAt reads the rune of a target cell
func runeAt(t *RenderTarget, x, y int) rune {
	c, _ := t.Cell(x, y)
	return c.Rune
}

// debugOnly draws a debug overlay without being renderable
type debugOnly struct {
	engine.ComponentBase
	debugged int
}

func (d *debugOnly) DebugRender(b *Batcher) {
	d.debugged++
	p := d.Position()
	b.DrawRune(p.X, p.Y, '+', RGB{G: 255}, terminal.AttrNone)
}
