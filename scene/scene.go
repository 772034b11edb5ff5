// Package scene owns entities, the renderable list and the ordered renderer pipeline.
package scene

import (
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-scene/engine"
	"github.com/lixenwraith/vi-scene/logger"
	"github.com/lixenwraith/vi-scene/render"
	"github.com/lixenwraith/vi-scene/status"
)

// ErrSceneNotStarted is returned by Render before Begin or after End
var ErrSceneNotStarted = errors.New("scene not started")

// Frame metrics recorded by Render
const (
	MetricFrames    = "render.frames"
	MetricBatches   = "render.batches"
	MetricDrawCalls = "render.draw_calls"
	MetricFrameTime = "render.frame_ms"
)

// ResolutionPolicy decides how the scene target is placed on the screen
type ResolutionPolicy uint8

const (
	// PolicyNone draws the scene target 1:1 at the screen origin
	PolicyNone ResolutionPolicy = iota
	// PolicyCenter centers the scene target, letterboxing or cropping evenly
	PolicyCenter
)

// Options configures a new scene
type Options struct {
	// DesignWidth and DesignHeight fix the scene target size, 0 follows the screen
	DesignWidth    int
	DesignHeight   int
	Policy         ResolutionPolicy
	ClearColor     render.RGB
	LetterboxColor render.RGB
}

// Scene is a render.Scene driving its renderers and post processors each frame
type Scene struct {
	log      zerolog.Logger
	graphics *render.Graphics
	world    *engine.World
	camera   *render.Camera

	renderables        *render.RenderableList
	renderers          []render.Renderer
	afterPostRenderers []render.Renderer
	postProcessors     []render.PostProcessor

	sceneTarget *render.RenderTarget
	ppTarget    *render.RenderTarget

	designWidth  int
	designHeight int
	policy       ResolutionPolicy

	ClearColor     render.RGB
	LetterboxColor render.RGB

	started bool

	stats     *status.Registry
	frames    *atomic.Int64
	batches   *atomic.Int64
	drawCalls *atomic.Int64
	frameTime *status.AtomicFloat
}

// New creates a scene drawing through g
func New(g *render.Graphics, opts Options) *Scene {
	s := &Scene{
		log:            logger.WithComponent("scene"),
		graphics:       g,
		world:          engine.NewWorld(),
		renderables:    render.NewRenderableList(),
		designWidth:    opts.DesignWidth,
		designHeight:   opts.DesignHeight,
		policy:         opts.Policy,
		ClearColor:     opts.ClearColor,
		LetterboxColor: opts.LetterboxColor,
		stats:          status.NewRegistry(),
	}
	s.frames = s.stats.Ints.Get(MetricFrames)
	s.batches = s.stats.Ints.Get(MetricBatches)
	s.drawCalls = s.stats.Ints.Get(MetricDrawCalls)
	s.frameTime = s.stats.Floats.Get(MetricFrameTime)

	w, h := s.SceneTargetSize()
	s.camera = render.NewCamera(w, h)
	s.sceneTarget = render.NewRenderTarget(w, h)
	s.ppTarget = render.NewRenderTarget(w, h)
	s.world.Observe(s)
	return s
}

func (s *Scene) Graphics() *render.Graphics          { return s.graphics }
func (s *Scene) Camera() *render.Camera              { return s.camera }
func (s *Scene) Renderables() *render.RenderableList { return s.renderables }
func (s *Scene) World() *engine.World                { return s.world }
func (s *Scene) Entities() []*engine.Entity          { return s.world.Entities() }

// Started reports whether Begin was called without a matching End
func (s *Scene) Started() bool {
	return s.started
}

// SceneTargetSize returns the design size, or the screen size when no design size is set
func (s *Scene) SceneTargetSize() (int, int) {
	sw, sh := s.graphics.ScreenSize()
	w, h := s.designWidth, s.designHeight
	if w <= 0 {
		w = sw
	}
	if h <= 0 {
		h = sh
	}
	return w, h
}

// Stats returns the frame metrics, safe to read from other goroutines
func (s *Scene) Stats() *status.Registry {
	return s.stats
}

// SceneTarget returns the target the regular renderers draw into
func (s *Scene) SceneTarget() *render.RenderTarget {
	return s.sceneTarget
}

// ===== ENTITIES =====

// CreateEntity adds an enabled entity to the scene
func (s *Scene) CreateEntity(name string) *engine.Entity {
	return s.world.CreateEntity(name)
}

// AddComponent attaches c to e; renderables join the renderable list
func (s *Scene) AddComponent(e *engine.Entity, c engine.Component) {
	s.world.AddComponent(e, c)
}

// RemoveComponent detaches c from e
func (s *Scene) RemoveComponent(e *engine.Entity, c engine.Component) {
	s.world.RemoveComponent(e, c)
}

// DestroyEntity removes e and its components
func (s *Scene) DestroyEntity(e *engine.Entity) {
	s.world.DestroyEntity(e)
}

func (s *Scene) ComponentAdded(c engine.Component) {
	if r, ok := c.(render.Renderable); ok {
		s.renderables.Add(r)
	}
}

func (s *Scene) ComponentRemoved(c engine.Component) {
	if r, ok := c.(render.Renderable); ok {
		s.renderables.Remove(r)
	}
}

// ===== RENDERERS =====

// AddRenderer inserts r by render order and notifies it; returns r
func (s *Scene) AddRenderer(r render.Renderer) render.Renderer {
	base := r.Base()
	if base.WantsToRenderAfterPostProcessors {
		s.afterPostRenderers = append(s.afterPostRenderers, r)
		render.SortRenderers(s.afterPostRenderers)
	} else {
		s.renderers = append(s.renderers, r)
		render.SortRenderers(s.renderers)
	}
	r.OnAddedToScene(s)

	s.log.Debug().
		Str("renderer", fmt.Sprintf("%T", r)).
		Int("order", base.RenderOrder).
		Bool("after_post", base.WantsToRenderAfterPostProcessors).
		Bool("offscreen", base.RenderTarget != nil).
		Msg("renderer added")
	return r
}

// RemoveRenderer unloads and removes r, returns false if r was not added
func (s *Scene) RemoveRenderer(r render.Renderer) bool {
	for _, list := range []*[]render.Renderer{&s.renderers, &s.afterPostRenderers} {
		if idx := slices.Index(*list, r); idx >= 0 {
			*list = slices.Delete(*list, idx, idx+1)
			r.Unload()
			s.log.Debug().Str("renderer", fmt.Sprintf("%T", r)).Msg("renderer removed")
			return true
		}
	}
	return false
}

// Renderers returns the renderers that run before post processing, in order
func (s *Scene) Renderers() []render.Renderer {
	return slices.Clone(s.renderers)
}

// AfterPostProcessorRenderers returns the renderers that run after post processing, in order
func (s *Scene) AfterPostProcessorRenderers() []render.Renderer {
	return slices.Clone(s.afterPostRenderers)
}

// FindRenderer returns the first renderer of type T
func FindRenderer[T render.Renderer](s *Scene) (T, bool) {
	for _, list := range [][]render.Renderer{s.renderers, s.afterPostRenderers} {
		for _, r := range list {
			if t, ok := r.(T); ok {
				return t, true
			}
		}
	}
	var zero T
	return zero, false
}

// ===== POST PROCESSORS =====

// AddPostProcessor inserts pp by execution order and sizes it to the scene target
func (s *Scene) AddPostProcessor(pp render.PostProcessor) render.PostProcessor {
	s.postProcessors = append(s.postProcessors, pp)
	render.SortPostProcessors(s.postProcessors)
	pp.OnAddedToScene(s)
	pp.OnSceneBackBufferSizeChanged(s.SceneTargetSize())
	return pp
}

// RemovePostProcessor unloads and removes pp, returns false if absent
func (s *Scene) RemovePostProcessor(pp render.PostProcessor) bool {
	idx := slices.Index(s.postProcessors, pp)
	if idx < 0 {
		return false
	}
	s.postProcessors = slices.Delete(s.postProcessors, idx, idx+1)
	pp.Unload()
	return true
}

// PostProcessors returns the post processors in execution order
func (s *Scene) PostProcessors() []render.PostProcessor {
	return slices.Clone(s.postProcessors)
}

// ===== LIFECYCLE =====

// Begin starts the scene; a scene without renderers gets a DefaultRenderer
func (s *Scene) Begin() {
	if len(s.renderers) == 0 && len(s.afterPostRenderers) == 0 {
		s.AddRenderer(render.NewDefaultRenderer(render.OrderWorld, nil))
		s.log.Warn().Msg("scene has no renderers, added a DefaultRenderer")
	}
	s.Resize(s.graphics.ScreenSize())
	s.started = true
	s.log.Info().
		Int("renderers", len(s.renderers)+len(s.afterPostRenderers)).
		Int("post_processors", len(s.postProcessors)).
		Msg("scene started")
}

// End unloads renderers and post processors and destroys all entities
func (s *Scene) End() {
	for _, r := range s.renderers {
		r.Unload()
	}
	for _, r := range s.afterPostRenderers {
		r.Unload()
	}
	for _, pp := range s.postProcessors {
		pp.Unload()
	}
	s.renderers = nil
	s.afterPostRenderers = nil
	s.postProcessors = nil
	s.world.Clear()
	s.started = false

	ev := s.log.Info()
	for k, v := range s.stats.Snapshot() {
		ev = ev.Float64(k, v)
	}
	ev.Msg("scene ended")
}

// Update runs every enabled Updatable component
func (s *Scene) Update(dt time.Duration) {
	s.world.RunSafe(func() {
		for _, e := range s.world.Entities() {
			if !e.Enabled {
				continue
			}
			for _, c := range e.Components() {
				if u, ok := c.(engine.Updatable); ok && c.Enabled() {
					u.Update(dt)
				}
			}
		}
	})
}

// Resize updates the back buffer to the screen size and propagates the scene target size
func (s *Scene) Resize(screenWidth, screenHeight int) {
	s.graphics.Resize(screenWidth, screenHeight)

	w, h := s.SceneTargetSize()
	s.sceneTarget.Resize(w, h)
	s.ppTarget.Resize(w, h)
	s.camera.OnSceneTargetSizeChanged(w, h)

	for _, r := range s.renderers {
		r.OnSceneBackBufferSizeChanged(w, h)
	}
	for _, r := range s.afterPostRenderers {
		r.OnSceneBackBufferSizeChanged(w, h)
	}
	for _, pp := range s.postProcessors {
		pp.OnSceneBackBufferSizeChanged(w, h)
	}

	s.log.Debug().
		Int("screen_w", screenWidth).Int("screen_h", screenHeight).
		Int("target_w", w).Int("target_h", h).
		Msg("scene resized")
}
