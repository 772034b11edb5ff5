package scene

import (
	"fmt"
	"time"

	"github.com/lixenwraith/vi-scene/render"
)

// Render draws one frame: renderers into the scene target, post processors,
// after-post renderers, then the letterboxed result into the back buffer
func (s *Scene) Render() error {
	if !s.started {
		return ErrSceneNotStarted
	}

	s.world.Lock()
	defer s.world.Unlock()

	start := time.Now()
	g := s.graphics
	g.Batcher().ResetStats()

	g.SetRenderTarget(s.sceneTarget)
	g.Clear(s.ClearColor)
	if err := s.runRenderers(s.renderers, s.sceneTarget); err != nil {
		return err
	}

	final := s.postProcess()

	g.SetRenderTarget(final)
	if err := s.runRenderers(s.afterPostRenderers, final); err != nil {
		return err
	}

	s.finalRender(final)

	s.frames.Add(1)
	s.batches.Store(int64(g.Batcher().Batches()))
	s.drawCalls.Store(int64(g.Batcher().DrawCalls()))
	s.frameTime.Set(float64(time.Since(start).Microseconds()) / 1000)
	return nil
}

// runRenderers renders in order, re-selecting target after any renderer that drew offscreen
func (s *Scene) runRenderers(renderers []render.Renderer, target *render.RenderTarget) error {
	lastHadTarget := false
	for i, r := range renderers {
		if lastHadTarget {
			s.graphics.SetRenderTarget(target)
		}
		if err := r.Render(s); err != nil {
			s.log.Error().Err(err).Int("index", i).Str("renderer", fmt.Sprintf("%T", r)).Msg("render failed")
			return fmt.Errorf("renderer %d (%T): %w", i, r, err)
		}
		lastHadTarget = r.Base().RenderTarget != nil
	}
	return nil
}

// postProcess ping-pongs enabled post processors between the scene and scratch targets
// Returns the target holding the result
func (s *Scene) postProcess() *render.RenderTarget {
	src, dst := s.sceneTarget, s.ppTarget
	for _, pp := range s.postProcessors {
		if !pp.Enabled() {
			continue
		}
		dst.Clear(s.ClearColor)
		pp.Process(src, dst)
		src, dst = dst, src
	}
	return src
}

// finalRender letterboxes the result into the back buffer and presents it
func (s *Scene) finalRender(final *render.RenderTarget) {
	g := s.graphics
	g.SetRenderTarget(nil)
	bb := g.BackBuffer()
	bb.Clear(s.LetterboxColor)

	x, y := s.FinalOffset()
	final.CopyOpaque(bb, x, y)
	g.Present()
}

// FinalOffset returns where the scene target's origin lands on the screen
func (s *Scene) FinalOffset() (int, int) {
	if s.policy != PolicyCenter {
		return 0, 0
	}
	sw, sh := s.graphics.ScreenSize()
	tw, th := s.SceneTargetSize()
	return (sw - tw) / 2, (sh - th) / 2
}

// ScreenToScene converts a screen coordinate to a scene target coordinate
func (s *Scene) ScreenToScene(x, y int) (int, int) {
	ox, oy := s.FinalOffset()
	return x - ox, y - oy
}
