package scene

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/vi-scene/config"
	"github.com/lixenwraith/vi-scene/render"
	"github.com/lixenwraith/vi-scene/terminal"
)

// ErrUnknownRenderer is returned for a renderer or post processor type FromConfig cannot build
var ErrUnknownRenderer = errors.New("unknown renderer type")

// FromConfig builds a scene with the configured renderers and post processors
// Named renderers are returned for lookup, e.g. to show an offscreen target
func FromConfig(g *render.Graphics, cfg *config.Config) (*Scene, map[string]render.Renderer, error) {
	sc := cfg.Scene
	opts := Options{
		DesignWidth:  sc.Width,
		DesignHeight: sc.Height,
		Policy:       PolicyNone,
	}
	if sc.Policy == "center" {
		opts.Policy = PolicyCenter
	}
	var err error
	if opts.ClearColor, err = colorOr(sc.ClearColor, render.RGBBlack); err != nil {
		return nil, nil, err
	}
	if opts.LetterboxColor, err = colorOr(sc.LetterboxColor, render.RGBBlack); err != nil {
		return nil, nil, err
	}

	g.DebugRenderEnabled = sc.Debug
	s := New(g, opts)

	named := make(map[string]render.Renderer)
	for i, rc := range cfg.Renderers {
		r, err := buildRenderer(rc)
		if err != nil {
			return nil, nil, fmt.Errorf("renderers[%d]: %w", i, err)
		}
		s.AddRenderer(r)
		if rc.Name != "" {
			named[rc.Name] = r
		}
	}

	for i, pc := range cfg.PostProcessors {
		pp, err := buildPostProcessor(pc)
		if err != nil {
			return nil, nil, fmt.Errorf("post_processors[%d]: %w", i, err)
		}
		s.AddPostProcessor(pp)
	}

	return s, named, nil
}

func buildRenderer(rc config.RendererConfig) (render.Renderer, error) {
	var r render.Renderer
	switch rc.Kind() {
	case config.RendererDefault:
		r = render.NewDefaultRenderer(rc.Order, nil)
	case config.RendererLayer:
		r = render.NewRenderLayerRenderer(rc.Order, nil, rc.Layers...)
	case config.RendererLayerExclude:
		r = render.NewRenderLayerExcludeRenderer(rc.Order, nil, rc.Layers...)
	case config.RendererScreenSpace:
		r = render.NewScreenSpaceRenderer(rc.Order, rc.Layers...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, rc.Type)
	}

	base := r.Base()
	if rc.AfterPostProcessors != nil {
		base.WantsToRenderAfterPostProcessors = *rc.AfterPostProcessors
	}
	if rc.Debug != nil {
		base.ShouldDebugRender = *rc.Debug
	}
	if m := rc.Material; m != nil {
		mat, err := buildMaterial(*m)
		if err != nil {
			return nil, err
		}
		base.Material = mat
	}
	if t := rc.Target; t != nil {
		target, clearColor, err := buildTarget(*t)
		if err != nil {
			return nil, err
		}
		base.RenderTarget = target
		base.RenderTargetClearColor = clearColor
	}
	return r, nil
}

func buildMaterial(mc config.MaterialConfig) (*render.Material, error) {
	blend := render.BlendReplace
	if mc.Blend != "" {
		b, ok := render.ParseBlendMode(mc.Blend)
		if !ok {
			return nil, fmt.Errorf("unknown blend %q", mc.Blend)
		}
		blend = b
	}
	mat := render.NewMaterial(blend)
	if mc.Alpha != nil {
		mat.Alpha = *mc.Alpha
	}
	return mat, nil
}

func buildTarget(tc config.TargetConfig) (*render.RenderTarget, terminal.RGB, error) {
	clearColor, err := colorOr(tc.ClearColor, render.RGBBlack)
	if err != nil {
		return nil, clearColor, err
	}
	switch tc.Resize {
	case "scene":
		return render.NewSizedRenderTarget(render.ResizeToSceneTarget), clearColor, nil
	case "screen":
		return render.NewSizedRenderTarget(render.ResizeToScreen), clearColor, nil
	default:
		return render.NewRenderTarget(tc.Width, tc.Height), clearColor, nil
	}
}

func buildPostProcessor(pc config.PostProcessorConfig) (render.PostProcessor, error) {
	mask := config.ResolveMask(pc.Mask)
	var pp interface {
		render.PostProcessor
		SetEnabled(bool)
	}
	switch pc.Type {
	case config.PostDim:
		pp = render.NewDimPostProcessor(pc.Order, pc.Amount, mask)
	case config.PostGrayscale:
		pp = render.NewGrayscalePostProcessor(pc.Order, pc.Amount, mask)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, pc.Type)
	}
	if pc.Enabled != nil {
		pp.SetEnabled(*pc.Enabled)
	}
	return pp, nil
}

func colorOr(s string, fallback terminal.RGB) (terminal.RGB, error) {
	if s == "" {
		return fallback, nil
	}
	return terminal.ParseHex(s)
}
