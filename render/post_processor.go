package render

import (
	"cmp"
	"slices"
)

// PostProcessor transforms the scene target after the regular renderers ran
type PostProcessor interface {
	Enabled() bool
	// ExecutionOrder sorts post processors, lower first
	ExecutionOrder() int
	OnAddedToScene(s Scene)
	// Process reads src and writes the result to dst, both sized to the scene target
	Process(src, dst *RenderTarget)
	OnSceneBackBufferSizeChanged(width, height int)
	Unload()
}

// PostProcessorBase provides the enabled switch and ordering of a post processor
type PostProcessorBase struct {
	disabled bool
	order    int
}

func (p *PostProcessorBase) Enabled() bool                                  { return !p.disabled }
func (p *PostProcessorBase) SetEnabled(enabled bool)                        { p.disabled = !enabled }
func (p *PostProcessorBase) ExecutionOrder() int                            { return p.order }
func (p *PostProcessorBase) OnAddedToScene(Scene)                           {}
func (p *PostProcessorBase) OnSceneBackBufferSizeChanged(width, height int) {}
func (p *PostProcessorBase) Unload()                                        {}

// SortPostProcessors sorts by execution order keeping insertion order for ties
func SortPostProcessors(pps []PostProcessor) {
	slices.SortStableFunc(pps, func(a, b PostProcessor) int {
		return cmp.Compare(a.ExecutionOrder(), b.ExecutionOrder())
	})
}

// DimPostProcessor applies brightness reduction to masked cells
type DimPostProcessor struct {
	PostProcessorBase
	Factor float64
	Mask   uint8
}

// NewDimPostProcessor creates a dim post processor
func NewDimPostProcessor(order int, factor float64, mask uint8) *DimPostProcessor {
	return &DimPostProcessor{
		PostProcessorBase: PostProcessorBase{order: order},
		Factor:            factor,
		Mask:              mask,
	}
}

func (p *DimPostProcessor) Process(src, dst *RenderTarget) {
	src.CopyOpaque(dst, 0, 0)
	dst.MutateDim(p.Factor, p.Mask)
}

// GrayscalePostProcessor desaturates masked cells by intensity
type GrayscalePostProcessor struct {
	PostProcessorBase
	Intensity float64
	Mask      uint8
}

// NewGrayscalePostProcessor creates a desaturation post processor
func NewGrayscalePostProcessor(order int, intensity float64, mask uint8) *GrayscalePostProcessor {
	return &GrayscalePostProcessor{
		PostProcessorBase: PostProcessorBase{order: order},
		Intensity:         intensity,
		Mask:              mask,
	}
}

func (p *GrayscalePostProcessor) Process(src, dst *RenderTarget) {
	src.CopyOpaque(dst, 0, 0)
	dst.MutateGrayscale(p.Intensity, p.Mask)
}
