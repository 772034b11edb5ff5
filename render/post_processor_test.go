package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func maskedSource() *RenderTarget {
	src := NewRenderTarget(2, 1)
	src.Set(0, 0, Cell{Rune: 'w', Fg: RGB{R: 200, G: 100}, Bg: RGB{R: 200, G: 100}}, BlendReplace, 1, MaskWorld)
	src.Set(1, 0, Cell{Rune: 'u', Fg: RGB{R: 200, G: 100}, Bg: RGB{R: 200, G: 100}}, BlendReplace, 1, MaskUI)
	return src
}

func TestDimPostProcessor(t *testing.T) {
	src, dst := maskedSource(), NewRenderTarget(2, 1)
	p := NewDimPostProcessor(0, 0.5, MaskWorld)
	p.Process(src, dst)

	c0, _ := dst.Cell(0, 0)
	c1, _ := dst.Cell(1, 0)
	assert.Equal(t, RGB{R: 100, G: 50}, c0.Bg)
	assert.Equal(t, 'w', c0.Rune)
	assert.Equal(t, RGB{R: 200, G: 100}, c1.Bg, "unmasked cell untouched")

	s0, _ := src.Cell(0, 0)
	assert.Equal(t, RGB{R: 200, G: 100}, s0.Bg, "source is not modified")
}

func TestGrayscalePostProcessor(t *testing.T) {
	src, dst := maskedSource(), NewRenderTarget(2, 1)
	p := NewGrayscalePostProcessor(0, 1, MaskUI)
	p.Process(src, dst)

	c0, _ := dst.Cell(0, 0)
	c1, _ := dst.Cell(1, 0)
	assert.Equal(t, RGB{R: 200, G: 100}, c0.Fg)
	assert.Equal(t, Grayscale(RGB{R: 200, G: 100}), c1.Fg)
}

func TestPostProcessorEnabledAndOrder(t *testing.T) {
	a := NewDimPostProcessor(5, 0.5, MaskAll)
	b := NewGrayscalePostProcessor(-1, 1, MaskAll)
	c := NewDimPostProcessor(5, 0.2, MaskAll)

	assert.True(t, a.Enabled())
	a.SetEnabled(false)
	assert.False(t, a.Enabled())

	pps := []PostProcessor{a, b, c}
	SortPostProcessors(pps)
	assert.Equal(t, []PostProcessor{b, a, c}, pps)
}
