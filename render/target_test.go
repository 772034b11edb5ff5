package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-scene/terminal"
)

func TestRenderTargetClear(t *testing.T) {
	rt := NewRenderTarget(3, 2)
	bg := RGB{R: 10, G: 20, B: 30}
	rt.Set(1, 1, Cell{Rune: 'x', Fg: RGBWhite, Bg: RGBWhite}, BlendReplace, 1, MaskWorld)

	rt.Clear(bg)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			c, touched := rt.Cell(x, y)
			assert.False(t, touched)
			assert.Equal(t, bg, c.Bg)
			assert.Zero(t, c.Rune)
			assert.Equal(t, MaskNone, rt.Mask(x, y))
		}
	}
	assert.Equal(t, bg, rt.ClearColor())
}

func TestRenderTargetSetModes(t *testing.T) {
	base := RGB{R: 100, G: 100, B: 100}
	src := RGB{R: 200, G: 0, B: 50}

	tests := []struct {
		name   string
		mode   BlendMode
		alpha  float64
		wantBg RGB
		wantFg RGB
	}{
		{"Replace", BlendReplace, 1, src, src},
		{"Alpha half", BlendAlpha, 0.5, RGB{150, 50, 75}, RGB{150, 50, 75}},
		{"Add", BlendAdd, 1, RGB{255, 100, 150}, RGB{255, 100, 150}},
		{"Max", BlendMax, 1, RGB{200, 100, 100}, RGB{200, 100, 100}},
		{"Fg only", BlendFgOnly, 1, base, src},
		{"Bg only", BlendBgOnly, 1, src, base},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := NewRenderTarget(1, 1)
			rt.Set(0, 0, Cell{Rune: 'a', Fg: base, Bg: base}, BlendReplace, 1, MaskWorld)
			rt.Set(0, 0, Cell{Fg: src, Bg: src}, tt.mode, tt.alpha, MaskUI)

			c, touched := rt.Cell(0, 0)
			assert.True(t, touched)
			assert.Equal(t, 'a', c.Rune, "rune 0 keeps the existing rune")
			assert.Equal(t, tt.wantBg, c.Bg)
			assert.Equal(t, tt.wantFg, c.Fg)
		})
	}
}

func TestRenderTargetFgOnlyWriteWithoutRuneIsUntouched(t *testing.T) {
	rt := NewRenderTarget(1, 1)
	rt.Set(0, 0, Cell{Fg: RGBWhite}, BlendFgOnly, 1, MaskWorld)
	_, touched := rt.Cell(0, 0)
	assert.False(t, touched)
}

func TestRenderTargetOutOfBounds(t *testing.T) {
	rt := NewRenderTarget(2, 2)
	rt.Set(-1, 0, Cell{Rune: 'x'}, BlendReplace, 1, MaskWorld)
	rt.Set(2, 1, Cell{Rune: 'x'}, BlendReplace, 1, MaskWorld)

	_, ok := rt.Cell(2, 1)
	assert.False(t, ok)
	assert.Equal(t, MaskNone, rt.Mask(5, 5))
}

func TestRenderTargetResize(t *testing.T) {
	rt := NewRenderTarget(4, 4)
	rt.Clear(RGBWhite)
	rt.Set(0, 0, Cell{Rune: 'x'}, BlendReplace, 1, MaskWorld)

	rt.Resize(2, 3)
	w, h := rt.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 3, h)
	assert.Len(t, rt.Cells(), 6)
	c, touched := rt.Cell(0, 0)
	assert.False(t, touched)
	assert.Equal(t, RGBWhite, c.Bg, "resize clears to the last clear color")

	rt.Resize(-1, 5)
	assert.Equal(t, 0, rt.Width())
	assert.Empty(t, rt.Cells())
}

func TestRenderTargetRelease(t *testing.T) {
	rt := NewRenderTarget(4, 4)
	rt.Release()
	assert.Equal(t, 0, rt.Width())
	rt.Clear(RGBBlack)
	rt.Set(0, 0, Cell{Rune: 'x'}, BlendReplace, 1, MaskWorld)
}

func TestRenderTargetCopyToSkipsUnwritten(t *testing.T) {
	src := NewRenderTarget(3, 1)
	src.Clear(RGB{R: 1})
	src.Set(1, 0, Cell{Rune: 'm', Fg: RGBWhite, Bg: RGB{B: 255}}, BlendReplace, 1, MaskWorld)

	dst := NewRenderTarget(5, 2)
	dst.Set(0, 1, Cell{Rune: 'k', Bg: RGB{G: 9}}, BlendReplace, 1, MaskWorld)
	dst.Set(2, 1, Cell{Rune: 'k', Bg: RGB{G: 9}}, BlendReplace, 1, MaskWorld)

	mat := &Material{Blend: BlendReplace, Alpha: 1, Mask: MaskEffect, Attrs: terminal.AttrBold}
	src.CopyTo(dst, 1, 1, mat)

	assert.Equal(t, 'k', runeAt(dst, 0, 1), "left of copy untouched")
	c, _ := dst.Cell(2, 1)
	assert.Equal(t, 'm', c.Rune)
	assert.Equal(t, RGB{B: 255}, c.Bg)
	assert.Equal(t, terminal.AttrBold, c.Attrs)
	assert.Equal(t, MaskEffect, dst.Mask(2, 1))
	assert.Zero(t, runeAt(dst, 3, 1), "unwritten source cells stay transparent")
}

func TestRenderTargetCopyOpaque(t *testing.T) {
	src := NewRenderTarget(2, 2)
	src.Clear(RGB{R: 7})
	src.Set(1, 1, Cell{Rune: 'q'}, BlendReplace, 1, MaskUI)

	dst := NewRenderTarget(3, 3)
	src.CopyOpaque(dst, 1, 1)

	c, touched := dst.Cell(1, 1)
	assert.True(t, touched)
	assert.Equal(t, RGB{R: 7}, c.Bg)
	assert.Equal(t, 'q', runeAt(dst, 2, 2))
	assert.Equal(t, MaskUI, dst.Mask(2, 2))

	// Negative offsets crop
	dst2 := NewRenderTarget(1, 1)
	src.CopyOpaque(dst2, -1, -1)
	assert.Equal(t, 'q', runeAt(dst2, 0, 0))
}

func TestRenderTargetMutate(t *testing.T) {
	rt := NewRenderTarget(2, 1)
	rt.Set(0, 0, Cell{Rune: 'w', Fg: RGB{200, 100, 50}, Bg: RGB{200, 100, 50}}, BlendReplace, 1, MaskWorld)
	rt.Set(1, 0, Cell{Rune: 'u', Fg: RGB{200, 100, 50}, Bg: RGB{200, 100, 50}}, BlendReplace, 1, MaskUI)

	rt.MutateDim(0.5, MaskWorld)
	c0, _ := rt.Cell(0, 0)
	c1, _ := rt.Cell(1, 0)
	assert.Equal(t, RGB{100, 50, 25}, c0.Fg)
	assert.Equal(t, RGB{200, 100, 50}, c1.Fg)

	rt.MutateGrayscale(1, MaskUI)
	c1, _ = rt.Cell(1, 0)
	require.Equal(t, c1.Fg.R, c1.Fg.G)
	assert.Equal(t, c1.Fg.G, c1.Fg.B)

	rt.MutateGrayscale(0, MaskAll)
	c0, _ = rt.Cell(0, 0)
	assert.Equal(t, RGB{100, 50, 25}, c0.Fg)
}
