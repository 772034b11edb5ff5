package render

import "github.com/lixenwraith/vi-scene/terminal"

// ResizeBehavior controls how a render target follows scene size changes
type ResizeBehavior uint8

const (
	// ResizeNone keeps the size the target was created with
	ResizeNone ResizeBehavior = iota
	// ResizeToSceneTarget matches the scene render target (design resolution)
	ResizeToSceneTarget
	// ResizeToScreen matches the device back buffer
	ResizeToScreen
)

// RenderTarget is an offscreen cell buffer with write tracking
// Cells never written since the last Clear are transparent when composited
type RenderTarget struct {
	cells   []terminal.Cell
	touched []bool
	masks   []uint8
	width   int
	height  int

	clearColor RGB

	ResizeBehavior ResizeBehavior
}

// NewRenderTarget creates a target with the specified dimensions
func NewRenderTarget(width, height int) *RenderTarget {
	t := &RenderTarget{}
	t.Resize(width, height)
	return t
}

// NewSizedRenderTarget creates a target that follows scene size changes,
// sized on first OnSceneBackBufferSizeChanged
func NewSizedRenderTarget(behavior ResizeBehavior) *RenderTarget {
	return &RenderTarget{ResizeBehavior: behavior}
}

// Width returns the target width in cells
func (t *RenderTarget) Width() int { return t.width }

// Height returns the target height in cells
func (t *RenderTarget) Height() int { return t.height }

// Size returns target dimensions
func (t *RenderTarget) Size() (int, int) { return t.width, t.height }

// Resize adjusts dimensions, reallocates only if capacity insufficient
// Content is cleared to the last clear color
func (t *RenderTarget) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	size := width * height
	if cap(t.cells) < size {
		t.cells = make([]terminal.Cell, size)
		t.touched = make([]bool, size)
		t.masks = make([]uint8, size)
	} else {
		t.cells = t.cells[:size]
		t.touched = t.touched[:size]
		t.masks = t.masks[:size]
	}
	t.width = width
	t.height = height
	t.Clear(t.clearColor)
}

// Release drops cell storage, the target keeps working at 0x0
func (t *RenderTarget) Release() {
	t.cells = nil
	t.touched = nil
	t.masks = nil
	t.width = 0
	t.height = 0
}

// Clear resets all cells to empty with background color using exponential copy
func (t *RenderTarget) Clear(bg RGB) {
	t.clearColor = bg
	if len(t.cells) == 0 {
		return
	}
	t.cells[0] = terminal.Cell{Rune: 0, Fg: bg, Bg: bg, Attrs: terminal.AttrNone}
	t.touched[0] = false
	t.masks[0] = MaskNone
	for filled := 1; filled < len(t.cells); filled *= 2 {
		copy(t.cells[filled:], t.cells[:filled])
		copy(t.touched[filled:], t.touched[:filled])
		copy(t.masks[filled:], t.masks[:filled])
	}
}

// ClearColor returns the color of the last Clear
func (t *RenderTarget) ClearColor() RGB {
	return t.clearColor
}

// InBounds returns true if the coordinate is inside the target
func (t *RenderTarget) InBounds(x, y int) bool {
	return x >= 0 && x < t.width && y >= 0 && y < t.height
}

// Cell returns the cell at x, y and whether it was written since Clear
func (t *RenderTarget) Cell(x, y int) (terminal.Cell, bool) {
	if !t.InBounds(x, y) {
		return terminal.Cell{}, false
	}
	idx := y*t.width + x
	return t.cells[idx], t.touched[idx]
}

// Mask returns the write mask of the cell at x, y
func (t *RenderTarget) Mask(x, y int) uint8 {
	if !t.InBounds(x, y) {
		return MaskNone
	}
	return t.masks[y*t.width+x]
}

// Cells exposes the row-major backing slice
func (t *RenderTarget) Cells() []terminal.Cell {
	return t.cells
}

// Set composites a cell with the given blend mode
// Rune 0 keeps the existing rune and attributes
func (t *RenderTarget) Set(x, y int, c terminal.Cell, mode BlendMode, alpha float64, mask uint8) {
	if !t.InBounds(x, y) {
		return
	}
	idx := y*t.width + x
	dst := &t.cells[idx]

	written := false
	if c.Rune != 0 {
		dst.Rune = c.Rune
		dst.Attrs = c.Attrs
		written = true
	}
	if uint8(mode)&flagBg != 0 {
		dst.Bg = mode.apply(dst.Bg, c.Bg, alpha)
		written = true
	}
	if uint8(mode)&flagFg != 0 {
		dst.Fg = mode.apply(dst.Fg, c.Fg, alpha)
	}
	if written {
		t.touched[idx] = true
		t.masks[idx] = mask
	}
}

// CopyTo composites written cells onto dst at dx, dy using the material
// Unwritten cells are skipped so cleared areas stay transparent
func (t *RenderTarget) CopyTo(dst *RenderTarget, dx, dy int, mat *Material) {
	if mat == nil {
		mat = DefaultMaterial
	}
	for y := 0; y < t.height; y++ {
		ty := y + dy
		if ty < 0 || ty >= dst.height {
			continue
		}
		for x := 0; x < t.width; x++ {
			idx := y*t.width + x
			if !t.touched[idx] {
				continue
			}
			c := t.cells[idx]
			c.Attrs |= mat.Attrs
			mask := t.masks[idx]
			if mat.Mask != MaskNone {
				mask = mat.Mask
			}
			dst.Set(x+dx, ty, c, mat.Blend, mat.Alpha, mask)
		}
	}
}

// CopyOpaque replaces dst cells with every cell of t, including unwritten ones
func (t *RenderTarget) CopyOpaque(dst *RenderTarget, dx, dy int) {
	for y := 0; y < t.height; y++ {
		ty := y + dy
		if ty < 0 || ty >= dst.height {
			continue
		}
		for x := 0; x < t.width; x++ {
			tx := x + dx
			if tx < 0 || tx >= dst.width {
				continue
			}
			src := y*t.width + x
			di := ty*dst.width + tx
			dst.cells[di] = t.cells[src]
			dst.touched[di] = true
			dst.masks[di] = t.masks[src]
		}
	}
}

// MutateDim scales colors of cells whose mask matches
func (t *RenderTarget) MutateDim(factor float64, mask uint8) {
	for i := range t.cells {
		if t.masks[i]&mask == 0 {
			continue
		}
		t.cells[i].Fg = Scale(t.cells[i].Fg, factor)
		t.cells[i].Bg = Scale(t.cells[i].Bg, factor)
	}
}

// MutateGrayscale desaturates cells whose mask matches, intensity 0..1
func (t *RenderTarget) MutateGrayscale(intensity float64, mask uint8) {
	if intensity <= 0 {
		return
	}
	for i := range t.cells {
		if t.masks[i]&mask == 0 {
			continue
		}
		c := &t.cells[i]
		c.Fg = Lerp(c.Fg, Grayscale(c.Fg), intensity)
		c.Bg = Lerp(c.Bg, Grayscale(c.Bg), intensity)
	}
}
