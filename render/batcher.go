package render

import (
	"errors"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-scene/core"
	"github.com/lixenwraith/vi-scene/terminal"
)

var (
	ErrBatchBegun    = errors.New("batcher: Begin called before End")
	ErrBatchNotBegun = errors.New("batcher: End called before Begin")
)

type opKind uint8

const (
	opKindCell opKind = iota
	opKindFg
	opKindBg
	opKindTarget
)

type drawOp struct {
	kind opKind
	pos  core.Point // target coordinates, camera already applied
	cell terminal.Cell
	src  *RenderTarget
}

// Batcher queues draw calls between Begin and End and applies them to the
// current render target of its Graphics with the material the batch was begun with
type Batcher struct {
	graphics *Graphics

	begun    bool
	material *Material
	camera   *Camera
	ops      []drawOp

	// DefaultMask is stamped on cells when the material carries no mask
	DefaultMask uint8

	batches   int
	drawCalls int
}

// NewBatcher creates a batcher drawing into g's current render target
func NewBatcher(g *Graphics) *Batcher {
	return &Batcher{
		graphics:    g,
		ops:         make([]drawOp, 0, 256),
		DefaultMask: MaskWorld,
	}
}

// Begin starts a batch; nil material is DefaultMaterial, nil camera is identity
func (b *Batcher) Begin(mat *Material, cam *Camera) error {
	if b.begun {
		return ErrBatchBegun
	}
	if mat == nil {
		mat = DefaultMaterial
	}
	b.begun = true
	b.material = mat
	b.camera = cam
	return nil
}

// End applies all queued draws and closes the batch
func (b *Batcher) End() error {
	if !b.begun {
		return ErrBatchNotBegun
	}
	b.flush()
	b.begun = false
	b.material = nil
	b.camera = nil
	return nil
}

// IsBegun reports whether a batch is open
func (b *Batcher) IsBegun() bool {
	return b.begun
}

// Material returns the material of the open batch, nil when closed
func (b *Batcher) Material() *Material {
	return b.material
}

// Camera returns the camera of the open batch
func (b *Batcher) Camera() *Camera {
	return b.camera
}

// Batches returns the number of non-empty flushes since ResetStats
func (b *Batcher) Batches() int {
	return b.batches
}

// DrawCalls returns the number of queued draw operations since ResetStats
func (b *Batcher) DrawCalls() int {
	return b.drawCalls
}

// ResetStats zeroes batch and draw call counters, called once per frame
func (b *Batcher) ResetStats() {
	b.batches = 0
	b.drawCalls = 0
}

func (b *Batcher) push(op drawOp) {
	if !b.begun {
		return
	}
	b.ops = append(b.ops, op)
	b.drawCalls++
}

// DrawCell draws a rune with explicit foreground and background at a world coordinate
func (b *Batcher) DrawCell(x, y int, r rune, fg, bg RGB, attrs terminal.Attr) {
	b.push(drawOp{
		kind: opKindCell,
		pos:  b.camera.WorldToScreen(core.Point{X: x, Y: y}),
		cell: terminal.Cell{Rune: r, Fg: fg, Bg: bg, Attrs: attrs},
	})
}

// DrawRune draws a rune keeping the existing background
func (b *Batcher) DrawRune(x, y int, r rune, fg RGB, attrs terminal.Attr) {
	b.push(drawOp{
		kind: opKindFg,
		pos:  b.camera.WorldToScreen(core.Point{X: x, Y: y}),
		cell: terminal.Cell{Rune: r, Fg: fg, Attrs: attrs},
	})
}

// DrawString draws text starting at a world coordinate, advancing by display width
// Returns the number of cells advanced
func (b *Batcher) DrawString(x, y int, s string, fg RGB, attrs terminal.Attr) int {
	cx := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.DrawRune(cx, y, r, fg, attrs)
		cx += w
	}
	return cx - x
}

// FillRect sets the background of every cell in the world area
func (b *Batcher) FillRect(a core.Area, bg RGB) {
	for y := a.Y; y < a.Bottom(); y++ {
		for x := a.X; x < a.Right(); x++ {
			b.push(drawOp{
				kind: opKindBg,
				pos:  b.camera.WorldToScreen(core.Point{X: x, Y: y}),
				cell: terminal.Cell{Bg: bg},
			})
		}
	}
}

// DrawHollowRect outlines the world area with box drawing runes
func (b *Batcher) DrawHollowRect(a core.Area, fg RGB) {
	if a.Empty() {
		return
	}
	right, bottom := a.Right()-1, a.Bottom()-1
	if a.Width == 1 || a.Height == 1 {
		for y := a.Y; y <= bottom; y++ {
			for x := a.X; x <= right; x++ {
				b.DrawRune(x, y, '□', fg, terminal.AttrNone)
			}
		}
		return
	}
	for x := a.X + 1; x < right; x++ {
		b.DrawRune(x, a.Y, '─', fg, terminal.AttrNone)
		b.DrawRune(x, bottom, '─', fg, terminal.AttrNone)
	}
	for y := a.Y + 1; y < bottom; y++ {
		b.DrawRune(a.X, y, '│', fg, terminal.AttrNone)
		b.DrawRune(right, y, '│', fg, terminal.AttrNone)
	}
	b.DrawRune(a.X, a.Y, '┌', fg, terminal.AttrNone)
	b.DrawRune(right, a.Y, '┐', fg, terminal.AttrNone)
	b.DrawRune(a.X, bottom, '└', fg, terminal.AttrNone)
	b.DrawRune(right, bottom, '┘', fg, terminal.AttrNone)
}

// DrawTarget composites the written cells of src with its top-left at a world coordinate
func (b *Batcher) DrawTarget(src *RenderTarget, x, y int) {
	if src == nil {
		return
	}
	b.push(drawOp{
		kind: opKindTarget,
		pos:  b.camera.WorldToScreen(core.Point{X: x, Y: y}),
		src:  src,
	})
}

// flush applies queued draws to the current render target
func (b *Batcher) flush() {
	if len(b.ops) == 0 {
		return
	}
	dst := b.graphics.RenderTarget()
	mat := b.material
	mask := mat.Mask
	if mask == MaskNone {
		mask = b.DefaultMask
	}

	for i := range b.ops {
		op := &b.ops[i]
		c := op.cell
		c.Attrs |= mat.Attrs
		switch op.kind {
		case opKindCell:
			dst.Set(op.pos.X, op.pos.Y, c, mat.Blend, mat.Alpha, mask)
		case opKindFg:
			dst.Set(op.pos.X, op.pos.Y, c, mat.Blend.FgOnly(), mat.Alpha, mask)
		case opKindBg:
			dst.Set(op.pos.X, op.pos.Y, c, mat.Blend.BgOnly(), mat.Alpha, mask)
		case opKindTarget:
			op.src.CopyTo(dst, op.pos.X, op.pos.Y, mat)
		}
	}

	b.ops = b.ops[:0]
	b.batches++
}
