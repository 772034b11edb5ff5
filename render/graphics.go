package render

import (
	"github.com/lixenwraith/vi-scene/terminal"
)

// Graphics owns the device, the batcher, the back buffer, and the current render target
type Graphics struct {
	device     terminal.Device
	batcher    *Batcher
	backBuffer *RenderTarget
	current    *RenderTarget

	// DebugRenderEnabled is the host-wide switch for renderer debug overlays
	DebugRenderEnabled bool
}

// NewGraphics creates graphics presenting to dev, back buffer sized to the device
func NewGraphics(dev terminal.Device) *Graphics {
	w, h := 0, 0
	if dev != nil {
		w, h = dev.Size()
	}
	g := &Graphics{
		device:     dev,
		backBuffer: NewRenderTarget(w, h),
	}
	g.batcher = NewBatcher(g)
	return g
}

// NewHeadlessGraphics creates graphics without a device, Present is a no-op
func NewHeadlessGraphics(width, height int) *Graphics {
	g := &Graphics{backBuffer: NewRenderTarget(width, height)}
	g.batcher = NewBatcher(g)
	return g
}

// Batcher returns the shared batcher
func (g *Graphics) Batcher() *Batcher {
	return g.batcher
}

// Device returns the output device, nil for headless graphics
func (g *Graphics) Device() terminal.Device {
	return g.device
}

// BackBuffer returns the buffer presented to the device
func (g *Graphics) BackBuffer() *RenderTarget {
	return g.backBuffer
}

// ScreenSize returns back buffer dimensions
func (g *Graphics) ScreenSize() (int, int) {
	return g.backBuffer.Size()
}

// SetRenderTarget makes t current, nil selects the back buffer
func (g *Graphics) SetRenderTarget(t *RenderTarget) {
	g.current = t
}

// RenderTarget returns the current target
func (g *Graphics) RenderTarget() *RenderTarget {
	if g.current == nil {
		return g.backBuffer
	}
	return g.current
}

// Clear clears the current render target
func (g *Graphics) Clear(bg RGB) {
	g.RenderTarget().Clear(bg)
}

// Resize resizes the back buffer and forces a full device redraw
func (g *Graphics) Resize(width, height int) {
	g.backBuffer.Resize(width, height)
	if g.device != nil {
		g.device.Sync()
	}
}

// Present shows the back buffer on the device
func (g *Graphics) Present() {
	if g.device == nil {
		return
	}
	w, h := g.backBuffer.Size()
	g.device.Present(g.backBuffer.Cells(), w, h)
}
