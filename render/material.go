package render

import "github.com/lixenwraith/vi-scene/terminal"

// Material is the draw state a batch is begun with
// Materials compare by identity: switching to a different pointer flushes the batch
type Material struct {
	Blend BlendMode
	Alpha float64
	Mask  uint8         // write mask stamped on written cells, MaskNone keeps the draw mask
	Attrs terminal.Attr // OR'ed into every drawn cell

	// PreRender is invoked with the camera when the material becomes current for a renderable
	PreRender func(cam *Camera)
}

// NewMaterial creates a material with the given blend mode at full opacity
func NewMaterial(blend BlendMode) *Material {
	return &Material{Blend: blend, Alpha: 1.0}
}

var (
	// DefaultMaterial is opaque replace, used when neither renderer nor renderable set one
	DefaultMaterial = NewMaterial(BlendReplace)

	// DebugMaterial draws debug overlays tagged with MaskDebug
	DebugMaterial = &Material{Blend: BlendReplace, Alpha: 1.0, Mask: MaskDebug}
)

func (m *Material) onPreRender(cam *Camera) {
	if m != nil && m.PreRender != nil {
		m.PreRender(cam)
	}
}
