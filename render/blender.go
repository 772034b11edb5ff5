package render

// BlendMode defines compositing operations using a bitmask (Flags | Op)
type BlendMode uint8

// Blend Operations (0-15)
const (
	opReplace   uint8 = 0x00
	opAlpha     uint8 = 0x01
	opAdd       uint8 = 0x02
	opMax       uint8 = 0x03
	opSoftLight uint8 = 0x04
	opScreen    uint8 = 0x05
	opOverlay   uint8 = 0x06
)

// Blend Flags
const (
	flagBg uint8 = 0x10 // Apply operation to Background
	flagFg uint8 = 0x20 // Apply operation to Foreground
)

// Pre-defined Blend Modes
const (
	// Standard Modes (affect both Fg and Bg)
	BlendReplace   = BlendMode(opReplace | flagBg | flagFg)
	BlendAlpha     = BlendMode(opAlpha | flagBg | flagFg)
	BlendAdd       = BlendMode(opAdd | flagBg | flagFg)
	BlendMax       = BlendMode(opMax | flagBg | flagFg)
	BlendSoftLight = BlendMode(opSoftLight | flagBg | flagFg)
	BlendScreen    = BlendMode(opScreen | flagBg | flagFg)
	BlendOverlay   = BlendMode(opOverlay | flagBg | flagFg)

	// Targeted Modes
	BlendFgOnly = BlendMode(opReplace | flagFg)
	BlendBgOnly = BlendMode(opReplace | flagBg)
)

var blendNames = map[string]BlendMode{
	"replace":   BlendReplace,
	"alpha":     BlendAlpha,
	"add":       BlendAdd,
	"max":       BlendMax,
	"softlight": BlendSoftLight,
	"screen":    BlendScreen,
	"overlay":   BlendOverlay,
}

// ParseBlendMode resolves a blend mode by its config name
func ParseBlendMode(name string) (BlendMode, bool) {
	m, ok := blendNames[name]
	return m, ok
}

// FgOnly strips the background flag, keeping the operation
func (m BlendMode) FgOnly() BlendMode {
	return BlendMode(uint8(m) &^ flagBg)
}

// BgOnly strips the foreground flag, keeping the operation
func (m BlendMode) BgOnly() BlendMode {
	return BlendMode(uint8(m) &^ flagFg)
}

// apply runs the mode operation on one channel pair
func (m BlendMode) apply(dst, src RGB, alpha float64) RGB {
	switch uint8(m) & 0x0F {
	case opAlpha:
		return Blend(dst, src, alpha)
	case opAdd:
		return Add(dst, src, alpha)
	case opMax:
		return Max(dst, src, alpha)
	case opSoftLight:
		return SoftLight(dst, src, alpha)
	case opScreen:
		return Screen(dst, src, alpha)
	case opOverlay:
		return Overlay(dst, src, alpha)
	default:
		return src
	}
}
