package render

// Write masks categorize target cells for selective post-processing
// Masks are bitfields allowing combination via OR and exclusion via XOR
const (
	MaskNone   uint8 = 0
	MaskWorld  uint8 = 1 << 0 // Camera-space renderables
	MaskEffect uint8 = 1 << 1 // Composited offscreen targets
	MaskUI     uint8 = 1 << 2 // Screen-space renderables
	MaskDebug  uint8 = 1 << 3 // Debug overlays
	MaskAll    uint8 = 0xFF
)
