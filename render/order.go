package render

// Render orders for the built-in pipeline. Lower values render first
const (
	OrderOffscreen   = -100 // renderers feeding render targets consumed by later renderers
	OrderBackground  = -10
	OrderWorld       = 0
	OrderForeground  = 10
	OrderScreenSpace = 100
	OrderDebug       = 1000
)
