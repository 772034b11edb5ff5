package config

import "github.com/lixenwraith/vi-scene/render"

// MaskBits maps config mask names to render write masks
var MaskBits = map[string]uint8{
	"world":  render.MaskWorld,
	"effect": render.MaskEffect,
	"ui":     render.MaskUI,
	"debug":  render.MaskDebug,
	"all":    render.MaskAll,
}

// ResolveMask ORs named masks, empty means every mask except debug
func ResolveMask(names []string) uint8 {
	if len(names) == 0 {
		return render.MaskAll ^ render.MaskDebug
	}
	var m uint8
	for _, n := range names {
		m |= MaskBits[n]
	}
	return m
}
