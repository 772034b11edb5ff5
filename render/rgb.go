package render

import (
	"math"

	"github.com/lixenwraith/vi-scene/terminal"
)

// RGB is an alias to terminal.RGB, render extends it with blend math
type RGB = terminal.RGB

// Cell is an alias to terminal.Cell to avoid copying between target and device
type Cell = terminal.Cell

var (
	RGBBlack = terminal.RGBBlack
	RGBWhite = terminal.RGBWhite
)

// clamp converts float to uint8
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Blend is linear alpha blending, early out at 0 and 1
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// withAlpha mixes a fully applied result back over c
func withAlpha(c, full RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}
	if alpha >= 1.0 {
		return full
	}
	return Blend(c, full, alpha)
}

// Max returns per-channel maximum
func Max(c, src RGB, alpha float64) RGB {
	return withAlpha(c, RGB{R: max(c.R, src.R), G: max(c.G, src.G), B: max(c.B, src.B)}, alpha)
}

func addChannel(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// Add performs additive blend with clamping
func Add(c, src RGB, alpha float64) RGB {
	return withAlpha(c, RGB{
		R: addChannel(c.R, src.R),
		G: addChannel(c.G, src.G),
		B: addChannel(c.B, src.B),
	}, alpha)
}

// fastDiv255 approximates x / 255 using integer math
func fastDiv255(x int) int {
	return (x + (x >> 8) + 1) >> 8
}

// Screen blend: 1 - (1-Dst)*(1-Src)
func Screen(c, src RGB, alpha float64) RGB {
	return withAlpha(c, RGB{
		R: uint8(255 - fastDiv255((255-int(c.R))*(255-int(src.R)))),
		G: uint8(255 - fastDiv255((255-int(c.G))*(255-int(src.G)))),
		B: uint8(255 - fastDiv255((255-int(c.B))*(255-int(src.B)))),
	}, alpha)
}

// overlayChannel multiplies darks and screens lights of the destination
func overlayChannel(d, s uint8) uint8 {
	if d < 128 {
		return uint8(fastDiv255(2 * int(d) * int(s)))
	}
	return uint8(255 - fastDiv255(2*(255-int(d))*(255-int(s))))
}

// Overlay combines multiply (darks) and screen (lights)
func Overlay(c, src RGB, alpha float64) RGB {
	return withAlpha(c, RGB{
		R: overlayChannel(c.R, src.R),
		G: overlayChannel(c.G, src.G),
		B: overlayChannel(c.B, src.B),
	}, alpha)
}

// softLightChannel is the Perez soft light formula on one channel
func softLightChannel(d, s uint8, intensity float64) uint8 {
	df := float64(d) / 255.0
	sf := float64(s) / 255.0

	var result float64
	if sf < 0.5 {
		result = df - (1.0-2.0*sf)*df*(1.0-df)
	} else {
		g := math.Sqrt(df)
		if df <= 0.25 {
			g = ((16.0*df-12.0)*df + 4.0) * df
		}
		result = df + (2.0*sf-1.0)*(g-df)
	}
	result = df + (result-df)*intensity
	return clamp(result*255.0 + 0.5)
}

// SoftLight applies Perez soft light blend, gentler than linear alpha
func SoftLight(c, src RGB, intensity float64) RGB {
	return RGB{
		R: softLightChannel(c.R, src.R, intensity),
		G: softLightChannel(c.G, src.G, intensity),
		B: softLightChannel(c.B, src.B, intensity),
	}
}

// Scale multiplies all channels by factor
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Grayscale converts RGB to grayscale using Rec. 601 luma coefficients
func Grayscale(c RGB) RGB {
	gray := uint8((int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000)
	return RGB{R: gray, G: gray, B: gray}
}

// Lerp linearly interpolates between two colors, t=0 returns a, t=1 returns b
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: uint8(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: uint8(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: uint8(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}
