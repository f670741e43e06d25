package ledspot

// This file contains the color space conversions used by the spotlight
// engine. The LCH model here is a simplified lightness/chroma/hue space
// derived from HSL, not CIE LCH; it is the space every transition
// interpolates in. Nothing in this file can fail: out-of-range inputs are
// clamped or wrapped so a bad command can never halt the polling loop.

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is a tri-channel LED intensity triple, the unit the hardware sink
// consumes.
type RGB struct {
	R, G, B uint8
}

// Hex renders the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HSL is a hue (degrees), saturation, lightness triple with the fractional
// components in [0,1].
type HSL struct {
	H, S, L float64
}

// LCH is the interpolation space. Lightness and chroma are fractions, hue is
// in degrees. Interpolating component-wise in LCH blends more smoothly than
// interpolating raw RGB channels.
type LCH struct {
	L, C, H float64
}

// Add returns the component-wise sum.
func (a LCH) Add(b LCH) LCH {
	return LCH{L: a.L + b.L, C: a.C + b.C, H: a.H + b.H}
}

// Sub returns the component-wise difference.
func (a LCH) Sub(b LCH) LCH {
	return LCH{L: a.L - b.L, C: a.C - b.C, H: a.H - b.H}
}

// Scale multiplies every component by s.
func (a LCH) Scale(s float64) LCH {
	return LCH{L: a.L * s, C: a.C * s, H: a.H * s}
}

// Lerp interpolates toward end as a + (end-a)*t. Hue is treated as a plain
// scalar: a blend across the 0/360 boundary takes the long way around the
// wheel, matching the fixture's established visual behavior.
func (a LCH) Lerp(end LCH, t float64) LCH {
	return a.Add(end.Sub(a).Scale(t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// wrapHue folds a hue in degrees into [0,360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// KelvinToRGB approximates the black-body radiation color for a temperature
// in Kelvin, using independently clamped polynomial/logarithmic fits per
// channel branched at 6600K on the temp/100 scale. Inputs are clamped to the
// supported 1500-10000K range.
func KelvinToRGB(kelvin float64) RGB {
	if kelvin < 1500 {
		kelvin = 1500
	}
	if kelvin > 10000 {
		kelvin = 10000
	}
	temp := kelvin / 100.0

	var red, green, blue float64

	if temp <= 66.0 {
		red = 255.0
	} else {
		red = 329.698727446 * math.Pow(temp-60.0, -0.1332047592)
	}

	if temp <= 66.0 {
		green = 99.4708025861*math.Log(temp) - 161.1195681661
	} else {
		green = 288.1221695283 * math.Pow(temp-60.0, -0.0755148492)
	}

	if temp >= 66.0 {
		blue = 255.0
	} else if temp <= 19.0 {
		blue = 0.0
	} else {
		blue = 138.5177312231*math.Log(temp-10.0) - 305.0447927307
	}

	return RGB{R: clampChannel(red), G: clampChannel(green), B: clampChannel(blue)}
}

// HSLToRGB converts using the standard formulas. Saturation 0 collapses to
// the achromatic gray r=g=b=l.
func HSLToRGB(hsl HSL) RGB {
	h := wrapHue(hsl.H)
	s := clamp01(hsl.S)
	l := clamp01(hsl.L)

	var rf, gf, bf float64
	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1.0 + s)
		} else {
			q = l + s - l*s
		}
		p := 2.0*l - q
		rf = hueToChannel(p, q, h/360.0+1.0/3.0)
		gf = hueToChannel(p, q, h/360.0)
		bf = hueToChannel(p, q, h/360.0-1.0/3.0)
	}
	return RGB{
		R: clampChannel(rf * 255.0),
		G: clampChannel(gf * 255.0),
		B: clampChannel(bf * 255.0),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6.0*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6.0
	}
	return p
}

// RGBToHSL converts using the standard max/min channel decomposition.
func RGBToHSL(c RGB) HSL {
	rf := float64(c.R) / 255.0
	gf := float64(c.G) / 255.0
	bf := float64(c.B) / 255.0

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))

	l := (maxC + minC) / 2.0
	if maxC == minC {
		return HSL{H: 0, S: 0, L: l}
	}

	delta := maxC - minC
	var s float64
	if l > 0.5 {
		s = delta / (2.0 - maxC - minC)
	} else {
		s = delta / (maxC + minC)
	}

	var h float64
	switch maxC {
	case rf:
		h = (gf - bf) / delta
		if gf < bf {
			h += 6.0
		}
	case gf:
		h = (bf-rf)/delta + 2.0
	default:
		h = (rf-gf)/delta + 4.0
	}
	h *= 60.0

	return HSL{H: h, S: s, L: l}
}

// RGBToHSV converts using the standard sector decomposition; hue comes back
// normalized to [0,360).
func RGBToHSV(c RGB) (h, s, v float64) {
	rf := float64(c.R) / 255.0
	gf := float64(c.G) / 255.0
	bf := float64(c.B) / 255.0

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	delta := maxC - minC

	v = maxC
	if maxC == 0 {
		return 0, 0, 0
	}
	s = delta / maxC
	if delta == 0 {
		return 0, s, v
	}

	switch maxC {
	case rf:
		h = math.Mod((gf-bf)/delta, 6.0)
	case gf:
		h = (bf-rf)/delta + 2.0
	default:
		h = (rf-gf)/delta + 4.0
	}
	h *= 60.0
	if h < 0 {
		h += 360.0
	}
	return h, s, v
}

// HSVToRGB converts hue (degrees, wrapped into [0,360)), saturation and
// value fractions to channel intensities.
func HSVToRGB(h, s, v float64) RGB {
	h = wrapHue(h)
	s = clamp01(s)
	v = clamp01(v)

	c := v * s
	hp := h / 60.0
	x := c * (1.0 - math.Abs(math.Mod(hp, 2.0)-1.0))
	m := v - c

	var rf, gf, bf float64
	switch {
	case hp < 1:
		rf, gf, bf = c, x, 0
	case hp < 2:
		rf, gf, bf = x, c, 0
	case hp < 3:
		rf, gf, bf = 0, c, x
	case hp < 4:
		rf, gf, bf = 0, x, c
	case hp < 5:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}

	return RGB{
		R: clampChannel((rf + m) * 255.0),
		G: clampChannel((gf + m) * 255.0),
		B: clampChannel((bf + m) * 255.0),
	}
}

// RGBToLCH computes the simplified lightness/chroma/hue decomposition. The
// lightness is HSL lightness and the chroma term is the HSL saturation, so
// the mapping is invertible through LCHToRGB but is not perceptual.
func RGBToLCH(c RGB) LCH {
	rf := float64(c.R) / 255.0
	gf := float64(c.G) / 255.0
	bf := float64(c.B) / 255.0

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))

	l := (maxC + minC) / 2.0
	if maxC == minC {
		return LCH{L: l, C: 0, H: 0}
	}

	delta := maxC - minC
	var chroma float64
	if l > 0.5 {
		chroma = delta / (2.0 - maxC - minC)
	} else {
		chroma = delta / (maxC + minC)
	}

	var h float64
	switch maxC {
	case rf:
		h = (gf - bf) / delta
		if gf < bf {
			h += 6.0
		}
		h = math.Mod(h, 6.0)
	case gf:
		h = (bf-rf)/delta + 2.0
	default:
		h = (rf-gf)/delta + 4.0
	}
	h *= 60.0
	if h < 0 {
		h += 360.0
	}

	return LCH{L: l, C: chroma, H: h}
}

// LCHToRGB reconstructs an HSL saturation from chroma and lightness and
// delegates to HSLToRGB. Lightness 0 or 1 forces the achromatic path so the
// division can never produce NaN or Inf.
func LCHToRGB(lch LCH) RGB {
	l := clamp01(lch.L)

	var s float64
	switch {
	case lch.C == 0 || l <= 0 || l >= 1:
		s = 0
	case l < 0.5:
		s = lch.C / (2.0 * l)
	default:
		s = lch.C / (2.0 - 2.0*l)
	}

	return HSLToRGB(HSL{H: lch.H, S: clamp01(s), L: l})
}

// ParseHex parses "#rrggbb" into an RGB triple; the leading # is optional.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	col, errGo := colorful.Hex(strings.ToLower(s))
	if errGo != nil {
		return RGB{}, errGo
	}
	r, g, b := col.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
