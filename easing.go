package ledspot

// Easing curves used to shape the spotlight's transitions. The shapes follow
// Robert Penner's in-out equations; every curve maps progress t in [0,1] to
// an eased progress, with Elastic and Back intentionally overshooting
// outside that range.

import (
	"math"
	"strings"
)

// Curve identifies one of the supported easing functions.
type Curve int

const (
	Linear Curve = iota
	SineInOut
	QuadInOut
	CubicInOut
	QuartInOut
	QuintInOut
	CircInOut
	ElasticInOut
	BackInOut
	BounceInOut
)

var curveNames = [...]string{
	Linear:       "linear",
	SineInOut:    "sine-in-out",
	QuadInOut:    "quad-in-out",
	CubicInOut:   "cubic-in-out",
	QuartInOut:   "quart-in-out",
	QuintInOut:   "quint-in-out",
	CircInOut:    "circ-in-out",
	ElasticInOut: "elastic-in-out",
	BackInOut:    "back-in-out",
	BounceInOut:  "bounce-in-out",
}

func (c Curve) String() string {
	if c < 0 || int(c) >= len(curveNames) {
		return "linear"
	}
	return curveNames[c]
}

// ParseCurve resolves the wire name of a curve, case-insensitively. Unknown
// names resolve to Linear so a bad command can never halt the polling loop.
func ParseCurve(name string) Curve {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range curveNames {
		if n == name {
			return Curve(c)
		}
	}
	return Linear
}

// Ease remaps progress t through the named curve. Callers are responsible
// for clamping t to [0,1]; unknown curves fall back to Linear.
func Ease(c Curve, t float64) float64 {
	switch c {
	case SineInOut:
		return easeSineInOut(t)
	case QuadInOut:
		return easeQuadInOut(t)
	case CubicInOut:
		return easeCubicInOut(t)
	case QuartInOut:
		return easeQuartInOut(t)
	case QuintInOut:
		return easeQuintInOut(t)
	case CircInOut:
		return easeCircInOut(t)
	case ElasticInOut:
		return easeElasticInOut(t)
	case BackInOut:
		return easeBackInOut(t)
	case BounceInOut:
		return easeBounceInOut(t)
	}
	return t
}

func easeSineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1.0) / 2.0
}

func easeQuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2.0 * t * t
	}
	return -1.0 + (4.0-2.0*t)*t
}

func easeCubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4.0 * t * t * t
	}
	return (t-1.0)*(2.0*t-2.0)*(2.0*t-2.0) + 1.0
}

func easeQuartInOut(t float64) float64 {
	f := t * 2.0
	if f < 1.0 {
		return 0.5 * f * f * f * f
	}
	f -= 2.0
	return -0.5 * (f*f*f*f - 2.0)
}

func easeQuintInOut(t float64) float64 {
	f := t * 2.0
	if f < 1.0 {
		return 0.5 * f * f * f * f * f
	}
	f -= 2.0
	return 0.5 * (f*f*f*f*f + 2.0)
}

func easeCircInOut(t float64) float64 {
	f := t * 2.0
	if f < 1.0 {
		return -0.5 * (math.Sqrt(1.0-f*f) - 1.0)
	}
	f -= 2.0
	return 0.5 * (math.Sqrt(1.0-f*f) + 1.0)
}

// easeElasticInOut keeps the exponent of the second half based at f-1, which
// is how this fixture has always rendered elastic transitions. The endpoint
// guard keeps t=0 and t=1 exact, avoiding domain errors in the pow term.
func easeElasticInOut(t float64) float64 {
	if t == 0.0 || t == 1.0 {
		return t
	}
	p := 0.3 * 1.5
	s := p / 4.0
	f := t*2.0 - 1.0
	if f < 0.0 {
		return -0.5 * (math.Pow(2.0, 10.0*f) * math.Sin((f-s)*(2.0*math.Pi)/p))
	}
	f -= 1.0
	return math.Pow(2.0, -10.0*f)*math.Sin((f-s)*(2.0*math.Pi)/p)*0.5 + 1.0
}

func easeBackInOut(t float64) float64 {
	s := 1.70158 * 1.525
	f := t * 2.0
	if f < 1.0 {
		return 0.5 * (f * f * ((s+1.0)*f - s))
	}
	f -= 2.0
	return 0.5 * (f*f*((s+1.0)*f+s) + 2.0)
}

// easeBounceOut is the four-segment decreasing-amplitude parabolic bounce
// primitive the in-out form is composed from.
func easeBounceOut(t float64) float64 {
	switch {
	case t < 1.0/2.75:
		return 7.5625 * t * t
	case t < 2.0/2.75:
		t -= 1.5 / 2.75
		return 7.5625*t*t + 0.75
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return 7.5625*t*t + 0.9375
	}
	t -= 2.625 / 2.75
	return 7.5625*t*t + 0.984375
}

func easeBounceIn(t float64) float64 {
	return 1.0 - easeBounceOut(1.0-t)
}

func easeBounceInOut(t float64) float64 {
	if t < 0.5 {
		return easeBounceIn(t*2.0) * 0.5
	}
	return easeBounceOut(t*2.0-1.0)*0.5 + 0.5
}
