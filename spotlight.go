package ledspot

// Spotlight drives a tri-channel RGB fixture through four mutually exclusive
// modes: idle/fixed, an eased transition to a fixed color, a continuous
// color wheel rotation, and a multi-color cycle. All animation is computed
// incrementally: an external scheduler calls Update with the current time on
// every tick and the engine emits at most one color per call to its sink.
// Nothing here blocks and nothing here reads a clock; time always arrives as
// an argument, the way the animation frames are generated elsewhere in this
// codebase.

import (
	"math/rand"
	"sync"
	"time"
)

// MaxCycleColors bounds the cycle list so a command can never grow the
// engine's state without limit.
const MaxCycleColors = 32

// RotationDirection selects which way the color wheel turns.
type RotationDirection int

const (
	Clockwise RotationDirection = iota
	CounterClockwise
)

// Sink receives the color computed on each poll. Implementations must not
// block; failures are reported out of band, never back into the engine.
type Sink interface {
	WriteColor(RGB)
}

type mode int

const (
	modeIdle mode = iota
	modeFixed
	modeWheel
	modeCycle
)

var modeNames = [...]string{"idle", "fixed-transition", "wheel", "cycle"}

// Spotlight owns the animation state. A single mutex bounds every public
// operation so mode setters and Update never interleave partially.
type Spotlight struct {
	mu   sync.Mutex
	sink Sink
	rng  *rand.Rand

	mode    mode
	current RGB

	// Fixed-color transition state.
	fixedStart    LCH
	fixedEnd      LCH
	fixedAnchor   time.Time
	fixedDuration float64
	fixedEasing   Curve

	// Color wheel state. The saturation and value are sampled from whatever
	// color was showing when the mode was enabled.
	startHue   float64
	saturation float64
	value      float64
	period     float64
	direction  RotationDirection

	// Color cycle state.
	cycle         [MaxCycleColors]LCH
	cycleCount    int
	cycleIndex    int
	cycleStart    LCH
	cycleDuration float64
	cycleEasing   Curve
	random        bool

	// Timing anchor shared by the wheel and cycle modes.
	anchor time.Time
}

// NewSpotlight creates an idle engine showing black, emitting to sink.
func NewSpotlight(sink Sink) *Spotlight {
	return &Spotlight{
		sink:          sink,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		fixedDuration: 0.2,
		fixedEasing:   CubicInOut,
		cycleDuration: 2.0,
		cycleEasing:   Linear,
	}
}

// stopAll returns the engine to idle, cancelling whatever mode was running.
// Callers hold mu.
func (s *Spotlight) stopAll() {
	s.mode = modeIdle
	s.period = 0
	s.cycleCount = 0
}

func (s *Spotlight) emit(c RGB) {
	s.current = c
	if s.sink != nil {
		s.sink.WriteColor(c)
	}
}

// progress returns elapsed/duration without an upper clamp so callers can
// detect completion. Non-positive durations complete instantly.
func progress(elapsed time.Duration, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	t := elapsed.Seconds() / duration
	if t < 0 {
		return 0
	}
	return t
}

// wheelHue computes the instantaneous wheel hue for the given time. Callers
// hold mu and guarantee period > 0.
func (s *Spotlight) wheelHue(now time.Time) float64 {
	delta := now.Sub(s.anchor).Seconds() / s.period * 360.0
	if s.direction == CounterClockwise {
		delta = -delta
	}
	return wrapHue(s.startHue + delta)
}

// SetRGB begins an eased transition to a fixed color. The transition starts
// from whatever color is showing right now, sampled from the previously
// active mode, so switching modes never causes a visual jump.
func (s *Spotlight) SetRGB(c RGB, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.currentRGB(now)
	s.stopAll()

	s.fixedStart = RGBToLCH(start)
	s.fixedEnd = RGBToLCH(c)
	s.fixedAnchor = now
	s.mode = modeFixed
}

// SetColorTemperature writes a Kelvin color immediately, scaled by a
// brightness fraction. No animation; any running mode is cancelled.
func (s *Spotlight) SetColorTemperature(kelvin, brightness float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopAll()

	brightness = clamp01(brightness)
	c := KelvinToRGB(kelvin)
	c.R = uint8(float64(c.R) * brightness)
	c.G = uint8(float64(c.G) * brightness)
	c.B = uint8(float64(c.B) * brightness)

	s.emit(c)
}

// EnableColorWheelMode rotates the hue continuously, one full revolution per
// period, holding the saturation and value of the color showing at enable
// time. A non-positive period disables rather than divides by zero.
func (s *Spotlight) EnableColorWheelMode(periodSeconds float64, direction RotationDirection, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.currentRGB(now)
	s.stopAll()

	if periodSeconds <= 0 {
		return
	}

	h, sat, v := RGBToHSV(start)
	s.startHue = h
	s.saturation = sat
	s.value = v
	s.period = periodSeconds
	s.direction = direction
	s.anchor = now
	s.mode = modeWheel
}

// EnableColorCycleMode replaces the cycle list wholesale, truncating to
// MaxCycleColors, and begins the first eased transition from the color
// showing right now to the first entry. With random set the list is
// shuffled in place and each completed leg draws a fresh index distinct
// from the current one. An empty list leaves the engine idle.
func (s *Spotlight) EnableColorCycleMode(colors []RGB, random bool, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.currentRGB(now)
	s.stopAll()

	count := len(colors)
	if count > MaxCycleColors {
		count = MaxCycleColors
	}
	for i := 0; i < count; i++ {
		s.cycle[i] = RGBToLCH(colors[i])
	}
	if count == 0 {
		return
	}

	if random {
		for i := 0; i < count-1; i++ {
			j := i + s.rng.Intn(count-i)
			s.cycle[i], s.cycle[j] = s.cycle[j], s.cycle[i]
		}
	}

	s.cycleCount = count
	s.random = random
	s.cycleIndex = 0
	s.cycleStart = RGBToLCH(start)
	s.anchor = now
	s.mode = modeCycle
}

// SetCycleDuration sets the length in seconds of each cycle leg. It applies
// to the duration denominator from the next poll onward, not retroactively
// to an already-computed eased fraction.
func (s *Spotlight) SetCycleDuration(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycleDuration = seconds
}

// SetCycleEasing sets the curve used by cycle legs.
func (s *Spotlight) SetCycleEasing(c Curve) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycleEasing = c
}

// SetTransitionDuration sets the length in seconds of fixed-color
// transitions.
func (s *Spotlight) SetTransitionDuration(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixedDuration = seconds
}

// SetTransitionEasing sets the curve used by fixed-color transitions.
func (s *Spotlight) SetTransitionEasing(c Curve) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixedEasing = c
}

// Update is the single per-tick entry point: it advances whichever mode is
// active and emits the resulting color to the sink, at most once.
func (s *Spotlight) Update(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.mode {
	case modeFixed:
		t := progress(now.Sub(s.fixedAnchor), s.fixedDuration)
		if t >= 1 {
			// One final exact-target emission, then back to idle.
			s.emit(LCHToRGB(s.fixedEnd))
			s.mode = modeIdle
			return
		}
		eased := Ease(s.fixedEasing, t)
		s.emit(LCHToRGB(s.fixedStart.Lerp(s.fixedEnd, eased)))

	case modeWheel:
		s.emit(HSVToRGB(s.wheelHue(now), s.saturation, s.value))

	case modeCycle:
		t := progress(now.Sub(s.anchor), s.cycleDuration)
		if t >= 1 {
			// Commit to the target, advance the index and restart the clock
			// for the next leg.
			target := s.cycle[s.cycleIndex]
			s.emit(LCHToRGB(target))
			s.cycleStart = target
			s.cycleIndex = s.nextCycleIndex()
			s.anchor = now
			return
		}
		eased := Ease(s.cycleEasing, t)
		s.emit(LCHToRGB(s.cycleStart.Lerp(s.cycle[s.cycleIndex], eased)))
	}
}

// nextCycleIndex picks the target for the next cycle leg. Callers hold mu.
func (s *Spotlight) nextCycleIndex() int {
	if s.cycleCount > 1 && s.random {
		for {
			next := s.rng.Intn(s.cycleCount)
			if next != s.cycleIndex {
				return next
			}
		}
	}
	return (s.cycleIndex + 1) % s.cycleCount
}

// currentRGB reproduces the color Update would emit at the given time
// without mutating anything. Callers hold mu.
func (s *Spotlight) currentRGB(now time.Time) RGB {
	switch s.mode {
	case modeFixed:
		t := clamp01(progress(now.Sub(s.fixedAnchor), s.fixedDuration))
		eased := Ease(s.fixedEasing, t)
		return LCHToRGB(s.fixedStart.Lerp(s.fixedEnd, eased))
	case modeWheel:
		return HSVToRGB(s.wheelHue(now), s.saturation, s.value)
	case modeCycle:
		t := clamp01(progress(now.Sub(s.anchor), s.cycleDuration))
		eased := Ease(s.cycleEasing, t)
		return LCHToRGB(s.cycleStart.Lerp(s.cycle[s.cycleIndex], eased))
	}
	return s.current
}

// CurrentRGB returns the color that would be emitted right now, without
// advancing any state or touching the sink.
func (s *Spotlight) CurrentRGB(now time.Time) RGB {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentRGB(now)
}

// Snapshot reports the instantaneous color and the name of the active mode.
func (s *Spotlight) Snapshot(now time.Time) (RGB, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentRGB(now), modeNames[s.mode]
}
