package ledspot

import (
	"math/rand"
	"testing"
	"time"
)

type recordingSink struct {
	colors []RGB
}

func (r *recordingSink) WriteColor(c RGB) {
	r.colors = append(r.colors, c)
}

func (r *recordingSink) last() RGB {
	if len(r.colors) == 0 {
		return RGB{}
	}
	return r.colors[len(r.colors)-1]
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(seconds float64) time.Time {
	return t0.Add(time.Duration(seconds * float64(time.Second)))
}

// newTestSpotlight returns an engine with a recording sink, linear easings
// and a deterministic random source.
func newTestSpotlight() (*Spotlight, *recordingSink) {
	sink := &recordingSink{}
	spot := NewSpotlight(sink)
	spot.rng = rand.New(rand.NewSource(1))
	spot.SetTransitionEasing(Linear)
	spot.SetCycleEasing(Linear)
	return spot, sink
}

// settle drives the engine to a fixed color instantly.
func settle(spot *Spotlight, c RGB, now time.Time) {
	prev := spot.fixedDuration
	spot.SetTransitionDuration(0)
	spot.SetRGB(c, now)
	spot.Update(now)
	spot.SetTransitionDuration(prev)
}

func TestFixedTransitionBlendsAndCompletes(t *testing.T) {
	spot, sink := newTestSpotlight()
	spot.SetTransitionDuration(1.0)

	spot.SetRGB(RGB{255, 0, 0}, t0)

	spot.Update(at(0.5))
	if mid := sink.last(); !rgbClose(mid, RGB{127, 0, 0}, 2) {
		t.Fatalf("midpoint of black to red: got %+v", mid)
	}
	if _, mode := spot.Snapshot(at(0.5)); mode != "fixed-transition" {
		t.Fatalf("mode during transition: got %s", mode)
	}

	spot.Update(at(1.5))
	if got := sink.last(); got != (RGB{255, 0, 0}) {
		t.Fatalf("final emission must be the exact target: got %+v", got)
	}
	if _, mode := spot.Snapshot(at(1.5)); mode != "idle" {
		t.Fatalf("mode after completion: got %s", mode)
	}

	// The engine is idle now: further polls emit nothing.
	emitted := len(sink.colors)
	spot.Update(at(2.0))
	if len(sink.colors) != emitted {
		t.Fatal("idle engine should not emit")
	}
}

func TestFixedTransitionInstantWithNonPositiveDuration(t *testing.T) {
	spot, sink := newTestSpotlight()
	spot.SetTransitionDuration(0)

	spot.SetRGB(RGB{0, 0, 255}, t0)
	spot.Update(t0)

	if got := sink.last(); got != (RGB{0, 0, 255}) {
		t.Fatalf("got %+v", got)
	}
	if _, mode := spot.Snapshot(t0); mode != "idle" {
		t.Fatalf("mode: got %s", mode)
	}
}

func TestSetColorTemperatureWritesImmediately(t *testing.T) {
	spot, sink := newTestSpotlight()

	spot.SetColorTemperature(3000, 0.5)

	if len(sink.colors) != 1 {
		t.Fatalf("expected exactly one write, got %d", len(sink.colors))
	}
	full := KelvinToRGB(3000)
	want := RGB{
		R: uint8(float64(full.R) * 0.5),
		G: uint8(float64(full.G) * 0.5),
		B: uint8(float64(full.B) * 0.5),
	}
	if got := sink.last(); got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if _, mode := spot.Snapshot(t0); mode != "idle" {
		t.Fatalf("temperature mode should be idle, got %s", mode)
	}
}

func TestWheelRotatesFromSampledHue(t *testing.T) {
	spot, sink := newTestSpotlight()
	settle(spot, RGB{255, 0, 0}, t0)

	spot.EnableColorWheelMode(10, Clockwise, t0)

	spot.Update(at(2.5))
	if got := sink.last(); !rgbClose(got, RGB{127, 255, 0}, 1) {
		t.Fatalf("quarter turn clockwise from red: got %+v", got)
	}

	// 15s into a 10s period is half a turn past a full rotation.
	spot.Update(at(15))
	if got := sink.last(); got != (RGB{0, 255, 255}) {
		t.Fatalf("hue 180 from red should be cyan: got %+v", got)
	}
}

func TestWheelCounterClockwise(t *testing.T) {
	spot, sink := newTestSpotlight()
	settle(spot, RGB{255, 0, 0}, t0)

	spot.EnableColorWheelMode(10, CounterClockwise, t0)

	spot.Update(at(2.5))
	if got := sink.last(); !rgbClose(got, RGB{127, 0, 255}, 1) {
		t.Fatalf("quarter turn counterclockwise from red: got %+v", got)
	}
}

func TestWheelNonPositivePeriodStaysIdle(t *testing.T) {
	spot, sink := newTestSpotlight()
	settle(spot, RGB{255, 0, 0}, t0)
	emitted := len(sink.colors)

	spot.EnableColorWheelMode(0, Clockwise, t0)

	if _, mode := spot.Snapshot(t0); mode != "idle" {
		t.Fatalf("mode: got %s", mode)
	}
	spot.Update(at(1))
	if len(sink.colors) != emitted {
		t.Fatal("disabled wheel should not emit")
	}
}

func TestCycleSequencing(t *testing.T) {
	spot, sink := newTestSpotlight()
	spot.SetCycleDuration(1.0)

	colors := []RGB{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}}
	spot.EnableColorCycleMode(colors, false, t0)

	spot.Update(at(0))
	if got := sink.last(); got != (RGB{0, 0, 0}) {
		t.Fatalf("t=0 should still show the sampled start (black): got %+v", got)
	}

	spot.Update(at(0.5))
	if got := sink.last(); !rgbClose(got, RGB{127, 0, 0}, 2) {
		t.Fatalf("t=0.5 should blend toward red: got %+v", got)
	}

	spot.Update(at(1.0))
	if got := sink.last(); got != (RGB{255, 0, 0}) {
		t.Fatalf("t=1.0 should commit exactly red: got %+v", got)
	}
	if spot.cycleIndex != 1 {
		t.Fatalf("index after first commit: got %d want 1", spot.cycleIndex)
	}

	spot.Update(at(1.5))
	if got := sink.last(); !rgbClose(got, RGB{255, 255, 0}, 2) {
		t.Fatalf("t=1.5 should blend red toward green (through yellow): got %+v", got)
	}
}

func TestCycleEmptyListIsNoOp(t *testing.T) {
	spot, sink := newTestSpotlight()

	spot.EnableColorCycleMode(nil, false, t0)

	if _, mode := spot.Snapshot(t0); mode != "idle" {
		t.Fatalf("mode: got %s", mode)
	}
	spot.Update(at(1))
	if len(sink.colors) != 0 {
		t.Fatal("empty cycle list should not emit")
	}
}

func TestCycleListTruncatedToCapacity(t *testing.T) {
	spot, _ := newTestSpotlight()

	colors := make([]RGB, MaxCycleColors+10)
	for i := range colors {
		colors[i] = RGB{R: uint8(i)}
	}
	spot.EnableColorCycleMode(colors, false, t0)

	if spot.cycleCount != MaxCycleColors {
		t.Fatalf("count: got %d want %d", spot.cycleCount, MaxCycleColors)
	}
}

func TestCycleRandomShuffleKeepsColors(t *testing.T) {
	spot, _ := newTestSpotlight()

	colors := []RGB{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 0}}
	spot.EnableColorCycleMode(colors, true, t0)

	want := map[LCH]int{}
	for _, c := range colors {
		want[RGBToLCH(c)]++
	}
	got := map[LCH]int{}
	for i := 0; i < spot.cycleCount; i++ {
		got[spot.cycle[i]]++
	}
	if len(got) != len(want) {
		t.Fatalf("shuffle changed the color set: %v vs %v", got, want)
	}
	for k, n := range want {
		if got[k] != n {
			t.Fatalf("shuffle changed the color set at %+v", k)
		}
	}
}

func TestCycleRandomNeverRepeatsIndex(t *testing.T) {
	spot, _ := newTestSpotlight()
	spot.SetCycleDuration(2.0)

	colors := []RGB{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}}
	spot.EnableColorCycleMode(colors, true, t0)

	now := t0
	for i := 0; i < 25; i++ {
		prev := spot.cycleIndex
		now = now.Add(2500 * time.Millisecond)
		spot.Update(now)
		if spot.cycleIndex == prev {
			t.Fatalf("random cycle repeated index %d on commit %d", prev, i)
		}
	}
}

func TestModeSettersCancelEachOther(t *testing.T) {
	spot, _ := newTestSpotlight()
	colors := []RGB{{255, 0, 0}, {0, 255, 0}}

	spot.EnableColorCycleMode(colors, false, t0)
	spot.EnableColorWheelMode(10, Clockwise, t0)
	if _, mode := spot.Snapshot(t0); mode != "wheel" {
		t.Fatalf("wheel should replace cycle: got %s", mode)
	}
	if spot.cycleCount != 0 {
		t.Fatal("cycle state should be cancelled")
	}

	spot.SetRGB(RGB{1, 2, 3}, t0)
	if _, mode := spot.Snapshot(t0); mode != "fixed-transition" {
		t.Fatalf("fixed should replace wheel: got %s", mode)
	}
	if spot.period != 0 {
		t.Fatal("wheel state should be cancelled")
	}
}

func TestModeSetterIdempotence(t *testing.T) {
	spot, sink := newTestSpotlight()
	spot.SetTransitionDuration(1.0)

	// Two calls back to back: only the second call's target matters.
	spot.SetRGB(RGB{255, 0, 0}, t0)
	spot.SetRGB(RGB{0, 0, 255}, t0)

	spot.Update(at(2))
	if got := sink.last(); got != (RGB{0, 0, 255}) {
		t.Fatalf("got %+v want the second target", got)
	}
}

func TestFixedTransitionStartsFromWheelColor(t *testing.T) {
	spot, sink := newTestSpotlight()
	settle(spot, RGB{255, 0, 0}, t0)
	spot.SetTransitionDuration(1.0)

	spot.EnableColorWheelMode(10, Clockwise, t0)

	// A quarter turn in, the wheel shows chartreuse. Switching to a fixed
	// color must depart from that instantaneous color, not from the wheel's
	// start hue or from black.
	spot.SetRGB(RGB{0, 0, 255}, at(2.5))
	spot.Update(at(2.5))

	if got := sink.last(); !rgbClose(got, RGB{127, 255, 0}, 2) {
		t.Fatalf("transition start: got %+v want the wheel color at switch time", got)
	}
}

func TestCurrentRGBDoesNotAdvanceState(t *testing.T) {
	spot, sink := newTestSpotlight()
	settle(spot, RGB{255, 0, 0}, t0)
	spot.EnableColorWheelMode(10, Clockwise, t0)
	emitted := len(sink.colors)

	c1 := spot.CurrentRGB(at(2.5))
	c2 := spot.CurrentRGB(at(2.5))
	if c1 != c2 {
		t.Fatalf("sampling twice at the same time differed: %+v vs %+v", c1, c2)
	}
	if len(sink.colors) != emitted {
		t.Fatal("CurrentRGB must not write to the sink")
	}

	// And it must agree with what Update would emit.
	spot.Update(at(2.5))
	if got := sink.last(); got != c1 {
		t.Fatalf("CurrentRGB %+v disagrees with Update %+v", c1, got)
	}
}

func TestCycleDurationChangeAppliesGoingForward(t *testing.T) {
	spot, sink := newTestSpotlight()
	spot.SetCycleDuration(10.0)

	colors := []RGB{{255, 0, 0}, {0, 255, 0}}
	spot.EnableColorCycleMode(colors, false, t0)

	// Shrinking the duration mid-leg re-scales the denominator: the same
	// elapsed time now reads as complete.
	spot.SetCycleDuration(1.0)
	spot.Update(at(5))
	if got := sink.last(); got != (RGB{255, 0, 0}) {
		t.Fatalf("leg should have completed under the new duration: got %+v", got)
	}
	if spot.cycleIndex != 1 {
		t.Fatalf("index: got %d want 1", spot.cycleIndex)
	}
}
