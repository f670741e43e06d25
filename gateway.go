package ledspot

// Gateway wires the configured pieces together: the animation engine feeding
// the frame fanout, the OPC relay draining it, the poll loop driving the
// engine, and the HTTP command server.

import (
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

// fanoutSink adapts the fanout input channel to the engine's sink contract.
// The send never blocks; when the fanout goroutine falls behind a frame is
// dropped, the next poll replaces it anyway.
type fanoutSink struct {
	inC chan Frame
}

func (f *fanoutSink) WriteColor(c RGB) {
	select {
	case f.inC <- Frame{Color: c, At: time.Now()}:
	default:
	}
}

type Gateway struct {
}

// Start brings up the whole pipeline and returns the engine, for the caller
// to issue commands against, and the fanout subscription channel for anyone
// wanting to observe emitted frames.
func (*Gateway) Start(cfg *Config, errorC chan<- errors.Error, quitC <-chan struct{}) (spot *Spotlight, subscribeC chan chan Frame) {

	frameC, subscribeC := StartFanOut(quitC)

	spot = NewSpotlight(&fanoutSink{inC: frameC})
	spot.SetTransitionDuration(cfg.Defaults.TransitionDuration)
	spot.SetTransitionEasing(ParseCurve(cfg.Defaults.TransitionEasing))
	spot.SetCycleDuration(cfg.Defaults.CycleDuration)
	spot.SetCycleEasing(ParseCurve(cfg.Defaults.CycleEasing))

	StartFadeCandy(cfg.OPC.Server, cfg.OPC.Channel, cfg.OPC.Pixels, subscribeC, errorC, quitC)

	go runPollLoop(spot, cfg.Interval(), quitC)

	server := NewSpotlightServer(spot)
	go func() {
		if errGo := server.ListenAndServe(cfg.Listen); errGo != nil {
			err := errors.Wrap(errGo).With("listen", cfg.Listen).With("stack", stack.Trace().TrimRuntime())
			select {
			case errorC <- err:
			default:
			}
		}
	}()

	return spot, subscribeC
}

// runPollLoop advances the engine on every tick until told to quit. The
// engine itself never sleeps or reads a clock; all timing flows through the
// tick's timestamp.
func runPollLoop(spot *Spotlight, interval time.Duration, quitC <-chan struct{}) {

	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case now := <-tick.C:
			spot.Update(now)
		case <-quitC:
			return
		}
	}
}
