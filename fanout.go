package ledspot

import (
	"time"
)

// Frame is one emitted fixture color, stamped with the poll time that
// produced it.
type Frame struct {
	Color RGB
	At    time.Time
}

// StartFanOut implements a broadcast mechanism for emitted frames. The
// function returns a single channel to which frames get sent and, a channel
// that can be used to add listeners. A listener that cannot keep up has
// frames dropped rather than stalling the animation loop.
func StartFanOut(quitC <-chan struct{}) (inC chan Frame, subC chan chan Frame) {

	inC = make(chan Frame, 1)
	subC = make(chan chan Frame, 1)

	go func(quitC <-chan struct{}) {
		subs := []chan Frame{}
		for {
			select {
			case <-quitC:
				return
			case sub := <-subC:
				if nil != sub {
					subs = append(subs, sub)
				}
			case frame := <-inC:
				for _, ch := range subs {
					select {
					case ch <- frame:
					default:
					}
				}
			}
		}
	}(quitC)

	return inC, subC
}
