package main

import (
	"fmt"

	ledspot "github.com/keyraphi/led-spot"
)

// This file implements a monitor that subscribes to and logs the colors
// emitted by the animation engine, for use when debugging a fixture.

func runMonitoring(subscribeC chan chan ledspot.Frame, quitC <-chan struct{}) {

	frameC := make(chan ledspot.Frame, 1)
	defer close(frameC)
	subscribeC <- frameC

	for {
		select {
		case frame := <-frameC:
			logger.Debug(fmt.Sprintf("%s at %s", frame.Color.Hex(), frame.At.Format("15:04:05.000")))
		case <-quitC:
			return
		}
	}
}
