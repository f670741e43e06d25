package ledspot

// This file contains the fadecandy binding. A relay subscribes to the frame
// fanout and forwards every distinct color to an OPC server, painting all of
// the board's pixels with the fixture color. Failures are reported through
// the error channel and never propagate back into the animation loop.

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/cnf/structhash"

	"github.com/kellydunn/go-opc"
)

// StartFadeCandy subscribes to the frame fanout and starts the OPC relay for
// the server at the supplied address.
func StartFadeCandy(server string, channel uint8, pixels int, subscribeC chan chan Frame, errorC chan<- errors.Error, quitC <-chan struct{}) {

	frameC := make(chan Frame, 1)
	subscribeC <- frameC

	go runFadeCandyOPC(server, channel, pixels, frameC, errorC, quitC)
}

func runFadeCandyOPC(server string, channel uint8, pixels int, frameC <-chan Frame, errorC chan<- errors.Error, quitC <-chan struct{}) {

	oc := opc.NewClient()
	if errGo := oc.Connect("tcp", server); errGo != nil {

		err := errors.Wrap(errGo).With("url", server).With("stack", stack.Trace().TrimRuntime())

		select {
		case errorC <- err:
		case <-time.After(100 * time.Millisecond):
			fmt.Fprintln(os.Stderr, err.Error())
		}
	}

	last := []byte{}

	for {
		select {
		case frame := <-frameC:
			// Skip resends of the color already showing on the board.
			hash := structhash.Md5(frame.Color, 1)
			if bytes.Compare(last, hash) == 0 {
				continue
			}
			last = hash

			if err := sendColor(oc, channel, pixels, frame.Color); err != nil {
				select {
				case errorC <- err.With("url", server):
				case <-time.After(100 * time.Millisecond):
					fmt.Fprintln(os.Stderr, err.Error())
				}
			}
		case <-quitC:
			return
		}
	}
}

func sendColor(oc *opc.Client, channel uint8, pixels int, color RGB) (err errors.Error) {

	m := opc.NewMessage(channel)
	m.SetLength(uint16(pixels * 3))

	for i := 0; i < pixels; i++ {
		m.SetPixelColor(i, color.R, color.G, color.B)
	}

	if errGo := oc.Send(m); errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}
