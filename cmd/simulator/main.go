package main

// A stand-in for a fadecandy board. It accepts OPC connections and renders
// the first pixel of every frame as a colored block on a truecolor terminal,
// so the whole controller pipeline can be exercised without hardware.

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"net"
	"os"

	logxi "github.com/mgutz/logxi/v1"
)

var (
	listen = flag.String("listen", ":7890", "Address to bind to")

	logW = logxi.NewLogger(logxi.NewConcurrentWriter(os.Stdout), "spot-simulator")
)

func main() {

	flag.Parse()

	ln, errGo := net.Listen("tcp", *listen)
	if errGo != nil {
		logW.Error(errGo.Error())
		os.Exit(-1)
	}
	logW.Info(fmt.Sprintf("simulated fadecandy listening on %s", *listen))

	for {
		conn, errGo := ln.Accept()
		if errGo != nil {
			logW.Warn(errGo.Error())
			continue
		}
		go serveOPC(conn)
	}
}

// serveOPC reads OPC messages from one connection: a 4 byte header of
// channel, command and big-endian payload length, then length bytes of RGB
// pixel data.
func serveOPC(conn net.Conn) {
	defer conn.Close()

	header := make([]byte, 4)
	for {
		if _, errGo := io.ReadFull(conn, header); errGo != nil {
			if errGo != io.EOF {
				logW.Debug(errGo.Error())
			}
			return
		}

		length := binary.BigEndian.Uint16(header[2:4])
		data := make([]byte, length)
		if _, errGo := io.ReadFull(conn, data); errGo != nil {
			logW.Debug(errGo.Error())
			return
		}

		if length < 3 {
			continue
		}

		// Every pixel carries the same fixture color, the first is enough.
		r, g, b := data[0], data[1], data[2]
		fmt.Printf("\x1b[48;2;%d;%d;%dm        \x1b[0m #%02x%02x%02x channel %d\n", r, g, b, r, g, b, header[0])
	}
}
