package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	logxi "github.com/mgutz/logxi/v1"

	"github.com/karlmutch/errors"

	"github.com/karlmutch/envflag"

	ledspot "github.com/keyraphi/led-spot"
	"github.com/keyraphi/led-spot/version"
)

var (
	logger = logxi.New("spotd")

	verbose    = flag.Bool("v", false, "When enabled will print internal logging for this tool")
	configFile = flag.String("config", "", "Path to an optional YAML configuration file")
	listen     = flag.String("listen", "", "Address for the command API, overriding the configuration file")
	opcServer  = flag.String("opc-server", "", "host:port of the fadecandy OPC server, overriding the configuration file")
)

func usage() {
	fmt.Fprintln(os.Stderr, path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "usage: ", os.Args[0], "[options]       HTTP ← commands → OPC (spotd)      ", version.GitHash, "    ", version.BuildTime)
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "spotd drives a tri-color LED spotlight attached to an OPC based USB fadecandy board")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment Variables:")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options can also be extracted from environment variables by changing dashes '-' to underscores and using upper case.")
}

func init() {
	flag.Usage = usage
}

func main() {

	// Parse the CLI flags
	if !flag.Parsed() {
		envflag.Parse()
	}

	if *verbose {
		logger.SetLevel(logxi.LevelDebug)
	}

	logger.Debug(fmt.Sprintf("%s built at %s, against commit id %s\n", os.Args[0], version.BuildTime, version.GitHash))

	cfg, err := ledspot.LoadConfig(*configFile)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(-1)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *opcServer != "" {
		cfg.OPC.Server = *opcServer
	}

	errorC := make(chan errors.Error, 1)
	quitC := make(chan struct{})

	spot, subscribeC := (&ledspot.Gateway{}).Start(cfg, errorC, quitC)

	// Boot into a fixed red so a freshly powered fixture is visibly alive.
	spot.SetRGB(ledspot.RGB{R: 255}, time.Now())

	if *verbose {
		go runMonitoring(subscribeC, quitC)
	}

	stopC := make(chan os.Signal, 1)
	signal.Notify(stopC, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case err := <-errorC:
			if err != nil {
				logger.Warn(err.Error())
			}
		case <-stopC:
			close(quitC)
			return
		}
	}
}
