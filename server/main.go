package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Flags represents the server's command-line flags.
type Flags struct {
	Addr  string
	Debug bool
}

func parseFlags() Flags {
	addr := flag.String("addr", ":8080", "Server's network address")
	debug := flag.Bool("debug", false, "Enable debugging mode to show more verbose logs and trace messages")
	flag.Parse()

	return Flags{Addr: *addr, Debug: *debug}
}

func main() {
	flags := parseFlags()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if flags.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	s := newServer(logger, flags.Debug)

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleConn)

	srv := &http.Server{
		Addr:              flags.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start the server.
	color.Green("Starting composer server on %s", flags.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatalf("error starting server, exiting: %v", err)
	}
}
