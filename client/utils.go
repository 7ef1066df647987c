package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/burntcarrot/composer/richtext"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
)

// Flags represents the command-line flags that are passed to the composer.
type Flags struct {
	Server string
	Secure bool
	File   string
	Debug  bool
}

// parseFlags parses command-line flags.
func parseFlags() Flags {
	serverAddr := flag.String("server", "", "The network address of a composer server to edit through; empty edits locally")
	useSecureConn := flag.Bool("secure", false, "Enable a secure WebSocket connection (wss://)")
	file := flag.String("file", "", "The file to load the document from, and save it to")
	enableDebug := flag.Bool("debug", false, "Enable debugging mode to dump the document state into the debug log")

	flag.Parse()

	return Flags{
		Server: *serverAddr,
		Secure: *useSecureConn,
		File:   *file,
		Debug:  *enableDebug,
	}
}

// createConn creates a WebSocket connection to the server.
func createConn(flags Flags) (*websocket.Conn, *http.Response, error) {
	u := url.URL{Scheme: "ws", Host: flags.Server, Path: "/"}
	if flags.Secure {
		u.Scheme = "wss"
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 2 * time.Minute,
	}

	return dialer.Dial(u.String(), nil)
}

// ensureDirExists ensures that a directory exists, and if it isn't present, it tries to create a new one.
func ensureDirExists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return true, nil
	}

	if err := os.Mkdir(path, 0700); err != nil {
		return false, err
	}

	return true, nil
}

// logPaths returns the paths of the log files. They live in ~/.composer when
// it exists or can be created, and in the working directory otherwise.
func logPaths() (string, string, error) {
	logPath := "composer.log"
	debugLogPath := "composer-debug.log"

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return logPath, debugLogPath, nil
	}

	dir := filepath.Join(homeDir, ".composer")
	if _, err := ensureDirExists(dir); err != nil {
		return "", "", err
	}

	return filepath.Join(dir, logPath), filepath.Join(dir, debugLogPath), nil
}

// setupLogger sends warnings and errors to the log file, and everything
// below to the debug log file. Nothing is written to stdout, which belongs to
// the TUI.
func setupLogger(logger *logrus.Logger) (*os.File, *os.File, error) {
	logPath, debugLogPath, err := logPaths()
	if err != nil {
		return nil, nil, err
	}
	return openLogs(logger, logPath, debugLogPath)
}

func openLogs(logger *logrus.Logger, logPath, debugLogPath string) (*os.File, *os.File, error) {
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // skipcq: GSC-G302
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	debugLogFile, err := os.OpenFile(debugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // skipcq: GSC-G302
	if err != nil {
		logFile.Close()
		return nil, nil, fmt.Errorf("open debug log file: %w", err)
	}

	logger.SetOutput(io.Discard)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(&writer.Hook{
		Writer: logFile,
		LogLevels: []logrus.Level{
			logrus.WarnLevel,
			logrus.ErrorLevel,
			logrus.FatalLevel,
			logrus.PanicLevel,
		},
	})
	logger.AddHook(&writer.Hook{
		Writer: debugLogFile,
		LogLevels: []logrus.Level{
			logrus.TraceLevel,
			logrus.DebugLevel,
			logrus.InfoLevel,
		},
	})

	return logFile, debugLogFile, nil
}

// closeLogFiles closes the log files created by the client.
// closeLogFiles is meant to be used for defer calls.
func closeLogFiles(logFile, debugLogFile *os.File) {
	if err := logFile.Close(); err != nil {
		fmt.Printf("Failed to close log file: %s", err)
		return
	}

	if err := debugLogFile.Close(); err != nil {
		fmt.Printf("Failed to close debug log file: %s", err)
		return
	}
}

// printDoc "prints" the document state to the logs.
func printDoc(doc richtext.Doc) {
	if !flags.Debug {
		return
	}
	logger.Infof("---DOCUMENT STATE---")
	for i, p := range doc.Paragraphs() {
		for _, run := range p.Value.Runs() {
			logger.WithFields(logrus.Fields{
				"paragraph": i,
				"pid":       p.Key,
				"rid":       run.Key,
				"styles":    run.Value.Styles,
			}).Infof("%q", run.Value.Text)
		}
	}
}
