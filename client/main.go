package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/burntcarrot/composer/commons"
	"github.com/burntcarrot/composer/richtext"
	"github.com/burntcarrot/composer/session"
	"github.com/burntcarrot/composer/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// ConnReader is the read side of the server connection.
type ConnReader interface {
	ReadJSON(v interface{}) error
}

var (
	// Local document state.
	sess *session.Session

	// Logger for the client.
	logger = logrus.New()

	// Command-line flags.
	flags Flags
)

func main() {
	flags = parseFlags()

	logFile, debugLogFile, err := setupLogger(logger)
	if err != nil {
		color.Red("Failed to set up logger, exiting: %s\n", err)
		os.Exit(1)
	}
	defer closeLogFiles(logFile, debugLogFile)

	if flags.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	opts := []session.Option{session.WithLogger(logger)}

	doc, err := loadDoc(flags.File)
	if err != nil {
		color.Red("Failed to load %s: %s\n", flags.File, err)
		logger.Errorf("failed to load %s: %v", flags.File, err)
		return
	}
	if doc != nil {
		opts = append(opts, session.WithDoc(*doc))
	}

	sess = session.New(opts...)
	printDoc(sess.Doc())

	model := tui.New(sess, flags.File, logger)

	var reader ConnReader
	if flags.Server != "" {
		conn, _, err := createConn(flags)
		if err != nil {
			color.Red("Connection error, exiting: %s\n", err)
			logger.Errorf("connection error: %v", err)
			return
		}
		defer conn.Close()

		if doc != nil {
			color.Yellow("Editing the server's document; %s is only used for saving.\n", flags.File)
		}
		model = model.WithConn(conn)
		reader = conn
	}

	p := tui.NewProgram(model)
	if reader != nil {
		go readMessages(reader, p.Send)
	}

	if err := p.Start(); err != nil {
		fmt.Printf("TUI error, exiting: %s\n", err)
		logger.Errorf("TUI error, exiting: %v", err)
	}

	printDoc(sess.Doc())
}

// loadDoc reads the document in path. A file that does not exist yet is not
// an error: it is created on the first save.
func loadDoc(path string) (*richtext.Doc, error) {
	if path == "" {
		return nil, nil
	}
	doc, err := richtext.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Infof("%s does not exist yet, starting with an empty document", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// readMessages reads messages from the server until the connection closes,
// handing each one to send.
func readMessages(conn ConnReader, send func(tea.Msg)) {
	for {
		var msg commons.Message

		if err := conn.ReadJSON(&msg); err != nil {
			logger.Errorf("websocket error: %v", err)
			send(tui.ConnClosedMsg{Err: err})
			return
		}
		logger.WithField("type", msg.Type).Debug("received message")

		send(tui.RemoteMsg(msg))
	}
}
