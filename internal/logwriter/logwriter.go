package logwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sztanpet.net/zvpsz/melody-buzzer/internal/file"
	"github.com/juju/loggo"
)

// Sender forwards log lines somewhere remote, *telegram.Bot is one
type Sender interface {
	Send(txt string, disableNotification bool) error
}

type writer struct {
	bot     Sender
	logPath string
	stderr  io.Writer
}

// Setup replaces loggo's default writer. Lines go to statePath/<binary>.log,
// or stderr when statePath is empty, and to bot when it is not nil.
func Setup(bot Sender, statePath, levels string) error {
	w := &writer{
		bot:    bot,
		stderr: os.Stderr,
	}

	if statePath != "" {
		path, err := os.Executable()
		if err != nil {
			return fmt.Errorf("os.Executable() failed: %v", err)
		}
		w.logPath = filepath.Join(statePath, filepath.Base(path)+".log")
	}

	if _, err := loggo.RemoveWriter("default"); err != nil {
		return err
	}
	if err := loggo.RegisterWriter("default", w); err != nil {
		return err
	}

	return loggo.ConfigureLoggers(levels)
}

func (w *writer) Write(e loggo.Entry) {
	line := formatEntry(e)

	fp := e.Filename
	ix := strings.Index(e.Filename, "melody-buzzer/")
	if ix != -1 {
		fp = fp[ix+len("melody-buzzer/"):]
	}

	l := fmt.Sprintf("%v%v:%v %v\n",
		e.Timestamp.Format("[2006-01-02 15:04:05] "),
		fp, e.Line,
		line,
	)
	if w.logPath == "" {
		_, _ = io.WriteString(w.stderr, l)
	} else if err := file.Append(w.logPath, []byte(l)); err != nil {
		fmt.Fprintf(w.stderr, "Failed to write log file: %v\n", err)
	}

	if w.bot == nil {
		return
	}
	go func() {
		needNotification := e.Level >= loggo.WARNING
		err := w.bot.Send(line, !needNotification)
		if err != nil {
			fmt.Fprintf(w.stderr, "%v bot send error: %v\n", e.Timestamp.Format("[2006-01-02 15:04:05]"), err)
		}
	}()
}

func formatEntry(e loggo.Entry) string {
	// who can remember the order of the levels right?
	// indicate the level like T1 for TRACE D2 for debug, etc
	return fmt.Sprintf(
		"[%v%v|%v:%v:%v] %v",
		string(e.Level.String()[0]),
		int(e.Level),
		e.Module,
		filepath.Base(e.Filename),
		e.Line,
		e.Message,
	)
}
