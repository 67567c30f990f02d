package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

var (
	Logger  zerolog.Logger
	logFile *os.File
)

// timestampHook adds timestamp at the end of each log event
type timestampHook struct{}

func (h timestampHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	e.Time("ts", time.Now())
}

// Init initializes the logging system with zerolog, writing to the state
// directory. Geometry failures are logged here and never surfaced in the
// player UI.
func Init() error {
	logDir := filepath.Join(os.Getenv("HOME"), ".local", "state", "playwin")
	os.MkdirAll(logDir, 0755)

	logPath := filepath.Join(logDir, "playwin.log")
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	logFile = f

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.MessageFieldName = "msg"

	Logger = newLogger(logFile)

	return nil
}

// SetDebug lowers the global level to debug and mirrors log events to
// stderr, so `--debug` runs show the geometry decisions live instead of
// requiring a tail of the state-dir log.
func SetDebug() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	if logFile != nil {
		Logger = newLogger(zerolog.MultiLevelWriter(logFile, console))
		return
	}
	Logger = newLogger(console)
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Hook(timestampHook{})
}

// Close closes the log file
func Close() {
	if logFile != nil {
		logFile.Close()
	}
}

// Debug returns a debug level event
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info returns an info level event
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn returns a warn level event
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error returns an error level event
func Error() *zerolog.Event {
	return Logger.Error()
}
