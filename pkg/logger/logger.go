// Package logger provides the leveled logger the codec reports through.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/rs/zerolog"

	cadslog "github.com/cadgraph/cadgraph.go/pkg/logger/slog"
)

const (
	permission = 0664
)

// Logger is the leveled logger used across the module. args are alternating
// key/value pairs.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// New returns a Logger writing through h.
func New(h slog.Handler) Logger {
	return cadslog.New(h)
}

type nop struct{}

func (nop) Error(string, ...any) {}
func (nop) Warn(string, ...any)  {}
func (nop) Info(string, ...any)  {}
func (nop) Debug(string, ...any) {}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }

// LogBuild configures a zerolog backed Logger.
type LogBuild struct {
	writer io.Writer
	path   string
	level  zerolog.Level
}

// LogData is a built zerolog Logger. Close releases the log file, if any.
type LogData struct {
	writer  io.Writer
	LogFile *os.File
	Logger  zerolog.Logger
}

func NewBuild() *LogBuild {
	return &LogBuild{level: zerolog.InfoLevel}
}

func (build *LogBuild) FromPath(path string) *LogBuild {
	build.path = path
	return build
}

func (build *LogBuild) FromBuffer(w io.Writer) *LogBuild {
	build.writer = w
	return build
}

func (build *LogBuild) WithLevel(level string) *LogBuild {
	if l, err := zerolog.ParseLevel(level); err == nil && l != zerolog.NoLevel {
		build.level = l
	}
	return build
}

func (build *LogBuild) Make() (logData *LogData, err error) {
	logData = new(LogData)
	logData.writer = os.Stderr
	if build.writer != nil {
		logData.writer = build.writer
	}
	if build.path != "" {
		logData.LogFile, err = os.OpenFile(build.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		logData.writer = zerolog.SyncWriter(logData.LogFile)
	}
	logData.Logger = zerolog.New(logData.writer).Level(build.level).With().Timestamp().Logger()
	return
}

func (l *LogData) Error(msg string, args ...any) { l.Logger.Error().Fields(args).Msg(msg) }
func (l *LogData) Warn(msg string, args ...any)  { l.Logger.Warn().Fields(args).Msg(msg) }
func (l *LogData) Info(msg string, args ...any)  { l.Logger.Info().Fields(args).Msg(msg) }
func (l *LogData) Debug(msg string, args ...any) { l.Logger.Debug().Fields(args).Msg(msg) }

// Close closes the log file opened by FromPath.
func (l *LogData) Close() error {
	if l.LogFile == nil {
		return nil
	}
	return l.LogFile.Close()
}
