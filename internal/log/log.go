package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// LoggerConfigurator is a data structure used to configure and handle logging.
type LoggerConfigurator struct {
	Writer            io.Writer
	Level             string
	TimeFormatTempl   string
	CallerFormatTempl string
}

// NewLogConfigurator creates a new LoggerConfigurator. Standard output
// carries the screen, so the default writer is standard error.
func NewLogConfigurator() *LoggerConfigurator {
	config := &LoggerConfigurator{
		Writer:          os.Stderr,
		Level:           "INFO",
		TimeFormatTempl: time.RFC3339 + " ",
	}
	return config
}

// Output returns the log writer instance.
func (config *LoggerConfigurator) Output() io.Writer {
	return config.Writer
}

// LogLevel returns the log level.
func (config *LoggerConfigurator) LogLevel() string {
	return config.Level
}

// TimestampFormat returns the log timestamp format.
func (config *LoggerConfigurator) TimestampFormat() string {
	return config.TimeFormatTempl
}

// CallerFormat returns the log caller format template.
func (config *LoggerConfigurator) CallerFormat() string {
	return config.CallerFormatTempl
}

// Level is the logging level.
type Level int

const (
	// DEBUG level for escape sequence and key traces
	DEBUG Level = iota - 1
	// INFO level for session state changes
	INFO
	// WARN level for possible issues
	WARN
	// ERROR level for errors
	ERROR
	// FATAL level for unrecoverable errors that stop the process.
	FATAL
)

// String returns an upper case string representation of the log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return fmt.Sprintf("Level(%d)", l)
	}
}

// PaddedString returns a five character upper case representation of the log level
func (l Level) PaddedString() string {
	s := l.String()
	if len(s) < 5 {
		s += strings.Repeat(" ", 5-len(s))
	}
	return s
}

// UnmarshalText converts a slice of characters to a Level
func (l *Level) UnmarshalText(text []byte) bool {
	switch strings.TrimSpace(string(bytes.ToUpper(text))) {
	case "DEBUG":
		*l = DEBUG
	case "INFO", "":
		*l = INFO
	case "WARN":
		*l = WARN
	case "ERROR":
		*l = ERROR
	case "FATAL":
		*l = FATAL
	default:
		return false
	}
	return true
}

// CoreLogger implements logging
type CoreLogger struct {
	level           Level
	writer          io.Writer
	timestampFormat string
	callerFormat    string
}

var defaultLogger *CoreLogger

// TerminateFunc defines logic for termination of fatal log messages.
var TerminateFunc = terminate

// Configurator has methods to fetch the logging configuration values.
type Configurator interface {
	LogLevel() string
	Output() io.Writer
	TimestampFormat() string
	CallerFormat() string
}

// New creates a new logger using default settings.
// Standard error, INFO level, timestamping and file:line reporting
func New() *CoreLogger {
	logger := CoreLogger{}
	logger.level = INFO
	logger.writer = os.Stderr
	logger.timestampFormat = "01-02 15:04:05.000 "
	logger.callerFormat = " %20.20s:%03d - "
	return &logger
}

// GetDefaultLogger returns the default logger implementation.
func GetDefaultLogger() *CoreLogger {
	if defaultLogger == nil {
		defaultLogger = New()
	}
	return defaultLogger
}

// Perform the actual logging routine
func (c *CoreLogger) log(level Level, format string, args []interface{}, callDepth int) {
	if level < c.level {
		return
	}

	if callDepth < 0 {
		callDepth = 2
	}
	_, file, line, ok := runtime.Caller(callDepth)
	if !ok {
		file = "???"
		line = 0
	} else {
		file = filepath.Base(file)
	}

	var msg string
	if format == "" {
		msg = fmt.Sprint(args...)
	} else {
		msg = fmt.Sprintf(format, args...)
	}

	var b strings.Builder
	b.WriteString(time.Now().Format(c.timestampFormat))
	b.WriteString(level.PaddedString())
	_, _ = fmt.Fprintf(&b, c.callerFormat, file, line)
	b.WriteString(msg)
	b.WriteString("\n")
	_, _ = c.writer.Write([]byte(b.String()))
}

// Replaceable termination logic for testing fatal errors
func terminate() {
	os.Exit(1)
}

// Setup is called to configure the logger. If it is not called, the logger
// writes INFO and above to standard error.
func (c *CoreLogger) Setup(config Configurator) error {
	if !c.level.UnmarshalText([]byte(config.LogLevel())) {
		return fmt.Errorf("unknown log level %q", config.LogLevel())
	}
	if writer := config.Output(); writer != nil {
		c.writer = writer
	}
	if format := config.TimestampFormat(); format != "" {
		c.timestampFormat = format
	}
	if format := config.CallerFormat(); format != "" {
		c.callerFormat = format
	}
	return nil
}

// SetOutput sets the io.Writer to which all future log messages will be written.
func (c *CoreLogger) SetOutput(w io.Writer) {
	c.writer = w
}

// *************************************************************
// Package level methods fall through to the default logger.

// Setup configures the default logger.
func Setup(config Configurator) error {
	return GetDefaultLogger().Setup(config)
}

// SetOutput sets the writer of the default logger.
func SetOutput(w io.Writer) {
	GetDefaultLogger().SetOutput(w)
}

// Debugf logs a formatted message at DEBUG level.
func Debugf(format string, args ...interface{}) {
	GetDefaultLogger().log(DEBUG, format, args, -1)
}

// Infof logs a formatted message at INFO level.
func Infof(format string, args ...interface{}) {
	GetDefaultLogger().log(INFO, format, args, -1)
}

// Warnf logs a formatted message at WARN level.
func Warnf(format string, args ...interface{}) {
	GetDefaultLogger().log(WARN, format, args, -1)
}

// Errorf logs a formatted message at ERROR level.
func Errorf(format string, args ...interface{}) {
	GetDefaultLogger().log(ERROR, format, args, -1)
}

// Fatalf logs a formatted message at FATAL level and then calls TerminateFunc.
func Fatalf(format string, args ...interface{}) {
	GetDefaultLogger().log(FATAL, format, args, -1)
	TerminateFunc()
}
