// Package logging builds the logrus logger shared by the command-line tools.
// Records go to stderr, and optionally to a rotating file, so stdout stays
// reserved for JSON output.
package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment variables read by OptionsFromEnv.
const (
	EnvLevel = "QNORM_LOG_LEVEL"
	EnvFile  = "QNORM_LOG_FILE"
)

// Options configures New.
type Options struct {
	Level  string    // logrus level name; empty means warn
	File   string    // rotating log file; empty disables file output
	Stderr io.Writer // defaults to os.Stderr
}

// OptionsFromEnv reads the level and file from the environment.
func OptionsFromEnv(getenv func(string) string) Options {
	return Options{
		Level: strings.TrimSpace(getenv(EnvLevel)),
		File:  strings.TrimSpace(getenv(EnvFile)),
	}
}

// New creates a logger with the nested formatter.
func New(opts Options) (*logrus.Logger, error) {
	level := logrus.WarnLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&formatter.Formatter{
		NoColors:        true,
		TimestampFormat: "02 Jan 06 - 15:04",
		HideKeys:        false,
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			funcName := s[len(s)-1]
			return fmt.Sprintf(" [%s:%d][%s()]", path.Base(f.File), f.Line, funcName)
		},
	})

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	writers := []io.Writer{stderr}
	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}

	logger.SetOutput(io.MultiWriter(writers...))
	logger.SetReportCaller(true)
	return logger, nil
}

// Discard returns a logger that drops every record.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
