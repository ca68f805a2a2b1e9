package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much the service logs.
type Options struct {
	Level string
	// File enables size-based rotation into the given path. Empty logs to Output.
	File string
	// Output is used when File is empty; nil means stderr.
	Output io.Writer
}

// New builds the service logger. Entries are JSON so they can be shipped as-is.
func New(opts Options) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.JSONFormatter{})

	switch {
	case opts.File != "":
		log.SetOutput(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	case opts.Output != nil:
		log.SetOutput(opts.Output)
	default:
		log.SetOutput(os.Stderr)
	}
	return log, nil
}

// Discard returns a logger that drops everything; handy as a default in tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
