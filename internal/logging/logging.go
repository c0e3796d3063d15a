package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"flightmap/internal/config"

	"github.com/labstack/gommon/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const TEXT_HEADER = "${time_rfc3339} ${level} [${prefix}]"

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
	level            = log.INFO
	header           = TEXT_HEADER
	closer io.Closer
)

// Setup points every logger created afterwards at the configured output.
// A non-empty File is rotated by lumberjack.
func Setup(cfg config.LogConfig) error {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if closer != nil {
		_ = closer.Close()
		closer = nil
	}

	output = os.Stderr
	if cfg.File != "" {
		w := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		output = w
		closer = w
	}

	level = lvl
	header = TEXT_HEADER
	if cfg.Format == "json" {
		header = `{"time":"${time_rfc3339_nano}","level":"${level}","prefix":"${prefix}"}`
	}

	log.SetOutput(output)
	log.SetLevel(level)
	log.SetHeader(header)
	return nil
}

// New returns a logger tagged with prefix using the current Setup.
func New(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	l := log.New(prefix)
	l.SetOutput(output)
	l.SetLevel(level)
	l.SetHeader(header)
	return l
}

// Discard returns a logger that drops everything, for tests and headless
// helpers that run without Setup.
func Discard(prefix string) *log.Logger {
	l := log.New(prefix)
	l.SetOutput(io.Discard)
	l.SetLevel(log.OFF)
	return l
}

// Close flushes and closes the rotated log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	output = os.Stderr
	log.SetOutput(output)
	return err
}

func ParseLevel(s string) (log.Lvl, error) {
	switch s {
	case "debug":
		return log.DEBUG, nil
	case "info", "":
		return log.INFO, nil
	case "warn":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	}
	return log.OFF, fmt.Errorf("unknown log level %q", s)
}
