package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/taigrr/meshview/pkg/config"
)

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "meshview",
	}), nil
}

// newFileLogger logs to cfg.LogFile, or nowhere when it is unset; the
// viewer owns the terminal.
func newFileLogger(cfg config.Config) (*log.Logger, func(), error) {
	if cfg.LogFile == "" {
		l, err := newLogger(io.Discard, cfg.LogLevel)
		return l, func() {}, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l, err := newLogger(f, cfg.LogLevel)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, func() { f.Close() }, nil
}

// newStderrLogger is used by the subcommands.
func newStderrLogger(cfg config.Config) (*log.Logger, error) {
	return newLogger(os.Stderr, cfg.LogLevel)
}
