package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"slowquery-monitor/internal/platform/paths"
)

// uiLogger records UI lifecycle lines and toolkit output in ui.log.
type uiLogger struct {
	logger *log.Logger
	out    io.Writer
	file   *os.File
}

func newUILogger() *uiLogger {
	discard := &uiLogger{logger: log.New(io.Discard, "", 0), out: io.Discard}

	logPath, err := paths.UILogFilePath()
	if err != nil || logPath == "" {
		return discard
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return discard
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return discard
	}

	return &uiLogger{
		logger: log.New(f, "", log.LstdFlags),
		out:    f,
		file:   f,
	}
}

func (l *uiLogger) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Printf(format, args...)
}

func (l *uiLogger) Writer() io.Writer {
	if l == nil || l.out == nil {
		return io.Discard
	}
	return l.out
}

func (l *uiLogger) Close() {
	if l == nil || l.file == nil {
		return
	}
	_ = l.file.Close()
	l.file = nil
}
