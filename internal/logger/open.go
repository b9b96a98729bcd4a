package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Options selects where and how log lines are written.
type Options struct {
	Level string
	// Console writes to stderr instead of File.
	Console bool
	// JSON keeps zerolog's native JSON lines. Ignored when File is used,
	// which is always JSON.
	JSON bool
	File string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the process logger. The returned closer releases the log file,
// if one was opened.
func Open(opts Options) (Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	if opts.Console {
		if opts.JSON {
			return NewZerolog(os.Stderr, level), nopCloser{}, nil
		}
		return NewConsoleLogger(level), nopCloser{}, nil
	}

	if opts.File == "" {
		return NoOp{}, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewZerolog(f, level), f, nil
}
