package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

type Options struct {
	Verbose bool
	// File redirects output; empty means stderr.
	File string
	JSON bool
}

// New builds the process logger. The returned closer releases the log file,
// if one was opened.
func New(opts Options) (hclog.Logger, io.Closer, error) {
	level := hclog.Info
	if opts.Verbose {
		level = hclog.Debug
	}
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "wikigo",
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	})
	return logger, closer, nil
}

// Discard is used by tests and by components built without a logger.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
