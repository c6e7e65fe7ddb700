package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"imgbatch/internal/config"
)

// Options describes logger construction parameters. Output goes to Writer
// and every entry of OutputPaths ("stdout", "stderr", or a file appended to);
// with neither set it goes to stdout.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
	Writer      io.Writer
}

// New constructs a slog logger using the provided options. The returned
// close function releases any log files the logger opened; it must be called
// once logging is finished.
func New(opts Options) (*slog.Logger, func() error, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(opts.Level))
	addSource := levelVar.Level() <= slog.LevelDebug

	out, closeFiles, err := openWriters(opts.Writer, opts.OutputPaths)
	if err != nil {
		return nil, nil, err
	}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "json":
		handler = newJSONHandler(out, levelVar, addSource)
	case "", "console":
		handler = newConsoleHandler(out, levelVar, addSource)
	default:
		_ = closeFiles()
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
	return slog.New(handler), closeFiles, nil
}

// NewFromConfig creates a logger using the configured level and format. Lines
// go to w (stdout when nil) and are also appended to logging.file when set.
func NewFromConfig(cfg *config.Config, w io.Writer) (*slog.Logger, func() error, error) {
	if w == nil {
		w = os.Stdout
	}
	opts := Options{Level: "info", Format: "console", Writer: w}
	if cfg != nil {
		opts.Level = cfg.Logging.Level
		opts.Format = cfg.Logging.Format
		if cfg.Logging.File != "" {
			opts.OutputPaths = []string{cfg.Logging.File}
		}
	}
	return New(opts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openWriters(primary io.Writer, paths []string) (io.Writer, func() error, error) {
	var writers []io.Writer
	var files []*os.File
	closeFiles := func() error {
		var errs []error
		for _, f := range files {
			if err := f.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close log file %s: %w", f.Name(), err))
			}
		}
		files = nil
		return errors.Join(errs...)
	}

	if primary != nil {
		writers = append(writers, primary)
	}
	opened := make(map[string]bool, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" || opened[p] {
			continue
		}
		opened[p] = true
		switch p {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
				_ = closeFiles()
				return nil, nil, fmt.Errorf("create log directory for %s: %w", p, err)
			}
			f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				_ = closeFiles()
				return nil, nil, fmt.Errorf("open log file %s: %w", p, err)
			}
			files = append(files, f)
			writers = append(writers, f)
		}
	}
	switch len(writers) {
	case 0:
		return os.Stdout, closeFiles, nil
	case 1:
		return writers[0], closeFiles, nil
	}
	return io.MultiWriter(writers...), closeFiles, nil
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}
