package batch

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"imgbatch/internal/codec"
	"imgbatch/internal/fileutil"
	"imgbatch/internal/logging"
	"imgbatch/internal/raster"
)

const outputMode = 0o644

// Converter runs conversion tables through a single encoder.
type Converter struct {
	encoder codec.Encoder
	logger  *slog.Logger
}

// NewConverter builds a converter. A nil logger discards output.
func NewConverter(enc codec.Encoder, logger *slog.Logger) *Converter {
	return &Converter{
		encoder: enc,
		logger:  logging.NewComponentLogger(logger, "batch"),
	}
}

// Process converts every entry in order and returns one Result per entry.
// Entries not yet started when ctx is cancelled are recorded as skipped.
func (c *Converter) Process(ctx context.Context, entries []Entry, sourceDir, destDir string) []Result {
	logger := logging.WithContext(ctx, c.logger)
	results := make([]Result, 0, len(entries))
	for i, e := range entries {
		entryLogger := logger.With(
			slog.String(logging.FieldEntry, e.Destination),
			slog.String(logging.FieldPosition, fmt.Sprintf("%d/%d", i+1, len(entries))),
		)
		var r Result
		if err := ctx.Err(); err != nil {
			r = skipped(e, filepath.Join(sourceDir, e.Source), "cancelled", err)
		} else {
			r = c.processEntry(ctx, e, sourceDir, destDir)
		}
		logResult(entryLogger, r)
		results = append(results, r)
	}
	return results
}

func (c *Converter) processEntry(ctx context.Context, e Entry, sourceDir, destDir string) Result {
	started := time.Now()
	src, found := resolveSource(sourceDir, e.Source)
	if !found {
		return skipped(e, src, ErrSourceNotFound.Error(), ErrSourceNotFound)
	}
	dst := filepath.Join(destDir, e.Destination)

	img, err := raster.Decode(src)
	if err != nil {
		return failed(e, src, dst, ErrDecode, err)
	}
	inputSize := img.Bounds().Size()

	out, resized := raster.Downsample(img, e.MaxWidth)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return failed(e, src, dst, ErrWrite, err)
	}

	var encodeErr error
	n, err := fileutil.WriteFileAtomic(dst, outputMode, func(w io.Writer) error {
		encodeErr = c.encoder.Encode(ctx, w, out, e.Quality)
		return encodeErr
	})
	if err != nil {
		if encodeErr != nil {
			return failed(e, src, dst, ErrEncode, encodeErr)
		}
		return failed(e, src, dst, ErrWrite, err)
	}

	return Result{
		Entry:           e,
		Status:          StatusSucceeded,
		SourcePath:      src,
		DestinationPath: dst,
		InputSize:       inputSize,
		OutputSize:      out.Bounds().Size(),
		Resized:         resized,
		Bytes:           n,
		Duration:        time.Since(started),
	}
}

func logResult(logger *slog.Logger, r Result) {
	switch r.Status {
	case StatusSucceeded:
		logger.Info("converted",
			slog.String("source", r.Entry.Source),
			slog.String("input_size", formatSize(r.InputSize)),
			slog.String("output_size", formatSize(r.OutputSize)),
			slog.Bool("resized", r.Resized),
			slog.Int("quality", r.Entry.Quality),
			slog.Int64("output_bytes", r.Bytes),
			slog.Duration("duration", r.Duration),
		)
	case StatusSkipped:
		logger.Warn("skipped",
			slog.String("source", r.Entry.Source),
			slog.String("reason", r.Reason),
		)
	case StatusFailed:
		logger.Error("conversion failed",
			slog.String("source", r.Entry.Source),
			slog.String("reason", r.Reason),
			logging.Error(r.Err),
		)
	}
}

func formatSize(p image.Point) string {
	return fmt.Sprintf("%dx%d", p.X, p.Y)
}
