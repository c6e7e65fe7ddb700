// Package codec encodes images to lossy WEBP.
//
// Two backends exist: the in-process libwebp binding, which is always
// available, and the external cwebp program, which must be found on PATH.
// Callers check availability with Check before encoding anything.
package codec

import (
	"context"
	"fmt"
	"image"
	"io"

	"imgbatch/internal/config"
	"imgbatch/internal/deps"
)

// Encoder writes an image as WEBP at a quality factor in 0..100.
type Encoder interface {
	Name() string
	Check() deps.Status
	Encode(ctx context.Context, w io.Writer, img image.Image, quality int) error
}

// New returns the encoder backend selected by cfg.
func New(cfg *config.Config) (Encoder, error) {
	if cfg == nil {
		return Native{}, nil
	}
	switch cfg.Encoding.Encoder {
	case config.EncoderNative, "":
		return Native{}, nil
	case config.EncoderCwebp:
		return &Cwebp{Binary: cfg.Encoding.CwebpBinary}, nil
	default:
		return nil, fmt.Errorf("unsupported encoder %q", cfg.Encoding.Encoder)
	}
}

func clampQuality(q int) int {
	switch {
	case q < 0:
		return 0
	case q > 100:
		return 100
	default:
		return q
	}
}
