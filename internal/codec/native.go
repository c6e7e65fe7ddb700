package codec

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"imgbatch/internal/deps"
)

// Native encodes in-process through the bundled libwebp.
type Native struct{}

func (Native) Name() string { return "native" }

func (Native) Check() deps.Status {
	return deps.Status{
		Name:        "libwebp",
		Description: "Built-in WEBP encoder",
		Available:   true,
	}
}

func (Native) Encode(_ context.Context, w io.Writer, img image.Image, quality int) error {
	opts := &webp.Options{
		Lossless: false,
		Quality:  float32(clampQuality(quality)),
	}
	if err := webp.Encode(w, straightAlpha(img), opts); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}
	return nil
}

// straightAlpha returns img's pixels as non-premultiplied RGBA bytes. libwebp
// reads RGBA input as straight alpha, and webp.Encode hands an *image.RGBA's
// Pix to it unchanged, so the NRGBA buffer is wrapped rather than converted.
func straightAlpha(img image.Image) *image.RGBA {
	n := imaging.Clone(img)
	return &image.RGBA{Pix: n.Pix, Stride: n.Stride, Rect: n.Rect}
}
