// Package raster decodes source images and shrinks them to a width ceiling.
//
// Decoding is scoped: the file handle is closed before Decode returns, so the
// caller only ever owns the in-memory image. Downsampling never enlarges an
// image and always preserves the aspect ratio, flooring the new height.
package raster

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // webp sources decode through image.Decode
)

// ErrEmptyImage reports a decoded image with no pixels.
var ErrEmptyImage = errors.New("image has zero width or height")

// Decode opens path and decodes it, applying any EXIF orientation.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}
	return img, nil
}

// FitWidth computes the output size for an image of width x height limited to
// maxWidth. Images already at or under the ceiling keep their size and
// resize is false. Otherwise the width becomes maxWidth and the height is
// floor(height * maxWidth / width), never less than one pixel.
func FitWidth(width, height, maxWidth int) (w, h int, resize bool) {
	if width <= 0 || height <= 0 || maxWidth <= 0 || width <= maxWidth {
		return width, height, false
	}
	h = int(int64(height) * int64(maxWidth) / int64(width))
	if h < 1 {
		h = 1
	}
	return maxWidth, h, true
}

// Downsample shrinks img to fit maxWidth using a Lanczos filter. The
// original image is returned untouched when no shrink is needed.
func Downsample(img image.Image, maxWidth int) (image.Image, bool) {
	b := img.Bounds()
	w, h, resize := FitWidth(b.Dx(), b.Dy(), maxWidth)
	if !resize {
		return img, false
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), true
}
