package testsupport

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	xwebp "golang.org/x/image/webp"
)

// Gradient returns an opaque w×h image with a deterministic colour ramp.
func Gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 0xff})
		}
	}
	return img
}

// Flat returns a w×h image filled with c, which may be semi-transparent.
func Flat(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// WritePNG encodes a gradient of the given size to path, creating parent
// directories as needed.
func WritePNG(t testing.TB, path string, w, h int) {
	t.Helper()
	writePNG(t, path, Gradient(w, h))
}

// WriteFlatPNG encodes a w×h image filled with c to path.
func WriteFlatPNG(t testing.TB, path string, w, h int, c color.NRGBA) {
	t.Helper()
	writePNG(t, path, Flat(w, h, c))
}

func writePNG(t testing.TB, path string, img image.Image) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png %s: %v", path, err)
	}
}

// WebPSize reads the dimensions of the WEBP file at path.
func WebPSize(t testing.TB, path string) image.Point {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, err := xwebp.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode webp config %s: %v", path, err)
	}
	return image.Pt(cfg.Width, cfg.Height)
}

// WebPCenter decodes the WEBP file at path and returns its centre pixel with
// straight alpha.
func WebPCenter(t testing.TB, path string) color.NRGBA {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := xwebp.Decode(f)
	if err != nil {
		t.Fatalf("decode webp %s: %v", path, err)
	}
	return CenterNRGBA(img)
}

// CenterNRGBA returns the centre pixel of img with straight alpha.
func CenterNRGBA(img image.Image) color.NRGBA {
	b := img.Bounds()
	c := img.At(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// CloseTo reports whether every channel of got is within tol of want.
func CloseTo(got, want color.NRGBA, tol int) bool {
	diff := func(a, b uint8) int {
		d := int(a) - int(b)
		if d < 0 {
			return -d
		}
		return d
	}
	return diff(got.R, want.R) <= tol && diff(got.G, want.G) <= tol &&
		diff(got.B, want.B) <= tol && diff(got.A, want.A) <= tol
}
