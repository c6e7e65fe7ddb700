package codec

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"imgbatch/internal/deps"
)

// Cwebp hands a lossless PNG intermediate to the external cwebp program.
type Cwebp struct {
	Binary string
}

func (c *Cwebp) Name() string { return "cwebp" }

func (c *Cwebp) Check() deps.Status {
	return deps.Check(deps.Requirement{
		Name:        "cwebp",
		Command:     c.Binary,
		Description: "External WEBP encoder",
	})
}

func (c *Cwebp) Encode(ctx context.Context, w io.Writer, img image.Image, quality int) error {
	status := c.Check()
	if !status.Available {
		return errors.New(status.Detail)
	}

	workDir, err := os.MkdirTemp("", "imgbatch-cwebp-")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	input := filepath.Join(workDir, "input.png")
	output := filepath.Join(workDir, "output.webp")
	if err := imaging.Save(img, input); err != nil {
		return fmt.Errorf("write intermediate png: %w", err)
	}

	cmd := exec.CommandContext(ctx, status.Path,
		"-quiet",
		"-q", strconv.Itoa(clampQuality(quality)),
		input,
		"-o", output,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		detail := strings.TrimSpace(string(out))
		if detail != "" {
			return fmt.Errorf("cwebp: %w: %s", err, detail)
		}
		return fmt.Errorf("cwebp: %w", err)
	}

	f, err := os.Open(output)
	if err != nil {
		return fmt.Errorf("open cwebp output: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy cwebp output: %w", err)
	}
	return nil
}
