package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Compressor shrinks an image toward a budget.
type Compressor interface {
	Compress(ctx context.Context, f File, b Budget) (File, error)
}

const (
	defaultInitialQuality = 85
	defaultMinQuality     = 40
	defaultQualityStep    = 10
)

// JPEGCompressor resizes so the longest side fits the budget, then
// re-encodes as JPEG, lowering quality until the output fits MaxBytes or
// MinQuality is reached. The size limit is therefore a target, not a
// guarantee.
type JPEGCompressor struct {
	InitialQuality int
	MinQuality     int
	QualityStep    int
}

func NewJPEGCompressor() *JPEGCompressor {
	return &JPEGCompressor{
		InitialQuality: defaultInitialQuality,
		MinQuality:     defaultMinQuality,
		QualityStep:    defaultQualityStep,
	}
}

func (c *JPEGCompressor) Compress(ctx context.Context, f File, b Budget) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}

	img, err := imaging.Decode(bytes.NewReader(f.Data), imaging.AutoOrientation(true))
	if err != nil {
		return File{}, fmt.Errorf("decode %s: %w", f.Name, err)
	}
	img = flatten(fit(img, b.MaxDimension))

	if err := ctx.Err(); err != nil {
		return File{}, err
	}

	step := max(c.QualityStep, 1)
	var out bytes.Buffer
	for q := c.InitialQuality; ; q -= step {
		q = max(q, c.MinQuality)
		out.Reset()
		if err := imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
			return File{}, fmt.Errorf("encode %s: %w", f.Name, err)
		}
		if b.MaxBytes <= 0 || int64(out.Len()) <= b.MaxBytes || q <= c.MinQuality {
			break
		}
		if err := ctx.Err(); err != nil {
			return File{}, err
		}
	}

	return File{
		Name:        swapExt(f.Name, ".jpg"),
		ContentType: "image/jpeg",
		Data:        out.Bytes(),
	}, nil
}

func fit(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}

// flatten composites img onto white. JPEG has no alpha channel, so
// transparent areas would otherwise encode as black.
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	bounds := img.Bounds()
	bg := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1)
}

func swapExt(name, ext string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		base = "image"
	}
	return base + ext
}
