// Package pixeltext flags suspected burned-in text in DICOM pixel data.
// Tag-based anonymization cannot touch PHI rendered into the image itself
// (scanner overlays, ultrasound headers); this stage rasterizes the decoded
// pixels and runs OCR over them as an advisory check.
package pixeltext

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"

	"go.uber.org/zap"

	dcm "dicom-deid/internal/dicom"
)

const (
	// defaultSize is the raster fallback when a dataset declares no
	// Rows/Columns. A documented fallback, not a protocol requirement.
	defaultSize = 512

	// minConfidence gates detection: OCR on blank or near-blank images
	// produces noise text at low confidence, and this threshold plus the
	// non-empty-text requirement suppresses those false positives.
	minConfidence = 30.0
)

// Detector runs the burned-in-text check. Zero values fall back to the
// English model and the default confidence gate.
type Detector struct {
	NewWorker     WorkerFactory
	Language      string
	MinConfidence float64
	logger        *zap.Logger
}

// NewDetector creates a detector using the given OCR worker factory.
func NewDetector(factory WorkerFactory, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{
		NewWorker:     factory,
		Language:      "eng",
		MinConfidence: minConfidence,
		logger:        logger,
	}
}

// Detect reports whether the pixel data of a DICOM byte stream appears to
// contain burned-in text, along with the recognized text on a positive
// verdict. The check is advisory and never fails: a dataset without pixel
// data is a clean negative, and any error in decoding, rasterization, or OCR
// is logged and treated as "no text detected".
func (d *Detector) Detect(ctx context.Context, data []byte, fileName string) (bool, string) {
	detected, text, err := d.detect(ctx, data)
	if err != nil {
		d.logger.Warn("pixel text check failed, assuming no text",
			zap.String("file", fileName),
			zap.Error(err))
		return false, ""
	}
	return detected, text
}

func (d *Detector) detect(ctx context.Context, data []byte) (bool, string, error) {
	f, err := dcm.Decode(data)
	if err != nil {
		return false, "", err
	}
	if !f.HasPixelData() {
		return false, "", nil
	}

	rows, cols := f.Rows(), f.Columns()
	if rows == 0 {
		rows = defaultSize
	}
	if cols == 0 {
		cols = defaultSize
	}

	gray, err := f.GrayFrame(rows, cols)
	if err != nil {
		return false, "", err
	}

	encoded, err := encodePNG(gray, rows, cols)
	if err != nil {
		return false, "", err
	}

	if err := ctx.Err(); err != nil {
		return false, "", err
	}

	worker, err := d.NewWorker(d.Language)
	if err != nil {
		return false, "", err
	}
	defer worker.Terminate()

	result, err := worker.Recognize(encoded)
	if err != nil {
		return false, "", err
	}

	if isPositive(result, d.MinConfidence) {
		return true, strings.TrimSpace(result.Text), nil
	}
	return false, "", nil
}

// isPositive applies the two-part detection gate: recognized text must be
// non-empty and confidence must clear the threshold. Either alone is OCR
// noise on a blank or near-blank image.
func isPositive(r Result, minConfidence float64) bool {
	return strings.TrimSpace(r.Text) != "" && r.Confidence > minConfidence
}

// encodePNG writes an 8-bit grayscale buffer into an opaque RGBA surface and
// encodes it losslessly. The gray value is replicated into R/G/B so any OCR
// backend sees a plain monochrome image.
func encodePNG(gray []byte, rows, cols int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := y*cols + x
			var v byte
			if i < len(gray) {
				v = gray[i]
			}
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 0xFF})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
