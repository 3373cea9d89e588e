package pixeltext

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// tesseractWorker backs the Worker interface with a local Tesseract engine.
type tesseractWorker struct {
	client *gosseract.Client
}

// NewTesseractWorker creates a Tesseract-backed OCR worker for the given
// language model.
func NewTesseractWorker(lang string) (Worker, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not set OCR language %q: %w", lang, err)
	}
	return &tesseractWorker{client: client}, nil
}

func (w *tesseractWorker) Recognize(png []byte) (Result, error) {
	if err := w.client.SetImageFromBytes(png); err != nil {
		return Result{}, fmt.Errorf("could not load image: %w", err)
	}

	text, err := w.client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("could not recognize text: %w", err)
	}

	// Tesseract reports confidence per word; average them for the
	// whole-image gate.
	boxes, err := w.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return Result{}, fmt.Errorf("could not read confidence: %w", err)
	}

	var confidence float64
	if len(boxes) > 0 {
		for _, b := range boxes {
			confidence += b.Confidence
		}
		confidence /= float64(len(boxes))
	}

	return Result{Text: text, Confidence: confidence}, nil
}

func (w *tesseractWorker) Terminate() error {
	return w.client.Close()
}
