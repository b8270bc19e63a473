package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is an Engine backed by the Tesseract OCR library via gosseract.
// A fresh client is created per call: the underlying API is not safe for
// concurrent use, and extraction calls may run in parallel.
type Tesseract struct {
	logger *slog.Logger
}

func NewTesseract(logger *slog.Logger) *Tesseract {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tesseract{logger: logger}
}

func (t *Tesseract) Recognize(ctx context.Context, image []byte, language string) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if language == "" {
		language = "eng"
	}

	client := gosseract.NewClient()
	defer client.Close()

	// Route tesseract's own diagnostics away from stderr.
	_ = client.SetVariable("debug_file", os.DevNull)

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("set ocr language: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	out := &Output{Text: strings.TrimSpace(text)}
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Word-level detail is best-effort; the recognized text stands.
		t.logger.Warn("word bounding boxes unavailable", "err", err)
		return out, nil
	}
	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		if word == "" {
			continue
		}
		out.Words = append(out.Words, Word{Text: word, Confidence: b.Confidence})
	}
	out.Confidence = meanConfidence(out.Words)
	return out, nil
}
