// Package ocr wraps an optical character recognition engine behind a small
// contract: hand it image bytes and a language, get back recognized text
// plus word-level confidence scores.
package ocr

import "context"

// Word is one recognized word and the engine's confidence in it (0-100).
type Word struct {
	Text       string
	Confidence float64
}

// Output is the result of one recognition run. Confidence is the mean of
// the word confidences, on the same 0-100 scale.
type Output struct {
	Text       string
	Confidence float64
	Words      []Word
}

// Engine runs OCR over a single image.
type Engine interface {
	Recognize(ctx context.Context, image []byte, language string) (*Output, error)
}

func meanConfidence(words []Word) float64 {
	if len(words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range words {
		sum += w.Confidence
	}
	return sum / float64(len(words))
}
