package extract

import (
	"context"
	"math"
	"strings"
)

// Word-level confidence below this counts as a low-confidence word.
const lowWordConfidence = 60

// extractImage runs OCR over the image and interprets the engine's output:
// tiered confidence warnings, low-confidence word reporting, an empty-text
// sentinel, and a garbage-output heuristic. The engine itself is an external
// collaborator; only orchestration lives here.
func (e *Extractor) extractImage(ctx context.Context, f File, res *Result) error {
	if e.ocr == nil {
		res.failUnreadable("OCR is not available in this deployment", "Could not read text from this image")
		return nil
	}

	data, err := f.Bytes()
	if err != nil {
		res.failUnreadable("Failed to read image file: "+err.Error(), "Could not read this file")
		return nil
	}

	out, err := e.ocr.Recognize(ctx, data, e.cfg.OCRLanguage)
	if err != nil {
		res.failUnreadable("OCR failed: "+err.Error(), "Could not read text from this image")
		return nil
	}

	conf := int(math.Round(out.Confidence))
	res.Confidence = &conf
	res.Metadata["language"] = e.cfg.OCRLanguage

	switch {
	case conf < 30:
		res.warnf("Very low OCR confidence (%d%%). The image likely contains logos, icons, or handwriting rather than printed text.", conf)
	case conf < 50:
		res.warnf("Low OCR confidence (%d%%). The text may contain recognition errors.", conf)
	case conf < 75:
		res.warnf("Moderate OCR confidence (%d%%). Some words may be misread.", conf)
	}

	var lowWords []string
	for _, w := range out.Words {
		if w.Confidence < lowWordConfidence && strings.TrimSpace(w.Text) != "" {
			lowWords = append(lowWords, w.Text)
		}
	}
	if n := len(lowWords); n > 10 {
		res.warnf("%d words were recognized with low confidence", n)
	} else if n > 0 {
		examples := lowWords
		if len(examples) > 3 {
			examples = examples[:3]
		}
		res.warnf("Some words were recognized with low confidence, e.g. %s", strings.Join(examples, ", "))
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		res.Text = "[NO TEXT DETECTED: The image may be a photo, diagram, logo, or contain handwriting that OCR cannot read]"
		res.warnf("No text was detected in this image. It may be a photo or diagram, or the text may be handwritten or too small.")
		return nil
	}

	if looksLikeGarbage(text, conf) {
		res.warnf("Extracted text may be symbols or non-English content rather than readable text")
	}
	res.Text = text
	return nil
}

// looksLikeGarbage flags output whose alphanumeric density is too low to be
// plausible English text while the engine itself was unsure. Advisory only.
func looksLikeGarbage(text string, confidence int) bool {
	runes := []rune(text)
	if len(runes) <= 5 || confidence >= lowWordConfidence {
		return false
	}
	alnum := 0
	for _, r := range runes {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			alnum++
		}
	}
	return float64(alnum)/float64(len(runes)) < 0.3
}
