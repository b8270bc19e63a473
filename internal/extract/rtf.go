package extract

import (
	"regexp"
	"strings"
)

var (
	rtfParMarker   = regexp.MustCompile(`\\par\b`)
	rtfHexEscape   = regexp.MustCompile(`\\'[0-9a-fA-F]{2}`)
	rtfControlWord = regexp.MustCompile(`\\[a-zA-Z]+(-?\d+)? ?`)
	rtfBraces      = strings.NewReplacer("{", "", "}", "")
	blankLineRuns  = regexp.MustCompile(`\n{3,}`)
)

// extractRTF strips RTF control structure from the raw content. This is a
// lossy text-level pass, not an RTF parser, so a caveat warning is always
// recorded.
func (e *Extractor) extractRTF(f File, res *Result) error {
	raw, err := f.Text()
	if err != nil {
		res.failUnreadable("Failed to read RTF file: "+err.Error(), "Could not read this file")
		return nil
	}

	res.warnf("RTF formatting was stripped heuristically; some text or layout may be lost")
	res.Text = convertRTF(raw)
	return nil
}

func convertRTF(raw string) string {
	text := rtfParMarker.ReplaceAllString(raw, "\n")
	text = rtfHexEscape.ReplaceAllString(text, "")
	text = rtfControlWord.ReplaceAllString(text, "")
	text = rtfBraces.Replace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = blankLineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
