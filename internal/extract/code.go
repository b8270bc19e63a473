package extract

import "strings"

// extractCode passes source files through verbatim, recording line count and
// the inferred language. A Unicode replacement character in the content is a
// heuristic signal of a lossy decode, not a failure.
func (e *Extractor) extractCode(ext string, f File, res *Result) error {
	text, err := f.Text()
	if err != nil {
		res.failUnreadable("Failed to read source file: "+err.Error(), "Could not read this file")
		return nil
	}

	res.Text = text
	res.Metadata["lineCount"] = len(strings.Split(text, "\n"))
	res.Metadata["language"] = strings.ToUpper(ext)

	if strings.ContainsRune(text, '�') {
		res.warnf("File contains characters that could not be decoded; it may not be UTF-8 encoded")
	}
	return nil
}
