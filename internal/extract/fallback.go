package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// More than this fraction of control characters in the sample marks the
	// content as binary.
	binaryControlRatio = 0.10
	binarySampleSize   = 1000
	// Cleaned binary content shorter than this is not worth returning.
	minReadableChars = 10
)

var spaceRuns = regexp.MustCompile(` {3,}`)

// extractUnknown is the best-effort path for formats the classifier does not
// know. It tries a plain text decode, falls back to stripping readable
// fragments out of binary content, and independently sniffs for a ZIP
// container whose text entries can be recovered.
func (e *Extractor) extractUnknown(f File, res *Result) error {
	data, err := f.Bytes()
	if err != nil {
		res.failUnreadable("Failed to read file: "+err.Error(), "Could not read this file")
		return nil
	}

	content := string(data)
	if looksBinary(content) {
		readable := stripUnprintable(content)
		if len(readable) < minReadableChars {
			res.failUnreadable("File appears to be binary with no readable text", "This file appears to be binary data")
		} else {
			res.warnf("File appears to be binary; only readable fragments were extracted")
			res.Text = readable
		}
	} else {
		res.warnf("Unknown file type; content was read as plain text")
		res.Text = content
	}

	// ZIP local-file-header sniff, independent of the binary heuristic.
	if len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B {
		res.warnf("File has a ZIP container signature; attempting archive extraction")
		e.recoverArchive(data, res)
	}
	return nil
}

// looksBinary samples the leading characters and classifies the content as
// binary when control characters (other than tab/newline/carriage return)
// exceed the threshold ratio.
func looksBinary(s string) bool {
	if s == "" {
		return false
	}
	sample := s
	if len(sample) > binarySampleSize {
		sample = sample[:binarySampleSize]
	}
	control := 0
	for i := 0; i < len(sample); i++ {
		b := sample[i]
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			control++
		}
	}
	return float64(control)/float64(len(sample)) > binaryControlRatio
}

// stripUnprintable keeps printable ASCII plus tab/newline/carriage return
// and collapses runs of 3+ spaces left behind by removed bytes.
func stripUnprintable(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		if (b >= 0x20 && b <= 0x7E) || b == '\t' || b == '\n' || b == '\r' {
			sb.WriteByte(b)
		}
	}
	return strings.TrimSpace(spaceRuns.ReplaceAllString(sb.String(), " "))
}

// recoverArchive walks the ZIP central directory and concatenates every
// entry that decodes as text under per-entry markers. Entries that fail to
// decode are skipped without individual warnings; only the aggregate count
// is reported. When at least one entry is recovered the archive text
// replaces the earlier fallback result; a parse fault leaves it unchanged.
func (e *Extractor) recoverArchive(data []byte, res *Result) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Debug("zip fallback parse failed", "err", err)
		return
	}

	var parts []string
	recovered := 0
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		text, ok := readArchiveEntry(zf)
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("=== %s ===\n%s", zf.Name, text))
		recovered++
	}
	if recovered == 0 {
		return
	}

	res.Text = strings.Join(parts, "\n\n")
	res.warnf("Recovered %d file(s) from ZIP archive", recovered)
}

func readArchiveEntry(zf *zip.File) (string, bool) {
	rc, err := zf.Open()
	if err != nil {
		return "", false
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return "", false
	}
	text := strings.TrimSpace(string(content))
	if text == "" || !utf8.ValidString(text) || looksBinary(text) {
		return "", false
	}
	return text, true
}
