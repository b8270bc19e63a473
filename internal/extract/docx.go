package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// docxDiagnostic is one message from the DOCX structural converter. Severity
// is "warning" or "error" and decides which result list it lands in.
type docxDiagnostic struct {
	Severity string
	Message  string
}

// extractDOCX converts the document to raw text and classifies converter
// diagnostics into the result's warnings and errors by severity.
func (e *Extractor) extractDOCX(f File, res *Result) error {
	data, err := f.Bytes()
	if err != nil {
		res.failUnreadable("Failed to read Word document: "+err.Error(), "Could not read this Word document")
		return nil
	}

	text, diags, err := convertDOCX(data)
	if err != nil {
		res.failUnreadable("Failed to parse Word document: "+err.Error(), "Could not extract text from this Word document")
		return nil
	}
	for _, d := range diags {
		if d.Severity == "error" {
			res.Errors = append(res.Errors, d.Message)
		} else {
			res.Warnings = append(res.Warnings, d.Message)
		}
	}
	res.Text = text
	return nil
}

// convertDOCX reads a DOCX container (ZIP+XML) and extracts paragraph text
// from word/document.xml, collecting non-fatal issues as diagnostics.
func convertDOCX(data []byte) (string, []docxDiagnostic, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("open docx archive: %w", err)
	}

	for _, zf := range zr.File {
		if zf.Name != "word/document.xml" {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return "", nil, fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		text, diags := parseDocumentXML(rc)
		return text, diags, nil
	}
	return "", nil, errors.New("word/document.xml not found in archive")
}

// parseDocumentXML walks the WordprocessingML token stream. Text runs ("t")
// contribute their content, paragraphs ("p") and explicit breaks become
// newlines, tabs become tabs. A malformed stream yields whatever text was
// gathered before the fault plus a warning diagnostic.
func parseDocumentXML(r io.Reader) (string, []docxDiagnostic) {
	var sb strings.Builder
	var diags []docxDiagnostic

	decoder := xml.NewDecoder(r)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			diags = append(diags, docxDiagnostic{
				Severity: "warning",
				Message:  fmt.Sprintf("Document structure is damaged; text after the fault was skipped (%v)", err),
			})
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "t":
			var content struct {
				Text string `xml:",chardata"`
			}
			if err := decoder.DecodeElement(&content, &se); err != nil {
				diags = append(diags, docxDiagnostic{
					Severity: "warning",
					Message:  "A text run could not be decoded and was skipped",
				})
				continue
			}
			sb.WriteString(content.Text)
		case "p":
			sb.WriteString("\n")
		case "br", "cr":
			sb.WriteString("\n")
		case "tab":
			sb.WriteString("\t")
		}
	}
	return strings.TrimSpace(sb.String()), diags
}
