package extract

import "context"

// extractDocument sub-dispatches by concrete extension within the document
// category.
func (e *Extractor) extractDocument(ctx context.Context, ext string, f File, res *Result) error {
	switch ext {
	case "pdf":
		return e.extractPDF(ctx, f, res)
	case "docx":
		return e.extractDOCX(f, res)
	case "doc":
		res.warnf("Legacy .doc format has limited support; results may be incomplete. Converting to .docx gives better fidelity.")
		return e.extractDOCX(f, res)
	case "txt", "md":
		text, err := f.Text()
		if err != nil {
			res.failUnreadable("Failed to read text file: "+err.Error(), "Could not read this file")
			return nil
		}
		res.Text = text
		return nil
	case "html", "htm":
		return e.extractHTML(f, res)
	case "rtf":
		return e.extractRTF(f, res)
	default:
		text, err := f.Text()
		if err != nil {
			res.failUnreadable("Failed to read document: "+err.Error(), "Could not read this file")
			return nil
		}
		res.warnf("Unsupported document format .%s; content was read as plain text (best effort)", ext)
		res.Text = text
		return nil
	}
}
