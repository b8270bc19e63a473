package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// A vertical jump larger than this between two tokens is treated as a line
// break when reassembling a page's text.
const lineBreakYJump = 5.0

const pageUnreadableSentinel = "[UNREADABLE: This page could not be parsed]"

// pageToken is one positioned text fragment on a page.
type pageToken struct {
	Text string
	X, Y float64
}

// pagedDocument is the contract the PDF strategy needs from a paginated
// document parser. Close must be called on every exit path.
type pagedDocument interface {
	PageCount() int
	Page(n int) ([]pageToken, error)
	Close() error
}

type openedDoc struct {
	doc pagedDocument
	err error
}

// extractPDF opens the file as a paginated document (bounded by the load
// timeout) and walks pages in ascending order. A failed page contributes a
// warning and a placeholder without aborting the rest.
func (e *Extractor) extractPDF(ctx context.Context, f File, res *Result) error {
	data, err := f.Bytes()
	if err != nil {
		res.failUnreadable("Failed to read PDF file: "+err.Error(), "Could not read this PDF file")
		return nil
	}

	doc, err := e.openDocWithTimeout(ctx, data)
	if err != nil {
		res.failUnreadable("Failed to load PDF: "+err.Error(), "Could not extract text from this PDF file")
		return nil
	}
	defer doc.Close()

	pageCount := doc.PageCount()
	res.Metadata["pageCount"] = pageCount

	var sb strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := PageText{PageNumber: i}
		tokens, err := doc.Page(i)
		if err != nil {
			res.warnf("Page %d could not be read: %v", i, err)
			page.Text = pageUnreadableSentinel
		} else {
			page.Text = strings.TrimSpace(assemblePageText(tokens))
		}
		res.Pages = append(res.Pages, page)
		fmt.Fprintf(&sb, "--- Page %d ---\n%s\n\n", i, page.Text)
	}

	res.Text = strings.TrimSpace(sb.String())
	return nil
}

// openDocWithTimeout races the document parse against the configured
// timeout. A document that finishes opening after the deadline is closed by
// the drain goroutine so the handle never leaks.
func (e *Extractor) openDocWithTimeout(ctx context.Context, data []byte) (pagedDocument, error) {
	ch := make(chan openedDoc, 1)
	go func() {
		doc, err := e.openDoc(data)
		ch <- openedDoc{doc, err}
	}()

	timer := time.NewTimer(e.cfg.PDFLoadTimeout)
	defer timer.Stop()

	select {
	case o := <-ch:
		return o.doc, o.err
	case <-ctx.Done():
		go drainDoc(ch)
		return nil, ctx.Err()
	case <-timer.C:
		go drainDoc(ch)
		return nil, fmt.Errorf("PDF loading timed out after %s", e.cfg.PDFLoadTimeout)
	}
}

func drainDoc(ch <-chan openedDoc) {
	if o := <-ch; o.doc != nil {
		o.doc.Close()
	}
}

// assemblePageText joins tokens left to right, inserting a newline whenever
// the vertical coordinate jumps by more than lineBreakYJump and a single
// space between tokens sharing a visual line.
func assemblePageText(tokens []pageToken) string {
	var sb strings.Builder
	var lastY float64
	var last string
	for _, t := range tokens {
		if t.Text == "" {
			continue
		}
		if last != "" {
			if math.Abs(t.Y-lastY) > lineBreakYJump {
				sb.WriteString("\n")
			} else if !strings.HasSuffix(last, " ") && !strings.HasPrefix(t.Text, " ") {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(t.Text)
		last = t.Text
		lastY = t.Y
	}
	return sb.String()
}

// pdfDocument adapts ledongthuc/pdf to the pagedDocument contract.
type pdfDocument struct {
	reader *pdf.Reader
}

func openPDF(data []byte) (doc pagedDocument, err error) {
	defer func() {
		// ledongthuc/pdf panics on some malformed files
		if p := recover(); p != nil {
			doc, err = nil, fmt.Errorf("malformed PDF: %v", p)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return &pdfDocument{reader: r}, nil
}

func (d *pdfDocument) PageCount() int { return d.reader.NumPage() }

func (d *pdfDocument) Page(n int) (tokens []pageToken, err error) {
	defer func() {
		if p := recover(); p != nil {
			tokens, err = nil, fmt.Errorf("page parse panic: %v", p)
		}
	}()
	p := d.reader.Page(n)
	if p.V.IsNull() {
		return nil, errors.New("page object missing")
	}
	content := p.Content()
	tokens = make([]pageToken, 0, len(content.Text))
	for _, t := range content.Text {
		tokens = append(tokens, pageToken{Text: t.S, X: t.X, Y: t.Y})
	}
	return tokens, nil
}

func (d *pdfDocument) Close() error { return nil }
