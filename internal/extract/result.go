package extract

import "fmt"

// Category is the coarse format class that drives strategy dispatch.
type Category string

const (
	CategoryDocument Category = "document"
	CategoryData     Category = "data"
	CategoryImage    Category = "image"
	CategoryCode     Category = "code"
	CategoryNotebook Category = "notebook"
	CategoryUnknown  Category = "unknown"
)

// Status is the lifecycle state of an extraction attempt. Pending and
// processing are transient; success, partial and error are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusPartial    Status = "partial"
	StatusError      Status = "error"
)

// PageText holds the extracted text of one page of a paginated document.
type PageText struct {
	PageNumber int    `json:"pageNumber"`
	Text       string `json:"text"`
	Confidence *int   `json:"confidence,omitempty"`
}

// Result is the sole output of an extraction attempt. It is built in place
// by the strategy the orchestrator dispatches to and is read-only afterwards.
type Result struct {
	ID             string         `json:"id"`
	FileName       string         `json:"fileName"`
	FileType       string         `json:"fileType"`
	Category       Category       `json:"category"`
	Status         Status         `json:"status"`
	Text           string         `json:"text"`
	Pages          []PageText     `json:"pages,omitempty"`
	Confidence     *int           `json:"confidence,omitempty"`
	Warnings       []string       `json:"warnings"`
	Errors         []string       `json:"errors"`
	Metadata       map[string]any `json:"metadata"`
	ProcessingTime int64          `json:"processingTime"`
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// failUnreadable records a structural parse failure: one error entry plus a
// bracketed sentinel so Text is never left empty-handed silently.
func (r *Result) failUnreadable(errMsg, sentinel string) {
	r.Errors = append(r.Errors, errMsg)
	r.Text = "[UNREADABLE: " + sentinel + "]"
}

// finalize derives the terminal status from the errors/warnings/text
// partition. The no-errors-empty-text corner gets a synthesized error so the
// state machine is total and nothing is left in "processing" forever.
func (r *Result) finalize() {
	switch {
	case len(r.Errors) == 0 && len(r.Text) > 0:
		if len(r.Warnings) > 0 {
			r.Status = StatusPartial
		} else {
			r.Status = StatusSuccess
		}
	case len(r.Errors) > 0 && len(r.Text) > 0:
		r.Status = StatusPartial
	case len(r.Errors) > 0:
		r.Status = StatusError
	default:
		r.Errors = append(r.Errors, "no content extracted")
		r.Status = StatusError
	}
}
