// Package extract turns arbitrary uploaded files into plain text. A file is
// classified by extension, routed to a format-specific strategy, and wrapped
// into a Result carrying the text plus warnings, errors, confidence and
// timing. The entry point never fails: every input produces a Result.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/murodjon05/text-extraction/internal/ocr"
	"golang.org/x/sync/errgroup"
)

// Config holds tunables for the extraction pipeline.
type Config struct {
	PDFLoadTimeout time.Duration // cap on opening a PDF document (default 30s)
	OCRLanguage    string        // tesseract language code (default "eng")
	MaxConcurrent  int           // parallelism for ExtractAll (default 4)
}

// Extractor dispatches files to per-category strategies. It holds no mutable
// state across calls, so one Extractor serves concurrent extractions.
type Extractor struct {
	cfg    Config
	ocr    ocr.Engine
	logger *slog.Logger

	// swapped out in tests to fake the paginated-document collaborator
	openDoc func(data []byte) (pagedDocument, error)
}

func New(cfg Config, engine ocr.Engine, logger *slog.Logger) *Extractor {
	if cfg.PDFLoadTimeout <= 0 {
		cfg.PDFLoadTimeout = 30 * time.Second
	}
	if cfg.OCRLanguage == "" {
		cfg.OCRLanguage = "eng"
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: cfg, ocr: engine, logger: logger, openDoc: openPDF}
}

// ExtractText classifies f, runs the matching strategy and returns a fully
// populated Result. It never returns an error: strategy failures are folded
// into the result's errors/warnings and its terminal status.
func (e *Extractor) ExtractText(ctx context.Context, f File) *Result {
	start := time.Now()
	category, ext := Classify(f.Name())

	res := &Result{
		ID:       uuid.NewString(),
		FileName: f.Name(),
		FileType: fileType(ext),
		Category: category,
		Status:   StatusProcessing,
		Warnings: []string{},
		Errors:   []string{},
		Metadata: map[string]any{
			"size":         f.Size(),
			"lastModified": f.LastModified().UnixMilli(),
		},
	}

	e.logger.Debug("starting extraction", "file", f.Name(), "category", category)

	if err := e.dispatch(ctx, category, ext, f, res); err != nil {
		// Strategies record their own expected failures; anything surfacing
		// here is an unexpected fault caught at the orchestrator boundary.
		res.errorf("Extraction failed: %v", err)
	}

	res.finalize()
	res.ProcessingTime = time.Since(start).Milliseconds()

	e.logger.Debug("extraction finished",
		"file", f.Name(), "status", res.Status,
		"warnings", len(res.Warnings), "errors", len(res.Errors),
		"ms", res.ProcessingTime)
	return res
}

// ExtractAll runs ExtractText over files concurrently, bounded by
// Config.MaxConcurrent. The returned slice preserves input order.
func (e *Extractor) ExtractAll(ctx context.Context, files []File) []*Result {
	results := make([]*Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MaxConcurrent)
	for i, f := range files {
		g.Go(func() error {
			results[i] = e.ExtractText(ctx, f)
			return nil
		})
	}
	_ = g.Wait() // extractions never return errors
	return results
}

func (e *Extractor) dispatch(ctx context.Context, category Category, ext string, f File, res *Result) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
		}
	}()
	switch category {
	case CategoryDocument:
		return e.extractDocument(ctx, ext, f, res)
	case CategoryData:
		return e.extractData(ext, f, res)
	case CategoryImage:
		return e.extractImage(ctx, f, res)
	case CategoryCode:
		return e.extractCode(ext, f, res)
	case CategoryNotebook:
		return e.extractNotebook(f, res)
	default:
		return e.extractUnknown(f, res)
	}
}

func fileType(ext string) string {
	if ext == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(ext)
}
