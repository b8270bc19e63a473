package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/murodjon05/text-extraction/internal/api"
	"github.com/murodjon05/text-extraction/internal/config"
	"github.com/murodjon05/text-extraction/internal/extract"
	"github.com/murodjon05/text-extraction/internal/ocr"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
			serve()
			return
		case "extract":
			runExtract(os.Args[2:])
			return
		}
	}
	fmt.Println("extractd v0.1.0")
	fmt.Println("Usage: extractd serve | extractd extract <file>...")
}

func serve() {
	_ = godotenv.Load()

	cfg, err := config.LoadDefault()
	if err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}

	extractor := newExtractor(cfg)
	srv := api.NewServer(extractor, int64(cfg.Server.MaxUploadMB)<<20, slog.Default())
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	slog.Info("starting extractd server", "addr", addr, "ocr", cfg.OCR.Enabled)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

func runExtract(paths []string) {
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "extractd extract: no files given")
		os.Exit(1)
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}
	extractor := newExtractor(cfg)

	files := make([]extract.File, 0, len(paths))
	for _, path := range paths {
		f, err := extract.Open(path)
		if err != nil {
			slog.Error("open file", "path", path, "err", err)
			os.Exit(1)
		}
		files = append(files, f)
	}

	results := extractor.ExtractAll(context.Background(), files)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		slog.Error("encode results", "err", err)
		os.Exit(1)
	}
}

func newExtractor(cfg *config.Config) *extract.Extractor {
	var engine ocr.Engine
	if cfg.OCR.Enabled {
		engine = ocr.NewTesseract(slog.Default())
	}
	return extract.New(extract.Config{
		PDFLoadTimeout: time.Duration(cfg.Extract.PDFTimeoutSeconds) * time.Second,
		OCRLanguage:    cfg.OCR.Language,
		MaxConcurrent:  cfg.Extract.MaxConcurrent,
	}, engine, slog.Default())
}
