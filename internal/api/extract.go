package api

import (
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/murodjon05/text-extraction/internal/extract"
)

// extractFiles accepts one or more uploaded files and responds with their
// extraction results. A single "file" part gets a single result object; a
// "files" part (repeatable) gets an array, in upload order. Extraction
// itself never fails, so any non-200 here is a transport-level problem.
func (s *Server) extractFiles(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		http.Error(w, "upload too large or malformed multipart body", http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	single := false
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
		single = len(headers) == 1
	}
	if len(headers) == 0 {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}

	files := make([]extract.File, 0, len(headers))
	for _, h := range headers {
		f, err := bufferUpload(h)
		if err != nil {
			http.Error(w, "read uploaded file: "+err.Error(), http.StatusBadRequest)
			return
		}
		files = append(files, f)
	}

	results := s.extractor.ExtractAll(r.Context(), files)
	if single {
		writeJSON(w, http.StatusOK, results[0])
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func bufferUpload(h *multipart.FileHeader) (extract.File, error) {
	f, err := h.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	// Multipart carries no modification time; upload time is the best stamp.
	return extract.NewMemFile(h.Filename, data, time.Now()), nil
}
