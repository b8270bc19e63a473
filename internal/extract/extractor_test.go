package extract_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/murodjon05/text-extraction/internal/extract"
)

func newExtractor() *extract.Extractor {
	return extract.New(extract.Config{}, nil, nil)
}

func extractOne(t *testing.T, name string, data []byte) *extract.Result {
	t.Helper()
	e := newExtractor()
	res := e.ExtractText(context.Background(), extract.NewMemFile(name, data, time.Unix(1700000000, 0)))
	if res == nil {
		t.Fatal("ExtractText returned nil")
	}
	return res
}

func TestExtractPlainText(t *testing.T) {
	res := extractOne(t, "notes.txt", []byte("hello world"))

	if res.Text != "hello world" {
		t.Errorf("text = %q", res.Text)
	}
	if res.Status != extract.StatusSuccess {
		t.Errorf("status = %q, want success", res.Status)
	}
	if res.Category != extract.CategoryDocument || res.FileType != "TXT" {
		t.Errorf("category/fileType = %q/%q", res.Category, res.FileType)
	}
	if res.ID == "" {
		t.Error("missing result ID")
	}
	if res.Metadata["size"] != int64(11) {
		t.Errorf("metadata size = %v", res.Metadata["size"])
	}
	if res.Metadata["lastModified"] != int64(1700000000000) {
		t.Errorf("metadata lastModified = %v", res.Metadata["lastModified"])
	}
}

func TestExtractEmptyTextFile(t *testing.T) {
	res := extractOne(t, "empty.txt", nil)

	if res.Category != extract.CategoryDocument {
		t.Errorf("category = %q", res.Category)
	}
	if res.Status != extract.StatusError {
		t.Errorf("status = %q, want error (state machine must be total)", res.Status)
	}
	if len(res.Errors) != 1 || res.Errors[0] != "no content extracted" {
		t.Errorf("errors = %v, want synthesized no-content error", res.Errors)
	}
	if res.Text != "" {
		t.Errorf("text = %q, want empty", res.Text)
	}
}

func TestExtractMarkdownVerbatim(t *testing.T) {
	src := "# Title\n\nSome *markdown* content."
	res := extractOne(t, "readme.md", []byte(src))
	if res.Text != src {
		t.Errorf("markdown must pass through verbatim, got %q", res.Text)
	}
}

func TestExtractCSVVerbatim(t *testing.T) {
	src := "a,b,c\n1,2,3"
	res := extractOne(t, "table.csv", []byte(src))
	if res.Text != src || res.Status != extract.StatusSuccess {
		t.Errorf("text = %q status = %q", res.Text, res.Status)
	}
}

func TestExtractJSONRoundTrip(t *testing.T) {
	src := `{"a":1,"b":[2,3]}`
	res := extractOne(t, "data.json", []byte(src))

	if res.Status != extract.StatusSuccess {
		t.Fatalf("status = %q, want success (errors=%v warnings=%v)", res.Status, res.Errors, res.Warnings)
	}
	if res.Metadata["isValidJson"] != 1 {
		t.Errorf("isValidJson = %v, want 1", res.Metadata["isValidJson"])
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    2,\n    3\n  ]\n}"
	if res.Text != want {
		t.Errorf("text = %q, want pretty-printed %q", res.Text, want)
	}

	var original, extracted any
	if err := json.Unmarshal([]byte(src), &original); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(res.Text), &extracted); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(original, extracted) {
		t.Errorf("round trip mismatch: %v vs %v", original, extracted)
	}
}

func TestExtractInvalidJSONPassthrough(t *testing.T) {
	src := `{"a": trailing`
	res := extractOne(t, "broken.json", []byte(src))

	if res.Text != src {
		t.Errorf("invalid JSON must pass through unmodified, got %q", res.Text)
	}
	if res.Metadata["isValidJson"] != 0 {
		t.Errorf("isValidJson = %v, want 0", res.Metadata["isValidJson"])
	}
	if res.Status != extract.StatusPartial {
		t.Errorf("status = %q, want partial (validity warning)", res.Status)
	}
}

func TestExtractYAMLVerbatim(t *testing.T) {
	src := "key: value\nlist:\n  - 1\n"
	res := extractOne(t, "conf.yaml", []byte(src))
	if res.Text != src {
		t.Errorf("yaml must pass through verbatim, got %q", res.Text)
	}
}

func TestExtractCode(t *testing.T) {
	src := "package main\n\nfunc main() {}\n"
	res := extractOne(t, "main.go", []byte(src))

	if res.Text != src {
		t.Errorf("text = %q", res.Text)
	}
	if res.Metadata["lineCount"] != 4 {
		t.Errorf("lineCount = %v, want 4", res.Metadata["lineCount"])
	}
	if res.Metadata["language"] != "GO" {
		t.Errorf("language = %v, want GO", res.Metadata["language"])
	}
	if res.Status != extract.StatusSuccess {
		t.Errorf("status = %q", res.Status)
	}
}

func TestExtractCodeEncodingWarning(t *testing.T) {
	res := extractOne(t, "weird.py", []byte("print('\uFFFD broken')"))

	if res.Status != extract.StatusPartial {
		t.Errorf("status = %q, want partial", res.Status)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "decoded") {
		t.Errorf("warnings = %v, want encoding warning", res.Warnings)
	}
}

func TestExtractHTML(t *testing.T) {
	src := `<html><head><style>p{color:red}</style><script>alert(1)</script></head>
<body><h1>Title</h1><p>First para.</p><div>Second <b>bold</b> block.</div></body></html>`
	res := extractOne(t, "page.html", []byte(src))

	for _, banned := range []string{"alert", "color:red"} {
		if strings.Contains(res.Text, banned) {
			t.Errorf("script/style content leaked: %q", res.Text)
		}
	}
	for _, want := range []string{"Title", "First para.", "Second bold block."} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("text missing %q:\n%s", want, res.Text)
		}
	}
	if strings.Contains(res.Text, "\n\n\n") {
		t.Errorf("newline runs not collapsed:\n%q", res.Text)
	}
	if res.Metadata["htmlLength"] != len(src) {
		t.Errorf("htmlLength = %v, want %d", res.Metadata["htmlLength"], len(src))
	}
	if res.Status != extract.StatusSuccess {
		t.Errorf("status = %q (errors=%v)", res.Status, res.Errors)
	}
}

func TestExtractRTF(t *testing.T) {
	src := `{\rtf1\ansi\deff0 {\fonttbl{\f0 Arial;}}Hello\par World\par}`
	res := extractOne(t, "memo.rtf", []byte(src))

	if !strings.Contains(res.Text, "Hello") || !strings.Contains(res.Text, "World") {
		t.Errorf("text = %q", res.Text)
	}
	if strings.Contains(res.Text, "\\rtf") || strings.Contains(res.Text, "{") {
		t.Errorf("control structure leaked: %q", res.Text)
	}
	if res.Status != extract.StatusPartial {
		t.Errorf("status = %q, want partial (lossy warning always present)", res.Status)
	}
}

func TestExtractDocLegacyWarning(t *testing.T) {
	res := extractOne(t, "old.doc", []byte("not really a doc"))

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "Legacy .doc") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want legacy format warning", res.Warnings)
	}
	// Garbage bytes cannot parse as DOCX; the sentinel text plus the parse
	// error classify as partial.
	if res.Status != extract.StatusPartial {
		t.Errorf("status = %q, want partial", res.Status)
	}
	if !strings.HasPrefix(res.Text, "[UNREADABLE:") {
		t.Errorf("text = %q, want sentinel", res.Text)
	}
}

func TestExtractNotebook(t *testing.T) {
	nb := `{
  "metadata": {"kernelspec": {"language": "python"}},
  "cells": [
    {"cell_type": "markdown", "source": ["# Intro\n", "text"]},
    {"cell_type": "code", "source": "print('hi')",
     "outputs": [{"text": ["hi\n"]},
                 {"data": {"text/plain": ["42"], "image/png": "aWdub3JlZA=="}},
                 {"ename": "ValueError", "evalue": "bad input"}]}
  ]
}`
	res := extractOne(t, "analysis.ipynb", []byte(nb))

	if res.Status != extract.StatusSuccess {
		t.Fatalf("status = %q (errors=%v)", res.Status, res.Errors)
	}
	if res.Metadata["language"] != "python" {
		t.Errorf("language = %v", res.Metadata["language"])
	}
	if res.Metadata["cellCount"] != 2 {
		t.Errorf("cellCount = %v", res.Metadata["cellCount"])
	}
	for _, want := range []string{
		"=== Cell 1 (markdown) ===",
		"# Intro\ntext",
		"=== Cell 2 (code) ===",
		"print('hi')",
		"--- Output ---",
		"hi\n",
		"42",
		"[Error: ValueError] bad input",
	} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("text missing %q:\n%s", want, res.Text)
		}
	}
	if strings.Contains(res.Text, "aWdub3JlZA") {
		t.Error("non-text output data leaked into text")
	}
	c1 := strings.Index(res.Text, "=== Cell 1")
	c2 := strings.Index(res.Text, "=== Cell 2")
	if !(c1 >= 0 && c1 < c2) {
		t.Error("cells out of document order")
	}
}

func TestExtractNotebookLanguageFallbacks(t *testing.T) {
	res := extractOne(t, "a.ipynb", []byte(`{"metadata":{"language_info":{"name":"julia"}},"cells":[]}`))
	if res.Metadata["language"] != "julia" {
		t.Errorf("language = %v, want julia", res.Metadata["language"])
	}

	res = extractOne(t, "b.ipynb", []byte(`{"cells":[{"cell_type":"code","source":"x"}]}`))
	if res.Metadata["language"] != "unknown" {
		t.Errorf("language = %v, want unknown", res.Metadata["language"])
	}
}

func TestExtractNotebookInvalidJSON(t *testing.T) {
	res := extractOne(t, "broken.ipynb", []byte("{not json"))

	if res.Status != extract.StatusPartial {
		t.Errorf("status = %q, want partial (error plus sentinel text)", res.Status)
	}
	if !strings.HasPrefix(res.Text, "[UNREADABLE:") {
		t.Errorf("text = %q, want sentinel", res.Text)
	}
	if len(res.Errors) != 1 {
		t.Errorf("errors = %v, want exactly one", res.Errors)
	}
}

func TestExtractUnknownTextContent(t *testing.T) {
	res := extractOne(t, "notes.unknownext", []byte("just some text"))

	if res.Text != "just some text" {
		t.Errorf("text = %q", res.Text)
	}
	if res.Category != extract.CategoryUnknown || res.FileType != "UNKNOWNEXT" {
		t.Errorf("category/fileType = %q/%q", res.Category, res.FileType)
	}
	if res.Status != extract.StatusPartial {
		t.Errorf("status = %q, want partial (best-effort warning)", res.Status)
	}
}

func TestExtractUnknownBinaryContent(t *testing.T) {
	data := make([]byte, 400)
	for i := range data {
		data[i] = byte(i % 7) // control characters dominate
	}
	res := extractOne(t, "blob.bin", data)

	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "binary") {
		t.Errorf("errors = %v, want binary error", res.Errors)
	}
	if !strings.HasPrefix(res.Text, "[UNREADABLE:") {
		t.Errorf("text = %q, want sentinel", res.Text)
	}
	if res.Status != extract.StatusPartial {
		t.Errorf("status = %q, want partial", res.Status)
	}
}

func TestExtractUnknownBinaryWithReadableFragments(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("README contents hidden inside binary padding")
	for range 200 {
		buf.WriteByte(0x01)
	}
	res := extractOne(t, "blob.dat", buf.Bytes())

	if !strings.Contains(res.Text, "README contents") {
		t.Errorf("readable fragment lost: %q", res.Text)
	}
	if res.Status != extract.StatusPartial {
		t.Errorf("status = %q, want partial", res.Status)
	}
}

func TestExtractZipFallback(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if _, err := zw.Create("subdir/"); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	res := extractOne(t, "archive.zip", buf.Bytes())

	if !strings.Contains(res.Text, "=== notes.txt ===") {
		t.Errorf("text missing entry marker:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "hello") {
		t.Errorf("text missing entry content:\n%s", res.Text)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "Recovered 1 file(s)") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want recovered-count warning", res.Warnings)
	}
}

func TestExtractZipFallbackSkipsBinaryEntries(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("readme.txt")
	w.Write([]byte("textual"))
	w, _ = zw.Create("image.raw")
	junk := make([]byte, 300)
	for i := range junk {
		junk[i] = byte(i % 5)
	}
	w.Write(junk)
	zw.Close()

	res := extractOne(t, "mixed.zip", buf.Bytes())

	if !strings.Contains(res.Text, "=== readme.txt ===") {
		t.Errorf("text = %q", res.Text)
	}
	if strings.Contains(res.Text, "image.raw") {
		t.Error("binary entry must be silently skipped")
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "Recovered 1 file(s)") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestExtractNeverFailsOnMismatchedContent(t *testing.T) {
	inputs := map[string][]byte{
		"fake.pdf":   []byte("this is not a pdf"),
		"fake.docx":  []byte("this is not a zip"),
		"fake.xlsx":  []byte{0x00, 0x01, 0x02},
		"fake.ipynb": []byte("<html>"),
		"empty.zip":  nil,
		"no-name":    {0xFF, 0xFE},
	}
	e := newExtractor()
	for name, data := range inputs {
		res := e.ExtractText(context.Background(), extract.NewMemFile(name, data, time.Now()))
		if res == nil {
			t.Fatalf("%s: nil result", name)
		}
		switch res.Status {
		case extract.StatusSuccess, extract.StatusPartial, extract.StatusError:
		default:
			t.Errorf("%s: non-terminal status %q", name, res.Status)
		}
		if res.Text == "" && res.Status != extract.StatusError {
			t.Errorf("%s: empty text with status %q", name, res.Status)
		}
	}
}

func TestExtractAllPreservesOrder(t *testing.T) {
	e := extract.New(extract.Config{MaxConcurrent: 2}, nil, nil)
	files := []extract.File{
		extract.NewMemFile("a.txt", []byte("alpha"), time.Now()),
		extract.NewMemFile("b.txt", []byte("beta"), time.Now()),
		extract.NewMemFile("c.txt", []byte("gamma"), time.Now()),
		extract.NewMemFile("d.txt", []byte("delta"), time.Now()),
	}
	results := e.ExtractAll(context.Background(), files)

	if len(results) != 4 {
		t.Fatalf("results = %d", len(results))
	}
	for i, want := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
		if results[i].FileName != want {
			t.Errorf("results[%d] = %q, want %q", i, results[i].FileName, want)
		}
	}
	ids := map[string]bool{}
	for _, r := range results {
		if ids[r.ID] {
			t.Errorf("duplicate result ID %q", r.ID)
		}
		ids[r.ID] = true
	}
}

func TestProcessingTimeIsRecorded(t *testing.T) {
	res := extractOne(t, "t.txt", []byte("x"))
	if res.ProcessingTime < 0 {
		t.Errorf("processingTime = %d", res.ProcessingTime)
	}
}
