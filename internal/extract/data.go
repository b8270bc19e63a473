package extract

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractData sub-dispatches by concrete extension within the data category.
// CSV/TSV/XML/YAML pass through verbatim; workbooks and JSON get structural
// treatment.
func (e *Extractor) extractData(ext string, f File, res *Result) error {
	switch ext {
	case "xlsx", "xls":
		return e.extractWorkbook(f, res)
	case "json":
		return e.extractJSON(f, res)
	default: // csv, tsv, xml, yaml, yml
		text, err := f.Text()
		if err != nil {
			res.failUnreadable("Failed to read data file: "+err.Error(), "Could not read this file")
			return nil
		}
		res.Text = text
		return nil
	}
}

// extractWorkbook renders each sheet to CSV in the workbook's declared sheet
// order, joined under per-sheet headers. Blank rows are omitted.
func (e *Extractor) extractWorkbook(f File, res *Result) error {
	data, err := f.Bytes()
	if err != nil {
		res.failUnreadable("Failed to read spreadsheet: "+err.Error(), "Could not read this file")
		return nil
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		res.failUnreadable("Failed to parse spreadsheet: "+err.Error(), "Could not extract data from this spreadsheet")
		return nil
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	res.Metadata["sheetCount"] = len(sheets)

	parts := make([]string, 0, len(sheets))
	for i, name := range sheets {
		rows, err := wb.GetRows(name)
		if err != nil {
			res.warnf("Sheet %q could not be read: %v", name, err)
			continue
		}
		parts = append(parts, fmt.Sprintf("=== Sheet %d: %s ===\n%s", i+1, name, renderCSV(rows)))
	}
	res.Text = strings.Join(parts, "\n\n")
	return nil
}

func renderCSV(rows [][]string) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		_ = w.Write(row) // bytes.Buffer writes cannot fail
	}
	w.Flush()
	return strings.TrimSpace(buf.String())
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// extractJSON canonicalizes valid JSON to 2-space indentation. Invalid JSON
// passes through unmodified with a validity warning; either way the content
// is preserved.
func (e *Extractor) extractJSON(f File, res *Result) error {
	raw, err := f.Text()
	if err != nil {
		res.failUnreadable("Failed to read JSON file: "+err.Error(), "Could not read this file")
		return nil
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		res.warnf("File is not valid JSON; returning raw content")
		res.Text = raw
		res.Metadata["isValidJson"] = 0
		return nil
	}

	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		res.warnf("JSON could not be re-serialized; returning raw content")
		res.Text = raw
		res.Metadata["isValidJson"] = 0
		return nil
	}
	res.Text = string(pretty)
	res.Metadata["isValidJson"] = 1
	return nil
}
