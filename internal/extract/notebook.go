package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// multiString accepts the notebook convention of storing text either as one
// string or as a list of strings to be concatenated with no separator.
type multiString string

func (m *multiString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		var parts []string
		if err := json.Unmarshal(b, &parts); err != nil {
			return err
		}
		*m = multiString(strings.Join(parts, ""))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*m = multiString(s)
	return nil
}

type notebook struct {
	Metadata struct {
		Kernelspec struct {
			Language string `json:"language"`
		} `json:"kernelspec"`
		LanguageInfo struct {
			Name string `json:"name"`
		} `json:"language_info"`
	} `json:"metadata"`
	Cells []notebookCell `json:"cells"`
}

type notebookCell struct {
	CellType string           `json:"cell_type"`
	Source   multiString      `json:"source"`
	Outputs  []notebookOutput `json:"outputs"`
}

type notebookOutput struct {
	// Data values other than text/plain can be arbitrary JSON (images,
	// widgets), so decoding is deferred until the key is known.
	Text   multiString                `json:"text"`
	Data   map[string]json.RawMessage `json:"data"`
	Ename  string                     `json:"ename"`
	Evalue string                     `json:"evalue"`
}

// extractNotebook renders a Jupyter notebook cell by cell in document order,
// with sources under numbered cell markers and outputs underneath.
func (e *Extractor) extractNotebook(f File, res *Result) error {
	raw, err := f.Text()
	if err != nil {
		res.failUnreadable("Failed to read notebook file: "+err.Error(), "Could not read this file")
		return nil
	}

	var nb notebook
	if err := json.Unmarshal([]byte(raw), &nb); err != nil {
		res.failUnreadable("Invalid notebook file: "+err.Error(), "This notebook could not be parsed")
		return nil
	}

	lang := nb.Metadata.Kernelspec.Language
	if lang == "" {
		lang = nb.Metadata.LanguageInfo.Name
	}
	if lang == "" {
		lang = "unknown"
	}
	res.Metadata["language"] = lang
	res.Metadata["cellCount"] = len(nb.Cells)

	var sb strings.Builder
	for i, cell := range nb.Cells {
		fmt.Fprintf(&sb, "=== Cell %d (%s) ===\n", i+1, cell.CellType)
		sb.WriteString(string(cell.Source))
		sb.WriteString("\n")
		if len(cell.Outputs) > 0 {
			sb.WriteString("--- Output ---\n")
			for _, out := range cell.Outputs {
				writeNotebookOutput(&sb, out)
			}
		}
		sb.WriteString("\n")
	}
	res.Text = strings.TrimSpace(sb.String())
	return nil
}

func writeNotebookOutput(sb *strings.Builder, out notebookOutput) {
	if out.Text != "" {
		writeOutputLine(sb, string(out.Text))
		return
	}
	if raw, ok := out.Data["text/plain"]; ok {
		var plain multiString
		if err := json.Unmarshal(raw, &plain); err == nil {
			writeOutputLine(sb, string(plain))
			return
		}
	}
	if out.Ename != "" {
		fmt.Fprintf(sb, "[Error: %s] %s\n", out.Ename, out.Evalue)
	}
}

func writeOutputLine(sb *strings.Builder, s string) {
	sb.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		sb.WriteString("\n")
	}
}
