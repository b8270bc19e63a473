package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Block-level elements force a line break before and after their content.
var blockTags = map[string]bool{
	"div": true, "p": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "tr": true, "br": true, "hr": true,
}

var (
	newlineRuns   = regexp.MustCompile(`\n{3,}`)
	trailingSpace = regexp.MustCompile(` +\n`)
)

// extractHTML parses markup into a DOM, drops script/style subtrees and
// flattens the remainder into text with block elements as line breaks.
func (e *Extractor) extractHTML(f File, res *Result) error {
	raw, err := f.Text()
	if err != nil {
		res.failUnreadable("Failed to read HTML file: "+err.Error(), "Could not read this file")
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		res.failUnreadable("Failed to parse HTML: "+err.Error(), "Could not parse this HTML file")
		return nil
	}
	doc.Find("script, style").Remove()

	var sb strings.Builder
	for _, n := range doc.Selection.Nodes {
		flattenHTML(n, &sb)
	}

	text := trailingSpace.ReplaceAllString(sb.String(), "\n")
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	res.Text = strings.TrimSpace(text)
	res.Metadata["htmlLength"] = len(raw)
	return nil
}

// flattenHTML walks the node tree depth-first, appending trimmed text nodes
// and newlines around block-level elements.
func flattenHTML(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			sb.WriteString(t)
			sb.WriteString(" ")
		}
		return
	}

	block := n.Type == html.ElementNode && blockTags[n.Data]
	if block {
		sb.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flattenHTML(c, sb)
	}
	if block {
		sb.WriteString("\n")
	}
}
