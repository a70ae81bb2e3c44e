// Package htmlutil extracts text tables from rendered pages.
package htmlutil

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("swimrank.htmlutil")

// NodeText concatenates the text under `node`, the contents of script and
// style elements are skipped.
func NodeText(node *html.Node) string {
	var out strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			out.WriteString(n.Data)
			return
		case n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style"):
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if node != nil {
		walk(node)
	}
	return out.String()
}

var innerWhitespace = regexp.MustCompile(`\s+`)

func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

// CleanText strips non-printable characters, trims and collapses inner whitespace.
func CleanText(s string) string {
	s = printable(s)
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}

// Table is the text content of an html table.
type Table struct {
	Header []string
	Rows   [][]string
}

// ParseTable parses the first <table> found in `markup`, cell text is cleaned with CleanText.
func ParseTable(ctx context.Context, markup string) (Table, error) {
	_, span := tracer.Start(ctx, "ParseTable")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return Table{}, err
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		err := fmt.Errorf("no table element found")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Table{}, err
	}

	var out Table
	table.Find("thead tr").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		out.Header = append(out.Header, CleanText(cell.Text()))
	})

	bodyRows := table.Find("tbody tr")
	if bodyRows.Length() == 0 {
		bodyRows = table.Find("tr").Not("thead tr")
	}
	bodyRows.Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		row := make([]string, 0, cells.Length())
		cells.Each(func(_ int, cell *goquery.Selection) {
			row = append(row, CleanText(NodeText(cell.Get(0))))
		})
		out.Rows = append(out.Rows, row)
	})

	span.SetAttributes(
		attribute.Int("header_columns", len(out.Header)),
		attribute.Int("rows", len(out.Rows)),
	)
	return out, nil
}
