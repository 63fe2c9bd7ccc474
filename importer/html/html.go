package html

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/darianmavgo/loadsqlite/importer"
	"github.com/darianmavgo/loadsqlite/importer/common"

	"golang.org/x/net/html"
)

func init() {
	importer.Register("html", &htmlDriver{})
}

type htmlDriver struct{}

func (d *htmlDriver) Open(input io.Reader, config *common.SourceConfig) (common.Source, error) {
	return NewSource(input, config)
}

// Source reads an HTML document. Every non-nested <table> element is one
// table, named by its id attribute or a positional fallback; the first row
// supplies the header.
type Source struct {
	tables []tableData
	names  []string
	infer  bool
}

type tableData struct {
	rawName string
	headers []string
	rows    [][]string
}

// Ensure Source implements common.Source
var _ common.Source = (*Source)(nil)

// NewSource creates a Source from an io.Reader with optional config.
func NewSource(r io.Reader, config *common.SourceConfig) (*Source, error) {
	tables, err := parseTables(bufio.NewReaderSize(r, 65536))
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables found in document")
	}

	names := make([]string, len(tables))
	for i, t := range tables {
		if t.rawName != "" {
			names[i] = t.rawName
		} else {
			names[i] = fmt.Sprintf("table%d", i)
		}
	}

	return &Source{
		tables: tables,
		names:  names,
		infer:  config != nil && config.InferTypes,
	}, nil
}

// Tables implements common.Source.
func (s *Source) Tables() []string {
	return s.names
}

// Header implements common.Source.
func (s *Source) Header(table string) []string {
	if t := s.lookup(table); t != nil {
		return t.headers
	}
	return nil
}

// ColumnTypes implements common.Source.
func (s *Source) ColumnTypes(table string) []string {
	t := s.lookup(table)
	if t == nil {
		return nil
	}
	if s.infer {
		return common.InferColumnTypes(t.rows, len(t.headers))
	}
	return common.GenColumnTypes(len(t.headers))
}

// ScanRows implements common.Source. Cells missing from a row (sparse
// markup) are padded with empty strings.
func (s *Source) ScanRows(table string, yield func(fields []string) error) error {
	t := s.lookup(table)
	if t == nil {
		return nil
	}
	for _, row := range t.rows {
		for len(row) < len(t.headers) {
			row = append(row, "")
		}
		if err := yield(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Source) lookup(table string) *tableData {
	for i, name := range s.names {
		if name == table {
			return &s.tables[i]
		}
	}
	return nil
}

func parseTables(reader io.Reader) ([]tableData, error) {
	doc, err := html.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var tables []tableData
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, extractTable(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	return tables, nil
}

func extractTable(n *html.Node) tableData {
	var name string
	for _, attr := range n.Attr {
		if attr.Key == "id" {
			name = attr.Val
			break
		}
	}

	var rows [][]string
	var visitRows func(*html.Node)
	visitRows = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "tr" {
			var row []string
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, extractText(c))
				}
			}
			rows = append(rows, row)
			return // Don't look for TRs inside TRs
		}

		for c := node.FirstChild; c != nil; c = c.NextSibling {
			// Don't traverse into nested tables here
			if c.Type == html.ElementNode && c.Data == "table" {
				continue
			}
			visitRows(c)
		}
	}
	visitRows(n)

	if len(rows) == 0 {
		return tableData{rawName: name}
	}

	return tableData{
		rawName: name,
		headers: rows[0],
		rows:    rows[1:],
	}
}

func extractText(n *html.Node) string {
	var sb strings.Builder
	extractTextRecursive(n, &sb)
	return strings.TrimSpace(sb.String())
}

func extractTextRecursive(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractTextRecursive(c, sb)
	}
}
