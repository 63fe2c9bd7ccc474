package common

import "io"

// Source provides the tables, headers, and data rows of one opened input.
//
// Tables returns the raw sub-names of the tables the input carries. A
// delimited text file has exactly one table and returns [""]. Formats that
// carry several tables (workbook sheets, HTML table elements) return one raw
// name per table. Final identifiers are derived by the importer from the
// input path and the raw name.
type Source interface {
	Tables() []string
	Header(table string) []string
	ColumnTypes(table string) []string
	// ScanRows calls yield once per data row of the given table, in input
	// order. A non-nil error from yield stops iteration and is returned.
	// Errors reading the underlying input are returned directly.
	ScanRows(table string, yield func(fields []string) error) error
}

// SourceConfig carries per-input options a driver may honor.
type SourceConfig struct {
	Delimiter  rune // field delimiter for delimited text; 0 means auto-detect
	InferTypes bool // sample data rows to infer column types; default is all TEXT
}

// Driver opens a Source from raw input. Each format package implements a
// Driver and registers it with importer.Register.
type Driver interface {
	Open(r io.Reader, config *SourceConfig) (Source, error)
}
