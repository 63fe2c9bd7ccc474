package common

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

var identReplacer = strings.NewReplacer(".", "_", " ", "_", "-", "_")

// TableIdent derives a table identifier from an input file path: the final
// path segment with its last extension removed and every period, space, and
// hyphen replaced by an underscore. Nothing else is escaped; embed the
// result with QuoteIdent.
func TableIdent(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = base[:len(base)-len(ext)]
	}
	return identReplacer.Replace(base)
}

// Ident applies the same substitution rules as TableIdent to a raw name that
// is not a path, such as a workbook sheet name or an HTML table id.
func Ident(raw string) string {
	return identReplacer.Replace(raw)
}

// QuoteIdent returns s as a double-quoted SQL identifier, doubling any
// embedded double quotes.
func QuoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// GenColumnTypes declares every one of n columns as TEXT. Values are opaque
// text unless type inference is explicitly enabled.
func GenColumnTypes(n int) []string {
	coltypes := make([]string, n)
	for idx := range coltypes {
		coltypes[idx] = "TEXT"
	}
	return coltypes
}

// InferColumnTypes inspects the sample rows and promotes a column to INTEGER
// or REAL only when every non-empty sample value in it parses as that type.
// Columns with no non-empty sample values, or any unparsable value, stay TEXT.
func InferColumnTypes(sample [][]string, n int) []string {
	coltypes := make([]string, n)
	for col := 0; col < n; col++ {
		isInt := true
		isReal := true
		seen := false
		for _, row := range sample {
			if col >= len(row) {
				continue
			}
			val := strings.TrimSpace(row[col])
			if val == "" {
				continue
			}
			seen = true
			if isInt {
				if _, err := strconv.ParseInt(val, 10, 64); err != nil {
					isInt = false
				}
			}
			if _, err := strconv.ParseFloat(val, 64); err != nil {
				isReal = false
				break
			}
		}
		switch {
		case seen && isInt:
			coltypes[col] = "INTEGER"
		case seen && isReal:
			coltypes[col] = "REAL"
		default:
			coltypes[col] = "TEXT"
		}
	}
	return coltypes
}

// GenCreateTableSQL generates an idempotent CREATE TABLE statement with every
// identifier quoted. Column names are used verbatim; repeats are the caller's
// problem and surface as a store error.
func GenCreateTableSQL(table string, columns []string, colTypes []string) string {
	var builder strings.Builder
	builder.Grow(len(table) + len(columns)*24) // Heuristic pre-allocation

	builder.WriteString("CREATE TABLE IF NOT EXISTS ")
	builder.WriteString(QuoteIdent(table))
	builder.WriteString(" (")
	for i, name := range columns {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(QuoteIdent(name))
		builder.WriteByte(' ')
		builder.WriteString(colTypes[i])
	}
	builder.WriteByte(')')
	return builder.String()
}

// GenInsertSQL generates the positional insert statement for a table with n
// columns. Column names are omitted so values bind strictly by position.
func GenInsertSQL(table string, n int) (string, error) {
	if table == "" || n < 1 {
		return "", fmt.Errorf("table name and at least one column are required")
	}
	return fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		QuoteIdent(table),
		strings.Repeat("?,", n-1)+"?",
	), nil
}
