package importer

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/darianmavgo/loadsqlite/importer/common"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Options configures a Load run.
type Options struct {
	Delimiter  rune            // delimiter for delimited text inputs; 0 auto-detects
	InferTypes bool            // infer INTEGER/REAL column types from a sample; default is all TEXT
	Verbose    bool            // enables progress logging
	Reporter   common.Reporter // destination for per-row diagnostics; defaults to LogReporter
}

// Load imports every input into the SQLite database at dbPath, creating it
// if absent. One table is created per input (per sheet or embedded table for
// multi-table formats), named from the input's base name. Inputs are
// processed strictly in order; a single transaction spans the whole run and
// commits only after the last input. Rows with the wrong field count and
// rows the store rejects on an integrity constraint are reported and
// skipped; any other failure aborts the run uncommitted.
func Load(dbPath string, paths []string, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = common.LogReporter{}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input files given")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Limit to 1 connection to avoid locking issues and improve tx.Stmt performance
	db.SetMaxOpenConns(1)

	// Set PRAGMA page_size and cache_size for performance
	if _, err := db.Exec("PRAGMA page_size = 65536; PRAGMA cache_size = -2000;"); err != nil {
		return fmt.Errorf("failed to set PRAGMAs: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, path := range paths {
		if err := loadFile(tx, path, opts, reporter); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// loadFile imports one input file into the open transaction.
func loadFile(tx *sql.Tx, path string, opts *Options, reporter common.Reporter) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	src, err := Open(DriverName(path), f, &common.SourceConfig{
		Delimiter:  opts.Delimiter,
		InferTypes: opts.InferTypes,
	})
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Clean up source resources if it implements io.Closer
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	fileIdent := common.TableIdent(path)
	subs := src.Tables()
	for _, sub := range subs {
		table := fileIdent
		if sub != "" && len(subs) > 1 {
			table = fileIdent + "_" + common.Ident(sub)
		}
		if err := loadTable(tx, table, sub, src, opts, reporter); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// loadTable provisions the destination table for one source table and
// transfers its data rows.
func loadTable(tx *sql.Tx, table, sub string, src common.Source, opts *Options, reporter common.Reporter) error {
	header := src.Header(sub)
	if len(header) == 0 {
		return nil // Skip tables without headers
	}

	createSQL := common.GenCreateTableSQL(table, header, src.ColumnTypes(sub))
	if _, err := tx.Exec(createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	// The table may predate this run, or an earlier input may have sanitized
	// to the same identifier with a different shape. The store's actual
	// column count decides whether this input's rows can bind at all.
	tableCols, err := columnCount(tx, table)
	if err != nil {
		return err
	}

	if opts.Verbose {
		log.Printf("[LOADSQLITE] loading table %s (%d columns)", table, tableCols)
	}

	var stmt *sql.Stmt
	var shapeErr error
	if tableCols == len(header) {
		insertSQL, err := common.GenInsertSQL(table, len(header))
		if err != nil {
			return err
		}
		stmt, err = tx.Prepare(insertSQL)
		if err != nil {
			return fmt.Errorf("failed to prepare insert for table %s: %w", table, err)
		}
		defer stmt.Close()
	} else {
		shapeErr = fmt.Errorf("table %s has %d columns, input header has %d", table, tableCols, len(header))
	}

	rowCount := 0
	args := make([]interface{}, len(header))
	err = src.ScanRows(sub, func(fields []string) error {
		if len(fields) != len(header) {
			reporter.RowSkipped(table, fields)
			return nil
		}
		if shapeErr != nil {
			reporter.RowFailed(table, fields, shapeErr)
			return nil
		}
		for i, val := range fields {
			args[i] = val
		}
		if _, err := stmt.Exec(args...); err != nil {
			if isConstraintErr(err) {
				reporter.RowFailed(table, fields, err)
				return nil
			}
			return fmt.Errorf("failed to insert row into table %s: %w", table, err)
		}
		rowCount++
		return nil
	})
	if err != nil {
		return err
	}

	if opts.Verbose {
		log.Printf("[LOADSQLITE] finished table %s, rows inserted: %d", table, rowCount)
	}
	return nil
}

// columnCount returns the number of columns of an existing table.
func columnCount(tx *sql.Tx, table string) (int, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", common.QuoteIdent(table)))
	if err != nil {
		return 0, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	return n, nil
}

// isConstraintErr reports whether err is a row-level integrity violation.
// Only these are recoverable; every other store error aborts the run.
func isConstraintErr(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}
