package excel

import (
	"fmt"
	"io"

	"github.com/darianmavgo/loadsqlite/importer"
	"github.com/darianmavgo/loadsqlite/importer/common"

	"github.com/xuri/excelize/v2"
)

func init() {
	importer.Register("excel", &excelDriver{})
}

type excelDriver struct{}

func (d *excelDriver) Open(input io.Reader, config *common.SourceConfig) (common.Source, error) {
	return NewSource(input, config)
}

// sampleSize is the number of data rows read per sheet for type inference.
const sampleSize = 20

// Source reads an Excel workbook. Each sheet is one table and the first row
// of a sheet is its header. Rows shorter than the header are padded with
// empty strings because the format drops trailing empty cells.
type Source struct {
	sheets  []string
	headers map[string][]string
	file    *excelize.File
	infer   bool
}

// Ensure Source implements common.Source
var _ common.Source = (*Source)(nil)

// Ensure Source implements io.Closer
var _ io.Closer = (*Source)(nil)

// NewSource creates a Source from an io.Reader with optional config.
func NewSource(r io.Reader, config *common.SourceConfig) (*Source, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, fmt.Errorf("no sheets found in workbook")
	}

	headers := make(map[string][]string)
	for _, sheet := range sheets {
		rows, err := f.Rows(sheet)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		if rows.Next() {
			cols, err := rows.Columns()
			if err != nil {
				rows.Close()
				f.Close()
				return nil, fmt.Errorf("failed to read header of sheet %s: %w", sheet, err)
			}
			headers[sheet] = cols
		}
		rows.Close()
	}

	return &Source{
		sheets:  sheets,
		headers: headers,
		file:    f,
		infer:   config != nil && config.InferTypes,
	}, nil
}

// Tables implements common.Source, returning the workbook's sheet names.
func (s *Source) Tables() []string {
	return s.sheets
}

// Header implements common.Source.
func (s *Source) Header(table string) []string {
	return s.headers[table]
}

// ColumnTypes implements common.Source.
func (s *Source) ColumnTypes(table string) []string {
	header := s.headers[table]
	if header == nil {
		return nil
	}
	if !s.infer {
		return common.GenColumnTypes(len(header))
	}

	rows, err := s.file.Rows(table)
	if err != nil {
		// Fall back to TEXT if the sheet cannot be re-read
		return common.GenColumnTypes(len(header))
	}
	defer rows.Close()

	var sample [][]string
	first := true
	for len(sample) < sampleSize && rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			break
		}
		if first {
			first = false // header row
			continue
		}
		sample = append(sample, padRow(cols, len(header)))
	}
	return common.InferColumnTypes(sample, len(header))
}

// ScanRows implements common.Source.
func (s *Source) ScanRows(table string, yield func(fields []string) error) error {
	header := s.headers[table]
	if header == nil {
		return nil
	}

	rows, err := s.file.Rows(table)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", table, err)
	}
	defer rows.Close()

	first := true
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("failed to read row of sheet %s: %w", table, err)
		}
		if first {
			first = false // header row
			continue
		}
		if err := yield(padRow(cols, len(header))); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the workbook.
func (s *Source) Close() error {
	return s.file.Close()
}

func padRow(row []string, targetLen int) []string {
	for len(row) < targetLen {
		row = append(row, "")
	}
	return row
}
