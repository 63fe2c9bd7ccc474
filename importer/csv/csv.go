package csv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/darianmavgo/loadsqlite/importer"
	"github.com/darianmavgo/loadsqlite/importer/common"
)

func init() {
	importer.Register("csv", &csvDriver{})
}

type csvDriver struct{}

func (d *csvDriver) Open(input io.Reader, config *common.SourceConfig) (common.Source, error) {
	return NewSource(input, config)
}

// sampleSize is the number of data rows buffered for type inference.
const sampleSize = 20

// Source reads one delimited text file. The first record is the header; the
// rest are data rows. ScanRows can only be called once.
type Source struct {
	header   []string
	buffered [][]string
	reader   *csv.Reader
	infer    bool
}

// Ensure Source implements common.Source
var _ common.Source = (*Source)(nil)

// NewSource creates a Source from an io.Reader with optional config. When no
// delimiter is configured it is detected from the first line of the input.
func NewSource(r io.Reader, config *common.SourceConfig) (*Source, error) {
	if config == nil {
		config = &common.SourceConfig{}
	}

	br := bufio.NewReaderSize(r, 65536)

	delimiter := config.Delimiter
	if delimiter == 0 {
		peekBytes, _ := br.Peek(2048)
		sample := string(peekBytes)
		if idx := strings.IndexAny(sample, "\r\n"); idx != -1 {
			sample = sample[:idx]
		}
		delimiter = common.DetectDelimiter(sample)
	}

	reader := csv.NewReader(br)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1 // shape checks happen downstream, per row

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("input is empty")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	s := &Source{
		header: header,
		reader: reader,
		infer:  config.InferTypes,
	}

	if config.InferTypes {
		for i := 0; i < sampleSize; i++ {
			row, err := reader.Read()
			if err != nil {
				if err == io.EOF {
					break
				}
				return nil, fmt.Errorf("failed to read row: %w", err)
			}
			s.buffered = append(s.buffered, row)
		}
	}
	return s, nil
}

// Tables implements common.Source. A delimited file carries exactly one
// table, named from the file itself.
func (s *Source) Tables() []string {
	return []string{""}
}

// Header implements common.Source. Column names are used verbatim.
func (s *Source) Header(table string) []string {
	if table != "" {
		return nil
	}
	return s.header
}

// ColumnTypes implements common.Source.
func (s *Source) ColumnTypes(table string) []string {
	if table != "" {
		return nil
	}
	if s.infer {
		return common.InferColumnTypes(s.buffered, len(s.header))
	}
	return common.GenColumnTypes(len(s.header))
}

// ScanRows implements common.Source, yielding any rows buffered for type
// inference before streaming the remainder of the input.
func (s *Source) ScanRows(table string, yield func(fields []string) error) error {
	if table != "" {
		return nil
	}
	if s.reader == nil {
		return fmt.Errorf("reader is not initialized")
	}

	for _, row := range s.buffered {
		if err := yield(row); err != nil {
			return err
		}
	}
	s.buffered = nil

	for {
		row, err := s.reader.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read row: %w", err)
		}
		if err := yield(row); err != nil {
			return err
		}
	}
}
