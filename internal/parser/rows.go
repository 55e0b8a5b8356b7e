// Package parser decodes the raw arbitration schedule.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/arbys/arbitrations/pkg/core"
)

// ErrMalformedRow is returned for a schedule line that is not a
// (time, node) pair with an integer time.
var ErrMalformedRow = errors.New("malformed schedule row")

// Columns is the header forced onto every schedule file. Fields are read by
// position whatever the file's own header says.
var Columns = [2]string{"time", "node"}

// Options controls how a schedule file is read.
type Options struct {
	// SkipHeader drops the first record. By default every record is data.
	SkipHeader bool
}

// RowError locates a malformed row. Record is the 1-based record number.
type RowError struct {
	Record int
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Record, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ParseRow converts one (time, node) record.
func ParseRow(record []string) (core.RawRow, error) {
	if len(record) != len(Columns) {
		return core.RawRow{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRow, len(Columns), len(record))
	}

	ts, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return core.RawRow{}, fmt.Errorf("%w: invalid %s %q: %w", ErrMalformedRow, Columns[0], record[0], err)
	}

	return core.RawRow{Time: ts, Node: record[1]}, nil
}

// RowParser reads schedule rows from CSV input.
type RowParser struct {
	logger *slog.Logger
	opts   Options
}

// NewRowParser creates a parser. A nil logger discards debug output.
func NewRowParser(logger *slog.Logger, opts Options) *RowParser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RowParser{logger: logger, opts: opts}
}

// ReadRows reads every row of r. The first malformed row aborts the read.
func (p *RowParser) ReadRows(r io.Reader) ([]core.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	var rows []core.RawRow
	for n := 1; ; n++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &RowError{Record: n, Err: fmt.Errorf("%w: %w", ErrMalformedRow, err)}
		}
		if n == 1 && p.opts.SkipHeader {
			continue
		}

		row, err := ParseRow(record)
		if err != nil {
			return nil, &RowError{Record: n, Err: err}
		}
		rows = append(rows, row)
	}

	p.logger.Debug("Parsed schedule rows", "rows", len(rows), "skipHeader", p.opts.SkipHeader)
	return rows, nil
}
