// Package table reads tabular files into rows keyed by their header names.
package table

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/batting/internal/domain/types"
	"github.com/okian/batting/pkg/metrics"
)

// Source loads every row of the table at path. Field names are taken
// verbatim from the table's header.
type Source interface {
	Load(ctx context.Context, path string) ([]types.Row, error)
}

// FileSource dispatches on the file extension: ".xlsx" files are read as
// spreadsheets, everything else as delimited text.
type FileSource struct {
	csv  *CSVSource
	xlsx *XLSXSource
}

// NewFileSource builds a FileSource; options apply to both readers.
func NewFileSource(opts ...Option) *FileSource {
	return &FileSource{
		csv:  NewCSVSource(opts...),
		xlsx: NewXLSXSource(opts...),
	}
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context, path string) ([]types.Row, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return s.xlsx.Load(ctx, path)
	}
	return s.csv.Load(ctx, path)
}

// zip builds a row from a header and the values of one record. Columns
// missing from the end of a short record read as ""; extra values without a
// header are dropped.
func zip(header, record []string) types.SeasonRow {
	row := make(types.SeasonRow, len(header))
	for i, name := range header {
		if i < len(record) {
			row[name] = record[i]
		} else {
			row[name] = ""
		}
	}
	return row
}

// observe records load metrics for the table named by path.
func observe(path string, rows int, start time.Time) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	metrics.RecordRowsLoaded(name, rows)
	metrics.RecordTableLoadLatency(name, float64(time.Since(start).Milliseconds()))
}
