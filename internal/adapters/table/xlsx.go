package table

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/okian/batting/internal/domain/types"
)

// XLSXSource reads one worksheet of an Excel workbook.
type XLSXSource struct {
	settings
}

// NewXLSXSource creates a spreadsheet reader.
func NewXLSXSource(opts ...Option) *XLSXSource {
	return &XLSXSource{settings: newSettings(opts)}
}

// Load implements Source.
func (s *XLSXSource) Load(ctx context.Context, path string) ([]types.Row, error) {
	start := time.Now()

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrOpenTable, err)
	}
	defer func() { _ = f.Close() }()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: sheet %q: %w", path, ErrReadTable, sheet, err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyTable)
	}

	header := records[0]
	rows := make([]types.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows = append(rows, zip(header, record))
	}
	observe(path, len(rows), start)
	return rows, nil
}
