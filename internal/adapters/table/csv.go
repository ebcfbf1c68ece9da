package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/okian/batting/internal/domain/types"
)

const utf8BOM = "\ufeff"

// CSVSource reads delimited text files.
type CSVSource struct {
	settings
}

// NewCSVSource creates a CSV reader. Defaults: ',' separator, '"' quote.
func NewCSVSource(opts ...Option) *CSVSource {
	return &CSVSource{settings: newSettings(opts)}
}

// Load implements Source.
func (s *CSVSource) Load(ctx context.Context, path string) ([]types.Row, error) {
	if s.quote != '"' {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedQuote, s.quote)
	}
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenTable, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := s.read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	observe(path, len(rows), start)
	return rows, nil
}

// read parses r; the first record is the header.
func (s *CSVSource) read(ctx context.Context, r io.Reader) ([]types.Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = s.separator
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadTable, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var rows []types.Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadTable, err)
		}
		rows = append(rows, zip(header, record))
	}
	return rows, nil
}
