// Package filter selects season rows.
package filter

import (
	"strconv"

	"github.com/okian/batting/internal/domain/types"
)

// ByYear returns the rows whose yearField equals year, in input order.
// Values are compared as strings, so "2000" matches but "2000.0" does not.
func ByYear(rows []types.Row, year int, yearField string) ([]types.Row, error) {
	target := strconv.Itoa(year)
	out := make([]types.Row, 0, len(rows))
	for _, row := range rows {
		v, err := row.Value(yearField)
		if err != nil {
			return nil, err
		}
		if v == target {
			out = append(out, row)
		}
	}
	return out, nil
}
