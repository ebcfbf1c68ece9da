// Package aggregate reduces season rows into per-player career totals.
package aggregate

import (
	"sort"

	"github.com/okian/batting/internal/domain/types"
)

// ByPlayer groups rows by idField and sums each of fields across a player's
// rows. Every player present in rows gets exactly one career row, carrying
// only the requested fields plus the identifier.
func ByPlayer(rows []types.Row, idField string, fields []string) (map[string]*types.CareerRow, error) {
	out := make(map[string]*types.CareerRow)
	for _, row := range rows {
		id, err := row.Value(idField)
		if err != nil {
			return nil, err
		}
		career, ok := out[id]
		if !ok {
			career = types.NewCareerRow(idField, id)
			for _, field := range fields {
				career.Add(field, 0)
			}
			out[id] = career
		}
		for _, field := range fields {
			v, err := row.Float(field)
			if err != nil {
				return nil, err
			}
			career.Add(field, v)
		}
	}
	return out, nil
}

// Rows flattens career rows into a slice ordered by player id ascending.
func Rows(careers map[string]*types.CareerRow) []types.Row {
	ids := make([]string, 0, len(careers))
	for id := range careers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]types.Row, len(ids))
	for i, id := range ids {
		out[i] = careers[id]
	}
	return out
}
