// Package ranking orders players by a computed metric.
//
// Ordering: score DESC, then player id ASC, then input order (stable). A
// player can appear more than once when a season was split across teams;
// such rows keep their input order.
package ranking

import (
	"math"
	"sort"

	"github.com/okian/batting/internal/domain/formula"
	"github.com/okian/batting/internal/domain/types"
)

// Top computes f for every row and returns the n best entries. n larger
// than the number of rows returns every row; n <= 0 returns no entries.
func Top(fields types.Fields, rows []types.Row, f formula.Formula, n int) ([]types.Entry, error) {
	if n <= 0 {
		return []types.Entry{}, nil
	}

	all := make([]types.Entry, 0, len(rows))
	for _, row := range rows {
		id, err := row.Value(fields.PlayerID)
		if err != nil {
			return nil, err
		}
		score, err := f.Compute(fields, row)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(score) {
			score = 0
		}
		all = append(all, types.Entry{PlayerID: id, Score: score})
	}

	sortEntries(all)
	if n < len(all) {
		all = all[:n]
	}
	assignRanksWithTies(all)
	return all, nil
}

// sortEntries sorts entries by score (descending) and player id (ascending).
func sortEntries(entries []types.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
}

// assignRanksWithTies gives entries with the same score the same rank; the
// next distinct score takes the following rank (consecutive ranking).
func assignRanksWithTies(entries []types.Entry) {
	currentRank := 0
	for i := range entries {
		if i == 0 || entries[i].Score != entries[i-1].Score {
			currentRank++
		}
		entries[i].Rank = currentRank
	}
}
