// Package types contains common types used across the application
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Fields names the table columns backing each logical role. A Fields value is
// passed explicitly to every operation that needs column names.
type Fields struct {
	PlayerID  string
	FirstName string
	LastName  string
	Year      string
	AtBats    string
	Hits      string
	Doubles   string
	Triples   string
	HomeRuns  string
	Walks     string

	// Summable lists the counting fields added up for career totals.
	Summable []string
}

// DefaultFields returns the column names used by the Lahman baseball tables.
func DefaultFields() Fields {
	return Fields{
		PlayerID:  "playerID",
		FirstName: "nameFirst",
		LastName:  "nameLast",
		Year:      "yearID",
		AtBats:    "AB",
		Hits:      "H",
		Doubles:   "2B",
		Triples:   "3B",
		HomeRuns:  "HR",
		Walks:     "BB",
		Summable:  []string{"AB", "H", "2B", "3B", "HR", "BB"},
	}
}

// Row is a single table record, either read from a table or synthesized.
type Row interface {
	// Value returns the textual value of field.
	Value(field string) (string, error)
	// Float returns field converted to a float64.
	Float(field string) (float64, error)
}

// SeasonRow maps column names to raw string values.
type SeasonRow map[string]string

// Value implements Row.
func (r SeasonRow) Value(field string) (string, error) {
	v, ok := r[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, field)
	}
	return v, nil
}

// Float implements Row.
func (r SeasonRow) Float(field string) (float64, error) {
	v, err := r.Value(field)
	if err != nil {
		return 0, err
	}
	return parseFloat(field, v)
}

// CareerRow holds summed counting fields for one player. The identifier
// field carries the player id itself; fields that were not summed are absent.
type CareerRow struct {
	idField  string
	playerID string
	totals   map[string]float64
}

// NewCareerRow creates an empty career row for playerID.
func NewCareerRow(idField, playerID string) *CareerRow {
	return &CareerRow{
		idField:  idField,
		playerID: playerID,
		totals:   make(map[string]float64),
	}
}

// PlayerID returns the player identifier of the row.
func (r *CareerRow) PlayerID() string { return r.playerID }

// Add accumulates v into the total for field.
func (r *CareerRow) Add(field string, v float64) {
	r.totals[field] += v
}

// Total returns the summed value of field and whether it is present.
func (r *CareerRow) Total(field string) (float64, bool) {
	v, ok := r.totals[field]
	return v, ok
}

// Value implements Row.
func (r *CareerRow) Value(field string) (string, error) {
	if field == r.idField {
		return r.playerID, nil
	}
	v, ok := r.totals[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, field)
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

// Float implements Row.
func (r *CareerRow) Float(field string) (float64, error) {
	if field == r.idField {
		return parseFloat(field, r.playerID)
	}
	v, ok := r.totals[field]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, field)
	}
	return v, nil
}

// Entry represents a leaderboard entry
type Entry struct {
	Rank     int     `json:"rank"`
	PlayerID string  `json:"player_id"`
	Score    float64 `json:"score"`
}

func parseFloat(field, v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q value %q", ErrUnparseableNumber, field, v)
	}
	return f, nil
}
