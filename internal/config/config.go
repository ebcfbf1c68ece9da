// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Field names mirror the table roles they configure (playerid, atbats, ...).
// - Provide New() to build a Config with defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/okian/batting/internal/domain/types"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// MasterFile and BattingFile locate the identity and season tables.
	MasterFile  string `koanf:"masterfile"`
	BattingFile string `koanf:"battingfile"`

	// Separator and Quote describe delimited tables.
	Separator string `koanf:"separator"`
	Quote     string `koanf:"quote"`

	// Sheet selects the worksheet of .xlsx tables; empty means the first one.
	Sheet string `koanf:"sheet"`

	// Column names of each logical role.
	PlayerID  string `koanf:"playerid"`
	FirstName string `koanf:"firstname"`
	LastName  string `koanf:"lastname"`
	YearID    string `koanf:"yearid"`
	AtBats    string `koanf:"atbats"`
	Hits      string `koanf:"hits"`
	Doubles   string `koanf:"doubles"`
	Triples   string `koanf:"triples"`
	HomeRuns  string `koanf:"homeruns"`
	Walks     string `koanf:"walks"`

	// BattingFields lists the counting columns summed for career totals.
	BattingFields []string `koanf:"battingfields"`

	// MinimumAtBats is the eligibility threshold of every ratio metric.
	MinimumAtBats float64 `koanf:"minimum_at_bats"`

	// Metric names the formula to rank by: avg, obp, slg or ops.
	Metric string `koanf:"metric"`

	// Limit is the number of players to list.
	Limit int `koanf:"limit"`

	// Year restricts the ranking to one season; 0 ranks whole careers.
	Year int `koanf:"year"`

	// MetricsTextfile, when set, receives the Prometheus metrics on exit.
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// New creates a Config with defaults matching the Lahman tables.
func New() *Config {
	f := types.DefaultFields()
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		MasterFile:    "Master.csv",
		BattingFile:   "Batting.csv",
		Separator:     ",",
		Quote:         `"`,
		PlayerID:      f.PlayerID,
		FirstName:     f.FirstName,
		LastName:      f.LastName,
		YearID:        f.Year,
		AtBats:        f.AtBats,
		Hits:          f.Hits,
		Doubles:       f.Doubles,
		Triples:       f.Triples,
		HomeRuns:      f.HomeRuns,
		Walks:         f.Walks,
		BattingFields: f.Summable,
		MinimumAtBats: 500,
		Metric:        "avg",
		Limit:         10,
	}
}

// Fields returns the column names as an immutable value for the pipeline.
func (c *Config) Fields() types.Fields {
	summable := make([]string, len(c.BattingFields))
	copy(summable, c.BattingFields)
	return types.Fields{
		PlayerID:  c.PlayerID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Year:      c.YearID,
		AtBats:    c.AtBats,
		Hits:      c.Hits,
		Doubles:   c.Doubles,
		Triples:   c.Triples,
		HomeRuns:  c.HomeRuns,
		Walks:     c.Walks,
		Summable:  summable,
	}
}

// SeparatorRune returns the separator as a single character.
func (c *Config) SeparatorRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Separator)
	return r
}

// QuoteRune returns the quote as a single character.
func (c *Config) QuoteRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Quote)
	return r
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BattingFile) == "" {
		return fmt.Errorf("%w: battingfile must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.MasterFile) == "" {
		return fmt.Errorf("%w: masterfile must not be empty", ErrInvalidConfig)
	}
	if utf8.RuneCountInString(c.Separator) != 1 {
		return fmt.Errorf("%w: separator must be a single character, got %q", ErrInvalidConfig, c.Separator)
	}
	if c.Quote != `"` {
		return fmt.Errorf("%w: quote must be '\"', got %q", ErrInvalidConfig, c.Quote)
	}

	roles := []struct{ key, value string }{
		{"playerid", c.PlayerID},
		{"firstname", c.FirstName},
		{"lastname", c.LastName},
		{"yearid", c.YearID},
		{"atbats", c.AtBats},
		{"hits", c.Hits},
		{"doubles", c.Doubles},
		{"triples", c.Triples},
		{"homeruns", c.HomeRuns},
		{"walks", c.Walks},
	}
	for _, r := range roles {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, r.key)
		}
	}
	if len(c.BattingFields) == 0 {
		return fmt.Errorf("%w: battingfields must not be empty", ErrInvalidConfig)
	}

	if c.MinimumAtBats < 0 {
		return fmt.Errorf("%w: minimum_at_bats must not be negative", ErrInvalidConfig)
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidConfig)
	}
	if c.Year < 0 {
		return fmt.Errorf("%w: year must not be negative", ErrInvalidConfig)
	}
	return nil
}
