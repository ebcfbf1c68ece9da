// Package formula defines the contract for computing batting metrics from
// counting fields.
package formula

import (
	"fmt"
	"strings"

	"github.com/okian/batting/internal/domain/types"
)

// DefaultMinimumAtBats is the typical cutoff used for official statistics.
const DefaultMinimumAtBats = 500

// Metric names accepted by ByName.
const (
	NameBattingAverage     = "avg"
	NameOnBasePercentage   = "obp"
	NameSluggingPercentage = "slg"
	NameOnBasePlusSlugging = "ops"
)

// Formula computes a single metric from one row.
type Formula interface {
	Compute(fields types.Fields, row types.Row) (float64, error)
}

// Func adapts a plain function to the Formula interface.
type Func func(fields types.Fields, row types.Row) (float64, error)

// Compute implements Formula.
func (f Func) Compute(fields types.Fields, row types.Row) (float64, error) {
	return f(fields, row)
}

// Option applies a configuration option to the base formulas.
type Option func(*settings)

type settings struct {
	minimumAtBats float64
}

// WithMinimumAtBats sets the eligibility threshold. Negative values are ignored.
func WithMinimumAtBats(n float64) Option {
	return func(s *settings) {
		if n >= 0 {
			s.minimumAtBats = n
		}
	}
}

// eligible reports whether atBats clears the threshold. Zero at-bats never does.
func (s settings) eligible(atBats float64) bool {
	return atBats > 0 && atBats >= s.minimumAtBats
}

func newSettings(opts []Option) settings {
	s := settings{minimumAtBats: DefaultMinimumAtBats}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// counts holds the counting fields of one row.
type counts struct {
	atBats, hits, doubles, triples, homeRuns, walks float64
}

// read converts the named fields of row. Every field is read before
// eligibility is decided.
func read(row types.Row, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := row.Float(name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// BattingAverage returns hits / at-bats.
func BattingAverage(opts ...Option) Formula {
	s := newSettings(opts)
	return Func(func(f types.Fields, row types.Row) (float64, error) {
		v, err := read(row, f.Hits, f.AtBats)
		if err != nil {
			return 0, err
		}
		c := counts{hits: v[0], atBats: v[1]}
		if !s.eligible(c.atBats) {
			return 0, nil
		}
		return c.hits / c.atBats, nil
	})
}

// OnBasePercentage returns (hits + walks) / (at-bats + walks).
func OnBasePercentage(opts ...Option) Formula {
	s := newSettings(opts)
	return Func(func(f types.Fields, row types.Row) (float64, error) {
		v, err := read(row, f.Hits, f.AtBats, f.Walks)
		if err != nil {
			return 0, err
		}
		c := counts{hits: v[0], atBats: v[1], walks: v[2]}
		if !s.eligible(c.atBats) {
			return 0, nil
		}
		return (c.hits + c.walks) / (c.atBats + c.walks), nil
	})
}

// SluggingPercentage returns total bases / at-bats. Singles are derived from
// hits minus extra-base hits.
func SluggingPercentage(opts ...Option) Formula {
	s := newSettings(opts)
	return Func(func(f types.Fields, row types.Row) (float64, error) {
		v, err := read(row, f.Hits, f.Doubles, f.Triples, f.HomeRuns, f.AtBats)
		if err != nil {
			return 0, err
		}
		c := counts{hits: v[0], doubles: v[1], triples: v[2], homeRuns: v[3], atBats: v[4]}
		if !s.eligible(c.atBats) {
			return 0, nil
		}
		singles := c.hits - c.doubles - c.triples - c.homeRuns
		return (singles + 2*c.doubles + 3*c.triples + 4*c.homeRuns) / c.atBats, nil
	})
}

// Sum returns a formula adding up the results of parts.
func Sum(parts ...Formula) Formula {
	return Func(func(f types.Fields, row types.Row) (float64, error) {
		total := 0.0
		for _, p := range parts {
			v, err := p.Compute(f, row)
			if err != nil {
				return 0, err
			}
			total += v
		}
		return total, nil
	})
}

// OnBasePlusSlugging returns on-base plus slugging percentage.
func OnBasePlusSlugging(opts ...Option) Formula {
	return Sum(OnBasePercentage(opts...), SluggingPercentage(opts...))
}

// ByName resolves a metric name (avg, obp, slg, ops) to its formula.
func ByName(name string, opts ...Option) (Formula, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameBattingAverage:
		return BattingAverage(opts...), nil
	case NameOnBasePercentage:
		return OnBasePercentage(opts...), nil
	case NameSluggingPercentage:
		return SluggingPercentage(opts...), nil
	case NameOnBasePlusSlugging:
		return OnBasePlusSlugging(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormula, name)
	}
}
