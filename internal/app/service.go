// Package service composes the leaderboard pipeline: row source, year
// filter or career aggregation, ranking and name resolution.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/okian/batting/internal/adapters/table"
	"github.com/okian/batting/internal/domain/aggregate"
	"github.com/okian/batting/internal/domain/filter"
	"github.com/okian/batting/internal/domain/formula"
	"github.com/okian/batting/internal/domain/names"
	"github.com/okian/batting/internal/domain/ranking"
	"github.com/okian/batting/internal/domain/types"
	"github.com/okian/batting/pkg/logger"
	"github.com/okian/batting/pkg/metrics"
)

// Default table locations.
const (
	DefaultBattingFile = "Batting.csv"
	DefaultMasterFile  = "Master.csv"
)

// Service answers top-N leaderboard queries over a season table and an
// identity table. It holds no state between queries: both tables are read
// at most once per call and discarded afterwards.
type Service struct {
	source      table.Source
	fields      types.Fields
	battingFile string
	masterFile  string

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the row source used to read both tables.
func WithSource(source table.Source) Option {
	return func(s *Service) {
		if source != nil {
			s.source = source
		}
	}
}

// WithFields sets the column names of both tables.
func WithFields(fields types.Fields) Option {
	return func(s *Service) {
		s.fields = fields
	}
}

// WithBattingFile sets the season table location.
func WithBattingFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.battingFile = path
		}
	}
}

// WithMasterFile sets the identity table location.
func WithMasterFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.masterFile = path
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		source:      table.NewFileSource(),
		fields:      types.DefaultFields(),
		battingFile: DefaultBattingFile,
		masterFile:  DefaultMasterFile,
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Default()
	}

	return s
}

// TopByYear returns the n best players of year according to f, formatted
// as "0.333 --- First Last".
func (s *Service) TopByYear(ctx context.Context, f formula.Formula, n, year int) ([]string, error) {
	return s.run(ctx, metrics.KindYear, func(season, identity []types.Row) ([]string, error) {
		return RankYear(s.fields, season, identity, f, n, year)
	}, logger.Int("year", year), logger.Int("limit", n))
}

// TopByCareer returns the n best players over their whole career according
// to f, formatted as "0.333 --- First Last".
func (s *Service) TopByCareer(ctx context.Context, f formula.Formula, n int) ([]string, error) {
	return s.run(ctx, metrics.KindCareer, func(season, identity []types.Row) ([]string, error) {
		lines, players, err := rankCareer(s.fields, season, identity, f, n)
		if err == nil {
			metrics.UpdatePlayersAggregated(players)
		}
		return lines, err
	}, logger.Int("limit", n))
}

// run loads both tables once and hands them to rank.
func (s *Service) run(
	ctx context.Context,
	kind string,
	rank func(season, identity []types.Row) ([]string, error),
	fields ...logger.Field,
) ([]string, error) {
	start := time.Now()
	log := s.logger.With(append(fields,
		logger.String("query_id", uuid.NewString()),
		logger.String("kind", kind),
	)...)

	lines, err := s.query(ctx, log, rank)

	metrics.RecordQueryLatency(kind, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordQuery(kind, metrics.StatusError)
		metrics.RecordErrorByKind("service", errorKind(err))
		log.Error(ctx, "query failed", logger.Error(err))
		return nil, err
	}

	metrics.RecordQuery(kind, metrics.StatusOK)
	metrics.UpdateRankedEntries(kind, len(lines))
	log.Info(ctx, "query finished",
		logger.Int("entries", len(lines)),
		logger.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
	)
	return lines, nil
}

func (s *Service) query(
	ctx context.Context,
	log logger.Logger,
	rank func(season, identity []types.Row) ([]string, error),
) ([]string, error) {
	season, err := s.source.Load(ctx, s.battingFile)
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "season table loaded", logger.String("path", s.battingFile), logger.Int("rows", len(season)))

	identity, err := s.source.Load(ctx, s.masterFile)
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "identity table loaded", logger.String("path", s.masterFile), logger.Int("rows", len(identity)))

	return rank(season, identity)
}

// RankYear filters season to year, ranks the remaining rows by f and
// resolves the top n to display strings.
func RankYear(fields types.Fields, season, identity []types.Row, f formula.Formula, n, year int) ([]string, error) {
	rows, err := filter.ByYear(season, year, fields.Year)
	if err != nil {
		return nil, err
	}
	return rankAndResolve(fields, rows, identity, f, n)
}

// RankCareer sums each player's counting fields over all seasons, ranks the
// career rows by f and resolves the top n to display strings.
func RankCareer(fields types.Fields, season, identity []types.Row, f formula.Formula, n int) ([]string, error) {
	lines, _, err := rankCareer(fields, season, identity, f, n)
	return lines, err
}

func rankCareer(fields types.Fields, season, identity []types.Row, f formula.Formula, n int) ([]string, int, error) {
	careers, err := aggregate.ByPlayer(season, fields.PlayerID, fields.Summable)
	if err != nil {
		return nil, 0, err
	}
	lines, err := rankAndResolve(fields, aggregate.Rows(careers), identity, f, n)
	return lines, len(careers), err
}

func rankAndResolve(fields types.Fields, rows, identity []types.Row, f formula.Formula, n int) ([]string, error) {
	entries, err := ranking.Top(fields, rows, f, n)
	if err != nil {
		return nil, err
	}
	dir, err := names.NewDirectory(fields, identity)
	if err != nil {
		return nil, err
	}
	return dir.Resolve(entries)
}

// errorKind maps an error to a metrics label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, types.ErrMissingField):
		return "missing_field"
	case errors.Is(err, types.ErrUnparseableNumber):
		return "unparseable_number"
	case errors.Is(err, names.ErrUnknownPlayer):
		return "unknown_player"
	case errors.Is(err, names.ErrAmbiguousPlayer):
		return "ambiguous_player"
	case errors.Is(err, table.ErrOpenTable),
		errors.Is(err, table.ErrReadTable),
		errors.Is(err, table.ErrEmptyTable),
		errors.Is(err, table.ErrUnsupportedQuote):
		return "table"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
