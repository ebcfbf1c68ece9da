package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/batting/internal/adapters/table"
	app "github.com/okian/batting/internal/app"
	"github.com/okian/batting/internal/config"
	"github.com/okian/batting/internal/domain/formula"
	"github.com/okian/batting/pkg/logger"
	"github.com/okian/batting/pkg/metrics"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logging: " + err.Error() + "\n")
		}
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 2
	}

	if err := run(ctx, cfg, os.Stdout); err != nil {
		logger.Get().Error(ctx, "leaderboard query failed", logger.Error(err))
		return 1
	}
	return 0
}

// run answers the configured query and prints one line per ranked player.
func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	f, err := formula.ByName(cfg.Metric, formula.WithMinimumAtBats(cfg.MinimumAtBats))
	if err != nil {
		return err
	}

	source := table.NewFileSource(
		table.WithSeparator(cfg.SeparatorRune()),
		table.WithQuote(cfg.QuoteRune()),
		table.WithSheet(cfg.Sheet),
	)
	svc := app.New(
		app.WithSource(source),
		app.WithFields(cfg.Fields()),
		app.WithBattingFile(cfg.BattingFile),
		app.WithMasterFile(cfg.MasterFile),
		app.WithLogger(log),
	)

	var lines []string
	if cfg.Year > 0 {
		lines, err = svc.TopByYear(ctx, f, cfg.Limit, cfg.Year)
	} else {
		lines, err = svc.TopByCareer(ctx, f, cfg.Limit)
	}
	if err != nil {
		return err
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warn(ctx, "metrics textfile not written", logger.String("path", cfg.MetricsTextfile), logger.Error(err))
		}
	}
	return nil
}
