package report

import (
	"context"
	"fmt"
	"time"

	"mini-inventory/internal/model"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Source produces the current stock report.
type Source interface {
	StockReport(ctx context.Context) (model.StockReport, error)
}

// Scheduler builds the stock report on a cron schedule and logs a summary.
type Scheduler struct {
	cron     *cron.Cron
	source   Source
	schedule string
	logger   zerolog.Logger
}

// NewScheduler creates a scheduler. schedule is a standard 5-field cron expression.
func NewScheduler(source Source, schedule string, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		source:   source,
		schedule: schedule,
		logger:   logger.With().Str("component", "report-scheduler").Logger(),
	}
}

// Start registers the report job and starts the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.Run); err != nil {
		s.logger.Error().Err(err).Str("schedule", s.schedule).Msg("failed to schedule stock report")
		return fmt.Errorf("invalid report schedule %q: %w", s.schedule, err)
	}

	s.logger.Info().Str("schedule", s.schedule).Msg("starting report scheduler")
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info().Msg("stopping report scheduler")
	<-s.cron.Stop().Done()
}

// Run builds one report immediately.
func (s *Scheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	r, err := s.source.StockReport(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate stock report")
		return
	}

	s.logger.Info().
		Int("products", r.Products).
		Int("units", r.Units).
		Int("out_of_stock", r.Levels[model.StockOutOfStock]).
		Int("low_stock", r.Levels[model.StockLow]).
		Msg("stock report generated")
}
