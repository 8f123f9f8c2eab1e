package maintenance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/supermega/opsd/config"
	"github.com/supermega/opsd/internal/integrations"
)

// Supervisor fires the daily and hourly maintenance batches on calendar
// time. Cron triggers fire at most once per matching interval, so a batch
// cannot double-run inside its own minute. Each batch is a gather: every
// task reports an outcome, a failing task never stops its siblings.
type Supervisor struct {
	l      *slog.Logger
	cfg    *config.Config
	sink   *integrations.OutcomeSink
	daily  []integrations.Effect
	hourly []integrations.Effect
}

func NewSupervisor(cfg *config.Config, sink *integrations.OutcomeSink, daily, hourly []integrations.Effect) *Supervisor {
	return &Supervisor{
		l:      slog.With(slog.String("component", "maintenance-supervisor")),
		cfg:    cfg,
		sink:   sink,
		daily:  daily,
		hourly: hourly,
	}
}

func (s *Supervisor) log() *slog.Logger {
	if s.l != nil {
		return s.l
	}
	return slog.With(slog.String("component", "maintenance-supervisor"))
}

func (s *Supervisor) Run(ctx context.Context) error {
	// POSIX compatible cron syntax: "* * * * *". Without support of seconds.
	c := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)))

	if _, err := c.AddFunc(s.cfg.Maintenance.DailyCron, func() {
		s.runBatch(ctx, "daily", s.daily)
	}); err != nil {
		return fmt.Errorf("add daily cron %q: %w", s.cfg.Maintenance.DailyCron, err)
	}

	if _, err := c.AddFunc(s.cfg.Maintenance.HourlyCron, func() {
		s.runBatch(ctx, "hourly", s.hourly)
	}); err != nil {
		return fmt.Errorf("add hourly cron %q: %w", s.cfg.Maintenance.HourlyCron, err)
	}

	c.Start()
	s.log().Info("maintenance schedules registered",
		slog.String("daily", s.cfg.Maintenance.DailyCron),
		slog.String("hourly", s.cfg.Maintenance.HourlyCron),
	)

	<-ctx.Done()
	<-c.Stop().Done()
	s.log().Info("maintenance supervisor stopped")
	return nil
}

func (s *Supervisor) runBatch(ctx context.Context, name string, batch []integrations.Effect) {
	if len(batch) == 0 {
		return
	}
	s.log().Info("running maintenance batch", slog.String("batch", name))
	failed := s.sink.RecordAll(integrations.Gather(ctx, batch...))
	s.log().Info("maintenance batch finished",
		slog.String("batch", name),
		slog.Int("tasks", len(batch)),
		slog.Int("failed", failed),
	)
}
