package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"

	"github.com/grafana/dskit/services"
	"github.com/supermega/opsd/config"
	"github.com/supermega/opsd/internal/ghrepo"
	"github.com/supermega/opsd/internal/integrations"
	"github.com/supermega/opsd/internal/integrations/gcal"
	"github.com/supermega/opsd/internal/integrations/mailer"
	"github.com/supermega/opsd/internal/integrations/sheets"
	"github.com/supermega/opsd/internal/integrations/slackhook"
	"github.com/supermega/opsd/internal/maintenance"
	"github.com/supermega/opsd/internal/metrics"
	"github.com/supermega/opsd/internal/monitor"
	"github.com/supermega/opsd/internal/provision"
)

func RunAutomateMode(cfg *config.Config) {
	// setup context
	ctx, cancel := context.WithCancel(context.Background())
	ctx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()
	defer cancel()

	slog.Info("initializing platform automation")

	sink := integrations.NewOutcomeSink()
	mail := mailer.NewSender(cfg)

	// Step 1: repository provisioning (sequential, one-shot)
	if cfg.HasGitHubConfigured() {
		client := ghrepo.NewClient(cfg.GitHub.APIURL, cfg.GitHub.Owner, cfg.GitHub.Token)
		provision.NewProvisioner(client, cfg.GitHub).Run(ctx)
	} else {
		slog.Warn("github token not provided, skipping repository setup")
	}

	// Step 2: integration setup (parallel, outcomes recorded individually)
	setupIntegrations(ctx, cfg, sink, mail)

	metrics.StartUptimeTicker(ctx)

	// Step 3: long-running loops
	var wg sync.WaitGroup

	// website health poller
	mon := monitor.NewWebsiteMonitor(cfg.Main.SiteURL, cfg.Monitor.Interval)
	if err := services.StartAndAwaitRunning(ctx, mon); err != nil {
		slog.Error("failed to start website monitor", slog.Any("err", err))
		return
	}

	// maintenance schedules
	sup := maintenance.NewSupervisor(cfg, sink,
		maintenance.DailyTasks(),
		maintenance.HourlyTasks(cfg.Main.SiteURL, mail),
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("maintenance supervisor panicked",
					slog.Any("panic", r),
					slog.String("goroutine", "maintenance"),
				)
			}
		}()
		if err := sup.Run(ctx); err != nil {
			slog.Error("maintenance supervisor failed", slog.Any("err", err))
			cancel()
		}
	}()

	// Wait for signal (context cancellation)
	<-ctx.Done()
	slog.Info("shutting down, waiting for goroutines...")

	_ = services.StopAndAwaitTerminated(context.Background(), mon)
	wg.Wait()
	slog.Info("all components shut down cleanly")
}

// setupIntegrations verifies each external collaborator in parallel. A
// failing integration is recorded and skipped, never fatal: the platform
// runs with whatever is configured.
func setupIntegrations(ctx context.Context, cfg *config.Config, sink *integrations.OutcomeSink, mail mailer.Sender) {
	slog.Info("configuring integrations")

	appender := sheets.NewAppender(cfg.Google)
	cal := gcal.NewClient(cfg.Google)
	notifier := slackhook.NewNotifier(cfg.Slack.WebhookURL)

	results := integrations.Gather(ctx,
		integrations.Effect{
			Name: "google-oauth-config",
			Run: func(_ context.Context) error {
				if cfg.Google.ClientID == "" || cfg.Google.ClientSecret == "" {
					return fmt.Errorf("google oauth client id/secret are not configured")
				}
				return nil
			},
		},
		integrations.Effect{Name: "sheets-access", Run: appender.Ping},
		integrations.Effect{Name: "calendar-access", Run: cal.Ping},
		integrations.Effect{Name: "slack-webhook", Run: notifier.Ping},
		integrations.Effect{
			Name: "smtp-access",
			Run: func(_ context.Context) error {
				return mail.Check()
			},
		},
	)
	failed := sink.RecordAll(results)

	slog.Info("integration setup finished",
		slog.Int("total", len(results)),
		slog.Int("failed", failed),
	)
}
