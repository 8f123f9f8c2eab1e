package cmd

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/supermega/opsd/config"
	"github.com/supermega/opsd/internal/auth"
	"github.com/supermega/opsd/internal/contact/service"
	"github.com/supermega/opsd/internal/httpsrv"
	"github.com/supermega/opsd/internal/integrations"
	"github.com/supermega/opsd/internal/integrations/gcal"
	"github.com/supermega/opsd/internal/integrations/mailer"
	"github.com/supermega/opsd/internal/integrations/sheets"
	"github.com/supermega/opsd/internal/integrations/slackhook"
	"github.com/supermega/opsd/internal/jobq"
	"github.com/supermega/opsd/internal/metrics"
)

const jobQueueBuffer = 128

func RunServeMode(cfg *config.Config) {
	verbose := strings.EqualFold(cfg.Log.Level, "trace")

	// setup context
	ctx, cancel := context.WithCancel(context.Background())
	ctx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	// background effects pipeline
	sink := integrations.NewOutcomeSink()
	queue := jobq.NewJobQueue(jobQueueBuffer, sink)
	queue.Start(ctx)

	// token verification is a hard requirement when sign-in is configured:
	// refuse to start with a verifier that cannot fetch Google's keys
	var verifier auth.Verifier
	if cfg.Google.ClientID != "" {
		v, err := auth.NewGoogleVerifier(cfg.Google.ClientID)
		if err != nil {
			//nolint:gocritic
			log.Fatal(err)
		}
		verifier = v
	} else {
		slog.Warn("google client id not configured, sign-in endpoint disabled")
	}

	svc := service.NewContactService(&service.Opts{
		Queue:      queue,
		Sheets:     sheets.NewAppender(cfg.Google),
		Mail:       mailer.NewSender(cfg),
		Notifier:   slackhook.NewNotifier(cfg.Slack.WebhookURL),
		Calendar:   gcal.NewClient(cfg.Google),
		BookingURL: cfg.Main.BookingURL,
	})

	metrics.StartUptimeTicker(ctx)

	// Use WaitGroup to wait for all goroutines to finish
	var wg sync.WaitGroup

	// HTTP server
	wg.Add(1)
	go func() {
		defer wg.Done()

		defer func() {
			if r := recover(); r != nil {
				slog.Error("http server panicked",
					slog.Any("panic", r),
					slog.String("goroutine", "http-server"),
				)
			}
		}()

		handlers := httpsrv.InitHTTPHandlers(&httpsrv.HTTPHandlersOpts{
			Cfg:      cfg,
			Service:  svc,
			Verifier: verifier,
			Verbose:  verbose,
		})
		if err := httpsrv.NewHTTPSrv(cfg.Main.ListenPort, handlers).Run(ctx); err != nil {
			slog.Error("http server failed", slog.Any("err", err))
			cancel()
		}
	}()

	// Wait for signal (context cancellation)
	<-ctx.Done()
	slog.Info("shutting down, waiting for goroutines...")

	// Wait for all goroutines to finish
	wg.Wait()
	slog.Info("all components shut down cleanly")
}
