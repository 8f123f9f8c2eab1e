package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Contact intake
	ContactSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opsd_contact_submissions_total",
		Help: "Total number of accepted contact-form submissions.",
	})

	ContactRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opsd_contact_rejections_total",
		Help: "Total number of contact-form submissions rejected by validation.",
	})

	// Background effects (sheet append, emails, webhook)
	EffectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opsd_effects_total",
		Help: "Background effect outcomes, partitioned by effect name and status.",
	}, []string{"effect", "status"})

	EffectDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "opsd_effect_duration_seconds",
		Help:    "Duration of each background effect run.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"effect"})

	// Auth
	AuthVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opsd_auth_verifications_total",
		Help: "Google ID token verification attempts, partitioned by status.",
	}, []string{"status"})

	// Repository provisioning
	FilesProvisioned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opsd_repo_files_provisioned_total",
		Help: "Repository files pushed, partitioned by outcome (created/updated/failed).",
	}, []string{"outcome"})

	// Mail
	MailSendSuccess = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opsd_mail_send_success_total",
		Help: "Mails sent successfully, partitioned by SMTP host.",
	}, []string{"host"})

	MailSendFailure = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opsd_mail_send_failure_total",
		Help: "Mail send failures after retries, partitioned by SMTP host.",
	}, []string{"host"})

	// Website monitoring
	SiteCheckLoadTime = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "opsd_site_check_load_time_seconds",
		Help: "Load time of the last website health check.",
	})

	SiteCheckUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "opsd_site_check_up",
		Help: "1 when the last website health check returned 200, 0 otherwise.",
	})

	SiteChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opsd_site_checks_total",
		Help: "Website health checks, partitioned by result (healthy/degraded/error).",
	}, []string{"result"})

	// Application health
	AppUptime = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "opsd_app_uptime_seconds",
		Help: "Seconds since the application started.",
	})
)

// StartUptimeTicker updates the uptime gauge once a second until ctx is done.
func StartUptimeTicker(ctx context.Context) {
	start := time.Now()
	go func() {
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				AppUptime.Set(time.Since(start).Seconds())
			}
		}
	}()
}
