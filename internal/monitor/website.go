package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/grafana/dskit/services"
	"github.com/supermega/opsd/internal/metrics"
)

// CheckResult classifies one website probe.
type CheckResult string

const (
	ResultHealthy  CheckResult = "healthy"
	ResultDegraded CheckResult = "degraded"
	ResultError    CheckResult = "error"
)

// WebsiteMonitor probes the site URL on a fixed interval. Failures are
// logged and counted; they never stop the loop.
type WebsiteMonitor struct {
	*services.BasicService
	l           *slog.Logger
	restyClient *resty.Client
	siteURL     string
	interval    time.Duration
}

func NewWebsiteMonitor(siteURL string, interval time.Duration) *WebsiteMonitor {
	client := resty.New()
	client.SetRetryCount(0)
	client.SetTimeout(30 * time.Second)

	m := &WebsiteMonitor{
		l:           slog.With(slog.String("component", "website-monitor")),
		restyClient: client,
		siteURL:     siteURL,
		interval:    interval,
	}
	m.BasicService = services.NewBasicService(nil, m.run, nil).
		WithName("website-monitor")
	return m
}

func (m *WebsiteMonitor) log() *slog.Logger {
	if m.l != nil {
		return m.l
	}
	return slog.With(slog.String("component", "website-monitor"))
}

func (m *WebsiteMonitor) run(ctx context.Context) error {
	m.log().Info("starting website monitoring",
		slog.String("url", m.siteURL),
		slog.Duration("interval", m.interval),
	)

	t := time.NewTicker(m.interval)
	defer t.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			m.log().Info("website monitoring stopped")
			return nil
		case <-t.C:
			m.Check(ctx)
		}
	}
}

// Check performs one probe and returns its classification and load time.
func (m *WebsiteMonitor) Check(ctx context.Context) (CheckResult, time.Duration) {
	start := time.Now()
	resp, err := m.restyClient.R().SetContext(ctx).Get(m.siteURL)
	loadTime := time.Since(start)

	var result CheckResult
	switch {
	case err != nil:
		result = ResultError
		m.log().Error("website check failed", slog.Any("err", err))
	case resp.StatusCode() == 200:
		result = ResultHealthy
		m.log().Info("website healthy", slog.Duration("load-time", loadTime))
	default:
		result = ResultDegraded
		m.log().Warn("website issue", slog.Int("status", resp.StatusCode()))
	}

	metrics.SiteChecksTotal.WithLabelValues(string(result)).Inc()
	metrics.SiteCheckLoadTime.Set(loadTime.Seconds())
	if result == ResultHealthy {
		metrics.SiteCheckUp.Set(1)
	} else {
		metrics.SiteCheckUp.Set(0)
	}
	return result, loadTime
}
