package maintenance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supermega/opsd/config"
	"github.com/supermega/opsd/internal/integrations"
)

func posixParser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
}

func TestDefaultCronSpecsParse(t *testing.T) {
	p := posixParser()

	daily, err := p.Parse("0 9 * * *")
	require.NoError(t, err)
	hourly, err := p.Parse("0 * * * *")
	require.NoError(t, err)

	// from 08:30, daily fires at 09:00 once and not again until next day
	base := time.Date(2026, 8, 29, 8, 30, 0, 0, time.UTC)
	first := daily.Next(base)
	assert.Equal(t, time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC), first)
	second := daily.Next(first)
	assert.Equal(t, time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC), second)

	next := hourly.Next(base)
	assert.Equal(t, time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC), next)
	assert.Equal(t, time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC), hourly.Next(next))
}

func TestSupervisor_RejectsInvalidSpec(t *testing.T) {
	cfg := &config.Config{
		Maintenance: config.MaintenanceConfig{
			DailyCron:  "not a cron spec",
			HourlyCron: "0 * * * *",
		},
	}
	s := NewSupervisor(cfg, integrations.NewOutcomeSink(), nil, nil)

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily")
}

func TestSupervisor_StopsOnContextCancel(t *testing.T) {
	cfg := &config.Config{
		Maintenance: config.MaintenanceConfig{
			DailyCron:  "0 9 * * *",
			HourlyCron: "0 * * * *",
		},
	}
	s := NewSupervisor(cfg, integrations.NewOutcomeSink(), DailyTasks(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop")
	}
}

func TestRunBatch_RecordsEveryOutcome(t *testing.T) {
	cfg := &config.Config{}
	s := NewSupervisor(cfg, integrations.NewOutcomeSink(), nil, nil)

	ran := 0
	batch := []integrations.Effect{
		{Name: "ok", Run: func(context.Context) error { ran++; return nil }},
		{Name: "bad", Run: func(context.Context) error { ran++; return errors.New("boom") }},
		{Name: "also-ok", Run: func(context.Context) error { ran++; return nil }},
	}
	s.runBatch(context.Background(), "test", batch)
	assert.Equal(t, 3, ran, "a failing task must not stop its siblings")
}

func TestDailyTasks_AllSucceed(t *testing.T) {
	tasks := DailyTasks()
	require.Len(t, tasks, 5)

	results := integrations.Gather(context.Background(), tasks...)
	for _, res := range results {
		assert.True(t, res.OK(), "task %s failed: %v", res.Name, res.Err)
	}
}

type checkOnlyMail struct{ err error }

func (m checkOnlyMail) Send(_, _, _, _ string) error { return nil }
func (m checkOnlyMail) Check() error                 { return m.err }

func TestHourlyTasks_Probes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tasks := HourlyTasks(srv.URL, checkOnlyMail{})
	require.Len(t, tasks, 2)

	results := integrations.Gather(context.Background(), tasks...)
	assert.Equal(t, "site-probe", results[0].Name)
	assert.True(t, results[0].OK())
	assert.Equal(t, "smtp-probe", results[1].Name)
	assert.True(t, results[1].OK())
}

func TestHourlyTasks_ReportFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tasks := HourlyTasks(srv.URL, checkOnlyMail{err: errors.New("dial smtp: refused")})
	results := integrations.Gather(context.Background(), tasks...)
	assert.False(t, results[0].OK())
	assert.False(t, results[1].OK())
}
