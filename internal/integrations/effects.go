package integrations

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/supermega/opsd/internal/metrics"
)

// Effect is a single integration action: one call against an external
// collaborator (sheet append, mail send, webhook post, ...).
type Effect struct {
	Name string
	Run  func(ctx context.Context) error
}

// EffectResult pairs an effect name with its outcome. Produced per attempt,
// consumed by the outcome sink; never persisted.
type EffectResult struct {
	Name     string
	Err      error
	Duration time.Duration
}

func (r EffectResult) OK() bool {
	return r.Err == nil
}

// Gather runs all effects in parallel and waits for every one of them.
// A failing effect never cancels its siblings; each outcome is returned
// in the same order the effects were given.
func Gather(ctx context.Context, effects ...Effect) []EffectResult {
	results := make([]EffectResult, len(effects))

	var wg sync.WaitGroup
	for i, e := range effects {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = runOne(ctx, e)
		}()
	}
	wg.Wait()

	return results
}

func runOne(ctx context.Context, e Effect) EffectResult {
	start := time.Now()
	err := e.Run(ctx)
	return EffectResult{
		Name:     e.Name,
		Err:      err,
		Duration: time.Since(start),
	}
}

// OutcomeSink makes fire-and-forget outcomes observable: every result is
// logged and counted, whether or not anyone was waiting for it.
type OutcomeSink struct {
	l *slog.Logger
}

func NewOutcomeSink() *OutcomeSink {
	return &OutcomeSink{
		l: slog.With("component", "outcome-sink"),
	}
}

func (s *OutcomeSink) log() *slog.Logger {
	if s.l != nil {
		return s.l
	}
	return slog.With("component", "outcome-sink")
}

func (s *OutcomeSink) Record(res EffectResult) {
	status := "success"
	if !res.OK() {
		status = "failure"
	}
	metrics.EffectsTotal.WithLabelValues(res.Name, status).Inc()
	metrics.EffectDuration.WithLabelValues(res.Name).Observe(res.Duration.Seconds())

	if res.OK() {
		s.log().Info("effect completed",
			slog.String("effect", res.Name),
			slog.Duration("duration", res.Duration),
		)
	} else {
		s.log().Error("effect failed",
			slog.String("effect", res.Name),
			slog.Duration("duration", res.Duration),
			slog.Any("err", res.Err),
		)
	}
}

// RecordAll records a batch of results and returns how many failed.
func (s *OutcomeSink) RecordAll(results []EffectResult) int {
	failed := 0
	for _, res := range results {
		s.Record(res)
		if !res.OK() {
			failed++
		}
	}
	return failed
}
