package jobq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/supermega/opsd/internal/integrations"
)

var ErrJobQueueFull = errors.New("job queue full")

// JobQueue runs fire-and-forget effects one at a time on a background
// goroutine. Callers never wait for completion; every outcome goes through
// the sink.
type JobQueue struct {
	l    *slog.Logger
	sink *integrations.OutcomeSink
	jobs chan integrations.Effect
}

func NewJobQueue(bufferSize int, sink *integrations.OutcomeSink) *JobQueue {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &JobQueue{
		l:    slog.With("component", "job-queue"),
		sink: sink,
		jobs: make(chan integrations.Effect, bufferSize),
	}
}

func (q *JobQueue) log() *slog.Logger {
	if q.l != nil {
		return q.l
	}
	return slog.With("component", "job-queue")
}

func (q *JobQueue) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case job := <-q.jobs:
				q.log().Info("run job", slog.String("job-name", job.Name))
				start := time.Now()
				err := job.Run(ctx)
				q.sink.Record(integrations.EffectResult{
					Name:     job.Name,
					Err:      err,
					Duration: time.Since(start),
				})
				q.log().Info("fin job", slog.String("job-name", job.Name))
			}
		}
	}()
}

// Submit enqueues an effect without blocking. A full queue rejects the
// effect; the rejection itself is recorded as a failed outcome so it is
// never silently dropped.
func (q *JobQueue) Submit(name string, run func(ctx context.Context) error) error {
	job := integrations.Effect{Name: name, Run: run}
	select {
	case q.jobs <- job:
		return nil
	default:
		err := fmt.Errorf("%w: %s", ErrJobQueueFull, name)
		q.sink.Record(integrations.EffectResult{Name: name, Err: err})
		return err
	}
}
