package integrations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGather_PreservesOrder(t *testing.T) {
	results := Gather(context.Background(),
		Effect{Name: "first", Run: func(context.Context) error { return nil }},
		Effect{Name: "second", Run: func(context.Context) error { return errors.New("boom") }},
		Effect{Name: "third", Run: func(context.Context) error { return nil }},
	)

	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Name)
	assert.Equal(t, "second", results[1].Name)
	assert.Equal(t, "third", results[2].Name)

	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
	assert.True(t, results[2].OK())
}

func TestGather_FailureDoesNotCancelSiblings(t *testing.T) {
	failed := make(chan struct{})

	results := Gather(context.Background(),
		Effect{Name: "fails-fast", Run: func(context.Context) error {
			close(failed)
			return errors.New("boom")
		}},
		Effect{Name: "slow-but-fine", Run: func(ctx context.Context) error {
			// only finish after the sibling already failed
			<-failed
			return ctx.Err()
		}},
	)

	require.Len(t, results, 2)
	assert.False(t, results[0].OK())
	assert.NoError(t, results[1].Err, "sibling must still see a live context")
}

func TestGather_Empty(t *testing.T) {
	assert.Empty(t, Gather(context.Background()))
}

func TestRecordAll_CountsFailures(t *testing.T) {
	sink := NewOutcomeSink()

	failed := sink.RecordAll([]EffectResult{
		{Name: "a"},
		{Name: "b", Err: errors.New("boom")},
		{Name: "c", Err: errors.New("boom")},
	})
	assert.Equal(t, 2, failed)

	assert.Zero(t, sink.RecordAll(nil))
}
