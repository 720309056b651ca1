package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/repository"
)

func newTestCompletionService(t *testing.T) *CompletionService {
	t.Helper()
	store, err := repository.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := NewCompletionService(store)
	svc.now = func() time.Time { return thursday.Add(15 * time.Hour) }
	return svc
}

func TestToggleFlipsCompletionState(t *testing.T) {
	svc := newTestCompletionService(t)
	ctx := context.Background()
	id := uuid.New()

	completed, err := svc.Toggle(ctx, id, wednesday)
	require.NoError(t, err)
	assert.True(t, completed)

	on, err := svc.IsCompletedOn(ctx, id, wednesday)
	require.NoError(t, err)
	assert.True(t, on)

	completed, err = svc.Toggle(ctx, id, wednesday)
	require.NoError(t, err)
	assert.False(t, completed)

	on, err = svc.IsCompletedOn(ctx, id, wednesday)
	require.NoError(t, err)
	assert.False(t, on)

	total, err := svc.TotalCompletions(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, total, "a full on/off cycle leaves no record behind")
}

func TestToggleNormalizesTimeOfDay(t *testing.T) {
	svc := newTestCompletionService(t)
	ctx := context.Background()
	id := uuid.New()

	_, err := svc.Toggle(ctx, id, wednesday.Add(8*time.Hour))
	require.NoError(t, err)

	// A different time on the same day addresses the same record.
	on, err := svc.IsCompletedOn(ctx, id, wednesday.Add(22*time.Hour))
	require.NoError(t, err)
	assert.True(t, on)

	completed, err := svc.Toggle(ctx, id, wednesday.Add(23*time.Hour))
	require.NoError(t, err)
	assert.False(t, completed)

	total, err := svc.TotalCompletions(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestToggleRejectsFutureDates(t *testing.T) {
	svc := newTestCompletionService(t)
	ctx := context.Background()
	id := uuid.New()

	_, err := svc.Toggle(ctx, id, thursday.AddDate(0, 0, 1))
	require.ErrorIs(t, err, ErrFutureDate)

	total, err := svc.TotalCompletions(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, total, "rejected toggles must not write")

	// Today and the past remain toggleable.
	completed, err := svc.Toggle(ctx, id, thursday)
	require.NoError(t, err)
	assert.True(t, completed)

	completed, err = svc.Toggle(ctx, id, monday)
	require.NoError(t, err)
	assert.True(t, completed)
}

func TestTotalCompletionsCountsDistinctDays(t *testing.T) {
	svc := newTestCompletionService(t)
	ctx := context.Background()
	id := uuid.New()
	other := uuid.New()

	for _, day := range []time.Time{monday, tuesday, wednesday} {
		_, err := svc.Toggle(ctx, id, day)
		require.NoError(t, err)
	}
	_, err := svc.Toggle(ctx, other, monday)
	require.NoError(t, err)

	total, err := svc.TotalCompletions(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	_, err = svc.Toggle(ctx, id, tuesday)
	require.NoError(t, err)

	total, err = svc.TotalCompletions(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	total, err = svc.TotalCompletions(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 1, total, "per-tracker counts stay isolated")
}
