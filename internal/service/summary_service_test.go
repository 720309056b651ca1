package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
)

func TestDailySummary(t *testing.T) {
	store, err := repository.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	completion := NewCompletionService(store)
	completion.now = func() time.Time { return thursday.Add(15 * time.Hour) }

	svc := NewSummaryService(store, completion)
	ctx := context.Background()

	run := model.NewTracker("Бегать", "#FD4C49", "🏃", model.NewSchedule(model.Tuesday, model.Thursday))
	require.NoError(t, store.AddTracker(ctx, run, "Спорт"))
	water := model.NewTracker("Пить воду", "", "", model.Schedule{})
	require.NoError(t, store.AddTracker(ctx, water, "Здоровье"))

	_, err = completion.Toggle(ctx, run.ID, thursday)
	require.NoError(t, err)
	_, err = completion.Toggle(ctx, run.ID, tuesday)
	require.NoError(t, err)

	text, err := svc.DailySummary(ctx, thursday)
	require.NoError(t, err)

	assert.Contains(t, text, "Трекеры на день")
	assert.Contains(t, text, "05.06.2025")
	assert.Contains(t, text, "<b>Здоровье</b>")
	assert.Contains(t, text, "<b>Спорт</b>")
	assert.Contains(t, text, "✅ 🏃 Бегать · 2 дня")
	assert.Contains(t, text, "⬜ 🟢 Пить воду · 0 дней")
	assert.Contains(t, text, "Вт, Чт")

	// The scheduled tracker is out of view on Wednesday.
	text, err = svc.DailySummary(ctx, wednesday)
	require.NoError(t, err)
	assert.NotContains(t, text, "Бегать")
	assert.Contains(t, text, "Пить воду")
}

func TestStatistics(t *testing.T) {
	store, err := repository.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	completion := NewCompletionService(store)
	completion.now = func() time.Time { return thursday.Add(15 * time.Hour) }
	svc := NewSummaryService(store, completion)
	ctx := context.Background()

	run := model.NewTracker("Бегать", "", "🏃", model.Schedule{})
	require.NoError(t, store.AddTracker(ctx, run, "Спорт"))
	read := model.NewTracker("Читать", "", "📖", model.Schedule{})
	require.NoError(t, store.AddTracker(ctx, read, "Досуг"))

	// Both completed on Monday, only one on Tuesday.
	for _, id := range []uuid.UUID{run.ID, read.ID} {
		_, err := completion.Toggle(ctx, id, monday)
		require.NoError(t, err)
	}
	_, err = completion.Toggle(ctx, run.ID, tuesday)
	require.NoError(t, err)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Trackers)
	assert.Equal(t, 3, stats.CompletedDays)
	assert.Equal(t, 2, stats.BestDay)
}

func TestDailySummaryEmpty(t *testing.T) {
	store, err := repository.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := NewSummaryService(store, NewCompletionService(store))

	text, err := svc.DailySummary(context.Background(), monday)
	require.NoError(t, err)
	assert.Contains(t, text, "на этот день трекеров нет")
}
