package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestFindOrCreateCategoryIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.FindOrCreateCategory(ctx, "Дом")
	require.NoError(t, err)
	second, err := store.FindOrCreateCategory(ctx, "Дом")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Дом", categories[0].Title)
}

func TestFindOrCreateCategoryRejectsEmptyTitle(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FindOrCreateCategory(context.Background(), "")
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestAddTrackerCreatesCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tracker := model.NewTracker("Бегать", "#FD4C49", "🏃", model.NewSchedule(model.Monday))
	require.NoError(t, store.AddTracker(ctx, tracker, "Спорт"))

	trackers, err := store.ListTrackers(ctx)
	require.NoError(t, err)
	require.Len(t, trackers, 1)
	assert.Equal(t, tracker.ID, trackers[0].ID)
	require.NotNil(t, trackers[0].Category)
	assert.Equal(t, "Спорт", trackers[0].Category.Title)
	assert.Equal(t, model.NewSchedule(model.Monday), trackers[0].Schedule)
}

func TestAddTrackerReusesCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddTracker(ctx, model.NewTracker("Бегать", "", "🏃", model.Schedule{}), "Спорт"))
	require.NoError(t, store.AddTracker(ctx, model.NewTracker("Плавать", "", "🏊", model.Schedule{}), "Спорт"))

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestAddTrackerRejectsEmptyName(t *testing.T) {
	store := newTestStore(t)

	err := store.AddTracker(context.Background(), model.NewTracker("", "", "", model.Schedule{}), "Спорт")
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestDeleteTrackerCascadesToRecords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tracker := model.NewTracker("Читать", "", "📖", model.Schedule{})
	require.NoError(t, store.AddTracker(ctx, tracker, "Учёба"))
	day := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.AddRecord(ctx, tracker.ID, day))

	require.NoError(t, store.DeleteTracker(ctx, tracker.ID))

	trackers, err := store.ListTrackers(ctx)
	require.NoError(t, err)
	assert.Empty(t, trackers)

	records, err := store.FetchAllRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	// The category survives the tracker.
	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestDeleteCategoryOrphansTrackers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tracker := model.NewTracker("Читать", "", "📖", model.Schedule{})
	require.NoError(t, store.AddTracker(ctx, tracker, "Учёба"))

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.NoError(t, store.DeleteCategory(ctx, categories[0].ID))

	trackers, err := store.ListTrackers(ctx)
	require.NoError(t, err)
	require.Len(t, trackers, 1)
	assert.Nil(t, trackers[0].Category)
	assert.Equal(t, model.FallbackCategoryTitle, trackers[0].CategoryTitle())
}

func TestRecordsNormalizeToCalendarDay(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trackerID := uuid.New()

	morning := time.Date(2025, time.June, 5, 8, 15, 0, 0, time.UTC)
	evening := time.Date(2025, time.June, 5, 22, 40, 0, 0, time.UTC)

	require.NoError(t, store.AddRecord(ctx, trackerID, morning))

	// Same calendar day: the unique (tracker, day) key rejects a duplicate.
	assert.ErrorIs(t, store.AddRecord(ctx, trackerID, evening), ErrPersistence)

	records, err := store.FetchRecords(ctx, trackerID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsOn(evening))

	// Deleting with a different time of day still hits the same record.
	require.NoError(t, store.DeleteRecord(ctx, trackerID, evening))
	records, err = store.FetchRecords(ctx, trackerID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchRecordsFiltersByTracker(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()
	day := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.AddRecord(ctx, a, day))
	require.NoError(t, store.AddRecord(ctx, b, day))
	require.NoError(t, store.AddRecord(ctx, b, day.AddDate(0, 0, 1)))

	forA, err := store.FetchRecords(ctx, a)
	require.NoError(t, err)
	assert.Len(t, forA, 1)

	forB, err := store.FetchRecords(ctx, b)
	require.NoError(t, err)
	assert.Len(t, forB, 2)

	all, err := store.FetchAllRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListTrackersOrderedByName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddTracker(ctx, model.NewTracker("Йога", "", "", model.Schedule{}), "Спорт"))
	require.NoError(t, store.AddTracker(ctx, model.NewTracker("Бегать", "", "", model.Schedule{}), "Спорт"))

	trackers, err := store.ListTrackers(ctx)
	require.NoError(t, err)
	require.Len(t, trackers, 2)
	assert.Equal(t, "Бегать", trackers[0].Name)
	assert.Equal(t, "Йога", trackers[1].Name)
}

func TestOpenReportsStoreUnavailable(t *testing.T) {
	_, err := Open("/dev/null/not-a-dir/db.sqlite")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestNullStoreIsInert(t *testing.T) {
	store := NewNullStore()
	ctx := context.Background()

	require.NoError(t, store.AddTracker(ctx, model.NewTracker("Бегать", "", "", model.Schedule{}), "Спорт"))
	require.NoError(t, store.AddRecord(ctx, uuid.New(), time.Now()))

	trackers, err := store.ListTrackers(ctx)
	require.NoError(t, err)
	assert.Empty(t, trackers)

	records, err := store.FetchAllRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}
