package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"habit-tracker/internal/model"
)

// NullStore is the degraded fallback used when Open fails: every write is a
// no-op and every read returns empty results, so the application keeps
// running without persistence instead of crashing.
type NullStore struct{}

var _ DataStore = (*NullStore)(nil)

func NewNullStore() *NullStore { return &NullStore{} }

func (*NullStore) FindOrCreateCategory(context.Context, string) (model.Category, error) {
	return model.Category{}, nil
}

func (*NullStore) ListCategories(context.Context) ([]model.Category, error) { return nil, nil }

func (*NullStore) DeleteCategory(context.Context, uuid.UUID) error { return nil }

func (*NullStore) AddTracker(context.Context, model.Tracker, string) error { return nil }

func (*NullStore) DeleteTracker(context.Context, uuid.UUID) error { return nil }

func (*NullStore) ListTrackers(context.Context) ([]model.Tracker, error) { return nil, nil }

func (*NullStore) AddRecord(context.Context, uuid.UUID, time.Time) error { return nil }

func (*NullStore) DeleteRecord(context.Context, uuid.UUID, time.Time) error { return nil }

func (*NullStore) FetchAllRecords(context.Context) ([]model.CompletionRecord, error) {
	return nil, nil
}

func (*NullStore) FetchRecords(context.Context, uuid.UUID) ([]model.CompletionRecord, error) {
	return nil, nil
}
