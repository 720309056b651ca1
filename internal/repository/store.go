package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"habit-tracker/internal/model"
)

var (
	// ErrStoreUnavailable means the backing SQLite file or schema could not
	// be opened. Callers should fall back to NewNullStore and run degraded.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrPersistence marks a runtime write failure (insert/delete/commit).
	// The failed operation leaves no partial state behind.
	ErrPersistence = errors.New("persistence error")
)

// DataStore is the durable storage surface for trackers, categories and
// completion records. All mutations serialize through a single database
// connection; callers wait for each operation rather than overlapping them.
type DataStore interface {
	FindOrCreateCategory(ctx context.Context, title string) (model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	AddTracker(ctx context.Context, tracker model.Tracker, categoryTitle string) error
	DeleteTracker(ctx context.Context, id uuid.UUID) error
	ListTrackers(ctx context.Context) ([]model.Tracker, error)

	AddRecord(ctx context.Context, trackerID uuid.UUID, date time.Time) error
	DeleteRecord(ctx context.Context, trackerID uuid.UUID, date time.Time) error
	FetchAllRecords(ctx context.Context) ([]model.CompletionRecord, error)
	FetchRecords(ctx context.Context, trackerID uuid.UUID) ([]model.CompletionRecord, error)
}
