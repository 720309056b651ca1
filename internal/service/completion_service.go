package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
)

// ErrFutureDate rejects a toggle attempted for a calendar day after today.
// It is a policy rejection, not a store failure: the record set is left
// unchanged and the UI can show an explanatory message.
var ErrFutureDate = errors.New("cannot mark a tracker for a future date")

// CompletionService enforces at-most-one completion record per (tracker,
// day) and flips that state transactionally.
type CompletionService struct {
	store repository.DataStore
	now   func() time.Time
}

func NewCompletionService(store repository.DataStore) *CompletionService {
	return &CompletionService{store: store, now: time.Now}
}

// Toggle flips the completion state of the tracker for the calendar day of
// date. It reports the resulting state: true when the toggle completed the
// day, false when it un-completed it. The change is durable once Toggle
// returns without error.
func (s *CompletionService) Toggle(ctx context.Context, trackerID uuid.UUID, date time.Time) (bool, error) {
	day := model.DayOf(date)
	if day.After(model.DayOf(s.now())) {
		return false, ErrFutureDate
	}

	exists, err := s.IsCompletedOn(ctx, trackerID, day)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.store.DeleteRecord(ctx, trackerID, day); err != nil {
			return false, fmt.Errorf("toggle off: %w", err)
		}
		return false, nil
	}
	if err := s.store.AddRecord(ctx, trackerID, day); err != nil {
		return false, fmt.Errorf("toggle on: %w", err)
	}
	return true, nil
}

// IsCompletedOn reports whether a completion record exists for the calendar
// day of date.
func (s *CompletionService) IsCompletedOn(ctx context.Context, trackerID uuid.UUID, date time.Time) (bool, error) {
	records, err := s.store.FetchRecords(ctx, trackerID)
	if err != nil {
		return false, err
	}
	for _, record := range records {
		if record.IsOn(date) {
			return true, nil
		}
	}
	return false, nil
}

// TotalCompletions counts every completed day of the tracker, for the
// running streak counter next to each tracker.
func (s *CompletionService) TotalCompletions(ctx context.Context, trackerID uuid.UUID) (int, error) {
	records, err := s.store.FetchRecords(ctx, trackerID)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
