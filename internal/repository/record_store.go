package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"habit-tracker/internal/model"
)

// AddRecord inserts the completion record for the calendar day of date.
// The (tracker, day) pair is the primary key, so a duplicate insert fails
// instead of silently accumulating a second record.
func (s *Store) AddRecord(ctx context.Context, trackerID uuid.UUID, date time.Time) error {
	record := model.NewCompletionRecord(trackerID, date)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("%w: add record: %v", ErrPersistence, err)
	}
	return nil
}

// DeleteRecord removes the completion record for the calendar day of date.
func (s *Store) DeleteRecord(ctx context.Context, trackerID uuid.UUID, date time.Time) error {
	day := model.DayOf(date)
	err := s.db.WithContext(ctx).
		Where("tracker_id = ? AND day = ?", trackerID, day).
		Delete(&model.CompletionRecord{}).Error
	if err != nil {
		return fmt.Errorf("%w: delete record: %v", ErrPersistence, err)
	}
	return nil
}

func (s *Store) FetchAllRecords(ctx context.Context) ([]model.CompletionRecord, error) {
	var records []model.CompletionRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	return records, nil
}

func (s *Store) FetchRecords(ctx context.Context, trackerID uuid.UUID) ([]model.CompletionRecord, error) {
	var records []model.CompletionRecord
	err := s.db.WithContext(ctx).
		Where("tracker_id = ?", trackerID).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("fetch records for tracker: %w", err)
	}
	return records, nil
}
