package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

// AddTracker resolves or creates the category and inserts the tracker in one
// transaction. The tracker does not exist unless the commit succeeds.
func (s *Store) AddTracker(ctx context.Context, tracker model.Tracker, categoryTitle string) error {
	if tracker.Name == "" {
		return fmt.Errorf("%w: tracker name is empty", ErrPersistence)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.Category
		err := tx.Where("title = ?", categoryTitle).First(&category).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			category = model.NewCategory(categoryTitle)
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("create category: %w", err)
			}
		case err != nil:
			return fmt.Errorf("find category: %w", err)
		}

		tracker.CategoryID = category.ID
		tracker.Category = nil
		if err := tx.Create(&tracker).Error; err != nil {
			return fmt.Errorf("create tracker: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// DeleteTracker removes the tracker row together with all of its completion
// records. The category is left untouched.
func (s *Store) DeleteTracker(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.CompletionRecord{}, "tracker_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete records: %w", err)
		}
		if err := tx.Delete(&model.Tracker{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete tracker: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// ListTrackers returns every tracker with its category preloaded, ordered by
// name. The order is a contract: the query engine groups rows into sections
// by category title and derives deterministic row indices from it.
func (s *Store) ListTrackers(ctx context.Context) ([]model.Tracker, error) {
	var trackers []model.Tracker
	err := s.db.WithContext(ctx).
		Preload("Category").
		Order("name ASC").
		Find(&trackers).Error
	if err != nil {
		return nil, fmt.Errorf("list trackers: %w", err)
	}
	return trackers, nil
}
