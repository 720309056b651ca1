package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

// FindOrCreateCategory looks a category up by exact title and inserts it if
// absent. Lookup and insert run in one transaction so two back-to-back calls
// with the same title can never create two categories.
func (s *Store) FindOrCreateCategory(ctx context.Context, title string) (model.Category, error) {
	if title == "" {
		return model.Category{}, fmt.Errorf("%w: category title is empty", ErrPersistence)
	}

	var category model.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("title = ?", title).First(&category).Error
		switch {
		case err == nil:
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			category = model.NewCategory(title)
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("create category: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("find category: %w", err)
		}
	})
	if err != nil {
		return model.Category{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return category, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).Order("title ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// DeleteCategory removes only the category row. Its trackers survive as
// orphans and resolve to the fallback category title.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("%w: delete category: %v", ErrPersistence, err)
	}
	return nil
}
