package model

import (
	"time"

	"github.com/google/uuid"
)

// FallbackCategoryTitle labels trackers whose category row no longer exists.
const FallbackCategoryTitle = "Без категории"

// Category groups trackers by area (work, health, study, etc.). Title is the
// natural key: the store never holds two categories with the same title.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a category with a fresh id.
func NewCategory(title string) Category {
	return Category{ID: uuid.New(), Title: title}
}
