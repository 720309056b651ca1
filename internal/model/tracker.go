package model

import (
	"time"

	"github.com/google/uuid"
)

// Tracker represents a single recurring habit. It belongs to exactly one
// category; deleting the tracker never touches the category.
type Tracker struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"not null"`
	Color      string
	Emoji      string
	Schedule   Schedule  `gorm:"type:text"`
	CategoryID uuid.UUID `gorm:"type:uuid;index"`
	Category   *Category `gorm:"foreignKey:CategoryID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTracker creates a tracker with a fresh id. The category link is
// resolved by the store when the tracker is added.
func NewTracker(name, color, emoji string, schedule Schedule) Tracker {
	return Tracker{
		ID:       uuid.New(),
		Name:     name,
		Color:    color,
		Emoji:    emoji,
		Schedule: schedule,
	}
}

// VisibleOn reports whether the tracker should appear on the given date.
// A tracker with an empty schedule acts as a daily item and is visible on
// every date; otherwise the date's weekday must be in the schedule.
func (t Tracker) VisibleOn(date time.Time) bool {
	if t.Schedule.IsEmpty() {
		return true
	}
	return t.Schedule.Contains(WeekDayFromDate(date))
}

// CategoryTitle resolves the display title, falling back for orphaned
// trackers whose category row was deleted.
func (t Tracker) CategoryTitle() string {
	if t.Category == nil || t.Category.Title == "" {
		return FallbackCategoryTitle
	}
	return t.Category.Title
}
