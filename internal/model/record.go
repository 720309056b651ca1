package model

import (
	"time"

	"github.com/google/uuid"
)

// CompletionRecord is the durable fact that a tracker was marked done on a
// specific calendar day. At most one record exists per (tracker, day); Day is
// always normalized with DayOf before it reaches the store.
type CompletionRecord struct {
	TrackerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day       time.Time `gorm:"primaryKey"`
	CreatedAt time.Time
}

// NewCompletionRecord builds a record for the tracker on the calendar day of
// the given timestamp.
func NewCompletionRecord(trackerID uuid.UUID, date time.Time) CompletionRecord {
	return CompletionRecord{TrackerID: trackerID, Day: DayOf(date)}
}

// IsOn reports whether the record falls on the calendar day of date.
func (r CompletionRecord) IsOn(date time.Time) bool {
	return r.Day.Equal(DayOf(date))
}
