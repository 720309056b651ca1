package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Schedule is an immutable set of weekdays a tracker is active on. The empty
// schedule is a meaningful state: such trackers are visible on every date.
//
// The zero value is the empty schedule.
type Schedule struct {
	bits uint8 // bit d-1 set when weekday with ordinal d is selected
}

// NewSchedule builds a schedule from the given days; invalid values are ignored.
func NewSchedule(days ...WeekDay) Schedule {
	var s Schedule
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

func (s Schedule) Contains(d WeekDay) bool {
	return d.Valid() && s.bits&(1<<(d-1)) != 0
}

func (s Schedule) IsEmpty() bool {
	return s.bits == 0
}

func (s Schedule) Len() int {
	n := 0
	for _, d := range AllWeekDays() {
		if s.Contains(d) {
			n++
		}
	}
	return n
}

// With returns a copy of the schedule with the day added.
func (s Schedule) With(d WeekDay) Schedule {
	if !d.Valid() {
		return s
	}
	return Schedule{bits: s.bits | 1<<(d-1)}
}

// Toggle returns a copy with the day flipped in or out.
func (s Schedule) Toggle(d WeekDay) Schedule {
	if !d.Valid() {
		return s
	}
	return Schedule{bits: s.bits ^ 1<<(d-1)}
}

// Days lists the selected weekdays in ordinal order.
func (s Schedule) Days() []WeekDay {
	days := make([]WeekDay, 0, 7)
	for _, d := range AllWeekDays() {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// DisplayText renders the schedule the way the tracker list shows it:
// "Каждый день" for all seven days, short names otherwise.
func (s Schedule) DisplayText() string {
	if s.IsEmpty() {
		return ""
	}
	if s.Len() == 7 {
		return "Каждый день"
	}
	names := make([]string, 0, 7)
	for _, d := range s.Days() {
		names = append(names, d.ShortName())
	}
	return strings.Join(names, ", ")
}

// Value serializes the schedule as a JSON array of weekday ordinals, sorted
// ascending. The encoding is the persisted on-disk format and must stay
// stable across versions.
func (s Schedule) Value() (driver.Value, error) {
	ordinals := make([]int, 0, 7)
	for _, d := range s.Days() {
		ordinals = append(ordinals, int(d))
	}
	data, err := json.Marshal(ordinals)
	if err != nil {
		return nil, fmt.Errorf("encode schedule: %w", err)
	}
	return string(data), nil
}

// Scan decodes the persisted JSON ordinal list back into a schedule.
func (s *Schedule) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*s = Schedule{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("decode schedule: unsupported type %T", value)
	}
	if len(data) == 0 {
		*s = Schedule{}
		return nil
	}
	var ordinals []int
	if err := json.Unmarshal(data, &ordinals); err != nil {
		return fmt.Errorf("decode schedule: %w", err)
	}
	decoded := Schedule{}
	for _, o := range ordinals {
		decoded = decoded.With(WeekDay(o))
	}
	*s = decoded
	return nil
}
