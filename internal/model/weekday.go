package model

import "time"

// WeekDay identifies a day of the week with a stable ordinal used for
// serialization and sorting: Monday is 1, Sunday is 7.
type WeekDay int

const (
	Monday WeekDay = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// AllWeekDays returns the seven days in ordinal order.
func AllWeekDays() []WeekDay {
	return []WeekDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// WeekDayFromDate maps a calendar date to its weekday.
func WeekDayFromDate(date time.Time) WeekDay {
	// time.Weekday counts Sunday=0..Saturday=6.
	wd := date.Weekday()
	if wd == time.Sunday {
		return Sunday
	}
	return WeekDay(wd)
}

func (d WeekDay) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d WeekDay) FullName() string {
	switch d {
	case Monday:
		return "Понедельник"
	case Tuesday:
		return "Вторник"
	case Wednesday:
		return "Среда"
	case Thursday:
		return "Четверг"
	case Friday:
		return "Пятница"
	case Saturday:
		return "Суббота"
	case Sunday:
		return "Воскресенье"
	default:
		return ""
	}
}

func (d WeekDay) ShortName() string {
	switch d {
	case Monday:
		return "Пн"
	case Tuesday:
		return "Вт"
	case Wednesday:
		return "Ср"
	case Thursday:
		return "Чт"
	case Friday:
		return "Пт"
	case Saturday:
		return "Сб"
	case Sunday:
		return "Вс"
	default:
		return ""
	}
}

// DayOf truncates a timestamp to its calendar day at midnight UTC. Every
// completion record comparison, insert and delete goes through this first,
// otherwise duplicate records for the same day accumulate silently.
func DayOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
