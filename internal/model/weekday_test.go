package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekDayFromDate(t *testing.T) {
	// 2025-06-02 is a Monday; the week runs through Sunday the 8th.
	tests := []struct {
		day  int
		want WeekDay
	}{
		{2, Monday},
		{3, Tuesday},
		{4, Wednesday},
		{5, Thursday},
		{6, Friday},
		{7, Saturday},
		{8, Sunday},
	}

	for _, tt := range tests {
		date := time.Date(2025, time.June, tt.day, 12, 30, 0, 0, time.UTC)
		assert.Equal(t, tt.want, WeekDayFromDate(date), "2025-06-%02d", tt.day)
	}
}

func TestWeekDayOrdinalsAreStable(t *testing.T) {
	assert.Equal(t, 1, int(Monday))
	assert.Equal(t, 7, int(Sunday))

	for i, d := range AllWeekDays() {
		assert.Equal(t, i+1, int(d))
		assert.True(t, d.Valid())
	}
	assert.False(t, WeekDay(0).Valid())
	assert.False(t, WeekDay(8).Valid())
}

func TestWeekDayNames(t *testing.T) {
	assert.Equal(t, "Понедельник", Monday.FullName())
	assert.Equal(t, "Вс", Sunday.ShortName())
	assert.Equal(t, "", WeekDay(0).FullName())
}

func TestDayOf(t *testing.T) {
	late := time.Date(2025, time.June, 5, 23, 59, 59, 0, time.UTC)
	early := time.Date(2025, time.June, 5, 0, 0, 1, 0, time.UTC)

	want := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	assert.True(t, DayOf(late).Equal(want))
	assert.True(t, DayOf(early).Equal(want))
	assert.True(t, DayOf(late).Equal(DayOf(early)))

	// Already-normalized days pass through unchanged.
	require.True(t, DayOf(want).Equal(want))
}
