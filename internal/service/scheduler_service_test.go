package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "morning", input: "09:00", want: "0 0 9 * * *"},
		{name: "midnight", input: "00:00", want: "0 0 0 * * *"},
		{name: "late evening", input: "23:59", want: "0 59 23 * * *"},
		{name: "no colon", input: "0900", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "not a number", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildDailySpec(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDays(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "0 дней"},
		{1, "1 день"},
		{2, "2 дня"},
		{5, "5 дней"},
		{11, "11 дней"},
		{21, "21 день"},
		{104, "104 дня"},
		{111, "111 дней"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDays(tt.count))
	}
}
