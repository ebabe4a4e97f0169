// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	_, err = ParseWeekday("Mondayish")
	assert.Error(t, err)
}

func TestNextDeparture(t *testing.T) {
	// A Wednesday at noon.
	now := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		day  string
		want time.Time
	}{
		{
			name: "later this week",
			day:  "Friday",
			want: time.Date(2025, 6, 6, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "earlier weekday rolls to next week",
			day:  "Monday",
			want: time.Date(2025, 6, 9, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "same weekday rolls a full week",
			day:  "Wednesday",
			want: time.Date(2025, 6, 11, 8, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDeparture(now, tt.day, "08:30")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextDepartureBadClock(t *testing.T) {
	now := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	_, err := NextDeparture(now, "Friday", "25:99")
	assert.Error(t, err)
}

func TestFlagValidators(t *testing.T) {
	assert.NoError(t, WeekdayValidator(""))
	assert.NoError(t, WeekdayValidator("Saturday"))
	assert.Error(t, WeekdayValidator("Noday"))

	assert.NoError(t, ClockValidator(""))
	assert.NoError(t, ClockValidator("08:30"))
	assert.Error(t, ClockValidator("8:30pm"))
}
