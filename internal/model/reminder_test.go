package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSendTime(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		timeOfDay string
		want      time.Time
	}{
		{
			name:      "later today",
			timeOfDay: "12:00",
			want:      time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		},
		{
			name:      "already passed rolls to tomorrow",
			timeOfDay: "08:00",
			want:      time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
		},
		{
			name:      "exactly now rolls to tomorrow",
			timeOfDay: "09:30",
			want:      time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextSendTime(now, tt.timeOfDay)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextSendTimeInvalid(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	for _, timeOfDay := range []string{"", "morning", "25:00", "12:75"} {
		t.Run(timeOfDay, func(t *testing.T) {
			_, err := NextSendTime(now, timeOfDay)
			assert.Error(t, err)
		})
	}
}

func TestReschedule(t *testing.T) {
	r := Reminder{
		NextSendAt: time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC),
	}
	r.Reschedule()
	assert.Equal(t, time.Date(2026, 3, 15, 21, 0, 0, 0, time.UTC), r.NextSendAt)
}
