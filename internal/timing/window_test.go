package timing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowTimes(t *testing.T) {
	loc := time.FixedZone("ALMT", 5*60*60)
	date := time.Date(2024, 1, 1, 13, 45, 0, 0, loc)

	for _, slot := range Slots {
		t.Run(slot, func(t *testing.T) {
			w, err := WindowTimes(date, slot)
			require.NoError(t, err)
			assert.Equal(t, w.StartTime.Add(-60*time.Minute), w.WindowStart)
			assert.Equal(t, w.StartTime.Add(-30*time.Minute), w.WindowEnd)
			assert.Equal(t, 1, w.StartTime.Day())
			assert.Equal(t, loc, w.StartTime.Location())
		})
	}

	w, err := WindowTimes(date, "08:00-09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 8, 0, 0, 0, loc), w.StartTime)
	assert.Equal(t, time.Date(2024, 1, 1, 7, 0, 0, 0, loc), w.WindowStart)
	assert.Equal(t, time.Date(2024, 1, 1, 7, 30, 0, 0, loc), w.WindowEnd)
}

func TestUnknownSlot(t *testing.T) {
	_, err := WindowTimes(time.Now(), "09:00-10:00")
	assert.True(t, errors.Is(err, ErrUnknownSlot))

	_, err = CanSubmitAt(time.Now(), "", time.Now())
	assert.True(t, errors.Is(err, ErrUnknownSlot))

	_, err = IsLateAt(time.Now(), "lol", time.Now())
	assert.True(t, errors.Is(err, ErrUnknownSlot))
}

func TestSubmissionWindow(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	slot := "08:00-09:30"

	tests := []struct {
		name      string
		now       time.Time
		canSubmit bool
		late      bool
	}{
		{name: "earlier than 60 minutes", now: time.Date(2024, 1, 1, 6, 59, 0, 0, time.UTC)},
		{name: "window opens", now: time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC), canSubmit: true},
		{name: "inside window", now: time.Date(2024, 1, 1, 7, 15, 0, 0, time.UTC), canSubmit: true},
		{name: "window closes", now: time.Date(2024, 1, 1, 7, 30, 0, 0, time.UTC), canSubmit: true},
		{name: "after cutoff", now: time.Date(2024, 1, 1, 7, 31, 0, 0, time.UTC), canSubmit: true, late: true},
		{name: "days later", now: time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC), canSubmit: true, late: true},
		{name: "previous day", now: time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canSubmit, err := CanSubmitAt(date, slot, tt.now)
			require.NoError(t, err)
			late, err := IsLateAt(date, slot, tt.now)
			require.NoError(t, err)

			assert.Equal(t, tt.canSubmit, canSubmit)
			assert.Equal(t, tt.late, late)
		})
	}
}
