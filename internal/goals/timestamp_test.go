package goals_test

import (
	"testing"
	"time"

	"github.com/clubkit/touchline/internal/goals"
	"github.com/stretchr/testify/assert"
)

func TestParseClockLabel(t *testing.T) {
	cases := []struct {
		name  string
		label string
		want  int
		ok    bool
	}{
		{"morning", "오전 10:00:00", 10 * 3600, true},
		{"afternoon", "오후 3:05:30", 15*3600 + 5*60 + 30, true},
		{"midnight is morning twelve", "오전 12:00:01", 1, true},
		{"noon is afternoon twelve", "오후 12:00:00", 12 * 3600, true},
		{"surrounding whitespace", "  오전 9:15:00  ", 9*3600 + 15*60, true},
		{"placeholder", "goal-2", 0, false},
		{"empty", "", 0, false},
		{"missing marker", "10:00:00", 0, false},
		{"hour out of range", "오전 13:00:00", 0, false},
		{"minute out of range", "오전 10:61:00", 0, false},
		{"not a clock", "오전 kickoff", 0, false},
		{"trailing characters", "오전 10:03:00x", 0, false},
		{"signed component", "오전 10:-3:00", 0, false},
		{"overlong component", "오전 10:003:00", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := goals.ParseClockLabel(tc.label)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestClockLabel(t *testing.T) {
	cases := []struct {
		name string
		time time.Time
		want string
	}{
		{"morning", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), "오전 10:00:00"},
		{"afternoon", time.Date(2024, 3, 1, 15, 5, 30, 0, time.UTC), "오후 3:05:30"},
		{"midnight", time.Date(2024, 3, 1, 0, 0, 1, 0, time.UTC), "오전 12:00:01"},
		{"noon", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), "오후 12:00:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, goals.ClockLabel(tc.time))
		})
	}
}

func TestClockLabelRoundTripsThroughParse(t *testing.T) {
	at := time.Date(2024, 3, 1, 19, 42, 7, 0, time.UTC)
	seconds, ok := goals.ParseClockLabel(goals.ClockLabel(at))
	assert.True(t, ok)
	assert.Equal(t, 19*3600+42*60+7, seconds)
}
