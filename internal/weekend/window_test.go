package weekend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC)
}

func TestNextProperties(t *testing.T) {
	ref := utc(2026, time.October, 1, 0, 0, 0)
	// walk two weeks in 37 minute steps so every weekday/hour combination is hit
	for i := 0; i < 2*7*24*60/37; i++ {
		now := ref.Add(time.Duration(i) * 37 * time.Minute)
		w := Next(now)

		require.False(t, w.Start.Before(now), "start before ref for %s", now)
		require.Equal(t, time.Friday, w.Start.Weekday(), "ref %s", now)
		require.Equal(t, 18, w.Start.Hour())
		require.Zero(t, w.Start.Minute())
		require.Zero(t, w.Start.Second())
		require.Zero(t, w.Start.Nanosecond())
		require.Equal(t, 2*24*time.Hour+5*time.Hour+59*time.Minute, w.End.Sub(w.Start))
		require.Less(t, w.Start.Sub(now), 7*24*time.Hour+time.Nanosecond)
	}
}

func TestNextFridayBoundary(t *testing.T) {
	friday := utc(2026, time.October, 16, 18, 0, 0)
	nextFriday := utc(2026, time.October, 23, 18, 0, 0)

	tests := map[string]struct {
		ref  time.Time
		want time.Time
	}{
		"FridayOneSecondBefore": {ref: utc(2026, time.October, 16, 17, 59, 59), want: friday},
		"FridayExactlySix":      {ref: friday, want: nextFriday},
		"FridayOneSecondAfter":  {ref: utc(2026, time.October, 16, 18, 0, 1), want: nextFriday},
		"FridayOneNanoAfter":    {ref: friday.Add(time.Nanosecond), want: nextFriday},
		"Thursday":              {ref: utc(2026, time.October, 15, 9, 30, 0), want: friday},
		"Saturday":              {ref: utc(2026, time.October, 17, 12, 0, 0), want: nextFriday},
		"SundayNight":           {ref: utc(2026, time.October, 18, 23, 59, 0), want: nextFriday},
		"Monday":                {ref: utc(2026, time.October, 19, 10, 0, 0), want: nextFriday},
		"AcrossYear":            {ref: utc(2026, time.December, 31, 8, 0, 0), want: utc(2027, time.January, 1, 18, 0, 0)},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.ref).Start)
		})
	}
}

func TestNextEndsSundayAt2359(t *testing.T) {
	w := Next(utc(2026, time.October, 19, 10, 0, 0))

	assert.Equal(t, utc(2026, time.October, 25, 23, 59, 0), w.End)
	assert.Equal(t, time.Sunday, w.End.Weekday())
}

func TestNextConvertsToUTC(t *testing.T) {
	tz := time.FixedZone("UTC+3", 3*60*60)
	// 20:00 local on Friday is 17:00 UTC, so the same Friday still counts
	ref := time.Date(2026, time.October, 16, 20, 0, 0, 0, tz)

	assert.Equal(t, utc(2026, time.October, 16, 18, 0, 0), Next(ref).Start)
}

func TestIsWithin(t *testing.T) {
	ref := utc(2026, time.October, 19, 10, 0, 0)

	assert.True(t, IsWithin(utc(2026, time.October, 23, 18, 0, 0), ref))
	assert.True(t, IsWithin(utc(2026, time.October, 24, 14, 0, 0), ref))
	assert.True(t, IsWithin(utc(2026, time.October, 25, 23, 58, 59), ref))
	assert.False(t, IsWithin(utc(2026, time.October, 25, 23, 59, 0), ref))
	assert.False(t, IsWithin(utc(2026, time.October, 23, 17, 59, 59), ref))
	assert.False(t, IsWithin(utc(2026, time.October, 26, 10, 0, 0), ref))
}

func TestDescribe(t *testing.T) {
	t.Run("Midweek", func(t *testing.T) {
		info := Describe(utc(2026, time.October, 21, 12, 0, 0))

		assert.Equal(t, utc(2026, time.October, 23, 18, 0, 0), info.Start)
		assert.Equal(t, utc(2026, time.October, 25, 23, 59, 0), info.End)
		assert.InDelta(t, 53.9833, info.DurationHours, 0.0001)
		assert.InDelta(t, 2.2493, info.DurationDays, 0.0001)
		assert.False(t, info.IsCurrentlyWeekend)
	})

	t.Run("SaturdayAfternoon", func(t *testing.T) {
		info := Describe(utc(2026, time.October, 24, 15, 0, 0))

		assert.True(t, info.IsCurrentlyWeekend)
		assert.Equal(t, utc(2026, time.October, 30, 18, 0, 0), info.Start)
	})

	t.Run("FridayAtSix", func(t *testing.T) {
		info := Describe(utc(2026, time.October, 23, 18, 0, 0))

		assert.True(t, info.IsCurrentlyWeekend)
	})
}
