package services

import (
	"time"

	"learntrack/backend/utils"
)

// StreakWindow is how many recent activity rows the streak looks at.
const StreakWindow = 100

// CalculateStreak counts consecutive calendar days in loc, walking back from
// the day containing now, that have at least one timestamp. timestamps must be
// sorted newest first. The walk stops at the first missing day, so a streak
// without activity today is 0.
func CalculateStreak(timestamps []time.Time, now time.Time, loc *time.Location) int {
	streak := 0
	cursor := utils.StartOfDay(now, loc)

	for _, ts := range timestamps {
		day := utils.StartOfDay(ts, loc)
		switch {
		case day.Equal(cursor):
			streak++
			cursor = cursor.AddDate(0, 0, -1)
		case day.Before(cursor):
			return streak
		}
		// later than the cursor: another entry on a day already counted
	}
	return streak
}
