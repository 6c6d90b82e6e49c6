package models

import "time"

// DateFormat is the ISO calendar-date key used in the day-outcome log.
const DateFormat = "2006-01-02"

// DayOutcomes maps ISO dates to "completed a full lockdown-to-wake cycle
// that night". Entries are appended or overwritten, never deleted.
type DayOutcomes map[string]bool

// StreakState is derived from the outcome log; Best is persisted separately
// and only ever grows, so it survives a broken streak.
type StreakState struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// CalendarDay is one cell of the Monday-first week strip.
type CalendarDay struct {
	Label     string `json:"label"`
	Date      string `json:"date"`
	IsToday   bool   `json:"is_today"`
	Completed bool   `json:"completed"`
}

// Benefits is the streak-derived projection shown alongside the streak.
type Benefits struct {
	Focus  int `json:"focus"`
	Mood   int `json:"mood"`
	Energy int `json:"energy"`
}

func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}
