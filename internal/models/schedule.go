package models

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock hour/minute pair. Triggers compare it against
// the current tick by (hour, minute) equality, not by elapsed-duration
// arithmetic, so a trigger fires on at most one tick per minute per day.
// A system clock jump across the target minute can therefore miss or
// double-fire a trigger; that is an accepted limitation.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var t TimeOfDay
	if _, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute); err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return t, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) Matches(now time.Time) bool {
	return now.Hour() == t.Hour && now.Minute() == t.Minute
}

// Schedule holds the configured bedtime and wake time. It is read by the
// state machine on every tick and mutated only through settings updates.
type Schedule struct {
	Bedtime  TimeOfDay `json:"bedtime"`
	WakeTime TimeOfDay `json:"wake_time"`
	AutoLock bool      `json:"auto_lock"`
}

func (s Schedule) IsBedtime(now time.Time) bool {
	return s.Bedtime.Matches(now)
}

func (s Schedule) IsWakeTime(now time.Time) bool {
	return s.WakeTime.Matches(now)
}

// UntilBedtime returns the whole hours and minutes until the next
// occurrence of bedtime at or after now. If bedtime-of-day has already
// passed today, the target is tomorrow.
func (s Schedule) UntilBedtime(now time.Time) (hours int, minutes int) {
	target := time.Date(now.Year(), now.Month(), now.Day(), s.Bedtime.Hour, s.Bedtime.Minute, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	diff := target.Sub(now)
	hours = int(diff.Hours())
	minutes = int(diff.Minutes()) % 60
	return hours, minutes
}
