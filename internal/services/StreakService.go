package services

import (
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"nightlock/internal/models"
	"nightlock/internal/providers"
	"nightlock/internal/storage"
)

// streakWindow bounds the backward walk when recomputing the current streak.
const streakWindow = 365

var weekLabels = []string{"M", "T", "W", "T", "F", "S", "S"}

type StreakServiceInterface interface {
	Restore() error
	MarkCompleted(date string)
	Toggle(date string)
	State(today time.Time) models.StreakState
	Week(today time.Time) []models.CalendarDay
	Benefits(today time.Time) models.Benefits
	Persist() error
}

type StreakService struct {
	mu       sync.Mutex
	logger   providers.Logger
	store    storage.Store
	outcomes models.DayOutcomes
	best     int
}

func NewStreakService(store storage.Store, logger providers.Logger) StreakServiceInterface {
	return &StreakService{
		logger:   logger,
		store:    store,
		outcomes: make(models.DayOutcomes),
	}
}

func (ss *StreakService) Restore() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if raw, ok, err := ss.store.Get(storage.KeySleepRecords); err != nil {
		return err
	} else if ok {
		var outcomes models.DayOutcomes
		if err := json.Unmarshal([]byte(raw), &outcomes); err != nil {
			ss.logger.Warnf(providers.TypeApp, "Corrupt sleep records, starting empty: %s", err)
		} else {
			ss.outcomes = outcomes
		}
	}

	if raw, ok, err := ss.store.Get(storage.KeyBestStreak); err != nil {
		return err
	} else if ok {
		best, err := strconv.Atoi(raw)
		if err != nil || best < 0 {
			ss.logger.Warnf(providers.TypeApp, "Corrupt best streak %q, resetting", raw)
		} else {
			ss.best = best
		}
	}
	return nil
}

// MarkCompleted records a successful night for the given date.
func (ss *StreakService) MarkCompleted(date string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.outcomes[date] = true
	ss.persistLocked()
}

// Toggle flips a day's outcome, backing the calendar strip edit.
func (ss *StreakService) Toggle(date string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.outcomes[date] = !ss.outcomes[date]
	ss.persistLocked()
}

// State recomputes the current streak by walking backward from today. A
// missing entry for today does not break the streak, since tonight may not
// be over yet; a missing entry on any earlier day does. Best only grows.
func (ss *StreakService) State(today time.Time) models.StreakState {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	current := 0
	for i := 0; i < streakWindow; i++ {
		date := models.DateKey(today.AddDate(0, 0, -i))
		if ss.outcomes[date] {
			current++
		} else if i > 0 {
			break
		}
	}

	if current > ss.best {
		ss.best = current
		ss.persistLocked()
	}
	return models.StreakState{Current: current, Best: ss.best}
}

func (ss *StreakService) Week(today time.Time) []models.CalendarDay {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	offset := int(today.Weekday()) - 1
	if today.Weekday() == time.Sunday {
		offset = 6
	}
	monday := today.AddDate(0, 0, -offset)

	days := make([]models.CalendarDay, 0, len(weekLabels))
	for i, label := range weekLabels {
		date := monday.AddDate(0, 0, i)
		key := models.DateKey(date)
		days = append(days, models.CalendarDay{
			Label:     label,
			Date:      key,
			IsToday:   key == models.DateKey(today),
			Completed: ss.outcomes[key],
		})
	}
	return days
}

// Benefits projects the streak into the motivational percentages shown in
// the "future self" card.
func (ss *StreakService) Benefits(today time.Time) models.Benefits {
	streak := ss.State(today).Current
	return models.Benefits{
		Focus:  min(12+streak*2, 25),
		Mood:   min(8+streak*3, 40),
		Energy: min(15+streak*2, 35),
	}
}

func (ss *StreakService) Persist() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.persistLocked()
	return nil
}

func (ss *StreakService) persistLocked() {
	raw, err := json.Marshal(ss.outcomes)
	if err != nil {
		ss.logger.Errorf(providers.TypeApp, "Cannot marshal sleep records: %s", err)
		return
	}
	if err := ss.store.Set(storage.KeySleepRecords, string(raw)); err != nil {
		ss.logger.Errorf(providers.TypeApp, "Cannot persist sleep records: %s", err)
	}
	if err := ss.store.Set(storage.KeyBestStreak, strconv.Itoa(ss.best)); err != nil {
		ss.logger.Errorf(providers.TypeApp, "Cannot persist best streak: %s", err)
	}
}
