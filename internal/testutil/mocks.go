package testutil

import (
	"sync"
	"time"

	"nightlock/internal/models"
	"nightlock/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockStore implements storage.Store in memory and records writes.
type MockStore struct {
	mu       sync.Mutex
	Data     map[string]string
	SetCalls int
	SetErr   error
}

func NewMockStore() *MockStore {
	return &MockStore{Data: make(map[string]string)}
}

func (m *MockStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok, nil
}

func (m *MockStore) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = value
	m.SetCalls++
	return nil
}

func (m *MockStore) Close() error { return nil }

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu             sync.Mutex
	Activations    map[string]int
	UnlockAttempts map[string]int // key: "step:result"
	Releases       map[string]int
	LockdownActive bool
	PersistObs     int
	CacheHits      int
	CacheMisses    int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Activations:    make(map[string]int),
		UnlockAttempts: make(map[string]int),
		Releases:       make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncActivations(trigger string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Activations[trigger]++
}

func (m *MockMetrics) IncUnlockAttempts(step string, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnlockAttempts[step+":"+result]++
}

func (m *MockMetrics) IncReleases(cause string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Releases[cause]++
}

func (m *MockMetrics) SetLockdownActive(active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LockdownActive = active
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistObs++
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

// MockDisplay records exclusive-display requests.
type MockDisplay struct {
	mu     sync.Mutex
	Enters int
	Exits  int
}

func (m *MockDisplay) EnterExclusive() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Enters++
}

func (m *MockDisplay) ExitExclusive() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Exits++
}

// MockStreak implements services.StreakServiceInterface.
type MockStreak struct {
	mu        sync.Mutex
	Completed []string
	Toggled   []string
	Streak    models.StreakState
	WeekDays  []models.CalendarDay
}

func (m *MockStreak) Restore() error { return nil }

func (m *MockStreak) MarkCompleted(date string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Completed = append(m.Completed, date)
}

func (m *MockStreak) Toggle(date string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Toggled = append(m.Toggled, date)
}

func (m *MockStreak) State(_ time.Time) models.StreakState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Streak
}

func (m *MockStreak) Week(_ time.Time) []models.CalendarDay {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.WeekDays
}

func (m *MockStreak) Benefits(_ time.Time) models.Benefits {
	return models.Benefits{}
}

func (m *MockStreak) Persist() error { return nil }
