package services

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nightlock/internal/models"
	"nightlock/internal/storage"
	"nightlock/internal/testutil"
)

func newStreakService(t *testing.T, store *testutil.MockStore) StreakServiceInterface {
	t.Helper()
	ss := NewStreakService(store, &testutil.MockLogger{})
	require.NoError(t, ss.Restore())
	return ss
}

func seedOutcomes(t *testing.T, store *testutil.MockStore, outcomes models.DayOutcomes) {
	t.Helper()
	raw, err := json.Marshal(outcomes)
	require.NoError(t, err)
	store.Data[storage.KeySleepRecords] = string(raw)
}

var today = time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC) // a Wednesday

func dayKey(offset int) string {
	return models.DateKey(today.AddDate(0, 0, offset))
}

func TestState_MissingTodayDoesNotBreakStreak(t *testing.T) {
	store := testutil.NewMockStore()
	seedOutcomes(t, store, models.DayOutcomes{
		dayKey(-1): true,
		dayKey(-2): true,
		dayKey(-3): false,
	})

	ss := newStreakService(t, store)
	assert.Equal(t, 2, ss.State(today).Current)
}

func TestState_TodayCounts(t *testing.T) {
	store := testutil.NewMockStore()
	seedOutcomes(t, store, models.DayOutcomes{
		dayKey(0):  true,
		dayKey(-1): true,
	})

	ss := newStreakService(t, store)
	assert.Equal(t, 2, ss.State(today).Current)
}

func TestState_GapBeforeTodayBreaks(t *testing.T) {
	store := testutil.NewMockStore()
	seedOutcomes(t, store, models.DayOutcomes{
		dayKey(0):  true,
		dayKey(-2): true,
	})

	ss := newStreakService(t, store)
	assert.Equal(t, 1, ss.State(today).Current)
}

func TestState_Empty(t *testing.T) {
	ss := newStreakService(t, testutil.NewMockStore())
	state := ss.State(today)
	assert.Equal(t, 0, state.Current)
	assert.Equal(t, 0, state.Best)
}

func TestState_BestIsMonotonic(t *testing.T) {
	store := testutil.NewMockStore()
	store.Data[storage.KeyBestStreak] = "5"
	seedOutcomes(t, store, models.DayOutcomes{
		dayKey(-1): true,
		dayKey(-2): true,
	})

	ss := newStreakService(t, store)
	state := ss.State(today)
	assert.Equal(t, 2, state.Current)
	assert.Equal(t, 5, state.Best, "a broken streak must not lower the best")
}

func TestState_BestGrowsAndPersists(t *testing.T) {
	store := testutil.NewMockStore()
	seedOutcomes(t, store, models.DayOutcomes{
		dayKey(0):  true,
		dayKey(-1): true,
		dayKey(-2): true,
	})

	ss := newStreakService(t, store)
	state := ss.State(today)
	assert.Equal(t, 3, state.Best)
	assert.Equal(t, "3", store.Data[storage.KeyBestStreak])
}

func TestMarkCompleted_Persists(t *testing.T) {
	store := testutil.NewMockStore()
	ss := newStreakService(t, store)

	ss.MarkCompleted(dayKey(0))

	var persisted models.DayOutcomes
	require.NoError(t, json.Unmarshal([]byte(store.Data[storage.KeySleepRecords]), &persisted))
	assert.True(t, persisted[dayKey(0)])
}

func TestToggle_FlipsOutcome(t *testing.T) {
	store := testutil.NewMockStore()
	ss := newStreakService(t, store)

	ss.Toggle(dayKey(0))
	assert.Equal(t, 1, ss.State(today).Current)

	ss.Toggle(dayKey(0))
	assert.Equal(t, 0, ss.State(today).Current)
}

func TestWeek_MondayFirst(t *testing.T) {
	store := testutil.NewMockStore()
	seedOutcomes(t, store, models.DayOutcomes{
		"2026-08-31": true, // Monday
	})

	ss := newStreakService(t, store)
	week := ss.Week(today)

	require.Len(t, week, 7)
	assert.Equal(t, []string{"M", "T", "W", "T", "F", "S", "S"}, []string{
		week[0].Label, week[1].Label, week[2].Label, week[3].Label,
		week[4].Label, week[5].Label, week[6].Label,
	})
	assert.Equal(t, "2026-08-31", week[0].Date)
	assert.True(t, week[0].Completed)
	assert.True(t, week[2].IsToday)
	assert.False(t, week[3].IsToday)
}

func TestWeek_SundayBelongsToCurrentWeek(t *testing.T) {
	sunday := time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC)
	ss := newStreakService(t, testutil.NewMockStore())

	week := ss.Week(sunday)
	require.Len(t, week, 7)
	assert.Equal(t, "2026-08-31", week[0].Date)
	assert.True(t, week[6].IsToday)
}

func TestBenefits_Caps(t *testing.T) {
	store := testutil.NewMockStore()
	ss := newStreakService(t, store)
	assert.Equal(t, models.Benefits{Focus: 12, Mood: 8, Energy: 15}, ss.Benefits(today))

	outcomes := make(models.DayOutcomes)
	for i := 0; i < 20; i++ {
		outcomes[dayKey(-i)] = true
	}
	seedOutcomes(t, store, outcomes)
	ss = newStreakService(t, store)
	assert.Equal(t, models.Benefits{Focus: 25, Mood: 40, Energy: 35}, ss.Benefits(today))
}

func TestRestore_CorruptRecordsStartEmpty(t *testing.T) {
	store := testutil.NewMockStore()
	store.Data[storage.KeySleepRecords] = "not json"
	store.Data[storage.KeyBestStreak] = "many"

	ss := newStreakService(t, store)
	state := ss.State(today)
	assert.Equal(t, 0, state.Current)
	assert.Equal(t, 0, state.Best)
}
