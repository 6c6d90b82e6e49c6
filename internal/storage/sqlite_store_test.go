package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSqliteStore(t *testing.T) (*SqliteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := NewSqliteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSqliteStore_SetGet(t *testing.T) {
	s, _ := newTestSqliteStore(t)

	require.NoError(t, s.Set("bedtime", "22:00"))

	val, ok, err := s.Get("bedtime")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "22:00", val)
}

func TestSqliteStore_Overwrite(t *testing.T) {
	s, _ := newTestSqliteStore(t)

	require.NoError(t, s.Set("waitRemaining", "30"))
	require.NoError(t, s.Set("waitRemaining", "29"))

	val, _, err := s.Get("waitRemaining")
	require.NoError(t, err)
	assert.Equal(t, "29", val)
}

func TestSqliteStore_AbsentKey(t *testing.T) {
	s, _ := newTestSqliteStore(t)

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSqliteStore_SurvivesReopen(t *testing.T) {
	s, path := newTestSqliteStore(t)
	require.NoError(t, s.Set("isLockdown", "true"))
	require.NoError(t, s.Close())

	reopened, err := NewSqliteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	val, ok, err := reopened.Get("isLockdown")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", val)
}
