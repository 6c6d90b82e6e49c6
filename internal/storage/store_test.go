package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nightlock/internal/structures"
	"nightlock/internal/testutil"
)

func factoryConfig(driver, path string) *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{
			Driver:   driver,
			FilePath: path,
		},
	}
}

func TestNewStore_File(t *testing.T) {
	conf := factoryConfig("file", filepath.Join(t.TempDir(), "state.dat"))
	s, err := NewStore(conf, &testutil.MockLogger{})
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &FileStore{}, s)
}

func TestNewStore_Sqlite(t *testing.T) {
	conf := factoryConfig("sqlite", filepath.Join(t.TempDir(), "state.db"))
	s, err := NewStore(conf, &testutil.MockLogger{})
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &SqliteStore{}, s)
}

func TestNewStore_UnknownDriver(t *testing.T) {
	_, err := NewStore(factoryConfig("redis", "/tmp/x"), &testutil.MockLogger{})
	assert.Error(t, err)
}
