package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.dat")
	fs, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, fs.Set("isLockdown", "true"))

	val, ok, err := fs.Get("isLockdown")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", val)
}

func TestFileStore_AbsentKey(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "state.dat"))
	require.NoError(t, err)

	_, ok, err := fs.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.dat")

	fs, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set("unlockStep", "wait"))
	require.NoError(t, fs.Set("waitRemaining", "12"))
	require.NoError(t, fs.Close())

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	val, ok, err := reopened.Get("waitRemaining")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "12", val)
}

func TestFileStore_NoTmpFileLeftBehind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.dat")
	fs, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set("k", "v"))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.dat")
	require.NoError(t, os.WriteFile(path, []byte("not a snapshot"), 0644))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestZstdCompressor_Roundtrip(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)

	payload := []byte(`{"isLockdown":"true","unlockStep":"wait"}`)
	compressed, err := comp.Compress(payload)
	require.NoError(t, err)

	decompressed, err := comp.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, decompressed)
}
