package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nightlock/internal/structures"
)

func TestGetLogTypeByRequestType_POST(t *testing.T) {
	assert.Equal(t, TypeEnum(TypePost), GetLogTypeByRequestType("POST"))
}

func TestGetLogTypeByRequestType_GET(t *testing.T) {
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("GET"))
}

func TestGetLogTypeByRequestType_Other(t *testing.T) {
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("PUT"))
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("DELETE"))
}

func loggerConfig(dir string) *structures.Config {
	return &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "debug",
			Mode:  0644,
			Dir:   dir,
		},
	}
}

func TestNewLogProvider_WritesToTypedStreams(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogProvider(loggerConfig(dir))
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof(TypeApp, "lockdown activated, session %s", "abc")
	logger.Debugf(TypeGet, "get message")
	logger.Warnf(TypePost, "post message")
	logger.Errorf(TypeApp, "persist failed: %s", "disk full")

	appLog, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(appLog), "lockdown activated, session abc")
	assert.Contains(t, string(appLog), "disk full")

	getLog, err := os.ReadFile(filepath.Join(dir, "access_get.log"))
	require.NoError(t, err)
	assert.Contains(t, string(getLog), "get message")

	postLog, err := os.ReadFile(filepath.Join(dir, "access_post.log"))
	require.NoError(t, err)
	assert.Contains(t, string(postLog), "post message")
}

func TestNewLogProvider_LevelFiltersOut(t *testing.T) {
	dir := t.TempDir()
	conf := loggerConfig(dir)
	conf.Logger.Level = "error"

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof(TypeApp, "filtered out")
	logger.Errorf(TypeApp, "kept")

	appLog, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(appLog), "filtered out")
	assert.Contains(t, string(appLog), "kept")
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := loggerConfig(t.TempDir())
	conf.Logger.Level = "chatty"

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	_, err := NewLogProvider(loggerConfig("/nonexistent/directory/path"))
	assert.Error(t, err)
}
