package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/task-analytics-api/internal/config"
)

func TestInit_LevelAndFormatter(t *testing.T) {
	closer, err := Init(&config.Config{LogLevel: "debug", GinMode: "release"})
	require.NoError(t, err)
	assert.Nil(t, closer)

	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Logger.Formatter)
}

func TestInit_InvalidLevel(t *testing.T) {
	_, err := Init(&config.Config{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	closer, err := Init(&config.Config{LogLevel: "info", GinMode: "debug", LogFile: path})
	require.NoError(t, err)
	require.NotNil(t, closer)
	t.Cleanup(func() {
		closer.Close()
		Logger.SetOutput(os.Stdout)
	})

	Logger.Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
