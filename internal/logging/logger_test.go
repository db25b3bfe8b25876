package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	logger, closer, err := New(Config{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	logger.Debug().Str("op", "list").Msg("request sent")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"op":"list"`)
	assert.Contains(t, string(data), `"level":"debug"`)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, closer, err := New(Config{Level: "warn", File: path})
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNew_NoFileIsNop(t *testing.T) {
	logger, closer, err := New(Config{Level: "info"})
	require.NoError(t, err)
	logger.Info().Msg("dropped")
	assert.NoError(t, closer.Close())
}
