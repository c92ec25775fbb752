package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func Test_New(t *testing.T) {
	t.Run("logs json to the configured path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tagchat.log")
		logger, err := New(Config{Path: path})
		require.NoError(t, err)

		logger.Debug("hidden")
		logger.Info("hello", zap.String("channel", "#chan"))
		require.NoError(t, logger.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var entry map[string]any
		require.NoError(t, json.Unmarshal(data, &entry))
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "#chan", entry["channel"])
		assert.Contains(t, entry, "time")
	})
	t.Run("debug enables debug level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tagchat.log")
		logger, err := New(Config{Debug: true, Path: path})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zap.DebugLevel))
	})
	t.Run("bad path is an error", func(t *testing.T) {
		_, err := New(Config{Path: filepath.Join(t.TempDir(), "missing", "dir", "tagchat.log")})
		assert.Error(t, err)
	})
}
