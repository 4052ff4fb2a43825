package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firescrape/internal/logging"
)

func TestNew_ConsoleOnly(t *testing.T) {
	t.Parallel()

	logger, err := logging.New(logging.Config{Development: true})
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Debug("debug message should not panic")
}

func TestNew_FileRotation(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := logging.New(logging.Config{Dir: dir})
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync() // stderr sync is not reliable across platforms

	data, err := os.ReadFile(filepath.Join(dir, "firescrape.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
