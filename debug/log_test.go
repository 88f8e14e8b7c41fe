package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")
	require.NoError(t, EnableAt(path))
	defer Disable()

	assert.True(t, Enabled())
	Log("play", "column %d", 7)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "play")
	assert.Contains(t, string(data), "column 7")
}

func TestLogWhenDisabledIsNoop(t *testing.T) {
	Disable()
	assert.False(t, Enabled())
	assert.NotPanics(t, func() { Log("x", "nothing %s", "here") })
}

func TestLogEvery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, EnableAt(path))
	defer Disable()

	for i := 0; i < 6; i++ {
		LogEvery(3, "scan", "tick")
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "count=3")
	assert.Contains(t, string(data), "count=6")
	assert.NotContains(t, string(data), "count=4")
}

func TestLoggerKeyValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, EnableAt(path))
	defer Disable()

	Logger().Info("saved", "title", "Lullaby")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title=Lullaby")
}
