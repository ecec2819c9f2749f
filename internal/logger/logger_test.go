package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	original := Log
	defer func() { Log = original }()

	for _, lvl := range []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"} {
		t.Run(lvl, func(t *testing.T) {
			require.NoError(t, Initialize(lvl))
			require.NotNil(t, Log)
			assert.NotPanics(t, func() {
				Log.Infow("initialized", "level", lvl)
			})
		})
	}
}

func TestInitialize_UnknownLevel(t *testing.T) {
	original := Log
	defer func() { Log = original }()

	assert.Error(t, Initialize("not-a-level"))
}

func TestLog_SilentBeforeInitialize(t *testing.T) {
	// The default no-op logger must be safe to call from init paths
	require.NotNil(t, Log)
	assert.NotPanics(t, func() {
		Log.Infow("before initialize")
	})
}
