package sessionlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVLogger_WritesHeaderOnceAndAppendsRows(t *testing.T) {
	var dir = t.TempDir()
	var logger, err = NewCSVLogger(dir, "session-%Y-%m-%d.csv")
	require.NoError(t, err)
	defer logger.Close()

	var day = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, logger.Write(TrialEvent{Time: day, PatternOffset: 0, TrialCount: 1, PatternByte: 'K', AdapterJitter: 0}))
	require.NoError(t, logger.Write(TrialEvent{Time: day, PatternOffset: 1, TrialCount: 2, PatternByte: 'D', AdapterJitter: 4}))

	var data, readErr = os.ReadFile(filepath.Join(dir, "session-2026-01-02.csv"))
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "time_utc,pattern_offset,trial_count,pattern_byte,adapter_jitter")
	assert.Contains(t, string(data), ",0,1,K,0\n") // pattern_offset=0,trial_count=1,byte=K,jitter=0
}

func TestCSVLogger_RotatesOnDayChange(t *testing.T) {
	var dir = t.TempDir()
	var logger, err = NewCSVLogger(dir, "session-%Y-%m-%d.csv")
	require.NoError(t, err)
	defer logger.Close()

	require.NoError(t, logger.Write(TrialEvent{Time: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), PatternByte: 'K'}))
	require.NoError(t, logger.Write(TrialEvent{Time: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), PatternByte: 'K'}))

	_, err1 := os.Stat(filepath.Join(dir, "session-2026-01-02.csv"))
	_, err2 := os.Stat(filepath.Join(dir, "session-2026-01-03.csv"))
	assert.NoError(t, err1)
	assert.NoError(t, err2)
}
