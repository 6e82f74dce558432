package throttle

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(day string) func() time.Time {
	ts, err := time.Parse(dateLayout, day)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts }
}

func newTestTracker(t *testing.T, day string) (*Tracker, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counter.json")
	return NewFile(path, WithClock(fixedClock(day))), path
}

func TestCountSynthesizesDefaults(t *testing.T) {
	tracker, path := newTestTracker(t, "2026-09-01")

	count, err := tracker.Count()
	require.NoError(t, err)
	assert.Zero(t, count.SuccessfullyApplied)
	assert.Zero(t, count.SuccessfullyAppliedTillNow)
	assert.Equal(t, "2026-09-01", count.LastResetDate)

	// Reading never creates the file.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestUpdateAccumulates(t *testing.T) {
	tracker, _ := newTestTracker(t, "2026-09-01")

	count, err := tracker.Update(3)
	require.NoError(t, err)
	assert.Equal(t, 3, count.SuccessfullyApplied)
	assert.Equal(t, 3, count.SuccessfullyAppliedTillNow)

	count, err = tracker.Update(2)
	require.NoError(t, err)
	assert.Equal(t, 5, count.SuccessfullyApplied)
	assert.Equal(t, 5, count.SuccessfullyAppliedTillNow)
}

func TestUpdateZeroIsSafeAnyDay(t *testing.T) {
	tracker, path := newTestTracker(t, "2026-09-01")
	_, err := tracker.Update(7)
	require.NoError(t, err)

	// Same day: nothing moves.
	count, err := tracker.Update(0)
	require.NoError(t, err)
	assert.Equal(t, 7, count.SuccessfullyApplied)
	assert.Equal(t, 7, count.SuccessfullyAppliedTillNow)

	// Next day: daily resets, lifetime untouched.
	nextDay := NewFile(path, WithClock(fixedClock("2026-09-02")))
	count, err = nextDay.Update(0)
	require.NoError(t, err)
	assert.Zero(t, count.SuccessfullyApplied)
	assert.Equal(t, 7, count.SuccessfullyAppliedTillNow)
	assert.Equal(t, "2026-09-02", count.LastResetDate)
}

func TestDateRolloverZeroesDailyBeforeAdding(t *testing.T) {
	tracker, path := newTestTracker(t, "2026-09-01")
	_, err := tracker.Update(10)
	require.NoError(t, err)

	nextDay := NewFile(path, WithClock(fixedClock("2026-09-02")))
	count, err := nextDay.Update(4)
	require.NoError(t, err)
	assert.Equal(t, 4, count.SuccessfullyApplied)
	assert.Equal(t, 14, count.SuccessfullyAppliedTillNow)
}

func TestEscalationCounter(t *testing.T) {
	tracker, path := newTestTracker(t, "2026-09-01")

	for want := 1; want <= 3; want++ {
		got, err := tracker.BumpEscalation()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	n, err := tracker.EscalationCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// The run counter has its own reset date.
	nextDay := NewFile(path, WithClock(fixedClock("2026-09-02")))
	got, err := nextDay.BumpEscalation()
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestResetPreservesLifetimeCounter(t *testing.T) {
	tracker, _ := newTestTracker(t, "2026-09-01")
	_, err := tracker.Update(6)
	require.NoError(t, err)

	require.NoError(t, tracker.Reset())

	count, err := tracker.Count()
	require.NoError(t, err)
	assert.Zero(t, count.SuccessfullyApplied)
	assert.Equal(t, 6, count.SuccessfullyAppliedTillNow)
}

func TestWriteIsAtomicReplacement(t *testing.T) {
	tracker, path := newTestTracker(t, "2026-09-01")
	_, err := tracker.Update(1)
	require.NoError(t, err)

	// No temp residue next to the tracker file.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestCorruptDocumentSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	tracker := NewFile(path, WithClock(fixedClock("2026-09-01")))
	_, err := tracker.Count()
	assert.ErrorContains(t, err, "failed to parse tracker document")
}
