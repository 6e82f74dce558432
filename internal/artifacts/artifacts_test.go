package artifacts

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapnil/naukri-auto-apply/internal/types"
)

func appliedRecord(link string) types.ApplicationRecord {
	return types.ApplicationRecord{
		Title:     "React Developer",
		Company:   "Globex",
		Link:      link,
		Status:    types.StatusApplied,
		AppliedAt: "2026-09-01T05:00:00Z",
	}
}

func TestSaveAppliedAppends(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, w.SaveApplied(ctx, appliedRecord("j1")))
	require.NoError(t, w.SaveApplied(ctx, appliedRecord("j2")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)

	var records []types.ApplicationRecord
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "j1", records[0].Link)
	assert.Equal(t, "j2", records[1].Link)
}

func TestSaveBatchWritesBothPartitions(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	report := types.BatchReport{
		RunID:   "run-42",
		Applied: []types.ApplicationRecord{appliedRecord("j1")},
		Skipped: []types.ApplicationRecord{{
			Link: "j2", Status: types.StatusSkipped, Reason: "Company website redirect",
			AppliedAt: types.AppliedAtUnset,
		}},
	}
	require.NoError(t, w.SaveBatch(context.Background(), report))

	var applied []types.ApplicationRecord
	data, err := os.ReadFile(filepath.Join(dir, "batch-run-42-applied.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &applied))
	require.Len(t, applied, 1)
	assert.Equal(t, "j1", applied[0].Link)

	var skipped []types.ApplicationRecord
	data, err = os.ReadFile(filepath.Join(dir, "batch-run-42-skipped.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &skipped))
	require.Len(t, skipped, 1)
	assert.Equal(t, "Company website redirect", skipped[0].Reason)
}

func TestLoadQueue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "queue.json")
	queue := `[
		{"link": "https://example.com/j1", "title": "React Developer", "company": "Globex"},
		{"link": "", "title": "missing link is dropped"},
		{"link": "https://example.com/j2", "title": "Node Developer", "company": "Initech"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(queue), 0o644))

	jobs, err := LoadQueue(path)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "https://example.com/j1", jobs[0].Link)
	assert.Equal(t, "https://example.com/j2", jobs[1].Link)
}

func TestLoadQueueErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadQueue(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorContains(t, err, "failed to read job queue")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "queue.json")
		require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))
		_, err := LoadQueue(path)
		assert.ErrorContains(t, err, "failed to parse job queue")
	})
}
