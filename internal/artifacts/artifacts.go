// Package artifacts persists batch results as JSON files and loads the job
// queue a run operates on.
package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/swapnil/naukri-auto-apply/internal/types"
)

// Writer stores results under a directory, one file per batch partition
// plus an append-style per-application file. It satisfies the
// orchestrator's ArtifactWriter contract.
type Writer struct {
	dir string
}

// NewWriter creates the results directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		dir = "results"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// SaveApplied appends one verified submission to the day's applied file.
// Records survive even if the batch later aborts.
func (w *Writer) SaveApplied(_ context.Context, rec types.ApplicationRecord) error {
	path := filepath.Join(w.dir, fmt.Sprintf("applied-%s.json", time.Now().Format("2006-01-02")))

	var records []types.ApplicationRecord
	if data, err := os.ReadFile(path); err == nil {
		// A corrupt file is replaced rather than failing the application.
		_ = json.Unmarshal(data, &records)
	}
	records = append(records, rec)

	return writeJSON(path, records)
}

// SaveBatch writes the applied and skipped partitions concurrently.
func (w *Writer) SaveBatch(ctx context.Context, report types.BatchReport) error {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		path := filepath.Join(w.dir, fmt.Sprintf("batch-%s-applied.json", report.RunID))
		return writeJSON(path, report.Applied)
	})
	g.Go(func() error {
		path := filepath.Join(w.dir, fmt.Sprintf("batch-%s-skipped.json", report.RunID))
		return writeJSON(path, report.Skipped)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to save batch artifacts: %w", err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadQueue reads a JSON array of job postings. The queue is produced
// outside this tool, typically exported from a saved search.
func LoadQueue(path string) ([]types.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job queue: %w", err)
	}

	var jobs []types.JobPosting
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse job queue: %w", err)
	}

	valid := jobs[:0]
	for _, j := range jobs {
		if j.Link != "" {
			valid = append(valid, j)
		}
	}
	return valid, nil
}
