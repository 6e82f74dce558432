// Package throttle tracks how many applications have been submitted today
// and over the lifetime of the agent, plus the per-day escalation counter the
// reporter uses to widen its recipient list.
//
// State lives in a single JSON document behind a small Storage interface;
// the file backend writes atomically (temp file + rename) so concurrent runs
// can no longer tear the document mid-write.
package throttle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// dateLayout matches the persisted YYYY-MM-DD reset dates.
const dateLayout = "2006-01-02"

// Storage abstracts where the tracker document is persisted.
type Storage interface {
	// Read returns the raw document, or os.ErrNotExist when none was
	// ever written.
	Read() ([]byte, error)
	Write(data []byte) error
}

// FileStorage persists the tracker document as a JSON file. Writes go to a
// temp file in the same directory followed by a rename.
type FileStorage struct {
	Path string
}

// Read implements Storage.
func (f FileStorage) Read() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read tracker file %s: %w", f.Path, err)
	}
	return data, nil
}

// Write implements Storage.
func (f FileStorage) Write(data []byte) error {
	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, ".tracker-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp tracker file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write tracker file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close tracker file: %w", err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace tracker file: %w", err)
	}
	return nil
}

// document is the persisted shape. Field names are fixed by the existing
// on-disk format.
type document struct {
	SuccessfullyApplied        int    `json:"successfullyApplied"`
	SuccessfullyAppliedTillNow int    `json:"successfullyAppliedTillNow"`
	LastResetDate              string `json:"lastResetDate"`
	ShouldSendEmailCounter     int    `json:"shouldSendEmailCounter"`
	LastCounterResetDate       string `json:"lastCounterResetDate"`
}

// Count is the rate-limiting view of the tracker.
type Count struct {
	SuccessfullyApplied        int
	SuccessfullyAppliedTillNow int
	LastResetDate              string
}

// Tracker is the application-rate counter service.
type Tracker struct {
	storage Storage
	now     func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the tracker's time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New returns a Tracker backed by storage.
func New(storage Storage, opts ...Option) *Tracker {
	t := &Tracker{storage: storage, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewFile returns a Tracker backed by a JSON file at path.
func NewFile(path string, opts ...Option) *Tracker {
	return New(FileStorage{Path: path}, opts...)
}

func (t *Tracker) today() string {
	return t.now().Format(dateLayout)
}

// load reads the persisted document, synthesizing zero-valued defaults dated
// today when none exists.
func (t *Tracker) load() (document, error) {
	data, err := t.storage.Read()
	if errors.Is(err, os.ErrNotExist) {
		today := t.today()
		return document{LastResetDate: today, LastCounterResetDate: today}, nil
	}
	if err != nil {
		return document{}, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("failed to parse tracker document: %w", err)
	}
	if doc.LastResetDate == "" {
		doc.LastResetDate = t.today()
	}
	if doc.LastCounterResetDate == "" {
		doc.LastCounterResetDate = t.today()
	}
	return doc, nil
}

func (t *Tracker) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tracker document: %w", err)
	}
	return t.storage.Write(data)
}

// Count returns the current application counters without modifying them.
func (t *Tracker) Count() (Count, error) {
	doc, err := t.load()
	if err != nil {
		return Count{}, err
	}
	return Count{
		SuccessfullyApplied:        doc.SuccessfullyApplied,
		SuccessfullyAppliedTillNow: doc.SuccessfullyAppliedTillNow,
		LastResetDate:              doc.LastResetDate,
	}, nil
}

// Update adds delta new applications. On a date rollover the daily counter
// is zeroed first; the lifetime counter is monotonic and only ever grows by
// delta. Persistence failures propagate to the caller.
func (t *Tracker) Update(delta int) (Count, error) {
	doc, err := t.load()
	if err != nil {
		return Count{}, err
	}

	today := t.today()
	if doc.LastResetDate != today {
		doc.SuccessfullyApplied = 0
		doc.LastResetDate = today
	}
	doc.SuccessfullyApplied += delta
	doc.SuccessfullyAppliedTillNow += delta

	if err := t.save(doc); err != nil {
		return Count{}, err
	}
	return Count{
		SuccessfullyApplied:        doc.SuccessfullyApplied,
		SuccessfullyAppliedTillNow: doc.SuccessfullyAppliedTillNow,
		LastResetDate:              doc.LastResetDate,
	}, nil
}

// EscalationCount returns the run-within-day counter.
func (t *Tracker) EscalationCount() (int, error) {
	doc, err := t.load()
	if err != nil {
		return 0, err
	}
	return doc.ShouldSendEmailCounter, nil
}

// BumpEscalation increments the run counter by one, resetting it first when
// its own reset date rolled over. It returns the new value.
func (t *Tracker) BumpEscalation() (int, error) {
	doc, err := t.load()
	if err != nil {
		return 0, err
	}

	today := t.today()
	if doc.LastCounterResetDate != today {
		doc.ShouldSendEmailCounter = 0
		doc.LastCounterResetDate = today
	}
	doc.ShouldSendEmailCounter++

	if err := t.save(doc); err != nil {
		return 0, err
	}
	return doc.ShouldSendEmailCounter, nil
}

// Reset zeroes today's applied count and stamps the reset date, leaving the
// lifetime counter untouched.
func (t *Tracker) Reset() error {
	doc, err := t.load()
	if err != nil {
		return err
	}
	doc.SuccessfullyApplied = 0
	doc.LastResetDate = t.today()
	return t.save(doc)
}
