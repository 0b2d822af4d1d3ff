package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/username/weekend-checker/pkg/dateutil"
	"go.uber.org/zap"
)

// DefaultKey is the single key the whole log lives under
const DefaultKey = "weekend_checker_history"

// ErrCorruptLog is returned when the stored blob cannot be decoded
var ErrCorruptLog = errors.New("history: corrupt log")

// Entry is one submitted query. Entries are never changed after creation.
type Entry struct {
	ID        string `json:"id,omitempty"`
	Value     string `json:"value"`
	Timestamp string `json:"timestamp"`
}

// Recorder is an append-only log of submitted queries
type Recorder struct {
	store  Store
	key    string
	now    func() time.Time
	logger *zap.Logger
	mu     sync.Mutex
}

// Option configures a Recorder
type Option func(*Recorder)

// WithKey overrides DefaultKey
func WithKey(key string) Option {
	return func(r *Recorder) {
		if key != "" {
			r.key = key
		}
	}
}

// WithClock replaces time.Now for timestamps
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

// NewRecorder creates a recorder on top of store
func NewRecorder(store Store, logger *zap.Logger, opts ...Option) *Recorder {
	r := &Recorder{
		store:  store,
		key:    DefaultKey,
		now:    time.Now,
		logger: logger,
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record appends value with the current timestamp, persists the whole log
// and returns it most-recent-first.
func (r *Recorder) Record(value string) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return nil, err
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Value:     value,
		Timestamp: dateutil.FormatLocaleRU(r.now()),
	}
	entries = append(entries, entry)

	if err := r.save(entries); err != nil {
		return nil, err
	}

	r.logger.Info("Query recorded",
		zap.String("value", value),
		zap.String("timestamp", entry.Timestamp),
		zap.Int("entries", len(entries)))

	slices.Reverse(entries)
	return entries, nil
}

// List yields entries most-recent-first. Every iteration reads the store again.
// Read errors end the sequence early and are logged; callers that must report
// them use Entries.
func (r *Recorder) List() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		entries, err := r.Entries()
		if err != nil {
			r.logger.Warn("Failed to read history", zap.Error(err))
			return
		}
		for _, e := range entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Entries returns a snapshot of the log, most-recent-first.
// It is the error-returning form of List and what the CLI prints from.
func (r *Recorder) Entries() ([]Entry, error) {
	r.mu.Lock()
	entries, err := r.load()
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	slices.Reverse(entries)
	return entries, nil
}

// Len returns the number of recorded entries
func (r *Recorder) Len() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Clear erases the whole log. Asking the user is up to the caller.
func (r *Recorder) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Delete(r.key); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	r.logger.Info("History cleared")
	return nil
}

// load returns entries in insertion order
func (r *Recorder) load() ([]Entry, error) {
	data, err := r.store.Get(r.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptLog, err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (r *Recorder) save(entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := r.store.Put(r.key, data); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}
