package history

import (
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fixedClock returns a clock that advances one second per call
func fixedClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(time.Second)
		return t
	}
}

func newTestRecorder(t *testing.T, store Store) *Recorder {
	return NewRecorder(store, zaptest.NewLogger(t), WithClock(fixedClock()))
}

func TestRecorder_Record(t *testing.T) {
	rec := newTestRecorder(t, NewMemoryStore())

	entries, err := rec.Record("01/01/2026")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "01/01/2026", entries[0].Value)
	assert.Equal(t, "05.01.2026, 09:00:00", entries[0].Timestamp)
	assert.NotEmpty(t, entries[0].ID)

	entries, err = rec.Record("garbage")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "garbage", entries[0].Value)
	assert.Equal(t, "05.01.2026, 09:00:01", entries[0].Timestamp)
	assert.Equal(t, "01/01/2026", entries[1].Value)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestRecorder_ListIsReverseChronological(t *testing.T) {
	rec := newTestRecorder(t, NewMemoryStore())

	const n = 7
	for i := 0; i < n; i++ {
		_, err := rec.Record(fmt.Sprintf("%02d/01/2026", i+1))
		require.NoError(t, err)
	}

	values := []string{}
	for e := range rec.List() {
		values = append(values, e.Value)
	}

	require.Len(t, values, n)
	for i, v := range values {
		assert.Equal(t, fmt.Sprintf("%02d/01/2026", n-i), v)
	}
}

func TestRecorder_ListIsRestartable(t *testing.T) {
	rec := newTestRecorder(t, NewMemoryStore())
	_, err := rec.Record("01/01/2026")
	require.NoError(t, err)

	seq := rec.List()
	first := slices.Collect(seq)
	require.Len(t, first, 1)

	// The same sequence sees entries recorded after it was created
	_, err = rec.Record("02/01/2026")
	require.NoError(t, err)

	second := slices.Collect(seq)
	require.Len(t, second, 2)
	assert.Equal(t, "02/01/2026", second[0].Value)
}

func TestRecorder_ListStopsEarly(t *testing.T) {
	rec := newTestRecorder(t, NewMemoryStore())
	for i := 0; i < 5; i++ {
		_, err := rec.Record("x")
		require.NoError(t, err)
	}

	count := 0
	for range rec.List() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestRecorder_Clear(t *testing.T) {
	rec := newTestRecorder(t, NewMemoryStore())

	_, err := rec.Record("01/01/2026")
	require.NoError(t, err)
	_, err = rec.Record("13/13/2026")
	require.NoError(t, err)

	require.NoError(t, rec.Clear())

	n, err := rec.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, slices.Collect(rec.List()))

	// Clearing an empty log is fine
	require.NoError(t, rec.Clear())
}

func TestRecorder_EmptyStore(t *testing.T) {
	rec := newTestRecorder(t, NewMemoryStore())

	entries, err := rec.Entries()
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestRecorder_CorruptLog(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Put(DefaultKey, []byte("{not json")))
	rec := newTestRecorder(t, store)

	_, err := rec.Entries()
	assert.ErrorIs(t, err, ErrCorruptLog)

	_, err = rec.Record("01/01/2026")
	assert.ErrorIs(t, err, ErrCorruptLog)

	// The sequence is simply empty
	assert.Empty(t, slices.Collect(rec.List()))
}

func TestRecorder_NilLogger(t *testing.T) {
	rec := NewRecorder(NewMemoryStore(), nil)

	entries, err := rec.Record("01/01/2026")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	require.NoError(t, rec.Clear())
}

func TestRecorder_ReadsLegacyBlob(t *testing.T) {
	store := NewMemoryStore()
	legacy := `[{"value":"01/01/2026","timestamp":"05.01.2026, 10:00:00"},{"value":"abc","timestamp":"05.01.2026, 10:01:00"}]`
	require.NoError(t, store.Put(DefaultKey, []byte(legacy)))
	rec := newTestRecorder(t, store)

	entries, err := rec.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[0].Value)
	assert.Equal(t, "", entries[0].ID)
}

func TestRecorder_WithKey(t *testing.T) {
	store := NewMemoryStore()
	rec := NewRecorder(store, zaptest.NewLogger(t), WithKey("other"))

	_, err := rec.Record("01/01/2026")
	require.NoError(t, err)

	_, err = store.Get(DefaultKey)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get("other")
	assert.NoError(t, err)
}

func TestRecorder_ConcurrentRecords(t *testing.T) {
	rec := newTestRecorder(t, NewMemoryStore())

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, err := rec.Record(fmt.Sprintf("worker-%d", id))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	n, err := rec.Len()
	require.NoError(t, err)
	assert.Equal(t, workers, n)
}
