package service

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UbiwanKenobi/Stepper-bot/internal/model"
	"github.com/UbiwanKenobi/Stepper-bot/internal/storage"
)

var errBoom = errors.New("boom")

type failingStorage struct {
	lockPath string
	loadErr  error
	saveErr  error
	store    model.Store
	saved    int
}

func (f *failingStorage) Load() (model.Store, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.store == nil {
		return model.Store{}, nil
	}
	return f.store, nil
}

func (f *failingStorage) Save(s model.Store) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.store = s
	f.saved++
	return nil
}

func (f *failingStorage) LockPath() string { return f.lockPath }

func newSvc(t *testing.T) *Steps {
	t.Helper()
	return NewSteps(storage.NewFileStorage(filepath.Join(t.TempDir(), "data.json")))
}

func TestIngestThenSnapshot(t *testing.T) {
	svc := newSvc(t)
	date := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Ingest("42", "vasya", date, 5000))

	store, err := svc.Snapshot()
	require.NoError(t, err)
	require.Contains(t, store, "42")
	assert.Equal(t, 5000, store["42"].Records[0].Steps)
}

func TestIngestReplacesSameDate(t *testing.T) {
	svc := newSvc(t)
	date := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Ingest("42", "vasya", date, 5000))
	require.NoError(t, svc.Ingest("42", "vasya", date, 7000))

	store, err := svc.Snapshot()
	require.NoError(t, err)
	require.Len(t, store["42"].Records, 1)
	assert.Equal(t, 7000, store["42"].Records[0].Steps)
}

func TestIngestSurfacesLoadFailure(t *testing.T) {
	st := &failingStorage{lockPath: filepath.Join(t.TempDir(), "data.json.lock"), loadErr: errBoom}
	err := NewSteps(st).Ingest("42", "vasya", time.Now(), 1)
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, st.saved)
}

func TestIngestSurfacesSaveFailure(t *testing.T) {
	st := &failingStorage{lockPath: filepath.Join(t.TempDir(), "data.json.lock"), saveErr: errBoom}
	err := NewSteps(st).Ingest("42", "vasya", time.Now(), 1)
	assert.ErrorIs(t, err, errBoom)
}

func TestLockReleasedAfterFailure(t *testing.T) {
	// A failed ingest must not leave the lock held for the next caller.
	lockPath := filepath.Join(t.TempDir(), "data.json.lock")
	st := &failingStorage{lockPath: lockPath, saveErr: errBoom}
	svc := NewSteps(st)
	require.Error(t, svc.Ingest("42", "vasya", time.Now(), 1))

	st.saveErr = nil
	require.NoError(t, svc.Ingest("42", "vasya", time.Now(), 1))
	assert.Equal(t, 1, st.saved)
}

func TestConcurrentIngestsLoseNoUpdates(t *testing.T) {
	svc := newSvc(t)
	base := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := svc.Ingest("42", "vasya", base.AddDate(0, 0, i), 1000)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	store, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Len(t, store["42"].Records, 10)
}
