package service

import (
	"fmt"
	"time"

	"github.com/UbiwanKenobi/Stepper-bot/internal/lock"
	"github.com/UbiwanKenobi/Stepper-bot/internal/model"
)

// Storage is the minimal persistence interface the service depends on.
type Storage interface {
	Load() (model.Store, error)
	Save(model.Store) error
	LockPath() string
}

// Steps owns the load-modify-save critical section over the durable
// store. There is no in-memory cache: every operation re-reads the
// file under the lock, which is what prevents lost updates between
// concurrent requests.
type Steps struct {
	st Storage
}

func NewSteps(st Storage) *Steps {
	return &Steps{st: st}
}

// Ingest upserts one step report and persists the result. The whole
// cycle runs under the store lock; the lock is released on every
// exit path.
func (s *Steps) Ingest(userID, username string, date time.Time, steps int) error {
	fl, err := lock.Acquire(s.st.LockPath())
	if err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	defer fl.Release()

	store, err := s.st.Load()
	if err != nil {
		return err
	}
	store.Upsert(userID, username, date, steps)
	return s.st.Save(store)
}

// Snapshot loads the store under the lock for read-only queries, so
// a query never observes a half-written document.
func (s *Steps) Snapshot() (model.Store, error) {
	fl, err := lock.Acquire(s.st.LockPath())
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	defer fl.Release()

	return s.st.Load()
}
