// Package lock guards the step data file against concurrent
// load-modify-save cycles with an advisory flock on a companion
// lock file.
package lock

import (
	"os"
	"sync"
	"syscall"
)

// Lock is an exclusive advisory lock. The lock file itself carries
// no payload; holding the flock is what matters.
type Lock struct {
	file     *os.File
	released bool
	mu       sync.Mutex
}

// Acquire blocks until the exclusive lock on path is obtained.
func Acquire(path string) (*Lock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX); err != nil {
		file.Close()
		return nil, err
	}

	return &Lock{file: file}, nil
}

// TryAcquire attempts the lock without blocking. Returns (nil, nil)
// when another holder has it.
func TryAcquire(path string) (*Lock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		file.Close()
		if err == syscall.EWOULDBLOCK {
			return nil, nil
		}
		return nil, err
	}

	return &Lock{file: file}, nil
}

// Release unlocks and closes the lock file. Safe to call twice,
// which keeps deferred releases on error paths harmless.
func (l *Lock) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.released {
		return nil
	}
	l.released = true

	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		l.file.Close()
		return err
	}
	return l.file.Close()
}
