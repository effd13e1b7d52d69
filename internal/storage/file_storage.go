// Package storage persists the full step store as a single JSON
// document. Every mutation rewrites the whole document; the rename
// on save keeps concurrent readers from seeing a torn write.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/UbiwanKenobi/Stepper-bot/internal/model"
)

// SaveHook receives the exact bytes of a successfully saved
// document. It runs on its own goroutine; failures are the hook's
// problem and never reach the save path.
type SaveHook func(doc []byte)

type FileStorage struct {
	path string
	hook SaveHook
}

func NewFileStorage(path string) *FileStorage {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	return &FileStorage{path: path}
}

// SetSaveHook attaches the post-save hook. Nil leaves saves local-only.
func (fs *FileStorage) SetSaveHook(h SaveHook) {
	fs.hook = h
}

// LockPath is the companion lock artifact callers must hold across
// a whole load-modify-save cycle.
func (fs *FileStorage) LockPath() string {
	return fs.path + ".lock"
}

// Load reads and validates the durable document. A missing file is
// an empty store, not an error.
func (fs *FileStorage) Load() (model.Store, error) {
	b, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Store{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", fs.path, err)
	}

	var store model.Store
	if err := json.Unmarshal(b, &store); err != nil {
		return nil, fmt.Errorf("decode %s: %w", fs.path, err)
	}
	if err := store.Validate(); err != nil {
		return nil, fmt.Errorf("malformed store in %s: %w", fs.path, err)
	}
	return store, nil
}

// Save writes the full store back. The document lands in a temp
// file first and is renamed over the old one, so a failure mid-write
// leaves the previous document intact. The hook fires only after
// the rename succeeds.
func (fs *FileStorage) Save(store model.Store) error {
	doc, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, doc, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	if fs.hook != nil {
		go fs.hook(doc)
	}
	return nil
}
