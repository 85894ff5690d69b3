// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when no artifact exists under a key.
var ErrNotFound = errors.New("artifact not found")

// ErrInvalidKey is returned for empty keys or keys containing path elements.
var ErrInvalidKey = errors.New("invalid artifact key")

// Backend stores opaque artifact bytes under string keys.
type Backend interface {
	// Read returns the artifact stored under key, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write stores data under key, replacing any previous artifact.
	Write(ctx context.Context, key string, data []byte) error

	// Delete removes the artifact. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// FileBackend stores each artifact as a single file in a directory.
type FileBackend struct {
	dir string
}

// NewFileBackend creates the directory if needed and returns a backend rooted at it.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Path returns the file path used for key.
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.dir, key+".gob.gz")
}

// Read implements Backend.
func (b *FileBackend) Read(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.Path(key)) //nolint:gosec // path is built from a validated key
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", key, err)
	}
	return data, nil
}

// Write implements Backend. The artifact is written to a temporary file in
// the same directory and renamed over the target.
func (b *FileBackend) Write(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close() //nolint:errcheck // write error takes precedence
		return fmt.Errorf("write artifact %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close() //nolint:errcheck // sync error takes precedence
		return fmt.Errorf("sync artifact %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close artifact %s: %w", key, err)
	}
	if err := os.Rename(tmpName, b.Path(key)); err != nil {
		return fmt.Errorf("replace artifact %s: %w", key, err)
	}
	return nil
}

// Delete implements Backend.
func (b *FileBackend) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.Remove(b.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete artifact %s: %w", key, err)
	}
	return nil
}

// Close implements Backend.
func (b *FileBackend) Close() error {
	return nil
}

// Key prefix for artifacts in BadgerDB
const badgerKeyPrefix = "model:"

// BadgerBackend stores artifacts in an embedded BadgerDB database.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadgerBackend opens (or creates) a BadgerDB database at dir.
func OpenBadgerBackend(dir string) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for models: %w", err)
	}
	return &BadgerBackend{db: db}, nil
}

// NewBadgerBackendFromDB wraps an already opened database.
func NewBadgerBackendFromDB(db *badger.DB) *BadgerBackend {
	return &BadgerBackend{db: db}
}

// Read implements Backend.
func (b *BadgerBackend) Read(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get artifact %s: %w", key, err)
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write implements Backend.
func (b *BadgerBackend) Write(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(badgerKeyPrefix+key), data); err != nil {
			return fmt.Errorf("set artifact %s: %w", key, err)
		}
		return nil
	})
}

// Delete implements Backend.
func (b *BadgerBackend) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(badgerKeyPrefix + key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete artifact %s: %w", key, err)
		}
		return nil
	})
}

// Close implements Backend.
func (b *BadgerBackend) Close() error {
	return b.db.Close()
}

// Open returns the backend named by kind ("file" or "badger") rooted at dir.
func Open(kind, dir string) (Backend, error) {
	switch kind {
	case "", "file":
		return NewFileBackend(dir)
	case "badger":
		return OpenBadgerBackend(dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
