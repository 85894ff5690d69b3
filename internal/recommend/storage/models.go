// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"
)

// Well-known artifact keys.
const (
	KeyContentModel = "content_model"
	KeyCollabModel  = "collab_model"
)

// SchemaVersion identifies the layout of the stored model structs. Artifacts
// written with another version are treated as stale.
const SchemaVersion = 1

var (
	// ErrChecksumMismatch is returned when the decompressed payload does not match its checksum.
	ErrChecksumMismatch = errors.New("artifact checksum mismatch")

	// ErrCorrupt is returned when an artifact cannot be decoded.
	ErrCorrupt = errors.New("artifact corrupt")
)

// ModelMetadata contains information about a stored model.
type ModelMetadata struct {
	// Key is the artifact key (e.g., "content_model").
	Key string `json:"key"`

	// SchemaVersion is the model layout version the artifact was written with.
	SchemaVersion int `json:"schema_version"`

	// Fingerprint is a hash of the data the model was built from.
	Fingerprint uint64 `json:"fingerprint"`

	// Rows is the number of input rows (items or interactions).
	Rows int `json:"rows"`

	// TrainedAt is when the model was built.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the artifact was written.
	SavedAt time.Time `json:"saved_at"`

	// BuildDurationMS is how long the build took.
	BuildDurationMS int64 `json:"build_duration_ms"`

	// Checksum is the SHA-256 checksum of the gob-encoded model.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed model size in bytes.
	SizeBytes int64 `json:"size_bytes"`
}

// storedFile is the envelope written to the backend.
type storedFile struct {
	Metadata       ModelMetadata
	CompressedData []byte
}

// Store encodes models into artifacts and verifies them on load.
type Store struct {
	backend Backend
}

// NewStore creates a store over backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Save encodes data and writes it under key together with meta.
// Key, Checksum, SizeBytes and SavedAt are filled in by Save.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, key string, data any, meta ModelMetadata) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	rawData := buf.Bytes()

	hash := sha256.Sum256(rawData)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(rawData); err != nil {
		return fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	meta.Key = key
	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now()

	var envelope bytes.Buffer
	sf := storedFile{Metadata: meta, CompressedData: compressed.Bytes()}
	if err := gob.NewEncoder(&envelope).Encode(sf); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	return s.backend.Write(ctx, key, envelope.Bytes())
}

// Load reads the artifact under key into target, which must be a pointer.
// It returns ErrNotFound when there is no artifact, ErrChecksumMismatch when
// the payload fails verification and ErrCorrupt when it cannot be decoded.
func (s *Store) Load(ctx context.Context, key string, target any) (*ModelMetadata, error) {
	sf, err := s.read(ctx, key)
	if err != nil {
		return nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("%w: decompress %s: %v", ErrCorrupt, key, err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	rawData, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCorrupt, key, err)
	}

	hash := sha256.Sum256(rawData)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("%w: %s: expected %s, got %s", ErrChecksumMismatch, key, sf.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(rawData)).Decode(target); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, key, err)
	}

	return &sf.Metadata, nil
}

// Metadata returns the metadata of the artifact under key without decoding the model.
func (s *Store) Metadata(ctx context.Context, key string) (*ModelMetadata, error) {
	sf, err := s.read(ctx, key)
	if err != nil {
		return nil, err
	}
	return &sf.Metadata, nil
}

func (s *Store) read(ctx context.Context, key string) (*storedFile, error) {
	data, err := s.backend.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	var sf storedFile
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&sf); err != nil {
		return nil, fmt.Errorf("%w: read envelope %s: %v", ErrCorrupt, key, err)
	}
	return &sf, nil
}

// Delete removes the artifact under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
