// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package storage provides model artifact persistence for the recommendation engine.
//
// Trained models are expensive to build, so the engine stores them as
// artifacts under fixed, well-known keys and reuses them across restarts.
//
// # Overview
//
// The storage system provides:
//   - Gob serialization of the model structs
//   - SHA-256 checksums over the encoded model
//   - Gzip compression of the stored payload
//   - Metadata (schema version, data fingerprint, build timing) kept next to the payload
//   - Pluggable backends: one file per key, or an embedded BadgerDB store
//
// # Storage Format
//
// Every artifact is a gob-encoded envelope:
//
//	key:       content_model | collab_model
//	structure:
//	  - Metadata (ModelMetadata)
//	  - CompressedData (gzip-compressed gob-encoded model)
//
// The file backend writes each envelope to {dir}/{key}.gob.gz, replacing the
// previous artifact atomically with a rename. The badger backend stores the
// envelope as the value of the "model:{key}" entry.
//
// # Usage Example
//
//	backend, err := storage.NewFileBackend("/data/recommend")
//	if err != nil {
//	    return err
//	}
//	store := storage.NewStore(backend)
//	defer store.Close()
//
//	err = store.Save(ctx, storage.KeyContentModel, model, storage.ModelMetadata{
//	    SchemaVersion: storage.SchemaVersion,
//	    Fingerprint:   fp,
//	})
//
//	var loaded algorithms.ContentModel
//	meta, err := store.Load(ctx, storage.KeyContentModel, &loaded)
//	switch {
//	case errors.Is(err, storage.ErrNotFound):
//	    // build from scratch
//	case errors.Is(err, storage.ErrCorrupt), errors.Is(err, storage.ErrChecksumMismatch):
//	    // apply the corrupt-artifact policy
//	}
//
// # Thread Safety
//
// Store and both backends are safe for concurrent use. A reader never observes
// a partially written artifact.
package storage
