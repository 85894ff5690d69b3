// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"
)

// Table names.
const (
	TableMovies    = "movies"
	TableRatings   = "ratings"
	TableWatchlist = "watchlist"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		genres TEXT NOT NULL DEFAULT '',
		overview TEXT,
		tmdb_id INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		movie_id INTEGER NOT NULL,
		rating DOUBLE NOT NULL,
		timestamp TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS watchlist (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		movie_id INTEGER NOT NULL,
		added_at TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ratings_user ON ratings(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_watchlist_user ON watchlist(user_id)`,
}

// createSchema creates the tables if they do not exist yet.
func (db *DB) createSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// tableExists reports whether table exists in the main schema.
func (db *DB) tableExists(ctx context.Context, table string) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = 'main' AND table_name = ?`,
		table).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return count > 0, nil
}
