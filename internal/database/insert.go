// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
)

// InsertItems inserts movies in a single transaction.
func (db *DB) InsertItems(ctx context.Context, items []recommend.Item) error {
	return db.insertBatch(ctx, TableMovies,
		`INSERT INTO movies (id, title, genres, overview, tmdb_id) VALUES (?, ?, ?, ?, ?)`,
		len(items), func(stmt *sql.Stmt, i int) error {
			it := items[i]
			var tmdbID any
			if it.ExternalID != 0 {
				tmdbID = it.ExternalID
			}
			_, err := stmt.ExecContext(ctx, it.ID, it.Title, it.Genres, it.Overview, tmdbID)
			return err
		})
}

// InsertInteractions inserts ratings in a single transaction.
func (db *DB) InsertInteractions(ctx context.Context, ratings []recommend.Interaction) error {
	return db.insertBatch(ctx, TableRatings,
		`INSERT INTO ratings (id, user_id, movie_id, rating, timestamp) VALUES (?, ?, ?, ?, ?)`,
		len(ratings), func(stmt *sql.Stmt, i int) error {
			r := ratings[i]
			_, err := stmt.ExecContext(ctx, r.ID, r.UserID, r.ItemID, r.Rating, nullTime(r.Timestamp))
			return err
		})
}

// InsertWatchlist inserts watchlist entries in a single transaction.
func (db *DB) InsertWatchlist(ctx context.Context, entries []recommend.WatchlistEntry) error {
	return db.insertBatch(ctx, TableWatchlist,
		`INSERT INTO watchlist (id, user_id, movie_id, added_at) VALUES (?, ?, ?, ?)`,
		len(entries), func(stmt *sql.Stmt, i int) error {
			w := entries[i]
			_, err := stmt.ExecContext(ctx, w.ID, w.UserID, w.ItemID, nullTime(w.AddedAt))
			return err
		})
}

func (db *DB) insertBatch(ctx context.Context, table, query string, n int, exec func(*sql.Stmt, int) error) (err error) {
	if n == 0 {
		return nil
	}

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("insert", table, time.Since(start), err)
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s insert: %w", table, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare %s insert: %w", table, err)
	}
	defer closeQuietly(stmt)

	for i := 0; i < n; i++ {
		if err = exec(stmt, i); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit %s insert: %w", table, err)
	}
	return nil
}

// DropTable removes table if it exists. Loaders treat a dropped table as
// empty.
func (db *DB) DropTable(ctx context.Context, table string) error {
	switch table {
	case TableMovies, TableRatings, TableWatchlist:
	default:
		return fmt.Errorf("unknown table %q", table)
	}
	if _, err := db.conn.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	return nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
