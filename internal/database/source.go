// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/marquee/internal/recommend"
)

var _ recommend.Source = (*DB)(nil)

// LoadItems returns every movie ordered by id. A missing table yields an
// empty slice.
func (db *DB) LoadItems(ctx context.Context) ([]recommend.Item, error) {
	return read(ctx, db, TableMovies, func(ctx context.Context) ([]recommend.Item, error) {
		ok, err := db.tableExists(ctx, TableMovies)
		if err != nil || !ok {
			return nil, err
		}

		rows, err := db.conn.QueryContext(ctx,
			`SELECT id, title, genres, overview, tmdb_id FROM movies ORDER BY id`)
		if err != nil {
			return nil, fmt.Errorf("query movies: %w", err)
		}
		defer rows.Close()

		var items []recommend.Item
		for rows.Next() {
			var (
				item     recommend.Item
				genres   sql.NullString
				overview sql.NullString
				tmdbID   sql.NullInt64
			)
			if err := rows.Scan(&item.ID, &item.Title, &genres, &overview, &tmdbID); err != nil {
				return nil, fmt.Errorf("scan movie: %w", err)
			}
			item.Genres = genres.String
			item.Overview = overview.String
			item.ExternalID = int(tmdbID.Int64)
			items = append(items, item)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate movies: %w", err)
		}
		return items, nil
	})
}

// LoadInteractions returns every rating ordered by id. A missing table
// yields an empty slice.
func (db *DB) LoadInteractions(ctx context.Context) ([]recommend.Interaction, error) {
	return read(ctx, db, TableRatings, func(ctx context.Context) ([]recommend.Interaction, error) {
		ok, err := db.tableExists(ctx, TableRatings)
		if err != nil || !ok {
			return nil, err
		}

		rows, err := db.conn.QueryContext(ctx,
			`SELECT id, user_id, movie_id, rating, timestamp FROM ratings ORDER BY id`)
		if err != nil {
			return nil, fmt.Errorf("query ratings: %w", err)
		}
		defer rows.Close()

		var out []recommend.Interaction
		for rows.Next() {
			var (
				r  recommend.Interaction
				ts sql.NullTime
			)
			if err := rows.Scan(&r.ID, &r.UserID, &r.ItemID, &r.Rating, &ts); err != nil {
				return nil, fmt.Errorf("scan rating: %w", err)
			}
			r.Timestamp = ts.Time
			out = append(out, r)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate ratings: %w", err)
		}
		return out, nil
	})
}

// LoadWatchlist returns every watchlist entry ordered by id. A missing table
// yields an empty slice.
func (db *DB) LoadWatchlist(ctx context.Context) ([]recommend.WatchlistEntry, error) {
	return read(ctx, db, TableWatchlist, func(ctx context.Context) ([]recommend.WatchlistEntry, error) {
		ok, err := db.tableExists(ctx, TableWatchlist)
		if err != nil || !ok {
			return nil, err
		}

		rows, err := db.conn.QueryContext(ctx,
			`SELECT id, user_id, movie_id, added_at FROM watchlist ORDER BY id`)
		if err != nil {
			return nil, fmt.Errorf("query watchlist: %w", err)
		}
		defer rows.Close()

		var out []recommend.WatchlistEntry
		for rows.Next() {
			var (
				w       recommend.WatchlistEntry
				addedAt sql.NullTime
			)
			if err := rows.Scan(&w.ID, &w.UserID, &w.ItemID, &addedAt); err != nil {
				return nil, fmt.Errorf("scan watchlist: %w", err)
			}
			w.AddedAt = addedAt.Time
			out = append(out, w)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate watchlist: %w", err)
		}
		return out, nil
	})
}
