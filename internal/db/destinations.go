package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/hpungsan/nobi/internal/destination"
	"github.com/hpungsan/nobi/internal/errors"
)

// metaLastFetch is the meta key holding the Unix time of the last successful refresh.
const metaLastFetch = "destinations.last_fetch_at"

// ListDestinations returns the cached destinations in fetch order.
func ListDestinations(ctx context.Context, db *sql.DB) ([]destination.Destination, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT title, subtitle, description, location, image_url
		FROM destinations
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	out := []destination.Destination{}
	for rows.Next() {
		var d destination.Destination
		if err := rows.Scan(&d.Title, &d.Subtitle, &d.Description, &d.Location, &d.ImageURL); err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// CountDestinations returns the number of cached destinations.
func CountDestinations(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM destinations`).Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// ReplaceDestinations swaps the whole cache for dests in one transaction and
// records fetchedAt as the last fetch time. On any failure the previous cache is kept.
func ReplaceDestinations(ctx context.Context, db *sql.DB, dests []destination.Destination, fetchedAt int64) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM destinations`); err != nil {
		return errors.NewInternal(fmt.Errorf("clear destinations: %w", err))
	}

	for i, d := range dests {
		_, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO destinations (title, subtitle, description, location, image_url, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, d.Title, d.Subtitle, d.Description, d.Location, d.ImageURL, i)
		if err != nil {
			return errors.NewInternal(fmt.Errorf("insert destination %q: %w", d.Title, err))
		}
	}

	if err = setMeta(ctx, tx, metaLastFetch, strconv.FormatInt(fetchedAt, 10)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// LastFetch returns the Unix time of the last successful refresh.
// ok is false when the cache has never been filled.
func LastFetch(ctx context.Context, db *sql.DB) (at int64, ok bool, err error) {
	var value string
	err = db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, metaLastFetch).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.NewInternal(err)
	}

	at, err = strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, errors.NewInternal(fmt.Errorf("parse %s: %w", metaLastFetch, err))
	}
	return at, true, nil
}

func setMeta(ctx context.Context, ex execer, key, value string) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("set meta %s: %w", key, err))
	}
	return nil
}
