package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hpungsan/nobi/internal/errors"
	"github.com/hpungsan/nobi/internal/itinerary"
)

const itineraryColumns = `id, owner, destination, start_date, end_date,
	interests_json, itinerary_text, text_chars, created_at`

// InsertItinerary stores a new itinerary.
func InsertItinerary(ctx context.Context, db *sql.DB, it *itinerary.Itinerary) error {
	interests := it.Interests
	if interests == nil {
		interests = []string{}
	}
	interestsJSON, err := json.Marshal(interests)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO itineraries (` + itineraryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.ExecContext(ctx, query,
		it.ID, it.Owner, it.Destination, it.StartDate, it.EndDate,
		string(interestsJSON), it.ItineraryText, it.TextChars, it.CreatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewInvalidRequest(fmt.Sprintf("itinerary %s already exists", it.ID))
		}
		return errors.NewInternal(err)
	}
	return nil
}

// GetItinerary retrieves an itinerary by owner and ID.
// Itineraries of other owners are reported as not found.
func GetItinerary(ctx context.Context, db *sql.DB, owner, id string) (*itinerary.Itinerary, error) {
	query := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE owner = ? AND id = ?`

	it, err := scanItinerary(db.QueryRowContext(ctx, query, owner, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return it, nil
}

// ListItineraries returns an owner's itineraries newest first, without text,
// plus the owner's total count.
func ListItineraries(ctx context.Context, db *sql.DB, owner string, limit, offset int) ([]itinerary.Summary, int, error) {
	var total int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM itineraries WHERE owner = ?`, owner,
	).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE owner = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := db.QueryContext(ctx, query, owner, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	summaries := []itinerary.Summary{}
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		summaries = append(summaries, it.ToSummary())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return summaries, total, nil
}

// DeleteItinerary permanently removes an owner's itinerary.
func DeleteItinerary(ctx context.Context, db *sql.DB, owner, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM itineraries WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItinerary(s scanner) (*itinerary.Itinerary, error) {
	var it itinerary.Itinerary
	var interestsJSON string

	err := s.Scan(
		&it.ID, &it.Owner, &it.Destination, &it.StartDate, &it.EndDate,
		&interestsJSON, &it.ItineraryText, &it.TextChars, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(interestsJSON), &it.Interests); err != nil {
		return nil, fmt.Errorf("decode interests for %s: %w", it.ID, err)
	}
	if it.Interests == nil {
		it.Interests = []string{}
	}
	return &it, nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
