package ops

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/hpungsan/nobi/internal/db"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	Owner string
	ID    string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete permanently removes an owner's itinerary.
func Delete(ctx context.Context, database *sql.DB, input DeleteInput) (*DeleteOutput, error) {
	owner, err := ValidateOwner(input.Owner)
	if err != nil {
		return nil, err
	}
	id, err := validateID(input.ID)
	if err != nil {
		return nil, err
	}

	if err := db.DeleteItinerary(ctx, database, owner, id); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("owner", owner).Str("id", id).Msg("itinerary deleted")

	return &DeleteOutput{
		Deleted: true,
		ID:      id,
	}, nil
}
