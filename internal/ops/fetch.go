package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/nobi/internal/db"
	"github.com/hpungsan/nobi/internal/itinerary"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	Owner string
	ID    string
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	itinerary.Itinerary                           // embedded (copy, not pointer)
	Parsed              itinerary.ParsedItinerary `json:"parsed"`
}

// Fetch retrieves an owner's itinerary together with its parsed day blocks.
func Fetch(ctx context.Context, database *sql.DB, input FetchInput) (*FetchOutput, error) {
	owner, err := ValidateOwner(input.Owner)
	if err != nil {
		return nil, err
	}
	id, err := validateID(input.ID)
	if err != nil {
		return nil, err
	}

	it, err := db.GetItinerary(ctx, database, owner, id)
	if err != nil {
		return nil, err
	}

	return &FetchOutput{
		Itinerary: *it,
		Parsed:    itinerary.Parse(it.ItineraryText),
	}, nil
}
