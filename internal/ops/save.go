package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hpungsan/nobi/internal/config"
	"github.com/hpungsan/nobi/internal/db"
	"github.com/hpungsan/nobi/internal/errors"
	"github.com/hpungsan/nobi/internal/itinerary"
)

// SaveInput contains parameters for the Save operation.
type SaveInput struct {
	Owner         string // required
	Destination   string // required
	StartDate     string // YYYY-MM-DD
	EndDate       string // YYYY-MM-DD
	Interests     []string
	ItineraryText string // required, stored as-is
}

// SaveOutput contains the result of the Save operation.
type SaveOutput struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"created_at"`
}

// Save stores a generated itinerary for an owner.
func Save(ctx context.Context, database *sql.DB, cfg *config.Config, input SaveInput) (*SaveOutput, error) {
	owner, err := ValidateOwner(input.Owner)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.ItineraryText) == "" {
		return nil, errors.NewInvalidRequest("itinerary_text is required")
	}

	trip, err := buildTrip(input.Destination, input.StartDate, input.EndDate, input.Interests)
	if err != nil {
		return nil, err
	}

	chars := itinerary.CountChars(input.ItineraryText)
	if cfg.ItineraryMaxChars > 0 && chars > cfg.ItineraryMaxChars {
		return nil, errors.NewItineraryTooLarge(cfg.ItineraryMaxChars, chars)
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	it := &itinerary.Itinerary{
		ID:            id,
		Owner:         owner,
		Destination:   trip.Destination,
		StartDate:     trip.StartDate.Format(itinerary.DateLayout),
		EndDate:       trip.EndDate.Format(itinerary.DateLayout),
		Interests:     trip.Interests,
		ItineraryText: input.ItineraryText,
		TextChars:     chars,
		CreatedAt:     now().Unix(),
	}
	if err := db.InsertItinerary(ctx, database, it); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("owner", owner).
		Str("id", id).
		Int("text_chars", chars).
		Msg("itinerary saved")

	return &SaveOutput{ID: id, CreatedAt: it.CreatedAt}, nil
}
