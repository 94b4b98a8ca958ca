package ops

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hpungsan/nobi/internal/errors"
	"github.com/hpungsan/nobi/internal/itinerary"
	"github.com/hpungsan/nobi/internal/llm"
)

// GenerateInput contains parameters for the Generate operation.
type GenerateInput struct {
	Destination string
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD
	Interests   []string
}

// GenerateOutput contains the result of the Generate operation.
type GenerateOutput struct {
	Destination   string                    `json:"destination"`
	StartDate     string                    `json:"start_date"`
	EndDate       string                    `json:"end_date"`
	Interests     []string                  `json:"interests"`
	Days          int                       `json:"days"`
	Prompt        string                    `json:"prompt"`
	ItineraryText string                    `json:"itinerary_text"`
	Parsed        itinerary.ParsedItinerary `json:"parsed"`
}

// Generate builds a prompt for the trip, asks gen for an itinerary and parses the reply.
func Generate(ctx context.Context, gen llm.Generator, input GenerateInput) (*GenerateOutput, error) {
	trip, err := buildTrip(input.Destination, input.StartDate, input.EndDate, input.Interests)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, ErrGenerationDisabled
	}

	prompt := itinerary.BuildPrompt(trip)

	log := zerolog.Ctx(ctx).With().
		Str("destination", trip.Destination).
		Int("days", trip.Days()).
		Logger()

	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("itinerary generation failed")
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.NewUpstream("generation", err)
	}

	parsed := itinerary.Parse(text)
	log.Info().Int("parsed_days", len(parsed.Days)).Msg("itinerary generated")

	return &GenerateOutput{
		Destination:   trip.Destination,
		StartDate:     trip.StartDate.Format(itinerary.DateLayout),
		EndDate:       trip.EndDate.Format(itinerary.DateLayout),
		Interests:     trip.Interests,
		Days:          trip.Days(),
		Prompt:        prompt,
		ItineraryText: text,
		Parsed:        parsed,
	}, nil
}
