package ops

import (
	"github.com/hpungsan/nobi/internal/config"
	"github.com/hpungsan/nobi/internal/errors"
	"github.com/hpungsan/nobi/internal/itinerary"
)

// ParseInput contains parameters for the Parse operation.
type ParseInput struct {
	Text string
}

// Parse structures raw itinerary text. Text over the configured size limit is rejected
// before parsing; anything else parses without error.
func Parse(cfg *config.Config, input ParseInput) (*itinerary.ParsedItinerary, error) {
	if cfg != nil && cfg.ItineraryMaxChars > 0 {
		if chars := itinerary.CountChars(input.Text); chars > cfg.ItineraryMaxChars {
			return nil, errors.NewItineraryTooLarge(cfg.ItineraryMaxChars, chars)
		}
	}

	parsed := itinerary.Parse(input.Text)
	return &parsed, nil
}
