package ops

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/nobi/internal/errors"
	"github.com/hpungsan/nobi/internal/itinerary"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// MaxOwnerLength bounds owner identifiers.
const MaxOwnerLength = 128

// ErrGenerationDisabled is returned by Generate when no generator is configured.
var ErrGenerationDisabled = errors.NewInvalidRequest("generation is not configured (set GEMINI_API_KEY)")

// now is replaced in tests.
var now = time.Now

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// ValidateOwner trims and checks an owner identifier.
func ValidateOwner(owner string) (string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return "", errors.NewInvalidRequest("owner is required")
	}
	if len(owner) > MaxOwnerLength {
		return "", errors.NewInvalidRequest("owner must be at most 128 bytes")
	}
	return owner, nil
}

// validateID trims and checks an itinerary id.
func validateID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.NewInvalidRequest("id is required")
	}
	return id, nil
}

// buildTrip parses and validates the trip fields shared by Generate and Save.
func buildTrip(destination, startDate, endDate string, interests []string) (itinerary.TripRequest, error) {
	start, err := itinerary.ParseDate(startDate)
	if err != nil {
		return itinerary.TripRequest{}, err
	}
	end, err := itinerary.ParseDate(endDate)
	if err != nil {
		return itinerary.TripRequest{}, err
	}

	trip := itinerary.TripRequest{
		Destination: strings.TrimSpace(destination),
		StartDate:   start,
		EndDate:     end,
		Interests:   itinerary.CleanInterests(interests),
	}
	if err := trip.Validate(); err != nil {
		return itinerary.TripRequest{}, err
	}
	return trip, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
