package itinerary

import (
	"fmt"
	"strings"
	"time"

	"github.com/hpungsan/nobi/internal/errors"
)

// DateLayout is the date format used for trip dates.
const DateLayout = "2006-01-02"

// MaxTripDays is the longest trip a request may describe.
const MaxTripDays = 365

// TripRequest describes the trip an itinerary is generated for.
type TripRequest struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Interests   []string
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.NewInvalidRequest(fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", s))
	}
	return t, nil
}

// Validate checks that the request names a destination and at least one
// interest, and that the end date is not before the start date.
func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return errors.NewInvalidRequest("destination is required")
	}
	if len(CleanInterests(r.Interests)) == 0 {
		return errors.NewInvalidRequest("at least one interest is required")
	}
	if r.EndDate.Before(r.StartDate) {
		return errors.NewInvalidRequest("end date must not be before start date")
	}
	if days := r.Days(); days > MaxTripDays {
		return errors.NewInvalidRequest(fmt.Sprintf("trip is %d days long (max %d)", days, MaxTripDays))
	}
	return nil
}

// Days returns the inclusive number of days in the trip.
// Calendar days are counted from Unix seconds; time.Duration overflows past ~292 years.
func (r TripRequest) Days() int {
	return int((r.EndDate.Unix()-r.StartDate.Unix())/86400) + 1
}

// BuildPrompt renders the generation prompt for r. The wording asks the model
// for "Day X:" headings and bold Morning/Afternoon/Evening sections, which is
// the shape Parse understands.
func BuildPrompt(r TripRequest) string {
	return fmt.Sprintf(
		"Create a %d-day itinerary for %s from %s to %s, focusing on %s. "+
			"Structure each day as ‘Day X: [Theme/Highlights]’ and divide the activities into sections: "+
			"‘Morning,’ ‘Afternoon,’ and ‘Evening.’ "+
			"Group each activity/location with a title, description, and nothing else.",
		r.Days(),
		strings.TrimSpace(r.Destination),
		r.StartDate.Format(DateLayout),
		r.EndDate.Format(DateLayout),
		strings.Join(CleanInterests(r.Interests), ", "),
	)
}

// CleanInterests trims interests and drops blanks and exact duplicates.
func CleanInterests(interests []string) []string {
	seen := make(map[string]bool, len(interests))
	out := make([]string, 0, len(interests))
	for _, s := range interests {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
