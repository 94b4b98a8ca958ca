package itinerary

import "unicode/utf8"

// Itinerary is a saved itinerary owned by a single user.
type Itinerary struct {
	// ID is a ULID that uniquely identifies this itinerary
	ID string `json:"id"`

	// Owner identifies the user the itinerary belongs to
	Owner string `json:"owner"`

	// Destination is the trip destination as entered by the user
	Destination string `json:"destination"`

	// StartDate and EndDate are YYYY-MM-DD dates
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	// Interests are the focus areas the itinerary was generated for
	Interests []string `json:"interests"`

	// ItineraryText is the raw generated text, stored as-is
	ItineraryText string `json:"itinerary_text,omitempty"`

	// TextChars is the character count of ItineraryText (runes, not bytes)
	TextChars int `json:"text_chars"`

	// CreatedAt is the Unix timestamp when the itinerary was saved
	CreatedAt int64 `json:"created_at"`
}

// Summary is an itinerary without its text, used by list views.
type Summary struct {
	ID          string   `json:"id"`
	Owner       string   `json:"owner"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Interests   []string `json:"interests"`
	TextChars   int      `json:"text_chars"`
	CreatedAt   int64    `json:"created_at"`
}

// ToSummary strips the text content from it.
func (it *Itinerary) ToSummary() Summary {
	return Summary{
		ID:          it.ID,
		Owner:       it.Owner,
		Destination: it.Destination,
		StartDate:   it.StartDate,
		EndDate:     it.EndDate,
		Interests:   it.Interests,
		TextChars:   it.TextChars,
		CreatedAt:   it.CreatedAt,
	}
}

// CountChars returns the character count as runes (not bytes).
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}
