package itinerary

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultSectionKey is the section key used for body text that appears
// before any emphasized heading.
const DefaultSectionKey = "General"

// FallbackDayLabel labels the single synthetic day produced when no day
// heading is recognized in non-blank text. Callers match on the trailing colon.
const FallbackDayLabel = "Day 1:"

// Sections maps a section heading to its body text, in insertion order.
// Setting an existing key replaces its value and keeps its position.
type Sections = orderedmap.OrderedMap[string, string]

// NewSections returns an empty Sections.
func NewSections() *Sections {
	return orderedmap.New[string, string]()
}

// DaySection is one day of a parsed itinerary.
type DaySection struct {
	// Label is the day heading line with emphasis markers removed, e.g. "Day 1: Arrival"
	Label string `json:"label"`

	// Details holds the day's sections keyed by heading ("Morning", "General", ...)
	Details *Sections `json:"details"`
}

// ParsedItinerary is the structured view of free-form itinerary text.
type ParsedItinerary struct {
	// Intro is the trimmed text preceding the first day heading
	Intro string `json:"intro"`

	// Days are the parsed days in source order
	Days []DaySection `json:"days"`
}

// SectionPair is a single key/value entry of a Sections mapping.
type SectionPair struct {
	Key   string
	Value string
}

// Pairs returns the entries of s in order. A nil s yields nil.
func Pairs(s *Sections) []SectionPair {
	if s == nil {
		return nil
	}
	pairs := make([]SectionPair, 0, s.Len())
	for p := s.Oldest(); p != nil; p = p.Next() {
		pairs = append(pairs, SectionPair{Key: p.Key, Value: p.Value})
	}
	return pairs
}
