package itinerary

import (
	"regexp"
	"strings"
)

// dayHeadingPattern matches a whole trimmed line that starts a new day, with or
// without surrounding bold markers: "Day 1: Arrival", "**Day 2 - Rome**", "day3 x".
var dayHeadingPattern = regexp.MustCompile(`(?i)^\s*(?:\*\*)?Day\s*\d+[:\s-].*?(?:\*\*)?$`)

// emphasisPattern matches a bold run such as "**Morning**".
// Group 1 is the text between the markers.
var emphasisPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// emphasisMarker is the bold delimiter stripped from day labels.
const emphasisMarker = "**"

// Parse splits free-form itinerary text into an intro and per-day sections.
//
// Lines are trimmed and blank lines dropped. Each day heading starts a new day;
// the lines that follow it up to the next heading become that day's body, split
// with SplitSections. A heading with no body lines is replaced by the next one.
// Lines before the first heading form the intro.
//
// If the text is not blank but no day was produced, the whole text is returned
// as a single day labeled FallbackDayLabel. Parse never fails.
func Parse(raw string) ParsedItinerary {
	var (
		intro        strings.Builder
		currentLabel string
		currentBody  []string
		days         = []DaySection{}
	)

	flush := func() {
		if currentLabel == "" || len(currentBody) == 0 {
			return
		}
		days = append(days, DaySection{
			Label:   currentLabel,
			Details: SplitSections(strings.Join(currentBody, "\n")),
		})
		currentBody = nil
	}

	for _, line := range nonBlankLines(raw) {
		trimmed := strings.TrimSpace(line)
		switch {
		case dayHeadingPattern.MatchString(trimmed):
			flush()
			currentLabel = strings.ReplaceAll(trimmed, emphasisMarker, "")
		case currentLabel != "":
			currentBody = append(currentBody, trimmed)
		default:
			intro.WriteString(trimmed)
			intro.WriteString("\n")
		}
	}
	flush()

	if len(days) == 0 && strings.TrimSpace(raw) != "" {
		days = append(days, DaySection{
			Label:   FallbackDayLabel,
			Details: SplitSections(strings.TrimSpace(raw)),
		})
	}

	return ParsedItinerary{
		Intro: strings.TrimSpace(intro.String()),
		Days:  days,
	}
}

// SplitSections splits a block of text into sections headed by bold runs.
//
// Only the first bold run on a line is a heading; text before it on the same
// line is dropped and text after it starts the section body. Text before any
// heading goes under DefaultSectionKey. A repeated heading replaces the
// earlier section's content.
func SplitSections(body string) *Sections {
	sections := NewSections()
	currentKey := DefaultSectionKey
	var content strings.Builder

	commit := func() {
		if content.Len() == 0 {
			return
		}
		sections.Set(currentKey, strings.TrimSpace(content.String()))
		content.Reset()
	}

	for _, line := range nonBlankLines(body) {
		loc := emphasisPattern.FindStringSubmatchIndex(line)
		if loc == nil {
			content.WriteString(line)
			content.WriteString("\n")
			continue
		}

		commit()
		// loc: [matchStart, matchEnd, nameStart, nameEnd]
		currentKey = line[loc[2]:loc[3]]
		if rest := strings.TrimSpace(line[loc[1]:]); rest != "" {
			content.WriteString(rest)
			content.WriteString("\n")
		}
	}
	commit()

	return sections
}

// nonBlankLines splits s on "\n" and drops lines that are only whitespace.
func nonBlankLines(s string) []string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
