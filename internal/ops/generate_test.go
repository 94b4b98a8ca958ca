package ops

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/nobi/internal/errors"
)

// fakeGenerator returns canned text and records the prompt it was given.
type fakeGenerator struct {
	text   string
	err    error
	prompt string
	calls  int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.text, f.err
}

func TestGenerate(t *testing.T) {
	gen := &fakeGenerator{text: sampleText}

	out, err := Generate(context.Background(), gen, GenerateInput{
		Destination: " Lisbon ",
		StartDate:   "2025-05-01",
		EndDate:     "2025-05-02",
		Interests:   []string{"Food", "", "History"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, gen.prompt, out.Prompt)
	assert.Contains(t, out.Prompt, "Create a 2-day itinerary for Lisbon from 2025-05-01 to 2025-05-02, focusing on Food, History.")
	assert.Equal(t, "Lisbon", out.Destination)
	assert.Equal(t, []string{"Food", "History"}, out.Interests)
	assert.Equal(t, 2, out.Days)
	assert.Equal(t, sampleText, out.ItineraryText)
	require.Len(t, out.Parsed.Days, 2)
	assert.Equal(t, "Day 1: Alfama", out.Parsed.Days[0].Label)
}

func TestGenerate_InvalidTripSkipsGenerator(t *testing.T) {
	tests := []struct {
		name  string
		input GenerateInput
	}{
		{"blank destination", GenerateInput{Destination: " ", StartDate: "2025-05-01", EndDate: "2025-05-01", Interests: []string{"Art"}}},
		{"no interests", GenerateInput{Destination: "Rome", StartDate: "2025-05-01", EndDate: "2025-05-01"}},
		{"end before start", GenerateInput{Destination: "Rome", StartDate: "2025-05-02", EndDate: "2025-05-01", Interests: []string{"Art"}}},
		{"bad date", GenerateInput{Destination: "Rome", StartDate: "May 1", EndDate: "2025-05-01", Interests: []string{"Art"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{text: sampleText}
			_, err := Generate(context.Background(), gen, tc.input)
			assert.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)
			assert.Equal(t, 0, gen.calls)
		})
	}
}

func TestGenerate_NoGenerator(t *testing.T) {
	_, err := Generate(context.Background(), nil, GenerateInput{
		Destination: "Rome", StartDate: "2025-05-01", EndDate: "2025-05-01", Interests: []string{"Art"},
	})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestGenerate_GeneratorFailure(t *testing.T) {
	input := GenerateInput{Destination: "Rome", StartDate: "2025-05-01", EndDate: "2025-05-01", Interests: []string{"Art"}}

	_, err := Generate(context.Background(), &fakeGenerator{err: stderrors.New("quota exceeded")}, input)
	assert.True(t, errors.Is(err, errors.ErrUpstream), "plain errors become UPSTREAM, got %v", err)

	_, err = Generate(context.Background(), &fakeGenerator{err: errors.NewUnavailable("offline")}, input)
	assert.True(t, errors.Is(err, errors.ErrUnavailable), "structured errors pass through, got %v", err)
}
