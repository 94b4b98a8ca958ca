package ops

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/nobi/internal/db"
	"github.com/hpungsan/nobi/internal/errors"
	"github.com/hpungsan/nobi/internal/itinerary"
)

const sampleText = `Enjoy Lisbon!
**Day 1: Alfama**
**Morning**
Castle of São Jorge.
**Evening**
Fado dinner.
**Day 2: Belém**
**Afternoon**
Pastéis de Belém.`

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

// freezeTime pins now() for the duration of the test.
func freezeTime(t *testing.T, at time.Time) *time.Time {
	t.Helper()
	current := at
	orig := now
	now = func() time.Time { return current }
	t.Cleanup(func() { now = orig })
	return &current
}

func validSaveInput() SaveInput {
	return SaveInput{
		Owner:         "alice",
		Destination:   "Lisbon",
		StartDate:     "2025-05-01",
		EndDate:       "2025-05-02",
		Interests:     []string{"Food", "History"},
		ItineraryText: sampleText,
	}
}

func TestValidateOwner(t *testing.T) {
	got, err := ValidateOwner("  alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)

	_, err = ValidateOwner("   ")
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	_, err = ValidateOwner(strings.Repeat("x", MaxOwnerLength+1))
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestGenerateULID(t *testing.T) {
	a, err := generateULID()
	require.NoError(t, err)
	assert.Len(t, a, 26)
}

func TestParse(t *testing.T) {
	cfg := testConfig()

	out, err := Parse(cfg, ParseInput{Text: sampleText})
	require.NoError(t, err)
	assert.Equal(t, "Enjoy Lisbon!", out.Intro)
	require.Len(t, out.Days, 2)
	assert.Equal(t, []itinerary.SectionPair{{Key: "Afternoon", Value: "Pastéis de Belém."}}, itinerary.Pairs(out.Days[1].Details))
}

func TestParse_TooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.ItineraryMaxChars = 5

	_, err := Parse(cfg, ParseInput{Text: "Day 1: Too long"})
	assert.True(t, errors.Is(err, errors.ErrItineraryTooLarge))

	// A nil config parses anything
	out, err := Parse(nil, ParseInput{Text: ""})
	require.NoError(t, err)
	assert.Empty(t, out.Days)
}
