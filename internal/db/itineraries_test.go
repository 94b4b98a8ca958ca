package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/nobi/internal/errors"
	"github.com/hpungsan/nobi/internal/itinerary"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Init(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// newTestItinerary creates an itinerary with default values for testing.
func newTestItinerary(id, owner string, createdAt int64) *itinerary.Itinerary {
	text := "Day 1: Arrival\n**Morning**\nLand"
	return &itinerary.Itinerary{
		ID:            id,
		Owner:         owner,
		Destination:   "Lisbon",
		StartDate:     "2025-05-01",
		EndDate:       "2025-05-03",
		Interests:     []string{"Food", "History"},
		ItineraryText: text,
		TextChars:     itinerary.CountChars(text),
		CreatedAt:     createdAt,
	}
}

func TestInsertAndGetItinerary(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	it := newTestItinerary("01A", "alice", 100)
	require.NoError(t, InsertItinerary(ctx, db, it))

	got, err := GetItinerary(ctx, db, "alice", "01A")
	require.NoError(t, err)
	assert.Equal(t, it, got)
}

func TestInsertItinerary_DuplicateID(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, InsertItinerary(ctx, db, newTestItinerary("01A", "alice", 100)))
	err := InsertItinerary(ctx, db, newTestItinerary("01A", "alice", 101))
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)
}

func TestInsertItinerary_NilInterests(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	it := newTestItinerary("01A", "alice", 100)
	it.Interests = nil
	require.NoError(t, InsertItinerary(ctx, db, it))

	got, err := GetItinerary(ctx, db, "alice", "01A")
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Interests)
}

func TestGetItinerary_OtherOwnerIsNotFound(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, InsertItinerary(ctx, db, newTestItinerary("01A", "alice", 100)))

	_, err := GetItinerary(ctx, db, "bob", "01A")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = GetItinerary(ctx, db, "alice", "missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestListItineraries_NewestFirst(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, InsertItinerary(ctx, db, newTestItinerary("01A", "alice", 100)))
	require.NoError(t, InsertItinerary(ctx, db, newTestItinerary("01C", "alice", 300)))
	require.NoError(t, InsertItinerary(ctx, db, newTestItinerary("01B", "alice", 300)))
	require.NoError(t, InsertItinerary(ctx, db, newTestItinerary("01Z", "bob", 999)))

	items, total, err := ListItineraries(ctx, db, "alice", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	ids := make([]string, len(items))
	for i, s := range items {
		ids[i] = s.ID
	}
	// Equal timestamps fall back to id DESC
	assert.Equal(t, []string{"01C", "01B", "01A"}, ids)
	assert.Equal(t, []string{"Food", "History"}, items[0].Interests)
}

func TestListItineraries_Pagination(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	for i, id := range []string{"01A", "01B", "01C"} {
		require.NoError(t, InsertItinerary(ctx, db, newTestItinerary(id, "alice", int64(i))))
	}

	items, total, err := ListItineraries(ctx, db, "alice", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, "01A", items[0].ID)
}

func TestListItineraries_EmptyOwner(t *testing.T) {
	db := setupDB(t)

	items, total, err := ListItineraries(context.Background(), db, "nobody", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestDeleteItinerary(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, InsertItinerary(ctx, db, newTestItinerary("01A", "alice", 100)))

	// Another owner cannot delete it
	err := DeleteItinerary(ctx, db, "bob", "01A")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	require.NoError(t, DeleteItinerary(ctx, db, "alice", "01A"))

	_, err = GetItinerary(ctx, db, "alice", "01A")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	err = DeleteItinerary(ctx, db, "alice", "01A")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
