package db

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/nobi/internal/destination"
	"github.com/hpungsan/nobi/internal/errors"
)

func testDestinations(titles ...string) []destination.Destination {
	out := make([]destination.Destination, len(titles))
	for i, title := range titles {
		out[i] = destination.Destination{
			Title:       title,
			Subtitle:    "Explore " + title,
			Description: "Discover " + title + ", a vibrant destination in the world.",
			Location:    "Unknown",
			ImageURL:    "https://example.com/" + title + ".png",
		}
	}
	return out
}

func TestDestinations_EmptyCache(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	got, err := ListDestinations(ctx, db)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	n, err := CountDestinations(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, ok, err := LastFetch(ctx, db)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReplaceDestinations(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, ReplaceDestinations(ctx, db, testDestinations("Peru", "Chile", "Japan"), 1000))
	require.NoError(t, ReplaceDestinations(ctx, db, testDestinations("Kenya", "Fiji"), 2000))

	got, err := ListDestinations(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, testDestinations("Kenya", "Fiji"), got)

	n, err := CountDestinations(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	at, ok, err := LastFetch(ctx, db)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2000), at)
}

func TestReplaceDestinations_RollsBackOnInsertFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM destinations").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT OR REPLACE INTO destinations").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT OR REPLACE INTO destinations").WillReturnError(stderrors.New("disk full"))
	mock.ExpectRollback()

	err = ReplaceDestinations(context.Background(), mockDB, testDestinations("Peru", "Chile"), 1000)
	assert.True(t, errors.Is(err, errors.ErrInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceDestinations_RollsBackOnMetaFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM destinations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT OR REPLACE INTO destinations").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO meta").WillReturnError(stderrors.New("locked"))
	mock.ExpectRollback()

	err = ReplaceDestinations(context.Background(), mockDB, testDestinations("Peru"), 1000)
	assert.True(t, errors.Is(err, errors.ErrInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceDestinations_Commits(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM destinations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO meta").
		WithArgs(metaLastFetch, "42").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, ReplaceDestinations(context.Background(), mockDB, nil, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}
