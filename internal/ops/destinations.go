package ops

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/hpungsan/nobi/internal/config"
	"github.com/hpungsan/nobi/internal/db"
	"github.com/hpungsan/nobi/internal/destination"
	"github.com/hpungsan/nobi/internal/errors"
)

// Destination list sources.
const (
	SourceCache   = "cache"
	SourceNetwork = "network"
)

// DestinationsOutput contains the result of the destination operations.
type DestinationsOutput struct {
	Items []destination.Destination `json:"items"`

	// Source is "cache" when served from the local cache, "network" after a fresh fetch
	Source string `json:"source"`

	// Stale is true when a refresh failed and the cache was served instead
	Stale bool `json:"stale,omitempty"`

	// LastFetchAt is the Unix time of the last successful fetch, 0 if never
	LastFetchAt int64 `json:"last_fetch_at"`
}

// RefreshInput contains parameters for the RefreshDestinations operation.
type RefreshInput struct {
	// Force fetches even when the cache is still fresh
	Force bool
}

// ListDestinations returns the cached destinations without touching the network.
func ListDestinations(ctx context.Context, database *sql.DB) (*DestinationsOutput, error) {
	items, err := db.ListDestinations(ctx, database)
	if err != nil {
		return nil, err
	}
	at, _, err := db.LastFetch(ctx, database)
	if err != nil {
		return nil, err
	}

	return &DestinationsOutput{
		Items:       items,
		Source:      SourceCache,
		LastFetchAt: at,
	}, nil
}

// RefreshDestinations brings the destination cache up to date.
//
// A non-empty cache younger than the refresh interval is kept unless input.Force is set.
// Otherwise the source is queried and the cache replaced. When the fetch fails the
// existing cache is served and marked stale; with no cache the call fails with UNAVAILABLE.
func RefreshDestinations(ctx context.Context, database *sql.DB, src destination.Source, cfg *config.Config, input RefreshInput) (*DestinationsOutput, error) {
	log := zerolog.Ctx(ctx)

	count, err := db.CountDestinations(ctx, database)
	if err != nil {
		return nil, err
	}
	lastFetchAt, _, err := db.LastFetch(ctx, database)
	if err != nil {
		return nil, err
	}

	hasCache := count > 0
	if hasCache && !input.Force && isFresh(lastFetchAt, cfg.RefreshInterval()) {
		log.Debug().Int("count", count).Msg("destination cache is fresh")
		return ListDestinations(ctx, database)
	}

	fetched, err := fetchDestinations(ctx, src, cfg.DestinationLimit)
	if err != nil {
		if !hasCache {
			log.Error().Err(err).Msg("destination fetch failed with no cache")
			return nil, errors.NewUnavailable("destinations are unavailable: fetch failed and no cached data exists")
		}
		log.Warn().Err(err).Int("count", count).Msg("destination fetch failed, serving cache")
		cached, err := ListDestinations(ctx, database)
		if err != nil {
			return nil, err
		}
		cached.Stale = true
		return cached, nil
	}

	fetchedAt := now().Unix()
	if err := db.ReplaceDestinations(ctx, database, fetched, fetchedAt); err != nil {
		return nil, err
	}
	log.Info().Int("count", len(fetched)).Msg("destination cache refreshed")

	return &DestinationsOutput{
		Items:       fetched,
		Source:      SourceNetwork,
		LastFetchAt: fetchedAt,
	}, nil
}

func fetchDestinations(ctx context.Context, src destination.Source, limit int) ([]destination.Destination, error) {
	if src == nil {
		return nil, errors.NewUnavailable("no destination source configured")
	}
	items, err := src.Fetch(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.NewUpstream("countries", stderrors.New("empty country list"))
	}
	return items, nil
}

func isFresh(lastFetchAt int64, interval time.Duration) bool {
	if lastFetchAt == 0 {
		return false
	}
	return now().Sub(time.Unix(lastFetchAt, 0)) < interval
}
