package destination

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/nobi/internal/errors"
)

func country(name, region, flag string, capitals ...string) Country {
	var c Country
	c.Name.Common = name
	c.Region = region
	c.Flags.PNG = flag
	c.Capital = capitals
	return c
}

func TestFromCountry(t *testing.T) {
	got := FromCountry(country("Japan", "Asia", "https://flags/jp.png", "Tokyo"))

	assert.Equal(t, Destination{
		Title:       "Japan",
		Subtitle:    "Tokyo",
		Description: "Discover Japan, a vibrant destination in Asia.",
		Location:    "Asia",
		ImageURL:    "https://flags/jp.png",
	}, got)
}

func TestFromCountry_MultipleCapitals(t *testing.T) {
	got := FromCountry(country("South Africa", "Africa", "", "Pretoria", "Bloemfontein", "Cape Town"))
	assert.Equal(t, "Pretoria, Bloemfontein, Cape Town", got.Subtitle)
}

func TestFromCountry_MissingFields(t *testing.T) {
	got := FromCountry(country("Antarctica", "", ""))

	assert.Equal(t, "Explore Antarctica", got.Subtitle)
	assert.Equal(t, "Discover Antarctica, a vibrant destination in the world.", got.Description)
	assert.Equal(t, "Unknown", got.Location)
}

const countriesJSON = `[
  {"name":{"common":"Japan","official":"Japan"},"capital":["Tokyo"],"region":"Asia","flags":{"png":"jp.png","svg":"jp.svg"},"population":125000000},
  {"name":{"common":"Peru"},"capital":["Lima"],"region":"Americas","flags":{"png":"pe.png"},"population":33000000},
  {"name":{"common":""},"region":"Nowhere"},
  {"name":{"common":"Japan"},"capital":["Kyoto"],"region":"Asia"},
  {"name":{"common":"Kenya"},"capital":[],"region":"Africa","flags":{"png":"ke.png"}}
]`

func TestClient_Fetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/all", r.URL.Path)
		gotQuery = r.URL.Query().Get("fields")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(countriesJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	got, err := c.Fetch(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, "name,capital,region,flags,population", gotQuery)
	require.Len(t, got, 3)
	assert.Equal(t, "Japan", got[0].Title)
	assert.Equal(t, "Tokyo", got[0].Subtitle)
	assert.Equal(t, "Peru", got[1].Title)
	assert.Equal(t, "Explore Kenya", got[2].Subtitle)
}

func TestClient_FetchLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(countriesJSON))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).Fetch(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Japan", got[0].Title)
}

func TestClient_FetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUpstream))
}

func TestClient_FetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":404}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background(), 10)
	assert.True(t, errors.Is(err, errors.ErrUpstream))
}

func TestClient_FetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Fetch(context.Background(), 10)
	assert.True(t, errors.Is(err, errors.ErrUpstream))
}
