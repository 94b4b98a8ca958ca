package web

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hpungsan/nobi/internal/config"
	"github.com/hpungsan/nobi/internal/destination"
	"github.com/hpungsan/nobi/internal/errors"
	"github.com/hpungsan/nobi/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	src      destination.Source
	renderer *Renderer
}

// HandleDestinations handles GET /destinations, the browsable destination cards.
// A stale cache is refreshed on the way; failures fall back to the cache.
func (h *Handlers) HandleDestinations(w http.ResponseWriter, r *http.Request) {
	var (
		result *ops.DestinationsOutput
		err    error
	)
	if h.src != nil {
		result, err = ops.RefreshDestinations(r.Context(), h.db, h.src, h.cfg, ops.RefreshInput{})
	} else {
		result, err = ops.ListDestinations(r.Context(), h.db)
	}
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderDestinations(w, r, result)
}

// HandleRefreshDestinations handles POST /destinations/refresh, a forced refresh.
func (h *Handlers) HandleRefreshDestinations(w http.ResponseWriter, r *http.Request) {
	result, err := ops.RefreshDestinations(r.Context(), h.db, h.src, h.cfg, ops.RefreshInput{Force: true})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderDestinations(w, r, result)
}

func (h *Handlers) renderDestinations(w http.ResponseWriter, r *http.Request, result *ops.DestinationsOutput) {
	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "destinations", DestinationsPageData{
		PageData:    h.renderer.page("Destinations", "destinations"),
		Items:       result.Items,
		Source:      result.Source,
		Stale:       result.Stale,
		LastFetchAt: result.LastFetchAt,
	})
}

// HandleList handles GET /itineraries?owner=, an owner's saved itineraries.
// Without an owner the page only shows the owner form.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	owner := strings.TrimSpace(r.URL.Query().Get("owner"))

	data := ListPageData{
		PageData: h.renderer.page("Itineraries", "itineraries"),
		Owner:    owner,
	}

	if owner == "" {
		if wantsJSON(r) {
			h.renderer.renderError(w, r, errors.NewInvalidRequest("owner is required"))
			return
		}
		h.renderer.renderPage(w, r, "list", data)
		return
	}

	result, err := ops.List(r.Context(), h.db, ops.ListInput{
		Owner:  owner,
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	data.Items = result.Items
	data.Pagination = result.Pagination
	h.renderer.renderPage(w, r, "list", data)
}

// HandleDetail handles GET /itineraries/{id}?owner=, one itinerary as day cards.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Fetch(r.Context(), h.db, ops.FetchInput{
		Owner: r.URL.Query().Get("owner"),
		ID:    chi.URLParam(r, "id"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	var intro template.HTML
	if strings.TrimSpace(result.Parsed.Intro) != "" {
		intro = renderMarkdown(result.Parsed.Intro)
	}

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData:  h.renderer.page(result.Destination, "itineraries"),
		Itinerary: result,
		Intro:     intro,
		Days:      dayViews(result.Parsed),
	})
}

// HandleDelete handles DELETE /itineraries/{id}?owner= and the POST form fallback.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" && r.Method == http.MethodPost {
		owner = r.PostFormValue("owner")
	}

	result, err := ops.Delete(r.Context(), h.db, ops.DeleteInput{
		Owner: owner,
		ID:    chi.URLParam(r, "id"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	listURL := "/itineraries?owner=" + url.QueryEscape(strings.TrimSpace(owner))

	// HTMX request: redirect via HX-Redirect header
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", listURL)
		w.WriteHeader(http.StatusOK)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	http.Redirect(w, r, listURL, http.StatusFound)
}

// parseRequest is the JSON body of POST /api/parse.
type parseRequest struct {
	Text string `json:"text"`
}

// HandleParse handles POST /api/parse, raw itinerary text in, structured JSON out.
func (h *Handlers) HandleParse(w http.ResponseWriter, r *http.Request) {
	if h.cfg.ItineraryMaxChars > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxParseBodyBytes(h.cfg.ItineraryMaxChars))
	}

	var body parseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			h.renderer.renderError(w, r, errors.NewBodyTooLarge(tooLarge.Limit))
			return
		}
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid JSON body: "+err.Error()))
		return
	}

	result, err := ops.Parse(h.cfg, ops.ParseInput{Text: body.Text})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// maxParseBodyBytes is the body cap for POST /api/parse. A JSON-escaped rune
// outside the BMP is a surrogate pair of \uXXXX escapes, 12 bytes; the
// character limit itself is enforced by ops.Parse.
func maxParseBodyBytes(maxChars int) int64 {
	return int64(maxChars)*12 + 1024
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
