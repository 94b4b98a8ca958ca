package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/hpungsan/nobi/internal/config"
	"github.com/hpungsan/nobi/internal/destination"
	"github.com/hpungsan/nobi/internal/errors"
	"github.com/hpungsan/nobi/internal/llm"
	"github.com/hpungsan/nobi/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
	gen llm.Generator
	src destination.Source
	log zerolog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps Deps) *Handlers {
	return &Handlers{
		db:  deps.DB,
		cfg: deps.Config,
		gen: deps.Generator,
		src: deps.Source,
		log: deps.Logger,
	}
}

// Request types for each tool

// ParseRequest represents the arguments for itinerary_parse.
type ParseRequest struct {
	Text string `json:"text"`
}

// TripRequest represents the trip fields shared by generate and save.
type TripRequest struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Interests   []string `json:"interests"`
}

// SaveRequest represents the arguments for itinerary_save.
type SaveRequest struct {
	TripRequest
	Owner         string `json:"owner"`
	ItineraryText string `json:"itinerary_text"`
}

// ListRequest represents the arguments for itinerary_list.
type ListRequest struct {
	Owner  string `json:"owner"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// AddressRequest represents the arguments for itinerary_fetch and itinerary_delete.
type AddressRequest struct {
	Owner string `json:"owner"`
	ID    string `json:"id"`
}

// RefreshRequest represents the arguments for destination_refresh.
type RefreshRequest struct {
	Force bool `json:"force,omitempty"`
}

// withLogger attaches the handler logger, tagged with the tool name, to ctx.
func (h *Handlers) withLogger(ctx context.Context, req mcp.CallToolRequest) context.Context {
	return h.log.With().Str("tool", req.Params.Name).Logger().WithContext(ctx)
}

// Handler implementations

// HandleParse handles the itinerary_parse tool call.
func (h *Handlers) HandleParse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ParseRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Parse(h.cfg, ops.ParseInput{Text: input.Text})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGenerate handles the itinerary_generate tool call.
func (h *Handlers) HandleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = h.withLogger(ctx, req)

	input, err := decode[TripRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Generate(ctx, h.gen, ops.GenerateInput{
		Destination: input.Destination,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Interests:   input.Interests,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSave handles the itinerary_save tool call.
func (h *Handlers) HandleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = h.withLogger(ctx, req)

	input, err := decode[SaveRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Save(ctx, h.db, h.cfg, ops.SaveInput{
		Owner:         input.Owner,
		Destination:   input.Destination,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Interests:     input.Interests,
		ItineraryText: input.ItineraryText,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the itinerary_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.List(h.withLogger(ctx, req), h.db, ops.ListInput{
		Owner:  input.Owner,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFetch handles the itinerary_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddressRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Fetch(h.withLogger(ctx, req), h.db, ops.FetchInput{Owner: input.Owner, ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the itinerary_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddressRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Delete(h.withLogger(ctx, req), h.db, ops.DeleteInput{Owner: input.Owner, ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDestinationList handles the destination_list tool call.
func (h *Handlers) HandleDestinationList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListDestinations(h.withLogger(ctx, req), h.db)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDestinationRefresh handles the destination_refresh tool call.
func (h *Handlers) HandleDestinationRefresh(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RefreshRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.RefreshDestinations(h.withLogger(ctx, req), h.db, h.src, h.cfg, ops.RefreshInput{Force: input.Force})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if nErr, ok := errors.As(err); ok {
		msg := nErr.Message
		// Keep wrapper context such as "refresh: ..." from fmt.Errorf chains
		if err != error(nErr) {
			msg = err.Error()
		}
		errorObj := map[string]any{
			"code":    nErr.Code,
			"message": msg,
			"status":  nErr.Status,
		}
		if nErr.Code != errors.ErrInternal && nErr.Details != nil {
			errorObj["details"] = nErr.Details
		}
		if nErr.Code == errors.ErrInternal {
			errorObj["message"] = "an internal error occurred"
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result with JSON content.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
