package mcp

import "github.com/mark3labs/mcp-go/mcp"

var parseToolDef = mcp.NewTool("itinerary_parse",
	mcp.WithDescription("Parse raw itinerary text into an intro and ordered day blocks. "+
		"Day headings look like \"Day N: Theme\"; inside a day, **Bold** lines start named sections. "+
		"Text with no day headings becomes a single \"Day 1:\" block."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Raw itinerary text, typically model output"),
	),
	mcp.WithReadOnlyHintAnnotation(true),
)

var generateToolDef = mcp.NewTool("itinerary_generate",
	mcp.WithDescription("Generate an itinerary for a trip with the configured model and return the raw text plus its parsed form. Does not save."),
	mcp.WithString("destination",
		mcp.Required(),
		mcp.Description("Where the trip goes"),
	),
	mcp.WithString("start_date",
		mcp.Required(),
		mcp.Description("First day of the trip, YYYY-MM-DD"),
	),
	mcp.WithString("end_date",
		mcp.Required(),
		mcp.Description("Last day of the trip, YYYY-MM-DD, not before start_date"),
	),
	mcp.WithArray("interests",
		mcp.Required(),
		mcp.Description("Focus areas, e.g. History, Food, Adventure, Art, Nature, Shopping"),
		mcp.WithStringItems(),
	),
)

var saveToolDef = mcp.NewTool("itinerary_save",
	mcp.WithDescription("Save itinerary text for an owner. The text is stored as-is and parsed on fetch."),
	mcp.WithString("owner",
		mcp.Required(),
		mcp.Description("Owner identifier"),
	),
	mcp.WithString("destination", mcp.Required(), mcp.Description("Trip destination")),
	mcp.WithString("start_date", mcp.Required(), mcp.Description("YYYY-MM-DD")),
	mcp.WithString("end_date", mcp.Required(), mcp.Description("YYYY-MM-DD")),
	mcp.WithArray("interests",
		mcp.Required(),
		mcp.Description("Focus areas the itinerary was generated for"),
		mcp.WithStringItems(),
	),
	mcp.WithString("itinerary_text",
		mcp.Required(),
		mcp.Description("Raw itinerary text"),
	),
)

var listToolDef = mcp.NewTool("itinerary_list",
	mcp.WithDescription("List an owner's saved itineraries, newest first, without their text."),
	mcp.WithString("owner", mcp.Required(), mcp.Description("Owner identifier")),
	mcp.WithNumber("limit", mcp.Description("Page size (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Items to skip (default 0)")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var fetchToolDef = mcp.NewTool("itinerary_fetch",
	mcp.WithDescription("Fetch one of an owner's itineraries with its raw text and parsed day blocks."),
	mcp.WithString("owner", mcp.Required(), mcp.Description("Owner identifier")),
	mcp.WithString("id", mcp.Required(), mcp.Description("Itinerary ID")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var deleteToolDef = mcp.NewTool("itinerary_delete",
	mcp.WithDescription("Permanently delete one of an owner's itineraries."),
	mcp.WithString("owner", mcp.Required(), mcp.Description("Owner identifier")),
	mcp.WithString("id", mcp.Required(), mcp.Description("Itinerary ID")),
	mcp.WithDestructiveHintAnnotation(true),
)

var destinationListToolDef = mcp.NewTool("destination_list",
	mcp.WithDescription("List cached destinations without contacting the network."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var destinationRefreshToolDef = mcp.NewTool("destination_refresh",
	mcp.WithDescription("Refresh the destination cache from the countries API when it is stale. "+
		"On failure the existing cache is returned and marked stale."),
	mcp.WithBoolean("force", mcp.Description("Fetch even when the cache is still fresh")),
)
