package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/nobi/internal/errors"
	"github.com/hpungsan/nobi/internal/ops"
	"github.com/hpungsan/nobi/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(deps *appDeps) *cli.App {
	app := &cli.App{
		Name:    "nobi",
		Usage:   "Travel itinerary planner",
		Version: Version,
		Commands: []*cli.Command{
			parseCmd(deps),
			planCmd(deps),
			saveCmd(deps),
			listCmd(deps),
			fetchCmd(deps),
			deleteCmd(deps),
			destinationsCmd(deps),
			serveCmd(deps),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// tripFlags are shared by commands that describe a trip.
func tripFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "destination", Aliases: []string{"d"}, Usage: "Destination name"},
		&cli.StringFlag{Name: "start", Usage: "Start date (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "end", Usage: "End date (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "interests", Aliases: []string{"i"}, Usage: "Comma-separated interests"},
	}
}

// parseCmd creates the parse command.
func parseCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:  "parse",
		Usage: "Structure raw itinerary text into day cards (reads text from stdin)",
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("itinerary text must be piped via stdin"))
			}
			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if strings.TrimSpace(text) == "" {
				return outputError(errors.NewInvalidRequest("itinerary text is required"))
			}

			output, err := ops.Parse(deps.cfg, ops.ParseInput{Text: text})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// planOutput is the result of the plan command.
type planOutput struct {
	*ops.GenerateOutput
	Saved *ops.SaveOutput `json:"saved,omitempty"`
}

// planCmd creates the plan command.
func planCmd(deps *appDeps) *cli.Command {
	flags := append(tripFlags(),
		&cli.BoolFlag{Name: "save", Usage: "Save the generated itinerary"},
		&cli.StringFlag{Name: "owner", Aliases: []string{"o"}, Usage: "Owner to save under (with --save)"},
	)
	return &cli.Command{
		Name:  "plan",
		Usage: "Generate an itinerary with the language model",
		Flags: flags,
		Action: func(c *cli.Context) error {
			if c.Bool("save") {
				if _, err := ops.ValidateOwner(c.String("owner")); err != nil {
					return outputError(err)
				}
			}

			ctx := deps.logger.WithContext(c.Context)
			generated, err := ops.Generate(ctx, deps.gen, ops.GenerateInput{
				Destination: c.String("destination"),
				StartDate:   c.String("start"),
				EndDate:     c.String("end"),
				Interests:   parseInterests(c.String("interests")),
			})
			if err != nil {
				return outputError(err)
			}

			out := planOutput{GenerateOutput: generated}
			if c.Bool("save") {
				saved, err := ops.Save(ctx, deps.db, deps.cfg, ops.SaveInput{
					Owner:         c.String("owner"),
					Destination:   generated.Destination,
					StartDate:     generated.StartDate,
					EndDate:       generated.EndDate,
					Interests:     generated.Interests,
					ItineraryText: generated.ItineraryText,
				})
				if err != nil {
					return outputError(err)
				}
				out.Saved = saved
			}
			return outputJSON(out)
		},
	}
}

// saveCmd creates the save command.
func saveCmd(deps *appDeps) *cli.Command {
	flags := append(tripFlags(),
		&cli.StringFlag{Name: "owner", Aliases: []string{"o"}, Usage: "Owner identifier"},
	)
	return &cli.Command{
		Name:  "save",
		Usage: "Save an itinerary (reads itinerary text from stdin)",
		Flags: flags,
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("itinerary text must be piped via stdin"))
			}
			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if strings.TrimSpace(text) == "" {
				return outputError(errors.NewInvalidRequest("itinerary text is required"))
			}

			output, err := ops.Save(c.Context, deps.db, deps.cfg, ops.SaveInput{
				Owner:         c.String("owner"),
				Destination:   c.String("destination"),
				StartDate:     c.String("start"),
				EndDate:       c.String("end"),
				Interests:     parseInterests(c.String("interests")),
				ItineraryText: text,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List an owner's saved itineraries, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Aliases: []string{"o"}, Usage: "Owner identifier"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Value: 0, Usage: "Number of items to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(c.Context, deps.db, ops.ListInput{
				Owner:  c.String("owner"),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a saved itinerary with its parsed day cards",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Aliases: []string{"o"}, Usage: "Owner identifier"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Fetch(c.Context, deps.db, ops.FetchInput{
				Owner: c.String("owner"),
				ID:    c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a saved itinerary",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "owner", Aliases: []string{"o"}, Usage: "Owner identifier"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Delete(c.Context, deps.db, ops.DeleteInput{
				Owner: c.String("owner"),
				ID:    c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// destinationsCmd creates the destinations command group.
func destinationsCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:  "destinations",
		Usage: "Show or refresh the cached destination list",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show cached destinations without touching the network",
				Action: func(c *cli.Context) error {
					output, err := ops.ListDestinations(c.Context, deps.db)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "refresh",
				Usage: "Fetch destinations when the cache is empty or stale",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Fetch even if the cache is fresh"},
				},
				Action: func(c *cli.Context) error {
					ctx := deps.logger.WithContext(c.Context)
					output, err := ops.RefreshDestinations(ctx, deps.db, deps.src, deps.cfg, ops.RefreshInput{
						Force: c.Bool("force"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(deps *appDeps) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8080, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv, err := web.NewServer(web.Options{
				DB:      deps.db,
				Config:  deps.cfg,
				Source:  deps.src,
				Logger:  deps.logger,
				Version: Version,
				Bind:    c.String("bind"),
				Port:    c.Int("port"),
			})
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			return web.Run(srv, deps.logger)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if nErr, ok := errors.As(err); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", nErr.Code, nErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin, untrimmed.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseInterests splits a comma-separated string into a slice of interests.
func parseInterests(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	interests := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			interests = append(interests, t)
		}
	}
	return interests
}
