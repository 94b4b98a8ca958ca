package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/hpungsan/nobi/internal/config"
	"github.com/hpungsan/nobi/internal/db"
	"github.com/hpungsan/nobi/internal/destination"
	"github.com/hpungsan/nobi/internal/llm"
	"github.com/hpungsan/nobi/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"parse": true, "plan": true, "save": true,
	"list": true, "fetch": true, "delete": true,
	"destinations": true, "serve": true,
	"help": true,
}

// appDeps carries the runtime dependencies shared by CLI commands.
type appDeps struct {
	db     *sql.DB
	cfg    *config.Config
	gen    llm.Generator // nil when no API key is configured
	src    destination.Source
	logger zerolog.Logger
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v"
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if the file is a terminal (not piped).
func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   _  __     __   _
  / |/ /__  / /  (_)
 /    / _ \/ _ \/ /
/_/|_/\___/_.__/_/

  Travel itinerary planner

  Usage: nobi <command> [options]
         nobi --help

  MCP server mode requires piped input.`)
}

// newLogger builds the process logger. Logs always go to stderr so stdout
// stays clean for JSON output and the MCP stdio transport.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if isTerminal(os.Stderr) {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(lvl).With().Timestamp().Str("app", "nobi").Logger()
}

// newGenerator returns the Gemini generator, or nil when no API key is set.
func newGenerator(ctx context.Context, cfg *config.Config, logger zerolog.Logger) llm.Generator {
	gen, err := llm.NewGemini(ctx, llm.Options{Model: cfg.Model})
	if err != nil {
		logger.Debug().Err(err).Msg("itinerary generation disabled")
		return nil
	}
	return gen
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal(os.Stdin) {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		app := newCLIApp(&appDeps{logger: zerolog.Nop()})
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// A missing .env is fine; the environment may already carry the key.
	_ = godotenv.Load()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}
	baseDir := filepath.Join(homeDir, ".nobi")

	cwd, err := os.Getwd()
	if err != nil {
		cwd = baseDir
	}

	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	ctx := logger.WithContext(context.Background())

	database, err := db.Init(baseDir)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize database")
		os.Exit(1)
	}
	defer database.Close()
	db.ConfigurePool(database, cfg)

	for _, name := range mcp.ValidateDisabledTools(cfg.DisabledTools) {
		logger.Warn().Str("tool", name).Msg("unknown tool in disabled_tools")
	}
	for _, name := range mcp.ValidateDisabledTypes(cfg.DisabledTypes) {
		logger.Warn().Str("type", name).Msg("unknown type in disabled_types")
	}

	deps := &appDeps{
		db:     database,
		cfg:    cfg,
		gen:    newGenerator(ctx, cfg, logger),
		src:    destination.NewClient(cfg.CountriesURL),
		logger: logger,
	}

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(deps)
		if err := app.RunContext(ctx, os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			database.Close()
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal(os.Stdin) {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'nobi --help' for usage.\n")
		database.Close()
		os.Exit(1)
	}

	// MCP server mode (default)
	err = mcp.Run(mcp.Deps{
		DB:        deps.db,
		Config:    deps.cfg,
		Generator: deps.gen,
		Source:    deps.src,
		Logger:    deps.logger,
	}, Version)
	if err != nil {
		logger.Error().Err(err).Msg("mcp server stopped")
		database.Close()
		os.Exit(1)
	}
}
