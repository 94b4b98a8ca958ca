package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	// ItineraryMaxChars is the maximum character count for saved itinerary text
	ItineraryMaxChars int `json:"itinerary_max_chars"`

	// Model is the generative model used to write itineraries.
	Model string `json:"model,omitempty"`

	// CountriesURL is the base URL of the REST Countries v3.1 API.
	CountriesURL string `json:"countries_url,omitempty"`

	// DestinationLimit is how many countries are kept in the destination cache.
	DestinationLimit int `json:"destination_limit,omitempty"`

	// RefreshIntervalHours is how long a destination cache stays fresh.
	// A refresh inside this window keeps the cache unless forced.
	RefreshIntervalHours int `json:"refresh_interval_hours,omitempty"`

	// LogLevel is a zerolog level name: debug, info, warn, error, disabled.
	LogLevel string `json:"log_level,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is locked" errors).
	// 0 means use sql.DB default (unlimited). Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes is a list of type names to disable entirely.
	// Known types: "itinerary", "destination".
	DisabledTypes []string `json:"disabled_types,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ItineraryMaxChars:    20000,
		Model:                "gemini-2.0-flash",
		CountriesURL:         "https://restcountries.com/v3.1",
		DestinationLimit:     10,
		RefreshIntervalHours: 24,
		LogLevel:             "info",
	}
}

// RefreshInterval returns RefreshIntervalHours as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalHours) * time.Hour
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.nobi.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.nobi) and repo (.nobi) directories.
// Repo config is found by walking upward from startDir to find the nearest .nobi/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .nobi/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".nobi", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	return &Config{
		ItineraryMaxChars:    firstInt(overlay.ItineraryMaxChars, base.ItineraryMaxChars),
		Model:                firstString(overlay.Model, base.Model),
		CountriesURL:         firstString(overlay.CountriesURL, base.CountriesURL),
		DestinationLimit:     firstInt(overlay.DestinationLimit, base.DestinationLimit),
		RefreshIntervalHours: firstInt(overlay.RefreshIntervalHours, base.RefreshIntervalHours),
		LogLevel:             firstString(overlay.LogLevel, base.LogLevel),
		DBMaxOpenConns:       firstInt(overlay.DBMaxOpenConns, base.DBMaxOpenConns),
		DBMaxIdleConns:       firstInt(overlay.DBMaxIdleConns, base.DBMaxIdleConns),
		DisabledTools:        mergeStringSlice(base.DisabledTools, overlay.DisabledTools),
		DisabledTypes:        mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes),
	}
}

// firstInt returns overlay if non-zero, else base.
func firstInt(overlay, base int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

// firstString returns overlay if non-blank, else base.
func firstString(overlay, base string) string {
	if strings.TrimSpace(overlay) != "" {
		return strings.TrimSpace(overlay)
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
