package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DirName is the name of both the global (~/.stash) and repo (.stash) config directories.
const DirName = ".stash"

// Config holds application configuration.
type Config struct {
	// AutoTagLimit caps the tags assigned automatically when an item is saved.
	AutoTagLimit int `json:"auto_tag_limit"`

	// SuggestTagLimit caps the tags offered by the "edit tags" suggestion surface.
	SuggestTagLimit int `json:"suggest_tag_limit"`

	// InlineSuggestLimit caps the inline "add one more" suggestion.
	InlineSuggestLimit int `json:"inline_suggest_limit"`

	// PreviewTimeoutMS bounds the link-preview fetch made while answering a question.
	PreviewTimeoutMS int `json:"preview_timeout_ms"`

	// DisablePreviewFetch skips the network entirely; links always get a placeholder image.
	DisablePreviewFetch bool `json:"disable_preview_fetch,omitempty"`

	// LogLevel is one of debug, info, warn, error. Logs go to stderr.
	LogLevel string `json:"log_level,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is locked" errors).
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes disables every tool of a type. Known types: "item", "tag".
	DisabledTypes []string `json:"disabled_types,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AutoTagLimit:       1,
		SuggestTagLimit:    2,
		InlineSuggestLimit: 1,
		PreviewTimeoutMS:   3000,
		LogLevel:           "warn",
	}
}

// PreviewTimeout returns PreviewTimeoutMS as a duration.
func (c *Config) PreviewTimeout() time.Duration {
	return time.Duration(c.PreviewTimeoutMS) * time.Millisecond
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// LoadWithRepo loads the global config from globalDir and the nearest repo
// config found walking upward from startDir, and layers defaults, global,
// then repo. Either file may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig returns the path of the nearest .stash/config.json at or
// above startDir, or "" if there is none.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, DirName, "config.json")
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

// loadFileRaw returns a zero-valued config (not defaults) for a missing file.
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

// Merge combines base and overlay configs.
// Scalars: overlay wins if non-zero. Booleans: OR. Arrays: merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	return &Config{
		AutoTagLimit:        pickInt(overlay.AutoTagLimit, base.AutoTagLimit),
		SuggestTagLimit:     pickInt(overlay.SuggestTagLimit, base.SuggestTagLimit),
		InlineSuggestLimit:  pickInt(overlay.InlineSuggestLimit, base.InlineSuggestLimit),
		PreviewTimeoutMS:    pickInt(overlay.PreviewTimeoutMS, base.PreviewTimeoutMS),
		DisablePreviewFetch: base.DisablePreviewFetch || overlay.DisablePreviewFetch,
		LogLevel:            pickString(overlay.LogLevel, base.LogLevel),
		DBMaxOpenConns:      pickInt(overlay.DBMaxOpenConns, base.DBMaxOpenConns),
		DBMaxIdleConns:      pickInt(overlay.DBMaxIdleConns, base.DBMaxIdleConns),
		DisabledTools:       mergeStringSlice(base.DisabledTools, overlay.DisabledTools),
		DisabledTypes:       mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes),
	}
}

func pickInt(overlay, base int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

func pickString(overlay, base string) string {
	if s := strings.TrimSpace(overlay); s != "" {
		return s
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
