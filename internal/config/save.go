package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/ironlog/internal/atomicfile"
)

type persistedConfig struct {
	DataDir      *string              `toml:"data_dir,omitempty"`
	MasterFile   *string              `toml:"master_file,omitempty"`
	LogsDir      *string              `toml:"logs_dir,omitempty"`
	RecentFile   *string              `toml:"recent_file,omitempty"`
	RecentLimit  *int                 `toml:"recent_limit,omitempty"`
	SessionStore *string              `toml:"session_store,omitempty"`
	SessionDB    *string              `toml:"session_db,omitempty"`
	Areas        []string             `toml:"areas,omitempty"`
	AllowedUser  *string              `toml:"allowed_user,omitempty"`
	UI           *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes the config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out := persistedConfig{
		DataDir:      nonEmptyPtr(cfg.DataDir),
		MasterFile:   nonEmptyPtr(cfg.MasterFile),
		LogsDir:      nonEmptyPtr(cfg.LogsDir),
		RecentFile:   nonEmptyPtr(cfg.RecentFile),
		SessionStore: nonEmptyPtr(cfg.SessionStore),
		SessionDB:    nonEmptyPtr(cfg.SessionDB),
		AllowedUser:  nonEmptyPtr(cfg.AllowedUser),
		Areas:        cfg.AreaLabels(),
	}
	if cfg.RecentLimit > 0 {
		limit := cfg.RecentLimit
		out.RecentLimit = &limit
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	codeTheme := nonEmptyPtr(cfg.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{
			Accent:    accent,
			CodeTheme: codeTheme,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := atomicfile.WriteString(path, buf.String()); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

const defaultConfig = `# ironlog configuration

# Directory holding workout_db.md, logs/ and recent_workouts.md
# data_dir = "~/ironlog"

# Document names, relative to data_dir
# master_file = "workout_db.md"
# logs_dir = "logs"
# recent_file = "recent_workouts.md"

# Number of dates kept in the recent digest
# recent_limit = 7

# Where capture sessions are kept between prompts: "memory" or "sqlite".
# sqlite lets an interrupted capture be resumed with 'ironlog capture --resume'.
# session_store = "memory"
# session_db = ".ironlog/sessions.db"

# Body-part areas offered by 'ironlog capture'
# areas = ["가슴", "등", "하체", "어깨", "이두", "삼두", "복근", "유산소"]

# Only this user id may start a capture (empty allows anyone)
# allowed_user = ""

# Optional UI accent color for headers in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

// CreateDefault writes a commented default config to path if no file exists
// there. It reports whether a file was created.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := atomicfile.WriteString(path, defaultConfig); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}
