package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig holds infrastructure config from standard env vars.
type AppConfig struct {
	SupabaseURL string
	ServiceKey  string
	JournalPath string // Local SQLite journal location
	SheetPath   string // Path to the YAML sheet mapping file
}

// SheetConfig describes where the data lives inside the workbook (from YAML).
type SheetConfig struct {
	Sheet      string  `yaml:"sheet"`       // empty = first worksheet
	HeaderRows int     `yaml:"header_rows"` // rows to skip before data
	Columns    Columns `yaml:"columns"`
}

// Columns maps each field to a spreadsheet column letter.
type Columns struct {
	Name         string `yaml:"name"`
	Price        string `yaml:"price"`
	Neighborhood string `yaml:"neighborhood"`
	GoogleRating string `yaml:"google_rating"`
	Cuisine      string `yaml:"cuisine"`
	Vibes        string `yaml:"vibes"`
	Sources      string `yaml:"sources"`
}

// GetAppConfig reads infrastructure settings from environment variables.
// A .env file in the working directory is honored if present.
func GetAppConfig() (AppConfig, error) {
	_ = godotenv.Load()

	journalPath := os.Getenv("DB_PATH")
	if journalPath == "" {
		journalPath = "./local-data/imports.db"
	}
	sheetPath := os.Getenv("SHEET_CONFIG_PATH")
	if sheetPath == "" {
		sheetPath = "mapping.yaml"
	}

	return AppConfig{
		SupabaseURL: os.Getenv("SUPABASE_URL"),
		ServiceKey:  os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		JournalPath: journalPath,
		SheetPath:   sheetPath,
	}, nil
}

// RequireCredentials fails when the Supabase env vars are missing.
// Dry runs never call this.
func (c AppConfig) RequireCredentials() error {
	if c.SupabaseURL == "" || c.ServiceKey == "" {
		return errors.New("missing SUPABASE_URL or SUPABASE_SERVICE_ROLE_KEY env vars")
	}
	return nil
}

// DefaultSheetConfig matches the layout of the curated workbook: a title row,
// a source row, a header row, then data in columns B..H.
func DefaultSheetConfig() *SheetConfig {
	return &SheetConfig{
		HeaderRows: 3,
		Columns: Columns{
			Name:         "B",
			Price:        "C",
			Neighborhood: "D",
			GoogleRating: "E",
			Cuisine:      "F",
			Vibes:        "G",
			Sources:      "H",
		},
	}
}

// LoadSheetConfig reads the YAML mapping file. A missing file falls back to
// the built-in default layout; a malformed one is an error.
func LoadSheetConfig(path string) (*SheetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSheetConfig(), nil
		}
		return nil, fmt.Errorf("failed to read sheet config at '%s': %w", path, err)
	}

	cfg := DefaultSheetConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML sheet config: %w", err)
	}
	if cfg.HeaderRows < 0 {
		return nil, fmt.Errorf("header_rows must not be negative (got %d)", cfg.HeaderRows)
	}
	return cfg, nil
}
