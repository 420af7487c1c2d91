package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/bizmetrics/internal/analysis"
	"github.com/Veraticus/bizmetrics/internal/ingest"
	"github.com/Veraticus/bizmetrics/internal/llm"
	"github.com/Veraticus/bizmetrics/internal/salescsv"
	"github.com/Veraticus/bizmetrics/internal/sheets"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	Owner    string
	Database DatabaseConfig
	Logging  LoggingConfig
	LLM      llm.Config
	Sheets   sheets.Config
	Ingest   IngestConfig
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string
}

// LoggingConfig selects the global log level and handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// IngestConfig bounds CSV uploads.
type IngestConfig struct {
	MaxCSVLines int
	ChunkSize   int
}

// DefaultDatabasePath returns ~/.local/share/bizmetrics/bizmetrics.db.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bizmetrics.db"
	}
	return filepath.Join(home, ".local", "share", "bizmetrics", "bizmetrics.db")
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("owner", "default")
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("ingest.max_csv_lines", salescsv.DefaultMaxLines)
	v.SetDefault("ingest.chunk_size", ingest.DefaultChunkSize)

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.max_tokens", analysis.DefaultMaxTokens)
	v.SetDefault("llm.timeout", llm.DefaultTimeout)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.rate_limit", 0)

	sc := sheets.DefaultConfig()
	v.SetDefault("sheets.spreadsheet_name", sc.SpreadsheetName)
	v.SetDefault("sheets.time_zone", sc.TimeZone)
	v.SetDefault("sheets.batch_size", sc.BatchSize)
	v.SetDefault("sheets.retry_attempts", sc.RetryAttempts)
	v.SetDefault("sheets.retry_delay", sc.RetryDelay)
	v.SetDefault("sheets.enable_formatting", sc.EnableFormatting)
}

// Load resolves the configuration from v. Defaults must already be registered.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Owner: v.GetString("owner"),
		Database: DatabaseConfig{
			Path: ExpandPath(v.GetString("database.path")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Ingest: IngestConfig{
			MaxCSVLines: v.GetInt("ingest.max_csv_lines"),
			ChunkSize:   v.GetInt("ingest.chunk_size"),
		},
		LLM: llm.Config{
			Provider:    v.GetString("llm.provider"),
			APIKey:      v.GetString("llm.api_key"),
			Model:       v.GetString("llm.model"),
			BaseURL:     v.GetString("llm.base_url"),
			Timeout:     v.GetDuration("llm.timeout"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
			RateLimit:   v.GetInt("llm.rate_limit"),
			Temperature: v.GetFloat64("llm.temperature"),
		},
		Sheets: loadSheets(v),
	}

	if cfg.Owner == "" {
		return nil, fmt.Errorf("owner must not be empty")
	}
	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("database.path must not be empty")
	}
	if cfg.Ingest.MaxCSVLines < 0 {
		return nil, fmt.Errorf("ingest.max_csv_lines cannot be negative")
	}
	if cfg.Ingest.ChunkSize < 0 {
		return nil, fmt.Errorf("ingest.chunk_size cannot be negative")
	}
	if cfg.LLM.MaxTokens < 0 {
		return nil, fmt.Errorf("llm.max_tokens cannot be negative")
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = providerKeyFromEnv(cfg.LLM.Provider)
	}

	return cfg, nil
}

// providerKeyFromEnv falls back to each provider's conventional variable.
func providerKeyFromEnv(provider string) string {
	switch provider {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "gemini":
		if k := os.Getenv("GEMINI_API_KEY"); k != "" {
			return k
		}
		return os.Getenv("GOOGLE_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// loadSheets reads the sheets section, falling back to GOOGLE_SHEETS_* variables.
// It does not validate: export is optional and checks its own config.
func loadSheets(v *viper.Viper) sheets.Config {
	cfg := sheets.DefaultConfig()

	cfg.ServiceAccountPath = ExpandPath(v.GetString("sheets.service_account_path"))
	cfg.ClientID = v.GetString("sheets.client_id")
	cfg.ClientSecret = v.GetString("sheets.client_secret")
	cfg.RefreshToken = v.GetString("sheets.refresh_token")
	cfg.SpreadsheetID = v.GetString("sheets.spreadsheet_id")
	if name := v.GetString("sheets.spreadsheet_name"); name != "" {
		cfg.SpreadsheetName = name
	}
	if tz := v.GetString("sheets.time_zone"); tz != "" {
		cfg.TimeZone = tz
	}
	cfg.Endpoint = v.GetString("sheets.endpoint")
	if v.IsSet("sheets.batch_size") {
		cfg.BatchSize = v.GetInt("sheets.batch_size")
	}
	if v.IsSet("sheets.retry_attempts") {
		cfg.RetryAttempts = v.GetInt("sheets.retry_attempts")
	}
	if v.IsSet("sheets.retry_delay") {
		cfg.RetryDelay = v.GetDuration("sheets.retry_delay")
	}
	if v.IsSet("sheets.enable_formatting") {
		cfg.EnableFormatting = v.GetBool("sheets.enable_formatting")
	}

	if cfg.ServiceAccountPath == "" {
		cfg.ServiceAccountPath = ExpandPath(os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"))
	}
	if cfg.ClientID == "" {
		cfg.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if cfg.RefreshToken == "" {
		cfg.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}
	if cfg.SpreadsheetID == "" {
		cfg.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}

	return cfg
}
