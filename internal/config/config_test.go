package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "")

	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.Owner)
	assert.Equal(t, DefaultDatabasePath(), cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 50000, cfg.Ingest.MaxCSVLines)
	assert.Equal(t, 500, cfg.Ingest.ChunkSize)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 1000, cfg.LLM.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Equal(t, "America/Sao_Paulo", cfg.Sheets.TimeZone)
	assert.True(t, cfg.Sheets.EnableFormatting)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
owner: loja-centro
database:
  path: /tmp/sales.db
ingest:
  max_csv_lines: 100
llm:
  provider: anthropic
  model: claude-3-5-haiku-latest
  api_key: sk-test
  rate_limit: 30
sheets:
  service_account_path: /keys/sa.json
  spreadsheet_id: abc123
  batch_size: 250
  retry_delay: 2s
`), 0600))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "loja-centro", cfg.Owner)
	assert.Equal(t, "/tmp/sales.db", cfg.Database.Path)
	assert.Equal(t, 100, cfg.Ingest.MaxCSVLines)
	assert.Equal(t, 500, cfg.Ingest.ChunkSize)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 30, cfg.LLM.RateLimit)
	assert.Equal(t, "/keys/sa.json", cfg.Sheets.ServiceAccountPath)
	assert.Equal(t, "abc123", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, 250, cfg.Sheets.BatchSize)
	assert.Equal(t, 2*time.Second, cfg.Sheets.RetryDelay)
	assert.NoError(t, cfg.Sheets.Validate())
}

func TestLoad_EnvFallbacks(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "from-env")
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "client")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "refresh")
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")

	v := newViper()
	v.Set("llm.provider", "anthropic")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.LLM.APIKey)
	assert.Equal(t, "client", cfg.Sheets.ClientID)
	assert.NoError(t, cfg.Sheets.Validate())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  any
		errMsg string
	}{
		{name: "empty owner", key: "owner", value: "", errMsg: "owner"},
		{name: "empty database path", key: "database.path", value: "", errMsg: "database.path"},
		{name: "negative line limit", key: "ingest.max_csv_lines", value: -1, errMsg: "max_csv_lines"},
		{name: "negative chunk size", key: "ingest.chunk_size", value: -5, errMsg: "chunk_size"},
		{name: "negative max tokens", key: "llm.max_tokens", value: -1, errMsg: "max_tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("BIZ_DIR", "/data")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "db.sqlite"), ExpandPath("~/db.sqlite"))
	assert.Equal(t, "/data/db.sqlite", ExpandPath("$BIZ_DIR/db.sqlite"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
}
