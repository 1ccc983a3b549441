package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

// unsetEnv clears key for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		dbPass  string
		missing string
	}{
		{name: "missing bot token", dbPass: "test_db_password", missing: "BOT_TOKEN"},
		{name: "missing db password", token: "test_token", missing: "DB_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, "BOT_TOKEN")
			unsetEnv(t, "DB_PASSWORD")
			unsetEnv(t, "GAME_CONFIG")
			if tt.token != "" {
				t.Setenv("BOT_TOKEN", tt.token)
			}
			if tt.dbPass != "" {
				t.Setenv("DB_PASSWORD", tt.dbPass)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("DB_PASSWORD", "test_db_password")

	// Unset optional fields to test defaults
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "VOCAB_FILE", "GAME_CONFIG"} {
		unsetEnv(t, key)
	}

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, "", cfg.VocabFile)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "wordballs", cfg.Database.Name)
	assert.Equal(t, "wordballs", cfg.Database.User)
	assert.Equal(t, DefaultGameConfig(), cfg.Game)
}

func TestLoadGameConfig(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		expected      GameConfig
		expectedError bool
	}{
		{
			name:    "partial file keeps other defaults",
			content: "autofill_delay_ms = 250\nauto_commit = false\n",
			expected: GameConfig{
				AutofillDelayMs:    250,
				AutoClearMs:        3000,
				AutoCommit:         false,
				DefaultLanguage:    "en",
				IdleTimeoutMinutes: 30,
			},
		},
		{
			name:    "full file",
			content: "autofill_delay_ms = 80\nauto_clear_ms = 0\nauto_commit = true\ndefault_language = \"tr\"\nidle_timeout_minutes = 5\n",
			expected: GameConfig{
				AutofillDelayMs:    80,
				AutoClearMs:        0,
				AutoCommit:         true,
				DefaultLanguage:    "tr",
				IdleTimeoutMinutes: 5,
			},
		},
		{
			name:          "malformed toml",
			content:       "autofill_delay_ms = \n",
			expectedError: true,
		},
		{
			name:          "non-positive delay",
			content:       "autofill_delay_ms = 0\n",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "game.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			game, err := LoadGameConfig(path)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, game)
			}
		})
	}
}

func TestLoadGameConfig_MissingFile(t *testing.T) {
	game, err := LoadGameConfig(filepath.Join(t.TempDir(), "absent.toml"))

	assert.NoError(t, err)
	assert.Equal(t, DefaultGameConfig(), game)
}

func TestGameConfig_Durations(t *testing.T) {
	game := DefaultGameConfig()

	assert.Equal(t, 100*time.Millisecond, game.AutofillDelay())
	assert.Equal(t, 3*time.Second, game.AutoClearDelay())
	assert.Equal(t, 30*time.Minute, game.IdleTimeout())
}
