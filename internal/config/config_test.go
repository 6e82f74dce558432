package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"jobs_file": "jobs.json",
		"max_pages": 5,
		"scrape_mnc": true,
		"match_threshold": 60,
		"results_dir": "out",
		"telegram_chat_id": 12345,
		"cron_spec": "0 9 * * *"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "jobs.json", cfg.JobsFile)
	assert.Equal(t, 5, cfg.MaxPages)
	assert.True(t, cfg.ScrapeMNC)
	assert.Equal(t, 60.0, cfg.MatchThreshold)
	assert.Equal(t, "out", cfg.ResultsDir)
	assert.Equal(t, int64(12345), cfg.TelegramChatID)
	assert.Equal(t, "0 9 * * *", cfg.CronSpec)
}

func TestLoadErrors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := Load("")
		assert.ErrorContains(t, err, "config path is empty")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeConfig(t, "{not json")
		_, err := Load(path)
		assert.ErrorContains(t, err, "failed to parse config JSON")
	})
}

func TestValidate(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		cfg := &Config{}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("max pages out of range", func(t *testing.T) {
		cfg := &Config{MaxPages: 100}
		assert.ErrorContains(t, cfg.Validate(), "config error")
	})

	t.Run("threshold out of range", func(t *testing.T) {
		cfg := &Config{MatchThreshold: 120}
		assert.ErrorContains(t, cfg.Validate(), "config error")
	})

	t.Run("missing resume file", func(t *testing.T) {
		cfg := &Config{Resume: filepath.Join(t.TempDir(), "resume.txt")}
		assert.ErrorContains(t, cfg.Validate(), "resume file not found")
	})

	t.Run("existing referenced files", func(t *testing.T) {
		dir := t.TempDir()
		resume := filepath.Join(dir, "resume.txt")
		jobs := filepath.Join(dir, "jobs.json")
		require.NoError(t, os.WriteFile(resume, []byte("resume"), 0o644))
		require.NoError(t, os.WriteFile(jobs, []byte("[]"), 0o644))

		cfg := &Config{Resume: resume, JobsFile: jobs}
		assert.NoError(t, cfg.Validate())
	})
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		JobsFile:       "default-jobs.json",
		ResultsDir:     "results",
		CounterFile:    "counter.json",
		MaxPages:       10,
		MatchThreshold: 50,
		CronSpec:       "0 9 * * *",
	}

	t.Run("empty config takes defaults", func(t *testing.T) {
		cfg := Config{}
		merged := cfg.MergeWithDefaults(defaults)
		assert.Equal(t, "default-jobs.json", merged.JobsFile)
		assert.Equal(t, "results", merged.ResultsDir)
		assert.Equal(t, 10, merged.MaxPages)
		assert.Equal(t, 50.0, merged.MatchThreshold)
		assert.Equal(t, "0 9 * * *", merged.CronSpec)
	})

	t.Run("set values win", func(t *testing.T) {
		cfg := Config{JobsFile: "mine.json", MaxPages: 3, MatchThreshold: 70}
		merged := cfg.MergeWithDefaults(defaults)
		assert.Equal(t, "mine.json", merged.JobsFile)
		assert.Equal(t, 3, merged.MaxPages)
		assert.Equal(t, 70.0, merged.MatchThreshold)
		assert.Equal(t, "counter.json", merged.CounterFile)
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NAUKRI_DATABASE_URL", "postgres://localhost/naukri")
	t.Setenv("NAUKRI_RESULTS_DIR", "/var/results")
	t.Setenv("NAUKRI_TELEGRAM_CHAT_ID", "98765")

	cfg := &Config{ResultsDir: "results"}
	cfg.EnvOverrides()

	assert.Equal(t, "postgres://localhost/naukri", cfg.DatabaseURL)
	assert.Equal(t, "/var/results", cfg.ResultsDir)
	assert.Equal(t, int64(98765), cfg.TelegramChatID)
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv("NAUKRI_USERNAME", "user@example.com")
	t.Setenv("NAUKRI_PASSWORD", "secret")
	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("TELEGRAM_BOT_TOKEN", "bot-token")

	creds := CredentialsFromEnv()
	assert.Equal(t, "user@example.com", creds.Username)
	assert.Equal(t, "secret", creds.Password)
	assert.Equal(t, "key-123", creds.GeminiAPIKey)
	assert.Equal(t, "bot-token", creds.TelegramToken)
}
