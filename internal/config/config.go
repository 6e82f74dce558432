// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/swapnil/naukri-auto-apply/internal/report"
)

// Config represents the run configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags. Credentials and API keys come from the
// environment only.
type Config struct {
	// Queue and filters
	JobsFile   string `json:"jobs_file,omitempty"`  // Path to the JSON job queue
	MaxPages   int    `json:"max_pages,omitempty" validate:"gte=0,lte=50"`
	Experience int    `json:"experience,omitempty" validate:"gte=0,lte=30"` // Years, used in queue exports
	JobAge     int    `json:"job_age,omitempty" validate:"gte=0,lte=30"`    // Posting age filter in days

	// Behavior
	AutoApply      bool    `json:"auto_apply,omitempty"`
	ScrapeMNC      bool    `json:"scrape_mnc,omitempty"`
	Resume         string  `json:"resume,omitempty"` // Path to resume text for the AI flow
	MatchThreshold float64 `json:"match_threshold,omitempty" validate:"gte=0,lte=100"`
	Headless       bool    `json:"headless,omitempty"`
	Verbose        bool    `json:"verbose,omitempty"`
	Testing        bool    `json:"testing,omitempty"` // Suppress reporter delivery

	// Storage
	ResultsDir  string `json:"results_dir,omitempty"`
	SessionDir  string `json:"session_dir,omitempty"`
	CounterFile string `json:"counter_file,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // Optional Postgres mirror

	// Reporting
	Email          report.EmailConfig `json:"email,omitempty"`
	TelegramChatID int64              `json:"telegram_chat_id,omitempty"`

	// Scheduling
	CronSpec string `json:"cron_spec,omitempty"`
}

// Credentials are never read from the config file.
type Credentials struct {
	Username      string
	Password      string
	GeminiAPIKey  string
	TelegramToken string
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks numeric ranges and referenced files.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.JobsFile != "" {
		if _, err := os.Stat(c.JobsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: jobs file not found: %s", c.JobsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Config file values act as defaults for CLI flags; bools are not
// merged because unset cannot be told apart from false.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.JobsFile == "" {
		result.JobsFile = defaults.JobsFile
	}
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.ResultsDir == "" {
		result.ResultsDir = defaults.ResultsDir
	}
	if result.SessionDir == "" {
		result.SessionDir = defaults.SessionDir
	}
	if result.CounterFile == "" {
		result.CounterFile = defaults.CounterFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CronSpec == "" {
		result.CronSpec = defaults.CronSpec
	}

	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}
	if result.Experience == 0 {
		result.Experience = defaults.Experience
	}
	if result.JobAge == 0 {
		result.JobAge = defaults.JobAge
	}
	if result.MatchThreshold == 0 {
		result.MatchThreshold = defaults.MatchThreshold
	}
	if result.TelegramChatID == 0 {
		result.TelegramChatID = defaults.TelegramChatID
	}

	if len(result.Email.To) == 0 {
		result.Email = defaults.Email
	}

	return result
}

// CredentialsFromEnv reads account secrets from the environment. godotenv
// has already loaded .env by the time this runs.
func CredentialsFromEnv() Credentials {
	return Credentials{
		Username:      os.Getenv("NAUKRI_USERNAME"),
		Password:      os.Getenv("NAUKRI_PASSWORD"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}
}

// EnvOverrides applies recognized environment variables on top of the
// config, letting a scheduler tweak a run without editing files.
func (c *Config) EnvOverrides() {
	if v := os.Getenv("NAUKRI_DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("NAUKRI_RESULTS_DIR"); v != "" {
		c.ResultsDir = v
	}
	if v := os.Getenv("NAUKRI_TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.TelegramChatID = id
		}
	}
}
