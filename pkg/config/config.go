// Package config resolves the settings of a flaggmail run from defaults, an
// optional TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultCredentialsFile = "credentials.json"
	DefaultTokenFile       = "token.json"
	DefaultMailbox         = "INBOX"
	DefaultMaxResults      = 10
	DefaultLabelName       = "AI-Filtered"

	// maxPageSize is the largest maxResults the messages.list call accepts.
	maxPageSize = 500
)

// Environment variables consulted by Load.
const (
	EnvCredentialsFile = "GOOGLE_CREDENTIALS_FILE"
	EnvTokenFile       = "GOOGLE_TOKEN_FILE"
	EnvMailbox         = "FLAGGMAIL_MAILBOX"
	EnvMaxResults      = "FLAGGMAIL_MAX_RESULTS"
	EnvLabel           = "FLAGGMAIL_LABEL"
	EnvReportFile      = "FLAGGMAIL_REPORT_FILE"
)

type Config struct {
	CredentialsFile string `toml:"credentials_file"`
	TokenFile       string `toml:"token_file"`
	Mailbox         string `toml:"mailbox"`
	MaxResults      int    `toml:"max_results"`
	LabelName       string `toml:"label"`
	ReportFile      string `toml:"report_file"`
}

func Default() *Config {
	return &Config{
		CredentialsFile: DefaultCredentialsFile,
		TokenFile:       DefaultTokenFile,
		Mailbox:         DefaultMailbox,
		MaxResults:      DefaultMaxResults,
		LabelName:       DefaultLabelName,
	}
}

// Load builds the configuration. A .env file in the working directory is
// loaded first when present; values from path (if non-empty) override the
// defaults, and environment variables override the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env file: %w", err)
	}

	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("unable to read config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvCredentialsFile); v != "" {
		c.CredentialsFile = v
	}
	if v := os.Getenv(EnvTokenFile); v != "" {
		c.TokenFile = v
	}
	if v := os.Getenv(EnvMailbox); v != "" {
		c.Mailbox = v
	}
	if v := os.Getenv(EnvLabel); v != "" {
		c.LabelName = v
	}
	if v := os.Getenv(EnvReportFile); v != "" {
		c.ReportFile = v
	}
	if v := os.Getenv(EnvMaxResults); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxResults, v, err)
		}
		c.MaxResults = n
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.CredentialsFile == "":
		return fmt.Errorf("credentials file must be set")
	case c.TokenFile == "":
		return fmt.Errorf("token file must be set")
	case c.Mailbox == "":
		return fmt.Errorf("mailbox must be set")
	case c.LabelName == "":
		return fmt.Errorf("label name must be set")
	case c.MaxResults < 1 || c.MaxResults > maxPageSize:
		return fmt.Errorf("max results must be between 1 and %d, got %d", maxPageSize, c.MaxResults)
	}
	return nil
}
