package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvCredentialsFile, EnvTokenFile, EnvMailbox, EnvMaxResults, EnvLabel, EnvReportFile} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "credentials.json", cfg.CredentialsFile)
	assert.Equal(t, "token.json", cfg.TokenFile)
	assert.Equal(t, "INBOX", cfg.Mailbox)
	assert.Equal(t, 10, cfg.MaxResults)
	assert.Equal(t, "AI-Filtered", cfg.LabelName)
	assert.Empty(t, cfg.ReportFile)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "flaggmail.toml", `
credentials_file = "/etc/flaggmail/client.json"
token_file = "/var/lib/flaggmail/token.json"
mailbox = "IMPORTANT"
max_results = 25
label = "Flagged"
`)
	t.Setenv(EnvLabel, "From-Env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/etc/flaggmail/client.json", cfg.CredentialsFile)
	assert.Equal(t, "/var/lib/flaggmail/token.json", cfg.TokenFile)
	assert.Equal(t, "IMPORTANT", cfg.Mailbox)
	assert.Equal(t, 25, cfg.MaxResults)
	assert.Equal(t, "From-Env", cfg.LabelName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCredentialsFile, "c.json")
	t.Setenv(EnvTokenFile, "t.json")
	t.Setenv(EnvMailbox, "Label_7")
	t.Setenv(EnvMaxResults, "3")
	t.Setenv(EnvReportFile, "report.txt")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Config{
		CredentialsFile: "c.json",
		TokenFile:       "t.json",
		Mailbox:         "Label_7",
		MaxResults:      3,
		LabelName:       DefaultLabelName,
		ReportFile:      "report.txt",
	}, cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		file    string
		wantErr string
	}{
		{
			name:    "bad max results",
			env:     map[string]string{EnvMaxResults: "ten"},
			wantErr: "invalid FLAGGMAIL_MAX_RESULTS",
		},
		{
			name:    "max results out of range",
			env:     map[string]string{EnvMaxResults: "501"},
			wantErr: "max results must be between 1 and 500",
		},
		{
			name:    "zero max results",
			file:    "max_results = 0\n",
			wantErr: "max results must be between 1 and 500",
		},
		{
			name:    "empty label in file",
			file:    "label = \"\"\n",
			wantErr: "label name must be set",
		},
		{
			name:    "malformed toml",
			file:    "mailbox = \n",
			wantErr: "unable to read config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, "config.toml", tt.file)
			}

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to read config file")
}
