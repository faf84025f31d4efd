package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KOFI-GYIMAH/gh-explorer/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expected    *Config
		expectedErr string
	}{
		{
			name:    "token and version",
			content: "GITHUB_TOKEN=ghp_test\nGITHUB_API_VERSION=2022-11-28\n",
			expected: &Config{
				Token:      "ghp_test",
				APIVersion: "2022-11-28",
				APIURL:     DefaultAPIURL,
			},
		},
		{
			name: "custom api url and debug",
			content: "GITHUB_TOKEN=ghp_test\nGITHUB_API_VERSION=2022-11-28\n" +
				"GITHUB_API_URL=http://localhost:9999/\nDEBUG=true\n",
			expected: &Config{
				Token:      "ghp_test",
				APIVersion: "2022-11-28",
				APIURL:     "http://localhost:9999",
				Debug:      true,
			},
		},
		{
			name:        "missing token",
			content:     "GITHUB_API_VERSION=2022-11-28\n",
			expectedErr: "GITHUB_TOKEN is required",
		},
		{
			name:        "empty token",
			content:     "GITHUB_TOKEN=\nGITHUB_API_VERSION=2022-11-28\n",
			expectedErr: "GITHUB_TOKEN is required",
		},
		{
			name:        "missing version",
			content:     "GITHUB_TOKEN=ghp_test\n",
			expectedErr: "GITHUB_API_VERSION is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeEnv(t, tt.content))

			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), tt.expectedErr)
				assert.True(t, errors.HasReference(err, errors.RefConfig))
				assert.Equal(t, errors.LevelFatal, errors.LevelOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".env"))

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.HasReference(err, errors.RefConfig))
	assert.Contains(t, err.Error(), "Failed to read configuration file")
}

func TestLoad_IgnoresProcessEnvironment(t *testing.T) {
	t.Setenv(KeyToken, "from-env")
	t.Setenv(KeyAPIVersion, "2022-11-28")

	_, err := Load(writeEnv(t, "# no keys here\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN is required")
	assert.Equal(t, "from-env", os.Getenv(KeyToken))
}
