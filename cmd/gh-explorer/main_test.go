package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KOFI-GYIMAH/gh-explorer/internal/ghstub"
	"github.com/KOFI-GYIMAH/gh-explorer/pkg/errors"
	"github.com/KOFI-GYIMAH/gh-explorer/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_MissingTokenStopsBeforeMenu(t *testing.T) {
	server := ghstub.NewServer(ghstub.Fixtures{})
	defer server.Close()

	envPath := writeEnv(t, "GITHUB_API_VERSION=2022-11-28\nGITHUB_API_URL="+server.URL+"\n")

	var out bytes.Buffer
	err := run(context.Background(), envPath, strings.NewReader("2\noctocat\nHello-World\n6\n"), &out)

	require.Error(t, err)
	assert.True(t, errors.HasReference(err, errors.RefConfig))
	assert.Empty(t, out.String())
	assert.Empty(t, server.Requests())
}

func TestRun_MissingFile(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), filepath.Join(t.TempDir(), ".env"), strings.NewReader("6\n"), &out)

	require.Error(t, err)
	assert.True(t, errors.HasReference(err, errors.RefConfig))
	assert.Empty(t, out.String())
}

func TestRun_Session(t *testing.T) {
	server := ghstub.NewServer(ghstub.Fixtures{
		Token: "ghp_test",
		Repos: map[string]string{"octocat/Hello-World": `{"id": 1296269, "name": "Hello-World"}`},
	})
	defer server.Close()

	envPath := writeEnv(t, "GITHUB_TOKEN=ghp_test\nGITHUB_API_VERSION=2022-11-28\nGITHUB_API_URL="+server.URL+"\n")

	var out bytes.Buffer
	err := run(context.Background(), envPath, strings.NewReader("2\noctocat\nHello-World\n6\n"), &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "GitHub Utility Tool")
	assert.Contains(t, out.String(), `"name": "Hello-World"`)
	assert.Contains(t, out.String(), "Goodbye!")
	require.Len(t, server.Requests(), 1)
	assert.Equal(t, "2022-11-28", server.Requests()[0].Header.Get("X-GitHub-Api-Version"))
}

func TestRun_DebugLogsLoadedConfiguration(t *testing.T) {
	var logs bytes.Buffer
	prevLevel := logger.GetLevel()
	logger.SetOutput(&logs)
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(prevLevel)
	})

	envPath := writeEnv(t, "GITHUB_TOKEN=ghp_test\nGITHUB_API_VERSION=2022-11-28\nGITHUB_API_URL=http://127.0.0.1:1\nDEBUG=true\n")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), envPath, strings.NewReader("6\n"), &out))

	assert.Equal(t, logger.LevelDebug, logger.GetLevel())
	assert.Contains(t, logs.String(), "configuration loaded (api version 2022-11-28, api url http://127.0.0.1:1)")
}
