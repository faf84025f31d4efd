package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevLevel := GetLevel()
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(prevLevel)
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelWarn)

	Debug("debug %d", 1)
	Info("info %d", 2)
	Warn("warn %d", 3)
	Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "warn 3")
	assert.Contains(t, out, "error 4")
}

func TestDebugEnabled(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelDebug)

	Debug("GET %s", "/repos/octocat/Hello-World")

	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "GET /repos/octocat/Hello-World")
}

func TestFatalExits(t *testing.T) {
	buf := capture(t)

	var code int
	origExit := exit
	exit = func(c int) { code = c }
	defer func() { exit = origExit }()

	Fatal("config broken: %s", "GITHUB_TOKEN is required")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "config broken: GITHUB_TOKEN is required")
}
