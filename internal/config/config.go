package config

import (
	"fmt"
	"strings"

	"github.com/KOFI-GYIMAH/gh-explorer/pkg/errors"
	"github.com/joho/godotenv"
)

const (
	DefaultPath   = ".env"
	DefaultAPIURL = "https://api.github.com"

	KeyToken      = "GITHUB_TOKEN"
	KeyAPIVersion = "GITHUB_API_VERSION"
	KeyAPIURL     = "GITHUB_API_URL"
	KeyDebug      = "DEBUG"
)

type Config struct {
	Token      string
	APIVersion string
	APIURL     string
	Debug      bool
}

// * Load reads the key/value file at path and returns the configuration held for the
// * lifetime of the process. The process environment is not consulted.
func Load(path string) (*Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.New(
			errors.RefConfig,
			"Failed to read configuration file",
			fmt.Sprintf("Could not read %s", path),
			err,
			errors.LevelFatal,
		)
	}

	return FromMap(values)
}

// * FromMap builds a Config from already parsed key/value pairs
func FromMap(values map[string]string) (*Config, error) {
	cfg := &Config{
		Token:      strings.TrimSpace(values[KeyToken]),
		APIVersion: strings.TrimSpace(values[KeyAPIVersion]),
		APIURL:     strings.TrimRight(strings.TrimSpace(values[KeyAPIURL]), "/"),
		Debug:      strings.EqualFold(strings.TrimSpace(values[KeyDebug]), "true"),
	}

	if cfg.Token == "" {
		return nil, errors.New(
			errors.RefConfig,
			"GitHub token is missing",
			KeyToken+" is required",
			nil,
			errors.LevelFatal,
		)
	}

	if cfg.APIVersion == "" {
		return nil, errors.New(
			errors.RefConfig,
			"GitHub API version is missing",
			KeyAPIVersion+" is required (e.g. 2022-11-28)",
			nil,
			errors.LevelFatal,
		)
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	return cfg, nil
}
