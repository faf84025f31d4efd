package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/gh-explorer/internal/config"
	"github.com/KOFI-GYIMAH/gh-explorer/pkg/errors"
)

const (
	mediaType = "application/vnd.github+json"
	userAgent = "gh-explorer"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	apiVersion string
}

// Response is one API reply: the status code and the body passed through as is.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       Value
}

// APIError is a non-2xx reply. Body holds the JSON error payload when GitHub sent one.
type APIError struct {
	StatusCode int
	Body       Value
}

func (e *APIError) Error() string {
	if msg, ok := e.Body.Field("message"); ok {
		return fmt.Sprintf("GitHub API returned status %d: %s", e.StatusCode, msg.Text())
	}
	return fmt.Sprintf("GitHub API returned status %d", e.StatusCode)
}

func NewClient(cfg *config.Config) *Client {
	client := &http.Client{
		Timeout:   30 * time.Second,
		Transport: LoggingMiddleware(http.DefaultTransport),
	}

	baseURL := cfg.APIURL
	if baseURL == "" {
		baseURL = config.DefaultAPIURL
	}

	return &Client{
		httpClient: client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      cfg.Token,
		apiVersion: cfg.APIVersion,
	}
}

func (c *Client) makeRequest(ctx context.Context, method, path string, query url.Values) (*http.Response, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Accept", mediaType)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-GitHub-Api-Version", c.apiVersion)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	return resp, nil
}

// Get issues exactly one GET request for path with the given query parameters. Non-2xx
// statuses come back as an error wrapping *APIError; nothing is retried or cached.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	resp, err := c.makeRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		return nil, errors.New(
			errors.RefGitHubTransport,
			"Failed to reach GitHub",
			fmt.Sprintf("Could not complete GET /%s", strings.TrimLeft(path, "/")),
			err,
			errors.LevelError,
		)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(
			errors.RefGitHubTransport,
			"Failed to read GitHub API response",
			"Could not read the response body from GitHub API",
			err,
			errors.LevelError,
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// * Error bodies that are not JSON are still reported by status
		body, _ := ParseValue(data)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: body}
		return nil, errors.New(
			errors.RefGitHubAPI,
			"Unexpected response from GitHub API",
			fmt.Sprintf("GitHub API returned status %d for /%s", resp.StatusCode, strings.TrimLeft(path, "/")),
			apiErr,
			errors.LevelError,
		)
	}

	body, err := ParseValue(data)
	if err != nil {
		return nil, errors.New(
			errors.RefGitHubDecode,
			"Failed to parse GitHub API response",
			"Could not understand the response from GitHub API",
			err,
			errors.LevelError,
		)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// * Endpoint templates

func SearchRepositoriesPath() string {
	return "search/repositories"
}

func RepositoryPath(owner, repo string) string {
	return fmt.Sprintf("repos/%s/%s", url.PathEscape(owner), url.PathEscape(repo))
}

func CommitsPath(owner, repo string) string {
	return RepositoryPath(owner, repo) + "/commits"
}

// ContentsPath keeps the "/" separators of a nested content path and escapes each segment.
func ContentsPath(owner, repo, contentPath string) string {
	var segments []string
	for _, s := range strings.Split(contentPath, "/") {
		if s != "" {
			segments = append(segments, url.PathEscape(s))
		}
	}
	return RepositoryPath(owner, repo) + "/contents/" + strings.Join(segments, "/")
}
