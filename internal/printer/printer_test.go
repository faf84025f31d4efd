package printer

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/KOFI-GYIMAH/gh-explorer/internal/github"
	"github.com/KOFI-GYIMAH/gh-explorer/internal/service"
	"github.com/KOFI-GYIMAH/gh-explorer/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.JSON(github.MustParseValue(`{"id":1296269,"name":"Hello-World","topics":["a","b"]}`))

	require.NoError(t, p.Err())
	assert.Equal(t, `{
  "id": 1296269,
  "name": "Hello-World",
  "topics": [
    "a",
    "b"
  ]
}
`, buf.String())
}

func TestPrinter_JSON_KeepsMemberOrder(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).JSON(github.MustParseValue(`{"z": 1, "a": 2}`))

	assert.Equal(t, "{\n  \"z\": 1,\n  \"a\": 2\n}\n", buf.String())
}

func TestPrinter_SearchResult(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.SearchResult(github.MustParseValue(`{
		"total_count": 2,
		"incomplete_results": false,
		"items": [{"full_name": "dhx/tetris"}, {"full_name": "chvin/react-tetris"}]
	}`))

	out := buf.String()
	assert.Contains(t, out, "Total results: 2")
	assert.Contains(t, out, `"full_name": "dhx/tetris"`)
	assert.NotContains(t, out, "incomplete_results")
	assert.Contains(t, out, "[1] dhx/tetris\n")
	assert.Contains(t, out, "[2] chvin/react-tetris\n")
}

func TestPrinter_Commits(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Commits(github.MustParseValue(`[
		{"sha": "abc123", "commit": {"message": "Fix parser\n\nLonger body"}},
		{"sha": "def456", "commit": {"message": "Initial commit"}}
	]`))

	out := buf.String()
	assert.Contains(t, out, `"sha": "abc123"`)
	assert.Contains(t, out, "[1] Fix parser\n")
	assert.Contains(t, out, "[2] Initial commit\n")
}

func TestPrinter_Tree(t *testing.T) {
	src := &service.ContentNode{Name: "src", Type: "dir"}
	src.Children = []*service.ContentNode{
		{Name: "main.go", Type: "file", Parent: src},
		{Name: "util.go", Type: "file", Parent: src},
	}
	nodes := []*service.ContentNode{
		{Name: "README.md", Type: "file"},
		src,
		{Name: "go.mod", Type: "file"},
	}

	var buf bytes.Buffer
	New(&buf).Tree(nodes)

	assert.Equal(t, "├── README.md\n"+
		"├── src/\n"+
		"│   ├── main.go\n"+
		"│   └── util.go\n"+
		"└── go.mod\n", buf.String())
}

func TestPrinter_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name: "api error with body",
			err: errors.New(errors.RefGitHubAPI, "Unexpected response from GitHub API", "", &github.APIError{
				StatusCode: 404,
				Body:       github.MustParseValue(`{"message":"Not Found"}`),
			}, errors.LevelError),
			contains: []string{"GitHub API error (status 404)", `"message": "Not Found"`},
		},
		{
			name: "transport error",
			err: errors.New(errors.RefGitHubTransport, "Failed to reach GitHub", "Could not complete GET /repos/a/b",
				stderrors.New("connection refused"), errors.LevelError),
			contains: []string{"Failed to reach GitHub: Could not complete GET /repos/a/b (connection refused)"},
		},
		{
			name:     "plain error",
			err:      stderrors.New("boom"),
			contains: []string{"✗ boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf).Error(tt.err)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

type failingWriter struct {
	calls int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, stderrors.New("broken pipe")
}

func TestPrinter_StopsAfterWriteFailure(t *testing.T) {
	w := &failingWriter{}
	p := New(w)

	p.Line("first")
	p.Line("second")

	require.Error(t, p.Err())
	assert.Contains(t, p.Err().Error(), "broken pipe")
	assert.Equal(t, 1, w.calls)
}

func TestPrinter_RepositoryDetails(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name: "with description",
			body: `{"full_name": "dhx/tetris-asm", "description": "Tetris in x86", "stargazers_count": 12, "forks_count": 3, "html_url": "https://github.com/dhx/tetris-asm"}`,
			expected: "\nRepository: dhx/tetris-asm\nDescription: Tetris in x86\nStars: 12, Forks: 3\n" +
				"URL: https://github.com/dhx/tetris-asm\n",
		},
		{
			name:     "null description",
			body:     `{"full_name": "a/b", "description": null, "stargazers_count": 0, "forks_count": 0, "html_url": "u"}`,
			expected: "\nRepository: a/b\nDescription: No description\nStars: 0, Forks: 0\nURL: u\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf).RepositoryDetails(github.MustParseValue(tt.body))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestPrinter_CommitDetails(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).CommitDetails(github.MustParseValue(`{
		"sha": "7fd1a60",
		"commit": {"message": "Merge pull request #6\n\nbody", "author": {"name": "The Octocat", "date": "2012-03-06T23:06:50Z"}},
		"html_url": "https://github.com/octocat/Hello-World/commit/7fd1a60"
	}`))

	assert.Equal(t, "\nCommit Message: Merge pull request #6\n\nbody\nAuthor: The Octocat\n"+
		"Date: 2012-03-06T23:06:50Z\nURL: https://github.com/octocat/Hello-World/commit/7fd1a60\n", buf.String())
}

func TestPrinter_ContentDetails(t *testing.T) {
	cmd := &service.ContentNode{Name: "cmd", Type: "dir", Path: "cmd"}
	main := &service.ContentNode{Name: "main.go", Type: "file", Path: "cmd/main.go", Parent: cmd}

	var buf bytes.Buffer
	p := New(&buf)
	p.ContentDetails(main)
	p.ContentDetails(cmd)

	assert.Equal(t, "\nName: main.go\nType: file\nParent: cmd\n\nName: cmd\nType: dir\nParent: None\n", buf.String())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "dhx/tetris-asm", RepositoryLabel(github.MustParseValue(`{"full_name": "dhx/tetris-asm"}`)))
	assert.Equal(t, "Fix build", CommitLabel(github.MustParseValue(`{"commit": {"message": "Fix build\n\nDetails"}}`)))
	assert.Equal(t, "", CommitLabel(github.MustParseValue(`{"sha": "abc"}`)))
}
