package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/KOFI-GYIMAH/gh-explorer/internal/github"
	"github.com/KOFI-GYIMAH/gh-explorer/pkg/logger"
)

// API is the part of *github.Client the explorer needs.
type API interface {
	Get(ctx context.Context, path string, query url.Values) (*github.Response, error)
}

type SearchParams struct {
	Query   string
	Page    string
	PerPage string
}

type RepoParams struct {
	Owner string
	Repo  string
}

type CommitParams struct {
	Owner   string
	Repo    string
	Page    string
	PerPage string
}

type ContentParams struct {
	Owner   string
	Repo    string
	Path    string
	Page    string
	PerPage string
}

type ExplorerService struct {
	api API
}

func NewExplorerService(api API) *ExplorerService {
	return &ExplorerService{api: api}
}

// * Pagination values go out exactly as typed; omitted ones are left to the API defaults
func pageQuery(page, perPage string) url.Values {
	query := make(url.Values)
	if perPage != "" {
		query.Set("per_page", perPage)
	}
	if page != "" {
		query.Set("page", page)
	}
	return query
}

func (s *ExplorerService) SearchRepositories(ctx context.Context, p SearchParams) (*github.Response, error) {
	query := pageQuery(p.Page, p.PerPage)
	query.Set("q", p.Query)

	logger.Info("Searching repositories for %q", p.Query)
	return s.api.Get(ctx, github.SearchRepositoriesPath(), query)
}

func (s *ExplorerService) GetRepository(ctx context.Context, p RepoParams) (*github.Response, error) {
	logger.Info("Fetching repository %s/%s", p.Owner, p.Repo)
	return s.api.Get(ctx, github.RepositoryPath(p.Owner, p.Repo), nil)
}

func (s *ExplorerService) ListCommits(ctx context.Context, p CommitParams) (*github.Response, error) {
	logger.Info("Listing commits of %s/%s", p.Owner, p.Repo)
	return s.api.Get(ctx, github.CommitsPath(p.Owner, p.Repo), pageQuery(p.Page, p.PerPage))
}

func (s *ExplorerService) ListContents(ctx context.Context, p ContentParams) (*github.Response, error) {
	logger.Info("Listing contents of %s/%s at %q", p.Owner, p.Repo, p.Path)
	return s.api.Get(ctx, github.ContentsPath(p.Owner, p.Repo, p.Path), pageQuery(p.Page, p.PerPage))
}

// ContentNode is one entry of a repository content tree.
type ContentNode struct {
	Name     string
	Type     string
	Path     string
	Parent   *ContentNode
	Children []*ContentNode
}

// ContentTree walks the directory at path and every directory below it, one listing request
// at a time, and returns the top-level entries.
func (s *ExplorerService) ContentTree(ctx context.Context, owner, repo, path string) ([]*ContentNode, error) {
	logger.Info("Walking contents of %s/%s from %q", owner, repo, path)
	return s.walk(ctx, owner, repo, path, nil)
}

func (s *ExplorerService) walk(ctx context.Context, owner, repo, path string, parent *ContentNode) ([]*ContentNode, error) {
	resp, err := s.api.Get(ctx, github.ContentsPath(owner, repo, path), nil)
	if err != nil {
		return nil, err
	}

	entries, ok := resp.Body.Items()
	if !ok {
		// * A file path returns a single object instead of a listing
		if resp.Body.Kind() == github.KindObject {
			entries = []github.Value{resp.Body}
		} else {
			return nil, fmt.Errorf("unexpected %s body for contents of %s", resp.Body.Kind(), path)
		}
	}

	nodes := make([]*ContentNode, 0, len(entries))
	for _, entry := range entries {
		node := &ContentNode{
			Name:   fieldText(entry, "name"),
			Type:   fieldText(entry, "type"),
			Path:   fieldText(entry, "path"),
			Parent: parent,
		}
		nodes = append(nodes, node)
	}

	for _, node := range nodes {
		if node.Type != "dir" {
			continue
		}
		logger.Debug("descending into %s", node.Path)
		children, err := s.walk(ctx, owner, repo, node.Path, node)
		if err != nil {
			return nil, err
		}
		node.Children = children
	}

	return nodes, nil
}

// FindNode follows the "/"-separated names of path from the top-level nodes down. It returns
// nil when any segment has no matching entry.
func FindNode(nodes []*ContentNode, path string) *ContentNode {
	var found *ContentNode
	for _, name := range strings.Split(strings.Trim(path, "/"), "/") {
		found = nil
		for _, node := range nodes {
			if node.Name == name {
				found = node
				break
			}
		}
		if found == nil {
			return nil
		}
		nodes = found.Children
	}
	return found
}

func fieldText(v github.Value, name string) string {
	f, ok := v.Field(name)
	if !ok {
		return ""
	}
	return f.Text()
}
