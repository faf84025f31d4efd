package cli

import (
	"context"
	"strconv"

	"github.com/KOFI-GYIMAH/gh-explorer/internal/github"
	"github.com/KOFI-GYIMAH/gh-explorer/internal/printer"
	"github.com/KOFI-GYIMAH/gh-explorer/internal/service"
	"github.com/KOFI-GYIMAH/gh-explorer/pkg/errors"
)

// Explorer is implemented by *service.ExplorerService.
type Explorer interface {
	SearchRepositories(ctx context.Context, p service.SearchParams) (*github.Response, error)
	GetRepository(ctx context.Context, p service.RepoParams) (*github.Response, error)
	ListCommits(ctx context.Context, p service.CommitParams) (*github.Response, error)
	ListContents(ctx context.Context, p service.ContentParams) (*github.Response, error)
	ContentTree(ctx context.Context, owner, repo, path string) ([]*service.ContentNode, error)
}

const (
	fieldQuery   = "query"
	fieldOwner   = "owner"
	fieldRepo    = "repo"
	fieldPath    = "path"
	fieldPage    = "page"
	fieldPerPage = "per_page"
)

type field struct {
	key      string
	label    string
	required bool
	numeric  bool
}

var (
	ownerField   = field{key: fieldOwner, label: "Enter repository owner", required: true}
	repoField    = field{key: fieldRepo, label: "Enter repository name", required: true}
	pathField    = field{key: fieldPath, label: "Enter path (optional, empty for the root)"}
	pageField    = field{key: fieldPage, label: "Enter page number (optional)", numeric: true}
	perPageField = field{key: fieldPerPage, label: "Enter results per page (optional)", numeric: true}
)

func inputError(title string) error {
	return errors.New(errors.RefInput, title, "", nil, errors.LevelWarning)
}

// validate rejects value with an INPUT_ERROR when it is not acceptable for f.
func (f field) validate(value string) error {
	if value == "" {
		if f.required {
			return inputError("This value is required.")
		}
		return nil
	}
	if f.numeric {
		if n, err := strconv.Atoi(value); err != nil || n < 1 {
			return inputError("Please enter a positive whole number or leave it empty.")
		}
	}
	return nil
}

// render prints a successful result; it runs in the printing state.
type render func(p *printer.Printer)

// followUp is asked after a result is printed and answered until the user enters an empty
// line. options is set when the answer is a 1-based position in a listing.
type followUp struct {
	prompt  string
	options []string
	answer  func(p *printer.Printer, input string) error
}

type result struct {
	show render
	next *followUp
}

type operation struct {
	choice string
	title  string
	fields []field
	run    func(ctx context.Context, ex Explorer, in map[string]string) (*result, error)
}

func responseRender(resp *github.Response, body func(p *printer.Printer, v github.Value)) render {
	return func(p *printer.Printer) {
		p.Status(resp.StatusCode)
		body(p, resp.Body)
	}
}

// pickFrom offers the details of one item of a listing. There is nothing to pick from an
// empty listing.
func pickFrom(noun string, items []github.Value, label func(github.Value) string,
	details func(p *printer.Printer, v github.Value)) *followUp {
	if len(items) == 0 {
		return nil
	}

	options := make([]string, len(items))
	for i, item := range items {
		options[i] = label(item)
	}

	return &followUp{
		prompt:  "Enter the number of a " + noun + " to display its details (or press Enter to return to the main menu)",
		options: options,
		answer: func(p *printer.Printer, input string) error {
			n, err := strconv.Atoi(input)
			if err != nil {
				return inputError("Invalid input. Please enter a number.")
			}
			if n < 1 || n > len(items) {
				return inputError("Invalid selection. Please choose a valid number.")
			}
			details(p, items[n-1])
			return nil
		},
	}
}

func inspectTree(nodes []*service.ContentNode) *followUp {
	if len(nodes) == 0 {
		return nil
	}

	return &followUp{
		prompt: "Enter the path of a content to inspect (or press Enter to return to the main menu)",
		answer: func(p *printer.Printer, input string) error {
			node := service.FindNode(nodes, input)
			if node == nil {
				return inputError("Content not found. Please check the path and try again.")
			}
			p.ContentDetails(node)
			return nil
		},
	}
}

var operations = []operation{
	{
		choice: "1",
		title:  "Search for repositories",
		fields: []field{
			{key: fieldQuery, label: "Enter search query", required: true},
			pageField,
			perPageField,
		},
		run: func(ctx context.Context, ex Explorer, in map[string]string) (*result, error) {
			resp, err := ex.SearchRepositories(ctx, service.SearchParams{
				Query:   in[fieldQuery],
				Page:    in[fieldPage],
				PerPage: in[fieldPerPage],
			})
			if err != nil {
				return nil, err
			}
			var repos []github.Value
			if items, ok := resp.Body.Field("items"); ok {
				repos, _ = items.Items()
			}
			return &result{
				show: responseRender(resp, (*printer.Printer).SearchResult),
				next: pickFrom("repository", repos, printer.RepositoryLabel, (*printer.Printer).RepositoryDetails),
			}, nil
		},
	},
	{
		choice: "2",
		title:  "View repository information",
		fields: []field{ownerField, repoField},
		run: func(ctx context.Context, ex Explorer, in map[string]string) (*result, error) {
			resp, err := ex.GetRepository(ctx, service.RepoParams{
				Owner: in[fieldOwner],
				Repo:  in[fieldRepo],
			})
			if err != nil {
				return nil, err
			}
			return &result{show: responseRender(resp, (*printer.Printer).JSON)}, nil
		},
	},
	{
		choice: "3",
		title:  "View repository commits",
		fields: []field{ownerField, repoField, pageField, perPageField},
		run: func(ctx context.Context, ex Explorer, in map[string]string) (*result, error) {
			resp, err := ex.ListCommits(ctx, service.CommitParams{
				Owner:   in[fieldOwner],
				Repo:    in[fieldRepo],
				Page:    in[fieldPage],
				PerPage: in[fieldPerPage],
			})
			if err != nil {
				return nil, err
			}
			commits, _ := resp.Body.Items()
			return &result{
				show: responseRender(resp, (*printer.Printer).Commits),
				next: pickFrom("commit", commits, printer.CommitLabel, (*printer.Printer).CommitDetails),
			}, nil
		},
	},
	{
		choice: "4",
		title:  "View repository contents",
		fields: []field{ownerField, repoField, pathField, pageField, perPageField},
		run: func(ctx context.Context, ex Explorer, in map[string]string) (*result, error) {
			resp, err := ex.ListContents(ctx, service.ContentParams{
				Owner:   in[fieldOwner],
				Repo:    in[fieldRepo],
				Path:    in[fieldPath],
				Page:    in[fieldPage],
				PerPage: in[fieldPerPage],
			})
			if err != nil {
				return nil, err
			}
			return &result{show: responseRender(resp, (*printer.Printer).JSON)}, nil
		},
	},
	{
		choice: "5",
		title:  "View repository content tree",
		fields: []field{ownerField, repoField, pathField},
		run: func(ctx context.Context, ex Explorer, in map[string]string) (*result, error) {
			nodes, err := ex.ContentTree(ctx, in[fieldOwner], in[fieldRepo], in[fieldPath])
			if err != nil {
				return nil, err
			}
			show := func(p *printer.Printer) {
				if len(nodes) == 0 {
					p.Line("(empty)")
					return
				}
				p.Heading("%s/%s", in[fieldOwner], in[fieldRepo])
				p.Tree(nodes)
			}
			return &result{show: show, next: inspectTree(nodes)}, nil
		},
	},
}

const exitChoice = "6"

func findOperation(choice string) *operation {
	for i := range operations {
		if operations[i].choice == choice {
			return &operations[i]
		}
	}
	return nil
}
