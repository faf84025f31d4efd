// Package printer renders API results and errors for a terminal.
package printer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KOFI-GYIMAH/gh-explorer/internal/github"
	"github.com/KOFI-GYIMAH/gh-explorer/internal/service"
	"github.com/KOFI-GYIMAH/gh-explorer/pkg/errors"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const indent = "  "

// Printer writes to a single terminal stream. The first write failure is kept and every later
// call becomes a no-op; callers check Err once per cycle.
type Printer struct {
	w   io.Writer
	err error

	heading *color.Color
	failure *color.Color
	muted   *color.Color
}

func New(w io.Writer) *Printer {
	p := &Printer{
		w:       w,
		heading: color.New(color.FgCyan, color.Bold),
		failure: color.New(color.FgRed),
		muted:   color.New(color.FgHiBlack),
	}

	if !isTerminal(w) {
		for _, c := range []*color.Color{p.heading, p.failure, p.muted} {
			c.DisableColor()
		}
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}
	if _, err := io.WriteString(p.w, s); err != nil {
		p.err = fmt.Errorf("write to terminal: %w", err)
	}
}

func (p *Printer) Line(format string, args ...any) {
	p.write(fmt.Sprintf(format, args...) + "\n")
}

func (p *Printer) Heading(format string, args ...any) {
	p.write(p.heading.Sprintf(format, args...) + "\n")
}

func (p *Printer) Warning(format string, args ...any) {
	p.write(p.failure.Sprint("! ") + fmt.Sprintf(format, args...) + "\n")
}

func (p *Printer) Status(code int) {
	p.write(p.muted.Sprintf("HTTP %d", code) + "\n")
}

// Prompt writes label without a trailing newline.
func (p *Printer) Prompt(label string) {
	p.write(label + ": ")
}

// JSON writes v with basic indentation. Member order and values are those of the response.
func (p *Printer) JSON(v github.Value) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, v.Raw(), "", indent); err != nil {
		p.write(string(v.Raw()) + "\n")
		return
	}
	buf.WriteByte('\n')
	p.write(buf.String())
}

// SearchResult writes the total count and the items array of a search response.
func (p *Printer) SearchResult(v github.Value) {
	if total, ok := v.Field("total_count"); ok {
		p.Heading("Total results: %s", total.Text())
	}
	items, ok := v.Field("items")
	if !ok {
		p.JSON(v)
		return
	}
	p.JSON(items)
	p.summary(items, RepositoryLabel)
}

// Commits writes a commit listing followed by a one-line summary per commit.
func (p *Printer) Commits(v github.Value) {
	p.JSON(v)
	p.summary(v, CommitLabel)
}

func RepositoryLabel(item github.Value) string {
	return text(item, "full_name")
}

// CommitLabel is the first line of the commit message.
func CommitLabel(item github.Value) string {
	first, _, _ := strings.Cut(text(item, "commit", "message"), "\n")
	return first
}

// RepositoryDetails writes the description, counters and link of one search result.
func (p *Printer) RepositoryDetails(v github.Value) {
	description := text(v, "description")
	if description == "" {
		description = "No description"
	}
	p.write("\n")
	p.Heading("Repository: %s", text(v, "full_name"))
	p.Line("Description: %s", description)
	p.Line("Stars: %s, Forks: %s", text(v, "stargazers_count"), text(v, "forks_count"))
	p.Line("URL: %s", text(v, "html_url"))
}

func (p *Printer) CommitDetails(v github.Value) {
	p.write("\n")
	p.Heading("Commit Message: %s", text(v, "commit", "message"))
	p.Line("Author: %s", text(v, "commit", "author", "name"))
	p.Line("Date: %s", text(v, "commit", "author", "date"))
	p.Line("URL: %s", text(v, "html_url"))
}

func (p *Printer) summary(list github.Value, label func(github.Value) string) {
	items, ok := list.Items()
	if !ok || len(items) == 0 {
		return
	}
	p.write("\n")
	for i, item := range items {
		p.Line("[%d] %s", i+1, label(item))
	}
}

func text(v github.Value, path ...string) string {
	f, ok := v.Path(path...)
	if !ok || f.IsNull() {
		return ""
	}
	return f.Text()
}

// Tree draws content nodes with box-drawing connectors.
func (p *Printer) Tree(nodes []*service.ContentNode) {
	for i, node := range nodes {
		p.treeNode(node, "", i == len(nodes)-1)
	}
}

func (p *Printer) treeNode(node *service.ContentNode, prefix string, last bool) {
	connector := "├── "
	childPrefix := prefix + "│   "
	if last {
		connector = "└── "
		childPrefix = prefix + "    "
	}

	name := node.Name
	if node.Type == "dir" {
		name = p.heading.Sprint(name + "/")
	}
	p.write(prefix + connector + name + "\n")

	for i, child := range node.Children {
		p.treeNode(child, childPrefix, i == len(node.Children)-1)
	}
}

func (p *Printer) ContentDetails(node *service.ContentNode) {
	parent := "None"
	if node.Parent != nil {
		parent = node.Parent.Name
	}
	p.write("\n")
	p.Heading("Name: %s", node.Name)
	p.Line("Type: %s", node.Type)
	p.Line("Parent: %s", parent)
}

// Error reports err to the user. API errors show the status code and the JSON error body.
func (p *Printer) Error(err error) {
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		p.write(p.failure.Sprintf("✗ GitHub API error (status %d)", apiErr.StatusCode) + "\n")
		if !apiErr.Body.IsNull() {
			p.JSON(apiErr.Body)
		}
		return
	}

	var appErr *errors.ApplicationError
	if errors.As(err, &appErr) {
		msg := appErr.Summary()
		if appErr.RootCause != nil {
			msg += " (" + appErr.RootCause.Error() + ")"
		}
		p.write(p.failure.Sprint("✗ "+msg) + "\n")
		return
	}

	p.write(p.failure.Sprint("✗ "+err.Error()) + "\n")
}
