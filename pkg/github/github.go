package github

import (
	"context"
	"fmt"
	"time"

	gogithub "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

type Config struct {
	Enabled    bool   `toml:"enabled"`
	Token      string `toml:"token"`
	Owner      string `toml:"owner"`
	Repo       string `toml:"repo"`
	BaseBranch string `toml:"base_branch"`
	ContentDir string `toml:"content_dir"`
}

// Client mirrors accepted suggestions into the site repository as draft
// markdown files behind a pull request.
type Client struct {
	cfg Config
	gh  *gogithub.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseBranch == "" {
		cfg.BaseBranch = "main"
	}
	if cfg.ContentDir == "" {
		cfg.ContentDir = "content/drafts"
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := oauth2.NewClient(context.Background(), ts)

	return &Client{
		cfg: cfg,
		gh:  gogithub.NewClient(httpClient),
	}
}

type DraftFile struct {
	Filename string
	Content  string
	Title    string
}

// CreateDraftPR pushes the draft file to a fresh branch off the base branch
// and opens a pull request for it. Returns the PR URL.
func (c *Client) CreateDraftPR(ctx context.Context, draft DraftFile) (string, error) {
	baseRef, _, err := c.gh.Git.GetRef(ctx, c.cfg.Owner, c.cfg.Repo, "refs/heads/"+c.cfg.BaseBranch)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base branch %s, %w", c.cfg.BaseBranch, err)
	}

	branch := fmt.Sprintf("draft/%s-%d", draft.Filename, time.Now().Unix())
	newRef := &gogithub.Reference{
		Ref:    gogithub.String("refs/heads/" + branch),
		Object: &gogithub.GitObject{SHA: baseRef.Object.SHA},
	}
	if _, _, err = c.gh.Git.CreateRef(ctx, c.cfg.Owner, c.cfg.Repo, newRef); err != nil {
		return "", fmt.Errorf("failed to create draft branch, %w", err)
	}

	path := fmt.Sprintf("%s/%s.md", c.cfg.ContentDir, draft.Filename)
	opts := &gogithub.RepositoryContentFileOptions{
		Message: gogithub.String(fmt.Sprintf("draft: %s", draft.Title)),
		Content: []byte(draft.Content),
		Branch:  gogithub.String(branch),
	}
	if _, _, err = c.gh.Repositories.CreateFile(ctx, c.cfg.Owner, c.cfg.Repo, path, opts); err != nil {
		return "", fmt.Errorf("failed to create draft file, %w", err)
	}

	pr, _, err := c.gh.PullRequests.Create(ctx, c.cfg.Owner, c.cfg.Repo, &gogithub.NewPullRequest{
		Title: gogithub.String(fmt.Sprintf("Draft: %s", draft.Title)),
		Head:  gogithub.String(branch),
		Base:  gogithub.String(c.cfg.BaseBranch),
		Body:  gogithub.String("Auto-generated from an accepted article suggestion. Review before publishing."),
	})
	if err != nil {
		return "", fmt.Errorf("failed to open pull request, %w", err)
	}

	return pr.GetHTMLURL(), nil
}
