package github

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/covnotify/pkg/domain/interfaces"
	"github.com/m-mizutani/covnotify/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type client struct {
	githubClient *github.Client
}

type options struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the GitHub client
type Option func(*options)

// WithBaseURL points the client to a GitHub Enterprise Server API root such as
// "https://github.example.com/api/v3/"
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// NewClient creates a GitHub reporter authenticated with an access token
func NewClient(token string, opts ...Option) (interfaces.Reporter, error) {
	cfg := applyOptions(opts)

	githubClient, err := newGitHubClient(cfg.httpClient, cfg.baseURL)
	if err != nil {
		return nil, err
	}
	if token != "" {
		githubClient = githubClient.WithAuthToken(token)
	}

	return &client{githubClient: githubClient}, nil
}

// NewAppClient creates a GitHub reporter authenticated as a GitHub App installation
func NewAppClient(appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.Reporter, error) {
	cfg := applyOptions(opts)

	base := http.DefaultTransport
	if cfg.httpClient != nil && cfg.httpClient.Transport != nil {
		base = cfg.httpClient.Transport
	}

	itr, err := ghinstallation.New(base, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport",
			goerr.V("app_id", appID),
			goerr.V("installation_id", installationID),
		)
	}
	if cfg.baseURL != "" {
		itr.BaseURL = strings.TrimSuffix(cfg.baseURL, "/")
	}

	githubClient, err := newGitHubClient(&http.Client{Transport: itr}, cfg.baseURL)
	if err != nil {
		return nil, err
	}

	return &client{githubClient: githubClient}, nil
}

func applyOptions(opts []Option) *options {
	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func newGitHubClient(httpClient *http.Client, baseURL string) (*github.Client, error) {
	githubClient := github.NewClient(httpClient)
	if baseURL == "" {
		return githubClient, nil
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid GitHub API base URL", goerr.V("base_url", baseURL))
	}
	githubClient.BaseURL = u
	return githubClient, nil
}

// CreateStatus creates a commit status
func (c *client) CreateStatus(ctx context.Context, repoPath, sha string, status *model.CommitStatus) error {
	owner, repo, err := splitRepoPath(repoPath)
	if err != nil {
		return err
	}
	if sha == "" {
		return goerr.New("commit SHA is empty", goerr.V("repo_path", repoPath))
	}

	repoStatus := &github.RepoStatus{
		State:       github.Ptr(string(status.State)),
		Context:     github.Ptr(status.Context),
		Description: github.Ptr(status.Description),
	}
	if status.TargetURL != "" {
		repoStatus.TargetURL = github.Ptr(status.TargetURL)
	}

	_, _, err = c.githubClient.Repositories.CreateStatus(ctx, owner, repo, sha, repoStatus)
	if err != nil {
		return goerr.Wrap(err, "failed to create status",
			goerr.V("repo_path", repoPath),
			goerr.V("sha", sha),
		)
	}

	ctxlog.From(ctx).Info("Created commit status",
		"repo_path", repoPath,
		"sha", sha,
		"state", status.State,
		"context", status.Context,
	)
	return nil
}

// AddComment creates a comment on a pull request
func (c *client) AddComment(ctx context.Context, repoPath, pullRequest, body string) error {
	owner, repo, err := splitRepoPath(repoPath)
	if err != nil {
		return err
	}

	number, err := strconv.Atoi(pullRequest)
	if err != nil || number <= 0 {
		return goerr.New("invalid pull request number", goerr.V("pull_request", pullRequest))
	}

	_, _, err = c.githubClient.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create comment",
			goerr.V("repo_path", repoPath),
			goerr.V("pull_request", number),
		)
	}

	ctxlog.From(ctx).Info("Created pull request comment",
		"repo_path", repoPath,
		"pull_request", number,
	)
	return nil
}

func splitRepoPath(repoPath string) (string, string, error) {
	owner, repo, ok := strings.Cut(repoPath, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", goerr.New("invalid repository path, expected owner/repo", goerr.V("repo_path", repoPath))
	}
	return owner, repo, nil
}
