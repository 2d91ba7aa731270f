// Package publish implements the OctoFaceHub publication workflow: it
// pushes a model's files onto a submission branch of the hub repository
// (directly or through a fork) and opens the pull request that registers
// the model in the shared catalog.
package publish

import (
	"context"
	"time"

	"github.com/google/go-github/v32/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// TokenEnv is the environment variable holding the GitHub access token.
const TokenEnv = "GITHUB_API_TOKEN"

// Target identifies the hub repository that receives submissions.
type Target struct {
	Owner      string
	Repo       string
	BaseBranch string
}

// DefaultTarget returns the OctoFaceHub catalog repository.
func DefaultTarget() Target {
	return Target{
		Owner:      "octofacehub",
		Repo:       "octofacehub.github.io",
		BaseBranch: "main",
	}
}

// Client performs publication operations against a single target
// repository on behalf of one authenticated user.
type Client struct {
	gh     *github.Client
	target Target
	login  string
	ctx    context.Context

	// Progress receives human-readable status lines during publication.
	Progress func(format string, a ...interface{})

	forkWait time.Duration
}

// NewClient authenticates with token and resolves the caller's login.
// An empty token is a precondition failure; no network call is made.
func NewClient(ctx context.Context, token string, target Target) (*Client, error) {
	if token == "" {
		return nil, errors.Errorf("%s is not set", TokenEnv)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	gh := github.NewClient(oauth2.NewClient(ctx, ts))
	return NewWithClient(ctx, gh, target)
}

// NewWithClient wraps an existing go-github client. Tests use this to
// point the client at a mock API server.
func NewWithClient(ctx context.Context, gh *github.Client, target Target) (*Client, error) {
	user, _, err := gh.Users.Get(ctx, "")
	if err != nil {
		return nil, errors.Wrap(err, "resolve authenticated user")
	}
	return &Client{
		gh:       gh,
		target:   target,
		login:    user.GetLogin(),
		ctx:      ctx,
		Progress: func(string, ...interface{}) {},
		forkWait: defaultForkWait,
	}, nil
}

// Login returns the authenticated user's GitHub login.
func (c *Client) Login() string { return c.login }

// VerifyAccess checks that the token resolves a user and that the
// target repository is reachable with it.
func (c *Client) VerifyAccess() error {
	if _, _, err := c.gh.Users.Get(c.ctx, ""); err != nil {
		return errors.Wrap(err, "authenticate with GitHub API")
	}
	if _, _, err := c.gh.Repositories.Get(c.ctx, c.target.Owner, c.target.Repo); err != nil {
		return errors.Wrapf(err, "access repository %s/%s", c.target.Owner, c.target.Repo)
	}
	return nil
}
