package publish

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v32/github"
	"github.com/pkg/errors"

	"github.com/octofacehub/octoface/model"
)

// defaultForkWait is how long to wait before retrying a ref lookup in a
// freshly created fork; GitHub provisions forks asynchronously.
const defaultForkWait = 5 * time.Second

// BranchName returns the per-submission branch name for a model. The
// timestamp makes collisions across submissions practically impossible.
func BranchName(name string, ts int64) string {
	return fmt.Sprintf("add-model-%s-%d", model.Slug(name), ts)
}

// EnsureBranch creates branch in owner's copy of the hub repository,
// pointing at the current head of base. A branch of the same name already
// existing is treated as success: names carry a timestamp, so a collision
// can only be a same-second rerun of this submission.
func (c *Client) EnsureBranch(owner, branch, base string) error {
	if _, _, err := c.gh.Repositories.GetBranch(c.ctx, owner, c.target.Repo, branch); err == nil {
		return nil
	}
	ref, _, err := c.gh.Git.GetRef(c.ctx, owner, c.target.Repo, "refs/heads/"+base)
	if err != nil {
		return errors.Wrapf(err, "get base branch %s", base)
	}
	return c.createRef(owner, branch, ref)
}

// EnsureForkBranch creates branch in the caller's fork. The base-ref
// lookup is retried once after a short wait in case the fork is still
// being provisioned.
func (c *Client) EnsureForkBranch(branch, base string) error {
	var ref *github.Reference
	err := retry(2, c.forkWait, func() error {
		r, _, err := c.gh.Git.GetRef(c.ctx, c.login, c.target.Repo, "refs/heads/"+base)
		if err != nil {
			c.Progress("Waiting for fork to be ready...")
			return err
		}
		ref = r
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "get base branch %s from fork", base)
	}
	return c.createRef(c.login, branch, ref)
}

func (c *Client) createRef(owner, branch string, base *github.Reference) error {
	newRef := &github.Reference{
		Ref:    github.String("refs/heads/" + branch),
		Object: &github.GitObject{SHA: base.Object.SHA},
	}
	_, resp, err := c.gh.Git.CreateRef(c.ctx, owner, c.target.Repo, newRef)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity) {
			// The branch appeared between the check and the create.
			return nil
		}
		return errors.Wrapf(err, "create branch %s", branch)
	}
	return nil
}

// retry runs fn up to attempts times, sleeping delay between attempts,
// and returns the last error when every attempt fails.
func retry(attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(delay)
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}
