package publish

import (
	"fmt"
	"time"

	"github.com/google/go-github/v32/github"
	"github.com/pkg/errors"

	"github.com/octofacehub/octoface/model"
)

// File is one file to commit on the submission branch.
type File struct {
	Path    string
	Message string
	Content []byte
}

// Result describes a successful publication.
type Result struct {
	PRURL  string
	Branch string
	Forked bool
}

// bootstrapReadme seeds an empty hub repository so that branches can be
// created from its default branch.
const bootstrapReadme = `# OctoFaceHub

A catalog of IPFS-hosted models for OctoFace.

## About

OctoFaceHub is a hub for discovering and sharing models that can be used
with OctoFace. Models are stored on IPFS, making them decentralized and
accessible from anywhere.

## Contributing

To contribute a model, use the OctoFace CLI:

` + "```bash" + `
octoface upload /path/to/model --name "My Model" --description "A description" --tags "tag1,tag2"
` + "```" + `
`

// PublishModel runs the full publication workflow for a model rooted at
// dir: pick the direct-push or fork-based path, create the submission
// branch, commit the model files, fold the entry into the shared catalog,
// and open the pull request. It returns the pull request's web URL. The
// first failing step aborts the run; branches and commits already created
// are left in place.
func (c *Client) PublishModel(meta model.Metadata, dir string) (*Result, error) {
	files, err := renderFiles(meta, dir)
	if err != nil {
		return nil, err
	}
	branch := BranchName(meta.Name, time.Now().Unix())

	access, err := c.ResolveAccess()
	if err != nil {
		// Fail closed: without a confirmed capability, submit from a fork.
		c.Progress("Could not determine push access (%v), using fork-based submission", err)
	}
	if access == AccessPush {
		return c.publishDirect(meta, branch, files)
	}
	c.Progress("You don't have push access to %s/%s, submitting from a fork", c.target.Owner, c.target.Repo)
	return c.publishFork(meta, branch, files)
}

func (c *Client) publishDirect(meta model.Metadata, branch string, files []File) (*Result, error) {
	if err := c.EnsureInitialized(); err != nil {
		return nil, err
	}
	if err := c.EnsureBranch(c.target.Owner, branch, c.target.BaseBranch); err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := c.PutFile(c.target.Owner, branch, f.Path, f.Message, f.Content); err != nil {
			return nil, err
		}
	}
	if err := c.MergeCatalog(c.target.Owner, branch, meta.Entry()); err != nil {
		return nil, err
	}
	url, err := c.openPullRequest(meta, branch)
	if err != nil {
		return nil, err
	}
	return &Result{PRURL: url, Branch: branch}, nil
}

func (c *Client) publishFork(meta model.Metadata, branch string, files []File) (*Result, error) {
	forkURL, err := c.EnsureFork()
	if err != nil {
		return nil, err
	}
	c.Progress("Using fork: %s", forkURL)
	if err := c.EnsureForkBranch(branch, c.target.BaseBranch); err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := c.PutFile(c.login, branch, f.Path, f.Message, f.Content); err != nil {
			return nil, err
		}
	}
	// The catalog is merged on the fork's branch; the upstream catalog only
	// changes once the pull request is merged.
	if err := c.MergeCatalog(c.login, branch, meta.Entry()); err != nil {
		return nil, err
	}
	url, err := c.openPullRequest(meta, c.login+":"+branch)
	if err != nil {
		return nil, err
	}
	return &Result{PRURL: url, Branch: branch, Forked: true}, nil
}

// EnsureInitialized makes sure the target repository has a commit on its
// base branch, creating a bootstrap README when it does not.
func (c *Client) EnsureInitialized() error {
	if _, _, err := c.gh.Repositories.GetBranch(c.ctx, c.target.Owner, c.target.Repo, c.target.BaseBranch); err == nil {
		return nil
	}
	c.Progress("Repository is empty, creating initial commit")
	opts := &github.RepositoryContentFileOptions{
		Message: github.String("Initial commit"),
		Content: []byte(bootstrapReadme),
	}
	_, _, err := c.gh.Repositories.CreateFile(c.ctx, c.target.Owner, c.target.Repo, "README.md", opts)
	return errors.Wrap(err, "create initial commit")
}

// EnsureFork returns the caller's fork of the target repository, creating
// it when absent. Fork creation is asynchronous on GitHub's side; an
// accepted-but-pending fork counts as success.
func (c *Client) EnsureFork() (string, error) {
	if repo, _, err := c.gh.Repositories.Get(c.ctx, c.login, c.target.Repo); err == nil {
		return repo.GetHTMLURL(), nil
	}
	c.Progress("Creating a fork of %s/%s", c.target.Owner, c.target.Repo)
	fork, _, err := c.gh.Repositories.CreateFork(c.ctx, c.target.Owner, c.target.Repo, nil)
	if err != nil {
		if _, ok := err.(*github.AcceptedError); ok {
			return fmt.Sprintf("https://github.com/%s/%s", c.login, c.target.Repo), nil
		}
		return "", errors.Wrap(err, "create fork")
	}
	return fork.GetHTMLURL(), nil
}

func (c *Client) openPullRequest(meta model.Metadata, head string) (string, error) {
	desc := meta.Description
	if desc == "" {
		desc = "No description provided"
	}
	pr, _, err := c.gh.PullRequests.Create(c.ctx, c.target.Owner, c.target.Repo, &github.NewPullRequest{
		Title: github.String(fmt.Sprintf("Add model: %s", meta.Name)),
		Head:  github.String(head),
		Base:  github.String(c.target.BaseBranch),
		Body: github.String(fmt.Sprintf(
			"This PR adds the %s model by @%s.\n\nModel description: %s\n\nIPFS CID: `%s`",
			meta.Name, meta.Author, desc, meta.IPFSCID)),
	})
	if err != nil {
		return "", errors.Wrap(err, "create pull request")
	}
	return pr.GetHTMLURL(), nil
}

// renderFiles produces the three per-model files committed with every
// submission. The tree listing is skipped when no local directory is
// available.
func renderFiles(meta model.Metadata, dir string) ([]File, error) {
	metadataJSON, err := model.RenderMetadata(meta)
	if err != nil {
		return nil, errors.Wrap(err, "render metadata")
	}
	repoDir := meta.RepoDir()
	files := []File{
		{
			Path:    repoDir + "/README.md",
			Message: fmt.Sprintf("Add README for %s", meta.Name),
			Content: []byte(model.RenderReadme(meta)),
		},
		{
			Path:    repoDir + "/metadata.json",
			Message: fmt.Sprintf("Add metadata for %s", meta.Name),
			Content: metadataJSON,
		},
	}
	if dir != "" {
		tree, err := model.Tree(dir)
		if err != nil {
			return nil, errors.Wrap(err, "build file tree")
		}
		treeJSON, err := model.RenderTree(tree)
		if err != nil {
			return nil, errors.Wrap(err, "render file tree")
		}
		files = append(files, File{
			Path:    repoDir + "/tree.json",
			Message: fmt.Sprintf("Add file tree for %s", meta.Name),
			Content: treeJSON,
		})
	}
	return files, nil
}
