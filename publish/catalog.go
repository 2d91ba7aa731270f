package publish

import (
	"fmt"

	"github.com/google/go-github/v32/github"
	"github.com/pkg/errors"

	"github.com/octofacehub/octoface/model"
)

// MergeCatalog folds entry into the shared model catalog on branch. A
// missing catalog starts empty; a catalog that fails to parse is also
// treated as empty, matching the hub's established recovery behavior.
// Any other read failure is surfaced, since writing without the current
// blob SHA would be rejected anyway. The write carries the SHA captured
// during the read, so a concurrent catalog update makes this call fail
// rather than clobber.
func (c *Client) MergeCatalog(owner, branch string, entry model.CatalogEntry) error {
	data, sha, err := c.getFile(owner, branch, model.CatalogPath)
	if err != nil {
		if !isNotFound(err) {
			return errors.Wrap(err, "read model map")
		}
		data, sha = nil, ""
	}
	catalog := model.ParseCatalog(data)
	catalog.Merge(entry)

	rendered, err := catalog.Render()
	if err != nil {
		return errors.Wrap(err, "render catalog")
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(fmt.Sprintf("Update model map with %s", entry.Name)),
		Content: rendered,
		Branch:  github.String(branch),
	}
	if sha != "" {
		opts.SHA = github.String(sha)
		_, _, err = c.gh.Repositories.UpdateFile(c.ctx, owner, c.target.Repo, model.CatalogPath, opts)
	} else {
		_, _, err = c.gh.Repositories.CreateFile(c.ctx, owner, c.target.Repo, model.CatalogPath, opts)
	}
	return errors.Wrap(err, "update model map")
}
