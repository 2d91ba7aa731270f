package publish

import (
	"net/http"

	"github.com/google/go-github/v32/github"
	"github.com/pkg/errors"
)

// PutFile writes content to path on branch in owner's copy of the hub
// repository, creating the file or updating it in place. Each call
// produces one commit. If another actor moves the blob between the read
// and the write, the contents API rejects the update; the error is
// surfaced without retry.
func (c *Client) PutFile(owner, branch, path, message string, content []byte) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		Branch:  github.String(branch),
	}
	_, sha, err := c.getFile(owner, branch, path)
	switch {
	case err == nil && sha != "":
		opts.SHA = github.String(sha)
		_, _, err = c.gh.Repositories.UpdateFile(c.ctx, owner, c.target.Repo, path, opts)
		return errors.Wrapf(err, "update %s", path)
	case err == nil || isNotFound(err):
		_, _, err = c.gh.Repositories.CreateFile(c.ctx, owner, c.target.Repo, path, opts)
		return errors.Wrapf(err, "create %s", path)
	default:
		return errors.Wrapf(err, "read %s", path)
	}
}

// isNotFound reports whether err is a GitHub 404, the only read failure
// that means the file does not exist yet.
func isNotFound(err error) bool {
	resp, ok := err.(*github.ErrorResponse)
	return ok && resp.Response != nil && resp.Response.StatusCode == http.StatusNotFound
}

// getFile fetches a file's decoded content and blob SHA on a branch.
func (c *Client) getFile(owner, branch, path string) ([]byte, string, error) {
	file, _, _, err := c.gh.Repositories.GetContents(c.ctx, owner, c.target.Repo, path,
		&github.RepositoryContentGetOptions{Ref: branch})
	if err != nil {
		return nil, "", err
	}
	if file == nil {
		return nil, "", errors.Errorf("path %s is not a file", path)
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, "", errors.Wrapf(err, "decode %s", path)
	}
	return []byte(content), file.GetSHA(), nil
}
