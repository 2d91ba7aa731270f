package publish

import "github.com/pkg/errors"

// AccessLevel describes the caller's capability on the target repository.
type AccessLevel int

const (
	// AccessUnknown means the level could not be determined.
	AccessUnknown AccessLevel = iota
	// AccessReadOnly means the caller cannot push branches to the target.
	AccessReadOnly
	// AccessPush means the caller can push branches directly.
	AccessPush
)

// String returns the level's name for diagnostics.
func (a AccessLevel) String() string {
	switch a {
	case AccessReadOnly:
		return "read-only"
	case AccessPush:
		return "push"
	default:
		return "unknown"
	}
}

// ResolveAccess reports whether the authenticated user can push to the
// target repository. Push or admin permission counts as push capability.
// Transport and API failures return AccessUnknown together with the cause,
// so callers can fail closed to the fork path without losing diagnostics.
func (c *Client) ResolveAccess() (AccessLevel, error) {
	repo, _, err := c.gh.Repositories.Get(c.ctx, c.target.Owner, c.target.Repo)
	if err != nil {
		return AccessUnknown, errors.Wrapf(err, "get repository %s/%s", c.target.Owner, c.target.Repo)
	}
	perms := repo.GetPermissions()
	if perms["push"] || perms["admin"] {
		return AccessPush, nil
	}
	return AccessReadOnly, nil
}
