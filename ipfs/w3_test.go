package ipfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCID(t *testing.T) {
	cases := []struct {
		name    string
		out     string
		want    string
		wantErr bool
	}{
		{
			name: "json root",
			out:  `{"root": {"/": "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"}}`,
			want: "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi",
		},
		{
			name: "gateway url",
			out:  "⁂ https://w3s.link/ipfs/bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi",
			want: "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi",
		},
		{
			name: "bare cid",
			out:  "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi\n",
			want: "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi",
		},
		{
			name: "v0 cid",
			out:  "added QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
			want: "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
		},
		{
			name:    "no cid",
			out:     "nothing useful here",
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cid, err := ParseCID(c.out)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, cid)
		})
	}
}

// fakeW3 writes a stub w3 executable and returns its path.
func fakeW3(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "w3")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))
	return path
}

func TestUpload(t *testing.T) {
	bin := fakeW3(t, `echo '{"root": {"/": "bafytestcid"}}'`)
	u := &Uploader{Bin: bin}

	cid, err := u.Upload(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "bafytestcid", cid)
}

func TestUploadFailure(t *testing.T) {
	bin := fakeW3(t, `echo 'space not set' >&2; exit 1`)
	u := &Uploader{Bin: bin}

	_, err := u.Upload(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "space not set")
}

func TestCheck(t *testing.T) {
	bin := fakeW3(t, `if [ "$1" = "did" ]; then echo "did:key:z6MkTest"; fi`)
	u := &Uploader{Bin: bin}
	assert.NoError(t, u.Check())
}

func TestCheckNotLoggedIn(t *testing.T) {
	bin := fakeW3(t, `exit 1`)
	u := &Uploader{Bin: bin}
	assert.Error(t, u.Check())
}

func TestCheckMissingBinary(t *testing.T) {
	u := &Uploader{Bin: filepath.Join(t.TempDir(), "no-such-w3")}
	err := u.Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoggedIn(t *testing.T) {
	bin := fakeW3(t, `if [ "$1" = "did" ]; then echo "did:key:z6MkTest"; fi`)
	assert.True(t, (&Uploader{Bin: bin}).LoggedIn())

	bin = fakeW3(t, `exit 1`)
	assert.False(t, (&Uploader{Bin: bin}).LoggedIn())
}

func TestLogin(t *testing.T) {
	bin := fakeW3(t, `exit 0`)
	assert.NoError(t, (&Uploader{Bin: bin}).Login("you@example.com"))
}

func TestLoginFailure(t *testing.T) {
	bin := fakeW3(t, `echo 'email rejected' >&2; exit 1`)
	err := (&Uploader{Bin: bin}).Login("you@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email rejected")
}

func TestHasSpace(t *testing.T) {
	bin := fakeW3(t, `if [ "$1" = "space" ] && [ "$2" = "ls" ]; then echo "did:key:z6MkSpace octoface-space"; fi`)
	assert.True(t, (&Uploader{Bin: bin}).HasSpace())

	// No spaces prints nothing.
	bin = fakeW3(t, `exit 0`)
	assert.False(t, (&Uploader{Bin: bin}).HasSpace())
}

func TestCreateSpace(t *testing.T) {
	bin := fakeW3(t, `if [ "$1" != "space" ]; then exit 1; fi`)
	assert.NoError(t, (&Uploader{Bin: bin}).CreateSpace("octoface-space"))
}

func TestCreateSpaceFailure(t *testing.T) {
	bin := fakeW3(t, `echo 'not authorized' >&2; exit 1`)
	err := (&Uploader{Bin: bin}).CreateSpace("octoface-space")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authorized")
}

func TestEnsureInstalledAlreadyPresent(t *testing.T) {
	bin := fakeW3(t, `exit 0`)
	// NPM deliberately unset: it must not be consulted.
	assert.NoError(t, (&Uploader{Bin: bin}).EnsureInstalled())
}

func TestEnsureInstalledInstallFails(t *testing.T) {
	npm := filepath.Join(t.TempDir(), "npm")
	require.NoError(t, os.WriteFile(npm, []byte("#!/bin/sh\necho 'EACCES' >&2; exit 1\n"), 0755))

	u := &Uploader{Bin: filepath.Join(t.TempDir(), "no-such-w3"), NPM: npm}
	err := u.EnsureInstalled()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EACCES")
}

func TestEnsureInstalledInstallDoesNotProduceBinary(t *testing.T) {
	npm := filepath.Join(t.TempDir(), "npm")
	require.NoError(t, os.WriteFile(npm, []byte("#!/bin/sh\nexit 0\n"), 0755))

	u := &Uploader{Bin: filepath.Join(t.TempDir(), "no-such-w3"), NPM: npm}
	err := u.EnsureInstalled()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still not found")
}
