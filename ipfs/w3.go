// Package ipfs uploads directories to IPFS through the web3.storage w3
// CLI and parses out the resulting content identifier.
package ipfs

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Uploader shells out to the w3 CLI.
type Uploader struct {
	// Bin is the w3 executable; tests point it at a stub script.
	Bin string
	// NPM is the npm executable used to install the w3 CLI when missing.
	NPM string
}

// NewUploader returns an Uploader using the w3 CLI from PATH.
func NewUploader() *Uploader {
	return &Uploader{Bin: "w3", NPM: "npm"}
}

// Check verifies that the w3 CLI is installed and logged in to
// web3.storage. It runs no uploads.
func (u *Uploader) Check() error {
	if _, err := exec.LookPath(u.Bin); err != nil {
		return errors.New("w3 CLI not found: install it with 'npm i --global @web3-storage/w3cli'")
	}
	if !u.LoggedIn() {
		return errors.New("not logged in to web3.storage: run 'octoface setup-w3 --email you@example.com'")
	}
	return nil
}

// EnsureInstalled makes sure the w3 CLI is available, installing it
// globally through npm when it is missing.
func (u *Uploader) EnsureInstalled() error {
	if _, err := exec.LookPath(u.Bin); err == nil {
		return nil
	}
	out, err := exec.Command(u.NPM, "i", "--global", "@web3-storage/w3cli").CombinedOutput()
	if err != nil {
		return errors.Errorf("w3 CLI not found and npm install failed: %s", strings.TrimSpace(string(out)))
	}
	if _, err := exec.LookPath(u.Bin); err != nil {
		return errors.New("w3 CLI still not found after npm install")
	}
	return nil
}

// LoggedIn reports whether the w3 CLI holds a web3.storage identity.
func (u *Uploader) LoggedIn() bool {
	out, err := exec.Command(u.Bin, "did").Output()
	return err == nil && strings.Contains(string(out), "did:key:")
}

// Login starts the w3 email verification flow. The CLI blocks until the
// emailed link is clicked, so callers should tell the user to check
// their inbox first.
func (u *Uploader) Login(email string) error {
	if out, err := exec.Command(u.Bin, "login", "--email", email).CombinedOutput(); err != nil {
		return errors.Errorf("w3 login failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

// HasSpace reports whether at least one storage space exists.
func (u *Uploader) HasSpace() bool {
	out, err := exec.Command(u.Bin, "space", "ls").Output()
	return err == nil && strings.TrimSpace(string(out)) != ""
}

// CreateSpace creates a named storage space and selects it for uploads.
func (u *Uploader) CreateSpace(name string) error {
	if out, err := exec.Command(u.Bin, "space", "create", name).CombinedOutput(); err != nil {
		return errors.Errorf("w3 space create failed: %s", strings.TrimSpace(string(out)))
	}
	if out, err := exec.Command(u.Bin, "space", "use", name).CombinedOutput(); err != nil {
		return errors.Errorf("w3 space use failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

// Upload stores dir on IPFS and returns the root CID.
func (u *Uploader) Upload(dir string) (string, error) {
	cmd := exec.Command(u.Bin, "up", dir, "--json")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "w3 up failed: %s", strings.TrimSpace(stderr.String()))
	}
	return ParseCID(stdout.String())
}

// ParseCID extracts the root CID from w3 output. Current w3 versions
// print a JSON document with the root CID under "root"; older versions
// print a gateway URL or a bare CID.
func ParseCID(out string) (string, error) {
	var doc struct {
		Root map[string]string `json:"root"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err == nil {
		if cid := doc.Root["/"]; cid != "" {
			return cid, nil
		}
	}
	for _, field := range strings.Fields(out) {
		field = strings.Trim(field, `"',`)
		if i := strings.Index(field, "/ipfs/"); i >= 0 {
			field = field[i+len("/ipfs/"):]
		}
		if strings.HasPrefix(field, "bafy") || strings.HasPrefix(field, "Qm") {
			return field, nil
		}
	}
	return "", errors.New("no CID found in w3 output")
}
