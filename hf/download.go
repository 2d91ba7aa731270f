// Package hf downloads model snapshots from the HuggingFace hub.
package hf

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DefaultBaseURL is the public HuggingFace hub endpoint.
const DefaultBaseURL = "https://huggingface.co"

// Downloader fetches model files from the hub's HTTP API.
type Downloader struct {
	BaseURL string
	Client  *http.Client
}

// NewDownloader returns a Downloader against the public hub.
func NewDownloader() *Downloader {
	return &Downloader{BaseURL: DefaultBaseURL, Client: http.DefaultClient}
}

type modelInfo struct {
	Siblings []struct {
		Filename string `json:"rfilename"`
	} `json:"siblings"`
}

// Download fetches every file of modelID's main revision into a directory
// named after the model under destDir, and returns that directory.
func (d *Downloader) Download(modelID, destDir string) (string, error) {
	info, err := d.modelInfo(modelID)
	if err != nil {
		return "", err
	}
	target := filepath.Join(destDir, path.Base(modelID))
	if err := os.MkdirAll(target, 0755); err != nil {
		return "", errors.Wrap(err, "create model directory")
	}
	for _, s := range info.Siblings {
		name := s.Filename
		// The file list comes from a remote service; refuse anything that
		// would escape the target directory.
		if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "..") {
			continue
		}
		if err := d.fetchFile(modelID, name, target); err != nil {
			return "", err
		}
	}
	return target, nil
}

func (d *Downloader) modelInfo(modelID string) (*modelInfo, error) {
	url := fmt.Sprintf("%s/api/models/%s", d.BaseURL, modelID)
	resp, err := d.Client.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "get model info for %s", modelID)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("model %s not found on HuggingFace (status %d)", modelID, resp.StatusCode)
	}
	var info modelInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, errors.Wrapf(err, "decode model info for %s", modelID)
	}
	return &info, nil
}

func (d *Downloader) fetchFile(modelID, name, target string) error {
	url := fmt.Sprintf("%s/%s/resolve/main/%s", d.BaseURL, modelID, name)
	resp, err := d.Client.Get(url)
	if err != nil {
		return errors.Wrapf(err, "download %s", name)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("download %s: status %d", name, resp.StatusCode)
	}
	dest := filepath.Join(target, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, "create directory for %s", name)
	}
	f, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "create %s", name)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	return nil
}
