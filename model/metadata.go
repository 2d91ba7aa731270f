package model

import (
	"io/fs"
	"math"
	"path/filepath"
	"strings"
	"time"
)

// Metadata describes a published model. It is written verbatim as the
// model's metadata.json and embedded into the catalog entry.
type Metadata struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Tags        []string  `json:"tags"`
	IPFSCID     string    `json:"ipfs_cid"`
	SizeMB      float64   `json:"size_mb"`
	CreatedAt   time.Time `json:"created_at"`
}

// New builds a Metadata record stamped with the current UTC time.
// An empty author falls back to "anonymous".
func New(name, description, author, cid string, tags []string) Metadata {
	if author == "" {
		author = "anonymous"
	}
	if tags == nil {
		tags = []string{}
	}
	return Metadata{
		Name:        name,
		Description: description,
		Author:      author,
		Tags:        tags,
		IPFSCID:     cid,
		CreatedAt:   time.Now().UTC(),
	}
}

// Slug converts a model name to its directory-safe form.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// ParseTags splits a comma-separated tag string, trimming whitespace and
// dropping empty items.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// DirSizeMB returns the aggregate size of all files under dir in megabytes,
// rounded to two decimal places.
func DirSizeMB(dir string) (float64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	mb := float64(total) / (1024 * 1024)
	return math.Round(mb*100) / 100, nil
}
