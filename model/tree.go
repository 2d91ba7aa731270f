package model

import (
	"encoding/json"
	"io/fs"
	"path/filepath"
)

// TreeEntry is one file in a model's tree.json listing.
type TreeEntry struct {
	Path string `json:"path"`
	Size int64  `json:"size_bytes"`
}

// Tree lists every file under dir with its size, using slash-separated
// paths relative to dir. WalkDir visits entries in lexical order, so the
// listing is deterministic.
func Tree(dir string) ([]TreeEntry, error) {
	entries := []TreeEntry{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries = append(entries, TreeEntry{
			Path: filepath.ToSlash(rel),
			Size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// RenderTree serializes a tree listing as pretty-printed JSON.
func RenderTree(entries []TreeEntry) ([]byte, error) {
	return json.MarshalIndent(entries, "", "  ")
}
