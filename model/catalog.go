package model

import (
	"encoding/json"
	"path"
	"time"
)

// CatalogPath is where the shared model catalog lives in the hub repository.
const CatalogPath = "models/model-map.json"

// CatalogEntry is a catalog projection of Metadata plus the model's
// repository path, which acts as the entry's natural key.
type CatalogEntry struct {
	Name        string    `json:"name"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	IPFSCID     string    `json:"ipfs_cid"`
	SizeMB      float64   `json:"size_mb"`
	CreatedAt   time.Time `json:"created_at"`
	Path        string    `json:"path"`
}

// Entry projects the metadata into its catalog form.
func (m Metadata) Entry() CatalogEntry {
	return CatalogEntry{
		Name:        m.Name,
		Author:      m.Author,
		Description: m.Description,
		Tags:        m.Tags,
		IPFSCID:     m.IPFSCID,
		SizeMB:      m.SizeMB,
		CreatedAt:   m.CreatedAt,
		Path:        m.RepoDir(),
	}
}

// RepoDir returns the model's directory inside the hub repository.
func (m Metadata) RepoDir() string {
	return path.Join("models", m.Author, Slug(m.Name))
}

// Catalog is the shared index of all published models.
type Catalog struct {
	Models []CatalogEntry `json:"models"`
}

// ParseCatalog decodes catalog JSON. Malformed content yields an empty
// catalog rather than an error, matching the hub's recovery behavior.
func ParseCatalog(data []byte) Catalog {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return Catalog{Models: []CatalogEntry{}}
	}
	if c.Models == nil {
		c.Models = []CatalogEntry{}
	}
	return c
}

// Merge inserts entry into the catalog. An existing entry with the same
// path is replaced in place; otherwise the entry is appended. Order of the
// other entries is preserved.
func (c *Catalog) Merge(entry CatalogEntry) {
	for i, m := range c.Models {
		if m.Path == entry.Path {
			c.Models[i] = entry
			return
		}
	}
	c.Models = append(c.Models, entry)
}

// Render serializes the catalog as pretty-printed JSON.
func (c Catalog) Render() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
