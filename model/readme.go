package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GatewayURL returns the public IPFS gateway URL for a CID.
func GatewayURL(cid string) string {
	return "https://w3s.link/ipfs/" + cid
}

// RenderMetadata serializes the metadata as pretty-printed JSON for the
// model's metadata.json file.
func RenderMetadata(m Metadata) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// RenderReadme produces the model's README.md from a fixed template.
func RenderReadme(m Metadata) string {
	tags := "None"
	if len(m.Tags) > 0 {
		quoted := make([]string, len(m.Tags))
		for i, t := range m.Tags {
			quoted[i] = "`" + t + "`"
		}
		tags = strings.Join(quoted, ", ")
	}
	return fmt.Sprintf(`# %s

%s

## Details

- **Author**: [%s](https://github.com/%s)
- **IPFS CID**: `+"`%s`"+`

## Tags

%s

## How to use

### Download from IPFS

`+"```bash"+`
# Install the w3 CLI if needed
npm i --global @web3-storage/w3cli

# Download the model
w3 get %s -o ./models/%s
`+"```"+`

## Web links

- [View on IPFS Gateway](%s)
`,
		m.Name, m.Description, m.Author, m.Author, m.IPFSCID,
		tags, m.IPFSCID, Slug(m.Name), GatewayURL(m.IPFSCID))
}
