package skill

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the expected skill manifest filename.
const ManifestName = "skill.toml"

// ParseManifest parses a skill manifest from a reader.
func ParseManifest(reader io.Reader) (*Manifest, error) {
	var m Manifest
	if _, err := toml.NewDecoder(reader).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode skill manifest: %w", err)
	}
	return &m, nil
}

// ParseManifestString parses a skill manifest from a string.
func ParseManifestString(content string) (*Manifest, error) {
	return ParseManifest(strings.NewReader(content))
}
