// Package skill loads the skill bundle that gets installed: the SKILL.md
// document, its skill.toml manifest and any auxiliary files such as scripts.
package skill

import "io/fs"

// Manifest represents a skill manifest (skill.toml).
type Manifest struct {
	// Skill contains metadata about the skill
	Skill SkillMeta `toml:"skill"`
}

// SkillMeta contains metadata for the skill.
type SkillMeta struct {
	// Name is the unique identifier for this skill (required)
	Name string `toml:"name"`

	// Description is a human-readable description of the skill (required)
	Description string `toml:"description"`

	// Version is the semantic version of the skill (optional)
	Version string `toml:"version,omitempty"`

	// Files lists doublestar patterns of auxiliary files to install next to
	// SKILL.md. If empty, DefaultFiles is used.
	Files []string `toml:"files,omitempty"`
}

// Frontmatter is the YAML header of SKILL.md.
type Frontmatter struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	License       string `yaml:"license,omitempty"`
	Compatibility string `yaml:"compatibility,omitempty"`
}

// File is an auxiliary bundle file, relative to the skill directory.
type File struct {
	Path string
	Data []byte
	Mode fs.FileMode
}

// Bundle is everything written for one target.
type Bundle struct {
	Manifest    Manifest
	Frontmatter Frontmatter

	// Content is the full SKILL.md text, written verbatim.
	Content string

	Files []File

	// Fallback is set when the source had no SKILL.md and the built-in
	// minimal content is used instead.
	Fallback bool

	hasManifest bool
	hasHeader   bool
	headerErr   error
	unmatched   []string
}

// Name returns the skill name used for {{name}} in target paths.
func (b *Bundle) Name() string {
	return b.Manifest.Skill.Name
}
