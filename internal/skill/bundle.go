package skill

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	ierrors "github.com/worktree-skill/installer/internal/errors"
)

const (
	// ContentName is the skill document inside a bundle.
	ContentName = "SKILL.md"

	// DefaultName is used when neither manifest nor frontmatter names the skill.
	DefaultName = "git-worktree"

	// Marker identifies a file previously written by this installer.
	Marker = "Git Worktree Management"
)

// DefaultFiles selects auxiliary files when the manifest lists none.
var DefaultFiles = []string{"scripts/**"}

// FallbackContent is installed when the bundle has no SKILL.md.
const FallbackContent = `---
name: git-worktree
description: Create, manage, and remove Git worktrees.
license: Apache-2.0
compatibility: Requires git
---

# Git Worktree Management Assistant

You are a Git Worktree Management Assistant. Help users create, manage, and remove Git worktrees.

## Quick Commands

` + "```bash" + `
# Create worktree for new branch
git worktree add ../project-feature -b feature/name origin/main

# List worktrees
git worktree list

# Remove worktree
git worktree remove ../project-feature

# Clean stale references
git worktree prune
` + "```" + `

Guide users interactively through worktree operations.
`

// ContainsMarker reports whether content was written by this installer.
func ContainsMarker(content string) bool {
	return strings.Contains(content, Marker)
}

// Source returns an external bundle directory as a filesystem.
func Source(dir string) fs.FS {
	return os.DirFS(dir)
}

// Load reads a bundle from fsys. It has no side effects.
//
// A missing SKILL.md is not an error: FallbackContent is returned with no
// auxiliary files. A malformed frontmatter header is treated as no header
// and left for Validate to report. The resolved name must match the skill
// name format since it becomes a path segment. Auxiliary files are chosen by the manifest's doublestar
// patterns; shell scripts and files with an executable source mode are
// written with mode 0755, everything else 0644.
func Load(fsys fs.FS) (*Bundle, error) {
	b := &Bundle{}

	if err := b.loadManifest(fsys); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(fsys, ContentName)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		b.Content = FallbackContent
		b.Fallback = true
	case err != nil:
		return nil, ierrors.SkillLoad(ContentName, err)
	default:
		b.Content = string(data)
	}

	fm, _, ok, err := ParseFrontmatter(b.Content)
	if err != nil {
		b.headerErr = err
		fm, ok = Frontmatter{}, false
	}
	b.Frontmatter = fm
	b.hasHeader = ok

	if b.Manifest.Skill.Name == "" {
		b.Manifest.Skill.Name = fm.Name
	}
	if b.Manifest.Skill.Name == "" {
		b.Manifest.Skill.Name = DefaultName
	}
	if b.Manifest.Skill.Description == "" {
		b.Manifest.Skill.Description = fm.Description
	}
	if name := b.Manifest.Skill.Name; !namePattern.MatchString(name) {
		return nil, ierrors.SkillInvalid(fmt.Sprintf("skill name %q must be lowercase alphanumeric with hyphens", name)).
			WithDetail("name", name)
	}

	if b.Fallback {
		return b, nil
	}

	if err := b.loadFiles(fsys); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) loadManifest(fsys fs.FS) error {
	data, err := fs.ReadFile(fsys, ManifestName)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return ierrors.SkillLoad(ManifestName, err)
	}

	m, err := ParseManifest(bytes.NewReader(data))
	if err != nil {
		return ierrors.SkillLoad(ManifestName, err)
	}
	b.Manifest = *m
	b.hasManifest = true
	return nil
}

func (b *Bundle) loadFiles(fsys fs.FS) error {
	patterns := b.Manifest.Skill.Files
	explicit := len(patterns) > 0
	if !explicit {
		patterns = DefaultFiles
	}

	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return ierrors.SkillLoad(pattern, err)
		}
		if len(matches) == 0 {
			if explicit {
				b.unmatched = append(b.unmatched, pattern)
			}
			continue
		}

		for _, name := range matches {
			if seen[name] || name == ContentName || name == ManifestName {
				continue
			}
			seen[name] = true

			f, err := readFile(fsys, name)
			if err != nil {
				return err
			}
			b.Files = append(b.Files, f)
		}
	}

	sort.Slice(b.Files, func(i, j int) bool {
		return b.Files[i].Path < b.Files[j].Path
	})
	return nil
}

func readFile(fsys fs.FS, name string) (File, error) {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return File{}, ierrors.SkillLoad(name, err)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return File{}, ierrors.SkillLoad(name, err)
	}
	return File{Path: name, Data: data, Mode: fileMode(name, info.Mode())}, nil
}

// fileMode returns the mode a bundle file is written with. Embedded files
// carry no executable bit, so scripts are recognised by extension too.
func fileMode(name string, src fs.FileMode) fs.FileMode {
	if path.Ext(name) == ".sh" || src&0o111 != 0 {
		return 0o755
	}
	return 0o644
}
