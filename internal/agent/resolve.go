package agent

import (
	"os"
	"path/filepath"
	"strings"

	ierrors "github.com/worktree-skill/installer/internal/errors"
)

// Resolve picks the candidate path for spec under the given scope preference.
//
// With no preference the default candidate is returned. Otherwise the first
// candidate with a matching scope wins, and when none matches the first
// candidate is used so a target without (say) a global location still installs.
func Resolve(spec TargetSpec, pref Scope) (PathCandidate, error) {
	if len(spec.Paths) == 0 {
		return PathCandidate{}, ierrors.TargetNoPaths(spec.ID)
	}

	if pref == ScopeAny {
		c, _ := DefaultCandidate(spec)
		return c, nil
	}

	for _, c := range spec.Paths {
		if c.Scope == pref {
			return c, nil
		}
	}
	return spec.Paths[0], nil
}

// Expand turns a candidate template into an absolute path.
// Relative paths are joined to workDir, which callers read at install time.
func Expand(c PathCandidate, skillName, workDir string) string {
	path := strings.ReplaceAll(c.Path, "{{name}}", skillName)
	path = ExpandHome(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	return filepath.Clean(path)
}

// ExpandHome expands ~ at the start of a path to the user's home directory.
// If ~ is not at the start or home directory cannot be determined, returns path unchanged.
func ExpandHome(path string) string {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
