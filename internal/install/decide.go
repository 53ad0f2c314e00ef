package install

import (
	"fmt"
	"strings"

	"github.com/worktree-skill/installer/internal/skill"
)

// Decide returns the write decision for a path.
//
//	absent                      -> ActionWrite
//	present, force              -> ActionOverwrite
//	present, marker found       -> ActionAlreadyExists
//	present, no marker          -> ActionOverwrite
//
// A file without the marker is unrelated or placeholder content and is
// replaced.
func Decide(exists bool, existing string, force bool) Action {
	switch {
	case !exists:
		return ActionWrite
	case force:
		return ActionOverwrite
	case skill.ContainsMarker(existing):
		return ActionAlreadyExists
	default:
		return ActionOverwrite
	}
}

// Summarize describes existing file content in one line for conflict prompts.
func Summarize(content string) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	first := ""
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "#") {
			first = l
			break
		}
	}
	if first == "" {
		return fmt.Sprintf("%d line(s)", len(lines))
	}
	return fmt.Sprintf("%d line(s), %q", len(lines), first)
}
