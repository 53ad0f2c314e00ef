package cli

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("# Git Worktree Management\n\nUse `git worktree add`.\n", 80, false)

	if !strings.Contains(out, "Git Worktree Management") {
		t.Errorf("RenderMarkdown() lost the heading:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain rendering should not contain escape codes:\n%s", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("trailing newlines should be trimmed")
	}
}

func TestRenderMarkdown_NarrowWidth(t *testing.T) {
	out := RenderMarkdown("plain paragraph", 10, false)
	if !strings.Contains(out, "plain paragraph") {
		t.Errorf("RenderMarkdown() = %q", out)
	}
}
