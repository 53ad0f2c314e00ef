package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/worktree-skill/installer/internal/cli"
	ierrors "github.com/worktree-skill/installer/internal/errors"
	"github.com/worktree-skill/installer/internal/skill"
	"github.com/worktree-skill/installer/internal/testutil"
)

const customTargetConfig = `
[targets.my-tool]
name = "My Tool"
description = "In-house assistant"
docs = "https://my-tool.invalid/docs"

[[targets.my-tool.paths]]
path = ".my-tool/{{name}}.md"
scope = "project"
`

func claudeProject(ws *testutil.Workspace, parts ...string) string {
	return ws.WorkPath(append([]string{".claude", "skills", "git-worktree"}, parts...)...)
}

func TestInstall_Fresh(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	stdout, _, err := execute(t, "", "-C", ws.Work, "--install", "claude-code")
	if err != nil {
		t.Fatalf("install error = %v", err)
	}

	path := claudeProject(ws, "SKILL.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("skill not written: %v", err)
	}
	if !skill.ContainsMarker(string(data)) {
		t.Error("installed content should carry the marker")
	}
	testutil.AssertExecutable(t, claudeProject(ws, "scripts", "setup-worktree.sh"))

	testutil.AssertContains(t, stdout, "Installation Complete!")
	testutil.AssertContains(t, stdout, "Successfully installed for 1 target(s):")
	testutil.AssertContains(t, stdout, "Claude Code: "+path)
	testutil.AssertContains(t, stdout, "Ask your AI agent about Git worktrees!")
}

func TestInstall_AlreadyExists(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	if _, _, err := execute(t, "", "-C", ws.Work, "--install", "claude-code"); err != nil {
		t.Fatalf("first install error = %v", err)
	}
	before := testutil.Snapshot(t, ws.Work)

	stdout, _, err := execute(t, "", "-C", ws.Work, "--install", "claude-code")
	if err != nil {
		t.Fatalf("second install error = %v", err)
	}

	testutil.AssertContains(t, stdout, "Skipped 1 target(s):")
	testutil.AssertContains(t, stdout, "Skill already exists in "+claudeProject(ws, "SKILL.md"))
	testutil.AssertContains(t, stdout, "--force")
	testutil.AssertNotContains(t, stdout, "Successfully installed")
	testutil.AssertEqual(t, before, testutil.Snapshot(t, ws.Work), "second run must not touch files")
}

func TestInstall_Force(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	path := claudeProject(ws, "SKILL.md")
	testutil.RequireFile(t, path, "# Git Worktree Management\nold copy\n")

	stdout, _, err := execute(t, "", "-C", ws.Work, "--install", "claude-code", "--force")
	if err != nil {
		t.Fatalf("install error = %v", err)
	}

	testutil.AssertContains(t, stdout, "Successfully installed for 1 target(s):")
	data, _ := os.ReadFile(path)
	testutil.AssertNotContains(t, string(data), "old copy")
}

func TestInstall_ForceFromConfig(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	path := claudeProject(ws, "SKILL.md")
	testutil.RequireFile(t, path, "# Git Worktree Management\nold copy\n")
	testutil.RequireFile(t, ws.WorkPath(".git-worktree-skill.toml"), "[install]\nforce = true\n")

	if _, _, err := execute(t, "", "-C", ws.Work, "--install", "claude-code"); err != nil {
		t.Fatalf("install error = %v", err)
	}
	data, _ := os.ReadFile(path)
	testutil.AssertNotContains(t, string(data), "old copy")
}

func TestInstall_UnknownTarget(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	stdout, _, err := execute(t, "", "-C", ws.Work, "--install", "madeup-agent")
	if err != nil {
		t.Fatalf("unknown target should not be fatal: %v", err)
	}
	if ierrors.ExitCode(err) != 0 {
		t.Error("unknown target should exit 0")
	}

	testutil.AssertContains(t, stdout, "Skipped 1 target(s):")
	testutil.AssertContains(t, stdout, `Unknown target "madeup-agent"`)
	if snap := testutil.Snapshot(t, ws.Work); len(snap) != 0 {
		t.Errorf("nothing should be written, got %v", snap)
	}
}

func TestInstall_MixedTargetsKeepOrder(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	stdout, _, err := execute(t, "", "-C", ws.Work, "--install", "cursor,madeup-agent,claude-code", "--json")
	if err != nil {
		t.Fatalf("install error = %v", err)
	}

	var doc struct {
		Installed int `json:"installed"`
		Skipped   int `json:"skipped"`
		Outcomes  []struct {
			Target  string `json:"target"`
			Success bool   `json:"success"`
			Reason  string `json:"reason"`
			Path    string `json:"path"`
		} `json:"outcomes"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("--json output is not JSON: %v\n%s", err, stdout)
	}

	if doc.Installed != 2 || doc.Skipped != 1 {
		t.Errorf("installed=%d skipped=%d, want 2 and 1", doc.Installed, doc.Skipped)
	}
	var order []string
	for _, o := range doc.Outcomes {
		order = append(order, o.Target)
	}
	testutil.AssertEqual(t, "cursor,madeup-agent,claude-code", strings.Join(order, ","))
	testutil.AssertEqual(t, "unknown-target", doc.Outcomes[1].Reason)
	testutil.AssertFileExists(t, ws.WorkPath(".cursor", "skills", "git-worktree", "SKILL.md"))
}

func TestInstall_Global(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	if _, _, err := execute(t, "", "-C", ws.Work, "--install", "claude-code", "--global"); err != nil {
		t.Fatalf("install error = %v", err)
	}

	testutil.AssertFileExists(t, ws.HomePath(".claude", "skills", "git-worktree", "SKILL.md"))
	testutil.AssertFileNotExists(t, claudeProject(ws, "SKILL.md"))
}

func TestInstall_GlobalFallsBackToProject(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	if _, _, err := execute(t, "", "-C", ws.Work, "--install", "roo-code", "--global"); err != nil {
		t.Fatalf("install error = %v", err)
	}
	testutil.AssertFileExists(t, ws.WorkPath(".roo", "skills", "git-worktree", "SKILL.md"))
}

func TestInstall_ScopeFromConfig(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	testutil.RequireFile(t, ws.HomePath(".git-worktree-skill", "config.toml"), "[install]\nscope = \"global\"\n")

	if _, _, err := execute(t, "", "-C", ws.Work, "--install", "cursor"); err != nil {
		t.Fatalf("install error = %v", err)
	}
	testutil.AssertFileExists(t, ws.HomePath(".cursor", "skills", "git-worktree", "SKILL.md"))

	// --project overrides the configured scope.
	if _, _, err := execute(t, "", "-C", ws.Work, "--install", "cursor", "--project"); err != nil {
		t.Fatalf("install error = %v", err)
	}
	testutil.AssertFileExists(t, ws.WorkPath(".cursor", "skills", "git-worktree", "SKILL.md"))
}

func TestInstall_DryRun(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	stdout, _, err := execute(t, "", "-C", ws.Work, "--install", "claude-code,cursor", "--dry-run")
	if err != nil {
		t.Fatalf("dry run error = %v", err)
	}

	testutil.AssertContains(t, stdout, "Would install for 2 target(s):")
	if snap := testutil.Snapshot(t, ws.Work); len(snap) != 0 {
		t.Errorf("dry run wrote files: %v", snap)
	}
}

func TestInstall_ConfigTarget(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	testutil.RequireFile(t, ws.WorkPath(".git-worktree-skill.toml"), customTargetConfig)

	stdout, _, err := execute(t, "", "-C", ws.Work, "--list")
	if err != nil {
		t.Fatalf("--list error = %v", err)
	}
	testutil.AssertContains(t, stdout, "my-tool")
	testutil.AssertCount(t, stdout, "My Tool", 1)

	if _, _, err := execute(t, "", "-C", ws.Work, "--install", "my-tool"); err != nil {
		t.Fatalf("install error = %v", err)
	}
	testutil.AssertFileExists(t, ws.WorkPath(".my-tool", "git-worktree.md"))
	testutil.AssertFileNotExists(t, ws.WorkPath(".my-tool", "scripts", "setup-worktree.sh"))
}

func TestInstall_Source(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	src := t.TempDir()
	testutil.RequireFile(t, filepath.Join(src, "SKILL.md"), testutil.SkillContent)
	testutil.RequireFile(t, filepath.Join(src, "scripts", "extra.sh"), testutil.ScriptContent)

	if _, _, err := execute(t, "", "-C", ws.Work, "--install", "claude-code", "--source", src); err != nil {
		t.Fatalf("install error = %v", err)
	}
	testutil.AssertFileContent(t, claudeProject(ws, "SKILL.md"), testutil.SkillContent)
	testutil.AssertExecutable(t, claudeProject(ws, "scripts", "extra.sh"))
	testutil.AssertFileNotExists(t, claudeProject(ws, "scripts", "setup-worktree.sh"))
}

func TestInstall_SourceMissing(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	_, _, err := execute(t, "", "-C", ws.Work, "--install", "claude-code", "--source", ws.WorkPath("nope"))
	if !ierrors.HasCode(err, ierrors.CodeIOFileNotFound) {
		t.Fatalf("error = %v, want %s", err, ierrors.CodeIOFileNotFound)
	}
}

func TestInstall_FatalWriteError(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	// A file where the .claude directory should be makes MkdirAll fail.
	testutil.RequireFile(t, ws.WorkPath(".claude"), "not a directory")

	stdout, stderr, err := execute(t, "", "-C", ws.Work, "--install", "cursor,claude-code")
	if err == nil {
		t.Fatal("expected a fatal error")
	}
	if ierrors.ExitCode(err) != 1 {
		t.Errorf("ExitCode() = %d, want 1", ierrors.ExitCode(err))
	}
	testutil.AssertContains(t, stderr, "Installation failed:")
	testutil.AssertNotContains(t, stdout, "Installation Complete!")
	// Targets before the failure stay installed.
	testutil.AssertFileExists(t, ws.WorkPath(".cursor", "skills", "git-worktree", "SKILL.md"))
}

func TestInteractive_Install(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	// claude-code is the first target; pick its first (project) path and confirm.
	stdout, _, err := execute(t, "1\n1\ny\n", "-C", ws.Work)
	if err != nil {
		t.Fatalf("interactive error = %v", err)
	}

	testutil.AssertContains(t, stdout, cli.Title)
	testutil.AssertContains(t, stdout, "The skill will be installed to:")
	testutil.AssertContains(t, stdout, "Successfully installed for 1 target(s):")
	testutil.AssertFileExists(t, claudeProject(ws, "SKILL.md"))
}

func TestInteractive_EmptyAnswerTakesDefaultPath(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	if _, _, err := execute(t, "1\n\ny\n", "-C", ws.Work); err != nil {
		t.Fatalf("interactive error = %v", err)
	}
	testutil.AssertFileExists(t, claudeProject(ws, "SKILL.md"))
}

func TestInteractive_ScopeFlagSkipsPathPrompt(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	if _, _, err := execute(t, "1\ny\n", "-C", ws.Work, "--global"); err != nil {
		t.Fatalf("interactive error = %v", err)
	}
	testutil.AssertFileExists(t, ws.HomePath(".claude", "skills", "git-worktree", "SKILL.md"))
}

func TestInteractive_NothingSelected(t *testing.T) {
	ws := testutil.NewWorkspace(t)

	stdout, _, err := execute(t, "\n", "-C", ws.Work)
	if err != nil {
		t.Fatalf("interactive error = %v", err)
	}
	testutil.AssertContains(t, stdout, "No targets selected.")
}

func TestInteractive_Cancel(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
	}{
		{"quit at target list", "q\n"},
		{"decline confirmation", "1\n1\nn\n"},
		{"end of input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := testutil.NewWorkspace(t)

			stdout, _, err := execute(t, tt.stdin, "-C", ws.Work)
			if !ierrors.IsCancelled(err) {
				t.Fatalf("error = %v, want cancellation", err)
			}
			if ierrors.ExitCode(err) != 0 {
				t.Error("cancellation should exit 0")
			}
			testutil.AssertContains(t, stdout, "Installation cancelled.")
			if snap := testutil.Snapshot(t, ws.Work); len(snap) != 0 {
				t.Errorf("cancelled run wrote files: %v", snap)
			}
		})
	}
}

func TestInteractive_ConflictSkip(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	if _, _, err := execute(t, "", "-C", ws.Work, "--install", "claude-code"); err != nil {
		t.Fatalf("first install error = %v", err)
	}

	// Select, choose project path, confirm, then "Skip this agent".
	stdout, _, err := execute(t, "1\n1\ny\n2\n", "-C", ws.Work)
	if err != nil {
		t.Fatalf("interactive error = %v", err)
	}
	testutil.AssertContains(t, stdout, "already exists in "+claudeProject(ws, "SKILL.md"))
	testutil.AssertContains(t, stdout, "Skipped by user")
}

func TestInteractive_ConflictChooseDifferent(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	if _, _, err := execute(t, "", "-C", ws.Work, "--install", "claude-code"); err != nil {
		t.Fatalf("first install error = %v", err)
	}

	// Choose different -> global candidate (option 2).
	stdout, _, err := execute(t, "1\n1\ny\n3\n2\n", "-C", ws.Work)
	if err != nil {
		t.Fatalf("interactive error = %v", err)
	}
	testutil.AssertContains(t, stdout, "Successfully installed for 1 target(s):")
	testutil.AssertFileExists(t, ws.HomePath(".claude", "skills", "git-worktree", "SKILL.md"))
}
