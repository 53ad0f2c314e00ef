// Package testutil provides fixtures and helpers for installer tests.
package testutil

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/worktree-skill/installer/internal/agent"
	"github.com/worktree-skill/installer/internal/skill"
)

// SkillContent is a small SKILL.md carrying the install marker.
const SkillContent = `---
name: git-worktree
description: Manage git worktrees
license: Apache-2.0
compatibility: Requires git
---

# Git Worktree Management Assistant

git worktree add ../feature -b feature
`

// ScriptContent is the auxiliary script shipped by NewTestBundle.
const ScriptContent = "#!/bin/sh\necho setup\n"

// Workspace is an isolated home and working directory.
type Workspace struct {
	Home string
	Work string
}

// NewWorkspace creates temporary home and work directories and points
// HOME at the former for the duration of the test.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws := &Workspace{
		Home: t.TempDir(),
		Work: t.TempDir(),
	}
	t.Setenv("HOME", ws.Home)
	return ws
}

// WorkPath joins parts under the work directory.
func (w *Workspace) WorkPath(parts ...string) string {
	return filepath.Join(append([]string{w.Work}, parts...)...)
}

// HomePath joins parts under the home directory.
func (w *Workspace) HomePath(parts ...string) string {
	return filepath.Join(append([]string{w.Home}, parts...)...)
}

// WorkDir returns a working-directory func for installers.
func (w *Workspace) WorkDir() func() (string, error) {
	return func() (string, error) { return w.Work, nil }
}

// TestBundleFS is the filesystem behind NewTestBundle.
func TestBundleFS() fstest.MapFS {
	return fstest.MapFS{
		"SKILL.md":                  {Data: []byte(SkillContent)},
		"scripts/setup-worktree.sh": {Data: []byte(ScriptContent)},
	}
}

// NewTestBundle loads a bundle with SkillContent and one script.
func NewTestBundle(t *testing.T) *skill.Bundle {
	t.Helper()
	b, err := skill.Load(TestBundleFS())
	if err != nil {
		t.Fatalf("Failed to load test bundle: %v", err)
	}
	return b
}

// NewTestRegistry returns a registry with two targets:
// alpha (project cfgdir/alpha/SKILL.md, global ~/.alpha/...) and
// beta (project only, plain file without bundle files).
func NewTestRegistry(t *testing.T) *agent.Registry {
	t.Helper()
	r, err := agent.NewRegistry(
		agent.TargetSpec{
			ID:          "alpha",
			Name:        "Alpha Agent",
			Description: "First test assistant",
			Paths: []agent.PathCandidate{
				{Path: "cfgdir/alpha/SKILL.md", Scope: agent.ScopeProject, Description: "Project", Bundle: true},
				{Path: "~/.alpha/skills/{{name}}/SKILL.md", Scope: agent.ScopeGlobal, Description: "Global", Bundle: true},
			},
			Docs: "https://alpha.example.com/docs",
		},
		agent.TargetSpec{
			ID:          "beta",
			Name:        "Beta Agent",
			Description: "Second test assistant",
			Paths: []agent.PathCandidate{
				{Path: ".beta/rules.md", Scope: agent.ScopeProject, Description: "Rules file"},
			},
		},
		agent.TargetSpec{
			ID:   "empty",
			Name: "Empty Agent",
		},
	)
	if err != nil {
		t.Fatalf("Failed to build test registry: %v", err)
	}
	return r
}
