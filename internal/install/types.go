// Package install decides, per target, whether the skill is written,
// overwritten or left alone, and performs the writes.
package install

import (
	"github.com/worktree-skill/installer/internal/agent"
)

// Action is the write decision for one target path.
type Action string

const (
	// ActionWrite creates a file that does not exist yet.
	ActionWrite Action = "write"
	// ActionOverwrite replaces an existing file.
	ActionOverwrite Action = "overwrite"
	// ActionAlreadyExists leaves a previous install untouched.
	ActionAlreadyExists Action = "already-exists"
	// ActionDryRun reports a write that was not performed.
	ActionDryRun Action = "dry-run"
)

// Reason explains why a target was not installed.
type Reason string

const (
	ReasonSkipped       Reason = "skipped"
	ReasonAlreadyExists Reason = "already-exists"
	ReasonUnknownTarget Reason = "unknown-target"
	ReasonNoPaths       Reason = "no-paths"
)

// Request is one target to install, with its path resolved.
// A request with a Reason set failed during planning and is reported as is.
type Request struct {
	ID        string
	Spec      agent.TargetSpec
	Candidate agent.PathCandidate

	// Path is absolute.
	Path string

	Reason Reason
}

// Outcome is the result for one requested target.
type Outcome struct {
	Target  string `json:"target"`
	Name    string `json:"name,omitempty"`
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
	Reason  Reason `json:"reason,omitempty"`
	Action  Action `json:"action,omitempty"`
}

// Resolution is the operator's answer to an existing install.
type Resolution string

const (
	ResolutionOverwrite       Resolution = "overwrite"
	ResolutionSkip            Resolution = "skip"
	ResolutionChooseDifferent Resolution = "choose-different"
)

// Resolver is consulted in interactive runs when a path already holds a
// previous install.
type Resolver interface {
	// ResolveConflict is given the conflicting path and a short summary of
	// its current content.
	ResolveConflict(path, summary string) (Resolution, error)

	// ChooseDifferent returns another candidate for spec.
	ChooseDifferent(spec agent.TargetSpec) (agent.PathCandidate, error)
}

// Counts tallies outcomes for the summary.
func Counts(outcomes []Outcome) (installed, skipped int) {
	for _, o := range outcomes {
		if o.Success {
			installed++
		} else {
			skipped++
		}
	}
	return installed, skipped
}
