// Package agent holds the table of AI coding assistants the skill can be
// installed for, and resolves each one to a concrete file path.
package agent

// Scope tags a candidate path as project-local or per-user.
type Scope string

const (
	// ScopeAny means no preference; the target's default candidate is used.
	ScopeAny     Scope = ""
	ScopeProject Scope = "project"
	ScopeGlobal  Scope = "global"
)

// ParseScope converts a config or flag value into a Scope.
// It reports false for anything other than "", "project" or "global".
func ParseScope(s string) (Scope, bool) {
	switch Scope(s) {
	case ScopeAny, ScopeProject, ScopeGlobal:
		return Scope(s), true
	default:
		return ScopeAny, false
	}
}

// PathCandidate is one file location a target reads instructions from.
type PathCandidate struct {
	// Path is a template. A leading ~ is the home directory and {{name}}
	// is replaced with the skill name. Relative paths are resolved against
	// the working directory at install time.
	Path string

	Scope Scope

	// Description is shown when the operator picks between candidates.
	Description string

	// Bundle marks a skill-directory layout. Auxiliary bundle files are
	// written next to the main file.
	Bundle bool
}

// TargetSpec describes one supported assistant.
type TargetSpec struct {
	// ID is the identifier accepted by --install (e.g., "claude-code").
	ID string

	// Name is the human-readable name (e.g., "Claude Code").
	Name string

	Description string

	// Paths lists the candidate locations in preference order.
	Paths []PathCandidate

	// DefaultChoice indexes Paths; it is used when no scope is requested.
	DefaultChoice int

	// Docs is an optional documentation URL.
	Docs string
}
