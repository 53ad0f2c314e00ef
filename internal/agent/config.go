package agent

import (
	"github.com/worktree-skill/installer/internal/config"
)

// FromConfig converts the [targets] tables of cfg into specs, sorted by id.
func FromConfig(cfg *config.Config) []TargetSpec {
	specs := make([]TargetSpec, 0, len(cfg.Targets))
	for _, id := range cfg.TargetIDs() {
		tc := cfg.Targets[id]
		spec := TargetSpec{
			ID:            id,
			Name:          tc.Name,
			Description:   tc.Description,
			DefaultChoice: tc.Default,
			Docs:          tc.Docs,
		}
		for _, p := range tc.Paths {
			spec.Paths = append(spec.Paths, PathCandidate{
				Path:        p.Path,
				Scope:       Scope(p.Scope),
				Description: p.Description,
				Bundle:      p.Bundle,
			})
		}
		specs = append(specs, spec)
	}
	return specs
}

// WithConfig returns the built-in registry extended with cfg's targets.
// A config target reusing a built-in identifier is an error.
func WithConfig(cfg *config.Config) (*Registry, error) {
	return Extend(Builtin(), FromConfig(cfg)...)
}
