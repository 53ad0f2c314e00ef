package agent

import (
	"fmt"

	ierrors "github.com/worktree-skill/installer/internal/errors"
)

// Registry is an ordered, read-only set of targets.
type Registry struct {
	specs []TargetSpec
	index map[string]int
}

// NewRegistry builds a registry from specs, keeping their order.
// Duplicate identifiers and default indexes outside the path list are rejected.
func NewRegistry(specs ...TargetSpec) (*Registry, error) {
	r := &Registry{
		specs: make([]TargetSpec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}

	for _, spec := range specs {
		if spec.ID == "" {
			return nil, fmt.Errorf("target with name %q has no identifier", spec.Name)
		}
		if _, dup := r.index[spec.ID]; dup {
			return nil, fmt.Errorf("duplicate target identifier %q", spec.ID)
		}
		if len(spec.Paths) > 0 && (spec.DefaultChoice < 0 || spec.DefaultChoice >= len(spec.Paths)) {
			return nil, fmt.Errorf("target %q: default choice %d out of range (0-%d)",
				spec.ID, spec.DefaultChoice, len(spec.Paths)-1)
		}

		r.index[spec.ID] = len(r.specs)
		r.specs = append(r.specs, cloneSpec(spec))
	}

	return r, nil
}

// Extend returns a new registry with extra targets appended after base's.
func Extend(base *Registry, extra ...TargetSpec) (*Registry, error) {
	return NewRegistry(append(base.All(), extra...)...)
}

// Lookup returns the target with the given identifier.
func (r *Registry) Lookup(id string) (TargetSpec, error) {
	i, ok := r.index[id]
	if !ok {
		return TargetSpec{}, ierrors.TargetUnknown(id)
	}
	return cloneSpec(r.specs[i]), nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// IDs returns all identifiers in registry order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.specs))
	for i, spec := range r.specs {
		ids[i] = spec.ID
	}
	return ids
}

// All returns copies of all targets in registry order.
func (r *Registry) All() []TargetSpec {
	out := make([]TargetSpec, len(r.specs))
	for i, spec := range r.specs {
		out[i] = cloneSpec(spec)
	}
	return out
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	return len(r.specs)
}

// DefaultCandidate returns the spec's default path, or the first path when
// the default index is out of range. It reports false for a spec without paths.
func DefaultCandidate(spec TargetSpec) (PathCandidate, bool) {
	if len(spec.Paths) == 0 {
		return PathCandidate{}, false
	}
	if spec.DefaultChoice < 0 || spec.DefaultChoice >= len(spec.Paths) {
		return spec.Paths[0], true
	}
	return spec.Paths[spec.DefaultChoice], true
}

// cloneSpec copies the path slice so callers cannot mutate registry state.
func cloneSpec(spec TargetSpec) TargetSpec {
	spec.Paths = append([]PathCandidate(nil), spec.Paths...)
	return spec
}
