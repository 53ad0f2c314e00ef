package install

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/worktree-skill/installer/internal/agent"
	ierrors "github.com/worktree-skill/installer/internal/errors"
	"github.com/worktree-skill/installer/internal/logging"
	"github.com/worktree-skill/installer/internal/skill"
)

// Installer writes a skill bundle into target locations, one target at a time.
type Installer struct {
	Registry *agent.Registry
	Bundle   *skill.Bundle

	// Scope is the path preference; ScopeAny uses each target's default.
	Scope agent.Scope

	// Force overwrites previous installs.
	Force bool

	// DryRun decides without writing.
	DryRun bool

	// WorkDir returns the directory relative paths resolve against. It is
	// called for every request. Defaults to os.Getwd.
	WorkDir func() (string, error)

	// Resolver handles existing installs interactively. Nil reports them
	// as already-exists.
	Resolver Resolver

	Logger *slog.Logger
}

// Install plans and applies ids in order.
func (i *Installer) Install(ctx context.Context, ids []string) ([]Outcome, error) {
	reqs, err := i.Plan(ids)
	if err != nil {
		return nil, err
	}
	return i.Apply(ctx, reqs)
}

// Plan resolves each id to a request. Unknown ids and targets without
// paths become requests that carry their failure reason.
func (i *Installer) Plan(ids []string) ([]Request, error) {
	reqs := make([]Request, 0, len(ids))
	for _, id := range ids {
		spec, err := i.Registry.Lookup(id)
		if err != nil {
			i.logger().Debug("unknown target", "target", id)
			reqs = append(reqs, Request{ID: id, Reason: ReasonUnknownTarget})
			continue
		}

		c, err := agent.Resolve(spec, i.Scope)
		if err != nil {
			i.logger().Debug("target has no paths", "target", id)
			reqs = append(reqs, Request{ID: id, Spec: spec, Reason: ReasonNoPaths})
			continue
		}

		req, err := i.Request(spec, c)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// Request builds a request for spec at candidate c, expanding the path
// against the current working directory.
func (i *Installer) Request(spec agent.TargetSpec, c agent.PathCandidate) (Request, error) {
	wd, err := i.workDir()
	if err != nil {
		return Request{}, ierrors.IOReadError(".", err).WithDetail("reason", "cannot determine working directory")
	}
	return Request{
		ID:        spec.ID,
		Spec:      spec,
		Candidate: c,
		Path:      agent.Expand(c, i.Bundle.Name(), wd),
	}, nil
}

// Apply performs the write step for each request, in order, and returns
// exactly one outcome per request.
//
// Filesystem failures abort the run and no outcomes are returned; files
// written before the failure stay on disk. Cancellation of ctx is checked
// between targets.
func (i *Installer) Apply(ctx context.Context, reqs []Request) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(reqs))
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if req.Reason != "" {
			outcomes = append(outcomes, Outcome{
				Target: req.ID,
				Name:   req.Spec.Name,
				Reason: req.Reason,
			})
			continue
		}

		o, err := i.apply(req)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

func (i *Installer) apply(req Request) (Outcome, error) {
	for {
		log := logging.WithPath(i.logger(), req.ID, req.Path)

		existing, exists, err := readExisting(req.Path)
		if err != nil {
			return Outcome{}, err
		}

		action := Decide(exists, existing, i.Force)
		log.Debug("write decision", "action", action, "exists", exists)

		if action == ActionAlreadyExists && i.Resolver != nil && !i.DryRun {
			res, err := i.Resolver.ResolveConflict(req.Path, Summarize(existing))
			if err != nil {
				return Outcome{}, err
			}
			log.Debug("conflict resolved", "resolution", res)

			switch res {
			case ResolutionOverwrite:
				action = ActionOverwrite
			case ResolutionSkip:
				return failure(req, ReasonSkipped), nil
			case ResolutionChooseDifferent:
				c, err := i.Resolver.ChooseDifferent(req.Spec)
				if err != nil {
					return Outcome{}, err
				}
				if req, err = i.Request(req.Spec, c); err != nil {
					return Outcome{}, err
				}
				continue
			}
		}

		if action == ActionAlreadyExists {
			o := failure(req, ReasonAlreadyExists)
			o.Path = req.Path
			return o, nil
		}

		if i.DryRun {
			return success(req, ActionDryRun), nil
		}

		if err := i.write(req); err != nil {
			return Outcome{}, err
		}
		log.Info("installed", "action", action, "files", len(i.Bundle.Files))
		return success(req, action), nil
	}
}

// write creates the skill file and, for bundle layouts, the auxiliary
// files under the same directory.
func (i *Installer) write(req Request) error {
	if err := writeFile(req.Path, []byte(i.Bundle.Content), 0o644); err != nil {
		return err
	}
	if !req.Candidate.Bundle {
		return nil
	}

	dir := filepath.Dir(req.Path)
	for _, f := range i.Bundle.Files {
		if err := writeFile(filepath.Join(dir, filepath.FromSlash(f.Path)), f.Data, f.Mode); err != nil {
			return err
		}
	}
	return nil
}

func (i *Installer) workDir() (string, error) {
	if i.WorkDir != nil {
		return i.WorkDir()
	}
	return os.Getwd()
}

func (i *Installer) logger() *slog.Logger {
	if i.Logger != nil {
		return i.Logger
	}
	return logging.NewDefault()
}

func success(req Request, action Action) Outcome {
	return Outcome{
		Target:  req.ID,
		Name:    req.Spec.Name,
		Success: true,
		Path:    req.Path,
		Action:  action,
	}
}

func failure(req Request, reason Reason) Outcome {
	return Outcome{
		Target: req.ID,
		Name:   req.Spec.Name,
		Reason: reason,
	}
}

// readExisting returns the current content of path and whether it exists.
func readExisting(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		if errors.Is(err, fs.ErrPermission) {
			return "", false, ierrors.IOPermissionDenied(path, err)
		}
		return "", false, ierrors.IOReadError(path, err)
	}
	return string(data), true, nil
}

// writeFile creates parent directories as needed and writes data with mode.
func writeFile(path string, data []byte, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return writeError(filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return writeError(path, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, mode); err != nil {
		return writeError(path, err)
	}
	return nil
}

func writeError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return ierrors.IOPermissionDenied(path, err)
	case errors.Is(err, syscall.ENOSPC):
		return ierrors.IODiskFull(path, err)
	default:
		return ierrors.IOWriteError(path, err)
	}
}
