package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/worktree-skill/installer/internal/agent"
	"github.com/worktree-skill/installer/internal/cli"
	"github.com/worktree-skill/installer/internal/install"
	"github.com/worktree-skill/installer/internal/skill"
)

func runRoot(cmd *cobra.Command, opts *options) error {
	var ids []string
	if cmd.Flags().Changed("install") {
		var err error
		if ids, err = parseTargets(opts.install); err != nil {
			return err
		}
	}

	env, err := loadEnv(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	scope, err := opts.scope(env.config.Install.Scope)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := cli.NewPrinter(out)
	banner := func() {
		if !opts.jsonOutput {
			printer.Banner()
		}
	}

	// --install wins over the informational flags.
	if ids == nil {
		switch {
		case opts.list:
			banner()
			printer.List(env.registry)
			return nil
		case opts.docs:
			banner()
			printer.Docs(env.registry)
			return nil
		}
	}

	bundle, err := env.bundle(opts.source)
	if err != nil {
		return err
	}

	if ids == nil && opts.preview {
		return preview(out, bundle)
	}

	inst := &install.Installer{
		Registry: env.registry,
		Bundle:   bundle,
		Scope:    scope,
		Force:    opts.force || env.config.Install.Force,
		DryRun:   opts.dryRun,
		WorkDir:  func() (string, error) { return getWorkDir(opts) },
		Logger:   env.logger,
	}

	banner()
	var outcomes []install.Outcome
	if ids != nil {
		outcomes, err = inst.Install(cmd.Context(), ids)
	} else {
		outcomes, err = runInteractive(cmd.Context(), cmd, inst, printer)
	}
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		return printer.JSON(outcomes)
	}
	printer.Summary(outcomes)
	return nil
}

// runInteractive asks for targets and paths, confirms the plan and
// applies it with the prompter resolving conflicts.
func runInteractive(ctx context.Context, cmd *cobra.Command, inst *install.Installer, printer *cli.Printer) ([]install.Outcome, error) {
	prompter := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	ids, err := prompter.SelectTargets(inst.Registry.All())
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	reqs := make([]install.Request, 0, len(ids))
	for _, id := range ids {
		spec, err := inst.Registry.Lookup(id)
		if err != nil {
			return nil, err
		}

		c, ok, err := choosePath(prompter, spec, inst.Scope)
		if err != nil {
			return nil, err
		}
		if !ok {
			reqs = append(reqs, install.Request{ID: id, Spec: spec, Reason: install.ReasonNoPaths})
			continue
		}

		req, err := inst.Request(spec, c)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	printer.Plan(reqs)
	proceed, err := prompter.Confirm("Proceed with installation?", true)
	if err != nil {
		return nil, err
	}
	if !proceed {
		return nil, cli.ErrCancelled
	}

	inst.Resolver = prompter
	return inst.Apply(ctx, reqs)
}

// choosePath picks the candidate for spec. An explicit scope preference
// resolves without asking; otherwise the operator chooses when there is
// more than one candidate.
func choosePath(p cli.Prompter, spec agent.TargetSpec, scope agent.Scope) (agent.PathCandidate, bool, error) {
	switch {
	case len(spec.Paths) == 0:
		return agent.PathCandidate{}, false, nil
	case scope != agent.ScopeAny || len(spec.Paths) == 1:
		c, err := agent.Resolve(spec, scope)
		return c, err == nil, nil
	}
	c, err := p.SelectPath(spec)
	if err != nil {
		return agent.PathCandidate{}, false, err
	}
	return c, true, nil
}

// newPrompter uses the bubbletea prompts on a terminal and numbered line
// prompts otherwise.
func newPrompter(in io.Reader, out io.Writer) cli.Interactive {
	if f, ok := in.(*os.File); ok && cli.IsTerminal(f) {
		return cli.NewTeaPrompter(in, out)
	}
	return cli.NewLinePrompter(in, out)
}

// preview renders the skill body for the terminal. Content with a
// malformed header is shown whole.
func preview(out io.Writer, b *skill.Bundle) error {
	_, body, _, err := skill.ParseFrontmatter(b.Content)
	if err != nil {
		body = b.Content
	}

	width, styled := 80, false
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		styled = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}

	fmt.Fprintln(out, cli.RenderMarkdown(body, width, styled))
	return nil
}
