package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/worktree-skill/installer/internal/agent"
	"github.com/worktree-skill/installer/internal/install"
)

// Title is the banner shown at the start of an interactive run.
const Title = "Git Worktree Skill Installer"

// Printer writes the human-facing report.
type Printer struct {
	w  io.Writer
	st styles
}

// NewPrinter creates a printer whose colours follow w's terminal profile.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, st: newStyles(lipgloss.NewRenderer(w))}
}

// Banner prints the boxed title.
func (p *Printer) Banner() {
	fmt.Fprintln(p.w, p.st.banner.Render(Title))
	fmt.Fprintln(p.w, p.st.subtitle.Render("Teach your AI coding agent to manage Git worktrees"))
	fmt.Fprintln(p.w)
}

func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, p.st.success.Render("✓")+" "+fmt.Sprintf(format, args...))
}

func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.w, p.st.failure.Render("✗")+" "+fmt.Sprintf(format, args...))
}

func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.w, p.st.info.Render("ℹ")+" "+fmt.Sprintf(format, args...))
}

func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.w, p.st.warning.Render("⚠")+" "+fmt.Sprintf(format, args...))
}

// List prints every target with its candidate paths.
func (p *Printer) List(reg *agent.Registry) {
	fmt.Fprintln(p.w, p.st.heading.Render("Available targets:"))
	fmt.Fprintln(p.w)
	for _, spec := range reg.All() {
		fmt.Fprintf(p.w, "  %s %s\n", p.st.id.Render(fmt.Sprintf("%-16s", spec.ID)), p.st.name.Render(spec.Name))
		if spec.Description != "" {
			fmt.Fprintf(p.w, "  %-16s %s\n", "", p.st.dim.Render(spec.Description))
		}
		for _, c := range spec.Paths {
			fmt.Fprintf(p.w, "  %-16s %s\n", "", p.st.dim.Render(fmt.Sprintf("%-8s %s", string(c.Scope)+":", c.Path)))
		}
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.st.dim.Render("Install with: git-worktree-skill --install <target1,target2>"))
}

// Docs prints the documentation link of every target that has one.
func (p *Printer) Docs(reg *agent.Registry) {
	fmt.Fprintln(p.w, p.st.heading.Render("Documentation Links:"))
	fmt.Fprintln(p.w)
	for _, spec := range reg.All() {
		if spec.Docs == "" {
			continue
		}
		fmt.Fprintf(p.w, "  %s %s\n", p.st.name.Render(spec.Name+":"), spec.Docs)
	}
}

// Plan prints where each request will be written.
func (p *Printer) Plan(reqs []install.Request) {
	fmt.Fprintln(p.w, p.st.heading.Render("The skill will be installed to:"))
	for _, req := range reqs {
		if req.Reason != "" {
			continue
		}
		fmt.Fprintf(p.w, "  %s → %s\n", p.st.name.Render(req.Spec.Name), req.Path)
	}
	fmt.Fprintln(p.w)
}

// Summary prints the final report. Targets that were not installed are
// listed with a human-readable reason.
func (p *Printer) Summary(outcomes []install.Outcome) {
	if len(outcomes) == 0 {
		p.Info("No targets selected.")
		return
	}

	installed, skipped := install.Counts(outcomes)
	dryRun := false
	for _, o := range outcomes {
		if o.Action == install.ActionDryRun {
			dryRun = true
		}
	}

	fmt.Fprintln(p.w)
	if dryRun {
		fmt.Fprintln(p.w, p.st.banner.Render("Dry Run"))
	} else {
		fmt.Fprintln(p.w, p.st.banner.Render("Installation Complete!"))
	}
	fmt.Fprintln(p.w)

	if installed > 0 {
		if dryRun {
			p.Info("Would install for %d target(s):", installed)
		} else {
			p.Success("Successfully installed for %d target(s):", installed)
		}
		for _, o := range outcomes {
			if o.Success {
				fmt.Fprintf(p.w, "    %s: %s\n", p.st.name.Render(displayName(o)), o.Path)
			}
		}
		fmt.Fprintln(p.w)
	}

	if skipped > 0 {
		p.Warning("Skipped %d target(s):", skipped)
		for _, o := range outcomes {
			if !o.Success {
				fmt.Fprintf(p.w, "    %s: %s\n", p.st.name.Render(displayName(o)), ReasonText(o))
			}
		}
		fmt.Fprintln(p.w)
	}

	if installed > 0 && !dryRun {
		fmt.Fprintln(p.w, p.st.heading.Render("Next steps:"))
		fmt.Fprintln(p.w, "  Ask your AI agent about Git worktrees!")
		fmt.Fprintln(p.w, p.st.dim.Render(`  Try: "Create a worktree for the feature/login branch"`))
		fmt.Fprintln(p.w, p.st.dim.Render(`       "List my worktrees and clean up the stale ones"`))
	}
}

// ReasonText explains a failed outcome.
func ReasonText(o install.Outcome) string {
	switch o.Reason {
	case install.ReasonAlreadyExists:
		return fmt.Sprintf("Skill already exists in %s (use --force to overwrite)", o.Path)
	case install.ReasonUnknownTarget:
		return fmt.Sprintf("Unknown target %q (see --list)", o.Target)
	case install.ReasonNoPaths:
		return "No installation paths configured"
	case install.ReasonSkipped:
		return "Skipped by user"
	default:
		return string(o.Reason)
	}
}

func displayName(o install.Outcome) string {
	if o.Name != "" {
		return o.Name
	}
	return o.Target
}

// JSON writes outcomes as an indented JSON document.
func (p *Printer) JSON(outcomes []install.Outcome) error {
	if outcomes == nil {
		outcomes = []install.Outcome{}
	}
	installed, skipped := install.Counts(outcomes)
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Installed int               `json:"installed"`
		Skipped   int               `json:"skipped"`
		Outcomes  []install.Outcome `json:"outcomes"`
	}{installed, skipped, outcomes})
}

// Help prints usage, flags and the known target identifiers.
func (p *Printer) Help(usage, flags string, specs []agent.TargetSpec) {
	fmt.Fprintln(p.w, p.st.heading.Render(Title))
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, "Usage:")
	fmt.Fprintf(p.w, "  %s\n", usage)
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, "Options:")
	fmt.Fprint(p.w, flags)
	fmt.Fprintln(p.w)

	fmt.Fprintln(p.w, "Targets:")
	for _, spec := range specs {
		fmt.Fprintf(p.w, "  %-16s %s\n", spec.ID, spec.Name)
	}
	fmt.Fprintln(p.w)

	fmt.Fprintln(p.w, "Examples:")
	examples := [][2]string{
		{"git-worktree-skill", "Interactive installation"},
		{"git-worktree-skill --install claude-code,cursor", "Install for specific targets"},
		{"git-worktree-skill --install claude-code --global", "Install into the home directory"},
		{"git-worktree-skill --list", "Show all targets"},
	}
	for _, ex := range examples {
		fmt.Fprintf(p.w, "  %-52s %s\n", ex[0], p.st.dim.Render(ex[1]))
	}
}
