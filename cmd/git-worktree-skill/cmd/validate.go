package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/worktree-skill/installer/internal/cli"
	ierrors "github.com/worktree-skill/installer/internal/errors"
	"github.com/worktree-skill/installer/internal/skill"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Validate a skill bundle",
		Long: `Validate a skill bundle without installing it.

Checks:
- SKILL.md frontmatter (name, description)
- skill.toml name, description and semver version
- the reinstall marker in SKILL.md
- every files pattern matches at least one file

Without a directory the bundle compiled into the installer is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	fsys, source := skill.Embedded(), "embedded"
	if len(args) == 1 {
		source = args[0]
		info, err := os.Stat(source)
		if err != nil || !info.IsDir() {
			return ierrors.IOFileNotFound(source).WithDetail("reason", "skill source must be a directory")
		}
		fsys = skill.Source(source)
	}

	b, err := skill.Load(fsys)
	if err != nil {
		return err
	}

	result := b.Validate()
	if result.HasErrors() {
		return ierrors.SkillInvalid(result.Error()).WithDetail("source", source)
	}

	printer := cli.NewPrinter(cmd.OutOrStdout())
	version := "unversioned"
	if v, _ := b.Version(); v != nil {
		version = "v" + v.String()
	}
	printer.Success("Skill %q (%s) is valid: %d auxiliary file(s)", b.Name(), version, len(b.Files))
	return nil
}
