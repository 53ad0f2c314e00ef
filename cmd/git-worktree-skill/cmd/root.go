package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/worktree-skill/installer/internal/agent"
	"github.com/worktree-skill/installer/internal/cli"
	ierrors "github.com/worktree-skill/installer/internal/errors"
)

// Version is set at build time via ldflags
var Version = "1.2.0"

// options holds the root command flags.
type options struct {
	install    string
	global     bool
	project    bool
	force      bool
	dryRun     bool
	list       bool
	docs       bool
	preview    bool
	jsonOutput bool
	source     string
	workDir    string
	verbose    bool
	configFile string
}

// NewRootCmd creates the git-worktree-skill command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "git-worktree-skill",
		Short: "Install the Git worktree skill into AI coding agents",
		Long: `Install a skill that teaches AI coding agents to manage Git worktrees.

Without flags the installer asks which agents to set up. With --install it
runs non-interactively for the given comma-separated target identifiers.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.install, "install", "", "install for comma-separated targets without prompting")
	flags.BoolVar(&opts.global, "global", false, "prefer the global (home directory) location")
	flags.BoolVar(&opts.project, "project", false, "prefer the project location")
	flags.BoolVar(&opts.force, "force", false, "overwrite existing installations")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "show what would be written without writing")
	flags.BoolVar(&opts.list, "list", false, "list available targets")
	flags.BoolVar(&opts.docs, "docs", false, "show documentation links for each target")
	flags.BoolVar(&opts.preview, "preview", false, "render the skill content")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print outcomes as JSON")
	flags.StringVar(&opts.source, "source", "", "install the skill bundle from this directory")
	rootCmd.PersistentFlags().StringVarP(&opts.workDir, "workdir", "C", "", "working directory (default: current)")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "additional config file")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("git-worktree-skill v{{.Version}}\n")
	rootCmd.SetFlagErrorFunc(flagError)

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c != rootCmd {
			defaultHelp(c, args)
			return
		}
		cli.NewPrinter(c.OutOrStdout()).Help(c.UseLine(), c.Flags().FlagUsages(), helpTargets(opts))
	})

	rootCmd.AddCommand(newValidateCmd())

	return rootCmd
}

// Execute runs the root command with interrupt handling and reports the
// final error. Cancellation is reported but exits cleanly.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	report(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr(), err)
	return err
}

func report(stdout, stderr io.Writer, err error) {
	switch {
	case err == nil:
	case ierrors.IsCancelled(err):
		fmt.Fprintln(stdout, "Installation cancelled.")
	case isUsage(err):
		var ie *ierrors.InstallError
		errors.As(err, &ie)
		fmt.Fprintf(stderr, "Error: %s\n", ie.Message)
		fmt.Fprintln(stderr, "Run 'git-worktree-skill --help' for usage.")
	case ierrors.HasCode(err, ierrors.CodeSkillInvalid):
		fmt.Fprintf(stderr, "Skill is invalid: %v\n", err)
	default:
		fmt.Fprintf(stderr, "Installation failed: %v\n", err)
	}
}

func isUsage(err error) bool {
	return ierrors.HasCode(err, ierrors.CodeUsageMissingTargets) || ierrors.HasCode(err, ierrors.CodeUsageInvalidFlags)
}

// flagError turns pflag parse errors into usage errors. A bare --install
// is reported the same way as --install followed by another flag.
func flagError(cmd *cobra.Command, err error) error {
	if strings.Contains(err.Error(), "flag needs an argument") && strings.Contains(err.Error(), "install") {
		return ierrors.UsageMissingTargets()
	}
	return ierrors.UsageInvalidFlags(err.Error())
}

// parseTargets splits the --install value into identifiers.
func parseTargets(value string) ([]string, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasPrefix(value, "-") {
		return nil, ierrors.UsageMissingTargets()
	}

	var ids []string
	for _, id := range strings.Split(value, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, ierrors.UsageMissingTargets()
	}
	return ids, nil
}

// scope returns the scope preference from the flags, falling back to the
// configured default.
func (o *options) scope(configured string) (agent.Scope, error) {
	switch {
	case o.global && o.project:
		return "", ierrors.UsageInvalidFlags("--global and --project cannot be used together")
	case o.global:
		return agent.ScopeGlobal, nil
	case o.project:
		return agent.ScopeProject, nil
	}
	s, _ := agent.ParseScope(configured)
	return s, nil
}

// helpTargets lists the targets shown in help. Config targets are included
// when the configuration loads. Logging is not set up, so help never
// creates a log file.
func helpTargets(opts *options) []agent.TargetSpec {
	_, cfg, err := loadConfig(opts)
	if err != nil {
		return agent.Builtin().All()
	}
	reg, err := agent.WithConfig(cfg)
	if err != nil {
		return agent.Builtin().All()
	}
	return reg.All()
}
