package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/worktree-skill/installer/internal/agent"
	"github.com/worktree-skill/installer/internal/config"
	ierrors "github.com/worktree-skill/installer/internal/errors"
	"github.com/worktree-skill/installer/internal/logging"
	"github.com/worktree-skill/installer/internal/skill"
)

// env is everything a run needs besides the flags.
type env struct {
	workDir  string
	config   *config.Config
	logger   *slog.Logger
	registry *agent.Registry
	closer   io.Closer
}

// loadConfig reads and validates configuration for the working directory.
func loadConfig(opts *options) (string, *config.Config, error) {
	dir, err := getWorkDir(opts)
	if err != nil {
		return "", nil, fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.LoadFromDir(dir)
	if err != nil {
		return "", nil, err
	}
	if opts.configFile != "" {
		if err := cfg.MergeFile(opts.configFile); err != nil {
			return "", nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return "", nil, err
	}
	return dir, cfg, nil
}

// loadEnv reads configuration for the working directory, sets up logging
// to logOut and builds the target registry.
func loadEnv(opts *options, logOut io.Writer) (*env, error) {
	dir, cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.NewFromConfig(cfg, dir, logOut, opts.verbose)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	reg, err := agent.WithConfig(cfg)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}

	logger.Debug("environment loaded", "workdir", dir, "targets", reg.Len())

	return &env{
		workDir:  dir,
		config:   cfg,
		logger:   logger,
		registry: reg,
		closer:   closer,
	}, nil
}

// Close releases the log file, if any.
func (e *env) Close() {
	if e.closer != nil {
		e.closer.Close()
	}
}

// bundle loads the skill from --source, the configured source or the
// embedded copy, in that order.
func (e *env) bundle(source string) (*skill.Bundle, error) {
	if source == "" && e.config.Skill.Source != "" {
		source = agent.ExpandHome(e.config.Skill.Source)
	}

	fsys := skill.Embedded()
	if source != "" {
		if !filepath.IsAbs(source) {
			source = filepath.Join(e.workDir, source)
		}
		info, err := os.Stat(source)
		if err != nil || !info.IsDir() {
			return nil, ierrors.IOFileNotFound(source).WithDetail("reason", "skill source must be a directory")
		}
		fsys = skill.Source(source)
	}

	b, err := skill.Load(fsys)
	if err != nil {
		return nil, err
	}
	if b.Fallback {
		e.logger.Debug("skill content not found, using fallback content", "source", source)
	}
	e.logger.Debug("skill loaded", "name", b.Name(), "files", len(b.Files))
	return b, nil
}

// getWorkDir returns the effective working directory.
func getWorkDir(opts *options) (string, error) {
	if opts.workDir != "" {
		return filepath.Abs(opts.workDir)
	}
	return os.Getwd()
}
