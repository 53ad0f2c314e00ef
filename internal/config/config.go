package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	ierrors "github.com/worktree-skill/installer/internal/errors"
)

const (
	// GlobalDirName is the per-user configuration directory under $HOME.
	GlobalDirName = ".git-worktree-skill"

	// GlobalFileName is the config file inside GlobalDirName.
	GlobalFileName = "config.toml"

	// ProjectFileName is the per-project config file in the working directory.
	ProjectFileName = ".git-worktree-skill.toml"
)

// Scope values accepted in [install].scope and target paths.
const (
	ScopeDefault = ""
	ScopeProject = "project"
	ScopeGlobal  = "global"
)

// LogLevel specifies the logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat specifies the log output format.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// InstallConfig holds defaults for the install flags.
type InstallConfig struct {
	// Scope is the path preference used when neither --global nor --project is given.
	Scope string `toml:"scope"`

	// Force makes every install behave as if --force was passed.
	Force bool `toml:"force"`
}

// SkillConfig holds skill bundle settings.
type SkillConfig struct {
	// Source is an external bundle directory. Empty means the embedded bundle.
	Source string `toml:"source"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  LogLevel  `toml:"level"`
	Format LogFormat `toml:"format"`
	File   string    `toml:"file"`
}

// PathConfig is one candidate path of a config-defined target.
type PathConfig struct {
	Path        string `toml:"path"`
	Scope       string `toml:"scope"`
	Description string `toml:"description"`
	Bundle      bool   `toml:"bundle"`
}

// TargetConfig defines an extra installation target.
type TargetConfig struct {
	Name        string       `toml:"name"`
	Description string       `toml:"description"`
	Docs        string       `toml:"docs"`
	Default     int          `toml:"default"`
	Paths       []PathConfig `toml:"paths"`
}

// Config is the main configuration struct for the installer.
type Config struct {
	Install InstallConfig           `toml:"install"`
	Skill   SkillConfig             `toml:"skill"`
	Logging LoggingConfig           `toml:"logging"`
	Targets map[string]TargetConfig `toml:"targets"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Install: InstallConfig{
			Scope: ScopeDefault,
		},
		Logging: LoggingConfig{
			Level:  LogLevelWarn,
			Format: LogFormatText,
		},
		Targets: make(map[string]TargetConfig),
	}
}

// Load loads configuration from file, merging with defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.merge(path, false); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from the standard locations.
// Applies in order: defaults -> ~/.git-worktree-skill/config.toml -> <dir>/.git-worktree-skill.toml
// Later configs override earlier ones (project-level takes precedence).
func LoadFromDir(dir string) (*Config, error) {
	cfg := Default()

	home, err := os.UserHomeDir()
	if err == nil {
		if err := cfg.merge(filepath.Join(home, GlobalDirName, GlobalFileName), false); err != nil {
			return nil, err
		}
	}

	if err := cfg.merge(filepath.Join(dir, ProjectFileName), false); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MergeFile overlays an explicitly requested config file. Unlike the
// standard locations, the file must exist.
func (c *Config) MergeFile(path string) error {
	return c.merge(path, true)
}

func (c *Config) merge(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		if os.IsNotExist(err) {
			return ierrors.IOFileNotFound(path)
		}
		return ierrors.IOReadError(path, err)
	}

	if _, err := toml.Decode(string(data), c); err != nil {
		return ierrors.ConfigParse(path, err)
	}
	if c.Targets == nil {
		c.Targets = make(map[string]TargetConfig)
	}

	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if !validScope(c.Install.Scope, true) {
		return ierrors.ConfigInvalidValue("install.scope", c.Install.Scope, "must be project, global or empty")
	}

	switch c.Logging.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return ierrors.ConfigInvalidValue("logging.level", c.Logging.Level, "must be debug, info, warn or error")
	}

	switch c.Logging.Format {
	case LogFormatJSON, LogFormatText:
	default:
		return ierrors.ConfigInvalidValue("logging.format", c.Logging.Format, "must be json or text")
	}

	for _, id := range c.TargetIDs() {
		if err := validateTarget(id, c.Targets[id]); err != nil {
			return err
		}
	}

	return nil
}

// TargetIDs returns the config-defined target identifiers in sorted order.
func (c *Config) TargetIDs() []string {
	ids := make([]string, 0, len(c.Targets))
	for id := range c.Targets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LogFile returns the absolute log file path, or "" when file logging is off.
func (c *Config) LogFile(baseDir string) string {
	if c.Logging.File == "" {
		return ""
	}
	if filepath.IsAbs(c.Logging.File) {
		return c.Logging.File
	}
	return filepath.Join(baseDir, c.Logging.File)
}

func validateTarget(id string, t TargetConfig) error {
	field := "targets." + id
	if t.Name == "" {
		return ierrors.ConfigInvalidValue(field+".name", t.Name, "is required")
	}
	if len(t.Paths) == 0 {
		return ierrors.ConfigInvalidValue(field+".paths", len(t.Paths), "at least one path is required")
	}
	if t.Default < 0 || t.Default >= len(t.Paths) {
		return ierrors.ConfigInvalidValue(field+".default", t.Default, fmt.Sprintf("must be between 0 and %d", len(t.Paths)-1))
	}
	for i, p := range t.Paths {
		pf := fmt.Sprintf("%s.paths[%d]", field, i)
		if p.Path == "" {
			return ierrors.ConfigInvalidValue(pf+".path", p.Path, "is required")
		}
		if !validScope(p.Scope, false) {
			return ierrors.ConfigInvalidValue(pf+".scope", p.Scope, "must be project or global")
		}
	}
	return nil
}

func validScope(scope string, allowEmpty bool) bool {
	switch scope {
	case ScopeProject, ScopeGlobal:
		return true
	case ScopeDefault:
		return allowEmpty
	default:
		return false
	}
}
