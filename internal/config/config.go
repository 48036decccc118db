// Package config handles configuration loading and management for loom.
// It supports XDG config paths, project-level overrides, and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for loom.
type Config struct {
	Branch    BranchConfig    `mapstructure:"branch"`
	Worktrees WorktreesConfig `mapstructure:"worktrees"`
	Policy    PolicyConfig    `mapstructure:"policy"`
	Commit    CommitConfig    `mapstructure:"commit"`
	Mailbox   MailboxConfig   `mapstructure:"mailbox"`
	TUI       TUIConfig       `mapstructure:"tui"`
}

// BranchConfig holds branch name generation settings.
type BranchConfig struct {
	// Prefix is prepended to every generated branch name (may contain "/").
	Prefix string `mapstructure:"prefix"`
	// MaxLen bounds the length of generated branch names.
	MaxLen int `mapstructure:"max_len"`
}

// WorktreesConfig holds worktree placement settings.
type WorktreesConfig struct {
	// BaseDir is where session worktrees are created. Empty means
	// ~/.cache/loom/worktrees.
	BaseDir string `mapstructure:"base_dir"`
}

// PolicyConfig holds policy document settings.
type PolicyConfig struct {
	// File is the combined policy document path, relative to the project
	// root.
	File string `mapstructure:"file"`
}

// CommitConfig holds commit validation settings.
type CommitConfig struct {
	// Types overrides the commit type vocabulary. Empty means the built-in
	// vocabulary.
	Types []string `mapstructure:"types"`
}

// MailboxConfig holds agent mailbox settings.
type MailboxConfig struct {
	// Dir is the mailbox directory, relative to the project root.
	Dir string `mapstructure:"dir"`
}

// TUIConfig holds watch view settings.
type TUIConfig struct {
	RefreshRate time.Duration `mapstructure:"refresh_rate"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables. Precedence (highest to lowest):
// 1. Environment variables (LOOM_*)
// 2. Project config (.loom/config.yaml in current directory or parent)
// 3. User config (~/.config/loom/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("LOOM")
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Branch: BranchConfig{
			Prefix: "loom/",
			MaxLen: 60,
		},
		Worktrees: WorktreesConfig{
			BaseDir: "",
		},
		Policy: PolicyConfig{
			File: ".loom/policy.md",
		},
		Mailbox: MailboxConfig{
			Dir: ".loom/mail",
		},
		TUI: TUIConfig{
			RefreshRate: time.Second,
		},
	}
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("branch.prefix", "loom/")
	v.SetDefault("branch.max_len", 60)
	v.SetDefault("worktrees.base_dir", "")
	v.SetDefault("policy.file", ".loom/policy.md")
	v.SetDefault("commit.types", []string{})
	v.SetDefault("mailbox.dir", ".loom/mail")
	v.SetDefault("tui.refresh_rate", "1s")
}

// getUserConfigDir returns the XDG config directory for loom.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "loom")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "loom")
	}
	return filepath.Join(home, ".config", "loom")
}

// findProjectConfig searches for .loom/config.yaml in the current directory
// and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".loom", "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
