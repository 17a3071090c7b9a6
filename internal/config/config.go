package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/logfields"
)

// Config represents the webhelp configuration file.
type Config struct {
	ProductDisplayName string        `yaml:"product_display_name"`
	RootDescription    string        `yaml:"root_description,omitempty"`
	Tree               string        `yaml:"tree"`
	ExcludeGroups      []string      `yaml:"exclude_groups,omitempty"`
	Package            PackageConfig `yaml:"package"`
	PluginsFile        string        `yaml:"plugins_file,omitempty"`
	HomeDir            string        `yaml:"home_dir,omitempty"`
	SanitizeHomeDir    *bool         `yaml:"sanitize_home_dir,omitempty"`
	Output             OutputConfig  `yaml:"output"`
	VerifyLinks        bool          `yaml:"verify_links"`
	Logging            LoggingConfig `yaml:"logging"`
	Metrics            MetricsConfig `yaml:"metrics,omitempty"`
	History            HistoryConfig `yaml:"history,omitempty"`

	// directory of the loaded file; relative paths inside the file resolve against it.
	baseDir string
}

// PackageConfig identifies the documented CLI package. Its name and version end up in the
// page footer and in the metadata cache.
type PackageConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory      string `yaml:"directory"`
	PagesDir       string `yaml:"pages_dir,omitempty"`
	NavigationFile string `yaml:"navigation_file,omitempty"`
	MetadataFile   string `yaml:"metadata_file,omitempty"`
}

// LoggingConfig configures the slog handler installed by the CLI.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// MetricsConfig enables the prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// HistoryConfig enables the sqlite build history.
type HistoryConfig struct {
	Database string `yaml:"database,omitempty"`
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	if loaded, err := loadEnvFile(); err == nil {
		slog.Debug("Loaded environment variables", logfields.File(loaded))
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext(logfields.KeyFile, configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext(logfields.KeyFile, configPath).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		if _, ok := errors.AsClassified(err); ok {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid configuration").
			Fatal().
			UserAction().
			WithContext(logfields.KeyFile, configPath).
			Build()
	}
	cfg.baseDir = filepath.Dir(configPath)
	return cfg, nil
}

// Parse decodes a configuration document, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Complete(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Complete applies defaults and validates a configuration built in code.
func (c *Config) Complete() error {
	c.applyDefaults()
	return c.Validate()
}

func (c *Config) applyDefaults() {
	if c.Output.Directory == "" {
		c.Output.Directory = "./help-site"
	}
	if c.Output.PagesDir == "" {
		c.Output.PagesDir = "docs"
	}
	if c.Output.NavigationFile == "" {
		c.Output.NavigationFile = "tree-data.js"
	}
	if c.Output.MetadataFile == "" {
		c.Output.MetadataFile = "metadata.json"
	}
	if c.SanitizeHomeDir == nil {
		enabled := true
		c.SanitizeHomeDir = &enabled
	}
	if c.ProductDisplayName == "" {
		c.ProductDisplayName = c.Package.Name
	}
	c.Logging.Level = string(NormalizeLogLevel(c.Logging.Level))
	c.Logging.Format = string(NormalizeLogFormat(c.Logging.Format))
}

// Resolve returns p relative to the directory of the loaded configuration file.
// Absolute paths and configs that were not loaded from disk are returned unchanged.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// SanitizeHome reports whether the home directory is masked in generated pages.
func (c *Config) SanitizeHome() bool {
	return c.SanitizeHomeDir == nil || *c.SanitizeHomeDir
}

// ResolvedHomeDir returns the configured home directory or the current user's one.
func (c *Config) ResolvedHomeDir() string {
	if c.HomeDir != "" {
		return c.HomeDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext(logfields.KeyFile, configPath).
			Build()
	}

	enabled := true
	example := Config{
		ProductDisplayName: "Example CLI",
		RootDescription:    "Welcome to the Example CLI reference.",
		Tree:               "commands.yaml",
		ExcludeGroups:      []string{"plugins"},
		Package:            PackageConfig{Name: "example-cli", Version: "1.0.0"},
		PluginsFile:        "${HOME}/.example/plugins/plugins.json",
		SanitizeHomeDir:    &enabled,
		Output: OutputConfig{
			Directory:      "./help-site",
			PagesDir:       "docs",
			NavigationFile: "tree-data.js",
			MetadataFile:   "metadata.json",
		},
		VerifyLinks: true,
		Logging:     LoggingConfig{Level: string(LogLevelInfo), Format: string(LogFormatText)},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			Fatal().
			WithContext(logfields.KeyFile, configPath).
			Build()
	}
	return nil
}
