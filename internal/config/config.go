// Package config provides configuration management for latexfmt using Viper.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/latexfmt/internal/errors"
	"github.com/thoreinstein/latexfmt/internal/formatter"
	"github.com/thoreinstein/latexfmt/internal/paths"
)

// CurrentVersion is the only configuration schema version understood.
const CurrentVersion = 1

// EnvPrefix is prepended to environment variable overrides, e.g.
// LATEXFMT_INDENT_TAB_SIZE=2.
const EnvPrefix = "LATEXFMT"

// Configuration keys.
const (
	KeyVersion          = "version"
	KeyExecutable       = "formatter.executable"
	KeyTimeout          = "formatter.timeout"
	KeyCleanupLog       = "formatter.cleanup_log"
	KeyInsertSpaces     = "indent.insert_spaces"
	KeyTabSize          = "indent.tab_size"
	KeySaveBeforeFormat = "lsp.save_before_format"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version   int             `mapstructure:"version" yaml:"version" toml:"version"`
	Formatter FormatterConfig `mapstructure:"formatter" yaml:"formatter" toml:"formatter"`
	Indent    IndentConfig    `mapstructure:"indent" yaml:"indent" toml:"indent"`
	LSP       LSPConfig       `mapstructure:"lsp" yaml:"lsp" toml:"lsp"`
}

// FormatterConfig controls how latexindent is located and run.
type FormatterConfig struct {
	// Executable is the base name or absolute path of latexindent.
	Executable string `mapstructure:"executable" yaml:"executable" toml:"executable"`
	// Timeout bounds a single run. Zero disables the limit.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" toml:"timeout"`
	// CleanupLog removes indent.log after a successful run.
	CleanupLog bool `mapstructure:"cleanup_log" yaml:"cleanup_log" toml:"cleanup_log"`
}

// IndentConfig holds the indentation used when no editor supplies one.
type IndentConfig struct {
	InsertSpaces bool `mapstructure:"insert_spaces" yaml:"insert_spaces" toml:"insert_spaces"`
	TabSize      int  `mapstructure:"tab_size" yaml:"tab_size" toml:"tab_size"`
}

// LSPConfig holds language server behaviour.
type LSPConfig struct {
	// SaveBeforeFormat writes unsaved buffer contents to disk before running
	// latexindent, which only reads files.
	SaveBeforeFormat bool `mapstructure:"save_before_format" yaml:"save_before_format" toml:"save_before_format"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Formatter: FormatterConfig{
			Executable: formatter.DefaultExecutable,
			CleanupLog: true,
		},
		Indent: IndentConfig{
			InsertSpaces: true,
			TabSize:      formatter.DefaultTabSize,
		},
		LSP: LSPConfig{
			SaveBeforeFormat: true,
		},
	}
}

// Keys returns every known configuration key in display order.
func Keys() []string {
	return []string{
		KeyVersion,
		KeyExecutable,
		KeyTimeout,
		KeyCleanupLog,
		KeyInsertSpaces,
		KeyTabSize,
		KeySaveBeforeFormat,
	}
}

// ValidKey reports whether key is a known configuration key.
func ValidKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Init resets Viper and registers search paths, environment handling and
// defaults. Call this once at application startup before accessing config
// values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault(KeyVersion, d.Version)
	viper.SetDefault(KeyExecutable, d.Formatter.Executable)
	viper.SetDefault(KeyTimeout, d.Formatter.Timeout)
	viper.SetDefault(KeyCleanupLog, d.Formatter.CleanupLog)
	viper.SetDefault(KeyInsertSpaces, d.Indent.InsertSpaces)
	viper.SetDefault(KeyTabSize, d.Indent.TabSize)
	viper.SetDefault(KeySaveBeforeFormat, d.LSP.SaveBeforeFormat)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else if path != "" && isNotExist(err) {
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Mark(errs[0], errors.ErrInvalidConfig), "validating config")
	}

	return &cfg, nil
}

// FileUsed returns the path of the configuration file that was read, or an
// empty string when defaults are in effect.
func FileUsed() string {
	return viper.ConfigFileUsed()
}

// FormatterOptions returns the indentation options configured for documents
// formatted outside an editor.
func (c *Config) FormatterOptions() formatter.Options {
	return formatter.Options{
		InsertSpaces: c.Indent.InsertSpaces,
		TabSize:      c.Indent.TabSize,
	}
}
