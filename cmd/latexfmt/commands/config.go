package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/latexfmt/internal/config"
	"github.com/thoreinstein/latexfmt/internal/editor"
	"github.com/thoreinstein/latexfmt/internal/errors"
	"github.com/thoreinstein/latexfmt/internal/paths"
	"github.com/thoreinstein/latexfmt/pkg/fileutil"
)

var configFormat string

func init() {
	configListCmd.Flags().StringVar(&configFormat, "format", "yaml", "output format: yaml, toml")
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage latexfmt configuration",
	Long: `Manage latexfmt configuration.

The config file is config.yaml in the current directory or the latexfmt
config directory. Every key can also be set with an environment variable,
e.g. LATEXFMT_INDENT_TAB_SIZE=2.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  latexfmt config

  # Get a specific value
  latexfmt config get indent.tab_size

  # Set a value
  latexfmt config set formatter.timeout 30s

See Also: latexfmt init, latexfmt doctor`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Example: `  latexfmt config get formatter.executable

See Also: latexfmt config set, latexfmt config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the config file.

Values are validated before anything is written.`,
	Example: `  latexfmt config set indent.tab_size 2
  latexfmt config set indent.insert_spaces false
  latexfmt config set formatter.executable /usr/local/bin/latexindent

See Also: latexfmt config get, latexfmt config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Example: `  latexfmt config list
  latexfmt config list --format toml

See Also: latexfmt config get, latexfmt config set`,
	RunE: runConfigList,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your editor.

Uses $LATEXFMT_EDITOR, $VISUAL or $EDITOR, falling back to nano, then vi.
If no configuration file exists, suggests running 'latexfmt init'.`,
	Example: `  latexfmt config edit
  EDITOR=nano latexfmt config edit

See Also: latexfmt config list, latexfmt init`,
	Annotations: map[string]string{annotationConfig: "optional"},
	RunE:        runConfigEdit,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !config.ValidKey(key) {
		return unknownKeyError(key)
	}

	fmt.Fprintln(cmd.OutOrStdout(), viper.GetString(key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if !config.ValidKey(key) {
		return unknownKeyError(key)
	}

	cfg := *currentConfig()
	if err := setField(&cfg, key, value); err != nil {
		return errors.NewUserError(err, "")
	}
	if errs := config.Validate(&cfg); len(errs) > 0 {
		return errors.NewUserError(errs[0], "")
	}

	path := configTarget()
	if err := writeConfig(path, &cfg); err != nil {
		return err
	}
	viper.Set(key, value)

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	values := configValues(currentConfig())

	var data []byte
	var err error
	switch strings.ToLower(configFormat) {
	case "yaml", "":
		data, err = yaml.Marshal(values)
	case "toml":
		data, err = toml.Marshal(values)
	default:
		return errors.NewUserError(errors.Newf("unknown format %q", configFormat), "use yaml or toml")
	}
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := configTarget()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.NewUserError(
			errors.Newf("config file not found at %s", path),
			"Run: latexfmt init")
	}
	return editor.Open(path, cmd.OutOrStdout())
}

// configTarget is the file config set/edit operate on: --config, then the
// file that was loaded, then the user config file.
func configTarget() string {
	if configPath != "" {
		return configPath
	}
	if used := config.FileUsed(); used != "" {
		return used
	}
	return paths.ConfigFile()
}

// configValues renders cfg as nested maps with durations in string form so
// YAML and TOML output match what the config file accepts.
func configValues(cfg *config.Config) map[string]any {
	return map[string]any{
		"version": cfg.Version,
		"formatter": map[string]any{
			"executable":  cfg.Formatter.Executable,
			"timeout":     cfg.Formatter.Timeout.String(),
			"cleanup_log": cfg.Formatter.CleanupLog,
		},
		"indent": map[string]any{
			"insert_spaces": cfg.Indent.InsertSpaces,
			"tab_size":      cfg.Indent.TabSize,
		},
		"lsp": map[string]any{
			"save_before_format": cfg.LSP.SaveBeforeFormat,
		},
	}
}

// setField parses value for key and stores it in cfg.
func setField(cfg *config.Config, key, value string) error {
	switch key {
	case config.KeyVersion:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Newf("%s: %q is not an integer", key, value)
		}
		cfg.Version = n
	case config.KeyExecutable:
		cfg.Formatter.Executable = value
	case config.KeyTimeout:
		d, err := time.ParseDuration(value)
		if err != nil {
			return errors.Newf("%s: %q is not a duration (e.g. 30s)", key, value)
		}
		cfg.Formatter.Timeout = d
	case config.KeyCleanupLog:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Newf("%s: %q is not a boolean", key, value)
		}
		cfg.Formatter.CleanupLog = b
	case config.KeyInsertSpaces:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Newf("%s: %q is not a boolean", key, value)
		}
		cfg.Indent.InsertSpaces = b
	case config.KeyTabSize:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Newf("%s: %q is not an integer", key, value)
		}
		cfg.Indent.TabSize = n
	case config.KeySaveBeforeFormat:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Newf("%s: %q is not a boolean", key, value)
		}
		cfg.LSP.SaveBeforeFormat = b
	default:
		return errors.Newf("unknown key %q", key)
	}
	return nil
}

// writeConfig writes cfg to path atomically, creating the directory.
func writeConfig(path string, cfg *config.Config) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, configValues(cfg)); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

func unknownKeyError(key string) error {
	return errors.NewUserError(
		errors.Newf("unknown config key %q", key),
		"valid keys: "+strings.Join(config.Keys(), ", "))
}
