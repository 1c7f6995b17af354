package doctor

import (
	"context"
	"fmt"

	"github.com/thoreinstein/latexfmt/internal/config"
	"github.com/thoreinstein/latexfmt/internal/errors"
)

// ConfigCheck verifies the latexfmt configuration loads and validates.
type ConfigCheck struct {
	load   func() (*config.Config, error)
	source func() string
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a config check. load returns the parsed config;
// source reports the file it came from, empty when defaults are in use.
func NewConfigCheck(load func() (*config.Config, error), source func() string) *ConfigCheck {
	return &ConfigCheck{load: load, source: source}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run loads the configuration.
func (c *ConfigCheck) Run(context.Context) *CheckResult {
	cfg, err := c.load()
	file := c.source()
	if err != nil {
		hint := "check the file exists and is valid YAML"
		if errors.Is(err, errors.ErrInvalidConfig) {
			hint = "run: latexfmt config edit"
		}
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  err.Error(),
			Details:  map[string]any{"file": file},
			FixHint:  hint,
		}
	}

	details := map[string]any{
		"executable":         cfg.Formatter.Executable,
		"tab_size":           cfg.Indent.TabSize,
		"insert_spaces":      cfg.Indent.InsertSpaces,
		"save_before_format": cfg.LSP.SaveBeforeFormat,
	}

	if file == "" {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "no config file; using defaults",
			Details:  details,
			FixHint:  "run: latexfmt init",
		}
	}

	details["file"] = file
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("loaded %s", file),
		Details:  details,
	}
}
