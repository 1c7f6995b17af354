package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/latexfmt/pkg/fileutil"
)

// SettingsFiles are the latexindent settings files looked for in the working
// directory.
var SettingsFiles = []string{
	"localSettings.yaml",
	".localSettings.yaml",
	"latexindent.yaml",
	".latexindent.yaml",
}

// SettingsCheck verifies local latexindent settings files are valid YAML.
// latexindent aborts on a malformed settings file, which otherwise surfaces
// only as a generic formatting failure.
type SettingsCheck struct {
	dir string
}

var _ Check = (*SettingsCheck)(nil)

// NewSettingsCheck creates a settings check rooted at dir.
func NewSettingsCheck(dir string) *SettingsCheck {
	return &SettingsCheck{dir: dir}
}

// Name returns the unique identifier for this check.
func (c *SettingsCheck) Name() string {
	return "latexindent-settings"
}

// Category returns the grouping for this check.
func (c *SettingsCheck) Category() string {
	return "formatter"
}

// Run parses every settings file present in the directory.
func (c *SettingsCheck) Run(context.Context) *CheckResult {
	var found, invalid []string
	var overrides []string
	problems := make(map[string]any)

	for _, name := range SettingsFiles {
		path := filepath.Join(c.dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		found = append(found, name)

		data, err := fileutil.ReadFileWithLimit(path)
		if err != nil {
			invalid = append(invalid, name)
			problems[name] = err.Error()
			continue
		}

		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			invalid = append(invalid, name)
			problems[name] = err.Error()
			continue
		}
		if _, ok := doc["defaultIndent"]; ok {
			overrides = append(overrides, name)
		}
	}

	if len(found) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "no local latexindent settings",
		}
	}

	details := map[string]any{"files": found}
	if len(overrides) > 0 {
		// -y from the editor always wins over the file.
		details["default_indent_ignored"] = overrides
	}

	if len(invalid) > 0 {
		details["errors"] = problems
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  fmt.Sprintf("invalid YAML in %s", strings.Join(invalid, ", ")),
			Details:  details,
			FixHint:  "fix or remove the file; latexindent stops on malformed settings",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("%d settings file(s) parse", len(found)),
		Details:  details,
	}
}
