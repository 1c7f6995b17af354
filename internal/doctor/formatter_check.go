package doctor

import (
	"context"
	"fmt"

	"github.com/thoreinstein/latexfmt/internal/platform"
)

// Locator finds the formatter executable. *formatter.Invoker satisfies it.
type Locator interface {
	Platform() (platform.Profile, error)
	IsExecutableAvailable(ctx context.Context, lookupCommand string) bool
	Executable() string
}

// FormatterCheck verifies latexindent can be found on the search path.
type FormatterCheck struct {
	locator Locator
}

var _ Check = (*FormatterCheck)(nil)

// NewFormatterCheck creates a formatter availability check.
func NewFormatterCheck(l Locator) *FormatterCheck {
	return &FormatterCheck{locator: l}
}

// Name returns the unique identifier for this check.
func (c *FormatterCheck) Name() string {
	return "formatter"
}

// Category returns the grouping for this check.
func (c *FormatterCheck) Category() string {
	return "formatter"
}

// Run performs the same two-step lookup used before formatting.
func (c *FormatterCheck) Run(ctx context.Context) *CheckResult {
	p, err := c.locator.Platform()
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "skipped: platform not supported",
		}
	}

	requested := c.locator.Executable()
	if !c.locator.IsExecutableAvailable(ctx, p.LookupCommand) {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("%s not found in PATH", requested),
			Details: map[string]any{
				"lookup_command": p.LookupCommand,
				"tried":          []string{requested, p.Executable(requested)},
			},
			FixHint: "install latexindent (shipped with TeX Live and MiKTeX) or set formatter.executable",
		}
	}

	resolved := c.locator.Executable()
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "found " + resolved,
		Details: map[string]any{
			"lookup_command": p.LookupCommand,
			"executable":     resolved,
		},
	}
}
