package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/thoreinstein/latexfmt/internal/platform"
)

// PlatformCheck verifies the host operating system has a formatter profile.
type PlatformCheck struct {
	id string
}

var _ Check = (*PlatformCheck)(nil)

// NewPlatformCheck creates a platform check for the given OS identifier.
func NewPlatformCheck(id string) *PlatformCheck {
	return &PlatformCheck{id: id}
}

// Name returns the unique identifier for this check.
func (c *PlatformCheck) Name() string {
	return "platform"
}

// Category returns the grouping for this check.
func (c *PlatformCheck) Category() string {
	return "platform"
}

// Run resolves the platform profile.
func (c *PlatformCheck) Run(context.Context) *CheckResult {
	p, err := platform.Resolve(c.id)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("platform %q is not supported", c.id),
			Details:  map[string]any{"supported": platform.IDs()},
			FixHint:  "latexfmt runs on " + strings.Join(platform.IDs(), ", "),
		}
	}

	suffix := p.ExecutableSuffix
	if suffix == "" {
		suffix = "(none)"
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("%s: lookup with %q, suffix %s", p.ID, p.LookupCommand, suffix),
		Details: map[string]any{
			"id":                p.ID,
			"lookup_command":    p.LookupCommand,
			"executable_suffix": p.ExecutableSuffix,
		},
	}
}
