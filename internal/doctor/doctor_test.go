package doctor

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []Severity
		wantPassed   int
		wantInfo     int
		wantWarnings int
		wantErrors   int
		wantExit     int
	}{
		{name: "empty runner", wantExit: 0},
		{name: "all pass", statuses: []Severity{SeverityPass, SeverityPass}, wantPassed: 2, wantExit: 0},
		{name: "info only", statuses: []Severity{SeverityPass, SeverityInfo}, wantPassed: 1, wantInfo: 1, wantExit: 0},
		{name: "warning", statuses: []Severity{SeverityWarning, SeverityPass}, wantPassed: 1, wantWarnings: 1, wantExit: 1},
		{name: "error wins", statuses: []Severity{SeverityWarning, SeverityError}, wantWarnings: 1, wantErrors: 1, wantExit: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner()
			for i, s := range tt.statuses {
				r.AddCheck(newMockCheck(&CheckResult{Name: string(rune('a' + i)), Status: s}))
			}

			report := r.Run(context.Background())

			assert.Len(t, report.Results, len(tt.statuses))
			assert.Equal(t, tt.wantPassed, report.Summary.Passed)
			assert.Equal(t, tt.wantInfo, report.Summary.Info)
			assert.Equal(t, tt.wantWarnings, report.Summary.Warnings)
			assert.Equal(t, tt.wantErrors, report.Summary.Errors)
			assert.Equal(t, tt.wantErrors > 0, report.HasErrors())
			assert.Equal(t, tt.wantWarnings > 0, report.HasWarnings())
			assert.Equal(t, tt.wantExit, report.ExitCode())
		})
	}
}

func TestRunner_PreservesOrder(t *testing.T) {
	names := []string{"first", "second", "third"}
	var checks []Check
	for _, n := range names {
		checks = append(checks, newMockCheck(&CheckResult{Name: n}))
	}

	report := NewRunner(checks...).Run(context.Background())

	for i, want := range names {
		assert.Equal(t, want, report.Results[i].Name)
	}
}

func TestRunner_NilResultIsError(t *testing.T) {
	check := &mockCheck{}
	check.On("Run", mock.Anything).Return((*CheckResult)(nil))
	check.On("Name").Return("broken")
	check.On("Category").Return("test")

	report := NewRunner(check).Run(context.Background())

	require.Len(t, report.Results, 1)
	assert.Equal(t, "broken", report.Results[0].Name)
	assert.Equal(t, SeverityError, report.Results[0].Status)
	check.AssertExpectations(t)
}

func TestRunner_Timestamp(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	r := NewRunner()
	r.now = func() time.Time { return fixed }

	report := r.Run(context.Background())
	assert.Equal(t, fixed.UTC(), report.Timestamp)
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(&CheckResult{Name: "x", Status: SeverityWarning})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"warning"`)

	assert.Equal(t, "unknown", Severity(42).String())
}
