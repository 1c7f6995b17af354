package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/thoreinstein/latexfmt/internal/errors"
)

func TestGenDoc_Markdown(t *testing.T) {
	dir, _ := setupCommand(t)
	out := filepath.Join(dir, "docs")

	stdout, _, err := execute(t, "", "gen-doc", "--dir", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Documentation generated in "+out)

	page := readFile(t, filepath.Join(out, "latexfmt_format.md"))
	assert.True(t, strings.HasPrefix(page, "---\ntitle: \"latexfmt format\"\n"), page)
	assert.Contains(t, page, "/docs/reference/latexfmt/")

	_, err = os.Stat(filepath.Join(out, "latexfmt_gen-doc.md"))
	assert.True(t, os.IsNotExist(err), "hidden commands are not documented")
}

func TestGenDoc_Man(t *testing.T) {
	dir, _ := setupCommand(t)
	out := filepath.Join(dir, "man")

	_, _, err := execute(t, "", "gen-doc", "--dir", out, "--format", "man")
	require.NoError(t, err)

	page := readFile(t, filepath.Join(out, "latexfmt-lsp.1"))
	assert.Contains(t, page, `.TH "LATEXFMT" "1"`)
}

func TestGenDoc_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing dir", []string{"gen-doc"}, "output directory is required"},
		{"unknown format", []string{"gen-doc", "--dir", "out", "--format", "pdf"}, `unknown format "pdf"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCommand(t)

			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, apperrors.ExitUser, apperrors.ExitCode(err))
		})
	}
}
