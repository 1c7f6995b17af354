// Package editor launches the user's preferred text editor on a file.
package editor

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/latexfmt/internal/errors"
)

// EnvEditor overrides $VISUAL and $EDITOR for latexfmt only.
const EnvEditor = "LATEXFMT_EDITOR"

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Open launches the editor for path and waits for it to exit.
// The resolved location is echoed to out before the editor starts.
func Open(path string, out io.Writer) error {
	argv := Command()
	if out != nil {
		io.WriteString(out, "Location: "+path+"\n")
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", argv[0])
	}
	return nil
}

// Command returns the editor argv. Values such as "code --wait" are split on
// whitespace. Fallback chain: $LATEXFMT_EDITOR, $VISUAL, $EDITOR, nano, vi.
func Command() []string {
	for _, env := range []string{EnvEditor, "VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	if _, err := lookPath("nano"); err == nil {
		return []string{"nano"}
	}
	return []string{"vi"}
}
