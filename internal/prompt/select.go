// Package prompt provides line-based CLI prompts for terminals where a
// full-screen picker is unavailable.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/thoreinstein/latexfmt/internal/errors"
)

// Sentinel errors for file selection.
var (
	ErrNoChoices          = errors.New("nothing to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector prints a numbered list and reads the user's choice.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a Selector reading from r and writing to w.
func NewSelector(r io.Reader, w io.Writer) *Selector {
	return &Selector{reader: r, writer: w}
}

// Select asks the user to pick one of choices and returns its index.
//
// Returns:
//   - ErrNoChoices if the list is empty
//   - 0 without prompting if only one choice exists
//   - ErrInvalidSelection if the input is not a number in range
//   - ErrSelectionCancelled on EOF (e.g., Ctrl+D)
//
// An empty answer selects the first choice.
func (s *Selector) Select(title string, choices []string) (int, error) {
	if len(choices) == 0 {
		return 0, ErrNoChoices
	}
	if len(choices) == 1 {
		return 0, nil
	}

	fmt.Fprintf(s.writer, "%s:\n", title)
	for i, c := range choices {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, c)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := bufio.NewReader(s.reader).ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return 0, errors.Wrap(err, "reading selection")
		}
		if strings.TrimSpace(input) == "" {
			return 0, ErrSelectionCancelled
		}
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if n < 1 || n > len(choices) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(choices))
	}
	return n - 1, nil
}
