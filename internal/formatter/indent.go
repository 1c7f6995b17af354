package formatter

import "strings"

// DefaultTabSize is used when Options.TabSize is unset.
const DefaultTabSize = 4

// Options carries the editor's indentation settings for one document.
type Options struct {
	// InsertSpaces selects spaces over a tab character.
	InsertSpaces bool `json:"insertSpaces"`

	// TabSize is the number of spaces per indent level. Zero means unset.
	TabSize int `json:"tabSize"`
}

// IndentString returns the indent latexindent should use: TabSize spaces when
// InsertSpaces is set, otherwise a single tab.
func (o Options) IndentString() string {
	if !o.InsertSpaces {
		return "\t"
	}
	size := o.TabSize
	if size <= 0 {
		size = DefaultTabSize
	}
	return strings.Repeat(" ", size)
}
