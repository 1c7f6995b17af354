// Package platform maps the host operating system to the conventions needed
// to locate the latexindent executable.
//
// Each supported operating system family has a [Profile] describing the
// suffix the executable may carry on that system and the command used to
// probe the search path for it:
//
//	| ID      | Suffix | Lookup |
//	|---------|--------|--------|
//	| windows | .exe   | where  |
//	| linux   | .pl    | which  |
//	| darwin  | .pl    | which  |
//
// Profiles are fixed at compile time and handed out by value, so callers can
// never mutate the shared table.
//
// # Resolving
//
// Use [Current] for the running process and [Resolve] when the identifier
// comes from elsewhere (tests, configuration overrides):
//
//	p, err := platform.Current()
//	if errors.Is(err, platform.ErrUnsupportedPlatform) {
//	    // no lookup convention for this OS
//	}
package platform
