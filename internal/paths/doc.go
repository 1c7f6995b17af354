// Package paths resolves the directories latexfmt reads and writes.
//
// The package wraps github.com/adrg/xdg so the configuration file lives in
// the conventional location on every operating system:
//
//	Linux:   ~/.config/latexfmt/config.yaml
//	macOS:   ~/Library/Application Support/latexfmt/config.yaml
//	Windows: %LOCALAPPDATA%\latexfmt\config.yaml
//
// Setting LATEXFMT_CONFIG_DIR overrides the directory entirely, which is how
// tests keep away from the real user configuration.
package paths
