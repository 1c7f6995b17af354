// Package config provides configuration management for the latexfmt CLI.
//
// # Configuration File
//
// Configuration is read from config.yaml in the current directory, then
// from the user configuration directory (see package paths):
//
//	version: 1
//	formatter:
//	  executable: latexindent   # bare name or absolute path
//	  timeout: 30s              # 0 disables the limit
//	  cleanup_log: true         # remove indent.log after formatting
//	indent:
//	  insert_spaces: true
//	  tab_size: 4
//	lsp:
//	  save_before_format: true
//
// Every key can be overridden from the environment with the LATEXFMT_
// prefix and dots replaced by underscores, e.g. LATEXFMT_INDENT_TAB_SIZE=2.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//
// Load validates the result; see [Validate] for the rules.
package config
