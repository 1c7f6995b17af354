package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/latexfmt/internal/config"
	"github.com/thoreinstein/latexfmt/internal/paths"
)

var (
	initYes   bool
	initForce bool
)

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Non-interactive mode, accept all defaults")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the latexfmt configuration file",
	Long: `Write a config.yaml with default settings to the latexfmt config
directory (or the path given with --config).`,
	Example: `  # Initialize with a confirmation prompt
  latexfmt init

  # Initialize non-interactively
  latexfmt init --yes

  # Reset an existing configuration
  latexfmt init --force --yes

  See Also: latexfmt config, latexfmt doctor`,
	Annotations: map[string]string{annotationConfig: "optional"},
	RunE:        runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	path := configPath
	if path == "" {
		path = paths.ConfigFile()
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		fmt.Fprintf(out, "Configuration already exists at %s\n", path)
		fmt.Fprintln(out, "Use --force to overwrite")
		return nil
	}

	if !initYes {
		fmt.Fprintln(out, "This will create:")
		fmt.Fprintf(out, "  %s\n\n", path)
		if !confirm(cmd.InOrStdin(), out, "Proceed?") {
			fmt.Fprintln(out, "Aborted")
			return nil
		}
	}

	if err := writeConfig(path, config.Default()); err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %s\n", path)
	return nil
}

// confirm prompts the user for a yes/no confirmation.
// Returns true only if the user enters "y" or "yes" (case-insensitive).
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
