package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/latexfmt/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version information",
	Long:        `Print the version, commit, and build date of latexfmt.`,
	Annotations: map[string]string{annotationConfig: "optional"},
	Args:        cobra.NoArgs,
	Run: func(c *cobra.Command, _ []string) {
		io.WriteString(c.OutOrStdout(), cmd.Info())
	},
}
