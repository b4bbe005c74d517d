package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/commitwit/internal/build"
)

// SourceURL is where commitwit is developed.
const SourceURL = "https://github.com/ariel-frischer/commitwit"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  argsRange(0, 0),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, build.Summary())
		fmt.Fprintln(out, SourceURL)
	},
}

func init() {
	versionCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(versionCmd)
}
