package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/commitwit/internal/commit"
	clierrors "github.com/ariel-frischer/commitwit/internal/errors"
)

var formatCmd = &cobra.Command{
	Use:   "format [message...]",
	Short: "Print a commit message in canonical form",
	Long: `Parse a commit message and print it in canonical Conventional Commit form.

Each argument is one paragraph, like repeated 'git commit -m' flags. With no
arguments the message is read from stdin.`,
	Example: `  commitwit format "feat (api): add search"
  commitwit format "fix: crash on empty input" "BREAKING CHANGE: config moved"
  git log -1 --format=%B | commitwit format`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFormat(cmd, args)
	},
}

func init() {
	formatCmd.GroupID = GroupCommits
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, "\n\n")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return clierrors.FileNotReadable("stdin", err)
		}
		text = string(data)
	}

	formatted := commit.Parse(text).Format()
	if formatted == "" {
		return clierrors.NewArgumentError("empty commit message",
			"Pass the message as an argument or on stdin")
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatted)
	return nil
}
