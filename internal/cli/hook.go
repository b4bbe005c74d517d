package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/commitwit/internal/commit"
	clierrors "github.com/ariel-frischer/commitwit/internal/errors"
	"github.com/ariel-frischer/commitwit/internal/lint"
	"github.com/ariel-frischer/commitwit/internal/output"
)

var hookCmd = &cobra.Command{
	Use:   "hook <file>",
	Short: "Validate and normalize a commit message file (commit-msg hook)",
	Long: `Validate the commit message git prepared in <file> and rewrite it in
canonical Conventional Commit form. Lines starting with '#' are git comments
and are ignored.

The file is left untouched when the message breaks a rule, and the exit
status is 1 so git aborts the commit. Point a commit-msg hook at it:

  #!/bin/sh
  exec commitwit hook "$1"`,
	Example: `  commitwit hook .git/COMMIT_EDITMSG`,
	Args:         argsRange(1, 1),
	Hidden:       true,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHook(cmd, args[0])
	},
}

func init() {
	hookCmd.GroupID = GroupCommits
	rootCmd.AddCommand(hookCmd)
}

func runHook(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return clierrors.FileNotReadable(path, err)
	}

	cfg, err := loadConfig(cmd, configRoot())
	if err != nil {
		return err
	}

	msg := commit.Parse(stripComments(string(data)))
	if err := lint.NewValidator(cfg.LintConfig()).Validate(msg); err != nil {
		return reportLint(cmd, err, 1)
	}

	info, err := os.Stat(path)
	if err != nil {
		return clierrors.FileNotReadable(path, err)
	}
	if err := os.WriteFile(path, []byte(msg.Format()), info.Mode().Perm()); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Write, "writing commit message",
			"Check that "+path+" is writable")
	}

	output.PrintSuccess(cmd.ErrOrStderr(), "Commit message is valid")
	return nil
}

// stripComments drops the '#' lines git adds to the message template.
func stripComments(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
