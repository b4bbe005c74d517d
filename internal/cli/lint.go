package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/commitwit/internal/changelog"
	"github.com/ariel-frischer/commitwit/internal/commit"
	clierrors "github.com/ariel-frischer/commitwit/internal/errors"
	"github.com/ariel-frischer/commitwit/internal/lint"
	"github.com/ariel-frischer/commitwit/internal/output"
)

// lintOptions holds the lint command flags.
type lintOptions struct {
	Message string
	// MessageSet is true when --message was given, even if empty.
	MessageSet bool
	From       string
	To         string
}

var lintFlags lintOptions

var lintCmd = &cobra.Command{
	Use:   "lint [rev-spec]",
	Short: "Validate commit messages against the configured rules",
	Long: `Validate commit messages against the rules in .commitwit.yml.

Without arguments the commit at HEAD is checked. A "from..to" range checks
every commit in it. Commits matching a lint.ignored pattern are skipped.
--message checks a message given on the command line instead.

Exit status is 1 when any message breaks a rule.`,
	Example: `  # Lint HEAD
  commitwit lint

  # Lint every commit on a branch
  commitwit lint main..feature

  # Lint a message before committing it
  commitwit lint --message "feat(api): add search endpoint"`,
	Args:         argsRange(0, 1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		lintFlags.MessageSet = cmd.Flags().Changed("message")
		return runLint(cmd, args, lintFlags)
	},
}

func init() {
	lintCmd.GroupID = GroupCommits
	rootCmd.AddCommand(lintCmd)

	f := lintCmd.Flags()
	f.StringVar(&lintFlags.Message, "message", "", "Lint this message instead of repository commits")
	f.StringVarP(&lintFlags.From, "from", "f", "", "Start of the range (deprecated: use a rev-spec)")
	f.StringVarP(&lintFlags.To, "to", "t", "", "End of the range (deprecated: use a rev-spec)")
	_ = f.MarkHidden("from")
	_ = f.MarkHidden("to")
}

func runLint(cmd *cobra.Command, args []string, opts lintOptions) error {
	errOut := cmd.ErrOrStderr()

	if opts.MessageSet {
		if len(args) > 0 {
			return clierrors.InvalidFlagCombination("--message with a rev-spec",
				"--message lints the given text, not repository commits")
		}
		cfg, err := loadConfig(cmd, configRoot())
		if err != nil {
			return err
		}
		return reportLint(cmd, lint.NewValidator(cfg.LintConfig()).Validate(commit.Parse(opts.Message)), 1)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	sel, err := changelog.SelectRange(changelog.RangeRequest{
		RevSpec: firstArg(args),
		From:    opts.From,
		To:      opts.To,
	}, s.repo, warner(cmd))
	if err != nil {
		return err
	}

	output.PrintInfo(errOut, "Linting %s", sel.Spec)
	commits, err := s.resolver.ResolveFiltered(sel.Spec, s.cfg.Lint.Ignored)
	if err != nil {
		return err
	}

	messages := make(map[string]commit.Message, len(commits))
	for _, c := range commits {
		messages[c.Hash.String()] = commit.FromCommit(c)
	}
	return reportLint(cmd, lint.NewValidator(s.cfg.LintConfig()).ValidateAll(messages), len(messages))
}

// reportLint prints the outcome of a lint run. Violations are printed
// here and returned as an exit status so they are not reported twice.
func reportLint(cmd *cobra.Command, err error, checked int) error {
	errOut := cmd.ErrOrStderr()

	var failure *lint.Failure
	if errors.As(err, &failure) {
		output.PrintViolations(errOut, failure.Error())
		return NewExitError(ExitValidationFailed)
	}
	if err != nil {
		return err
	}

	noun := "messages"
	if checked == 1 {
		noun = "message"
	}
	output.PrintSuccess(errOut, fmt.Sprintf("%d commit %s passed", checked, noun))
	return nil
}
