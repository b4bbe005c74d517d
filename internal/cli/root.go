package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/commitwit/internal/errors"
	"github.com/ariel-frischer/commitwit/internal/git"
)

// Command group IDs for help output.
const (
	GroupCommits       = "commits"
	GroupConfiguration = "configuration"
)

var (
	debugFlag  bool
	configFlag string
)

var rootCmd = &cobra.Command{
	Use:   "commitwit",
	Short: "Lint Conventional Commits and build changelogs from git history",
	Long: `commitwit parses and validates Conventional Commit messages and
assembles release changelogs from the commits in a git repository.

Rules and changelog sections come from .commitwit.yml at the repository
root. Run 'commitwit config init' to create one.`,
	Example: `  # Generate CHANGELOG.md for everything since the latest tag
  commitwit changelog --last-tag

  # Preview the next minor release notes
  commitwit changelog --minor --stdout

  # Lint the commits on a feature branch
  commitwit lint main..HEAD`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr(), debugFlag)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCommits, Title: "Commit Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Project config file (default: <repo>/.commitwit.yml)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})
}

// Execute runs the root command. Errors are printed here, once, and the
// returned error carries the process exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	cliErr := clierrors.Classify(err)
	clierrors.FprintError(rootCmd.ErrOrStderr(), cliErr)
	return NewExitError(cliErr.ExitCode())
}

// setupLogging installs the slog default logger and bridges git debug
// output into it.
func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))

	if !debug {
		git.SetDebugLogger(nil)
		return
	}
	git.SetDebugLogger(func(format string, args ...any) {
		slog.Debug(fmt.Sprintf(format, args...))
	})
}

// argsRange is cobra.RangeArgs with an argument error the exit code
// mapping understands.
func argsRange(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || len(args) > hi {
			want := fmt.Sprintf("%d to %d", lo, hi)
			if lo == hi {
				want = fmt.Sprintf("%d", lo)
			}
			return clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("accepts %s arg(s), received %d", want, len(args)),
				cmd.UseLine(),
			)
		}
		return nil
	}
}
