package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/commitwit/internal/config"
	clierrors "github.com/ariel-frischer/commitwit/internal/errors"
	"github.com/ariel-frischer/commitwit/internal/git"
	"github.com/ariel-frischer/commitwit/internal/output"
	"github.com/ariel-frischer/commitwit/internal/progress"
	"github.com/ariel-frischer/commitwit/internal/revision"
)

// openRepository opens the repository holding the working directory.
// Tests point it at a temporary repository.
var openRepository = func() (*git.Repository, error) {
	return git.Open("")
}

// session is what the repository commands share: the opened repository,
// its root and the loaded configuration.
type session struct {
	repo     *git.Repository
	root     string
	cfg      *config.Configuration
	resolver *revision.Resolver
}

// openSession opens the repository and loads its configuration.
func openSession(cmd *cobra.Command) (*session, error) {
	repo, err := openRepository()
	if err != nil {
		wd, _ := os.Getwd()
		return nil, clierrors.NotAGitRepository(wd, err)
	}

	root := repo.Root()
	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return nil, err
	}

	return &session{
		repo:     repo,
		root:     root,
		cfg:      cfg,
		resolver: revision.NewResolver(repo),
	}, nil
}

// loadConfig loads configuration for root, honoring --config. Commands that
// work outside a repository pass the working directory as root.
func loadConfig(cmd *cobra.Command, root string) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		Root:              root,
		ProjectConfigPath: configFlag,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.ConfigInvalid(err)
	}
	return cfg, nil
}

// configRoot returns the repository root when the working directory is in
// a repository, else the working directory.
func configRoot() string {
	if repo, err := openRepository(); err == nil && repo.Root() != "" {
		return repo.Root()
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// warner returns a warning hook that prints to the command's stderr.
func warner(cmd *cobra.Command) func(format string, args ...any) {
	w := cmd.ErrOrStderr()
	return func(format string, args ...any) {
		output.PrintWarning(w, format, args...)
	}
}

// newSpinner returns a spinner on w, active only when w is a terminal.
func newSpinner(w io.Writer) *progress.Spinner {
	caps := progress.DetectTerminalCapabilities()
	caps.IsTTY = caps.IsTTY && output.IsTerminal(w)
	return progress.NewSpinner(w, caps)
}
