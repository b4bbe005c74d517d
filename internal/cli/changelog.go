package cli

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/commitwit/internal/changelog"
	clierrors "github.com/ariel-frischer/commitwit/internal/errors"
	"github.com/ariel-frischer/commitwit/internal/output"
	"github.com/ariel-frischer/commitwit/internal/revision"
	"github.com/ariel-frischer/commitwit/internal/semver"
)

// changelogOptions holds the changelog command flags.
type changelogOptions struct {
	Append     bool
	Subtitle   string
	NoSubtitle bool
	Copy       bool
	Stdout     bool
	LastTag    bool
	ForTag     string
	Major      bool
	Minor      bool
	Patch      bool
	From       string
	To         string
}

var changelogFlags changelogOptions

var changelogCmd = &cobra.Command{
	Use:   "changelog [rev-spec]",
	Short: "Generate a changelog from commit history",
	Long: `Generate a Markdown changelog from the Conventional Commits in a revision
range. Commits are grouped into the sections configured under
changelog.types; breaking changes and unconfigured types get their own
blocks when enabled.

The subtitle is the latest tag by default. With --major, --minor or --patch
it is the next version after the latest tag, and the range becomes
latestTag..HEAD. --for-tag regenerates the notes of an existing tag.

A bare revision (or none, meaning HEAD) covers exactly that one commit;
use a from..to range or --last-tag to cover more.

Without --stdout or --copy the changelog is written to changelog.filepath
(CHANGELOG.md at the repository root by default).`,
	Example: `  # The commit at HEAD
  commitwit changelog

  # Every commit since the latest tag
  commitwit changelog --last-tag

  # Commits since the latest tag, subtitled with the next minor version
  commitwit changelog --minor

  # Release notes of an existing tag, appended to CHANGELOG.md
  commitwit changelog --for-tag v1.2.0 --append

  # An explicit range, printed instead of written
  commitwit changelog v1.0.0..v1.1.0 --stdout`,
	Args:         argsRange(0, 1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelog(cmd, args, changelogFlags)
	},
}

func init() {
	changelogCmd.GroupID = GroupCommits
	rootCmd.AddCommand(changelogCmd)

	f := changelogCmd.Flags()
	f.BoolVarP(&changelogFlags.Append, "append", "a", false, "Append to the changelog file instead of overwriting it")
	f.StringVarP(&changelogFlags.Subtitle, "subtitle", "s", "", "Subtitle (usually the version) shown under the title")
	f.BoolVarP(&changelogFlags.NoSubtitle, "no-subtitle", "n", false, "Omit the subtitle")
	f.BoolVarP(&changelogFlags.Copy, "copy", "c", false, "Copy the changelog to the clipboard")
	f.BoolVarP(&changelogFlags.Stdout, "stdout", "S", false, "Print the changelog instead of writing the file")
	f.BoolVarP(&changelogFlags.LastTag, "last-tag", "l", false, "Only include commits since the latest tag")
	f.StringVar(&changelogFlags.ForTag, "for-tag", "", "Generate the changelog of an existing tag")
	f.BoolVarP(&changelogFlags.Major, "major", "M", false, "Subtitle with the next major version")
	f.BoolVarP(&changelogFlags.Minor, "minor", "m", false, "Subtitle with the next minor version")
	f.BoolVarP(&changelogFlags.Patch, "patch", "p", false, "Subtitle with the next patch version")
	f.StringVar(&changelogFlags.From, "from", "", "Start of the range (deprecated: use a rev-spec)")
	f.StringVar(&changelogFlags.To, "to", "", "End of the range (deprecated: use a rev-spec)")
	_ = f.MarkHidden("from")
	_ = f.MarkHidden("to")

	changelogCmd.MarkFlagsMutuallyExclusive("subtitle", "no-subtitle")
}

func runChangelog(cmd *cobra.Command, args []string, opts changelogOptions) error {
	if err := validateChangelogOptions(args, opts); err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	warn := warner(cmd)
	errOut := cmd.ErrOrStderr()
	bump := semver.BumpFromFlags(opts.Major, opts.Minor, opts.Patch)

	sel, err := changelog.SelectRange(changelog.RangeRequest{
		RevSpec: firstArg(args),
		From:    opts.From,
		To:      opts.To,
		LastTag: opts.LastTag,
		ForTag:  opts.ForTag,
		Bump:    bump,
	}, s.repo, warn)
	if err != nil {
		return err
	}

	sp := newSpinner(errOut)
	sp.Start(fmt.Sprintf("Reading commits in %s", sel.Spec))
	commits, err := changelogCommits(s.resolver, sel, s.cfg.Changelog.Ignored)
	sp.Stop()
	if err != nil {
		return err
	}

	subtitles := &changelog.SubtitleResolver{Tags: s.repo, Warn: warn}
	subtitle, err := subtitles.Resolve(changelog.SubtitleRequest{
		Subtitle: opts.Subtitle,
		Disabled: opts.NoSubtitle,
		LastTag:  opts.LastTag,
		ForTag:   opts.ForTag,
		Bump:     bump,
	})
	if err != nil {
		return err
	}

	doc, err := changelog.NewGenerator(s.cfg.ChangelogOptions(), warn).Generate(commits, subtitle)
	if err != nil {
		return err
	}

	sink := changelog.SinkFromFlags(opts.Stdout, opts.Copy)
	if doc == nil {
		if sink != changelog.SinkStdout {
			warn("no commits matched the configured changelog types; nothing to write")
		}
		return nil
	}

	content, err := changelog.RenderMarkdownString(doc, opts.Append)
	if err != nil {
		return err
	}

	out := &changelog.Output{
		Root:     s.root,
		FilePath: s.cfg.Changelog.FilePath,
		Stdout:   cmd.OutOrStdout(),
	}
	path, err := out.Deliver(sink, content, opts.Append)
	if err != nil {
		return err
	}

	switch sink {
	case changelog.SinkFile:
		verb := "Changelog written to"
		if opts.Append {
			verb = "Changelog appended to"
		}
		output.PrintSuccess(errOut, fmt.Sprintf("%s (%s)", verb, changelog.Summary(doc)), path)
	case changelog.SinkClipboard:
		output.PrintSuccess(errOut, fmt.Sprintf("Changelog copied to the clipboard (%s)", changelog.Summary(doc)))
	}

	if sink != changelog.SinkStdout && output.IsTerminal(cmd.OutOrStdout()) {
		fmt.Fprintln(cmd.OutOrStdout())
		return changelog.FormatTerminal(doc, cmd.OutOrStdout(), changelog.FormatOptions{})
	}
	return nil
}

// validateChangelogOptions rejects flag combinations that cobra's own
// exclusivity checks cannot express.
func validateChangelogOptions(args []string, opts changelogOptions) error {
	spec := strings.TrimSpace(firstArg(args))
	hasRange := spec != "" || opts.From != "" || opts.To != ""
	if hasRange && (opts.LastTag || strings.TrimSpace(opts.ForTag) != "") {
		return clierrors.InvalidFlagCombination("rev-spec with --last-tag or --for-tag",
			"--last-tag and --for-tag choose the range themselves")
	}
	if opts.Append && (opts.Stdout || opts.Copy) {
		return clierrors.InvalidFlagCombination("--append with --stdout or --copy",
			"--append only applies when writing the changelog file")
	}
	return nil
}

// changelogCommits lists the commits of sel without those matching ignored.
// Only a full-history selection walks every reachable commit; any other spec
// resolves like a single revision or a range.
func changelogCommits(resolver *revision.Resolver, sel changelog.RangeSelection, ignored []string) ([]*object.Commit, error) {
	if !sel.FullHistory {
		return resolver.ResolveFiltered(sel.Spec, ignored)
	}
	commits, err := resolver.History(sel.Spec)
	if err != nil {
		return nil, err
	}
	return revision.Filter(commits, ignored)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
