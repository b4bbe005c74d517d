package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/ariel-frischer/commitwit/internal/changelog"
	"github.com/ariel-frischer/commitwit/internal/config"
	"github.com/ariel-frischer/commitwit/internal/lint"
	"github.com/ariel-frischer/commitwit/internal/revision"
)

// Common error messages for the commitwit CLI.
// These templates ensure consistent, actionable error messages.

// NotAGitRepository creates an error for running outside a repository.
func NotAGitRepository(path string, err error) *CLIError {
	e := NewPrerequisiteError(
		fmt.Sprintf("not a git repository: %s", path),
		"Run commitwit from inside a git working tree",
		"Or create one with: git init",
	)
	e.Cause = err
	return e
}

// RevisionNotFound creates an error for a revision that does not resolve.
func RevisionNotFound(err error) *CLIError {
	return Wrap(err, Repository,
		"Check the spelling of the branch, tag or hash",
		"List tags with: git tag --sort=-creatordate",
		"Ranges use two dots: v1.0.0..HEAD",
	)
}

// UnsupportedObject creates an error for a revision naming a tree or blob.
func UnsupportedObject(err error) *CLIError {
	return Wrap(err, Repository,
		"Pass a commit, a branch, or a tag that points at a commit",
	)
}

// MissingObject creates an error for an object absent from the object store.
func MissingObject(err error) *CLIError {
	return Wrap(err, Repository,
		"The repository may be a shallow clone; fetch more history with: git fetch --unshallow",
	)
}

// InvalidIgnorePattern creates an error for a bad ignore regular expression.
func InvalidIgnorePattern(err error) *CLIError {
	return Wrap(err, Configuration,
		"Fix the pattern under lint.ignored or changelog.ignored in .commitwit.yml",
		"Patterns are Go regular expressions (RE2 syntax)",
	)
}

// ConfigInvalid creates an error for a configuration that failed to load.
func ConfigInvalid(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check .commitwit.yml for the reported field",
		"List valid keys with: commitwit config keys",
		"Generate a commented example with: commitwit config init",
	)
}

// ChangelogTypesMissing creates an error for a changelog without types.
func ChangelogTypesMissing(err error) *CLIError {
	return Wrap(err, Configuration,
		"Add at least one entry under changelog.types, e.g. feat: Features",
	)
}

// ChangelogTemplateMissing creates an error for missing entry templates.
func ChangelogTemplateMissing(err error) *CLIError {
	return Wrap(err, Configuration,
		"Set changelog.format.default_template, e.g. \"{scope}: {description} ({shortHash})\"",
	)
}

// ChangelogWriteFailed creates an error for a changelog file that cannot be written.
func ChangelogWriteFailed(err error) *CLIError {
	return Wrap(err, Write,
		"Check the permissions of the changelog path",
		"Or set changelog.filepath to a writable location",
		"Or print it instead with --stdout",
	)
}

// ClipboardFailed creates an error when the clipboard is unavailable.
func ClipboardFailed(err error) *CLIError {
	return Wrap(err, Write,
		"Install a clipboard utility (xclip, xsel or wl-clipboard on Linux)",
		"Or print the changelog with --stdout",
	)
}

// ViolationsFound creates an error listing commit message violations.
func ViolationsFound(err error) *CLIError {
	return Wrap(err, Validation)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'commitwit <command> --help' to see valid options",
	)
}

// FileNotReadable creates an error for an input file that cannot be read.
func FileNotReadable(path string, err error) *CLIError {
	return WrapWithMessage(err, Argument,
		fmt.Sprintf("cannot read %s", path),
		"Check that the file exists and is readable",
	)
}

// Classify maps a domain error to a CLIError. Errors that already are
// CLIErrors are returned as-is; anything unknown becomes a runtime error.
func Classify(err error) *CLIError {
	if err == nil {
		return nil
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var (
		failure  *lint.Failure
		writeErr *changelog.WriteError
		cfgErr   *config.ValidationError
	)

	switch {
	case stderrors.As(err, &failure):
		return ViolationsFound(err)
	case stderrors.Is(err, revision.ErrRevisionNotFound):
		return RevisionNotFound(err)
	case stderrors.Is(err, revision.ErrUnsupportedObjectType):
		return UnsupportedObject(err)
	case stderrors.Is(err, revision.ErrMissingObject):
		return MissingObject(err)
	case stderrors.Is(err, revision.ErrInvalidIgnorePattern):
		return InvalidIgnorePattern(err)
	case stderrors.Is(err, changelog.ErrTypesRequired):
		return ChangelogTypesMissing(err)
	case stderrors.Is(err, changelog.ErrNoTemplate):
		return ChangelogTemplateMissing(err)
	case stderrors.Is(err, changelog.ErrClipboard):
		return ClipboardFailed(err)
	case stderrors.As(err, &writeErr):
		return ChangelogWriteFailed(err)
	case stderrors.As(err, &cfgErr):
		return ConfigInvalid(err)
	default:
		return Wrap(err, Runtime)
	}
}
