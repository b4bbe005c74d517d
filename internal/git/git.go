// Package git provides the read-only repository access commitwit needs:
// revision resolution, object classification, history walks and tag lookup.
// It uses the go-git library and never shells out to the git CLI.
package git

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ariel-frischer/commitwit/internal/revision"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// Repository is a go-git backed implementation of revision.Repository and
// of the tag lookups used for changelog subtitles.
type Repository struct {
	repo *git.Repository
	root string
}

var _ revision.Repository = (*Repository)(nil)

// Open opens the repository containing path (the working directory when
// path is empty).
func Open(path string) (*Repository, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	r := New(repo)
	if wt, err := repo.Worktree(); err == nil {
		r.root = wt.Filesystem.Root()
	}
	logDebug("[git] repository root: %q", r.root)
	return r, nil
}

// New wraps an already opened go-git repository.
func New(repo *git.Repository) *Repository {
	return &Repository{repo: repo}
}

// Root returns the worktree root, or "" for bare and in-memory repositories.
func (r *Repository) Root() string {
	return r.root
}

// GetRepositoryRoot returns the absolute path to the root of the repository
// containing the working directory.
func GetRepositoryRoot() (string, error) {
	repo, err := openRepo("")
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] GetRepositoryRoot: %s", root)
	return root, nil
}

// IsGitRepository checks if the current directory is within a git repository.
func IsGitRepository() bool {
	_, err := openRepo("")
	result := err == nil
	logDebug("[git] IsGitRepository: %v", result)
	return result
}

// Resolve resolves rev to an object id. Tag names resolve to the tag
// reference target, which is the tag object for annotated tags. Full hex
// ids are returned as given so Classify can report their type.
func (r *Repository) Resolve(rev string) (plumbing.Hash, error) {
	if rev == "" {
		rev = revision.Head
	}

	if plumbing.IsHash(rev) {
		return plumbing.NewHash(rev), nil
	}

	for _, name := range []plumbing.ReferenceName{
		plumbing.ReferenceName(rev),
		plumbing.NewTagReferenceName(rev),
	} {
		if !name.IsTag() {
			continue
		}
		if ref, err := r.repo.Reference(name, true); err == nil {
			logDebug("[git] Resolve: %s is tag ref %s", rev, ref.Hash())
			return ref.Hash(), nil
		}
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		logDebug("[git] Resolve: %s: %v", rev, err)
		return plumbing.ZeroHash, fmt.Errorf("%s: %w", rev, revision.ErrRevisionNotFound)
	}

	logDebug("[git] Resolve: %s -> %s", rev, hash)
	return *hash, nil
}

// Classify reports whether id is a commit, an annotated tag (with the commit
// it points at), or some other object.
func (r *Repository) Classify(id plumbing.Hash) (revision.Object, error) {
	obj, err := r.repo.Storer.EncodedObject(plumbing.AnyObject, id)
	if err != nil {
		return revision.Object{}, objectError(id, err)
	}

	switch obj.Type() {
	case plumbing.CommitObject:
		return revision.Object{Kind: revision.KindCommit, ID: id, Target: id}, nil
	case plumbing.TagObject:
		target, err := r.peelTag(id)
		if errors.Is(err, object.ErrUnsupportedObject) {
			return revision.Object{Kind: revision.KindOther, ID: id}, nil
		}
		if err != nil {
			return revision.Object{}, objectError(id, err)
		}
		return revision.Object{Kind: revision.KindTag, ID: id, Target: target}, nil
	default:
		logDebug("[git] Classify: %s is a %s", id, obj.Type())
		return revision.Object{Kind: revision.KindOther, ID: id}, nil
	}
}

// peelTag follows annotated tags, including tags of tags, down to a commit.
func (r *Repository) peelTag(id plumbing.Hash) (plumbing.Hash, error) {
	for {
		tag, err := r.repo.TagObject(id)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		switch tag.TargetType {
		case plumbing.CommitObject:
			return tag.Target, nil
		case plumbing.TagObject:
			id = tag.Target
		default:
			return plumbing.ZeroHash, object.ErrUnsupportedObject
		}
	}
}

// Commit loads the commit with the given id.
func (r *Repository) Commit(id plumbing.Hash) (*object.Commit, error) {
	c, err := r.repo.CommitObject(id)
	if err != nil {
		return nil, objectError(id, err)
	}
	return c, nil
}

// CommitsBetween lists commits reachable from to but not from from, in
// descending committer time order. A zero from excludes nothing.
func (r *Repository) CommitsBetween(from, to plumbing.Hash) ([]*object.Commit, error) {
	excluded := make(map[plumbing.Hash]struct{})
	if !from.IsZero() {
		iter, err := r.repo.Log(&git.LogOptions{From: from})
		if err != nil {
			return nil, objectError(from, err)
		}
		err = iter.ForEach(func(c *object.Commit) error {
			excluded[c.Hash] = struct{}{}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking history of %s: %w", from, err)
		}
	}

	iter, err := r.repo.Log(&git.LogOptions{From: to, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, objectError(to, err)
	}

	var commits []*object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if _, skip := excluded[c.Hash]; skip {
			return nil
		}
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history of %s: %w", to, err)
	}

	logDebug("[git] CommitsBetween %s..%s: %d commits", from, to, len(commits))
	return commits, nil
}

func objectError(id plumbing.Hash, err error) error {
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return fmt.Errorf("%s: %w", id, revision.ErrMissingObject)
	}
	return fmt.Errorf("reading object %s: %w", id, err)
}
