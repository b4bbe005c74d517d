// Package revision turns git revision specifications into ordered commit
// lists. It understands single revisions ("HEAD", "v1.0.0", a hash) and
// ranges ("from..to") and can drop commits whose message matches ignore
// patterns.
package revision

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Head is the revision used when a specification leaves a side blank.
const Head = "HEAD"

// rangeSeparator splits a range specification into its two sides.
const rangeSeparator = ".."

// ObjectKind classifies what a resolved object id points at.
type ObjectKind int

const (
	// KindCommit is a commit object.
	KindCommit ObjectKind = iota

	// KindTag is an annotated tag object.
	KindTag

	// KindOther is any other object (tree, blob).
	KindOther
)

// String returns a human-readable name for the kind.
func (k ObjectKind) String() string {
	switch k {
	case KindCommit:
		return "commit"
	case KindTag:
		return "tag"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Object is a classified repository object. Target is the commit the object
// stands for: the object itself for commits, the tagged commit for
// annotated tags, and the zero hash otherwise.
type Object struct {
	Kind   ObjectKind
	ID     plumbing.Hash
	Target plumbing.Hash
}

// Repository is the read-only view of a git repository the resolver needs.
//
// Resolve must return the annotated tag object id (not the tagged commit)
// when rev names an annotated tag, so that Classify can tell tags apart.
// Implementations wrap ErrRevisionNotFound and ErrMissingObject.
type Repository interface {
	Resolve(rev string) (plumbing.Hash, error)
	Classify(id plumbing.Hash) (Object, error)
	Commit(id plumbing.Hash) (*object.Commit, error)
	// CommitsBetween lists commits reachable from to but not from from,
	// newest committer time first.
	CommitsBetween(from, to plumbing.Hash) ([]*object.Commit, error)
}

// Range is a parsed "from..to" specification.
type Range struct {
	From string
	To   string
}

// String renders the range back into "from..to" form.
func (r Range) String() string {
	return r.From + rangeSeparator + r.To
}

// IsRange reports whether spec is a "from..to" specification.
func IsRange(spec string) bool {
	return strings.Contains(spec, rangeSeparator)
}

// ParseRange splits spec at the first "..". Blank sides default to HEAD.
func ParseRange(spec string) Range {
	from, to, _ := strings.Cut(spec, rangeSeparator)
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" {
		from = Head
	}
	if to == "" {
		to = Head
	}
	return Range{From: from, To: to}
}

// Resolver resolves revision specifications against a Repository.
type Resolver struct {
	Repo Repository
}

// NewResolver creates a Resolver for repo.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{Repo: repo}
}

// Resolve returns the commits named by spec.
//
// A blank spec yields the commit at HEAD. A range yields the commits
// reachable from To but not From, newest first, followed by From's own
// commit unless From names an annotated tag. Anything else yields exactly
// one commit.
func (r *Resolver) Resolve(spec string) ([]*object.Commit, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = Head
	}

	if !IsRange(spec) {
		c, err := r.resolveCommit(spec)
		if err != nil {
			return nil, err
		}
		return []*object.Commit{c}, nil
	}

	rng := ParseRange(spec)

	from, err := r.resolveObject(rng.From)
	if err != nil {
		return nil, err
	}
	to, err := r.resolveObject(rng.To)
	if err != nil {
		return nil, err
	}

	commits, err := r.Repo.CommitsBetween(from.Target, to.Target)
	if err != nil {
		return nil, wrapf(err, "listing commits in %s", rng)
	}

	if from.Kind != KindTag {
		fromCommit, err := r.Repo.Commit(from.Target)
		if err != nil {
			return nil, wrapf(err, "loading commit %s", rng.From)
		}
		commits = append(commits, fromCommit)
	}

	return commits, nil
}

// History returns every commit reachable from rev, newest first.
func (r *Resolver) History(rev string) ([]*object.Commit, error) {
	if strings.TrimSpace(rev) == "" {
		rev = Head
	}
	obj, err := r.resolveObject(rev)
	if err != nil {
		return nil, err
	}
	commits, err := r.Repo.CommitsBetween(plumbing.ZeroHash, obj.Target)
	if err != nil {
		return nil, wrapf(err, "listing history of %s", rev)
	}
	return commits, nil
}

// ResolveFiltered resolves spec and drops commits matching any of patterns.
func (r *Resolver) ResolveFiltered(spec string, patterns []string) ([]*object.Commit, error) {
	commits, err := r.Resolve(spec)
	if err != nil {
		return nil, err
	}
	return Filter(commits, patterns)
}

func (r *Resolver) resolveCommit(rev string) (*object.Commit, error) {
	obj, err := r.resolveObject(rev)
	if err != nil {
		return nil, err
	}
	c, err := r.Repo.Commit(obj.Target)
	if err != nil {
		return nil, wrapf(err, "loading commit %s", rev)
	}
	return c, nil
}

// resolveObject resolves rev and dereferences annotated tags to their commit.
func (r *Resolver) resolveObject(rev string) (Object, error) {
	id, err := r.Repo.Resolve(rev)
	if err != nil {
		return Object{}, wrapf(err, "resolving %q", rev)
	}

	obj, err := r.Repo.Classify(id)
	if err != nil {
		return Object{}, wrapf(err, "reading %q", rev)
	}

	if obj.Kind == KindOther || obj.Target.IsZero() {
		return Object{}, wrapf(ErrUnsupportedObjectType, "%q is %s", rev, id)
	}
	return obj, nil
}
