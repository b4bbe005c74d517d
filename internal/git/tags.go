package git

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/ariel-frischer/commitwit/internal/revision"
)

// describeSuffix matches the "-N-gHASH" suffix git describe appends to a tag.
var describeSuffix = regexp.MustCompile(`-(\d+)-g[0-9a-f]+$`)

// NormalizeTagName strips a git describe suffix so "v1.2.0-3-gabc1234"
// becomes "v1.2.0".
func NormalizeTagName(name string) string {
	return describeSuffix.ReplaceAllString(name, "")
}

// Tag is a tag name together with the commit it marks.
type Tag struct {
	Name   string
	Commit plumbing.Hash
	When   time.Time
}

// Tags lists tags pointing at commits, newest tagged commit first.
// Tags with the same commit time are ordered by name, descending.
func (r *Repository) Tags() ([]Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		obj, err := r.Classify(ref.Hash())
		if err != nil || obj.Target.IsZero() {
			logDebug("[git] Tags: skipping %s", ref.Name().Short())
			return nil
		}
		c, err := r.repo.CommitObject(obj.Target)
		if err != nil {
			logDebug("[git] Tags: skipping %s: %v", ref.Name().Short(), err)
			return nil
		}
		tags = append(tags, Tag{
			Name:   NormalizeTagName(ref.Name().Short()),
			Commit: c.Hash,
			When:   c.Committer.When,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.SliceStable(tags, func(i, j int) bool {
		if !tags[i].When.Equal(tags[j].When) {
			return tags[i].When.After(tags[j].When)
		}
		return tags[i].Name > tags[j].Name
	})

	logDebug("[git] Tags: found %d", len(tags))
	return tags, nil
}

// LatestTag returns the tag on the most recent commit, or "" when the
// repository has no tags.
func (r *Repository) LatestTag() (string, error) {
	tags, err := r.Tags()
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", nil
	}
	return tags[0].Name, nil
}

// PreviousTag returns the newest tag whose commit is older than the commit
// rev points at, or "" when there is none. rev may carry a git describe
// suffix.
func (r *Repository) PreviousTag(rev string) (string, error) {
	id, err := r.Resolve(rev)
	if err != nil {
		normalized := NormalizeTagName(rev)
		if normalized == rev {
			return "", err
		}
		if id, err = r.Resolve(normalized); err != nil {
			return "", err
		}
	}

	obj, err := r.Classify(id)
	if err != nil {
		return "", err
	}
	if obj.Target.IsZero() {
		return "", fmt.Errorf("%s: %w", rev, revision.ErrUnsupportedObjectType)
	}
	c, err := r.Commit(obj.Target)
	if err != nil {
		return "", err
	}

	tags, err := r.Tags()
	if err != nil {
		return "", err
	}
	for _, t := range tags {
		if t.When.Before(c.Committer.When) {
			logDebug("[git] PreviousTag(%s): %s", rev, t.Name)
			return t.Name, nil
		}
	}
	return "", nil
}
