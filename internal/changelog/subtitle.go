package changelog

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/commitwit/internal/revision"
	"github.com/ariel-frischer/commitwit/internal/semver"
)

// TagSource looks up release tags. LatestTag and PreviousTag return "" when
// there is no such tag.
type TagSource interface {
	LatestTag() (string, error)
	PreviousTag(rev string) (string, error)
}

// SubtitleRequest carries the command-line choices that decide the subtitle.
type SubtitleRequest struct {
	Subtitle string
	Disabled bool
	LastTag  bool
	ForTag   string
	Bump     semver.Bump
}

// SubtitleResolver decides the "## subtitle" line, usually a version.
type SubtitleResolver struct {
	Tags TagSource
	Warn func(format string, args ...any)
}

// Resolve returns the subtitle for req, or "" for none.
//
// An explicit subtitle wins. Otherwise the base version is the for-tag (when
// given without last-tag) or the latest tag. Without a base, a bump request
// seeds v1.0.0, v0.1.0 or v0.0.1. A base that is not a semantic version is
// returned unchanged with a warning.
func (r *SubtitleResolver) Resolve(req SubtitleRequest) (string, error) {
	if req.Disabled {
		return "", nil
	}
	if strings.TrimSpace(req.Subtitle) != "" {
		return req.Subtitle, nil
	}

	base, err := r.baseVersion(req)
	if err != nil {
		return "", err
	}
	if base == "" {
		return req.Bump.Seed(), nil
	}
	if req.Bump == semver.BumpNone {
		return base, nil
	}

	bumped, ok := semver.BumpString(base, req.Bump)
	if !ok && r.Warn != nil {
		r.Warn("%s is not a semantic version; using it as the subtitle unchanged", base)
	}
	return bumped, nil
}

func (r *SubtitleResolver) baseVersion(req SubtitleRequest) (string, error) {
	forTag := strings.TrimSpace(req.ForTag)
	if !req.LastTag && forTag != "" {
		return forTag, nil
	}
	if r.Tags == nil {
		return "", nil
	}
	latest, err := r.Tags.LatestTag()
	if err != nil {
		return "", fmt.Errorf("finding latest tag: %w", err)
	}
	return latest, nil
}

// RangeRequest carries the command-line choices that decide which commits
// a changelog covers.
type RangeRequest struct {
	RevSpec string
	// From and To are the deprecated --from/--to flags.
	From    string
	To      string
	LastTag bool
	ForTag  string
	Bump    semver.Bump
}

// RangeSelection is the outcome of SelectRange. FullHistory means every
// commit reachable from Spec.
type RangeSelection struct {
	Spec        string
	FullHistory bool
}

// SelectRange turns tag and bump options into a revision specification.
//
// Last-tag or any bump selects latestTag..HEAD. A for-tag T selects
// previousTag(T)..T, or T^..T with a warning when T has no predecessor.
// Otherwise the explicit spec is used, then the deprecated from/to pair,
// then HEAD.
func SelectRange(req RangeRequest, tags TagSource, warn func(format string, args ...any)) (RangeSelection, error) {
	if warn == nil {
		warn = func(string, ...any) {}
	}

	if req.LastTag || req.Bump != semver.BumpNone {
		latest, err := tags.LatestTag()
		if err != nil {
			return RangeSelection{}, fmt.Errorf("finding latest tag: %w", err)
		}
		if latest == "" {
			warn("no tags found; using the full history of %s", revision.Head)
			return RangeSelection{Spec: revision.Head, FullHistory: true}, nil
		}
		return RangeSelection{Spec: latest + ".." + revision.Head}, nil
	}

	if forTag := strings.TrimSpace(req.ForTag); forTag != "" {
		previous, err := tags.PreviousTag(forTag)
		if err != nil {
			return RangeSelection{}, fmt.Errorf("finding tag before %s: %w", forTag, err)
		}
		if previous == "" {
			warn("no tag found before %s; using %s^", forTag, forTag)
			previous = forTag + "^"
		}
		return RangeSelection{Spec: previous + ".." + forTag}, nil
	}

	if spec := strings.TrimSpace(req.RevSpec); spec != "" {
		return RangeSelection{Spec: spec}, nil
	}

	from, to := strings.TrimSpace(req.From), strings.TrimSpace(req.To)
	if from != "" || to != "" {
		warn("--from and --to are deprecated; pass a range such as %s..%s instead", orHead(from), orHead(to))
		return RangeSelection{Spec: orHead(from) + ".." + orHead(to)}, nil
	}

	return RangeSelection{Spec: revision.Head}, nil
}

func orHead(rev string) string {
	if rev == "" {
		return revision.Head
	}
	return rev
}
