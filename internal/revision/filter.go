package revision

import (
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ariel-frischer/commitwit/internal/emoji"
)

// CompileIgnorePatterns joins patterns into one alternation. Patterns are
// alias-normalized first so a glyph pattern matches alias-normalized text.
// It returns nil when no non-blank pattern is given.
func CompileIgnorePatterns(patterns []string) (*regexp.Regexp, error) {
	parts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		parts = append(parts, emoji.ToAlias(p))
	}
	if len(parts) == 0 {
		return nil, nil
	}

	joined := strings.Join(parts, "|")
	re, err := regexp.Compile(joined)
	if err != nil {
		return nil, wrapf(ErrInvalidIgnorePattern, "%s: %v", joined, err)
	}
	return re, nil
}

// Filter removes commits whose full message, alias-normalized, contains a
// match for any pattern. Order is preserved.
func Filter(commits []*object.Commit, patterns []string) ([]*object.Commit, error) {
	re, err := CompileIgnorePatterns(patterns)
	if err != nil {
		return nil, err
	}
	if re == nil {
		return commits, nil
	}

	kept := make([]*object.Commit, 0, len(commits))
	for _, c := range commits {
		if Ignored(re, c.Message) {
			continue
		}
		kept = append(kept, c)
	}
	return kept, nil
}

// Ignored reports whether message matches re. A nil re ignores nothing.
func Ignored(re *regexp.Regexp, message string) bool {
	if re == nil {
		return false
	}
	return re.MatchString(emoji.ToAlias(message))
}
