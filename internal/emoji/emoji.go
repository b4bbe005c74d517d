// Package emoji converts between emoji glyphs and their GitHub-style
// `:alias:` short codes. Commit types, ignore patterns, and configured type
// keys are compared in alias form so that "✨" and ":sparkles:" group
// together.
package emoji

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	kemoji "github.com/kyokomi/emoji/v2"
)

var aliasPattern = regexp.MustCompile(`:(\w+):`)

var typeAliasPattern = regexp.MustCompile(`^:\w+:$`)

var (
	tablesOnce    sync.Once
	glyphReplacer *strings.Replacer
	codeMap       map[string]string
)

func loadTables() {
	tablesOnce.Do(func() {
		codeMap = kemoji.CodeMap()

		rev := kemoji.RevCodeMap()
		glyphs := make([]string, 0, len(rev))
		for glyph, aliases := range rev {
			if glyph == "" || len(aliases) == 0 {
				continue
			}
			glyphs = append(glyphs, glyph)
		}
		// Longest glyphs first so multi-codepoint sequences win over their prefixes.
		sort.Slice(glyphs, func(i, j int) bool {
			if len(glyphs[i]) != len(glyphs[j]) {
				return len(glyphs[i]) > len(glyphs[j])
			}
			return glyphs[i] < glyphs[j]
		})

		pairs := make([]string, 0, len(glyphs)*2)
		for _, glyph := range glyphs {
			pairs = append(pairs, glyph, rev[glyph][0])
		}
		glyphReplacer = strings.NewReplacer(pairs...)
	})
}

// ContainsAlias reports whether text contains at least one `:alias:` token.
func ContainsAlias(text string) bool {
	return aliasPattern.MatchString(text)
}

// IsAlias reports whether s is exactly one `:alias:` token, which is how
// emoji commit types are written.
func IsAlias(s string) bool {
	return typeAliasPattern.MatchString(s)
}

// ToAlias replaces every emoji glyph in text with its first alias.
// Text without glyphs is returned unchanged.
func ToAlias(text string) string {
	if text == "" {
		return text
	}
	loadTables()
	return glyphReplacer.Replace(text)
}

// ToGlyph replaces every known `:alias:` token in text with its glyph.
// Unknown aliases are left as written.
func ToGlyph(text string) string {
	if !ContainsAlias(text) {
		return text
	}
	loadTables()
	return aliasPattern.ReplaceAllStringFunc(text, func(alias string) string {
		if glyph, ok := codeMap[alias]; ok {
			return strings.TrimSpace(glyph)
		}
		return alias
	})
}
