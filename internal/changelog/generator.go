package changelog

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ariel-frischer/commitwit/internal/commit"
	"github.com/ariel-frischer/commitwit/internal/emoji"
)

// block identifies which template an entry is formatted with.
type block int

const (
	blockSection block = iota
	blockBreakingChanges
	blockOtherTypes
)

// Generator classifies commits into a Document.
type Generator struct {
	Options Options
	// Warn receives per-commit diagnostics. Nil discards them.
	Warn func(format string, args ...any)
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts Options, warn func(format string, args ...any)) *Generator {
	return &Generator{Options: opts, Warn: warn}
}

func (g *Generator) warnf(format string, args ...any) {
	if g.Warn != nil {
		g.Warn(format, args...)
	}
}

// typeGroups holds parsed messages keyed by alias-normalized type, in the
// order each type was first seen.
type typeGroups struct {
	order []string
	byKey map[string][]commit.Message
}

func (tg *typeGroups) add(key string, msg commit.Message) {
	if _, ok := tg.byKey[key]; !ok {
		tg.order = append(tg.order, key)
	}
	tg.byKey[key] = append(tg.byKey[key], msg)
}

func (tg *typeGroups) remove(key string) {
	delete(tg.byKey, key)
}

// template returns the entry template for b, falling back to the default
// template. Both blank is ErrNoTemplate.
func (t Templates) template(b block) (string, error) {
	var tpl string
	switch b {
	case blockSection:
		tpl = t.Section
	case blockBreakingChanges:
		tpl = t.BreakingChanges
	case blockOtherTypes:
		tpl = t.OtherTypes
	}
	if strings.TrimSpace(tpl) != "" {
		return tpl, nil
	}
	if strings.TrimSpace(t.Default) != "" {
		return t.Default, nil
	}
	return "", ErrNoTemplate
}

// Generate classifies commits, which are expected newest first, into a
// Document titled with the configured title and subtitle.
//
// Commits without a type are dropped with a warning. When nothing remains,
// Generate returns a nil Document and a nil error.
func (g *Generator) Generate(commits []*object.Commit, subtitle string) (*Document, error) {
	types := g.normalizedTypes()
	if len(types) == 0 {
		return nil, ErrTypesRequired
	}

	groups := g.group(commits)
	if len(groups.order) == 0 {
		return nil, nil
	}

	doc := &Document{
		Title:    g.Options.Title,
		Subtitle: subtitle,
	}

	if g.Options.ShowBreakingChanges {
		breaking, err := g.extractBreakingChanges(groups)
		if err != nil {
			return nil, err
		}
		doc.BreakingChanges = breaking
	}

	sections, err := g.buildSections(groups, types)
	if err != nil {
		return nil, err
	}
	doc.Sections = sections

	if g.Options.ShowOtherTypes {
		other, err := g.extractOtherTypes(groups)
		if err != nil {
			return nil, err
		}
		doc.OtherChanges = other
	}

	return doc, nil
}

// normalizedTypes alias-normalizes configured type keys. A later duplicate
// key keeps the first title.
func (g *Generator) normalizedTypes() []TypeTitle {
	seen := make(map[string]bool)
	var out []TypeTitle
	for _, tt := range g.Options.Types {
		key := emoji.ToAlias(strings.TrimSpace(tt.Type))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, TypeTitle{Type: key, Title: tt.Title})
	}
	return out
}

func (g *Generator) group(commits []*object.Commit) *typeGroups {
	groups := &typeGroups{byKey: make(map[string][]commit.Message)}
	for _, c := range commits {
		msg := commit.FromCommit(c)
		if strings.TrimSpace(msg.Type) == "" {
			g.warnf("commit %s has no type and will be ignored", msg.ShortHash())
			continue
		}
		groups.add(msg.NormalizedType(), msg)
	}
	return groups
}

func (g *Generator) format(b block, msgs []commit.Message) ([]string, error) {
	tpl, err := g.Options.Templates.template(b)
	if err != nil {
		return nil, err
	}
	entries := make([]string, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, m.FormatEntry(tpl))
	}
	return entries, nil
}

// extractBreakingChanges moves breaking commits out of every group, in group
// order, and formats them.
func (g *Generator) extractBreakingChanges(groups *typeGroups) ([]string, error) {
	var breaking []commit.Message
	for _, key := range groups.order {
		msgs, ok := groups.byKey[key]
		if !ok {
			continue
		}
		kept := msgs[:0:0]
		for _, m := range msgs {
			if m.Breaking {
				breaking = append(breaking, m)
			} else {
				kept = append(kept, m)
			}
		}
		groups.byKey[key] = kept
	}
	if len(breaking) == 0 {
		return nil, nil
	}
	return g.format(blockBreakingChanges, breaking)
}

func (g *Generator) buildSections(groups *typeGroups, types []TypeTitle) ([]Section, error) {
	var sections []Section
	for _, tt := range types {
		msgs, ok := groups.byKey[tt.Type]
		if !ok {
			continue
		}
		groups.remove(tt.Type)
		if len(msgs) == 0 {
			continue
		}
		entries, err := g.format(blockSection, msgs)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", tt.Title, err)
		}
		sections = append(sections, Section{Title: tt.Title, Entries: entries})
	}
	return sections, nil
}

func (g *Generator) extractOtherTypes(groups *typeGroups) ([]string, error) {
	var rest []commit.Message
	for _, key := range groups.order {
		rest = append(rest, groups.byKey[key]...)
	}
	if len(rest) == 0 {
		return nil, nil
	}
	return g.format(blockOtherTypes, rest)
}
