// Package lint checks parsed commit messages against the configured
// message rules.
// Related: internal/commit/message.go, internal/config/config.go
// Tags: lint, validation, conventional-commits
package lint

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ariel-frischer/commitwit/internal/commit"
	"github.com/ariel-frischer/commitwit/internal/emoji"
)

// Field labels used in violations.
const (
	FieldType             = "type"
	FieldScope            = "scope"
	FieldShortDescription = "short description"
	FieldLongDescription  = "long description"
)

// Violation is one broken rule.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

// LengthRange bounds a description length in runes.
type LengthRange struct {
	Min int
	Max int
}

// Config holds the rules a message is checked against.
type Config struct {
	// Types are the allowed commit types, plain words or emoji.
	Types                   []string
	ScopeRequired           bool
	ShortDescription        LengthRange
	LongDescriptionRequired bool
	LongDescription         LengthRange
}

// Validator checks messages against a Config.
type Validator struct {
	Config Config
}

// NewValidator creates a Validator for cfg.
func NewValidator(cfg Config) *Validator {
	return &Validator{Config: cfg}
}

// Check returns every violation of msg, in rule order. An empty result
// means the message is valid.
func (v *Validator) Check(msg commit.Message) []Violation {
	var violations []Violation
	add := func(ok bool, field, format string, args ...any) {
		if !ok {
			violations = append(violations, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
		}
	}

	cfg := v.Config
	msgType := strings.TrimSpace(msg.Type)

	add(msgType != "", FieldType, "is required")
	add(v.typeAllowed(msgType), FieldType, "%q is not one of the allowed types (%s)", msgType, strings.Join(cfg.Types, ", "))

	add(!cfg.ScopeRequired || strings.TrimSpace(msg.Scope) != "", FieldScope, "is required")

	add(strings.TrimSpace(msg.ShortDescription) != "", FieldShortDescription, "is required")
	if msg.ShortDescription != "" {
		n := utf8.RuneCountInString(msg.ShortDescription)
		add(n >= cfg.ShortDescription.Min, FieldShortDescription, "must be at least %d characters (got %d)", cfg.ShortDescription.Min, n)
		add(n <= cfg.ShortDescription.Max, FieldShortDescription, "must be at most %d characters (got %d)", cfg.ShortDescription.Max, n)
	}

	if cfg.LongDescriptionRequired {
		add(strings.TrimSpace(msg.LongDescription) != "", FieldLongDescription, "is required")
		if msg.LongDescription != "" {
			n := utf8.RuneCountInString(msg.LongDescription)
			add(n >= cfg.LongDescription.Min, FieldLongDescription, "must be at least %d characters (got %d)", cfg.LongDescription.Min, n)
			add(n <= cfg.LongDescription.Max, FieldLongDescription, "must be at most %d characters (got %d)", cfg.LongDescription.Max, n)
		}
	}

	return violations
}

// typeAllowed compares in alias form, so "✨" matches a configured
// ":sparkles:" and the other way round.
func (v *Validator) typeAllowed(msgType string) bool {
	if msgType == "" {
		return false
	}
	want := emoji.ToAlias(msgType)
	for _, t := range v.Config.Types {
		if emoji.ToAlias(strings.TrimSpace(t)) == want {
			return true
		}
	}
	return false
}

// Validate returns a *Failure listing the violations of msg, or nil.
func (v *Validator) Validate(msg commit.Message) error {
	violations := v.Check(msg)
	if len(violations) == 0 {
		return nil
	}
	return &Failure{Results: []Result{{Violations: violations}}}
}

// ValidateAll checks every message and returns one *Failure naming each
// offending identifier, or nil when all are valid. Identifiers are sorted.
func (v *Validator) ValidateAll(messages map[string]commit.Message) error {
	ids := make([]string, 0, len(messages))
	for id := range messages {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var results []Result
	for _, id := range ids {
		if violations := v.Check(messages[id]); len(violations) > 0 {
			results = append(results, Result{ID: id, Violations: violations})
		}
	}
	if len(results) == 0 {
		return nil
	}
	return &Failure{Results: results}
}

// Result is the violations of one message. ID is empty for a single
// message check.
type Result struct {
	ID         string
	Violations []Violation
}

// Failure reports one or more messages that broke the rules.
type Failure struct {
	Results []Result
}

// IDs returns the offending identifiers in report order.
func (f *Failure) IDs() []string {
	ids := make([]string, 0, len(f.Results))
	for _, r := range f.Results {
		if r.ID != "" {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Count returns the total number of violations.
func (f *Failure) Count() int {
	n := 0
	for _, r := range f.Results {
		n += len(r.Violations)
	}
	return n
}

func (f *Failure) Error() string {
	var sb strings.Builder
	sb.WriteString("commit message violations:")
	for _, r := range f.Results {
		indent := " - "
		if r.ID != "" {
			sb.WriteString("\n - " + r.ID + ":")
			indent = "    - "
		}
		for _, violation := range r.Violations {
			sb.WriteString("\n" + indent + violation.String())
		}
	}
	return sb.String()
}
