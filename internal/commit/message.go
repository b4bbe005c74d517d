// Package commit parses and formats Conventional Commit messages.
//
// A message has the shape:
//
//	type(scope)!: short description
//
//	long description
//
//	BREAKING CHANGE: description
//
// Parsing never fails. A header that does not follow the convention is kept
// whole as the short description with an empty type, so callers can decide
// whether to warn, drop, or report a violation.
package commit

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ariel-frischer/commitwit/internal/emoji"
)

// BreakingChangeToken introduces the breaking change trailer in a message body.
const BreakingChangeToken = "BREAKING CHANGE:"

// Author identifies who wrote a commit and when. When keeps the zone the
// author recorded, which is the zone used for changelog dates.
type Author struct {
	Name  string
	Email string
	When  time.Time
}

// Message is an immutable, parsed Conventional Commit.
// Optional fields are empty strings when absent; Hash is the zero hash and
// Author the zero value for messages that did not come from a commit.
type Message struct {
	Type                string
	Scope               string
	ShortDescription    string
	LongDescription     string
	Breaking            bool
	BreakingDescription string
	Hash                plumbing.Hash
	Author              Author
}

// headerPattern matches `type!(scope)!: description`. The type is a bare
// word, an `:alias:` token, or a run of emoji glyphs.
var headerPattern = regexp.MustCompile(
	`^(?P<type>:\w+:|\w[\w-]*|[^\s\w():!]+)(?P<bang>!)?\s*(?:\((?P<scope>[^()]*)\))?(?P<bang2>!)?(?P<sep>:?)\s*(?P<desc>.*)$`,
)

var breakingPattern = regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(BreakingChangeToken) + `[ \t]*`)

// Parse converts raw commit text into a Message. Blank input yields the
// zero Message.
func Parse(text string) Message {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return Message{}
	}

	text = strings.TrimLeft(text, "\n")
	header, body, _ := strings.Cut(text, "\n")

	msg := parseHeader(strings.TrimSpace(header))
	parseBody(&msg, strings.TrimSpace(body))
	return msg
}

// FromCommit parses a go-git commit and attaches its hash and author.
func FromCommit(c *object.Commit) Message {
	if c == nil {
		return Message{}
	}
	msg := Parse(c.Message)
	msg.Hash = c.Hash
	msg.Author = Author{
		Name:  c.Author.Name,
		Email: c.Author.Email,
		When:  c.Author.When,
	}
	return msg
}

func parseHeader(header string) Message {
	m := headerPattern.FindStringSubmatch(header)
	if m == nil {
		return Message{ShortDescription: header}
	}

	group := func(name string) string {
		return m[headerPattern.SubexpIndex(name)]
	}

	commitType := emoji.ToAlias(group("type"))
	isEmojiType := emoji.IsAlias(commitType)

	// Bare word types need the colon; emoji types may omit it.
	if !isEmojiType && (group("sep") == "" || !isWord(commitType)) {
		return Message{ShortDescription: header}
	}

	return Message{
		Type:             commitType,
		Scope:            strings.TrimSpace(group("scope")),
		ShortDescription: strings.TrimSpace(group("desc")),
		Breaking:         group("bang") != "" || group("bang2") != "",
	}
}

func parseBody(msg *Message, body string) {
	if body == "" {
		return
	}

	loc := breakingPattern.FindStringIndex(body)
	if loc == nil {
		msg.LongDescription = body
		return
	}

	msg.LongDescription = strings.TrimSpace(body[:loc[0]])
	msg.BreakingDescription = strings.TrimSpace(body[loc[1]:])
	msg.Breaking = true
}

var wordPattern = regexp.MustCompile(`^\w[\w-]*$`)

func isWord(s string) bool {
	return wordPattern.MatchString(s)
}

// IsEmojiType reports whether the message type is written as an emoji alias.
func (m Message) IsEmojiType() bool {
	return emoji.IsAlias(m.Type)
}

// NormalizedType returns the type in alias form, the key used for grouping
// and for comparisons against configured types.
func (m Message) NormalizedType() string {
	return emoji.ToAlias(strings.TrimSpace(m.Type))
}

// ShortHash returns the abbreviated commit hash, or "" when the message has
// no hash.
func (m Message) ShortHash() string {
	if m.Hash.IsZero() {
		return ""
	}
	return m.Hash.String()[:ShortHashLength]
}

// ShortHashLength is the number of hex characters in an abbreviated hash.
const ShortHashLength = 7
