package commit

import (
	"regexp"
	"strings"
)

// DateLayout is the layout used for the {date} placeholder.
const DateLayout = "2006-01-02 15:04:05"

// Template placeholders understood by FormatEntry.
const (
	PlaceholderType            = "{type}"
	PlaceholderScope           = "{scope}"
	PlaceholderDescription     = "{description}"
	PlaceholderHash            = "{hash}"
	PlaceholderShortHash       = "{shortHash}"
	PlaceholderBreakingChanges = "{breakingChanges}"
	PlaceholderAuthor          = "{author}"
	PlaceholderDate            = "{date}"
)

var (
	emptyParensPattern  = regexp.MustCompile(`\s?\(\)`)
	leadingColonPattern = regexp.MustCompile(`^:\s+`)
	leadingSpacePattern = regexp.MustCompile(`^\s+`)
)

// Format reassembles the message in canonical Conventional Commit form.
// The result has no trailing newline.
func (m Message) Format() string {
	var sb strings.Builder

	sb.WriteString(m.Type)
	if scope := strings.TrimSpace(m.Scope); scope != "" {
		if m.IsEmojiType() {
			sb.WriteString(" ")
		}
		sb.WriteString("(" + scope + ")")
	}
	if m.Breaking {
		sb.WriteString("!")
	}
	if desc := strings.TrimSpace(m.ShortDescription); desc != "" {
		if m.Type == "" && strings.TrimSpace(m.Scope) == "" && !m.Breaking {
			sb.WriteString(desc)
		} else {
			sb.WriteString(": " + desc)
		}
	}

	if long := strings.TrimSpace(m.LongDescription); long != "" {
		sb.WriteString("\n\n" + long)
	}
	if brk := strings.TrimSpace(m.BreakingDescription); brk != "" {
		sb.WriteString("\n\n" + BreakingChangeToken + " " + brk)
	}

	return sb.String()
}

// FormatEntry renders the message through a changelog entry template.
// Placeholders without a value are replaced by "", then empty "()" groups
// and leading ":"/whitespace left behind by missing fields are removed.
func (m Message) FormatEntry(template string) string {
	breaking := ""
	if m.Breaking {
		breaking = "!"
	}

	hash := ""
	if !m.Hash.IsZero() {
		hash = m.Hash.String()
	}

	date := ""
	if !m.Author.When.IsZero() {
		date = m.Author.When.Format(DateLayout)
	}

	r := strings.NewReplacer(
		PlaceholderType, m.Type,
		PlaceholderScope, m.Scope,
		PlaceholderDescription, m.ShortDescription,
		PlaceholderHash, hash,
		PlaceholderShortHash, m.ShortHash(),
		PlaceholderBreakingChanges, breaking,
		PlaceholderAuthor, m.Author.Name,
		PlaceholderDate, date,
	)

	out := r.Replace(template)
	out = emptyParensPattern.ReplaceAllString(out, "")
	out = leadingColonPattern.ReplaceAllString(out, "")
	out = leadingSpacePattern.ReplaceAllString(out, "")
	return out
}
