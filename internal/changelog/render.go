package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/commitwit/internal/emoji"
)

// BreakingChangesHeading and OtherChangesHeading title the two fixed blocks.
const (
	BreakingChangesHeading = "Breaking Changes"
	OtherChangesHeading    = "Other"
)

// RenderMarkdown writes doc as Markdown. Blocks are separated by one blank
// line and the output ends with a single newline.
//
// In append mode the "# title" heading is omitted, since the document is
// added to an existing file. Title and subtitle have emoji aliases replaced
// by glyphs.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(doc *Document, w io.Writer, appendMode bool) error {
	var blocks []string

	if title := strings.TrimSpace(doc.Title); title != "" && !appendMode {
		blocks = append(blocks, heading(1, emoji.ToGlyph(title)))
	}

	if subtitle := strings.TrimSpace(doc.Subtitle); subtitle != "" {
		blocks = append(blocks, heading(2, emoji.ToGlyph(subtitle)))
	}

	if len(doc.BreakingChanges) > 0 {
		blocks = append(blocks, heading(3, BreakingChangesHeading), bullets(doc.BreakingChanges))
	}

	for _, s := range doc.Sections {
		if len(s.Entries) == 0 {
			continue
		}
		blocks = append(blocks, heading(3, s.Title), bullets(s.Entries))
	}

	if len(doc.OtherChanges) > 0 {
		blocks = append(blocks, heading(3, OtherChangesHeading), bullets(doc.OtherChanges))
	}

	if len(blocks) == 0 {
		return nil
	}

	if _, err := io.WriteString(w, strings.Join(blocks, "\n\n")+"\n"); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(doc *Document, appendMode bool) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(doc, &b, appendMode); err != nil {
		return "", err
	}
	return b.String(), nil
}

func heading(level int, text string) string {
	return strings.Repeat("#", level) + " " + text
}

func bullets(entries []string) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = "- " + e
	}
	return strings.Join(lines, "\n")
}
