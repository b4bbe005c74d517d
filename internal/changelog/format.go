package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ariel-frischer/commitwit/internal/emoji"
)

// BlockStyle defines the color and icon for a changelog block.
type BlockStyle struct {
	Color *color.Color
	Icon  string
}

var (
	breakingStyle = BlockStyle{Color: color.New(color.FgRed), Icon: "⚠"}
	sectionStyle  = BlockStyle{Color: color.New(color.FgGreen), Icon: "✓"}
	otherStyle    = BlockStyle{Color: color.New(color.FgBlue), Icon: "~"}
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes doc to w with terminal styling: a bold title, then
// color-coded blocks with wrapped entries.
func FormatTerminal(doc *Document, w io.Writer, opts FormatOptions) error {
	if doc == nil {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)

	if err := writeTitle(doc, w, opts); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}

	if err := writeBlock(BreakingChangesHeading, doc.BreakingChanges, breakingStyle, w, opts, width); err != nil {
		return err
	}
	for _, s := range doc.Sections {
		if err := writeBlock(s.Title, s.Entries, sectionStyle, w, opts, width); err != nil {
			return fmt.Errorf("formatting section %s: %w", s.Title, err)
		}
	}
	return writeBlock(OtherChangesHeading, doc.OtherChanges, otherStyle, w, opts, width)
}

// writeTitle writes the title and subtitle lines.
func writeTitle(doc *Document, w io.Writer, opts FormatOptions) error {
	parts := make([]string, 0, 2)
	if t := strings.TrimSpace(doc.Title); t != "" {
		parts = append(parts, emoji.ToGlyph(t))
	}
	if s := strings.TrimSpace(doc.Subtitle); s != "" {
		parts = append(parts, emoji.ToGlyph(s))
	}
	if len(parts) == 0 {
		return nil
	}

	header := strings.Join(parts, " ")
	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeBlock writes one heading with its entries. Empty blocks are skipped.
func writeBlock(title string, entries []string, style BlockStyle, w io.Writer, opts FormatOptions, width int) error {
	if len(entries) == 0 {
		return nil
	}

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", title); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(title)); err != nil {
			return err
		}
	}

	for _, entry := range entries {
		if err := writeEntry(entry, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry writes a single changelog entry with optional wrapping.
func writeEntry(entry string, style BlockStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, entry)
		return err
	}

	wrapped := wrapText(entry, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// Summary returns a one-line description of doc for status messages.
func Summary(doc *Document) string {
	if doc == nil {
		return "no entries"
	}
	n := doc.Count()
	noun := "entries"
	if n == 1 {
		noun = "entry"
	}
	s := fmt.Sprintf("%d %s", n, noun)
	if len(doc.Sections) > 0 {
		s += fmt.Sprintf(" in %d sections", len(doc.Sections))
	}
	if len(doc.BreakingChanges) > 0 {
		s += fmt.Sprintf(", %d breaking", len(doc.BreakingChanges))
	}
	return s
}
