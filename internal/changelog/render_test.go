package changelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdownString(t *testing.T) {
	tests := map[string]struct {
		doc         *Document
		appendMode  bool
		contains    []string
		notContains []string
	}{
		"all blocks": {
			doc: &Document{
				Title:           "Changelog",
				Subtitle:        "v1.1.0",
				BreakingChanges: []string{"api: drop v1 (1234567)"},
				Sections: []Section{
					{Title: "Features", Entries: []string{"a (aaaaaaa)"}},
					{Title: "Bug Fixes", Entries: []string{"b (bbbbbbb)"}},
				},
				OtherChanges: []string{"docs: c (ccccccc)"},
			},
			contains: []string{
				"# Changelog\n",
				"## v1.1.0\n",
				"### Breaking Changes\n\n- api: drop v1 (1234567)\n",
				"### Features\n\n- a (aaaaaaa)\n",
				"### Bug Fixes\n\n- b (bbbbbbb)\n",
				"### Other\n\n- docs: c (ccccccc)\n",
			},
		},
		"append mode omits title": {
			doc: &Document{
				Title:    "Changelog",
				Subtitle: "v2.0.0",
				Sections: []Section{{Title: "Features", Entries: []string{"x"}}},
			},
			appendMode:  true,
			contains:    []string{"## v2.0.0\n\n### Features\n\n- x\n"},
			notContains: []string{"# Changelog"},
		},
		"empty blocks omitted": {
			doc: &Document{
				Title:    "Changelog",
				Sections: []Section{{Title: "Features", Entries: []string{"x"}}, {Title: "Empty"}},
			},
			notContains: []string{"### Breaking Changes", "### Other", "### Empty"},
		},
		"emoji alias title": {
			doc: &Document{
				Title:    ":rocket: Releases",
				Subtitle: ":tada: v1.0.0",
				Sections: []Section{{Title: "Features", Entries: []string{"x"}}},
			},
			contains: []string{"# 🚀 Releases\n", "## 🎉 v1.0.0\n"},
		},
		"entries with markdown": {
			doc: &Document{
				Sections: []Section{{Title: "Features", Entries: []string{
					"New `command` with **bold** text",
					"Support for [links](https://example.com)",
				}}},
			},
			contains: []string{
				"- New `command` with **bold** text",
				"- Support for [links](https://example.com)",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := RenderMarkdownString(tt.doc, tt.appendMode)
			require.NoError(t, err)

			for _, expected := range tt.contains {
				assert.Contains(t, result, expected)
			}
			for _, notExpected := range tt.notContains {
				assert.NotContains(t, result, notExpected)
			}
			assert.True(t, strings.HasSuffix(result, "\n"))
			assert.False(t, strings.HasSuffix(result, "\n\n"))
		})
	}
}

func TestRenderMarkdown_Exact(t *testing.T) {
	doc := &Document{
		Title:    "Changelog",
		Subtitle: "v1.1.0",
		Sections: []Section{
			{Title: "Features", Entries: []string{"a (aaaaaaa)", "c (ccccccc)"}},
			{Title: "Bug Fixes", Entries: []string{"b (bbbbbbb)"}},
		},
	}

	want := "# Changelog\n" +
		"\n" +
		"## v1.1.0\n" +
		"\n" +
		"### Features\n" +
		"\n" +
		"- a (aaaaaaa)\n" +
		"- c (ccccccc)\n" +
		"\n" +
		"### Bug Fixes\n" +
		"\n" +
		"- b (bbbbbbb)\n"

	got, err := RenderMarkdownString(doc, false)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRenderMarkdown_BlankTitle(t *testing.T) {
	doc := &Document{
		Title:    "  ",
		Sections: []Section{{Title: "Features", Entries: []string{"x"}}},
	}

	got, err := RenderMarkdownString(doc, false)
	require.NoError(t, err)
	assert.Equal(t, "### Features\n\n- x\n", got)
}

func TestRenderMarkdownIdempotent(t *testing.T) {
	doc := &Document{
		Title:           "Changelog",
		BreakingChanges: []string{"x"},
		Sections:        []Section{{Title: "Features", Entries: []string{"a", "b"}}},
		OtherChanges:    []string{"c"},
	}

	var first, second bytes.Buffer
	require.NoError(t, RenderMarkdown(doc, &first, false))
	require.NoError(t, RenderMarkdown(doc, &second, false))
	assert.Equal(t, first.String(), second.String())
}

func TestRenderMarkdown_EmptyDocument(t *testing.T) {
	got, err := RenderMarkdownString(&Document{}, false)
	require.NoError(t, err)
	assert.Empty(t, got)
}
