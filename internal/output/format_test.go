package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func withoutColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestPrintHelpers(t *testing.T) {
	withoutColor(t)

	tests := map[string]struct {
		print func(*bytes.Buffer)
		want  string
	}{
		"warning": {
			print: func(b *bytes.Buffer) { PrintWarning(b, "commit %s has no type", "abc1234") },
			want:  "warning: commit abc1234 has no type\n",
		},
		"info": {
			print: func(b *bytes.Buffer) { PrintInfo(b, "using %s", "v1.0.0..HEAD") },
			want:  "→ using v1.0.0..HEAD\n",
		},
		"success with path": {
			print: func(b *bytes.Buffer) { PrintSuccess(b, "Changelog written to", "CHANGELOG.md") },
			want:  "✓ Changelog written to CHANGELOG.md\n",
		},
		"success without path": {
			print: func(b *bytes.Buffer) { PrintSuccess(b, "Copied") },
			want:  "✓ Copied\n",
		},
		"violations": {
			print: func(b *bytes.Buffer) { PrintViolations(b, "a:\n - b\n") },
			want:  "a:\n - b\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(&buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrintRule(t *testing.T) {
	withoutColor(t)

	var buf bytes.Buffer
	PrintRule(&buf, "preview")
	out := buf.String()
	assert.Contains(t, out, " preview ")
	assert.True(t, strings.HasPrefix(out, "───"))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.Positive(t, GetTerminalWidth())
}
