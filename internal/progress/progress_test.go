package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSymbols(t *testing.T) {
	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii": {
			caps: TerminalCapabilities{IsTTY: true},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestSpinner_DisabledWithoutTTY(t *testing.T) {
	var buf bytes.Buffer
	sp := NewSpinner(&buf, TerminalCapabilities{})

	sp.Start("reading history")
	sp.Success("done")
	sp.Fail("failed")
	sp.Stop()

	assert.Empty(t, buf.String())
}

func TestDetectTerminalCapabilities_ASCII(t *testing.T) {
	t.Setenv("COMMITWIT_ASCII", "1")
	t.Setenv("NO_COLOR", "1")

	caps := DetectTerminalCapabilities()
	assert.False(t, caps.SupportsUnicode)
	assert.False(t, caps.SupportsColor)
}
