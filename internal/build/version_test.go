package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	orig := [3]string{Version, Commit, BuildDate}
	t.Cleanup(func() { Version, Commit, BuildDate = orig[0], orig[1], orig[2] })

	tests := map[string]struct {
		version, commit, date string
		want                  string
		dev                   bool
	}{
		"dev build": {
			version: "dev", commit: "abc1234", date: "unknown",
			want: "commitwit dev (commit abc1234)", dev: true,
		},
		"release": {
			version: "v1.2.0", commit: "abc1234", date: "2026-01-02",
			want: "commitwit v1.2.0 (commit abc1234, built 2026-01-02)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			Version, Commit, BuildDate = tt.version, tt.commit, tt.date
			assert.Equal(t, tt.want, Summary())
			assert.Equal(t, tt.dev, IsDevBuild())
		})
	}
}
