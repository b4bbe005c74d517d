// Package revision tests range parsing, tag-aware range resolution and the
// ignore filter against an in-memory fake repository.
// Related: internal/revision/revision.go, internal/revision/filter.go
// Tags: revision, range, tags, filter
package revision

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is a linear history: commits[0] is the oldest.
type fakeRepo struct {
	commits []*object.Commit
	refs    map[string]plumbing.Hash
	tags    map[plumbing.Hash]plumbing.Hash // annotated tag object -> commit
	trees   map[plumbing.Hash]bool
	missing map[plumbing.Hash]bool
}

func newFakeRepo(messages ...string) *fakeRepo {
	r := &fakeRepo{
		refs:    map[string]plumbing.Hash{},
		tags:    map[plumbing.Hash]plumbing.Hash{},
		trees:   map[plumbing.Hash]bool{},
		missing: map[plumbing.Hash]bool{},
	}
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, msg := range messages {
		c := &object.Commit{
			Hash:      plumbing.NewHash(fmt.Sprintf("%040x", i+1)),
			Message:   msg,
			Committer: object.Signature{When: base.Add(time.Duration(i) * time.Hour)},
		}
		r.commits = append(r.commits, c)
	}
	if len(r.commits) > 0 {
		r.refs["HEAD"] = r.commits[len(r.commits)-1].Hash
	}
	return r
}

func (r *fakeRepo) lightweightTag(name string, idx int) {
	r.refs[name] = r.commits[idx].Hash
}

func (r *fakeRepo) annotatedTag(name string, idx int) {
	id := plumbing.NewHash(fmt.Sprintf("%040x", 0xa000+idx))
	r.tags[id] = r.commits[idx].Hash
	r.refs[name] = id
}

func (r *fakeRepo) index(id plumbing.Hash) int {
	for i, c := range r.commits {
		if c.Hash == id {
			return i
		}
	}
	return -1
}

func (r *fakeRepo) Resolve(rev string) (plumbing.Hash, error) {
	if id, ok := r.refs[rev]; ok {
		return id, nil
	}
	return plumbing.ZeroHash, fmt.Errorf("%s: %w", rev, ErrRevisionNotFound)
}

func (r *fakeRepo) Classify(id plumbing.Hash) (Object, error) {
	if r.missing[id] {
		return Object{}, fmt.Errorf("%s: %w", id, ErrMissingObject)
	}
	if target, ok := r.tags[id]; ok {
		return Object{Kind: KindTag, ID: id, Target: target}, nil
	}
	if r.trees[id] {
		return Object{Kind: KindOther, ID: id}, nil
	}
	if r.index(id) >= 0 {
		return Object{Kind: KindCommit, ID: id, Target: id}, nil
	}
	return Object{}, fmt.Errorf("%s: %w", id, ErrMissingObject)
}

func (r *fakeRepo) Commit(id plumbing.Hash) (*object.Commit, error) {
	if i := r.index(id); i >= 0 {
		return r.commits[i], nil
	}
	return nil, fmt.Errorf("%s: %w", id, ErrMissingObject)
}

func (r *fakeRepo) CommitsBetween(from, to plumbing.Hash) ([]*object.Commit, error) {
	lo, hi := r.index(from), r.index(to)
	var out []*object.Commit
	for i := hi; i > lo; i-- {
		out = append(out, r.commits[i])
	}
	return out, nil
}

func messages(commits []*object.Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.Message
	}
	return out
}

func TestParseRange(t *testing.T) {
	tests := map[string]struct {
		spec string
		want Range
	}{
		"both sides":  {spec: "v1.0.0..v1.1.0", want: Range{From: "v1.0.0", To: "v1.1.0"}},
		"blank to":    {spec: "v1.0.0..", want: Range{From: "v1.0.0", To: "HEAD"}},
		"blank from":  {spec: "..v1.1.0", want: Range{From: "HEAD", To: "v1.1.0"}},
		"split once":  {spec: "a..b..c", want: Range{From: "a", To: "b..c"}},
		"both blank":  {spec: "..", want: Range{From: "HEAD", To: "HEAD"}},
		"with spaces": {spec: " a .. b ", want: Range{From: "a", To: "b"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRange(tt.spec))
		})
	}
}

func TestResolve(t *testing.T) {
	repo := newFakeRepo("c0", "c1", "c2", "c3")
	repo.lightweightTag("light", 1)
	repo.annotatedTag("v1.0.0", 1)
	repo.annotatedTag("v1.1.0", 3)

	tests := map[string]struct {
		spec string
		want []string
	}{
		"blank spec is head":             {spec: "", want: []string{"c3"}},
		"single revision":                {spec: "light", want: []string{"c1"}},
		"single annotated tag":           {spec: "v1.0.0", want: []string{"c1"}},
		"range from lightweight tag":     {spec: "light..HEAD", want: []string{"c3", "c2", "c1"}},
		"range from annotated tag":       {spec: "v1.0.0..HEAD", want: []string{"c3", "c2"}},
		"range to annotated tag":         {spec: "light..v1.1.0", want: []string{"c3", "c2", "c1"}},
		"range between annotated tags":   {spec: "v1.0.0..v1.1.0", want: []string{"c3", "c2"}},
		"blank to defaults to head":      {spec: "v1.0.0..", want: []string{"c3", "c2"}},
		"empty range still returns from": {spec: "HEAD..HEAD", want: []string{"c3"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			commits, err := NewResolver(repo).Resolve(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, messages(commits))
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	repo := newFakeRepo("c0", "c1")
	treeID := plumbing.NewHash(fmt.Sprintf("%040x", 0xbeef))
	repo.trees[treeID] = true
	repo.refs["tree"] = treeID
	goneID := plumbing.NewHash(fmt.Sprintf("%040x", 0xdead))
	repo.missing[goneID] = true
	repo.refs["gone"] = goneID

	tests := map[string]struct {
		spec    string
		wantErr error
	}{
		"unknown revision":     {spec: "nope", wantErr: ErrRevisionNotFound},
		"unknown range side":   {spec: "nope..HEAD", wantErr: ErrRevisionNotFound},
		"unknown range to":     {spec: "HEAD..nope", wantErr: ErrRevisionNotFound},
		"tree object":          {spec: "tree", wantErr: ErrUnsupportedObjectType},
		"tree in range":        {spec: "tree..HEAD", wantErr: ErrUnsupportedObjectType},
		"missing object":       {spec: "gone", wantErr: ErrMissingObject},
		"missing object in to": {spec: "HEAD..gone", wantErr: ErrMissingObject},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewResolver(repo).Resolve(tt.spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestFilter(t *testing.T) {
	repo := newFakeRepo(
		"feat: add parser",
		"chore(release): v1.0.0",
		"✨ add emoji support",
		"fix: handle WIP state",
	)
	all, err := repo.CommitsBetween(plumbing.ZeroHash, repo.commits[3].Hash)
	require.NoError(t, err)

	tests := map[string]struct {
		patterns []string
		want     []string
	}{
		"no patterns": {
			want: []string{"fix: handle WIP state", "✨ add emoji support", "chore(release): v1.0.0", "feat: add parser"},
		},
		"blank patterns ignored": {
			patterns: []string{"", "  "},
			want:     []string{"fix: handle WIP state", "✨ add emoji support", "chore(release): v1.0.0", "feat: add parser"},
		},
		"anchored pattern": {
			patterns: []string{`^chore\(release\)`},
			want:     []string{"fix: handle WIP state", "✨ add emoji support", "feat: add parser"},
		},
		"match anywhere": {
			patterns: []string{"WIP"},
			want:     []string{"✨ add emoji support", "chore(release): v1.0.0", "feat: add parser"},
		},
		"glyph pattern matches": {
			patterns: []string{"✨"},
			want:     []string{"fix: handle WIP state", "chore(release): v1.0.0", "feat: add parser"},
		},
		"alias pattern matches glyph message": {
			patterns: []string{"^:sparkles:"},
			want:     []string{"fix: handle WIP state", "chore(release): v1.0.0", "feat: add parser"},
		},
		"several patterns": {
			patterns: []string{"WIP", "^feat"},
			want:     []string{"✨ add emoji support", "chore(release): v1.0.0"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Filter(all, tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, messages(got))
		})
	}
}

func TestFilter_InvalidPattern(t *testing.T) {
	_, err := Filter(nil, []string{"("})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidIgnorePattern)
}

func TestResolveFiltered(t *testing.T) {
	repo := newFakeRepo("feat: a", "chore: bump", "fix: b")
	repo.lightweightTag("start", 0)

	commits, err := NewResolver(repo).ResolveFiltered("start..HEAD", []string{"^chore"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fix: b", "feat: a"}, messages(commits))
}

func TestHistory(t *testing.T) {
	repo := newFakeRepo("c0", "c1", "c2")

	commits, err := NewResolver(repo).History("")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c1", "c0"}, messages(commits))

	_, err = NewResolver(repo).History("nope")
	assert.ErrorIs(t, err, ErrRevisionNotFound)
}
