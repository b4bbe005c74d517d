// Package config tests layered loading, key order, validation and
// migration of commitwit configuration.
// Related: internal/config/config.go, internal/config/validate.go, internal/config/migrate.go
// Tags: config, koanf, yaml, validation

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/commitwit/internal/changelog"
	"github.com/ariel-frischer/commitwit/internal/lint"
)

// isolate points the user config dir at an empty temp dir and returns a
// fresh repository root.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	return t.TempDir()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	root := isolate(t)

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.ShortDescription.MinLength)
	assert.Equal(t, 72, cfg.ShortDescription.MaxLength)
	assert.Equal(t, 100, cfg.LongDescription.MaxLength)
	assert.Equal(t, ScopeText, cfg.ScopeKind())
	assert.Equal(t, changelog.DefaultTitle, cfg.Changelog.Title)
	assert.True(t, cfg.Changelog.ShowOtherTypes)
	assert.False(t, cfg.Changelog.ShowBreakingChanges)
	assert.Equal(t, changelog.DefaultEntryTemplate, cfg.Changelog.Format.DefaultTemplate)

	keys := cfg.TypeKeys()
	require.Len(t, keys, len(DefaultTypes))
	assert.Equal(t, "feat", keys[0])
	assert.Equal(t, "revert", keys[len(keys)-1])

	assert.Equal(t, changelog.DefaultOptions().Types, cfg.ChangelogTypes())
}

func TestLoad_ProjectYAMLKeepsOrder(t *testing.T) {
	root := isolate(t)
	writeFile(t, ProjectConfigPath(root), `
types:
  values:
    ":sparkles:": New feature
    fix: Bug fix
    chore: Chores
scope:
  required: true
short_description:
  max_length: 50
changelog:
  title: ":rocket: Releases"
  types:
    fix: Fixes
    ":sparkles:": Features
  show_breaking_changes: true
  format:
    section_template: "{description}"
`)

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, []string{":sparkles:", "fix", "chore"}, cfg.TypeKeys())
	assert.Equal(t, []changelog.TypeTitle{
		{Type: "fix", Title: "Fixes"},
		{Type: ":sparkles:", Title: "Features"},
	}, cfg.ChangelogTypes())
	assert.True(t, cfg.Scope.Required)
	assert.Equal(t, 1, cfg.ShortDescription.MinLength, "unset keys keep defaults")
	assert.Equal(t, 50, cfg.ShortDescription.MaxLength)

	opts := cfg.ChangelogOptions()
	assert.Equal(t, ":rocket: Releases", opts.Title)
	assert.True(t, opts.ShowBreakingChanges)
	assert.Equal(t, "{description}", opts.Templates.Section)
	assert.Equal(t, changelog.DefaultEntryTemplate, opts.Templates.Default)

	assert.Equal(t, lint.Config{
		Types:            []string{":sparkles:", "fix", "chore"},
		ScopeRequired:    true,
		ShortDescription: lint.LengthRange{Min: 1, Max: 50},
		LongDescription:  lint.LengthRange{Min: 0, Max: 100},
	}, cfg.LintConfig())
}

func TestLoad_UserAndProjectOrder(t *testing.T) {
	root := isolate(t)
	userPath, err := UserConfigPath()
	require.NoError(t, err)
	writeFile(t, userPath, "changelog:\n  title: Mine\n  types:\n    docs: Docs\n    feat: Features\n")
	writeFile(t, ProjectConfigPath(root), "changelog:\n  types:\n    fix: Fixes\n")

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "Mine", cfg.Changelog.Title)
	assert.Equal(t, []changelog.TypeTitle{
		{Type: "fix", Title: "Fixes"},
		{Type: "docs", Title: "Docs"},
		{Type: "feat", Title: "Features"},
	}, cfg.ChangelogTypes())
}

func TestLoad_LegacyJSON(t *testing.T) {
	root := isolate(t)
	writeFile(t, LegacyProjectConfigPath(root), `{"changelog": {"title": "Legacy", "types": {"perf": "Speed", "feat": "New"}}}`)

	var warnings bytes.Buffer
	cfg, err := LoadWithOptions(LoadOptions{Root: root, WarningWriter: &warnings})
	require.NoError(t, err)

	assert.Equal(t, "Legacy", cfg.Changelog.Title)
	assert.Equal(t, []changelog.TypeTitle{{Type: "perf", Title: "Speed"}, {Type: "feat", Title: "New"}}, cfg.ChangelogTypes())
	assert.Contains(t, warnings.String(), "deprecated JSON config")
}

func TestLoad_YAMLWinsOverLegacy(t *testing.T) {
	root := isolate(t)
	writeFile(t, ProjectConfigPath(root), "changelog:\n  title: YAML\n")
	writeFile(t, LegacyProjectConfigPath(root), `{"changelog": {"title": "JSON"}}`)

	var warnings bytes.Buffer
	cfg, err := LoadWithOptions(LoadOptions{Root: root, WarningWriter: &warnings})
	require.NoError(t, err)
	assert.Equal(t, "YAML", cfg.Changelog.Title)
	assert.Contains(t, warnings.String(), "Legacy JSON config found")

	warnings.Reset()
	_, err = LoadWithOptions(LoadOptions{Root: root, WarningWriter: &warnings, SkipWarnings: true})
	require.NoError(t, err)
	assert.Empty(t, warnings.String())
}

func TestLoad_CustomPath(t *testing.T) {
	root := isolate(t)
	custom := filepath.Join(t.TempDir(), "alt.yml")
	writeFile(t, custom, "changelog:\n  filepath: docs/CHANGES.md\n")

	cfg, err := LoadWithOptions(LoadOptions{Root: root, ProjectConfigPath: custom})
	require.NoError(t, err)
	assert.Equal(t, "docs/CHANGES.md", cfg.Changelog.FilePath)

	_, err = LoadWithOptions(LoadOptions{Root: root, ProjectConfigPath: filepath.Join(root, "missing.yml")})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "file not found", vErr.Message)
}

func TestLoad_Environment(t *testing.T) {
	root := isolate(t)
	t.Setenv("COMMITWIT_SHORT_DESCRIPTION__MAX_LENGTH", "60")
	t.Setenv("COMMITWIT_CHANGELOG__TITLE", "From Env")
	t.Setenv("COMMITWIT_SCOPE__REQUIRED", "true")

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.ShortDescription.MaxLength)
	assert.Equal(t, "From Env", cfg.Changelog.Title)
	assert.True(t, cfg.Scope.Required)
}

func TestLoad_ScopeKind(t *testing.T) {
	tests := map[string]struct {
		content string
		env     map[string]string
		want    ScopeKind
	}{
		"unset": {
			want: ScopeText,
		},
		"text": {
			content: "scope:\n  type: text\n",
			want:    ScopeText,
		},
		"list": {
			content: "scope:\n  type: list\n  values:\n    - api\n    - cli\n",
			want:    ScopeList,
		},
		"list from environment": {
			content: "scope:\n  values:\n    - api\n",
			env:     map[string]string{"COMMITWIT_SCOPE__TYPE": "list"},
			want:    ScopeList,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := isolate(t)
			if tt.content != "" {
				writeFile(t, ProjectConfigPath(root), tt.content)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.ScopeKind())

			cfg.Scope.Type = "changed after load"
			assert.Equal(t, tt.want, cfg.ScopeKind(), "kind is fixed when loading")
		})
	}

	t.Run("unloaded configuration", func(t *testing.T) {
		assert.Equal(t, ScopeList, (&Configuration{Scope: ScopeConfig{Type: "list"}}).ScopeKind())
		assert.Equal(t, ScopeText, (&Configuration{}).ScopeKind())
	})
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]struct {
		content   string
		wantField string
		wantLine  int
	}{
		"max below min": {
			content:   "short_description:\n  min_length: 10\n  max_length: 5\n",
			wantField: "short_description.max_length",
		},
		"long max below min": {
			content:   "long_description:\n  min_length: 20\n  max_length: 10\n",
			wantField: "long_description.max_length",
		},
		"unknown scope type": {
			content:   "scope:\n  type: free\n",
			wantField: "scope.type",
		},
		"list scope without values": {
			content:   "scope:\n  type: list\n",
			wantField: "scope.values",
		},
		"types not a mapping": {
			content:   "types:\n  values:\n    - feat\n    - fix\n",
			wantField: "types.values",
		},
		"syntax error": {
			content:  "changelog:\n  title: [unclosed\n",
			wantLine: 2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := isolate(t)
			writeFile(t, ProjectConfigPath(root), tt.content)

			_, err := Load(root)
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, vErr.Field)
			}
			if tt.wantLine != 0 {
				assert.Positive(t, vErr.Line)
			}
		})
	}
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	root := isolate(t)
	writeFile(t, ProjectConfigPath(root), GetDefaultConfigTemplate())

	cfg, err := Load(root)
	require.NoError(t, err)

	defaults, _ := defaultTypeValues()
	assert.Equal(t, defaults, cfg.Types.Values)
	want := make([]string, 0, len(DefaultTypes))
	for _, dt := range DefaultTypes {
		want = append(want, dt.Type)
	}
	assert.Equal(t, want, cfg.TypeKeys())
	assert.Equal(t, changelog.DefaultOptions().Types, cfg.ChangelogTypes())
}

func TestMappingKeyOrder(t *testing.T) {
	tests := map[string]struct {
		data    string
		path    []string
		want    []string
		wantErr bool
	}{
		"nested":       {data: "a:\n  b:\n    z: 1\n    y: 2\n", path: []string{"a", "b"}, want: []string{"z", "y"}},
		"json":         {data: `{"a": {"b": {"z": 1, "y": 2}}}`, path: []string{"a", "b"}, want: []string{"z", "y"}},
		"missing":      {data: "a: 1\n", path: []string{"x", "y"}},
		"empty":        {data: "  ", path: []string{"a"}},
		"not mapping":  {data: "a: [1, 2]\n", path: []string{"a"}, wantErr: true},
		"scalar along": {data: "a: 1\n", path: []string{"a", "b"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := MappingKeyOrder([]byte(tt.data), tt.path...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMigrateJSONToYAML(t *testing.T) {
	root := t.TempDir()
	jsonPath := LegacyProjectConfigPath(root)
	yamlPath := ProjectConfigPath(root)
	writeFile(t, jsonPath, `{"types": {"values": {"fix": "Fix", "feat": "Feature", ":sparkles:": "Shiny"}}, "scope": {"required": true}}`)

	result, err := MigrateProjectConfig(root, true)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NoFileExists(t, yamlPath)

	result, err = MigrateProjectConfig(root, false)
	require.NoError(t, err)
	assert.True(t, result.Success)

	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	keys, err := MappingKeyOrder(data, "types", "values")
	require.NoError(t, err)
	assert.Equal(t, []string{"fix", "feat", ":sparkles:"}, keys)
	assert.Contains(t, string(data), "required: true")

	result, err = MigrateProjectConfig(root, false)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "already exists")

	require.NoError(t, RemoveLegacyConfig(jsonPath, false))
	assert.NoFileExists(t, jsonPath)
	assert.FileExists(t, jsonPath+".bak")
}

func TestMigrateJSONToYAML_NoSource(t *testing.T) {
	result, err := MigrateProjectConfig(t.TempDir(), false)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "No JSON config")
}

func TestKnownKeys(t *testing.T) {
	for path, schema := range KnownKeys {
		assert.Equal(t, path, schema.Path)
	}

	s, err := GetKeySchema("changelog.show_other_types")
	require.NoError(t, err)
	assert.Equal(t, TypeBool, s.Type)
	assert.Equal(t, "COMMITWIT_CHANGELOG__SHOW_OTHER_TYPES", s.EnvName())

	_, err = GetKeySchema("nope")
	assert.EqualError(t, err, "unknown configuration key: nope")

	sorted := SortedKeys()
	require.Len(t, sorted, len(KnownKeys))
	assert.Equal(t, "breaking_changes.enabled", sorted[0].Path)
}
