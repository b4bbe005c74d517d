// commitwit - Conventional Commit linting and changelogs
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/commitwit

// Package config provides hierarchical configuration management for commitwit using koanf.
// Configuration is loaded with priority: environment variables > project config (.commitwit.yml)
// > user config (~/.config/commitwit/config.yml) > defaults. It supports both YAML and legacy JSON
// formats, with a migration helper for moving a JSON project config to YAML.
package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/commitwit/internal/changelog"
	"github.com/ariel-frischer/commitwit/internal/lint"
)

// EnvPrefix prefixes every environment override. Nested keys use "__",
// e.g. COMMITWIT_CHANGELOG__TITLE.
const EnvPrefix = "COMMITWIT_"

// Keys of the two ordered maps. Their order comes from the config files.
const (
	typesKey          = "types.values"
	changelogTypesKey = "changelog.types"
)

// ScopeKind selects how a scope is entered: free text or one of a list.
type ScopeKind string

const (
	ScopeText ScopeKind = "text"
	ScopeList ScopeKind = "list"
)

// Configuration represents the commitwit configuration
type Configuration struct {
	Types            TypesConfig            `koanf:"types" yaml:"types"`
	Scope            ScopeConfig            `koanf:"scope" yaml:"scope"`
	ShortDescription ShortDescriptionConfig `koanf:"short_description" yaml:"short_description"`
	LongDescription  LongDescriptionConfig  `koanf:"long_description" yaml:"long_description"`
	BreakingChanges  BreakingChangesConfig  `koanf:"breaking_changes" yaml:"breaking_changes"`
	Lint             LintConfig             `koanf:"lint" yaml:"lint"`
	Changelog        ChangelogConfig        `koanf:"changelog" yaml:"changelog"`

	typeOrder          []string
	changelogTypeOrder []string
	scopeKind          ScopeKind
}

// TypesConfig lists the allowed commit types and what they mean.
type TypesConfig struct {
	Description string            `koanf:"description" yaml:"description"`
	Values      map[string]string `koanf:"values" yaml:"values"`
}

type ScopeConfig struct {
	Description string   `koanf:"description" yaml:"description"`
	Required    bool     `koanf:"required" yaml:"required"`
	Type        string   `koanf:"type" yaml:"type" validate:"omitempty,oneof=text list"`
	Values      []string `koanf:"values" yaml:"values"`
}

type ShortDescriptionConfig struct {
	Description string `koanf:"description" yaml:"description"`
	MinLength   int    `koanf:"min_length" yaml:"min_length" validate:"min=0"`
	MaxLength   int    `koanf:"max_length" yaml:"max_length" validate:"min=1,gtefield=MinLength"`
}

type LongDescriptionConfig struct {
	Enabled     bool   `koanf:"enabled" yaml:"enabled"`
	Description string `koanf:"description" yaml:"description"`
	Required    bool   `koanf:"required" yaml:"required"`
	MinLength   int    `koanf:"min_length" yaml:"min_length" validate:"min=0"`
	MaxLength   int    `koanf:"max_length" yaml:"max_length" validate:"gtefield=MinLength"`
}

type BreakingChangesConfig struct {
	Enabled     bool   `koanf:"enabled" yaml:"enabled"`
	Description string `koanf:"description" yaml:"description"`
}

// LintConfig holds settings used only by the lint command.
type LintConfig struct {
	// Ignored are regular expressions; matching commits are not linted.
	Ignored []string `koanf:"ignored" yaml:"ignored"`
}

type ChangelogConfig struct {
	Title               string            `koanf:"title" yaml:"title"`
	FilePath            string            `koanf:"filepath" yaml:"filepath"`
	Types               map[string]string `koanf:"types" yaml:"types"`
	ShowOtherTypes      bool              `koanf:"show_other_types" yaml:"show_other_types"`
	ShowBreakingChanges bool              `koanf:"show_breaking_changes" yaml:"show_breaking_changes"`
	Ignored             []string          `koanf:"ignored" yaml:"ignored"`
	Format              ChangelogFormat   `koanf:"format" yaml:"format"`
}

// ChangelogFormat holds the entry templates. Blank templates fall back to
// DefaultTemplate.
type ChangelogFormat struct {
	SectionTemplate         string `koanf:"section_template" yaml:"section_template"`
	BreakingChangesTemplate string `koanf:"breaking_changes_template" yaml:"breaking_changes_template"`
	OtherTypesTemplate      string `koanf:"other_types_template" yaml:"other_types_template"`
	DefaultTemplate         string `koanf:"default_template" yaml:"default_template"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// Root is the repository root that holds the project config.
	Root string
	// ProjectConfigPath overrides the project config path (default: <Root>/.commitwit.yml).
	// An override that does not exist is an error.
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// loader accumulates layers and the key order of the ordered maps.
type loader struct {
	k      *koanf.Koanf
	orders map[string][]string
	warn   io.Writer
	quiet  bool
}

// Load loads configuration for the repository at root.
// Priority: Environment variables > Project config > User config > Defaults
func Load(root string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{Root: root})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	l := &loader{
		k:      koanf.New("."),
		orders: make(map[string][]string),
		warn:   getWarningWriter(opts.WarningWriter),
		quiet:  opts.SkipWarnings,
	}

	l.loadDefaults()

	if err := l.loadUserConfig(); err != nil {
		return nil, err
	}

	if err := l.loadProjectConfig(opts.Root, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := l.loadEnvironmentConfig(); err != nil {
		return nil, err
	}

	return l.finalize()
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

func (l *loader) loadDefaults() {
	for key, value := range GetDefaults() {
		l.k.Set(key, value)
	}
}

func (l *loader) loadUserConfig() error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := l.loadYAMLConfig(path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads .commitwit.yml, or the legacy .commitwit.json
// with a migration warning when only that exists.
func (l *loader) loadProjectConfig(root, customPath string) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return &ValidationError{FilePath: customPath, Message: "file not found"}
		}
		if strings.HasSuffix(customPath, ".json") {
			return l.loadLegacyJSONConfig(customPath)
		}
		return l.loadYAMLConfig(customPath, "project")
	}

	yamlPath := ProjectConfigPath(root)
	legacyPath := LegacyProjectConfigPath(root)
	yamlExists := fileExists(yamlPath)
	legacyExists := fileExists(legacyPath)

	switch {
	case yamlExists:
		if err := l.loadYAMLConfig(yamlPath, "project"); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		if legacyExists && !l.quiet {
			fmt.Fprintf(l.warn, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		}
	case legacyExists:
		if err := l.loadLegacyJSONConfig(legacyPath); err != nil {
			return fmt.Errorf("loading legacy project config: %w", err)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func (l *loader) loadYAMLConfig(path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return l.recordOrder(path)
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration
func (l *loader) loadLegacyJSONConfig(path string) error {
	if err := l.k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load legacy config %s: %w", path, err)
	}
	if !l.quiet {
		fmt.Fprintf(l.warn, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(l.warn, "  Run 'commitwit config migrate' to convert it to YAML.\n\n")
	}
	return l.recordOrder(path)
}

// recordOrder reads the key order of the ordered maps from a loaded file.
// Keys from later layers come first, then keys only earlier layers had.
func (l *loader) recordOrder(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	for _, key := range []string{typesKey, changelogTypesKey} {
		keys, err := MappingKeyOrder(data, strings.Split(key, ".")...)
		if err != nil {
			return &ValidationError{FilePath: path, Field: key, Message: err.Error()}
		}
		l.orders[key] = mergeOrder(keys, l.orders[key])
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func (l *loader) loadEnvironmentConfig() error {
	if err := l.k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalize unmarshals, fills map defaults and validates.
func (l *loader) finalize() (*Configuration, error) {
	var cfg Configuration
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Map defaults are applied after merging so a configured map replaces
	// them instead of being unioned with them.
	if len(cfg.Types.Values) == 0 {
		cfg.Types.Values, l.orders[typesKey] = defaultTypeValues()
	}
	if len(cfg.Changelog.Types) == 0 {
		cfg.Changelog.Types, l.orders[changelogTypesKey] = defaultChangelogTypes()
	}

	cfg.typeOrder = completeOrder(l.orders[typesKey], cfg.Types.Values)
	cfg.changelogTypeOrder = completeOrder(l.orders[changelogTypesKey], cfg.Changelog.Types)
	cfg.scopeKind = resolveScopeKind(cfg.Scope.Type)

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// mergeOrder puts primary first, then the keys of secondary it lacks.
func mergeOrder(primary, secondary []string) []string {
	seen := make(map[string]bool, len(primary))
	out := make([]string, 0, len(primary)+len(secondary))
	for _, k := range primary {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, k := range secondary {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// completeOrder keeps the recorded keys present in m, then appends the
// rest of m sorted (keys that only came from the environment).
func completeOrder(order []string, m map[string]string) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: COMMITWIT_SHORT_DESCRIPTION__MAX_LENGTH -> short_description.max_length
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// ScopeKind returns the scope kind resolved when the configuration was loaded.
func (c *Configuration) ScopeKind() ScopeKind {
	if c.scopeKind == "" {
		return resolveScopeKind(c.Scope.Type)
	}
	return c.scopeKind
}

// resolveScopeKind maps scope.type to a ScopeKind. Anything but "list" is text.
func resolveScopeKind(raw string) ScopeKind {
	if ScopeKind(strings.ToLower(strings.TrimSpace(raw))) == ScopeList {
		return ScopeList
	}
	return ScopeText
}

// TypeKeys returns the allowed commit types in file order.
func (c *Configuration) TypeKeys() []string {
	if c.typeOrder == nil {
		return completeOrder(nil, c.Types.Values)
	}
	return append([]string(nil), c.typeOrder...)
}

// ChangelogTypes returns the changelog sections in file order.
func (c *Configuration) ChangelogTypes() []changelog.TypeTitle {
	order := c.changelogTypeOrder
	if order == nil {
		order = completeOrder(nil, c.Changelog.Types)
	}
	out := make([]changelog.TypeTitle, 0, len(order))
	for _, key := range order {
		out = append(out, changelog.TypeTitle{Type: key, Title: c.Changelog.Types[key]})
	}
	return out
}

// LintConfig converts the message rules for the lint package.
func (c *Configuration) LintConfig() lint.Config {
	return lint.Config{
		Types:                   c.TypeKeys(),
		ScopeRequired:           c.Scope.Required,
		ShortDescription:        lint.LengthRange{Min: c.ShortDescription.MinLength, Max: c.ShortDescription.MaxLength},
		LongDescriptionRequired: c.LongDescription.Required,
		LongDescription:         lint.LengthRange{Min: c.LongDescription.MinLength, Max: c.LongDescription.MaxLength},
	}
}

// ChangelogOptions converts the changelog section for the changelog package.
func (c *Configuration) ChangelogOptions() changelog.Options {
	return changelog.Options{
		Title:               c.Changelog.Title,
		Types:               c.ChangelogTypes(),
		ShowOtherTypes:      c.Changelog.ShowOtherTypes,
		ShowBreakingChanges: c.Changelog.ShowBreakingChanges,
		Templates: changelog.Templates{
			Section:         c.Changelog.Format.SectionTemplate,
			BreakingChanges: c.Changelog.Format.BreakingChangesTemplate,
			OtherTypes:      c.Changelog.Format.OtherTypesTemplate,
			Default:         c.Changelog.Format.DefaultTemplate,
		},
	}
}
