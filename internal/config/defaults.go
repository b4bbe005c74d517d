package config

import "github.com/ariel-frischer/commitwit/internal/changelog"

// DefaultTypes are the Conventional Commit types allowed when no config
// lists any, in display order.
var DefaultTypes = []struct {
	Type        string
	Description string
}{
	{"feat", "A new feature"},
	{"fix", "A bug fix"},
	{"docs", "Documentation only changes"},
	{"style", "Changes that do not affect the meaning of the code"},
	{"refactor", "A code change that neither fixes a bug nor adds a feature"},
	{"perf", "A code change that improves performance"},
	{"test", "Adding missing tests or correcting existing tests"},
	{"build", "Changes that affect the build system or external dependencies"},
	{"ci", "Changes to CI configuration files and scripts"},
	{"chore", "Other changes that don't modify src or test files"},
	{"revert", "Reverts a previous commit"},
}

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# commitwit configuration
# See 'commitwit config keys' for all options

# Allowed commit types, in the order they are offered
types:
  description: "Select the type of change you're committing"
  values:
    feat: A new feature
    fix: A bug fix
    docs: Documentation only changes
    style: Changes that do not affect the meaning of the code
    refactor: A code change that neither fixes a bug nor adds a feature
    perf: A code change that improves performance
    test: Adding missing tests or correcting existing tests
    build: Changes that affect the build system or external dependencies
    ci: Changes to CI configuration files and scripts
    chore: Other changes that don't modify src or test files
    revert: Reverts a previous commit
    # ":sparkles:": Emoji types work too, as an alias or a glyph

scope:
  required: false                     # Reject messages without a scope
  type: text                          # text | list
  values: []                          # Allowed scopes when type is list

short_description:
  min_length: 1
  max_length: 72

long_description:
  enabled: false                      # Offer a body
  required: false                     # Reject messages without a body
  min_length: 0
  max_length: 100

breaking_changes:
  enabled: false

lint:
  ignored: []                         # Regexps; matching commits are not linted

changelog:
  title: Changelog                    # Emoji aliases such as :rocket: are rendered
  filepath: ""                        # Empty = CHANGELOG.md at the repository root
  types:                              # Sections, in display order
    feat: Features
    fix: Bug Fixes
  show_other_types: true              # List unconfigured types under "Other"
  show_breaking_changes: false        # Collect breaking commits under "Breaking Changes"
  ignored: []                         # Regexps; matching commits are left out
  format:
    # Placeholders: {type} {scope} {description} {hash} {shortHash}
    #               {breakingChanges} {author} {date}
    section_template: ""
    breaking_changes_template: ""
    other_types_template: ""
    default_template: "{scope}: {description} ({shortHash})"
`
}

// GetDefaults returns the default configuration values.
// The ordered type maps are filled in after loading instead; see
// defaultTypeValues and defaultChangelogTypes.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"types": map[string]interface{}{
			"description": "Select the type of change you're committing",
		},
		"scope": map[string]interface{}{
			"required": false,
			"type":     string(ScopeText),
			"values":   []string{},
		},
		"short_description": map[string]interface{}{
			"min_length": 1,
			"max_length": 72,
		},
		"long_description": map[string]interface{}{
			"enabled":    false,
			"required":   false,
			"min_length": 0,
			"max_length": 100,
		},
		"breaking_changes": map[string]interface{}{
			"enabled": false,
		},
		"lint": map[string]interface{}{
			"ignored": []string{},
		},
		"changelog": map[string]interface{}{
			"title":                 changelog.DefaultTitle,
			"filepath":              "",
			"show_other_types":      true,
			"show_breaking_changes": false,
			"ignored":               []string{},
			"format": map[string]interface{}{
				"default_template": changelog.DefaultEntryTemplate,
			},
		},
	}
}

func defaultTypeValues() (map[string]string, []string) {
	values := make(map[string]string, len(DefaultTypes))
	order := make([]string, 0, len(DefaultTypes))
	for _, t := range DefaultTypes {
		values[t.Type] = t.Description
		order = append(order, t.Type)
	}
	return values, order
}

func defaultChangelogTypes() (map[string]string, []string) {
	types := changelog.DefaultOptions().Types
	values := make(map[string]string, len(types))
	order := make([]string, 0, len(types))
	for _, t := range types {
		values[t.Type] = t.Title
		order = append(order, t.Type)
	}
	return values, order
}
