package config

import (
	"sort"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
	TypeEnum
	TypeList
	TypeMap
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeList:
		return "list"
	case TypeMap:
		return "map"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type.
type ConfigKeySchema struct {
	Path          string          // Dotted key path (e.g., "changelog.title")
	Type          ConfigValueType // Expected value type
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
}

// EnvName returns the environment variable that overrides the key.
func (s ConfigKeySchema) EnvName() string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(s.Path, ".", "__"))
}

// KnownKeys is the registry of all known configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	"types.description":                          {Path: "types.description", Type: TypeString, Description: "Prompt shown when choosing a type"},
	"types.values":                               {Path: "types.values", Type: TypeMap, Description: "Allowed commit types and their descriptions, in order"},
	"scope.required":                             {Path: "scope.required", Type: TypeBool, Description: "Reject messages without a scope"},
	"scope.type":                                 {Path: "scope.type", Type: TypeEnum, AllowedValues: []string{string(ScopeText), string(ScopeList)}, Description: "How a scope is entered"},
	"scope.values":                               {Path: "scope.values", Type: TypeList, Description: "Allowed scopes when scope.type is list"},
	"short_description.min_length":               {Path: "short_description.min_length", Type: TypeInt, Description: "Minimum header description length"},
	"short_description.max_length":               {Path: "short_description.max_length", Type: TypeInt, Description: "Maximum header description length"},
	"long_description.enabled":                   {Path: "long_description.enabled", Type: TypeBool, Description: "Offer a message body"},
	"long_description.required":                  {Path: "long_description.required", Type: TypeBool, Description: "Reject messages without a body"},
	"long_description.min_length":                {Path: "long_description.min_length", Type: TypeInt, Description: "Minimum body length"},
	"long_description.max_length":                {Path: "long_description.max_length", Type: TypeInt, Description: "Maximum body length"},
	"breaking_changes.enabled":                   {Path: "breaking_changes.enabled", Type: TypeBool, Description: "Offer a breaking change footer"},
	"lint.ignored":                               {Path: "lint.ignored", Type: TypeList, Description: "Patterns of commits skipped by lint"},
	"changelog.title":                            {Path: "changelog.title", Type: TypeString, Description: "Changelog heading"},
	"changelog.filepath":                         {Path: "changelog.filepath", Type: TypeString, Description: "Changelog file or directory"},
	"changelog.types":                            {Path: "changelog.types", Type: TypeMap, Description: "Types shown as sections and their titles, in order"},
	"changelog.show_other_types":                 {Path: "changelog.show_other_types", Type: TypeBool, Description: "List unconfigured types under Other"},
	"changelog.show_breaking_changes":            {Path: "changelog.show_breaking_changes", Type: TypeBool, Description: "Collect breaking commits in their own section"},
	"changelog.ignored":                          {Path: "changelog.ignored", Type: TypeList, Description: "Patterns of commits left out of the changelog"},
	"changelog.format.section_template":          {Path: "changelog.format.section_template", Type: TypeString, Description: "Entry template for configured sections"},
	"changelog.format.breaking_changes_template": {Path: "changelog.format.breaking_changes_template", Type: TypeString, Description: "Entry template for breaking changes"},
	"changelog.format.other_types_template":      {Path: "changelog.format.other_types_template", Type: TypeString, Description: "Entry template for other types"},
	"changelog.format.default_template":          {Path: "changelog.format.default_template", Type: TypeString, Description: "Fallback entry template"},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns every known key schema sorted by path.
func SortedKeys() []ConfigKeySchema {
	out := make([]ConfigKeySchema, 0, len(KnownKeys))
	for _, s := range KnownKeys {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
