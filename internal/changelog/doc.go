// Package changelog builds release changelogs from Conventional Commits.
//
// This package implements:
//   - classification of commits into configured sections, breaking changes
//     and other types (Generator)
//   - range selection and subtitle resolution from repository tags
//   - Markdown rendering of the resulting Document
//   - output sinks: file (with append), clipboard and stdout
//
// The package reads commits and writes text. It never mutates the repository.
package changelog
