package changelog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
)

// DefaultFileName is the changelog file written when no path is configured.
const DefaultFileName = "CHANGELOG.md"

// Sink selects where a rendered changelog goes.
type Sink int

const (
	// SinkFile writes (or appends) to the configured changelog file.
	SinkFile Sink = iota
	// SinkClipboard copies the changelog to the system clipboard.
	SinkClipboard
	// SinkStdout prints the changelog.
	SinkStdout
)

// SinkFromFlags picks the sink from command-line flags. Stdout wins over
// clipboard.
func SinkFromFlags(stdout, copyToClipboard bool) Sink {
	switch {
	case stdout:
		return SinkStdout
	case copyToClipboard:
		return SinkClipboard
	default:
		return SinkFile
	}
}

// ResolvePath returns where the changelog file lives. An empty configured
// path means CHANGELOG.md at root. An existing directory gets CHANGELOG.md
// inside it. Relative paths are relative to root.
func ResolvePath(root, configured string) string {
	configured = strings.TrimSpace(configured)
	if configured == "" {
		return filepath.Join(root, DefaultFileName)
	}

	path := configured
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, DefaultFileName)
	}
	return path
}

// WriteFile writes content to path, creating parent directories. In append
// mode the content is added after the existing text, separated by one blank
// line.
func WriteFile(path, content string, appendMode bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if !appendMode {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return &WriteError{Path: path, Err: err}
		}
		return nil
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return &WriteError{Path: path, Err: err}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer f.Close()

	if _, err := io.WriteString(f, appendSeparator(string(existing))+content); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// appendSeparator returns what must precede appended text so exactly one
// blank line separates it from existing.
func appendSeparator(existing string) string {
	switch {
	case existing == "":
		return ""
	case strings.HasSuffix(existing, "\n\n"):
		return ""
	case strings.HasSuffix(existing, "\n"):
		return "\n"
	default:
		return "\n\n"
	}
}

// Output delivers rendered changelogs to a Sink.
type Output struct {
	// Root is the repository root that relative file paths resolve against.
	Root string
	// FilePath is the configured changelog path.
	FilePath string
	Stdout   io.Writer
	// CopyToClipboard defaults to the system clipboard.
	CopyToClipboard func(text string) error
}

// Deliver sends content to sink. For SinkFile it returns the written path.
func (o *Output) Deliver(sink Sink, content string, appendMode bool) (string, error) {
	switch sink {
	case SinkStdout:
		w := o.Stdout
		if w == nil {
			w = os.Stdout
		}
		if _, err := io.WriteString(w, content); err != nil {
			return "", fmt.Errorf("printing changelog: %w", err)
		}
		return "", nil

	case SinkClipboard:
		copyFn := o.CopyToClipboard
		if copyFn == nil {
			copyFn = clipboard.WriteAll
		}
		if err := copyFn(content); err != nil {
			return "", fmt.Errorf("%w: %v", ErrClipboard, err)
		}
		return "", nil

	default:
		path := ResolvePath(o.Root, o.FilePath)
		if err := WriteFile(path, content, appendMode); err != nil {
			return "", err
		}
		return path, nil
	}
}
