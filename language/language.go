// Package language connects source languages to the inlay hint builder.
//
// Each language (Go, ...) implements the Language interface to type-check a
// document and expose its declarations, inference engine and type renderer.
package language

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rlch/inlay"
)

// ErrUnsupportedFile is returned when no language handles a file extension.
var ErrUnsupportedFile = errors.New("no language registered for file")

// Request describes one document to analyze.
type Request struct {
	// Path is the absolute file system path of the document.
	Path string

	// Content is the current (possibly unsaved) document text.
	Content []byte

	// Loader selects the type-checking strategy, see inlay.LoaderPackages.
	Loader string
}

// Severity of a diagnostic.
type Severity int

// Diagnostic severities, matching LSP numbering.
const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Diagnostic is a problem found while type-checking.
// Start and End are byte offsets into the document.
type Diagnostic struct {
	Start    int
	End      int
	Severity Severity
	Source   string
	Message  string
}

// Unit is an analyzed document.
type Unit interface {
	inlay.Inferrer
	inlay.Renderer

	// Nodes returns the declaration nodes of the document in source order.
	Nodes() []inlay.Node

	// Diagnostics returns problems found in the document.
	Diagnostics() []Diagnostic
}

// Language represents a source language with type inference.
type Language interface {
	// Name returns the language identifier (e.g., "go").
	Name() string

	// Extensions returns the file extensions handled, including the dot.
	Extensions() []string

	// Analyze type-checks a document.
	Analyze(ctx context.Context, req Request) (Unit, error)
}

// Registration for language discovery.
var (
	registryMu sync.RWMutex
	languages  = make(map[string]Language)
	extensions = make(map[string]Language)
)

// Register registers a language by name and extension.
func Register(lang Language) {
	registryMu.Lock()
	defer registryMu.Unlock()

	languages[lang.Name()] = lang

	for _, ext := range lang.Extensions() {
		extensions[ext] = lang
	}
}

// Get returns a language by name, or nil if not registered.
func Get(name string) Language { //nolint:ireturn
	registryMu.RLock()
	defer registryMu.RUnlock()

	return languages[name]
}

// ForPath returns the language handling path's extension.
func ForPath(path string) (Language, error) { //nolint:ireturn
	registryMu.RLock()
	defer registryMu.RUnlock()

	lang, ok := extensions[filepath.Ext(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	return lang, nil
}

// RegisteredLanguages returns the names of all registered languages, sorted.
func RegisteredLanguages() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Hints builds the type hints of an analyzed unit.
func Hints(unit Unit, styles inlay.StyleSource, filter *inlay.Filter) []inlay.Hint {
	return inlay.Collect(inlay.NewBuilder(unit, unit, styles), unit.Nodes(), filter)
}

// Analyze resolves the language for req.Path and analyzes the document.
func Analyze(ctx context.Context, req Request) (Unit, error) { //nolint:ireturn
	lang, err := ForPath(req.Path)
	if err != nil {
		return nil, err
	}

	return lang.Analyze(ctx, req)
}
