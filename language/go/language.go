// Package golang provides type inlay hints for Go source files.
//
// Declarations are found with go/ast, types are inferred by go/types and
// rendered with types.TypeString. Two loading strategies exist:
//
//   - CheckFile type-checks a single file in isolation, importing
//     dependencies from source.
//   - PackageLoader loads the whole enclosing package through the go tool
//     (golang.org/x/tools/go/packages), with unsaved editor content overlaid.
//
// Only declarations without an explicit type receive hints:
//
//	x := 5                 // x: int
//	var s = []string{}     // s: []string
//	const c = 1 << 3       // c: untyped int
//	f := func() error {…}  // f: func() error
//	for i, v := range m {} // i: string  v: bool
package golang

import (
	"context"

	"github.com/rlch/inlay/language"
)

// GoLanguage implements language.Language for Go.
type GoLanguage struct {
	loader *PackageLoader
}

// New creates a Go language with a default package loader.
func New() *GoLanguage {
	return &GoLanguage{loader: &PackageLoader{}}
}

// Name returns "go".
func (g *GoLanguage) Name() string {
	return "go"
}

// Extensions returns ".go".
func (g *GoLanguage) Extensions() []string {
	return []string{".go"}
}

// Analyze type-checks a Go document.
func (g *GoLanguage) Analyze(ctx context.Context, req language.Request) (language.Unit, error) { //nolint:ireturn
	f, err := analyze(ctx, g.loader, req)
	if err != nil {
		return nil, err
	}

	return f, nil
}

//nolint:gochecknoinits // Registration pattern requires init.
func init() {
	language.Register(New())
}
