package golang

import (
	"errors"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"strconv"

	"github.com/rlch/inlay/language"
)

// ErrNoSyntax is returned when a file could not be parsed at all.
var ErrNoSyntax = errors.New("no syntax tree")

const diagnosticSource = "go"

// File is a type-checked Go source file.
type File struct {
	Path string
	Fset *token.FileSet
	AST  *ast.File
	Pkg  *types.Package
	Info *types.Info

	tokFile     *token.File
	aliases     map[string]string
	diagnostics []language.Diagnostic
}

func newInfo() *types.Info {
	return &types.Info{
		Types:     make(map[ast.Expr]types.TypeAndValue),
		Defs:      make(map[*ast.Ident]types.Object),
		Uses:      make(map[*ast.Ident]types.Object),
		Implicits: make(map[ast.Node]types.Object),
	}
}

func newFile(path string, fset *token.FileSet, syntax *ast.File, pkg *types.Package, info *types.Info) *File {
	f := &File{
		Path:    path,
		Fset:    fset,
		AST:     syntax,
		Pkg:     pkg,
		Info:    info,
		tokFile: fset.File(syntax.Pos()),
		aliases: make(map[string]string),
	}

	for _, imp := range syntax.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil || imp.Name == nil {
			continue
		}

		switch imp.Name.Name {
		case "_":
		case ".":
			f.aliases[importPath] = ""
		default:
			f.aliases[importPath] = imp.Name.Name
		}
	}

	return f
}

// CheckFile parses and type-checks a single Go file in isolation.
// Imports are resolved from source. Parse and type errors are reported as
// diagnostics; an error is returned only if no syntax tree was produced.
func CheckFile(path string, src []byte) (*File, error) {
	fset := token.NewFileSet()

	syntax, parseErr := parser.ParseFile(fset, path, src, parser.ParseComments|parser.AllErrors)
	if syntax == nil || syntax.Name == nil || syntax.Name.Name == "" {
		return nil, fmt.Errorf("parse %s: %w: %w", path, ErrNoSyntax, parseErr)
	}

	info := newInfo()
	f := newFile(path, fset, syntax, nil, info)

	var list scanner.ErrorList
	if errors.As(parseErr, &list) {
		for _, e := range list {
			f.addDiagnostic(e.Pos.Offset, e.Msg)
		}
	}

	conf := types.Config{
		Importer:    importer.ForCompiler(fset, "source", nil),
		FakeImportC: true,
		Error: func(err error) {
			var terr types.Error
			if errors.As(err, &terr) && terr.Fset.File(terr.Pos) == f.tokFile {
				f.addDiagnostic(f.tokFile.Offset(terr.Pos), terr.Msg)
			}
		},
	}

	// Type errors were recorded by the handler above.
	f.Pkg, _ = conf.Check(syntax.Name.Name, fset, []*ast.File{syntax}, info)

	return f, nil
}

func (f *File) addDiagnostic(offset int, msg string) {
	f.diagnostics = append(f.diagnostics, language.Diagnostic{
		Start:    offset,
		End:      f.identEnd(offset),
		Severity: language.SeverityError,
		Source:   diagnosticSource,
		Message:  msg,
	})
}

// identEnd extends a diagnostic over the identifier starting at offset, if any.
func (f *File) identEnd(offset int) int {
	var end int

	ast.Inspect(f.AST, func(n ast.Node) bool {
		if end != 0 || n == nil {
			return false
		}

		if id, ok := n.(*ast.Ident); ok && f.tokFile.Offset(id.Pos()) == offset {
			end = f.tokFile.Offset(id.End())

			return false
		}

		return f.contains(n, offset)
	})

	if end == 0 {
		return offset
	}

	return end
}

func (f *File) contains(n ast.Node, offset int) bool {
	if !n.Pos().IsValid() || !n.End().IsValid() {
		return true
	}

	return f.tokFile.Offset(n.Pos()) <= offset && offset <= f.tokFile.Offset(n.End())
}

// Diagnostics implements language.Unit.
func (f *File) Diagnostics() []language.Diagnostic {
	return f.diagnostics
}

// Position converts a byte offset of this file to a line/column position.
func (f *File) Position(offset int) token.Position {
	offset = min(max(offset, 0), f.tokFile.Size())

	return f.tokFile.Position(f.tokFile.Pos(offset))
}
