package golang

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/rlch/inlay"
)

// Decl is a Go identifier that declares a value without an explicit type.
type Decl struct {
	kind  inlay.DeclarationKind
	ident *ast.Ident
	obj   types.Object
	start int
	end   int
}

// DeclKind implements inlay.Node.
func (d *Decl) DeclKind() inlay.DeclarationKind {
	return d.kind
}

// NameIdent implements inlay.Declaration. The blank identifier has no name.
func (d *Decl) NameIdent() (inlay.Ident, bool) {
	if d.ident == nil || d.ident.Name == "_" {
		return inlay.Ident{}, false
	}

	return inlay.Ident{Name: d.ident.Name, Start: d.start, End: d.end}, true
}

var declFilter = []ast.Node{
	(*ast.AssignStmt)(nil),
	(*ast.ValueSpec)(nil),
	(*ast.RangeStmt)(nil),
}

// Nodes implements language.Unit. Only identifiers that newly declare a value
// and carry no type annotation are returned.
func (f *File) Nodes() []inlay.Node {
	var nodes []inlay.Node

	inspector.New([]*ast.File{f.AST}).Preorder(declFilter, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.AssignStmt:
			if n.Tok != token.DEFINE {
				return
			}

			for i, lhs := range n.Lhs {
				nodes = f.appendDecl(nodes, lhs, initializer(n.Rhs, len(n.Lhs), i))
			}

		case *ast.ValueSpec:
			if n.Type != nil {
				return
			}

			for i, name := range n.Names {
				nodes = f.appendDecl(nodes, name, initializer(n.Values, len(n.Names), i))
			}

		case *ast.RangeStmt:
			if n.Tok != token.DEFINE {
				return
			}

			for _, e := range []ast.Expr{n.Key, n.Value} {
				if decl := f.newDecl(e, inlay.DeclRangeVariable); decl != nil {
					nodes = append(nodes, decl)
				}
			}
		}
	})

	return nodes
}

// initializer returns the expression initialising the i-th of n names, or nil
// when a single multi-value expression initialises them all.
func initializer(values []ast.Expr, n, i int) ast.Expr {
	if len(values) != n {
		return nil
	}

	return values[i]
}

func (f *File) appendDecl(nodes []inlay.Node, name, init ast.Expr) []inlay.Node {
	kind := inlay.DeclVariable
	if _, ok := ast.Unparen(init).(*ast.FuncLit); ok {
		kind = inlay.DeclFunction
	}

	decl := f.newDecl(name, kind)
	if decl == nil {
		return nodes
	}

	if _, ok := decl.obj.(*types.Const); ok {
		decl.kind = inlay.DeclConstant
	}

	return append(nodes, decl)
}

// newDecl returns nil unless e is an identifier defining a new object.
func (f *File) newDecl(e ast.Expr, kind inlay.DeclarationKind) *Decl {
	ident, ok := e.(*ast.Ident)
	if !ok {
		return nil
	}

	obj := f.Info.Defs[ident]
	if obj == nil {
		return nil
	}

	return &Decl{
		kind:  kind,
		ident: ident,
		obj:   obj,
		start: f.tokFile.Offset(ident.Pos()),
		end:   f.tokFile.Offset(ident.End()),
	}
}
