// Package inlay builds type inlay hints for declarations whose type is inferred.
//
// The package is independent of any particular language. A language binding
// (see language/go) supplies the syntax nodes, the type-inference engine and the
// type renderer; the Builder turns them into positioned hint labels.
package inlay

// DeclarationKind classifies a syntax node by the kind of name it declares.
// The set is closed: nodes outside it never receive a type hint.
type DeclarationKind int

const (
	// DeclNone marks a node that declares nothing hintable.
	DeclNone DeclarationKind = iota
	// DeclVariable is a variable whose type is taken from its initializer.
	DeclVariable
	// DeclConstant is a constant whose type is taken from its initializer.
	DeclConstant
	// DeclFunction is a name bound to a function value.
	DeclFunction
	// DeclRangeVariable is a parameter-like binding introduced by a loop.
	DeclRangeVariable
)

// String returns the lowercase name used in filters and log fields.
func (k DeclarationKind) String() string {
	switch k {
	case DeclVariable:
		return "variable"
	case DeclConstant:
		return "constant"
	case DeclFunction:
		return "function"
	case DeclRangeVariable:
		return "range"
	case DeclNone:
		return "none"
	default:
		return "unknown"
	}
}

// Callable reports whether declarations of this kind can carry a type hint.
func (k DeclarationKind) Callable() bool {
	switch k {
	case DeclVariable, DeclConstant, DeclFunction, DeclRangeVariable:
		return true
	case DeclNone:
		return false
	default:
		return false
	}
}

// Node is any syntax-tree node handed to the locator.
type Node interface {
	// DeclKind returns DeclNone for nodes that do not declare a name.
	DeclKind() DeclarationKind
}

// Ident is the name token of a declaration.
// Start and End are byte offsets into the source; End is exclusive.
type Ident struct {
	Name  string
	Start int
	End   int
}

// Declaration is a node that exposes a name identifier.
type Declaration interface {
	Node

	// NameIdent returns the declared name, or false when the declaration
	// has no usable name (for example a blank identifier).
	NameIdent() (Ident, bool)
}

// RenderableType is an inferred type as produced by an inference engine.
type RenderableType interface {
	String() string
}

// TypeResolution is the outcome of asking an engine for a declaration's type:
// either Resolved with a well-formed type, or Unresolved.
type TypeResolution struct {
	typ RenderableType
}

// Unresolved is the resolution for declarations whose type is an error type.
var Unresolved = TypeResolution{}

// Resolved wraps a well-formed inferred type. A nil type yields Unresolved.
func Resolved(t RenderableType) TypeResolution {
	return TypeResolution{typ: t}
}

// Type returns the resolved type and true, or nil and false when unresolved.
func (r TypeResolution) Type() (RenderableType, bool) { //nolint:ireturn
	return r.typ, r.typ != nil
}

// Inferrer infers the type of a declaration.
type Inferrer interface {
	InferType(decl Declaration) TypeResolution
}

// Renderer renders an inferred type as compact, single-line plain text.
type Renderer interface {
	RenderCompact(t RenderableType) string
}
