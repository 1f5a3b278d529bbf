package golang

import (
	"go/types"

	"github.com/rlch/inlay"
)

// InferType implements inlay.Inferrer using the go/types results of the file.
func (f *File) InferType(decl inlay.Declaration) inlay.TypeResolution {
	d, ok := decl.(*Decl)
	if !ok || d.obj == nil {
		return inlay.Unresolved
	}

	t := d.obj.Type()
	if t == nil || containsInvalid(t) {
		return inlay.Unresolved
	}

	return inlay.Resolved(t)
}

// containsInvalid reports whether t is invalid or is built from an invalid
// type. Named types are checked at their declaration and not expanded, so
// recursive types terminate.
func containsInvalid(t types.Type) bool {
	switch t := t.(type) {
	case *types.Basic:
		return t.Kind() == types.Invalid
	case *types.Alias:
		return containsInvalid(types.Unalias(t))
	case *types.Pointer:
		return containsInvalid(t.Elem())
	case *types.Slice:
		return containsInvalid(t.Elem())
	case *types.Array:
		return containsInvalid(t.Elem())
	case *types.Chan:
		return containsInvalid(t.Elem())
	case *types.Map:
		return containsInvalid(t.Key()) || containsInvalid(t.Elem())
	case *types.Signature:
		return containsInvalid(t.Params()) || containsInvalid(t.Results())
	case *types.Struct:
		for i := range t.NumFields() {
			if containsInvalid(t.Field(i).Type()) {
				return true
			}
		}

		return false
	case *types.Interface:
		for i := range t.NumEmbeddeds() {
			if containsInvalid(t.EmbeddedType(i)) {
				return true
			}
		}

		for i := range t.NumMethods() {
			if containsInvalid(t.Method(i).Type()) {
				return true
			}
		}

		return false
	case *types.Tuple:
		for v := range t.Variables() {
			if containsInvalid(v.Type()) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// RenderCompact implements inlay.Renderer. Types of the file's own package are
// unqualified; other packages use the name they are imported under.
func (f *File) RenderCompact(t inlay.RenderableType) string {
	typ, ok := t.(types.Type)
	if !ok {
		return t.String()
	}

	return types.TypeString(typ, f.qualifier)
}

func (f *File) qualifier(pkg *types.Package) string {
	if pkg == f.Pkg {
		return ""
	}

	if alias, ok := f.aliases[pkg.Path()]; ok {
		return alias
	}

	return pkg.Name()
}
