package golang

import (
	"go/types"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/inlay"
	"github.com/rlch/inlay/language"
)

func TestHints_Sample(t *testing.T) {
	t.Parallel()

	f, err := CheckFile("sample.go", []byte(sampleSrc))
	require.NoError(t, err)

	got := language.Hints(f, inlay.StaticStyle(inlay.DefaultStyle()), nil)

	want := []inlay.Hint{
		{Text: "@TYPE@: untyped int", Offset: endOf(t, sampleSrc, "answer =", "answer"), Kind: inlay.KindType, Type: "untyped int"},
		{Text: "@TYPE@: string", Offset: endOf(t, sampleSrc, "greeting =", "greeting"), Kind: inlay.KindType, Type: "string"},
		{Text: "@TYPE@: int", Offset: endOf(t, sampleSrc, "x := 5", "x"), Kind: inlay.KindType, Type: "int"},
		{Text: "@TYPE@: []string", Offset: endOf(t, sampleSrc, "s :=", "s"), Kind: inlay.KindType, Type: "[]string"},
		{Text: "@TYPE@: func(n int) bool", Offset: endOf(t, sampleSrc, "f :=", "f"), Kind: inlay.KindType, Type: "func(n int) bool"},
		{Text: "@TYPE@: float64", Offset: endOf(t, sampleSrc, "x, y :=", "y"), Kind: inlay.KindType, Type: "float64"},
		{Text: "@TYPE@: int", Offset: endOf(t, sampleSrc, "_, z :=", "z"), Kind: inlay.KindType, Type: "int"},
		{Text: "@TYPE@: int", Offset: endOf(t, sampleSrc, "i, v := range", "i"), Kind: inlay.KindType, Type: "int"},
		{Text: "@TYPE@: string", Offset: endOf(t, sampleSrc, "i, v := range", "v"), Kind: inlay.KindType, Type: "string"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("hints mismatch (-want +got):\n%s", diff)
	}
}

func TestHints_ErrorTypesAreSkipped(t *testing.T) {
	t.Parallel()

	src := `package p

func run() {
	a := undefined
	b := []missing{}
	m := map[string]missing{}
	s := struct{ f missing }{}
	fn := func() (r struct{ g missing }) { return }
	ifaces := []interface{ M() missing }{}
	c := 1
	_, _, _, _, _, _, _ = a, b, m, s, fn, ifaces, c
}
`

	f, err := CheckFile("errors.go", []byte(src))
	require.NoError(t, err)
	assert.NotEmpty(t, f.Diagnostics())

	hints := language.Hints(f, inlay.StaticStyle(inlay.Style{}), nil)

	require.Len(t, hints, 1)
	assert.Equal(t, "@TYPE@:int", hints[0].Text)
	assert.Equal(t, endOf(t, src, "c := 1", "c"), hints[0].Offset)
}

func TestHints_ExcludeFilter(t *testing.T) {
	t.Parallel()

	f, err := CheckFile("sample.go", []byte(sampleSrc))
	require.NoError(t, err)

	filter, err := inlay.CompileFilter([]string{`kind == "constant"`, `kind == "range"`, `typeName startsWith "func"`})
	require.NoError(t, err)

	var names []string
	for _, h := range language.Hints(f, nil, filter) {
		names = append(names, h.Type)
	}

	assert.Equal(t, []string{"string", "int", "[]string", "float64", "int"}, names)
}

func TestInferType_ForeignDeclaration(t *testing.T) {
	t.Parallel()

	f, err := CheckFile("sample.go", []byte(sampleSrc))
	require.NoError(t, err)

	_, ok := f.InferType(foreignDecl{}).Type()
	assert.False(t, ok)
}

type foreignDecl struct{}

func (foreignDecl) DeclKind() inlay.DeclarationKind { return inlay.DeclVariable }
func (foreignDecl) NameIdent() (inlay.Ident, bool)  { return inlay.Ident{Name: "x", End: 1}, true }

func TestContainsInvalid(t *testing.T) {
	t.Parallel()

	invalid := types.Typ[types.Invalid]
	str := types.Typ[types.String]

	tests := []struct {
		name string
		typ  types.Type
		want bool
	}{
		{"basic", str, false},
		{"invalid", invalid, true},
		{"pointer", types.NewPointer(invalid), true},
		{"slice", types.NewSlice(str), false},
		{"array", types.NewArray(invalid, 2), true},
		{"chan", types.NewChan(types.SendRecv, invalid), true},
		{"map key", types.NewMap(invalid, str), true},
		{"map elem", types.NewMap(str, str), false},
		{
			"signature result",
			types.NewSignatureType(nil, nil, nil, nil,
				types.NewTuple(types.NewVar(0, nil, "", invalid)), false),
			true,
		},
		{"empty signature", types.NewSignatureType(nil, nil, nil, nil, nil, false), false},
		{"struct field", types.NewStruct([]*types.Var{types.NewField(0, nil, "f", invalid, false)}, nil), true},
		{"struct", types.NewStruct([]*types.Var{types.NewField(0, nil, "f", str, false)}, nil), false},
		{
			"signature result struct",
			types.NewSignatureType(nil, nil, nil, nil,
				types.NewTuple(types.NewVar(0, nil, "r",
					types.NewStruct([]*types.Var{types.NewField(0, nil, "g", invalid, false)}, nil))), false),
			true,
		},
		{"interface method", newInterface(invalid), true},
		{"slice of interface", types.NewSlice(newInterface(invalid)), true},
		{"interface", newInterface(str), false},
		{"empty interface", types.NewInterfaceType(nil, nil).Complete(), false},
		{"recursive named", newRecursiveNamed(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, containsInvalid(tt.typ))
		})
	}
}

// newInterface returns interface{ M() result }.
func newInterface(result types.Type) *types.Interface {
	sig := types.NewSignatureType(nil, nil, nil, nil,
		types.NewTuple(types.NewVar(0, nil, "", result)), false)

	return types.NewInterfaceType([]*types.Func{types.NewFunc(0, nil, "M", sig)}, nil).Complete()
}

// newRecursiveNamed returns type Node struct{ next *Node }.
func newRecursiveNamed() *types.Named {
	named := types.NewNamed(types.NewTypeName(0, nil, "Node", nil), nil, nil)
	named.SetUnderlying(types.NewStruct(
		[]*types.Var{types.NewField(0, nil, "next", types.NewPointer(named), false)}, nil))

	return named
}

func TestRenderCompact_Qualifier(t *testing.T) {
	t.Parallel()

	own := types.NewPackage("example.com/app", "app")
	strs := types.NewPackage("strings", "strings")
	other := types.NewPackage("example.com/lib/v2", "lib")

	named := func(pkg *types.Package, name string) types.Type {
		return types.NewNamed(types.NewTypeName(0, pkg, name, nil), types.Typ[types.Int], nil)
	}

	f := &File{Pkg: own, aliases: map[string]string{"strings": "str"}}

	assert.Equal(t, "Config", f.RenderCompact(named(own, "Config")))
	assert.Equal(t, "*str.Builder", f.RenderCompact(types.NewPointer(named(strs, "Builder"))))
	assert.Equal(t, "map[string]lib.Client", f.RenderCompact(types.NewMap(types.Typ[types.String], named(other, "Client"))))
}
