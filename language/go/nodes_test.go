package golang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/inlay"
)

const sampleSrc = `package sample

const answer = 42

var greeting = "hi"

var explicit int = 3

func run() {
	x := 5
	s := []string{"a"}
	f := func(n int) bool { return n > 0 }
	x, y := 6, 7.5
	_, z := 1, 2
	for i, v := range s {
		_, _ = i, v
	}
	_, _, _ = f, y, z
	_ = x
}
`

// endOf returns the offset right after name in the first occurrence of marker.
func endOf(t *testing.T, src, marker, name string) int {
	t.Helper()

	idx := strings.Index(src, marker)
	require.GreaterOrEqual(t, idx, 0, "marker %q not found", marker)

	return idx + strings.Index(marker, name) + len(name)
}

type declSummary struct {
	name string
	kind inlay.DeclarationKind
}

func summarize(nodes []inlay.Node) []declSummary {
	out := make([]declSummary, 0, len(nodes))

	for _, n := range nodes {
		decl, ok := n.(inlay.Declaration)
		if !ok {
			continue
		}

		ident, ok := decl.NameIdent()
		if !ok {
			ident.Name = "_"
		}

		out = append(out, declSummary{name: ident.Name, kind: n.DeclKind()})
	}

	return out
}

func TestNodes(t *testing.T) {
	t.Parallel()

	f, err := CheckFile("sample.go", []byte(sampleSrc))
	require.NoError(t, err)
	require.Empty(t, f.Diagnostics())

	got := summarize(f.Nodes())

	assert.Equal(t, []declSummary{
		{"answer", inlay.DeclConstant},
		{"greeting", inlay.DeclVariable},
		{"x", inlay.DeclVariable},
		{"s", inlay.DeclVariable},
		{"f", inlay.DeclFunction},
		{"y", inlay.DeclVariable},
		{"_", inlay.DeclVariable},
		{"z", inlay.DeclVariable},
		{"i", inlay.DeclRangeVariable},
		{"v", inlay.DeclRangeVariable},
	}, got)
}

func TestNodes_NameIdentOffsets(t *testing.T) {
	t.Parallel()

	f, err := CheckFile("sample.go", []byte(sampleSrc))
	require.NoError(t, err)

	for _, n := range f.Nodes() {
		decl, ok := n.(*Decl)
		require.True(t, ok)

		ident, ok := decl.NameIdent()
		if !ok {
			continue
		}

		assert.Equal(t, ident.Name, sampleSrc[ident.Start:ident.End])
	}
}

func TestNodes_BlankIdentifierHasNoName(t *testing.T) {
	t.Parallel()

	f, err := CheckFile("blank.go", []byte("package p\n\nvar _ = 1\n"))
	require.NoError(t, err)

	nodes := f.Nodes()
	require.Len(t, nodes, 1)

	decl, ok := nodes[0].(inlay.Declaration)
	require.True(t, ok)

	_, ok = decl.NameIdent()
	assert.False(t, ok)
}

func TestNodes_ParseErrorStillYieldsDeclarations(t *testing.T) {
	t.Parallel()

	src := "package p\n\nfunc f() {\n\ta := 1\n\t_ = a\n\tb := \n}\n"

	f, err := CheckFile("broken.go", []byte(src))
	require.NoError(t, err)
	assert.NotEmpty(t, f.Diagnostics())

	names := summarize(f.Nodes())
	assert.Contains(t, names, declSummary{"a", inlay.DeclVariable})
}
