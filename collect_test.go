package inlay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/inlay"
)

func TestCollect(t *testing.T) {
	t.Parallel()

	b, _ := newBuilder(inlay.Style{SpaceAfterTypeColon: true})

	nodes := []inlay.Node{
		&fakeDecl{kind: inlay.DeclVariable, name: "late", start: 40, typ: "string"},
		plainNode{},
		&fakeDecl{kind: inlay.DeclConstant, name: "limit", start: 10, typ: "untyped int"},
		&fakeDecl{kind: inlay.DeclVariable, name: "bad", start: 20, broken: true},
		&fakeDecl{kind: inlay.DeclFunction, name: "fn", start: 30, typ: "func() error"},
	}

	hints := inlay.Collect(b, nodes, nil)
	require.Len(t, hints, 3)
	assert.Equal(t, []int{15, 32, 44}, offsets(hints))

	filter, err := inlay.CompileFilter([]string{`kind == "constant"`})
	require.NoError(t, err)

	hints = inlay.Collect(b, nodes, filter)
	assert.Equal(t, []int{32, 44}, offsets(hints))
}

func TestInRange(t *testing.T) {
	t.Parallel()

	hints := []inlay.Hint{{Offset: 1}, {Offset: 5}, {Offset: 9}, {Offset: 12}}

	assert.Equal(t, []int{5, 9}, offsets(inlay.InRange(hints, 5, 9)))
	assert.Empty(t, inlay.InRange(hints, 13, 20))
}

func offsets(hints []inlay.Hint) []int {
	out := make([]int, 0, len(hints))
	for _, h := range hints {
		out = append(out, h.Offset)
	}

	return out
}
