package inlay

import "sort"

// Collect locates type hints for every node, drops hints the filter excludes,
// and returns the rest ordered by offset.
func Collect(b *Builder, nodes []Node, filter *Filter) []Hint {
	var hints []Hint

	for _, node := range nodes {
		located := b.LocateTypeHint(node)
		if len(located) == 0 {
			continue
		}

		if filter != nil {
			decl, _ := node.(Declaration)
			ident, _ := decl.NameIdent()

			located = dropExcluded(located, filter, ident.Name, node.DeclKind())
		}

		hints = append(hints, located...)
	}

	sort.SliceStable(hints, func(i, j int) bool {
		return hints[i].Offset < hints[j].Offset
	})

	return hints
}

func dropExcluded(hints []Hint, filter *Filter, name string, kind DeclarationKind) []Hint {
	kept := hints[:0]

	for _, h := range hints {
		if !filter.Excludes(name, kind, h.Type) {
			kept = append(kept, h)
		}
	}

	return kept
}

// InRange returns the hints whose offset lies in [start, end].
func InRange(hints []Hint, start, end int) []Hint {
	var out []Hint

	for _, h := range hints {
		if h.Offset >= start && h.Offset <= end {
			out = append(out, h)
		}
	}

	return out
}
