package inlay

import "strings"

// Builder turns declarations into type hints.
// It holds no mutable state and is safe for concurrent use.
type Builder struct {
	Inferrer Inferrer
	Renderer Renderer
	Styles   StyleSource
}

// NewBuilder creates a Builder. A nil styles uses DefaultStyle.
func NewBuilder(inferrer Inferrer, renderer Renderer, styles StyleSource) *Builder {
	if styles == nil {
		styles = StaticStyle(DefaultStyle())
	}

	return &Builder{
		Inferrer: inferrer,
		Renderer: renderer,
		Styles:   styles,
	}
}

// LocateTypeHint returns the type hint for node, placed right after its name.
// Nodes that are not name-bearing declarations yield no hints.
func (b *Builder) LocateTypeHint(node Node) []Hint {
	if node == nil || !node.DeclKind().Callable() {
		return nil
	}

	decl, ok := node.(Declaration)
	if !ok {
		return nil
	}

	ident, ok := decl.NameIdent()
	if !ok {
		return nil
	}

	return b.BuildTypeHint(decl, ident.End)
}

// BuildTypeHint returns a single type hint for decl at offset, or nothing when
// the declaration's type cannot be resolved.
func (b *Builder) BuildTypeHint(decl Declaration, offset int) []Hint {
	typ, ok := b.Inferrer.InferType(decl).Type()
	if !ok {
		return nil
	}

	style := b.Styles.TypeColonStyle()
	rendered := singleLine(b.Renderer.RenderCompact(typ))

	var sb strings.Builder

	sb.Grow(len(TypeInfoPrefix) + len(rendered) + 3)
	sb.WriteString(TypeInfoPrefix)

	if style.SpaceBeforeTypeColon {
		sb.WriteByte(' ')
	}

	sb.WriteByte(':')

	if style.SpaceAfterTypeColon {
		sb.WriteByte(' ')
	}

	sb.WriteString(rendered)

	return []Hint{{
		Text:   sb.String(),
		Offset: offset,
		Kind:   KindType,
		Type:   rendered,
	}}
}

// singleLine collapses runs of whitespace containing newlines into one space.
func singleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}

	return strings.Join(strings.Fields(s), " ")
}
