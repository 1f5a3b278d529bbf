package inlay

import "strings"

// TypeInfoPrefix marks hint text as a type hint for display pipelines that
// only see the text. Consumers strip it before drawing.
const TypeInfoPrefix = "@TYPE@"

// HintKind tags the semantic kind of a hint.
type HintKind int

const (
	// KindUnknown is the zero value; Classify falls back to the text prefix.
	KindUnknown HintKind = iota
	// KindType is an inferred-type hint drawn after a declaration name.
	KindType
	// KindParameter is a parameter-name hint drawn before an argument.
	KindParameter
)

func (k HintKind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindParameter:
		return "parameter"
	case KindUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Hint is a label to draw at a byte offset in the source.
type Hint struct {
	// Text is the full label, including TypeInfoPrefix for type hints.
	Text string `json:"text"`
	// Offset is the byte offset the label is drawn at.
	Offset int `json:"offset"`
	// Kind tags the hint explicitly.
	Kind HintKind `json:"kind"`
	// Type is the rendered type alone, without prefix or colon.
	Type string `json:"type,omitempty"`
}

// Classify returns the hint's kind and the label to draw.
// An explicit Kind wins; otherwise text starting with TypeInfoPrefix is a
// type hint. The prefix is stripped from type labels.
func Classify(h Hint) (HintKind, string) {
	label, hasPrefix := strings.CutPrefix(h.Text, TypeInfoPrefix)

	switch h.Kind {
	case KindType:
		return KindType, label
	case KindParameter:
		return KindParameter, h.Text
	case KindUnknown:
		if hasPrefix {
			return KindType, label
		}
	}

	return KindParameter, h.Text
}
