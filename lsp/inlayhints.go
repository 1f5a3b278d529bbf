package lsp

import (
	"context"
	"fmt"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/inlay"
	"github.com/rlch/inlay/language"
)

// Inlay hints are LSP 3.17; go.lsp.dev/protocol v0.12.0 has neither the
// method nor its types, so they are declared here and dispatched by Handler.

// MethodInlayHint is the textDocument/inlayHint request.
const MethodInlayHint = "textDocument/inlayHint"

// InlayHintParams are the parameters of a textDocument/inlayHint request.
type InlayHintParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Range        protocol.Range                  `json:"range"`
}

// InlayHintKind is the kind of an inlay hint.
type InlayHintKind uint32

const (
	// InlayHintKindType is for type annotations.
	InlayHintKindType InlayHintKind = 1
	// InlayHintKindParameter is for parameter names.
	InlayHintKindParameter InlayHintKind = 2
)

// InlayHint is a label drawn inline by the editor.
type InlayHint struct {
	Position     protocol.Position `json:"position"`
	Label        string            `json:"label"`
	Kind         InlayHintKind     `json:"kind,omitempty"`
	PaddingLeft  bool              `json:"paddingLeft,omitempty"`
	PaddingRight bool              `json:"paddingRight,omitempty"`
}

// Handler returns the JSON-RPC handler for s: the protocol.Server methods plus
// requests protocol v0.12.0 does not dispatch.
func Handler(s *Server) jsonrpc2.Handler {
	return protocol.ServerHandler(s, s.handleExtension)
}

func (s *Server) handleExtension(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case MethodInlayHint:
		var params InlayHintParams

		err := json.Unmarshal(req.Params(), &params)
		if err != nil {
			return reply(ctx, nil, fmt.Errorf("%s: %w", jsonrpc2.ErrInvalidParams, err))
		}

		hints, err := s.InlayHint(ctx, &params)

		return reply(ctx, hints, err)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

// InlayHint handles textDocument/inlayHint requests.
func (s *Server) InlayHint(_ context.Context, params *InlayHintParams) ([]InlayHint, error) {
	s.logger.Debug("InlayHint",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("start.line", params.Range.Start.Line),
		zap.Uint32("end.line", params.Range.End.Line))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok || doc.Unit == nil {
		return []InlayHint{}, nil
	}

	hints := language.Hints(doc.Unit, s.settings, s.settings.Filter())

	if params.Range != (protocol.Range{}) {
		start, end := rangeToOffsets(doc.Content, params.Range)
		hints = inlay.InRange(hints, start, end)
	}

	result := make([]InlayHint, 0, len(hints))
	for _, h := range hints {
		result = append(result, convertHint(doc.Content, h))
	}

	return result, nil
}

// convertHint places a hint in the document and strips the type marker.
func convertHint(content string, h inlay.Hint) InlayHint {
	kind, label := inlay.Classify(h)

	return InlayHint{
		Position: offsetToPosition(content, h.Offset),
		Label:    label,
		Kind:     convertHintKind(kind),
	}
}

func convertHintKind(kind inlay.HintKind) InlayHintKind {
	switch kind {
	case inlay.KindType:
		return InlayHintKindType
	case inlay.KindParameter:
		return InlayHintKindParameter
	case inlay.KindUnknown:
		return 0
	default:
		return 0
	}
}
