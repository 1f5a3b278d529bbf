package lsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/inlay/language"
)

// publishDiagnostics converts analysis diagnostics to LSP format and publishes them.
func (s *Server) publishDiagnostics(ctx context.Context, doc *Document) {
	if doc.Unit == nil {
		return
	}

	found := doc.Unit.Diagnostics()
	diagnostics := make([]protocol.Diagnostic, 0, len(found))

	for _, d := range found {
		lspDiag := convertDiagnostic(doc.Content, d)
		s.logger.Debug("Publishing diagnostic",
			zap.Int("start", d.Start),
			zap.Uint32("lsp.start.line", lspDiag.Range.Start.Line),
			zap.Uint32("lsp.start.char", lspDiag.Range.Start.Character),
			zap.String("message", d.Message))
		diagnostics = append(diagnostics, lspDiag)
	}

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     uint32(doc.Version), //nolint:gosec // LSP version numbers are always non-negative
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.logger.Error("Failed to publish diagnostics", zap.Error(err))
	}
}

// convertDiagnostic converts a language.Diagnostic to an LSP protocol.Diagnostic.
func convertDiagnostic(content string, d language.Diagnostic) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    offsetsToRange(content, d.Start, d.End),
		Severity: convertSeverity(d.Severity),
		Source:   d.Source,
		Message:  d.Message,
	}
}

// convertSeverity converts language severity to LSP severity.
func convertSeverity(sev language.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case language.SeverityError:
		return protocol.DiagnosticSeverityError
	case language.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case language.SeverityInformation:
		return protocol.DiagnosticSeverityInformation
	case language.SeverityHint:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}
