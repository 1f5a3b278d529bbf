// Package lsp implements a Language Server Protocol server that serves type
// inlay hints.
package lsp

import (
	"context"
	"errors"
	"sync"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/inlay"
	"github.com/rlch/inlay/language"
)

// Server implements the LSP Server interface for inlay hints.
type Server struct {
	client protocol.Client
	logger *zap.Logger

	// Document state
	mu        sync.RWMutex
	documents map[protocol.DocumentURI]*Document

	// Settings read by every hint request.
	settings *inlay.Settings

	// cfgMu guards the config layers merged into settings.
	cfgMu         sync.Mutex
	projectConfig *inlay.Config
	clientConfig  *clientSettings
	pinnedConfig  bool

	workspaceRoot string
}

// Document represents an open document in the server.
type Document struct {
	URI     protocol.DocumentURI
	Version int32
	Content string

	// Unit is the analyzed document; nil when analysis failed.
	Unit language.Unit

	// Err is the analysis error, if any.
	Err error
}

// NewServer creates a new LSP server.
// A non-nil cfg pins the project config; otherwise it is loaded from the
// workspace root on initialize.
func NewServer(client protocol.Client, logger *zap.Logger, cfg *inlay.Config) *Server {
	settings, err := inlay.NewSettings(cfg)
	if err != nil {
		logger.Warn("Invalid config, using defaults", zap.Error(err))

		settings, _ = inlay.NewSettings(nil)
	}

	return &Server{
		client:        client,
		logger:        logger,
		documents:     make(map[protocol.DocumentURI]*Document),
		settings:      settings,
		projectConfig: cfg,
		pinnedConfig:  cfg != nil,
	}
}

// Settings returns the live settings used for hints.
func (s *Server) Settings() *inlay.Settings {
	return s.settings
}

// Initialize handles the initialize request.
func (s *Server) Initialize(_ context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s.logger.Info("Initialize", zap.Any("params", params))

	// Extract workspace root from params
	if params.RootURI != "" {
		s.workspaceRoot = URIToPath(params.RootURI)
	} else if params.RootPath != "" {
		s.workspaceRoot = params.RootPath
	}

	if s.workspaceRoot != "" {
		s.logger.Info("Workspace root", zap.String("root", s.workspaceRoot))
		s.reloadProjectConfig()
	}

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			// Full document sync - client sends entire content on change
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save: &protocol.SaveOptions{
					IncludeText: false,
				},
			},
			// Note: inlayHintProvider is not part of go.lsp.dev/protocol
			// v0.12.0; it is registered dynamically in Initialized.
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "inlay-lsp",
			Version: "0.1.0",
		},
	}, nil
}

// Initialized handles the initialized notification.
func (s *Server) Initialized(ctx context.Context, _ *protocol.InitializedParams) error {
	s.logger.Info("Initialized")

	err := s.client.RegisterCapability(ctx, &protocol.RegistrationParams{
		Registrations: []protocol.Registration{
			{
				ID:     MethodInlayHint,
				Method: MethodInlayHint,
				RegisterOptions: map[string]any{
					"documentSelector": []protocol.DocumentFilter{{Language: "go"}},
				},
			},
		},
	})
	if err != nil {
		s.logger.Warn("Failed to register inlay hint capability", zap.Error(err))
	}

	return nil
}

// Shutdown handles the shutdown request.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info("Shutdown")

	return nil
}

// Exit handles the exit notification.
func (s *Server) Exit(_ context.Context) error {
	s.logger.Info("Exit")
	// The main loop should handle exiting after this
	return nil
}

// DidOpen handles textDocument/didOpen notifications.
func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.logger.Info("DidOpen", zap.String("uri", string(params.TextDocument.URI)))

	doc := &Document{
		URI:     params.TextDocument.URI,
		Version: params.TextDocument.Version,
		Content: params.TextDocument.Text,
	}

	s.analyze(ctx, doc)

	s.mu.Lock()
	s.documents[params.TextDocument.URI] = doc
	s.mu.Unlock()

	s.publishDiagnostics(ctx, doc)

	return nil
}

// DidChange handles textDocument/didChange notifications.
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.logger.Info("DidChange",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Int32("version", params.TextDocument.Version))

	old, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		s.logger.Warn("DidChange for unknown document", zap.String("uri", string(params.TextDocument.URI)))

		return nil
	}

	// Full sync - take the last content change (should only be one with full sync)
	if len(params.ContentChanges) == 0 {
		return nil
	}

	doc := &Document{
		URI:     old.URI,
		Version: params.TextDocument.Version,
		Content: params.ContentChanges[len(params.ContentChanges)-1].Text,
	}

	s.analyze(ctx, doc)

	s.mu.Lock()
	s.documents[params.TextDocument.URI] = doc
	s.mu.Unlock()

	s.publishDiagnostics(ctx, doc)

	return nil
}

// DidClose handles textDocument/didClose notifications.
func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.logger.Info("DidClose", zap.String("uri", string(params.TextDocument.URI)))

	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	// Clear diagnostics for closed document
	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	if err != nil {
		s.logger.Error("Failed to clear diagnostics", zap.Error(err))
	}

	return nil
}

// DidSave handles textDocument/didSave notifications.
func (s *Server) DidSave(_ context.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.logger.Info("DidSave", zap.String("uri", string(params.TextDocument.URI)))

	if isConfigFile(URIToPath(params.TextDocument.URI)) {
		s.reloadProjectConfig()
	}

	return nil
}

// analyze type-checks doc with the language registered for its extension.
func (s *Server) analyze(ctx context.Context, doc *Document) {
	unit, err := language.Analyze(ctx, language.Request{
		Path:    URIToPath(doc.URI),
		Content: []byte(doc.Content),
		Loader:  s.loader(),
	})
	if err != nil {
		level := zap.WarnLevel
		if errors.Is(err, language.ErrUnsupportedFile) {
			level = zap.DebugLevel
		}

		s.logger.Log(level, "Analysis failed", zap.String("uri", string(doc.URI)), zap.Error(err))
		doc.Err = err

		return
	}

	doc.Unit = unit
}

// getDocument returns a document by URI (read-locked).
func (s *Server) getDocument(uri protocol.DocumentURI) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[uri]

	return doc, ok
}
