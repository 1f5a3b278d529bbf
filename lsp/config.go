package lsp

import (
	"context"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/inlay"
)

// settingsSection is the key under which editors send inlay settings.
const settingsSection = "inlay"

// DidChangeConfiguration handles workspace/didChangeConfiguration.
// Settings may be sent as {"inlay": {...}} or as the bare object.
func (s *Server) DidChangeConfiguration(_ context.Context, params *protocol.DidChangeConfigurationParams) error {
	s.logger.Info("DidChangeConfiguration")

	if params == nil || params.Settings == nil {
		return nil
	}

	client, err := decodeClientSettings(params.Settings)
	if err != nil {
		s.logger.Warn("Ignoring malformed settings", zap.Error(err))

		return nil
	}

	s.cfgMu.Lock()
	s.clientConfig = client
	s.cfgMu.Unlock()

	s.applyConfig()

	return nil
}

// DidChangeWatchedFiles handles workspace/didChangeWatchedFiles.
func (s *Server) DidChangeWatchedFiles(_ context.Context, params *protocol.DidChangeWatchedFilesParams) error {
	for _, change := range params.Changes {
		if isConfigFile(URIToPath(protocol.DocumentURI(change.URI))) {
			s.logger.Info("Config file changed", zap.String("uri", string(change.URI)))
			s.reloadProjectConfig()

			return nil
		}
	}

	return nil
}

func decodeClientSettings(raw any) (*clientSettings, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	var wrapped map[string]json.RawMessage

	err = json.Unmarshal(data, &wrapped)
	if err != nil {
		return nil, err
	}

	if section, ok := wrapped[settingsSection]; ok {
		data = section
	}

	var client clientSettings

	err = json.Unmarshal(data, &client)
	if err != nil {
		return nil, err
	}

	return &client, nil
}

// reloadProjectConfig reads the config nearest to the workspace root.
func (s *Server) reloadProjectConfig() {
	s.cfgMu.Lock()

	if s.pinnedConfig || s.workspaceRoot == "" {
		s.cfgMu.Unlock()

		return
	}

	cfg, err := inlay.LoadConfigOrDefault(s.workspaceRoot)
	if err != nil {
		s.cfgMu.Unlock()
		s.logger.Warn("Failed to load config", zap.String("root", s.workspaceRoot), zap.Error(err))

		return
	}

	s.projectConfig = cfg
	s.cfgMu.Unlock()

	s.applyConfig()
}

// applyConfig merges the config layers into the live settings.
func (s *Server) applyConfig() {
	s.cfgMu.Lock()
	merged := mergeConfig(s.projectConfig, s.clientConfig)
	s.cfgMu.Unlock()

	err := s.settings.Apply(merged)
	if err != nil {
		s.logger.Warn("Invalid settings, keeping previous", zap.Error(err))

		return
	}

	style := s.settings.TypeColonStyle()
	s.logger.Info("Settings applied",
		zap.Bool("spaceBeforeTypeColon", style.SpaceBeforeTypeColon),
		zap.Bool("spaceAfterTypeColon", style.SpaceAfterTypeColon),
		zap.Strings("exclude", merged.Exclude),
		zap.String("loader", merged.LoaderOrDefault()))
}

// loader returns the type-checking strategy for new analyses.
func (s *Server) loader() string {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()

	return mergeConfig(s.projectConfig, s.clientConfig).LoaderOrDefault()
}
