package lsp

import (
	"path/filepath"
	"slices"
	"strings"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/rlch/inlay"
)

// URIToPath converts a document URI to a file system path.
// Non-file URIs are returned unchanged.
func URIToPath(u protocol.DocumentURI) string {
	if !strings.HasPrefix(string(u), uri.FileScheme+"://") {
		return string(u)
	}

	parsed, err := uri.Parse(string(u))
	if err != nil {
		return strings.TrimPrefix(string(u), uri.FileScheme+"://")
	}

	return parsed.Filename()
}

// PathToURI converts a file system path to a document URI.
func PathToURI(path string) protocol.DocumentURI {
	return protocol.DocumentURI(uri.File(path))
}

// isConfigFile reports whether path names a project config file.
func isConfigFile(path string) bool {
	return slices.Contains(inlay.DefaultConfigNames, filepath.Base(path))
}

// clientSettings are the overrides an editor sends in
// workspace/didChangeConfiguration, under the "inlay" key.
type clientSettings struct {
	SpaceBeforeTypeColon *bool    `json:"spaceBeforeTypeColon,omitempty"`
	SpaceAfterTypeColon  *bool    `json:"spaceAfterTypeColon,omitempty"`
	Exclude              []string `json:"exclude,omitempty"`
	Loader               string   `json:"loader,omitempty"`
}

// mergeConfig layers client overrides on top of the project config.
func mergeConfig(project *inlay.Config, client *clientSettings) *inlay.Config {
	merged := &inlay.Config{}
	if project != nil {
		*merged = *project
	}

	if client == nil {
		return merged
	}

	style := merged.StyleOrDefault()

	if client.SpaceBeforeTypeColon != nil {
		style.SpaceBeforeTypeColon = *client.SpaceBeforeTypeColon
	}

	if client.SpaceAfterTypeColon != nil {
		style.SpaceAfterTypeColon = *client.SpaceAfterTypeColon
	}

	merged.Style = &style

	if client.Exclude != nil {
		merged.Exclude = client.Exclude
	}

	if client.Loader != "" {
		merged.Loader = client.Loader
	}

	return merged
}
