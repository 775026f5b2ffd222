package lsp

import (
	"encoding/json"
	"time"

	"hkanno/internal/config"
)

// ConfigLoader loads hkanno.toml starting from a directory.
type ConfigLoader func(startDir string) (config.Config, error)

// applyWorkspaceConfig reads hkanno.toml above the workspace root. Editor
// settings sent later override it.
func (s *Server) applyWorkspaceConfig(root string) {
	if s.loadConfig == nil || root == "" {
		return
	}
	cfg, err := s.loadConfig(root)
	if err != nil {
		s.logf("config: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hints = cfg.Hints()
	s.warningsAsErrors = cfg.Check.WarningsAsErrors
	if cfg.LSP.MaxDiagnostics > 0 {
		s.maxDiagnostics = cfg.LSP.MaxDiagnostics
	}
	if d := cfg.Debounce(); d > 0 {
		s.debounce = d
	}
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	s.applySettings(params.Settings)
	return nil
}

func (s *Server) applySettings(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.logf("ignoring settings: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	hints := settings.Hkanno.InlayHints
	if hints.Time != nil {
		s.hints.Time = *hints.Time
	}
	if hints.Event != nil {
		s.hints.Event = *hints.Event
	}
	if hints.Args != nil {
		s.hints.Args = *hints.Args
	}
	if settings.Hkanno.LSP.Trace != nil {
		s.traceLSP = *settings.Hkanno.LSP.Trace
	}
	if n := settings.Hkanno.LSP.MaxDiagnostics; n != nil && *n > 0 {
		s.maxDiagnostics = *n
	}
}

// Debounce returns the current diagnostics delay.
func (s *Server) Debounce() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debounce
}
