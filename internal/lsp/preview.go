package lsp

import (
	"hkanno/internal/engine"
	"hkanno/internal/hkanno"
	"hkanno/internal/panesync"
)

// handleSyncPreview maps a source position to the line of the same
// annotation in the rendered preview. The preview is rebuilt only when the
// document text changed since the last request.
func (s *Server) handleSyncPreview(msg *rpcMessage) error {
	params, ok := s.decodePosition(msg)
	if !ok {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	uri := params.TextDocument.URI
	_, text, ok := s.snapshot(uri)
	if !ok {
		return s.sendResponse(msg.ID, syncPreviewResult{})
	}

	cache := s.cachedPreview(uri, text)
	if cache == nil {
		ticket := s.previews.Begin(uri, text)
		value := hkanno.Project(hkanno.Hkanno{Ptr: engine.DefaultPtr}, text)
		preview, err := s.engine.Preview(s.baseCtx, uriToPath(uri), value)
		if err != nil {
			s.logf("preview failed: %v", err)
			return s.sendError(msg.ID, codeRequestFailed, "preview failed: "+err.Error())
		}
		cache = &previewCache{text: preview, source: text}
		cache.sync.UpdateIndex(preview)
		s.storePreview(uri, ticket, cache)
	}

	line, found := cache.sync.OnSourceCursorMove(text, params.Position.Line+1)
	return s.sendResponse(msg.ID, syncPreviewResult{Line: line, Found: found, Preview: cache.text})
}

func (s *Server) cachedPreview(uri, text string) *previewCache {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok || doc.preview == nil || doc.preview.source != text {
		return nil
	}
	return doc.preview
}

// storePreview keeps the result only while it is the newest request for a
// document whose text has not moved on.
func (s *Server) storePreview(uri string, ticket panesync.Ticket, cache *previewCache) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok || !s.previews.Accept(ticket, uri, doc.text) {
		return
	}
	doc.preview = cache
}
