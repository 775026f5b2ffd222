package lsp

import (
	"encoding/json"

	"hkanno/internal/format"
	"hkanno/internal/langsvc"
)

// LSP completion item kinds.
const (
	itemFunction = 3
	itemValue    = 12
	itemKeyword  = 14
	itemSnippet  = 15
)

func (s *Server) decodePosition(msg *rpcMessage) (textDocumentPositionParams, bool) {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return params, false
	}
	params.TextDocument.URI = canonicalURI(params.TextDocument.URI)
	return params, true
}

func markdown(value string) *markupContent {
	if value == "" {
		return nil
	}
	return &markupContent{Kind: "markdown", Value: value}
}

func (s *Server) handleHover(msg *rpcMessage) error {
	params, ok := s.decodePosition(msg)
	if !ok {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	doc, _, ok := s.snapshot(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	res := langsvc.Hover(doc, cursorFor(params.Position))
	if res == nil {
		return s.sendResponse(msg.ID, nil)
	}
	rng := rangeFor(res.Range)
	return s.sendResponse(msg.ID, hover{
		Contents: markupContent{Kind: "markdown", Value: res.Contents},
		Range:    &rng,
	})
}

func (s *Server) handleCompletion(msg *rpcMessage) error {
	params, ok := s.decodePosition(msg)
	if !ok {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	doc, _, ok := s.snapshot(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, completionList{Items: []completionItem{}})
	}
	suggestions := langsvc.Complete(doc, cursorFor(params.Position))
	items := make([]completionItem, 0, len(suggestions))
	for _, sug := range suggestions {
		insertFormat := 1
		if sug.Snippet {
			insertFormat = 2
		}
		items = append(items, completionItem{
			Label:            sug.Label,
			Kind:             completionKind(sug.Kind),
			Detail:           sug.Detail,
			Documentation:    markdown(sug.Documentation),
			FilterText:       sug.FilterText,
			InsertTextFormat: insertFormat,
			TextEdit:         &textEdit{Range: rangeFor(sug.Range), NewText: sug.InsertText},
		})
	}
	return s.sendResponse(msg.ID, completionList{Items: items})
}

func completionKind(k langsvc.SuggestionKind) int {
	switch k {
	case langsvc.SuggestKeyword:
		return itemKeyword
	case langsvc.SuggestValue:
		return itemValue
	case langsvc.SuggestSnippet:
		return itemSnippet
	case langsvc.SuggestFunction:
		return itemFunction
	}
	return 0
}

func (s *Server) handleSignatureHelp(msg *rpcMessage) error {
	params, ok := s.decodePosition(msg)
	if !ok {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	doc, _, ok := s.snapshot(params.TextDocument.URI)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	help := langsvc.SignatureHelp(doc, cursorFor(params.Position))
	if help == nil {
		return s.sendResponse(msg.ID, nil)
	}
	out := signatureHelp{
		Signatures:      make([]signatureInformation, 0, len(help.Signatures)),
		ActiveSignature: help.ActiveSignature,
		ActiveParameter: help.ActiveParameter,
	}
	for _, sig := range help.Signatures {
		info := signatureInformation{Label: sig.Label, Documentation: markdown(sig.Documentation)}
		for _, p := range sig.Parameters {
			info.Parameters = append(info.Parameters, parameterInformation{Label: p.Label, Documentation: markdown(p.Documentation)})
		}
		out.Signatures = append(out.Signatures, info)
	}
	return s.sendResponse(msg.ID, out)
}

func (s *Server) handleInlayHint(msg *rpcMessage) error {
	var params inlayHintParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	doc, _, ok := s.snapshot(canonicalURI(params.TextDocument.URI))
	if !ok {
		return s.sendResponse(msg.ID, []inlayHint{})
	}
	s.mu.Lock()
	opts := s.hints
	s.mu.Unlock()
	hints := langsvc.InlayHintsWith(doc, params.Range.Start.Line+1, params.Range.End.Line+1, opts)
	out := make([]inlayHint, 0, len(hints))
	for _, h := range hints {
		out = append(out, inlayHint{
			Position:     positionFor(h.Pos),
			Label:        h.Label,
			Kind:         int(h.Kind),
			PaddingRight: true,
		})
	}
	return s.sendResponse(msg.ID, out)
}

func (s *Server) handleSemanticTokens(msg *rpcMessage) error {
	var params semanticTokensParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	doc, _, ok := s.snapshot(canonicalURI(params.TextDocument.URI))
	if !ok {
		return s.sendResponse(msg.ID, semanticTokens{Data: []uint32{}})
	}
	data := langsvc.SemanticTokens(doc)
	if data == nil {
		data = []uint32{}
	}
	return s.sendResponse(msg.ID, semanticTokens{Data: data})
}

func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	_, text, ok := s.snapshot(canonicalURI(params.TextDocument.URI))
	if !ok {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	formatted := format.Text(text)
	if formatted == text {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	return s.sendResponse(msg.ID, []textEdit{{Range: fullRange(text), NewText: formatted}})
}
