// Package langsvc implements the editor-facing providers over parsed hkanno
// documents: completion, hover, semantic tokens, inlay hints and signature
// help. Providers are pure, synchronous and linear in the document size; the
// language server and the terminal editor both call into them.
package langsvc
