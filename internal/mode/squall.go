package mode

import (
	"github.com/dshills/squall/internal/bridge"
	"github.com/dshills/squall/internal/protocol"
)

// SquallMode serves the squall language through the analysis bridge.
// Each mode instance owns its own bridge and therefore its own unit
// cache.
type SquallMode struct {
	bridge *bridge.Bridge
}

// NewSquallMode returns a squall mode over a fresh bridge.
func NewSquallMode(opts ...bridge.Option) *SquallMode {
	return &SquallMode{bridge: bridge.New(opts...)}
}

// ID returns the language ID this mode owns.
func (m *SquallMode) ID() string { return "squall" }

// Validate returns the document's diagnostics.
func (m *SquallMode) Validate(doc protocol.TextDocumentItem) ([]protocol.Diagnostic, error) {
	return m.bridge.Validate(doc)
}

// Complete returns the completions at pos.
func (m *SquallMode) Complete(doc protocol.TextDocumentItem, pos protocol.Position) (*protocol.CompletionList, error) {
	return m.bridge.Complete(doc, pos)
}

// OnDocumentRemoved forwards to the bridge, which ignores it.
func (m *SquallMode) OnDocumentRemoved(doc protocol.TextDocumentItem) {
	m.bridge.OnDocumentRemoved(doc)
}

// Dispose forwards to the bridge, which holds nothing to release.
func (m *SquallMode) Dispose() {
	m.bridge.Dispose()
}
