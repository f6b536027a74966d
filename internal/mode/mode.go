// Package mode defines the language-mode contract and the registry that
// dispatches embedded documents to the mode owning their language. A
// mode is the per-language unit of validation and completion; the
// registry is the shell the server talks to.
package mode

import (
	"github.com/dshills/squall/internal/protocol"
)

// Mode is one embedded language's service surface. Validate and
// Complete are the only analysis operations; OnDocumentRemoved and
// Dispose are lifecycle hooks a mode may ignore.
type Mode interface {
	ID() string
	Validate(doc protocol.TextDocumentItem) ([]protocol.Diagnostic, error)
	Complete(doc protocol.TextDocumentItem, pos protocol.Position) (*protocol.CompletionList, error)
	OnDocumentRemoved(doc protocol.TextDocumentItem)
	Dispose()
}

// Registry holds modes in registration order and dispatches documents
// by language ID. Unknown languages get empty results, never errors.
type Registry struct {
	order []Mode
	byID  map[string]Mode
}

// NewRegistry returns a registry over the given modes. A later mode
// with a duplicate ID is ignored.
func NewRegistry(modes ...Mode) *Registry {
	r := &Registry{byID: make(map[string]Mode, len(modes))}
	for _, m := range modes {
		if _, exists := r.byID[m.ID()]; exists {
			continue
		}
		r.order = append(r.order, m)
		r.byID[m.ID()] = m
	}
	return r
}

// Get returns the mode registered for id.
func (r *Registry) Get(id string) (Mode, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// IDs returns the registered language IDs in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	for i, m := range r.order {
		ids[i] = m.ID()
	}
	return ids
}

// Validate dispatches doc to the mode owning its language. A document
// in an unregistered language validates clean.
func (r *Registry) Validate(doc protocol.TextDocumentItem) ([]protocol.Diagnostic, error) {
	m, ok := r.byID[doc.LanguageID]
	if !ok {
		return []protocol.Diagnostic{}, nil
	}
	return m.Validate(doc)
}

// Complete dispatches doc to the mode owning its language. A document
// in an unregistered language gets an empty complete list.
func (r *Registry) Complete(doc protocol.TextDocumentItem, pos protocol.Position) (*protocol.CompletionList, error) {
	m, ok := r.byID[doc.LanguageID]
	if !ok {
		return &protocol.CompletionList{Items: []protocol.CompletionItem{}}, nil
	}
	return m.Complete(doc, pos)
}

// OnDocumentRemoved notifies the mode owning doc's language.
func (r *Registry) OnDocumentRemoved(doc protocol.TextDocumentItem) {
	if m, ok := r.byID[doc.LanguageID]; ok {
		m.OnDocumentRemoved(doc)
	}
}

// Dispose disposes every registered mode.
func (r *Registry) Dispose() {
	for _, m := range r.order {
		m.Dispose()
	}
}
