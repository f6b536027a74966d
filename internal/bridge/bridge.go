// Package bridge connects the editor-facing language service to the
// Squall analysis engine. A Bridge keeps at most one compiled unit,
// rebuilt when a fixed wall-clock TTL elapses, and translates engine
// diagnostics and completion entries into editor-protocol shapes.
package bridge

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dshills/squall/internal/protocol"
)

// Bridge is the analysis facade: Validate and Complete are its only
// operations. Each Bridge owns an independent unit cache; instances are
// single-threaded and concurrent callers must construct their own.
type Bridge struct {
	cache    unitCache
	collapse bool
	limit    int
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithTTL sets the staleness threshold for the cached unit.
func WithTTL(ttl time.Duration) Option {
	return func(b *Bridge) {
		if ttl > 0 {
			b.cache.ttl = ttl
		}
	}
}

// WithClock substitutes the clock the cache measures staleness against.
// Tests use a fake clock; production uses the real one.
func WithClock(clock clockwork.Clock) Option {
	return func(b *Bridge) { b.cache.clock = clock }
}

// WithNativeSeverity turns off the default promotion of every
// diagnostic to error severity, letting the engine's own categories
// through as warning, hint, and information.
func WithNativeSeverity() Option {
	return func(b *Bridge) { b.collapse = false }
}

// WithCompletionLimit caps the number of completion items returned per
// request. Zero means no cap.
func WithCompletionLimit(n int) Option {
	return func(b *Bridge) { b.limit = n }
}

// New returns a Bridge with the default five second TTL, the real
// clock, and severity collapsing on.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		cache: unitCache{
			clock: clockwork.NewRealClock(),
			ttl:   DefaultStalenessTTL,
		},
		collapse: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Validate builds or reuses the unit for doc and returns its syntactic
// and semantic diagnostics, syntactic first. A document whose derived
// root file is absent from the unit yields an empty slice. Configuration
// and build failures propagate; the prior unit survives them.
func (b *Bridge) Validate(doc protocol.TextDocumentItem) ([]protocol.Diagnostic, error) {
	unit, err := b.cache.get(doc)
	if err != nil {
		return nil, err
	}
	return translateDiagnostics(unit, protocol.URIToFilePath(doc.URI), b.collapse), nil
}

// Complete builds or reuses the unit for doc and returns the completion
// items offered at pos. The list is always marked complete; a missing
// root file yields an empty list.
func (b *Bridge) Complete(doc protocol.TextDocumentItem, pos protocol.Position) (*protocol.CompletionList, error) {
	unit, err := b.cache.get(doc)
	if err != nil {
		return nil, err
	}
	return translateCompletions(unit, doc, pos, b.limit), nil
}

// OnDocumentRemoved is part of the language-mode contract. The cache is
// time-keyed, not document-keyed, so removal needs no action.
func (b *Bridge) OnDocumentRemoved(doc protocol.TextDocumentItem) {}

// Dispose is part of the language-mode contract. The cached unit holds
// no external resources, so there is nothing to release.
func (b *Bridge) Dispose() {}

// Builds reports how many units this bridge has constructed.
func (b *Bridge) Builds() int { return b.cache.builds }
