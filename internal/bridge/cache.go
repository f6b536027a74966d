package bridge

import (
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"

	"github.com/dshills/squall/internal/project"
	"github.com/dshills/squall/internal/protocol"
	"github.com/dshills/squall/internal/squall"
)

// DefaultStalenessTTL is how long a built unit stays fresh. Freshness is
// wall-clock elapsed time only: an edit inside the window is served the
// stale unit. This is the documented cache policy, not an oversight; a
// content-keyed cache (see the fingerprint the cache already records) is
// the stricter alternative if editing semantics ever demand it.
const DefaultStalenessTTL = 5 * time.Second

// unitCache owns at most one compiled unit. A rebuild fully replaces the
// prior unit; a failed build leaves it untouched. Not safe for
// concurrent use: each Bridge owns its own cache and the bridge contract
// is one request at a time per instance.
type unitCache struct {
	clock clockwork.Clock
	ttl   time.Duration

	unit    *squall.Unit
	builtAt time.Time
	builds  int

	// Informational per-build identity. The fingerprint is the xxhash of
	// the text the unit was built from; it never participates in the
	// staleness decision.
	buildID     uuid.UUID
	fingerprint uint64
}

// get returns the cached unit, rebuilding first when none is cached or
// the TTL has elapsed. Resolution and build errors propagate to the
// caller; the previous unit, if any, survives them.
func (c *unitCache) get(doc protocol.TextDocumentItem) (*squall.Unit, error) {
	if c.unit != nil && c.clock.Since(c.builtAt) < c.ttl {
		return c.unit, nil
	}

	path := protocol.URIToFilePath(doc.URI)
	if path == "" {
		return nil, zerr.With(ErrNoPath, "uri", string(doc.URI))
	}

	opts, err := project.Resolve(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	unit, err := squall.NewUnit(path, doc.Text, opts)
	if err != nil {
		return nil, &BuildError{Path: path, Err: err}
	}

	c.unit = unit
	c.builtAt = c.clock.Now()
	c.builds++
	c.buildID = uuid.New()
	c.fingerprint = xxhash.Sum64String(doc.Text)
	return unit, nil
}
