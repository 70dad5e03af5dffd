package thriftmux

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// LogEntry is handed to a Service's log builder once per call that
// reaches the wire, carrying a per-call correlation id, the decoded
// envelope name, and the raw request/response bytes for whoever wants
// to record them.
type LogEntry struct {
	RequestID    string
	EnvelopeName string
	Request      []byte
	Response     []byte
}

// newRequestID mints the correlation id stamped into every LogEntry.
func newRequestID() string {
	return uuid.NewString()
}

type rcKey struct{}

// RequestContext is the per-call scope a Service pushes onto the
// request's context.Context before invoking the decorator chain, and
// pops on every exit path. It exposes the buffer pool a decorator or
// handler may use for its own scratch allocations and the verbose-
// responses flag, so a decorator can decide how much detail to fold
// into an error it produces.
type RequestContext struct {
	Buffers *BufferPool
	Verbose bool

	mu    sync.Mutex
	depth int
}

// NewRequestContext builds a scope backed by buffers.
func NewRequestContext(buffers *BufferPool, verbose bool) *RequestContext {
	return &RequestContext{Buffers: buffers, Verbose: verbose}
}

// Push installs rc as the current RequestContext on a child of ctx and
// returns a pop function. pop is safe to call more than once and must
// be called exactly once per Push on every exit path, typically via
// defer immediately after Push returns.
func (rc *RequestContext) Push(ctx context.Context) (context.Context, func()) {
	rc.mu.Lock()
	rc.depth++
	rc.mu.Unlock()

	popped := false
	return context.WithValue(ctx, rcKey{}, rc), func() {
		rc.mu.Lock()
		defer rc.mu.Unlock()
		if popped {
			return
		}
		popped = true
		rc.depth--
	}
}

// Depth reports how many unreleased Push calls are outstanding. It is
// always 0 or 1 for a single HTTP call but nested decorators may push
// scoped children, so it is tracked as a counter rather than a flag.
func (rc *RequestContext) Depth() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.depth
}

// FromContext retrieves the RequestContext pushed by an enclosing
// Service.ServeHTTP call, if any.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(rcKey{}).(*RequestContext)
	return rc, ok
}
