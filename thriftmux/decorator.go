package thriftmux

import (
	"context"
	"errors"
)

// Call carries one resolved, argument-decoded invocation through the
// decorator chain down to the dispatch handler.
type Call struct {
	ServiceName string
	MethodName  string
	Descriptor  *MethodDescriptor
	Args        interface{}
}

// Handler is the thing a Service invokes for every decoded call. A
// Handler decorator chain mirrors Armeria's Service decoration: each
// layer wraps an inner Handler and must expose it back out through
// Unwrap, so the chain's innermost handler - the one actually backed by
// a DispatchTable - stays reachable for validation and introspection.
type Handler interface {
	Invoke(ctx context.Context, call *Call) (interface{}, error)
	Unwrap() Handler
}

// Decorator wraps an inner Handler with one layer of middleware.
type Decorator func(inner Handler) Handler

// Decorate applies decorators to h0 in order, so the first decorator
// listed is innermost and the last one is outermost: it runs first on
// the way in.
func Decorate(h0 Handler, decorators ...Decorator) Handler {
	h := h0
	for _, d := range decorators {
		h = d(h)
	}
	return h
}

type dispatchSource interface {
	Dispatch() *DispatchTable
}

// dispatchTableOf walks a decorator chain's Unwrap links down to the
// base handler and returns its DispatchTable. Constructing a Service
// whose innermost handler does not expose one is a configuration
// error: every decorator layer must faithfully return its inner
// handler from Unwrap.
func dispatchTableOf(h Handler) (*DispatchTable, error) {
	cur := h
	for cur != nil {
		if ds, ok := cur.(dispatchSource); ok {
			return ds.Dispatch(), nil
		}
		next := cur.Unwrap()
		if next == cur || next == nil {
			break
		}
		cur = next
	}
	return nil, errors.New("thriftmux: decorated handler's innermost handler does not expose a dispatch table")
}

type baseHandler struct {
	dispatch *DispatchTable
}

// NewHandler wraps dt as the base Handler a decorator chain decorates.
// Its Invoke looks up nothing further: the call's Descriptor has
// already been resolved against dt by the Service before Invoke runs.
func NewHandler(dt *DispatchTable) Handler {
	return &baseHandler{dispatch: dt}
}

func (b *baseHandler) Invoke(ctx context.Context, call *Call) (interface{}, error) {
	return call.Descriptor.Invoke(ctx, call.Args)
}

func (b *baseHandler) Unwrap() Handler { return b }

func (b *baseHandler) Dispatch() *DispatchTable { return b.dispatch }
