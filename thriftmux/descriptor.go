package thriftmux

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// TStruct is the interface every generated Thrift struct (args structs,
// result structs, and declared exception structs) implements.
type TStruct = thrift.TStruct

// ArgField binds one positional argument of a method's generated args
// struct: the order MethodDescriptor.ArgFields lists them in is the
// order they are passed to Invoke.
type ArgField struct {
	ID   int16
	Name string
	Get  func(args TStruct) interface{}
}

// ExceptionBinding maps an error value returned by a method's Invoke
// closure onto one of the declared exception fields in the generated
// result struct. Matches is consulted in MethodDescriptor.Exceptions
// order; the first match wins.
type ExceptionBinding struct {
	Matches func(err error) bool
	Set     func(result TStruct, err error)
}

// MethodDescriptor is the unit the dispatch table resolves an envelope
// name against. It plays the role generated client/server stubs play in
// a conventional Thrift stack: it knows how to allocate the args and
// result structs for one method, how to pull the positional arguments
// back out of a decoded args struct, how to tell a declared exception
// from an undeclared one, and how to actually call the bound service
// implementation.
type MethodDescriptor struct {
	Name        string
	ServiceType string

	NewArgs   func() TStruct
	NewResult func() TStruct

	ArgFields []ArgField

	// OneWay methods send no reply; the descriptor's Invoke result is
	// discarded and no result struct is ever allocated.
	OneWay bool

	// SetSuccess installs a non-error Invoke return value into the
	// result struct's success field. Unused for OneWay methods and for
	// methods whose Go signature returns no value.
	SetSuccess func(result TStruct, value interface{})

	Exceptions []ExceptionBinding

	// Invoke is the binding to the underlying implementation: the
	// piece a code generator would normally emit. args is the value
	// produced by PositionalArgs.
	Invoke func(ctx context.Context, args interface{}) (interface{}, error)
}

// PositionalArgs reassembles a decoded args struct into the call's
// positional argument shape: no fields yields nil, exactly one field
// yields that field's value directly, and two or more fields yield a
// []interface{} in field-declaration order. This mirrors how a
// reflective RPC core calls into a multi-argument method without
// depending on the args struct's concrete type beyond what ArgFields
// already captured.
func (d *MethodDescriptor) PositionalArgs(args TStruct) interface{} {
	switch len(d.ArgFields) {
	case 0:
		return nil
	case 1:
		return d.ArgFields[0].Get(args)
	default:
		vals := make([]interface{}, len(d.ArgFields))
		for i, f := range d.ArgFields {
			vals[i] = f.Get(args)
		}
		return vals
	}
}

// Implementation is one generated service interface's method table:
// the "service entry" bound to a concrete handler. A single service
// name in a DispatchTable may be backed by more than one Implementation
// when a deployment composes several generated interfaces under one
// multiplexed name.
type Implementation struct {
	ServiceType string
	Methods     map[string]*MethodDescriptor
}
