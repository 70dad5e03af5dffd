// Package thriftmux adapts one or more Thrift-generated services to be
// served over plain HTTP: it negotiates a wire format from the request's
// Content-Type/Accept headers, decodes the Thrift call envelope and
// arguments from the request body, dispatches to the registered service
// implementation, and writes back a Thrift-encoded reply, declared
// exception, or application exception.
//
// The HTTP transport itself, the event loop, and the generated argument
// and result struct types are treated as given: thriftmux consumes a
// *http.Request with a buffered body, a FormatSet describing the wire
// protocols a deployment accepts, and a DispatchTable built from
// MethodDescriptors over the caller's service implementations.
package thriftmux
