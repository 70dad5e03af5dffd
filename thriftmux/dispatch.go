package thriftmux

import (
	"fmt"
	"strings"
)

// DispatchTable resolves an envelope name to a MethodDescriptor. Names
// are service:method for a multiplexed client, or a bare method name
// when the client never namespaced its calls; SplitEnvelopeName decides
// which case it is.
type DispatchTable struct {
	services map[string]map[string]*MethodDescriptor
}

// SplitEnvelopeName splits a decoded envelope name on the first colon.
// "echo:Ping" resolves to service "echo", method "Ping". A name with no
// colon resolves to service "", the name registered by callers that
// never multiplex.
func SplitEnvelopeName(name string) (service, method string) {
	if idx := strings.IndexByte(name, ':'); idx >= 0 {
		return name[:idx], name[idx+1:]
	}
	return "", name
}

// NewDispatchTable merges every Implementation registered against each
// service name into one method namespace, rejecting the table if two
// implementations under the same service name declare the same method.
func NewDispatchTable(services map[string][]Implementation) (*DispatchTable, error) {
	merged := make(map[string]map[string]*MethodDescriptor, len(services))

	for name, impls := range services {
		table := make(map[string]*MethodDescriptor)
		for _, impl := range impls {
			for method, d := range impl.Methods {
				if _, exists := table[method]; exists {
					return nil, fmt.Errorf("thriftmux: service %q: method %q registered by more than one implementation", name, method)
				}
				table[method] = d
			}
		}
		merged[name] = table
	}

	return &DispatchTable{services: merged}, nil
}

// Resolve looks up the descriptor bound to (serviceName, methodName).
func (t *DispatchTable) Resolve(serviceName, methodName string) (*MethodDescriptor, bool) {
	table, ok := t.services[serviceName]
	if !ok {
		return nil, false
	}
	d, ok := table[methodName]
	return d, ok
}

// Services lists the registered service names, for diagnostics.
func (t *DispatchTable) Services() []string {
	names := make([]string, 0, len(t.services))
	for name := range t.services {
		names = append(names, name)
	}
	return names
}
