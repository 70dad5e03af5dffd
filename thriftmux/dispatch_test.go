package thriftmux_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashcatcloud/thriftmux/thriftmux"
)

func TestSplitEnvelopeName(t *testing.T) {
	cases := []struct {
		in, service, method string
	}{
		{"echo:Ping", "echo", "Ping"},
		{"Ping", "", "Ping"},
		{"a:b:c", "a", "b:c"},
		{"", "", ""},
	}
	for _, c := range cases {
		svc, method := thriftmux.SplitEnvelopeName(c.in)
		assert.Equal(t, c.service, svc, "service for %q", c.in)
		assert.Equal(t, c.method, method, "method for %q", c.in)
	}
}

func descriptorStub(name string) *thriftmux.MethodDescriptor {
	return &thriftmux.MethodDescriptor{
		Name:    name,
		NewArgs: func() thriftmux.TStruct { return nil },
	}
}

func TestDispatchTableResolve(t *testing.T) {
	dt, err := thriftmux.NewDispatchTable(map[string][]thriftmux.Implementation{
		"echo": {{
			ServiceType: "EchoService",
			Methods: map[string]*thriftmux.MethodDescriptor{
				"Ping": descriptorStub("Ping"),
			},
		}},
	})
	require.NoError(t, err)

	d, ok := dt.Resolve("echo", "Ping")
	require.True(t, ok)
	assert.Equal(t, "Ping", d.Name)

	_, ok = dt.Resolve("echo", "Missing")
	assert.False(t, ok)

	_, ok = dt.Resolve("unknown", "Ping")
	assert.False(t, ok)
}

func TestDispatchTableMergesMultipleImplementations(t *testing.T) {
	dt, err := thriftmux.NewDispatchTable(map[string][]thriftmux.Implementation{
		"multi": {
			{ServiceType: "A", Methods: map[string]*thriftmux.MethodDescriptor{"Foo": descriptorStub("Foo")}},
			{ServiceType: "B", Methods: map[string]*thriftmux.MethodDescriptor{"Bar": descriptorStub("Bar")}},
		},
	})
	require.NoError(t, err)

	_, ok := dt.Resolve("multi", "Foo")
	assert.True(t, ok)
	_, ok = dt.Resolve("multi", "Bar")
	assert.True(t, ok)
}

func TestDispatchTableRejectsDuplicateMethodNames(t *testing.T) {
	_, err := thriftmux.NewDispatchTable(map[string][]thriftmux.Implementation{
		"multi": {
			{ServiceType: "A", Methods: map[string]*thriftmux.MethodDescriptor{"Foo": descriptorStub("Foo")}},
			{ServiceType: "B", Methods: map[string]*thriftmux.MethodDescriptor{"Foo": descriptorStub("Foo")}},
		},
	})
	assert.Error(t, err)
}
