package echo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashcatcloud/thriftmux/thriftmux/examples/echo"
)

func TestImplEcho(t *testing.T) {
	out, err := echo.Impl{}.Echo(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}

func TestImplPing(t *testing.T) {
	assert.NoError(t, echo.Impl{}.Ping(context.Background()))
}

func TestDescriptorsRegistersEchoAndPing(t *testing.T) {
	methods := echo.Descriptors(echo.Impl{})
	require.Contains(t, methods, "Echo")
	require.Contains(t, methods, "Ping")
	assert.False(t, methods["Echo"].OneWay)
	assert.True(t, methods["Ping"].OneWay)
}

func TestEchoDescriptorInvoke(t *testing.T) {
	methods := echo.Descriptors(echo.Impl{})
	result, err := methods["Echo"].Invoke(context.Background(), "roundtrip")
	require.NoError(t, err)
	assert.Equal(t, "roundtrip", result)
}
