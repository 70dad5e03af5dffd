package aop

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
	"github.com/toolkits/pkg/logger"
)

type consoleColorModeValue int

const (
	autoColor consoleColorModeValue = iota
	disableColor
	forceColor
)

var (
	green            = string([]byte{27, 91, 57, 55, 59, 52, 50, 109})
	white            = string([]byte{27, 91, 57, 48, 59, 52, 55, 109})
	yellow           = string([]byte{27, 91, 57, 48, 59, 52, 51, 109})
	red              = string([]byte{27, 91, 57, 55, 59, 52, 49, 109})
	reset            = string([]byte{27, 91, 48, 109})
	consoleColorMode = autoColor
)

// LoggerConfig controls the access-log middleware.
type LoggerConfig struct {
	Output    io.Writer
	SkipPaths []string
}

// DisableConsoleColor turns off ANSI color in the access log, regardless
// of whether stdout is a terminal.
func DisableConsoleColor() {
	consoleColorMode = disableColor
}

func statusColor(code int) string {
	switch {
	case code >= http.StatusOK && code < http.StatusMultipleChoices:
		return green
	case code >= http.StatusMultipleChoices && code < http.StatusBadRequest:
		return white
	case code >= http.StatusBadRequest && code < http.StatusInternalServerError:
		return yellow
	default:
		return red
	}
}

// Logger instances an access-log middleware writing through the process
// logger (github.com/toolkits/pkg/logger), not directly to a writer, so
// every request lands in the same sink as the rest of the adapter's logs.
func Logger(conf ...LoggerConfig) gin.HandlerFunc {
	var c LoggerConfig
	if len(conf) > 0 {
		c = conf[0]
	}

	skip := make(map[string]struct{}, len(c.SkipPaths))
	for _, p := range c.SkipPaths {
		skip[p] = struct{}{}
	}

	isTerm := isatty.IsTerminal(os.Stdout.Fd()) && consoleColorMode != disableColor

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		if _, ok := skip[path]; ok {
			return
		}

		latency := time.Since(start)
		status := c.Writer.Status()

		var sc, rc string
		if isTerm {
			sc, rc = statusColor(status), reset
		}

		logger.Info(fmt.Sprintf("[thriftmux] |%s %3d %s| %13v | %15s | %-7s %s",
			sc, status, rc, latency, c.ClientIP(), c.Request.Method, path))
	}
}
