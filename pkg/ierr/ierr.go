// Package ierr holds the two "marker" error types the thriftmux call
// pipeline recognizes before it ever considers Thrift application-exception
// framing: a handler that panics or returns one of these is telling the
// adapter "skip Thrift entirely, answer with this HTTP response instead."
package ierr

import (
	"fmt"
	"net/http"
)

// PageError carries an HTTP status code straight through the call
// pipeline's exception encoding step when a handler returns it. Bomb and
// Dangerous raise it as a panic instead, which pkg/aop.Recovery turns
// into the same response. It is never Thrift framed.
type PageError struct {
	Message string
	Code    int
}

func (p PageError) Error() string {
	return p.Message
}

func (p PageError) String() string {
	return p.Message
}

// ResponseError carries a fully-formed response body and content type.
// Unlike PageError it does not go through the plain-text error renderer;
// the response is emitted byte for byte.
type ResponseError struct {
	Code        int
	ContentType string
	Body        []byte
}

func (r ResponseError) Error() string {
	return fmt.Sprintf("response error: status=%d len(body)=%d", r.Code, len(r.Body))
}

// Bomb panics with a PageError built from the given status and message.
func Bomb(code int, format string, a ...interface{}) {
	panic(PageError{Code: code, Message: fmt.Sprintf(format, a...)})
}

// Dangerous panics with a PageError if v is a non-empty string or a
// non-nil error. It is a no-op otherwise. Code defaults to 200, matching
// the convention that "dangerous" values found deep in a call stack
// should still produce a normal-looking response unless told otherwise.
func Dangerous(v interface{}, code ...int) {
	if v == nil {
		return
	}

	c := http.StatusOK
	if len(code) > 0 {
		c = code[0]
	}

	switch t := v.(type) {
	case string:
		if t != "" {
			panic(PageError{Code: c, Message: t})
		}
	case error:
		panic(PageError{Code: c, Message: t.Error()})
	}
}
