package thriftmux

import (
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// The four TApplicationException kinds the call pipeline can produce on
// its own, as distinct from a kind a declared exception binding or a
// downstream handler chose. thrift.TApplicationException is already the
// closed, message-carrying sum type the wire protocol expects; there is
// no separate thriftmux-level exception enum layered on top of it.
const (
	kindInvalidMessageType = thrift.INVALID_MESSAGE_TYPE_EXCEPTION
	kindUnknownMethod      = thrift.UNKNOWN_METHOD
	kindProtocolError      = thrift.PROTOCOL_ERROR
	kindInternalError      = thrift.INTERNAL_ERROR
)

func newApplicationException(kind int32, message string) thrift.TApplicationException {
	return thrift.NewTApplicationException(kind, message)
}

// messageTypeName names a TMessageType the way the call pipeline's error
// messages report it: CALL, REPLY, EXCEPTION, ONEWAY, or a numeric
// fallback for anything else a future protocol version might send.
func messageTypeName(t thrift.TMessageType) string {
	switch t {
	case thrift.CALL:
		return "CALL"
	case thrift.REPLY:
		return "REPLY"
	case thrift.EXCEPTION:
		return "EXCEPTION"
	case thrift.ONEWAY:
		return "ONEWAY"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", t)
	}
}

const (
	traceBegin = "---- BEGIN server-side trace ----\n"
	traceEnd   = "\n---- END server-side trace ----"
)
