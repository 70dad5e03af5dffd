package thriftmux

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// encodeMessage writes one complete Thrift message - envelope plus body
// - to oprot and flushes it. body is a reply struct, a declared
// exception struct, or a thrift.TApplicationException.
func encodeMessage(ctx context.Context, oprot thrift.TProtocol, name string, msgType thrift.TMessageType, seqID int32, body interface {
	Write(context.Context, thrift.TProtocol) error
}) error {
	if err := oprot.WriteMessageBegin(ctx, name, msgType, seqID); err != nil {
		return err
	}
	if err := body.Write(ctx, oprot); err != nil {
		return err
	}
	if err := oprot.WriteMessageEnd(ctx); err != nil {
		return err
	}
	return oprot.Flush(ctx)
}
