package thriftmux

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/flashcatcloud/thriftmux/pkg/ierr"
)

// Service adapts a decorated Handler chain to net/http. It owns format
// negotiation, request body aggregation, envelope and argument
// decoding, and reply/exception encoding; the Handler chain's job is
// the invocation between argument decoding and reply encoding.
type Service struct {
	formats *FormatSet
	handler Handler
	dispatch *DispatchTable
	buffers  *BufferPool

	verbose      bool
	maxBodyBytes int64
	log          func(ctx context.Context, entry LogEntry)
}

// Option configures a Service at construction time.
type Option func(*Service)

// WithVerboseResponses includes the failing error's detail in 4xx/5xx
// bodies and folds the error's %+v rendering, between server-side trace
// markers, into undeclared TApplicationExceptions; that rendering holds
// a stack trace only for errors that record one (such as those built
// with github.com/pkg/errors). Leave this off in production: it can leak
// internal detail to callers.
func WithVerboseResponses(v bool) Option {
	return func(s *Service) { s.verbose = v }
}

// WithMaxBodyBytes caps the request body the Service will aggregate
// before giving up and answering 413. Zero (the default) means no cap.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Service) { s.maxBodyBytes = n }
}

// WithLogBuilder registers a callback invoked once per call that
// reaches the wire, successful or not, with the decoded envelope name
// and the raw request/response bytes. Calls answered by a pkg/ierr
// marker error, and requests rejected before an envelope is decoded,
// are not passed to it.
func WithLogBuilder(f func(ctx context.Context, entry LogEntry)) Option {
	return func(s *Service) { s.log = f }
}

// NewService builds a Service. handler's decorator chain must resolve,
// via Unwrap, down to a base Handler built with NewHandler; otherwise
// construction fails, since the Service needs direct access to the
// dispatch table to resolve envelope names before Invoke is ever
// called.
func NewService(formats *FormatSet, handler Handler, opts ...Option) (*Service, error) {
	dt, err := dispatchTableOf(handler)
	if err != nil {
		return nil, err
	}

	s := &Service{
		formats:  formats,
		handler:  handler,
		dispatch: dt,
		buffers:  NewBufferPool(),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Buffers exposes the Service's buffer pool, mainly so tests can assert
// acquire/release accounting after driving requests through ServeHTTP.
func (s *Service) Buffers() *BufferPool { return s.buffers }

// ServeHTTP implements the Call Pipeline: method gate, format
// negotiation, body aggregation, envelope decode, method resolution,
// argument decode, invocation, and reply/exception encoding.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	format, ok := s.negotiate(w, r)
	if !ok {
		return
	}

	body, ok := s.aggregate(w, r)
	if !ok {
		return
	}

	s.handle(r.Context(), w, format, body)
}

func (s *Service) negotiate(w http.ResponseWriter, r *http.Request) (Format, bool) {
	format, ok := s.formats.Pick(r.Header.Get("Content-Type"))
	if !ok {
		s.writeText(w, http.StatusUnsupportedMediaType, "unsupported content-type", nil)
		return Format{}, false
	}

	if accept := r.Header.Values("Accept"); !AcceptsHeader(format, accept) {
		s.writeText(w, http.StatusNotAcceptable, "accept header does not match the protocol selected by content-type", nil)
		return Format{}, false
	}

	return format, true
}

func (s *Service) aggregate(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	var reader io.Reader = r.Body
	if s.maxBodyBytes > 0 {
		reader = io.LimitReader(r.Body, s.maxBodyBytes+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		s.writeText(w, http.StatusInternalServerError, "failed to read request body", err)
		return nil, false
	}
	if s.maxBodyBytes > 0 && int64(len(data)) > s.maxBodyBytes {
		s.writeText(w, http.StatusRequestEntityTooLarge, "request body exceeds the configured limit", nil)
		return nil, false
	}
	return data, true
}

func (s *Service) writeText(w http.ResponseWriter, status int, message string, cause error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if s.verbose && cause != nil {
		fmt.Fprintf(w, "%s: %s", message, cause.Error())
		return
	}
	io.WriteString(w, message)
}

func (s *Service) handle(ctx context.Context, w http.ResponseWriter, format Format, body []byte) {
	requestID := newRequestID()

	inBuf := s.buffers.AcquireWith(body)
	iprot := format.Protocol.GetProtocol(inBuf)

	name, msgType, seqID, err := iprot.ReadMessageBegin(ctx)
	if err != nil {
		s.buffers.Release(inBuf)
		s.writeText(w, http.StatusBadRequest, fmt.Sprintf("failed to decode a %s envelope", format.Name), err)
		return
	}

	if msgType != thrift.CALL && msgType != thrift.ONEWAY {
		s.buffers.Release(inBuf)
		exn := newApplicationException(kindInvalidMessageType, "unexpected TMessageType: "+messageTypeName(msgType))
		s.writeException(ctx, w, format, name, seqID, exn, body, requestID)
		return
	}

	serviceName, methodName := SplitEnvelopeName(name)
	descriptor, ok := s.dispatch.Resolve(serviceName, methodName)
	if !ok {
		s.buffers.Release(inBuf)
		exn := newApplicationException(kindUnknownMethod, fmt.Sprintf("unknown method: %s", name))
		s.writeException(ctx, w, format, name, seqID, exn, body, requestID)
		return
	}

	args := descriptor.NewArgs()
	if err := args.Read(ctx, iprot); err != nil {
		s.buffers.Release(inBuf)
		exn := newApplicationException(kindProtocolError, fmt.Sprintf("failed to decode arguments: %s", err))
		s.writeException(ctx, w, format, name, seqID, exn, body, requestID)
		return
	}
	iprot.ReadMessageEnd(ctx)
	s.buffers.Release(inBuf)

	call := &Call{
		ServiceName: serviceName,
		MethodName:  methodName,
		Descriptor:  descriptor,
		Args:        descriptor.PositionalArgs(args),
	}

	rc := NewRequestContext(s.buffers, s.verbose)
	invokeCtx, pop := rc.Push(ctx)
	defer pop()
	result, err := s.handler.Invoke(invokeCtx, call)

	if descriptor.OneWay || msgType == thrift.ONEWAY {
		w.Header().Set("Content-Type", format.ResponseMediaType)
		w.WriteHeader(http.StatusOK)
		if s.log != nil {
			s.log(ctx, LogEntry{RequestID: requestID, EnvelopeName: name, Request: body})
		}
		return
	}

	if err != nil {
		s.encodeFailure(ctx, w, format, descriptor, name, seqID, err, body, requestID)
		return
	}

	res := descriptor.NewResult()
	if descriptor.SetSuccess != nil {
		descriptor.SetSuccess(res, result)
	}
	s.writeReply(ctx, w, format, name, seqID, res, body, requestID)
}

func (s *Service) encodeFailure(ctx context.Context, w http.ResponseWriter, format Format, descriptor *MethodDescriptor, name string, seqID int32, err error, reqBody []byte, requestID string) {
	switch e := err.(type) {
	case ierr.PageError:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(e.Code)
		io.WriteString(w, e.Message)
		return
	case ierr.ResponseError:
		if e.ContentType != "" {
			w.Header().Set("Content-Type", e.ContentType)
		}
		w.WriteHeader(e.Code)
		w.Write(e.Body)
		return
	}

	for _, binding := range descriptor.Exceptions {
		if binding.Matches(err) {
			res := descriptor.NewResult()
			binding.Set(res, err)
			s.writeReply(ctx, w, format, name, seqID, res, reqBody, requestID)
			return
		}
	}

	message := err.Error()
	if s.verbose {
		message = traceBegin + fmt.Sprintf("%+v", err) + traceEnd
	}
	exn := newApplicationException(kindInternalError, message)
	s.writeException(ctx, w, format, name, seqID, exn, reqBody, requestID)
}

func (s *Service) writeReply(ctx context.Context, w http.ResponseWriter, format Format, name string, seqID int32, result TStruct, reqBody []byte, requestID string) {
	outBuf := s.buffers.AcquireEmpty()

	oprot := format.Protocol.GetProtocol(outBuf)
	if err := encodeMessage(ctx, oprot, name, thrift.REPLY, seqID, result); err != nil {
		s.buffers.Release(outBuf)
		panic(fmt.Errorf("thriftmux: fatal encode failure: %w", err))
	}

	w.Header().Set("Content-Type", format.ResponseMediaType)
	w.WriteHeader(http.StatusOK)
	resp := append([]byte(nil), outBuf.Bytes()...)
	w.Write(resp)
	s.buffers.Release(outBuf)

	if s.log != nil {
		s.log(ctx, LogEntry{RequestID: requestID, EnvelopeName: name, Request: reqBody, Response: resp})
	}
}

func (s *Service) writeException(ctx context.Context, w http.ResponseWriter, format Format, name string, seqID int32, exn thrift.TApplicationException, reqBody []byte, requestID string) {
	outBuf := s.buffers.AcquireEmpty()

	oprot := format.Protocol.GetProtocol(outBuf)
	if err := encodeMessage(ctx, oprot, name, thrift.EXCEPTION, seqID, exn); err != nil {
		s.buffers.Release(outBuf)
		panic(fmt.Errorf("thriftmux: fatal encode failure: %w", err))
	}

	w.Header().Set("Content-Type", format.ResponseMediaType)
	w.WriteHeader(http.StatusOK)
	resp := append([]byte(nil), outBuf.Bytes()...)
	w.Write(resp)
	s.buffers.Release(outBuf)

	if s.log != nil {
		s.log(ctx, LogEntry{RequestID: requestID, EnvelopeName: name, Request: reqBody, Response: resp})
	}
}

