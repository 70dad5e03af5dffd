// Package echo is a worked example of wiring a hand-written service
// implementation into thriftmux: an EchoService with two methods, Echo,
// taking a single string and returning it unchanged, and a
// zero-argument, no-reply Ping method demonstrating a one-way call. Real deployments get these args/result struct types and field
// accessors from a Thrift IDL compiler's generated code; here they are
// written by hand to keep the example self-contained.
package echo

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/flashcatcloud/thriftmux/thriftmux"
)

// EchoArgs is the generated-shape args struct for Echo(message string).
type EchoArgs struct {
	Message string
}

func (a *EchoArgs) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		if fieldID == 1 && fieldType == thrift.STRING {
			v, err := iprot.ReadString(ctx)
			if err != nil {
				return err
			}
			a.Message = v
		} else if err := iprot.Skip(ctx, fieldType); err != nil {
			return err
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (a *EchoArgs) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "Echo_args"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "message", thrift.STRING, 1); err != nil {
		return err
	}
	if err := oprot.WriteString(ctx, a.Message); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}

// EchoResult is the generated-shape result struct for Echo.
type EchoResult struct {
	Success *string
}

func (r *EchoResult) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		if fieldID == 0 && fieldType == thrift.STRING {
			v, err := iprot.ReadString(ctx)
			if err != nil {
				return err
			}
			r.Success = &v
		} else if err := iprot.Skip(ctx, fieldType); err != nil {
			return err
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (r *EchoResult) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "Echo_result"); err != nil {
		return err
	}
	if r.Success != nil {
		if err := oprot.WriteFieldBegin(ctx, "success", thrift.STRING, 0); err != nil {
			return err
		}
		if err := oprot.WriteString(ctx, *r.Success); err != nil {
			return err
		}
		if err := oprot.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}

// PingArgs is the generated-shape args struct for the zero-argument
// one-way method Ping.
type PingArgs struct{}

func (a *PingArgs) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, _, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		if err := iprot.Skip(ctx, fieldType); err != nil {
			return err
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (a *PingArgs) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "Ping_args"); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}

// Handler is the plain Go interface the example service implements.
// thriftmux never sees this type directly; Descriptors below binds its
// methods into MethodDescriptor.Invoke closures.
type Handler interface {
	Echo(ctx context.Context, message string) (string, error)
	Ping(ctx context.Context) error
}

// Impl is a trivial Handler: Echo returns its argument, Ping logs and
// returns nil.
type Impl struct{}

func (Impl) Echo(_ context.Context, message string) (string, error) {
	return message, nil
}

func (Impl) Ping(_ context.Context) error {
	fmt.Println("echo: ping")
	return nil
}

// Descriptors builds the method table thriftmux.Implementation expects
// for h, the piece a Thrift IDL compiler would otherwise generate.
func Descriptors(h Handler) map[string]*thriftmux.MethodDescriptor {
	return map[string]*thriftmux.MethodDescriptor{
		"Echo": {
			Name:        "Echo",
			ServiceType: "EchoService",
			NewArgs:     func() thriftmux.TStruct { return &EchoArgs{} },
			NewResult:   func() thriftmux.TStruct { return &EchoResult{} },
			ArgFields: []thriftmux.ArgField{
				{ID: 1, Name: "message", Get: func(args thriftmux.TStruct) interface{} {
					return args.(*EchoArgs).Message
				}},
			},
			SetSuccess: func(result thriftmux.TStruct, value interface{}) {
				v := value.(string)
				result.(*EchoResult).Success = &v
			},
			Invoke: func(ctx context.Context, args interface{}) (interface{}, error) {
				return h.Echo(ctx, args.(string))
			},
		},
		"Ping": {
			Name:        "Ping",
			ServiceType: "EchoService",
			NewArgs:     func() thriftmux.TStruct { return &PingArgs{} },
			NewResult:   func() thriftmux.TStruct { return &PingArgs{} },
			OneWay:      true,
			Invoke: func(ctx context.Context, _ interface{}) (interface{}, error) {
				return nil, h.Ping(ctx)
			},
		},
	}
}

// Implementation returns the thriftmux.Implementation registering h
// under the "EchoService" service type tag.
func Implementation(h Handler) thriftmux.Implementation {
	return thriftmux.Implementation{
		ServiceType: "EchoService",
		Methods:     Descriptors(h),
	}
}
