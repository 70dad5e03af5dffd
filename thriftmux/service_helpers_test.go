package thriftmux_test

import (
	"context"
	"errors"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/flashcatcloud/thriftmux/thriftmux"
)

// divArgs/divResult/divException are a small hand-written generated-
// shape struct set exercising a two-argument method with a declared
// exception, independent of the echo example package.

type divArgs struct {
	A int64
	B int64
}

func (a *divArgs) Read(ctx context.Context, iprot thrift.TProtocol) error {
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
		switch {
		case fieldID == 1 && fieldType == thrift.I64:
			v, err := iprot.ReadI64(ctx)
			if err != nil {
				return err
			}
			a.A = v
		case fieldID == 2 && fieldType == thrift.I64:
			v, err := iprot.ReadI64(ctx)
			if err != nil {
				return err
			}
			a.B = v
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (a *divArgs) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "Div_args"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "a", thrift.I64, 1); err != nil {
		return err
	}
	if err := oprot.WriteI64(ctx, a.A); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "b", thrift.I64, 2); err != nil {
		return err
	}
	if err := oprot.WriteI64(ctx, a.B); err != nil {
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

type divException struct {
	Message string
}

func (e *divException) Error() string { return e.Message }

func (e *divException) Read(ctx context.Context, iprot thrift.TProtocol) error {
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
			e.Message = v
		} else if err := iprot.Skip(ctx, fieldType); err != nil {
			return err
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (e *divException) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "DivideByZero"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "message", thrift.STRING, 1); err != nil {
		return err
	}
	if err := oprot.WriteString(ctx, e.Message); err != nil {
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

type divResult struct {
	Success     *int64
	DivByZero   *divException
}

func (r *divResult) Read(ctx context.Context, iprot thrift.TProtocol) error {
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
		switch {
		case fieldID == 0 && fieldType == thrift.I64:
			v, err := iprot.ReadI64(ctx)
			if err != nil {
				return err
			}
			r.Success = &v
		case fieldID == 1 && fieldType == thrift.STRUCT:
			v := &divException{}
			if err := v.Read(ctx, iprot); err != nil {
				return err
			}
			r.DivByZero = v
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (r *divResult) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "Div_result"); err != nil {
		return err
	}
	if r.Success != nil {
		if err := oprot.WriteFieldBegin(ctx, "success", thrift.I64, 0); err != nil {
			return err
		}
		if err := oprot.WriteI64(ctx, *r.Success); err != nil {
			return err
		}
		if err := oprot.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if r.DivByZero != nil {
		if err := oprot.WriteFieldBegin(ctx, "divByZero", thrift.STRUCT, 1); err != nil {
			return err
		}
		if err := r.DivByZero.Write(ctx, oprot); err != nil {
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

var errDivByZero = errors.New("division by zero")

func divDescriptor() *thriftmux.MethodDescriptor {
	return &thriftmux.MethodDescriptor{
		Name:        "Div",
		ServiceType: "CalcService",
		NewArgs:     func() thriftmux.TStruct { return &divArgs{} },
		NewResult:   func() thriftmux.TStruct { return &divResult{} },
		ArgFields: []thriftmux.ArgField{
			{ID: 1, Name: "a", Get: func(args thriftmux.TStruct) interface{} { return args.(*divArgs).A }},
			{ID: 2, Name: "b", Get: func(args thriftmux.TStruct) interface{} { return args.(*divArgs).B }},
		},
		SetSuccess: func(result thriftmux.TStruct, value interface{}) {
			v := value.(int64)
			result.(*divResult).Success = &v
		},
		Exceptions: []thriftmux.ExceptionBinding{
			{
				Matches: func(err error) bool { return errors.Is(err, errDivByZero) },
				Set: func(result thriftmux.TStruct, err error) {
					result.(*divResult).DivByZero = &divException{Message: err.Error()}
				},
			},
		},
		Invoke: func(ctx context.Context, args interface{}) (interface{}, error) {
			vals := args.([]interface{})
			a, b := vals[0].(int64), vals[1].(int64)
			if b == 0 {
				return nil, errDivByZero
			}
			return a / b, nil
		},
	}
}
