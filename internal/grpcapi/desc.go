package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/metacatalog/timefmt/internal/errmap"
)

const (
	formatMethod          = "/" + ServiceName + "/Format"
	validatePatternMethod = "/" + ServiceName + "/ValidatePattern"
)

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FormatterServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Format", Handler: formatHandler},
		{MethodName: "ValidatePattern", Handler: validatePatternHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "timefmt/v1/formatter",
}

func formatHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	handler := func(ctx context.Context, req any) (any, error) {
		r, err := formatRequestFromStruct(req.(*structpb.Struct))
		if err != nil {
			return nil, errmap.ToGRPCError(err)
		}
		resp, err := srv.(FormatterServer).Format(ctx, r)
		if err != nil {
			return nil, err
		}
		return resp.toStruct()
	}
	if interceptor == nil {
		return handler(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: formatMethod}
	return interceptor(ctx, in, info, handler)
}

func validatePatternHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	handler := func(ctx context.Context, req any) (any, error) {
		r, err := validatePatternRequestFromStruct(req.(*structpb.Struct))
		if err != nil {
			return nil, errmap.ToGRPCError(err)
		}
		resp, err := srv.(FormatterServer).ValidatePattern(ctx, r)
		if err != nil {
			return nil, err
		}
		return resp.toStruct()
	}
	if interceptor == nil {
		return handler(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: validatePatternMethod}
	return interceptor(ctx, in, info, handler)
}

// Client calls the Formatter service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a Client over cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Format calls Formatter/Format.
func (c *Client) Format(ctx context.Context, in *FormatRequest, opts ...grpc.CallOption) (*FormatResponse, error) {
	req, err := in.toStruct()
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, formatMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return formatResponseFromStruct(out)
}

// ValidatePattern calls Formatter/ValidatePattern.
func (c *Client) ValidatePattern(ctx context.Context, in *ValidatePatternRequest, opts ...grpc.CallOption) (*ValidatePatternResponse, error) {
	req, err := in.toStruct()
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, validatePatternMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return validatePatternResponseFromStruct(out)
}
