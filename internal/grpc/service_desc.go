package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName полное имя gRPC сервиса скрининга
const ServiceName = "kyc.v1.ScreeningService"

const (
	methodScreenCustomer  = "ScreenCustomer"
	methodGetScreening    = "GetScreening"
	methodSearchSanctions = "SearchSanctions"
)

// ScreeningServer определяет методы gRPC сервиса.
// Запросы и ответы передаются как google.protobuf.Struct с JSON представлением моделей.
type ScreeningServer interface {
	ScreenCustomer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetScreening(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	SearchSanctions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc описывает сервис для grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScreeningServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: methodScreenCustomer,
			Handler: unaryHandler(methodScreenCustomer, func(srv ScreeningServer) structCall {
				return srv.ScreenCustomer
			}),
		},
		{
			MethodName: methodGetScreening,
			Handler: unaryHandler(methodGetScreening, func(srv ScreeningServer) structCall {
				return srv.GetScreening
			}),
		},
		{
			MethodName: methodSearchSanctions,
			Handler: unaryHandler(methodSearchSanctions, func(srv ScreeningServer) structCall {
				return srv.SearchSanctions
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kyc/v1/screening.proto",
}

type structCall func(context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, pick func(ScreeningServer) structCall) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		call := pick(srv.(ScreeningServer))
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RegisterScreeningServer регистрирует реализацию сервиса
func RegisterScreeningServer(s grpc.ServiceRegistrar, srv ScreeningServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client вызывает методы сервиса через соединение cc
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ScreenCustomer(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodScreenCustomer, in, opts...)
}

func (c *Client) GetScreening(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodGetScreening, in, opts...)
}

func (c *Client) SearchSanctions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodSearchSanctions, in, opts...)
}
