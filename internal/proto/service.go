package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "fivet.FivetService"

const (
	FivetService_Authenticate_FullMethodName  = "/fivet.FivetService/Authenticate"
	FivetService_Register_FullMethodName      = "/fivet.FivetService/Register"
	FivetService_DeleteAccount_FullMethodName = "/fivet.FivetService/DeleteAccount"
	FivetService_GetAccount_FullMethodName    = "/fivet.FivetService/GetAccount"
	FivetService_Ping_FullMethodName          = "/fivet.FivetService/Ping"
)

// FivetServiceServer is the server API for fivet.FivetService.
type FivetServiceServer interface {
	Authenticate(context.Context, *AuthenticateRequest) (*AuthenticateResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	DeleteAccount(context.Context, *DeleteAccountRequest) (*DeleteAccountResponse, error)
	GetAccount(context.Context, *GetAccountRequest) (*GetAccountResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedFivetServiceServer can be embedded to get Unimplemented
// answers for methods a server does not override.
type UnimplementedFivetServiceServer struct{}

func (UnimplementedFivetServiceServer) Authenticate(context.Context, *AuthenticateRequest) (*AuthenticateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Authenticate not implemented")
}

func (UnimplementedFivetServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}

func (UnimplementedFivetServiceServer) DeleteAccount(context.Context, *DeleteAccountRequest) (*DeleteAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteAccount not implemented")
}

func (UnimplementedFivetServiceServer) GetAccount(context.Context, *GetAccountRequest) (*GetAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAccount not implemented")
}

func (UnimplementedFivetServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterFivetServiceServer(s grpc.ServiceRegistrar, srv FivetServiceServer) {
	s.RegisterService(&FivetService_ServiceDesc, srv)
}

// unaryHandler adapts a typed method into a grpc.MethodDesc handler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(FivetServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FivetServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FivetServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FivetService_ServiceDesc describes fivet.FivetService for grpc.Server.
var FivetService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FivetServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Authenticate",
			Handler:    unaryHandler(FivetService_Authenticate_FullMethodName, FivetServiceServer.Authenticate),
		},
		{
			MethodName: "Register",
			Handler:    unaryHandler(FivetService_Register_FullMethodName, FivetServiceServer.Register),
		},
		{
			MethodName: "DeleteAccount",
			Handler:    unaryHandler(FivetService_DeleteAccount_FullMethodName, FivetServiceServer.DeleteAccount),
		},
		{
			MethodName: "GetAccount",
			Handler:    unaryHandler(FivetService_GetAccount_FullMethodName, FivetServiceServer.GetAccount),
		},
		{
			MethodName: "Ping",
			Handler:    unaryHandler(FivetService_Ping_FullMethodName, FivetServiceServer.Ping),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fivet.proto",
}

// FivetServiceClient is the client API for fivet.FivetService.
type FivetServiceClient interface {
	Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*AuthenticateResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*DeleteAccountResponse, error)
	GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*GetAccountResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type fivetServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFivetServiceClient(cc grpc.ClientConnInterface) FivetServiceClient {
	return &fivetServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fivetServiceClient) Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*AuthenticateResponse, error) {
	return invoke[AuthenticateResponse](ctx, c.cc, FivetService_Authenticate_FullMethodName, in, opts)
}

func (c *fivetServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, FivetService_Register_FullMethodName, in, opts)
}

func (c *fivetServiceClient) DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*DeleteAccountResponse, error) {
	return invoke[DeleteAccountResponse](ctx, c.cc, FivetService_DeleteAccount_FullMethodName, in, opts)
}

func (c *fivetServiceClient) GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*GetAccountResponse, error) {
	return invoke[GetAccountResponse](ctx, c.cc, FivetService_GetAccount_FullMethodName, in, opts)
}

func (c *fivetServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, FivetService_Ping_FullMethodName, in, opts)
}
