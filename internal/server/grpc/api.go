package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

const (
	ServiceName = "passvault.AuthService"

	MethodRegister = "/" + ServiceName + "/Register"
	MethodLogin    = "/" + ServiceName + "/Login"
	MethodMe       = "/" + ServiceName + "/Me"
)

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type AuthReply struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type MeRequest struct{}

type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MeReply struct {
	User Profile `json:"user"`
}

// AuthServiceServer is implemented by *GRPCServer.
type AuthServiceServer interface {
	Register(context.Context, *CredentialsRequest) (*AuthReply, error)
	Login(context.Context, *CredentialsRequest) (*AuthReply, error)
	Me(context.Context, *MeRequest) (*MeReply, error)
}

func unaryHandler[Req any](method string, call func(AuthServiceServer, context.Context, *Req) (any, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*Req))
		})
	}
}

var authServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler: unaryHandler(MethodRegister, func(s AuthServiceServer, ctx context.Context, in *CredentialsRequest) (any, error) {
				return s.Register(ctx, in)
			}),
		},
		{
			MethodName: "Login",
			Handler: unaryHandler(MethodLogin, func(s AuthServiceServer, ctx context.Context, in *CredentialsRequest) (any, error) {
				return s.Login(ctx, in)
			}),
		},
		{
			MethodName: "Me",
			Handler: unaryHandler(MethodMe, func(s AuthServiceServer, ctx context.Context, in *MeRequest) (any, error) {
				return s.Me(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "passvault/auth",
}

func RegisterAuthServiceServer(r grpc.ServiceRegistrar, srv AuthServiceServer) {
	r.RegisterService(&authServiceDesc, srv)
}

// AuthServiceClient calls the service with the JSON codec.
type AuthServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) *AuthServiceClient {
	return &AuthServiceClient{cc: cc}
}

func (c *AuthServiceClient) Register(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*AuthReply, error) {
	out := new(AuthReply)
	if err := c.cc.Invoke(ctx, MethodRegister, in, out, append(opts, grpc.CallContentSubtype(CodecName))...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) Login(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*AuthReply, error) {
	out := new(AuthReply)
	if err := c.cc.Invoke(ctx, MethodLogin, in, out, append(opts, grpc.CallContentSubtype(CodecName))...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) Me(ctx context.Context, opts ...grpc.CallOption) (*MeReply, error) {
	out := new(MeReply)
	if err := c.cc.Invoke(ctx, MethodMe, &MeRequest{}, out, append(opts, grpc.CallContentSubtype(CodecName))...); err != nil {
		return nil, err
	}
	return out, nil
}
