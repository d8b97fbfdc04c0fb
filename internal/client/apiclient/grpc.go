package apiclient

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
	gs "github.com/dmitrijs2005/passvault/internal/server/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// GRPCClient reaches the account service and the health service.
type GRPCClient struct {
	closer func() error
	auth   *gs.AuthServiceClient
	health healthpb.HealthClient
}

// DialGRPC prepares a plaintext connection to addr. No I/O happens until
// the first call.
func DialGRPC(addr string, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc client %s: %w", addr, err)
	}
	return &GRPCClient{
		closer: conn.Close,
		auth:   gs.NewAuthServiceClient(conn),
		health: healthpb.NewHealthClient(conn),
	}, nil
}

func (c *GRPCClient) Close() error {
	return c.closer()
}

// Health returns the serving status of the account service.
func (c *GRPCClient) Health(ctx context.Context) (string, error) {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: gs.ServiceName})
	if err != nil {
		return "", err
	}
	return resp.GetStatus().String(), nil
}

func (c *GRPCClient) Login(ctx context.Context, userName, password string) (*AuthResponse, error) {
	r, err := c.auth.Login(ctx, &gs.CredentialsRequest{Username: userName, Password: password})
	if err != nil {
		return nil, grpcError(err)
	}
	return &AuthResponse{Message: r.Message, Token: r.Token, User: User{ID: r.User.ID, UserName: r.User.Username}}, nil
}

func (c *GRPCClient) Me(ctx context.Context, token string) (*Profile, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	r, err := c.auth.Me(ctx)
	if err != nil {
		return nil, grpcError(err)
	}
	return &Profile{
		ID:        r.User.ID,
		UserName:  r.User.Username,
		CreatedAt: r.User.CreatedAt,
		UpdatedAt: r.User.UpdatedAt,
	}, nil
}

// grpcError keeps only the server's message, which is what users see.
func grpcError(err error) error {
	if st, ok := status.FromError(err); ok {
		return fmt.Errorf("%s (%s)", st.Message(), st.Code())
	}
	return err
}
