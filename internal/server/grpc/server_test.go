package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/server/auth"
	"github.com/dmitrijs2005/passvault/internal/server/metrics"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/memory"
	"github.com/dmitrijs2005/passvault/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

func newVaultServer(t *testing.T) (*GRPCServer, *auth.Issuer) {
	t.Helper()

	store := memory.NewStore()
	issuer, err := auth.NewIssuer([]byte("grpc-test-key"), time.Hour)
	require.NoError(t, err)

	us, err := services.NewUserService(services.Deps{
		Tx:     store,
		Repos:  store,
		Hasher: cryptox.NewHasher(cryptox.Argon2Params{MemoryKiB: 1024, Iterations: 1, Parallelism: 1}),
		Issuer: issuer,
	})
	require.NoError(t, err)

	return NewGRPCServer("bufnet", nopLogger{}, us, issuer, metrics.New()), issuer
}

func dialBuf(t *testing.T, s *GRPCServer) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return conn
}

func withBearer(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", nopLogger{}, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", nopLogger{}, nil, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestAuthService_RegisterLoginMe(t *testing.T) {
	t.Parallel()

	s, _ := newVaultServer(t)
	client := NewAuthServiceClient(dialBuf(t, s))
	ctx := context.Background()

	reg, err := client.Register(ctx, &CredentialsRequest{Username: "alice", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, common.MsgRegistered, reg.Message)
	assert.Equal(t, "alice", reg.User.Username)
	assert.NotEmpty(t, reg.Token)
	assert.True(t, reg.ExpiresAt.After(time.Now()))

	login, err := client.Login(ctx, &CredentialsRequest{Username: "alice", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, common.MsgLoggedIn, login.Message)
	assert.Equal(t, reg.User.ID, login.User.ID)

	me, err := client.Me(withBearer(ctx, login.Token))
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, me.User.ID)
	assert.Equal(t, "alice", me.User.Username)
	assert.False(t, me.User.CreatedAt.IsZero())
}

func TestAuthService_ErrorCodes(t *testing.T) {
	t.Parallel()

	s, _ := newVaultServer(t)
	client := NewAuthServiceClient(dialBuf(t, s))
	ctx := context.Background()

	_, err := client.Register(ctx, &CredentialsRequest{Username: "bob", Password: "secret"})
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
		code codes.Code
		msg  string
	}{
		{
			name: "missing password",
			call: func() error {
				_, err := client.Register(ctx, &CredentialsRequest{Username: "carol"})
				return err
			},
			code: codes.InvalidArgument,
			msg:  common.MsgMissingCredentials,
		},
		{
			name: "duplicate username",
			call: func() error {
				_, err := client.Register(ctx, &CredentialsRequest{Username: "bob", Password: "other"})
				return err
			},
			code: codes.AlreadyExists,
			msg:  common.MsgUsernameTaken,
		},
		{
			name: "wrong password",
			call: func() error {
				_, err := client.Login(ctx, &CredentialsRequest{Username: "bob", Password: "nope"})
				return err
			},
			code: codes.Unauthenticated,
			msg:  common.MsgInvalidCredentials,
		},
		{
			name: "unknown user",
			call: func() error {
				_, err := client.Login(ctx, &CredentialsRequest{Username: "nobody", Password: "x"})
				return err
			},
			code: codes.Unauthenticated,
			msg:  common.MsgInvalidCredentials,
		},
		{
			name: "me without token",
			call: func() error {
				_, err := client.Me(ctx)
				return err
			},
			code: codes.Unauthenticated,
			msg:  common.MsgNoToken,
		},
		{
			name: "me with garbage token",
			call: func() error {
				_, err := client.Me(withBearer(ctx, "garbage"))
				return err
			},
			code: codes.PermissionDenied,
			msg:  common.MsgBadToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			assert.Equal(t, tt.msg, st.Message())
		})
	}
}

func TestAuthService_MeForDeletedUser(t *testing.T) {
	t.Parallel()

	s, issuer := newVaultServer(t)
	client := NewAuthServiceClient(dialBuf(t, s))

	token, _, err := issuer.Issue("no-such-user")
	require.NoError(t, err)

	_, err = client.Me(withBearer(context.Background(), token))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHealthService(t *testing.T) {
	t.Parallel()

	s, _ := newVaultServer(t)
	hc := healthpb.NewHealthClient(dialBuf(t, s))

	resp, err := hc.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
