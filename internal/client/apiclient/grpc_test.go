package apiclient

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

func dialVault(t *testing.T, v *vault) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- v.grpcServer().Serve(ctx, lis) }()

	c, err := DialGRPC("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		cancel()
		<-done
	})
	return c
}

func TestGRPCClient(t *testing.T) {
	v := newVault(t)
	ctx := context.Background()

	_, err := v.users.Register(ctx, "carol", "pw")
	require.NoError(t, err)

	c := dialVault(t, v)

	st, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SERVING", st)

	login, err := c.Login(ctx, "carol", "pw")
	require.NoError(t, err)
	assert.Equal(t, "carol", login.User.UserName)

	me, err := c.Me(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, me.ID)

	_, err = c.Login(ctx, "carol", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "用户名或密码不正确")

	_, err = c.Me(ctx, "garbage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PermissionDenied")
}
