package apiclient

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/server/auth"
	gs "github.com/dmitrijs2005/passvault/internal/server/grpc"
	"github.com/dmitrijs2005/passvault/internal/server/httpapi"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/memory"
	"github.com/dmitrijs2005/passvault/internal/server/services"
	"github.com/stretchr/testify/require"
)

type vault struct {
	users   *services.UserService
	entries *services.EntryService
	issuer  *auth.Issuer
}

func newVault(t *testing.T) *vault {
	t.Helper()

	store := memory.NewStore()
	issuer, err := auth.NewIssuer([]byte("client-test-key"), time.Hour)
	require.NoError(t, err)
	sealer, err := cryptox.NewSealer([]byte("client-test-enc"))
	require.NoError(t, err)

	deps := services.Deps{
		Tx:     store,
		Repos:  store,
		Hasher: cryptox.NewHasher(cryptox.Argon2Params{MemoryKiB: 1024, Iterations: 1, Parallelism: 1}),
		Issuer: issuer,
		Sealer: sealer,
	}
	us, err := services.NewUserService(deps)
	require.NoError(t, err)

	return &vault{users: us, entries: services.NewEntryService(deps), issuer: issuer}
}

func (v *vault) httpServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httpapi.NewServer(httpapi.Options{Users: v.users, Entries: v.entries, Tokens: v.issuer})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func (v *vault) grpcServer() *gs.GRPCServer {
	return gs.NewGRPCServer("", nil, v.users, v.issuer, nil)
}

func ptr[T any](v T) *T { return &v }
