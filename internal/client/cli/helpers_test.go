package cli

import (
	"bytes"
	"context"
	"net"
	"net/http/httptest"
	"path/filepath"
	"strings"
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

type testEnv struct {
	httpURL     string
	grpcAddr    string
	sessionFile string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	issuer, err := auth.NewIssuer([]byte("cli-test-key"), time.Hour)
	require.NoError(t, err)
	sealer, err := cryptox.NewSealer([]byte("cli-test-enc"))
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

	ts := httptest.NewServer(httpapi.NewServer(httpapi.Options{
		Users:   us,
		Entries: services.NewEntryService(deps),
		Tokens:  issuer,
	}).Handler())
	t.Cleanup(ts.Close)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.NewGRPCServer("", nil, us, issuer, nil).Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return &testEnv{
		httpURL:     ts.URL,
		grpcAddr:    lis.Addr().String(),
		sessionFile: filepath.Join(t.TempDir(), "session.json"),
	}
}

// stubPasswords makes readPassword return the given values in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) {
		if len(pws) == 0 {
			t.Fatal("unexpected password prompt")
		}
		pw := pws[0]
		pws = pws[1:]
		return []byte(pw), nil
	}
	t.Cleanup(func() { readPassword = orig })
}

// run executes one CLI invocation against env and returns stdout.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := NewRootCommand(strings.NewReader(stdin), &out, &errOut)
	root.SetArgs(append([]string{
		"--server", e.httpURL,
		"--grpc", e.grpcAddr,
		"--session", e.sessionFile,
		"--timeout", "5s",
	}, args...))

	err := root.Execute()
	return out.String(), err
}
