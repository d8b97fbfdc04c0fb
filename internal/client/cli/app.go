// Package cli is the passvault command-line client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/passvault/internal/client/apiclient"
	"github.com/dmitrijs2005/passvault/internal/client/config"
	"github.com/dmitrijs2005/passvault/internal/client/session"
	"github.com/spf13/cobra"
)

type App struct {
	cfg  *config.Config
	sess *session.Session

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	configPath  string
	serverURL   string
	grpcAddr    string
	sessionFile string
	timeout     time.Duration
}

// NewRootCommand builds the command tree. Prompts read from in; results
// are written to out.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &App{in: bufio.NewReader(in), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "passvault - a small credential vault client",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "JSON config file")
	pf.StringVar(&a.serverURL, "server", "", "HTTP API base URL [env: PASSVAULT_CLIENT_SERVER_URL]")
	pf.StringVar(&a.grpcAddr, "grpc", "", "gRPC address [env: PASSVAULT_CLIENT_GRPC_ADDR]")
	pf.StringVar(&a.sessionFile, "session", "", "session file [env: PASSVAULT_CLIENT_SESSION_FILE]")
	pf.DurationVar(&a.timeout, "timeout", 0, "request timeout")

	root.AddCommand(
		a.newRegisterCmd(),
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newMeCmd(),
		a.newStatusCmd(),
		a.newListCmd(),
		a.newGetCmd(),
		a.newAddCmd(),
		a.newUpdateCmd(),
		a.newDeleteCmd(),
		a.newGenerateCmd(),
	)
	return root
}

func (a *App) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.ServerURL = a.serverURL
	}
	if flags.Changed("grpc") {
		cfg.GRPCAddr = a.grpcAddr
	}
	if flags.Changed("session") {
		cfg.SessionFile = a.sessionFile
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}

	path, err := cfg.SessionPath()
	if err != nil {
		return err
	}
	sess, err := session.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	a.cfg = cfg
	a.sess = sess
	return nil
}

func (a *App) api() *apiclient.Client {
	return apiclient.New(a.cfg.ServerURL, a.cfg.Timeout)
}

// authed returns a client carrying the session token.
func (a *App) authed() (*apiclient.Client, error) {
	token, err := a.sess.RequireToken()
	if err != nil {
		return nil, err
	}
	return a.api().WithToken(token), nil
}

func (a *App) grpc() (*apiclient.GRPCClient, error) {
	return apiclient.DialGRPC(a.cfg.GRPCAddr)
}

func (a *App) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.cfg.Timeout)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
