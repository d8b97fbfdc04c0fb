package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/client/apiclient"
	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/spf13/cobra"
)

func (a *App) askUserName(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.in, "Username", a.errOut)
}

func (a *App) remember(res *apiclient.AuthResponse) error {
	a.sess.UserID = res.User.ID
	a.sess.UserName = res.User.UserName
	a.sess.Token = res.Token
	a.sess.ServerURL = a.cfg.ServerURL
	return a.sess.Save()
}

func (a *App) newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register [username]",
		Short: "Create an account and log in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userName, err := a.askUserName(args)
			if err != nil {
				return err
			}
			pw, err := GetPassword("Password", a.errOut)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(pw)
			confirm, err := GetPassword("Repeat password", a.errOut)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(confirm)
			if string(pw) != string(confirm) {
				return errors.New("passwords do not match")
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			res, err := a.api().Register(ctx, userName, string(pw))
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			if err := a.remember(res); err != nil {
				return err
			}
			a.printf("%s: %s (%s)\n", res.Message, res.User.UserName, res.User.ID)
			return nil
		},
	}
}

func (a *App) newLoginCmd() *cobra.Command {
	var useGRPC bool

	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Log in and store the session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userName, err := a.askUserName(args)
			if err != nil {
				return err
			}
			pw, err := GetPassword("Password", a.errOut)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(pw)

			ctx, cancel := a.context(cmd)
			defer cancel()

			var res *apiclient.AuthResponse
			if useGRPC {
				gc, err := a.grpc()
				if err != nil {
					return err
				}
				defer gc.Close()
				res, err = gc.Login(ctx, userName, string(pw))
				if err != nil {
					return fmt.Errorf("login failed: %w", err)
				}
			} else {
				res, err = a.api().Login(ctx, userName, string(pw))
				if err != nil {
					return fmt.Errorf("login failed: %w", err)
				}
			}

			if err := a.remember(res); err != nil {
				return err
			}
			a.printf("%s: %s\n", res.Message, res.User.UserName)
			return nil
		},
	}
	cmd.Flags().BoolVar(&useGRPC, "use-grpc", false, "log in over gRPC")
	return cmd
}

func (a *App) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := a.sess.Clear(); err != nil {
				return err
			}
			a.printf("Logged out\n")
			return nil
		},
	}
}

func (a *App) newMeCmd() *cobra.Command {
	var useGRPC bool

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := a.sess.RequireToken()
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			var p *apiclient.Profile
			if useGRPC {
				gc, err := a.grpc()
				if err != nil {
					return err
				}
				defer gc.Close()
				p, err = gc.Me(ctx, token)
				if err != nil {
					return err
				}
			} else {
				p, err = a.api().WithToken(token).Me(ctx)
				if err != nil {
					return err
				}
			}

			a.printf("ID:       %s\nUsername: %s\nCreated:  %s\n", p.ID, p.UserName, p.CreatedAt.Local().Format(timeLayout))
			return nil
		},
	}
	cmd.Flags().BoolVar(&useGRPC, "use-grpc", false, "ask over gRPC")
	return cmd
}

func (a *App) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the server answers on HTTP and gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			var failed bool

			if h, err := a.api().Health(ctx); err != nil {
				failed = true
				a.printf("http  %s: %v\n", a.cfg.ServerURL, err)
			} else {
				a.printf("http  %s: %s\n", a.cfg.ServerURL, h.Status)
			}

			gc, err := a.grpc()
			if err == nil {
				defer gc.Close()
				var st string
				if st, err = gc.Health(ctx); err == nil {
					a.printf("grpc  %s: %s\n", a.cfg.GRPCAddr, st)
				}
			}
			if err != nil {
				failed = true
				a.printf("grpc  %s: %v\n", a.cfg.GRPCAddr, err)
			}

			if a.sess.LoggedIn() {
				a.printf("session: %s\n", a.sess.UserName)
			} else {
				a.printf("session: none\n")
			}

			if failed {
				return errors.New("server is not fully reachable")
			}
			return nil
		},
	}
}
