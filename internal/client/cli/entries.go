package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/passvault/internal/client/apiclient"
	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// entryFlags are shared by add and update.
type entryFlags struct {
	title    string
	userName string
	url      string
	notes    string
	category string
	tags     []string
}

func (f *entryFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.title, "title", "t", "", "entry title")
	fs.StringVarP(&f.userName, "username", "u", "", "account username")
	fs.StringVar(&f.url, "url", "", "site URL")
	fs.StringVarP(&f.notes, "notes", "n", "", "free-form notes")
	fs.StringVarP(&f.category, "category", "c", "", "category")
	fs.StringSliceVar(&f.tags, "tags", nil, "comma separated tags")
}

// input copies the flags the user actually set.
func (f *entryFlags) input(fs *pflag.FlagSet) apiclient.EntryInput {
	var in apiclient.EntryInput
	set := func(name string, v string) *string {
		if fs.Changed(name) {
			return &v
		}
		return nil
	}
	in.Title = set("title", f.title)
	in.UserName = set("username", f.userName)
	in.URL = set("url", f.url)
	in.Notes = set("notes", f.notes)
	in.Category = set("category", f.category)
	if fs.Changed("tags") {
		tags := f.tags
		in.Tags = &tags
	}
	return in
}

func (a *App) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored entries (passwords hidden)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.authed()
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			list, err := c.ListEntries(ctx)
			if err != nil {
				return err
			}
			return printEntries(a.out, list)
		},
	}
}

func (a *App) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one entry including its password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authed()
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			e, err := c.GetEntry(ctx, args[0])
			if err != nil {
				return err
			}
			return printEntry(a.out, e)
		},
	}
}

func (a *App) newAddCmd() *cobra.Command {
	var (
		f        entryFlags
		generate bool
		length   int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a new entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.authed()
			if err != nil {
				return err
			}

			if f.title == "" {
				if f.title, err = GetSimpleText(a.in, "Title", a.errOut); err != nil {
					return err
				}
			}
			if f.userName == "" {
				if f.userName, err = GetSimpleText(a.in, "Username", a.errOut); err != nil {
					return err
				}
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			var password string
			if generate {
				password, err = c.GeneratePassword(ctx, apiclient.GenerateOptions{
					Length: length, Uppercase: true, Lowercase: true, Numbers: true, Symbols: true,
				})
				if err != nil {
					return fmt.Errorf("generate password: %w", err)
				}
			} else {
				pw, err := GetPassword("Entry password", a.errOut)
				if err != nil {
					return err
				}
				password = string(pw)
				common.WipeByteArray(pw)
			}

			in := f.input(cmd.Flags())
			in.Title = &f.title
			in.UserName = &f.userName
			in.Password = &password

			e, err := c.CreateEntry(ctx, in)
			if err != nil {
				return err
			}
			a.printf("Created %s (%s)\n", e.Title, e.ID)
			if generate {
				a.printf("Password: %s\n", password)
			}
			return nil
		},
	}

	f.bind(cmd.Flags())
	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "let the server generate the password")
	cmd.Flags().IntVar(&length, "length", 16, "length of a generated password")
	return cmd
}

func (a *App) newUpdateCmd() *cobra.Command {
	var (
		f           entryFlags
		newPassword bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authed()
			if err != nil {
				return err
			}

			in := f.input(cmd.Flags())
			if newPassword {
				pw, err := GetPassword("New entry password", a.errOut)
				if err != nil {
					return err
				}
				s := string(pw)
				common.WipeByteArray(pw)
				in.Password = &s
			}
			if in == (apiclient.EntryInput{}) {
				return errors.New("nothing to update, pass at least one field flag")
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			e, err := c.UpdateEntry(ctx, args[0], in)
			if err != nil {
				return err
			}
			a.printf("Updated %s (%s)\n", e.Title, e.ID)
			return nil
		},
	}

	f.bind(cmd.Flags())
	cmd.Flags().BoolVarP(&newPassword, "password", "p", false, "prompt for a new password")
	return cmd
}

func (a *App) newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authed()
			if err != nil {
				return err
			}

			if !yes {
				answer, err := GetSimpleText(a.in, fmt.Sprintf("Delete %s? [y/N]", args[0]), a.errOut)
				if err != nil {
					return err
				}
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					a.printf("Cancelled\n")
					return nil
				}
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			if err := c.DeleteEntry(ctx, args[0]); err != nil {
				return err
			}
			a.printf("Deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (a *App) newGenerateCmd() *cobra.Command {
	var o apiclient.GenerateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.authed()
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd)
			defer cancel()

			pw, err := c.GeneratePassword(ctx, o)
			if err != nil {
				return err
			}
			a.printf("%s\n", pw)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&o.Length, "length", "l", 12, "password length")
	fs.BoolVar(&o.Uppercase, "upper", false, "include uppercase letters")
	fs.BoolVar(&o.Lowercase, "lower", true, "include lowercase letters")
	fs.BoolVar(&o.Numbers, "numbers", true, "include digits")
	fs.BoolVar(&o.Symbols, "symbols", false, "include symbols")
	return cmd
}
