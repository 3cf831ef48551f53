package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/01moynul/marketpro-admin/internal/client"
	"github.com/spf13/cobra"
)

type app struct {
	env       string
	apiURL    string
	storePath string

	client *client.Client
	auth   *client.Auth
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "marketpro-admin",
		Short:         "Manage the MarketPro catalog, cart and mail from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.out = cmd.OutOrStdout()
			return a.init(cmd.ErrOrStderr())
		},
	}

	envDefault := os.Getenv("MARKETPRO_ENV")
	if envDefault == "" {
		envDefault = "development"
	}
	root.PersistentFlags().StringVar(&a.env, "env", envDefault, "environment profile: development, staging or production")
	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "API base URL (overrides the profile)")
	root.PersistentFlags().StringVar(&a.storePath, "auth-file", "", "where the login is kept (default: user config dir)")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.registerCmd(),
		a.whoamiCmd(),
		a.productsCmd(),
		a.cartCmd(),
		a.emailCmd(),
	)
	return root
}

func (a *app) init(stderr io.Writer) error {
	profile := client.ProfileFor(a.env)
	baseURL := profile.APIBaseURL
	if a.apiURL != "" {
		baseURL = a.apiURL
	}

	path := a.storePath
	if path == "" {
		var err error
		if path, err = client.DefaultStorePath(); err != nil {
			return err
		}
	}

	session := client.NewSession(client.NewFileStore(path))
	session.OnExpiry(func() {
		fmt.Fprintln(stderr, "Session expired, run `marketpro-admin login` again.")
	})
	a.client = client.New(baseURL, session)
	a.auth = client.NewAuth(a.client)
	return nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseIDArg(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// apiMessage returns the server's own text for API errors.
func apiMessage(err error) error {
	var ae *client.APIError
	if errors.As(err, &ae) {
		return errors.New(ae.Message)
	}
	return err
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
