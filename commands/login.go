package commands

import (
	"fmt"
	"strings"

	"github.com/insightworks/insights-cli/api"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if errs := app.Validator.ValidateLogin(username, password); len(errs) > 0 {
				return presentFieldErrors(errs)
			}

			pair, err := app.Auth.Login(cmd.Context(), api.Credentials{
				Username: strings.TrimSpace(username),
				Password: password,
			})
			if err != nil {
				return presentError(err)
			}

			if err := app.Session.Login(cmd.Context(), pair); err != nil {
				return err
			}

			name := strings.TrimSpace(username)
			if user := app.Session.User(); user != nil {
				name = user.Username
			}
			fmt.Fprintf(app.Out, "Logged in as %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")

	return cmd
}
