package commands

import (
	"fmt"
	"strings"

	"github.com/insightworks/insights-cli/api"
	"github.com/spf13/cobra"
)

func newSignupCmd(app *App) *cobra.Command {
	var (
		username        string
		email           string
		password        string
		confirmPassword string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if errs := app.Validator.ValidateSignup(username, email, password, confirmPassword); len(errs) > 0 {
				return presentFieldErrors(errs)
			}

			resp, err := app.Auth.Signup(cmd.Context(), api.SignupRequest{
				Username: strings.TrimSpace(username),
				Email:    strings.TrimSpace(email),
				Password: password,
			})
			if err != nil {
				return presentError(err)
			}

			if err := app.Session.Login(cmd.Context(), resp.Tokens); err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "Account created. Logged in as %s\n", resp.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVar(&email, "email", "", "email (optional)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.Flags().StringVar(&confirmPassword, "confirm-password", "", "password, again")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("confirm-password")

	return cmd
}
