package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Short:   "Show the current identity",
		PreRunE: requireAuth(app),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.Session.RefreshMe(cmd.Context())

			user := app.Session.User()
			if user == nil {
				// The refresh may have hit a 401 and force-logged us out.
				if !app.Session.IsAuthenticated() {
					return &AuthRequiredError{Command: cmd.CommandPath()}
				}
				fmt.Fprintln(app.Out, "Logged in (identity unknown)")
				return nil
			}

			if user.ID != nil {
				fmt.Fprintf(app.Out, "%s (id %d)\n", user.Username, *user.ID)
			} else {
				fmt.Fprintln(app.Out, user.Username)
			}
			return nil
		},
	}
}
