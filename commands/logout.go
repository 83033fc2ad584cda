package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "logout",
		Short:   "End the session and forget the stored tokens",
		PreRunE: requireAuth(app),
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Server-side invalidation is best-effort; the local session is
			// cleared no matter what the backend says.
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				app.Log.Warn().Err(err).Msg("server-side logout failed")
			}
			app.Session.Logout()

			fmt.Fprintln(app.Out, "Logged out")
			return nil
		},
	}
}
