package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AuthRequiredError is returned when a protected command runs without a
// session. It carries the attempted command so the hint can point the user
// back at exactly what they were doing after logging in.
type AuthRequiredError struct {
	Command string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("you are not logged in. Run \"insights login\" first, then retry \"%s\"", e.Command)
}

// requireAuth gates a command on the session manager's authentication flag.
// It holds no state of its own; the decision is re-derived on every run.
func requireAuth(app *App) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if app.Session.IsAuthenticated() {
			return nil
		}
		return &AuthRequiredError{Command: cmd.CommandPath()}
	}
}
