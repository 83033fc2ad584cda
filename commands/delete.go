package commands

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete an insight",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireAuth(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return errors.New("refusing to delete without --yes")
			}

			if err := app.Insights.Delete(cmd.Context(), id); err != nil {
				return presentError(err)
			}

			fmt.Fprintf(app.Out, "Deleted insight #%d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}
