package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one insight in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			insight, err := app.Insights.Get(cmd.Context(), id)
			if err != nil {
				return presentError(err)
			}

			fmt.Fprintf(app.Out, "#%d  %s\n", insight.ID, insight.Title)
			fmt.Fprintf(app.Out, "category: %s\n", insight.Category)
			if len(insight.Tags) > 0 {
				fmt.Fprintf(app.Out, "tags: %s\n", strings.Join(insight.Tags, ", "))
			}
			if insight.CreatedBy != nil {
				fmt.Fprintf(app.Out, "by: %s\n", insight.CreatedBy.Username)
			}
			fmt.Fprintf(app.Out, "created: %s\n", insight.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Fprintf(app.Out, "\n%s\n", insight.Body)
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid insight id %q", raw)
	}
	return id, nil
}
