package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTopTagsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "top-tags",
		Short: "Show tag usage across insights",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := app.Analytics.TopTags(cmd.Context())
			if err != nil {
				return presentError(err)
			}

			if len(resp.Tags) == 0 {
				fmt.Fprintln(app.Out, "No tag data yet.")
				return nil
			}

			var total int64
			for _, tag := range resp.Tags {
				total += tag.Count
				noun := "insights"
				if tag.Count == 1 {
					noun = "insight"
				}
				fmt.Fprintf(app.Out, "#%-20s used in %d %s\n", tag.Name, tag.Count, noun)
			}
			fmt.Fprintf(app.Out, "\n%d total mentions\n", total)
			return nil
		},
	}
}
