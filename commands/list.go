package commands

import (
	"fmt"
	"strings"

	"github.com/insightworks/insights-cli/api"
	"github.com/spf13/cobra"
)

const snippetMax = 160

func newListCmd(app *App) *cobra.Command {
	var (
		search   string
		category string
		tag      string
		ordering string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse insights",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := api.ListParams{
				Search:   strings.TrimSpace(search),
				Category: strings.TrimSpace(category),
				Tag:      strings.TrimSpace(tag),
				Ordering: ordering,
				Page:     page,
				PageSize: pageSize,
			}

			result, err := app.Insights.List(cmd.Context(), params)
			if err != nil {
				return presentError(err)
			}

			fmt.Fprintf(app.Out, "%d total\n", result.Count)
			for _, insight := range result.Results {
				fmt.Fprintf(app.Out, "\n#%d  %s  [%s]\n", insight.ID, insight.Title, insight.Category)
				if len(insight.Tags) > 0 {
					fmt.Fprintf(app.Out, "    tags: %s\n", strings.Join(insight.Tags, ", "))
				}
				if s := snippet(insight.Body, snippetMax); s != "" {
					fmt.Fprintf(app.Out, "    %s\n", s)
				}
			}

			fmt.Fprintf(app.Out, "\npage %d of %d\n", page, totalPages(result.Count, pageSize))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "match against titles")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&tag, "tag", "", "filter by tag")
	cmd.Flags().StringVar(&ordering, "ordering", "-created_at", "sort order")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "results per page")

	return cmd
}

// snippet collapses whitespace and truncates to max runes with an ellipsis,
// the same preview shown on the list page.
func snippet(text string, max int) string {
	s := strings.Join(strings.Fields(text), " ")
	if len(s) <= max {
		return s
	}
	return strings.TrimRight(s[:max], " ") + "…"
}

func totalPages(count int64, pageSize int) int64 {
	if pageSize <= 0 {
		pageSize = 10
	}
	pages := (count + int64(pageSize) - 1) / int64(pageSize)
	if pages < 1 {
		return 1
	}
	return pages
}
