package commands

import (
	"fmt"

	"github.com/insightworks/insights-cli/api"
	"github.com/insightworks/insights-cli/validation"
	"github.com/spf13/cobra"
)

func newCreateCmd(app *App) *cobra.Command {
	var (
		title    string
		category string
		body     string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create an insight",
		PreRunE: requireAuth(app),
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := validation.InsightForm{
				Title:    title,
				Category: category,
				Body:     body,
				Tags:     normalizeTags(tags),
			}
			if errs := app.Validator.ValidateInsight(form); len(errs) > 0 {
				return presentFieldErrors(errs)
			}

			created, err := app.Insights.Create(cmd.Context(), api.InsightInput{
				Title:    form.Title,
				Category: form.Category,
				Body:     form.Body,
				Tags:     form.Tags,
			})
			if err != nil {
				return presentError(err)
			}

			fmt.Fprintf(app.Out, "Created insight #%d\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "insight title")
	cmd.Flags().StringVar(&category, "category", "", "insight category")
	cmd.Flags().StringVar(&body, "body", "", "insight body")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (repeatable)")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("category")
	cmd.MarkFlagRequired("body")

	return cmd
}

func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, r := range raw {
		if tag := validation.NormalizeTag(r); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
