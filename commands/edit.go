package commands

import (
	"fmt"

	"github.com/insightworks/insights-cli/api"
	"github.com/insightworks/insights-cli/validation"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	var (
		title    string
		category string
		body     string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:     "edit <id>",
		Short:   "Update an insight",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireAuth(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			current, err := app.Insights.Get(cmd.Context(), id)
			if err != nil {
				return presentError(err)
			}

			// Unchanged fields keep their current values.
			form := validation.InsightForm{
				Title:    current.Title,
				Category: current.Category,
				Body:     current.Body,
				Tags:     current.Tags,
			}
			if cmd.Flags().Changed("title") {
				form.Title = title
			}
			if cmd.Flags().Changed("category") {
				form.Category = category
			}
			if cmd.Flags().Changed("body") {
				form.Body = body
			}
			if cmd.Flags().Changed("tag") {
				form.Tags = normalizeTags(tags)
			}

			if errs := app.Validator.ValidateInsight(form); len(errs) > 0 {
				return presentFieldErrors(errs)
			}

			updated, err := app.Insights.Update(cmd.Context(), id, api.InsightInput{
				Title:    form.Title,
				Category: form.Category,
				Body:     form.Body,
				Tags:     form.Tags,
			})
			if err != nil {
				return presentError(err)
			}

			fmt.Fprintf(app.Out, "Updated insight #%d\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&body, "body", "", "new body")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "replacement tag set (repeatable)")

	return cmd
}
