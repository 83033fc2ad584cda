// Package commands defines the insights command tree. Commands talk to the
// backend exclusively through the api clients and read session state through
// the session manager; neither is mutated anywhere else.
package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/insightworks/insights-cli/api"
	"github.com/insightworks/insights-cli/internal/config"
	"github.com/insightworks/insights-cli/session"
	"github.com/insightworks/insights-cli/validation"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// App bundles the dependencies every command draws from.
type App struct {
	Config    *config.Config
	Session   *session.Manager
	Auth      *api.AuthClient
	Insights  *api.InsightsClient
	Analytics *api.AnalyticsClient
	Validator *validation.Validator
	Out       io.Writer
	Log       zerolog.Logger
}

// NewRootCmd builds the full command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "insights",
		Short:         "Create, browse and tag insights from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newSignupCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newListCmd(app),
		newGetCmd(app),
		newCreateCmd(app),
		newEditCmd(app),
		newDeleteCmd(app),
		newTopTagsCmd(app),
	)

	return root
}

// presentError converts a request failure into the normalized display form:
// one summary message plus per-field lines when the backend reported them.
func presentError(err error) error {
	parsed := api.ParseError(err)
	if parsed == nil {
		return nil
	}
	if len(parsed.FieldErrors) == 0 {
		return fmt.Errorf("%s", parsed.Message)
	}

	var b strings.Builder
	b.WriteString(parsed.Message)
	for _, field := range sortedFields(parsed.FieldErrors) {
		for _, msg := range parsed.FieldErrors[field] {
			fmt.Fprintf(&b, "\n  %s: %s", field, msg)
		}
	}
	return fmt.Errorf("%s", b.String())
}

// presentFieldErrors renders client-side validation failures the same way.
func presentFieldErrors(errs validation.FieldErrors) error {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("invalid input")
	for _, field := range fields {
		fmt.Fprintf(&b, "\n  %s: %s", field, errs[field])
	}
	return fmt.Errorf("%s", b.String())
}

func sortedFields(errs api.FieldErrors) []string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
