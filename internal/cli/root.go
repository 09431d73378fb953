package cli

import (
	"context"

	"github.com/alexanderramin/nuclea/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and hooks used by CLI commands.
type App struct {
	Analysis service.AnalysisService
	Profiles service.ProfileService

	// Serve runs the HTTP API until ctx ends. Nil disables the serve command.
	Serve func(ctx context.Context) error

	// IsInteractive reports whether prompts and the live progress bar may be
	// used. Nil means non-interactive.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "nuclea" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "nuclea",
		Short:         "Student writing analysis and talent profiles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAnalyzeCmd(app),
		newProfileCmd(app),
		newWorksCmd(app),
	)
	if app.Serve != nil {
		root.AddCommand(newServeCmd(app))
	}

	return root
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
