package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/nuclea/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "profile <student>",
		Short: "Show a student's longitudinal talent profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Profiles.StudentProfile(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the profile as JSON")
	return cmd
}

func newWorksCmd(app *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "works <student>",
		Short: "List a student's works",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			works, err := app.Profiles.ListWorks(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, works)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorks(args[0], works))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the works as JSON")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
