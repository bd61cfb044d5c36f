package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// key set|show|clear: manage the saved Gemini API key.
func keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the saved Gemini API key",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <token>",
			Short: "Save a key and use it for future queries",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := appCtx.creds.Set(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), appCtx.render.Styles.Success.Render("Key saved: "+st.Hint))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show whether a key is configured",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				st := appCtx.creds.Status()
				if !st.Configured {
					fmt.Fprintln(cmd.OutOrStdout(), "No key saved. Run 'navigator key set <token>'.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Key %s (from %s)\n", st.Hint, st.Source)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the saved key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := appCtx.creds.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Key removed.")
				return nil
			},
		},
	)
	return cmd
}
