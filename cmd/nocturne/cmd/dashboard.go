package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *app) dashboardCmd() *cobra.Command {
	var tz string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Greeting, last night and pinned notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.requireUser()
			if err != nil {
				return err
			}

			dashboard, err := a.client.Dashboard(cmd.Context(), tz)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, %s\n\n", dashboard.Greeting, dashboard.Name)

			if dashboard.LastSleep != nil {
				l := dashboard.LastSleep
				fmt.Fprintf(out, "Last sleep: %s (%s)\n", formatTime(l.SleepStart), l.FormatDuration())
			} else {
				fmt.Fprintln(out, "Last sleep: none")
			}

			if len(dashboard.PinnedNotes) > 0 {
				fmt.Fprintln(out, "\nPinned:")
				for _, n := range dashboard.PinnedNotes {
					fmt.Fprintf(out, "  %s  %s\n", n.ID, n.Title)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tz, "tz", os.Getenv("TZ"), "IANA time zone for the greeting")
	return cmd
}
