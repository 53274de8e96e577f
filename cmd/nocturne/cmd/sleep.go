package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/nocturne/internal/model"
	"github.com/templui/nocturne/internal/tracker"
)

func (a *app) sleepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "Track sleep sessions",
	}

	cmd.AddCommand(
		a.sleepStatusCmd(),
		a.sleepStartCmd(),
		a.sleepStopCmd(),
		a.sleepListCmd(),
		a.sleepRateCmd(),
		a.sleepRemoveCmd(),
	)
	return cmd
}

// sleepController returns a controller loaded with the user's logs.
func (a *app) sleepController(cmd *cobra.Command) (*tracker.SleepController, error) {
	err := a.requireUser()
	if err != nil {
		return nil, err
	}

	c := tracker.NewSleepController(a.client)
	err = c.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (a *app) sleepStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.sleepController(cmd)
			if err != nil {
				return err
			}

			active := c.Active()
			if active == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Awake")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sleeping since %s (%s)\n", formatTime(active.SleepStart), active.ID)
			return nil
		},
	}
}

func (a *app) sleepStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a sleep session now",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.sleepController(cmd)
			if err != nil {
				return err
			}

			log, err := c.Start(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Good night. Started at %s\n", formatTime(log.SleepStart))
			return nil
		},
	}
}

func (a *app) sleepStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.sleepController(cmd)
			if err != nil {
				return err
			}

			log, err := c.Stop(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Good morning. You slept %s\n", log.FormatDuration())
			return nil
		},
	}
}

func (a *app) sleepListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List sleep logs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.sleepController(cmd)
			if err != nil {
				return err
			}

			printSleepLogs(cmd.OutOrStdout(), c.Logs())
			return nil
		},
	}
}

func (a *app) sleepRateCmd() *cobra.Command {
	var quality int
	var notes string

	cmd := &cobra.Command{
		Use:   "rate <id>",
		Short: "Rate a night (1-5) and add notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.requireUser()
			if err != nil {
				return err
			}

			var update model.SleepLogUpdate
			if cmd.Flags().Changed("quality") {
				update.QualityRating = &quality
			}
			if cmd.Flags().Changed("notes") {
				update.Notes = &notes
			}

			log, err := a.client.UpdateSleepLog(cmd.Context(), args[0], update)
			if err != nil {
				return err
			}

			printSleepLogs(cmd.OutOrStdout(), []*model.SleepLog{log})
			return nil
		},
	}

	cmd.Flags().IntVarP(&quality, "quality", "q", 0, "quality rating from 1 to 5")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func (a *app) sleepRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a sleep log",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.sleepController(cmd)
			if err != nil {
				return err
			}

			err = c.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Deleted", args[0])
			return nil
		},
	}
}
