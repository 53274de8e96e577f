package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNotConfirmed = errors.New("account not deleted")

func (a *app) passwdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change your password",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.requireUser()
			if err != nil {
				return err
			}

			current, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Current password: ")
			if err != nil {
				return err
			}

			next, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "New password: ")
			if err != nil {
				return err
			}

			err = a.client.ChangePassword(cmd.Context(), current, next)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
			return nil
		},
	}
}

func (a *app) deleteAccountCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Delete your account with all sleep logs and notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.session.State()
			if state == nil {
				return errSignedOut
			}

			if !yes {
				answer, err := promptText(cmd.InOrStdin(), cmd.ErrOrStderr(),
					fmt.Sprintf("Type %s to delete your account: ", state.User.Email))
				if err != nil {
					return err
				}
				if answer != state.User.Email {
					return errNotConfirmed
				}
			}

			err := a.session.DeleteAccount(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Account deleted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}
