package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/templui/nocturne/internal/model"
)

func (a *app) signupCmd() *cobra.Command {
	var email, name string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := a.askEmail(cmd, email)
			if err != nil {
				return err
			}

			password, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
			if err != nil {
				return err
			}

			state, err := a.session.SignUp(cmd.Context(), email, password, name)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", displayName(state.User, state.Profile))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&name, "name", "n", "", "your full name")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := a.askEmail(cmd, email)
			if err != nil {
				return err
			}

			password, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
			if err != nil {
				return err
			}

			state, err := a.session.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", state.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.session.State() == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Already signed out")
				return nil
			}

			err := a.session.SignOut(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.session.State()
			if state == nil {
				return errSignedOut
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", displayName(state.User, state.Profile), state.User.Email)
			return nil
		},
	}
}

func (a *app) profileCmd() *cobra.Command {
	var name, username, avatarURL string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.requireUser()
			if err != nil {
				return err
			}

			var update model.ProfileUpdate
			if cmd.Flags().Changed("name") {
				update.FullName = &name
			}
			if cmd.Flags().Changed("username") {
				update.Username = &username
			}
			if cmd.Flags().Changed("avatar-url") {
				update.AvatarURL = &avatarURL
			}

			profile := a.session.State().Profile
			if !update.IsEmpty() {
				profile, err = a.session.UpdateProfile(cmd.Context(), update)
				if err != nil {
					return err
				}
			}

			printProfile(cmd.OutOrStdout(), profile)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&avatarURL, "avatar-url", "", "avatar image URL")
	return cmd
}

func (a *app) askEmail(cmd *cobra.Command, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email != "" {
		return email, nil
	}
	return promptText(cmd.InOrStdin(), cmd.ErrOrStderr(), "Email: ")
}
