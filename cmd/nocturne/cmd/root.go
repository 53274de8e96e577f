package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/nocturne/internal/client"
	"github.com/templui/nocturne/internal/logger"
	"github.com/templui/nocturne/internal/session"
)

const defaultAPIURL = "http://localhost:8080"

var errSignedOut = errors.New("not signed in, run `nocturne login` first")

// app is shared by all commands and set up before each one runs.
type app struct {
	apiURL      string
	sessionFile string
	verbose     bool

	client  *client.Client
	session *session.Store
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "nocturne",
		Short:         "Track your sleep and notes from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.session == nil {
				return nil
			}
			return a.session.Close()
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api", envOr("NOCTURNE_API_URL", defaultAPIURL), "API base URL")
	root.PersistentFlags().StringVar(&a.sessionFile, "session-file", os.Getenv("NOCTURNE_SESSION_FILE"), "where the session is stored")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		a.signupCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.profileCmd(),
		a.passwdCmd(),
		a.deleteAccountCmd(),
		a.dashboardCmd(),
		a.sleepCmd(),
		a.notesCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	logger.InitCLI(a.verbose)

	path := a.sessionFile
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			return fmt.Errorf("cannot locate session file: %w", err)
		}
	}

	a.client = client.New(a.apiURL)
	a.session = session.NewStore(a.client, session.NewFileStore(path))

	err := a.session.Init(cmd.Context())
	if err != nil {
		slog.Warn("could not verify stored session", "error", err)
	}
	return nil
}

// requireUser fails unless a session is active.
func (a *app) requireUser() error {
	if a.session.State() == nil {
		return errSignedOut
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
