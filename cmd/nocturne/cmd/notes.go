package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/templui/nocturne/internal/tracker"
)

func (a *app) notesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"note"},
		Short:   "Write and organize notes",
	}

	cmd.AddCommand(
		a.notesListCmd(),
		a.notesNewCmd(),
		a.notesShowCmd(),
		a.notesPinCmd(),
		a.notesRemoveCmd(),
		a.notesImportCmd(),
	)
	return cmd
}

func (a *app) noteManager(cmd *cobra.Command) (*tracker.NoteManager, error) {
	err := a.requireUser()
	if err != nil {
		return nil, err
	}

	m := tracker.NewNoteManager(a.client)
	err = m.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (a *app) notesListCmd() *cobra.Command {
	var pinnedOnly bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, pinned first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pinnedOnly {
				err := a.requireUser()
				if err != nil {
					return err
				}
				notes, err := a.client.PinnedNotes(cmd.Context(), 0)
				if err != nil {
					return err
				}
				printNotes(cmd.OutOrStdout(), notes)
				return nil
			}

			m, err := a.noteManager(cmd)
			if err != nil {
				return err
			}

			printNotes(cmd.OutOrStdout(), m.Notes())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pinnedOnly, "pinned", "p", false, "only the most recent pinned notes")
	return cmd
}

func (a *app) notesNewCmd() *cobra.Command {
	var title, content string
	var tags []string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Write a new note",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.requireUser()
			if err != nil {
				return err
			}

			if title == "" {
				title, err = promptText(cmd.InOrStdin(), cmd.ErrOrStderr(), "Title: ")
				if err != nil {
					return err
				}
			}

			if !cmd.Flags().Changed("content") {
				fmt.Fprintln(cmd.ErrOrStderr(), "Write the note, end with a single '.' line or EOF:")
				content, err = readMultiline(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			set := tracker.NewTagSet()
			for _, t := range tags {
				set.Add(t)
			}

			m := tracker.NewNoteManager(a.client)
			note, err := m.Create(cmd.Context(), title, content, set)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", note.Title, note.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "note body in markdown")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "tag to attach, repeatable")
	return cmd
}

func (a *app) notesShowCmd() *cobra.Command {
	var html bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.requireUser()
			if err != nil {
				return err
			}

			if html {
				out, err := a.client.NoteHTML(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			note, err := a.client.Note(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printNote(cmd.OutOrStdout(), note)
			return nil
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "render the markdown to HTML")
	return cmd
}

func (a *app) notesPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <id>",
		Short: "Pin or unpin a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.noteManager(cmd)
			if err != nil {
				return err
			}

			note, err := m.TogglePin(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			state := "Unpinned"
			if note.IsPinned {
				state = "Pinned"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, note.Title)
			return nil
		},
	}
}

func (a *app) notesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.noteManager(cmd)
			if err != nil {
				return err
			}

			err = m.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Deleted", args[0])
			return nil
		},
	}
}

func (a *app) notesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.md>",
		Short: "Import a markdown file with optional frontmatter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.requireUser()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			note, err := a.client.ImportNote(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%s)\n", note.Title, note.ID)
			return nil
		},
	}
}
