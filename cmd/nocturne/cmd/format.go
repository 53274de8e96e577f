package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/templui/nocturne/internal/model"
)

const timeLayout = "Mon Jan 2 15:04"

func displayName(user *model.User, profile *model.Profile) string {
	if name := profile.DisplayName(); name != "" {
		return name
	}
	if user == nil {
		return ""
	}
	return model.UsernameFromEmail(user.Email)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func formatQuality(q *int) string {
	if q == nil {
		return "-"
	}
	return strings.Repeat("*", *q)
}

func printSleepLogs(w io.Writer, logs []*model.SleepLog) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "No sleep logged yet")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSLEPT\tWOKE\tDURATION\tQUALITY")
	for _, l := range logs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			l.ID, formatTime(l.SleepStart), formatTime(l.WakeEnd), l.FormatDuration(), formatQuality(l.QualityRating))
	}
	_ = tw.Flush()
}

func printNotes(w io.Writer, notes []*model.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes yet")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPIN\tTITLE\tTAGS\tCREATED")
	for _, n := range notes {
		pin := ""
		if n.IsPinned {
			pin = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			n.ID, pin, n.Title, strings.Join(n.Tags, ","), formatTime(&n.CreatedAt))
	}
	_ = tw.Flush()
}

func printNote(w io.Writer, n *model.Note) {
	fmt.Fprintf(w, "# %s\n", n.Title)
	if len(n.Tags) > 0 {
		fmt.Fprintf(w, "tags: %s\n", strings.Join(n.Tags, ", "))
	}
	if n.IsPinned {
		fmt.Fprintln(w, "pinned")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, n.Content)
}

func printProfile(w io.Writer, p *model.Profile) {
	if p == nil {
		fmt.Fprintln(w, "No profile")
		return
	}

	value := func(s *string) string {
		if s == nil || *s == "" {
			return "-"
		}
		return *s
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\t%s\n", value(p.FullName))
	fmt.Fprintf(tw, "Username\t%s\n", value(p.Username))
	fmt.Fprintf(tw, "Avatar\t%s\n", value(p.AvatarURL))
	_ = tw.Flush()
}
