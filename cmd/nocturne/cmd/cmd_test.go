package cmd

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/nocturne/internal/app"
	"github.com/templui/nocturne/internal/config"
	"github.com/templui/nocturne/internal/db"
	"github.com/templui/nocturne/internal/routes"
)

const testPassword = "correct-horse-9"

type cli struct {
	t           *testing.T
	apiURL      string
	sessionFile string
}

func newCLI(t *testing.T) *cli {
	t.Helper()

	dir := t.TempDir()
	dsn := filepath.Join(dir, "nocturne.db") + "?_pragma=foreign_keys(1)&_time_format=sqlite"
	database, err := db.Init("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	cfg := &config.Config{
		AppName:   "Nocturne",
		AppEnv:    "test",
		AppURL:    "http://localhost:8080",
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}

	server := httptest.NewServer(routes.SetupRoutes(app.NewWithDB(cfg, database, nil)))
	t.Cleanup(server.Close)

	return &cli{
		t:           t,
		apiURL:      server.URL,
		sessionFile: filepath.Join(dir, "session.json"),
	}
}

// run executes one command the way a fresh process would.
func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--api", c.apiURL, "--session-file", c.sessionFile}, args...))

	err := root.Execute()
	return out.String(), err
}

func (c *cli) mustRun(stdin string, args ...string) string {
	c.t.Helper()

	out, err := c.run(stdin, args...)
	require.NoError(c.t, err, out)
	return out
}

var idPattern = regexp.MustCompile(`\(([0-9a-f-]{36})\)`)

func createdID(t *testing.T, out string) string {
	t.Helper()

	m := idPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func TestSignupPersistsSession(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun(testPassword+"\n", "signup", "--email", "ada@example.com", "--name", "Ada Lovelace")
	assert.Equal(t, "Welcome, Ada Lovelace!\n", out)

	_, err := os.Stat(c.sessionFile)
	require.NoError(t, err)

	out = c.mustRun("", "whoami")
	assert.Equal(t, "Ada Lovelace <ada@example.com>\n", out)
}

func TestLoginPromptsForEmail(t *testing.T) {
	c := newCLI(t)
	c.mustRun(testPassword+"\n", "signup", "-e", "grace@example.com")
	c.mustRun("", "logout")

	out := c.mustRun("grace@example.com\n"+testPassword+"\n", "login")
	assert.Equal(t, "Signed in as grace@example.com\n", out)
}

func TestLoginWrongPassword(t *testing.T) {
	c := newCLI(t)
	c.mustRun(testPassword+"\n", "signup", "-e", "grace@example.com")
	c.mustRun("", "logout")

	_, err := c.run("wrong-password\n", "login", "-e", "grace@example.com")
	require.Error(t, err)

	_, err = c.run("", "whoami")
	assert.ErrorIs(t, err, errSignedOut)
}

func TestLogout(t *testing.T) {
	c := newCLI(t)
	c.mustRun(testPassword+"\n", "signup", "-e", "ada@example.com")

	assert.Equal(t, "Signed out\n", c.mustRun("", "logout"))
	assert.Equal(t, "Already signed out\n", c.mustRun("", "logout"))

	_, err := os.Stat(c.sessionFile)
	assert.True(t, os.IsNotExist(err))
}

func TestCommandsRequireSession(t *testing.T) {
	c := newCLI(t)

	for _, args := range [][]string{
		{"whoami"},
		{"profile"},
		{"dashboard"},
		{"sleep", "status"},
		{"notes", "list"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := c.run("", args...)
			assert.ErrorIs(t, err, errSignedOut)
		})
	}
}

func TestProfile(t *testing.T) {
	c := newCLI(t)
	c.mustRun(testPassword+"\n", "signup", "-e", "ada@example.com")

	out := c.mustRun("", "profile")
	assert.Contains(t, out, "Username  ada")

	out = c.mustRun("", "profile", "--name", "Ada Lovelace", "--username", "countess")
	assert.Contains(t, out, "Name      Ada Lovelace")
	assert.Contains(t, out, "Username  countess")

	assert.Equal(t, "Ada Lovelace <ada@example.com>\n", c.mustRun("", "whoami"))
}

func TestSleepLifecycle(t *testing.T) {
	c := newCLI(t)
	c.mustRun(testPassword+"\n", "signup", "-e", "ada@example.com")

	assert.Equal(t, "Awake\n", c.mustRun("", "sleep", "status"))
	assert.Equal(t, "No sleep logged yet\n", c.mustRun("", "sleep", "list"))

	out := c.mustRun("", "sleep", "start")
	assert.Contains(t, out, "Good night.")

	_, err := c.run("", "sleep", "start")
	require.Error(t, err)

	out = c.mustRun("", "sleep", "status")
	assert.Contains(t, out, "Sleeping since")
	id := createdID(t, out)

	out = c.mustRun("", "sleep", "stop")
	assert.Equal(t, "Good morning. You slept 0h 0m\n", out)

	_, err = c.run("", "sleep", "stop")
	require.Error(t, err)

	out = c.mustRun("", "sleep", "rate", id, "--quality", "4", "--notes", "slept well")
	assert.Contains(t, out, "****")

	out = c.mustRun("", "sleep", "list")
	assert.Contains(t, out, id)

	assert.Equal(t, "Deleted "+id+"\n", c.mustRun("", "sleep", "rm", id))
	assert.Equal(t, "No sleep logged yet\n", c.mustRun("", "sleep", "list"))
}

func TestNotes(t *testing.T) {
	c := newCLI(t)
	c.mustRun(testPassword+"\n", "signup", "-e", "ada@example.com")

	first := createdID(t, c.mustRun("", "notes", "new", "-t", "First", "-c", "one", "--tag", "dreams", "--tag", " dreams "))
	second := createdID(t, c.mustRun("line one\nline two\n.\n", "notes", "new", "-t", "Second"))

	out := c.mustRun("", "notes", "list")
	assert.Less(t, strings.Index(out, second), strings.Index(out, first))

	assert.Equal(t, "Pinned First\n", c.mustRun("", "notes", "pin", first))
	out = c.mustRun("", "notes", "list")
	assert.Less(t, strings.Index(out, first), strings.Index(out, second))

	out = c.mustRun("", "notes", "list", "--pinned")
	assert.Contains(t, out, first)
	assert.NotContains(t, out, second)

	out = c.mustRun("", "notes", "show", second)
	assert.Equal(t, "# Second\n\nline one\nline two\n", out)

	out = c.mustRun("", "notes", "show", first)
	assert.Contains(t, out, "tags: dreams\n")

	out = c.mustRun("", "notes", "show", second, "--html")
	assert.Contains(t, out, "<p>line one")

	assert.Equal(t, "Deleted "+second+"\n", c.mustRun("", "notes", "rm", second))
	_, err := c.run("", "notes", "show", second)
	require.Error(t, err)

	_, err = c.run("", "notes", "pin", second)
	assert.Error(t, err)
}

func TestNotesImport(t *testing.T) {
	c := newCLI(t)
	c.mustRun(testPassword+"\n", "signup", "-e", "ada@example.com")

	path := filepath.Join(t.TempDir(), "dream-journal.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntags: [dreams]\npinned: true\n---\n# Flying\n\nOver the sea.\n"), 0o600))

	out := c.mustRun("", "notes", "import", path)
	assert.Contains(t, out, "Imported Flying")
	id := createdID(t, out)

	out = c.mustRun("", "notes", "list", "--pinned")
	assert.Contains(t, out, id)
}

func TestDashboard(t *testing.T) {
	c := newCLI(t)
	c.mustRun(testPassword+"\n", "signup", "-e", "ada@example.com", "-n", "ada lovelace")
	c.mustRun("", "notes", "new", "-t", "Pinned idea", "-c", "x")
	id := createdID(t, c.mustRun("", "notes", "new", "-t", "Another", "-c", "y"))
	c.mustRun("", "notes", "pin", id)

	out := c.mustRun("", "dashboard", "--tz", "UTC")
	assert.Regexp(t, `^Good (Morning|Afternoon|Evening), Ada Lovelace\n`, out)
	assert.Contains(t, out, "Last sleep: none")
	assert.Contains(t, out, "Pinned:\n  "+id+"  Another")
	assert.NotContains(t, out, "Pinned idea")

	_, err := c.run("", "dashboard", "--tz", "Mars/Olympus")
	assert.Error(t, err)
}

func TestPasswd(t *testing.T) {
	c := newCLI(t)
	c.mustRun(testPassword+"\n", "signup", "-e", "ada@example.com")

	_, err := c.run("not-my-password\nnew-password-1\n", "passwd")
	require.Error(t, err)

	assert.Equal(t, "Password changed\n", c.mustRun(testPassword+"\nnew-password-1\n", "passwd"))

	c.mustRun("", "logout")
	_, err = c.run(testPassword+"\n", "login", "-e", "ada@example.com")
	require.Error(t, err)
	c.mustRun("new-password-1\n", "login", "-e", "ada@example.com")
}

func TestDeleteAccount(t *testing.T) {
	c := newCLI(t)
	c.mustRun(testPassword+"\n", "signup", "-e", "ada@example.com")
	c.mustRun("", "sleep", "start")

	_, err := c.run("someone@example.com\n", "delete-account")
	assert.ErrorIs(t, err, errNotConfirmed)
	assert.Contains(t, c.mustRun("", "whoami"), "ada@example.com")

	assert.Equal(t, "Account deleted\n", c.mustRun("ada@example.com\n", "delete-account"))

	_, err = c.run("", "whoami")
	assert.ErrorIs(t, err, errSignedOut)

	_, err = c.run(testPassword+"\n", "login", "-e", "ada@example.com")
	require.Error(t, err)

	c.mustRun(testPassword+"\n", "signup", "-e", "ada@example.com")
	assert.Equal(t, "Awake\n", c.mustRun("", "sleep", "status"))
}
