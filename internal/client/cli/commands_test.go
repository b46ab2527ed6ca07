package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/habitcheck/internal/civil"
	"github.com/dmitrijs2005/habitcheck/internal/client/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	server string

	login    *api.LoginResult
	users    []api.User
	account  *api.Account
	entries  []api.Entry
	healthOK bool
	err      error

	gotLogin  [2]string
	gotCreate [3]string
	gotEntry  *api.EntryInput
}

func (f *fakeAPI) Login(ctx context.Context, username, token string) (*api.LoginResult, error) {
	f.gotLogin = [2]string{username, token}
	return f.login, f.err
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]api.User, error) { return f.users, f.err }

func (f *fakeAPI) CreateUser(ctx context.Context, adminUsername, adminToken, newUsername string) (*api.Account, error) {
	f.gotCreate = [3]string{adminUsername, adminToken, newUsername}
	return f.account, f.err
}

func (f *fakeAPI) ListEntries(ctx context.Context) ([]api.Entry, error) { return f.entries, f.err }

func (f *fakeAPI) SubmitEntry(ctx context.Context, in api.EntryInput) (*api.Entry, error) {
	f.gotEntry = &in
	if f.err != nil {
		return nil, f.err
	}
	return &api.Entry{Date: in.Date, Username: in.Username, Journal: in.Journal, Meditation: in.Meditation, Movement: in.Movement}, nil
}

func (f *fakeAPI) Health(ctx context.Context) error { return f.err }

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HABITCHECK_SERVER", "HABITCHECK_USERNAME", "HABITCHECK_TOKEN", "HABITCHECK_TIMEOUT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func run(t *testing.T, f *fakeAPI, stdin string, args ...string) (string, error) {
	t.Helper()
	clearEnv(t)

	// 2026-10-15 00:30 in Berlin
	clock, err := civil.NewClock(func() time.Time { return time.Date(2026, 10, 14, 22, 30, 0, 0, time.UTC) })
	require.NoError(t, err)

	var out bytes.Buffer
	err = Execute(context.Background(), args, Options{
		Out:         &out,
		In:          strings.NewReader(stdin),
		NewAPI:      func(g Globals) API { f.server = g.Server; return f },
		Clock:       clock,
		ConfigPaths: []string{},
		Exit:        func(int) {},
	})
	return out.String(), err
}

func TestLogin(t *testing.T) {
	f := &fakeAPI{login: &api.LoginResult{Success: true, Username: "Pascal", IsAdmin: true}}

	out, err := run(t, f, "", "-u", "Pascal", "-k", "ABCDEF", "login")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as Pascal (admin)\n", out)
	assert.Equal(t, [2]string{"Pascal", "ABCDEF"}, f.gotLogin)
	assert.Equal(t, "http://localhost:3001", f.server)
}

func TestToken_SentAsTyped(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		token string
		sent  func(f *fakeAPI) string
	}{
		{
			name:  "login",
			args:  []string{"login", "--username", "Pascal", "--token", "s3cret"},
			token: "s3cret",
			sent:  func(f *fakeAPI) string { return f.gotLogin[1] },
		},
		{
			name:  "users add",
			args:  []string{"-u", "Pascal", "-k", "MiXeD1", "users", "add", "Mira"},
			token: "MiXeD1",
			sent:  func(f *fakeAPI) string { return f.gotCreate[1] },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeAPI{
				login:   &api.LoginResult{Success: true, Username: "Pascal", IsAdmin: true},
				account: &api.Account{Username: "Mira", Token: "QWERTY"},
			}

			_, err := run(t, f, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.token, tt.sent(f))
		})
	}
}

func TestLogin_PromptsForMissingCredentials(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return []byte("QWERTY"), nil }

	f := &fakeAPI{login: &api.LoginResult{Success: true, Username: "Mira"}}

	out, err := run(t, f, "Mira\n", "--server", "http://habits.local", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Username\n> ")
	assert.Contains(t, out, "Token for Mira: ")
	assert.Contains(t, out, "Logged in as Mira (member)")
	assert.Equal(t, [2]string{"Mira", "QWERTY"}, f.gotLogin)
	assert.Equal(t, "http://habits.local", f.server)
}

func TestLogin_EmptyUsername(t *testing.T) {
	_, err := run(t, &fakeAPI{}, "\n", "login")
	assert.ErrorContains(t, err, "username is required")
}

func TestLogin_ServerError(t *testing.T) {
	f := &fakeAPI{err: &api.Error{Status: 401, Message: "unauthorized: invalid username or token"}}

	_, err := run(t, f, "", "-u", "Mira", "-k", "XXXXXX", "login")
	assert.True(t, api.IsStatus(err, 401))
	assert.ErrorContains(t, err, "wrong username or token for Mira")
}

func TestLogin_OtherServerErrorPassesThrough(t *testing.T) {
	f := &fakeAPI{err: &api.Error{Status: 500, Message: "internal error"}}

	_, err := run(t, f, "", "-u", "Mira", "-k", "XXXXXX", "login")
	assert.True(t, api.IsStatus(err, 500))
	assert.NotContains(t, err.Error(), "wrong username")
}

func TestUsersList(t *testing.T) {
	f := &fakeAPI{users: []api.User{{Username: "Pascal", IsAdmin: true}, {Username: "Mira"}}}

	out, err := run(t, f, "", "users", "list")
	require.NoError(t, err)
	assert.Equal(t, "USERNAME  ADMIN\nPascal    yes\nMira      -\n", out)
}

func TestUsersList_Empty(t *testing.T) {
	out, err := run(t, &fakeAPI{}, "", "users", "list")
	require.NoError(t, err)
	assert.Equal(t, "No users found\n", out)
}

func TestUsersAdd(t *testing.T) {
	f := &fakeAPI{account: &api.Account{Username: "Mira", Token: "QWERTY"}}

	out, err := run(t, f, "", "-u", "Pascal", "-k", "ABCDEF", "users", "add", "Mira")
	require.NoError(t, err)
	assert.Equal(t, [3]string{"Pascal", "ABCDEF", "Mira"}, f.gotCreate)
	assert.Contains(t, out, "Created Mira with token QWERTY")
}

func TestUsersAdd_MissingName(t *testing.T) {
	_, err := run(t, &fakeAPI{}, "", "-u", "Pascal", "-k", "ABCDEF", "users", "add")
	assert.Error(t, err)
}

func TestEntriesList(t *testing.T) {
	f := &fakeAPI{entries: []api.Entry{
		{Date: "2026-10-15", Username: "Mira", Journal: true, Movement: true},
		{Date: "2026-10-14", Username: "Pascal", Meditation: true},
		{Date: "2026-10-14", Username: "Mira"},
	}}

	out, err := run(t, f, "", "entries", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"DATE", "USER", "JOURNAL", "MEDITATION", "MOVEMENT"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"2026-10-15", "Mira", "yes", "-", "yes"}, strings.Fields(lines[1]))

	out, err = run(t, f, "", "entries", "list", "--date", "2026-10-14", "--user", "Pascal")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"2026-10-14", "Pascal", "-", "yes", "-"}, strings.Fields(lines[1]))

	out, err = run(t, f, "", "entries", "list", "--user", "Nobody")
	require.NoError(t, err)
	assert.Equal(t, "No entries found\n", out)
}

func TestEntriesList_InvalidDate(t *testing.T) {
	_, err := run(t, &fakeAPI{}, "", "entries", "list", "--date", "2026-02-30")
	assert.ErrorContains(t, err, "invalid date")
}

func TestCheckin_UsesBerlinToday(t *testing.T) {
	f := &fakeAPI{}

	out, err := run(t, f, "", "-u", "Mira", "-k", "QWERTY", "checkin", "--journal", "-b")
	require.NoError(t, err)
	require.NotNil(t, f.gotEntry)
	assert.Equal(t, api.EntryInput{Date: "2026-10-15", Username: "Mira", Token: "QWERTY", Journal: true, Movement: true}, *f.gotEntry)
	assert.Equal(t, "Saved 2026-10-15 for Mira: journal, movement\n", out)
}

func TestCheckin_NothingDone(t *testing.T) {
	out, err := run(t, &fakeAPI{}, "", "-u", "Mira", "-k", "QWERTY", "checkin")
	require.NoError(t, err)
	assert.Equal(t, "Saved 2026-10-15 for Mira: nothing done yet\n", out)
}

func TestCheckin_Forbidden(t *testing.T) {
	f := &fakeAPI{err: &api.Error{Status: 403, Message: "forbidden: entries can only be edited for today"}}

	_, err := run(t, f, "", "-u", "Mira", "-k", "QWERTY", "checkin", "-m")
	assert.EqualError(t, err, "server returned 403: forbidden: entries can only be edited for today")
}

func TestHealth(t *testing.T) {
	out, err := run(t, &fakeAPI{}, "", "health")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	_, err = run(t, &fakeAPI{err: errors.New("connection refused")}, "", "health")
	assert.Error(t, err)
}

func TestEnvCredentials(t *testing.T) {
	f := &fakeAPI{login: &api.LoginResult{Success: true, Username: "Mira"}}
	clock, err := civil.NewClock(nil)
	require.NoError(t, err)

	clearEnv(t)
	t.Setenv("HABITCHECK_USERNAME", "Mira")
	t.Setenv("HABITCHECK_TOKEN", "QWERTY")
	t.Setenv("HABITCHECK_SERVER", "http://env.local")

	var out bytes.Buffer
	err = Execute(context.Background(), []string{"login"}, Options{
		Out:         &out,
		In:          strings.NewReader(""),
		NewAPI:      func(g Globals) API { f.server = g.Server; return f },
		Clock:       clock,
		ConfigPaths: []string{},
	})
	require.NoError(t, err)
	assert.Equal(t, [2]string{"Mira", "QWERTY"}, f.gotLogin)
	assert.Equal(t, "http://env.local", f.server)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":"http://from-file","username":"Mira","token":"QWERTY"}`), 0o600))

	clock, err := civil.NewClock(nil)
	require.NoError(t, err)

	tests := []struct {
		name       string
		args       []string
		paths      []string
		wantServer string
		wantUser   string
	}{
		{name: "default path", args: []string{"login"}, paths: []string{path}, wantServer: "http://from-file", wantUser: "Mira"},
		{name: "flag beats file", args: []string{"-u", "Pascal", "login"}, paths: []string{path}, wantServer: "http://from-file", wantUser: "Pascal"},
		{name: "explicit --config", args: []string{"--config", path, "login"}, paths: []string{}, wantServer: "http://from-file", wantUser: "Mira"},
		{name: "missing default is ignored", args: []string{"-u", "Anna", "-k", "AAAAAA", "login"}, paths: []string{filepath.Join(dir, "absent.json")}, wantServer: "http://localhost:3001", wantUser: "Anna"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			f := &fakeAPI{login: &api.LoginResult{Success: true, Username: tt.wantUser}}

			var out bytes.Buffer
			err := Execute(context.Background(), tt.args, Options{
				Out:         &out,
				In:          strings.NewReader(""),
				NewAPI:      func(g Globals) API { f.server = g.Server; return f },
				Clock:       clock,
				ConfigPaths: tt.paths,
				Exit:        func(int) {},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantServer, f.server)
			assert.Equal(t, tt.wantUser, f.gotLogin[0])
		})
	}
}
