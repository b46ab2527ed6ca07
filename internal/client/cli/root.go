package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dmitrijs2005/habitcheck/internal/civil"
	"github.com/dmitrijs2005/habitcheck/internal/client/api"
)

// API is the server surface the commands need. *api.Client satisfies it.
type API interface {
	Login(ctx context.Context, username, token string) (*api.LoginResult, error)
	ListUsers(ctx context.Context) ([]api.User, error)
	CreateUser(ctx context.Context, adminUsername, adminToken, newUsername string) (*api.Account, error)
	ListEntries(ctx context.Context) ([]api.Entry, error)
	SubmitEntry(ctx context.Context, in api.EntryInput) (*api.Entry, error)
	Health(ctx context.Context) error
}

// DefaultConfigPath is read when present. Keys match long flag names:
//
//	{"server": "https://habits.example.org", "username": "Mira"}
const DefaultConfigPath = "~/.config/habitcheck/cli.json"

type Globals struct {
	Config   kong.ConfigFlag `short:"c" help:"Load flag defaults from this JSON file."`
	Server   string          `help:"Server base URL." env:"HABITCHECK_SERVER" default:"http://localhost:3001"`
	Username string          `short:"u" help:"Your username." env:"HABITCHECK_USERNAME"`
	Token    string          `short:"k" help:"Your token, sent exactly as given. Prompted for when empty." env:"HABITCHECK_TOKEN"`
	Timeout  time.Duration   `help:"Per-request timeout." env:"HABITCHECK_TIMEOUT" default:"10s"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Print version and exit."`

	Login LoginCmd `cmd:"" help:"Check your username and token."`
	Users struct {
		List UsersListCmd `cmd:"" help:"List all users."`
		Add  UsersAddCmd  `cmd:"" help:"Create a user (admins only)."`
	} `cmd:"" help:"Manage users."`
	Entries struct {
		List EntriesListCmd `cmd:"" help:"Show everyone's check-ins, newest first."`
	} `cmd:"" help:"Browse check-ins."`
	Checkin CheckinCmd `cmd:"" help:"Record today's habits."`
	Health  HealthCmd  `cmd:"" help:"Check that the server and its database are up."`
}

// Context is bound into every command's Run method.
type Context struct {
	Ctx     context.Context
	API     API
	Out     io.Writer
	In      *bufio.Reader
	Clock   *civil.Clock
	Globals *Globals
}

// Options carries the process dependencies Execute needs. Zero values fall
// back to stdio, the real HTTP client, the system clock and
// DefaultConfigPath.
type Options struct {
	Out         io.Writer
	In          io.Reader
	NewAPI      func(g Globals) API
	Clock       *civil.Clock
	ConfigPaths []string
	Version     string
	Exit        func(int)
}

// Execute parses args and runs the selected command.
func Execute(ctx context.Context, args []string, opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.NewAPI == nil {
		opts.NewAPI = func(g Globals) API {
			return api.New(g.Server, &http.Client{Timeout: g.Timeout})
		}
	}
	if opts.Clock == nil {
		clock, err := civil.NewClock(nil)
		if err != nil {
			return err
		}
		opts.Clock = clock
	}
	if opts.ConfigPaths == nil {
		opts.ConfigPaths = []string{DefaultConfigPath}
	}

	kongOpts := []kong.Option{
		kong.Name("habitcheck-cli"),
		kong.Description("Daily habit check-ins: journal, meditation, movement."),
		kong.UsageOnError(),
		kong.Writers(opts.Out, opts.Out),
		kong.Vars{"version": opts.Version},
		kong.Configuration(kong.JSON, opts.ConfigPaths...),
	}
	if opts.Exit != nil {
		kongOpts = append(kongOpts, kong.Exit(opts.Exit))
	}

	var cli CLI
	parser, err := kong.New(&cli, kongOpts...)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	return kctx.Run(&Context{
		Ctx:     ctx,
		API:     opts.NewAPI(cli.Globals),
		Out:     opts.Out,
		In:      bufio.NewReader(opts.In),
		Clock:   opts.Clock,
		Globals: &cli.Globals,
	})
}

func (c *Context) username() (string, error) {
	if c.Globals.Username != "" {
		return c.Globals.Username, nil
	}
	name, err := GetSimpleText(c.In, "Username", c.Out)
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", errors.New("username is required (--username or HABITCHECK_USERNAME)")
	}
	return name, nil
}

func (c *Context) token(username string) (string, error) {
	if c.Globals.Token != "" {
		return c.Globals.Token, nil
	}
	return GetToken(c.Out, "Token for "+username)
}

// credentials resolves the caller's username and token, prompting for
// whatever was not supplied.
func (c *Context) credentials() (string, string, error) {
	user, err := c.username()
	if err != nil {
		return "", "", err
	}
	token, err := c.token(user)
	if err != nil {
		return "", "", err
	}
	return user, token, nil
}
