package cli

import (
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/habitcheck/internal/civil"
	"github.com/dmitrijs2005/habitcheck/internal/client/api"
)

type LoginCmd struct{}

func (l *LoginCmd) Run(ctx *Context) error {
	user, token, err := ctx.credentials()
	if err != nil {
		return err
	}

	res, err := ctx.API.Login(ctx.Ctx, user, token)
	if api.IsStatus(err, http.StatusUnauthorized) {
		return fmt.Errorf("wrong username or token for %s: %w", user, err)
	}
	if err != nil {
		return err
	}

	role := "member"
	if res.IsAdmin {
		role = "admin"
	}
	fmt.Fprintf(ctx.Out, "Logged in as %s (%s)\n", res.Username, role)
	return nil
}

type UsersListCmd struct{}

func (u *UsersListCmd) Run(ctx *Context) error {
	users, err := ctx.API.ListUsers(ctx.Ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(ctx.Out, "No users found")
		return nil
	}

	w := tabwriter.NewWriter(ctx.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tADMIN")
	for _, user := range users {
		fmt.Fprintf(w, "%s\t%s\n", user.Username, yesNo(user.IsAdmin))
	}
	return w.Flush()
}

type UsersAddCmd struct {
	Name string `arg:"" help:"Username for the new account."`
}

func (u *UsersAddCmd) Run(ctx *Context) error {
	admin, token, err := ctx.credentials()
	if err != nil {
		return err
	}

	acc, err := ctx.API.CreateUser(ctx.Ctx, admin, token, u.Name)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Created %s with token %s\n", acc.Username, acc.Token)
	fmt.Fprintln(ctx.Out, "The token is shown only this once. Pass it on now.")
	return nil
}

type EntriesListCmd struct {
	Date string `help:"Only show this date (YYYY-MM-DD)."`
	User string `help:"Only show this user's entries."`
}

func (e *EntriesListCmd) Validate() error {
	if e.Date != "" && !civil.ValidDate(e.Date) {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", e.Date)
	}
	return nil
}

func (e *EntriesListCmd) Run(ctx *Context) error {
	entries, err := ctx.API.ListEntries(ctx.Ctx)
	if err != nil {
		return err
	}

	shown := entries[:0:0]
	for _, entry := range entries {
		if e.Date != "" && entry.Date != e.Date {
			continue
		}
		if e.User != "" && entry.Username != e.User {
			continue
		}
		shown = append(shown, entry)
	}
	if len(shown) == 0 {
		fmt.Fprintln(ctx.Out, "No entries found")
		return nil
	}

	w := tabwriter.NewWriter(ctx.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tUSER\tJOURNAL\tMEDITATION\tMOVEMENT")
	for _, entry := range shown {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", entry.Date, entry.Username,
			yesNo(entry.Journal), yesNo(entry.Meditation), yesNo(entry.Movement))
	}
	return w.Flush()
}

// CheckinCmd always submits today's Berlin date. Habits left out are
// recorded as not done, replacing anything sent earlier today.
type CheckinCmd struct {
	Journal    bool `short:"j" help:"Journaled today."`
	Meditation bool `short:"m" help:"Meditated today."`
	Movement   bool `short:"b" help:"Moved today."`
}

func (c *CheckinCmd) Run(ctx *Context) error {
	user, token, err := ctx.credentials()
	if err != nil {
		return err
	}

	entry, err := ctx.API.SubmitEntry(ctx.Ctx, api.EntryInput{
		Date:       ctx.Clock.Today(),
		Username:   user,
		Token:      token,
		Journal:    c.Journal,
		Meditation: c.Meditation,
		Movement:   c.Movement,
	})
	if err != nil {
		return err
	}

	var done []string
	if entry.Journal {
		done = append(done, "journal")
	}
	if entry.Meditation {
		done = append(done, "meditation")
	}
	if entry.Movement {
		done = append(done, "movement")
	}
	if len(done) == 0 {
		fmt.Fprintf(ctx.Out, "Saved %s for %s: nothing done yet\n", entry.Date, entry.Username)
		return nil
	}
	fmt.Fprintf(ctx.Out, "Saved %s for %s: %s\n", entry.Date, entry.Username, strings.Join(done, ", "))
	return nil
}

type HealthCmd struct{}

func (h *HealthCmd) Run(ctx *Context) error {
	if err := ctx.API.Health(ctx.Ctx); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "ok")
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
