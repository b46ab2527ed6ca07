package services

import (
	"context"
	"database/sql"
	"sort"

	"github.com/dmitrijs2005/habitcheck/internal/common"
	"github.com/dmitrijs2005/habitcheck/internal/dbx"
	"github.com/dmitrijs2005/habitcheck/internal/server/models"
	"github.com/dmitrijs2005/habitcheck/internal/server/repositories/entries"
	"github.com/dmitrijs2005/habitcheck/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	byName map[string]*models.User
	nextID int64

	getErr    error
	createErr error
	listErr   error
	updateErr error
}

func newFakeUsersRepo(seed ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byName: map[string]*models.User{}}
	for _, u := range seed {
		f.nextID++
		c := *u
		c.ID = f.nextID
		f.byName[u.UserName] = &c
	}
	return f
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	c := *u
	c.ID = f.nextID
	f.byName[u.UserName] = &c
	out := c
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.User, 0, len(f.byName))
	for _, u := range f.byName {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsersRepo) UpdateToken(ctx context.Context, userName, token string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.byName[userName]
	if !ok {
		return common.ErrorNotFound
	}
	u.Token = token
	return nil
}

type entryKey struct{ date, user string }

type fakeEntriesRepo struct {
	rows   map[entryKey]*models.Entry
	nextID int64

	findErr   error
	insertErr error
	updateErr error
	listErr   error

	inserts, updates int
}

func newFakeEntriesRepo() *fakeEntriesRepo {
	return &fakeEntriesRepo{rows: map[entryKey]*models.Entry{}}
}

func (f *fakeEntriesRepo) FindByKey(ctx context.Context, date, userName string) (*models.Entry, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	e, ok := f.rows[entryKey{date, userName}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *e
	return &c, nil
}

func (f *fakeEntriesRepo) Insert(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	f.inserts++
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	k := entryKey{e.Date, e.UserName}
	if _, ok := f.rows[k]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	c := *e
	c.ID = f.nextID
	f.rows[k] = &c
	out := c
	return &out, nil
}

func (f *fakeEntriesRepo) UpdateByKey(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	f.updates++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	row, ok := f.rows[entryKey{e.Date, e.UserName}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	row.Journal, row.Meditation, row.Movement = e.Journal, e.Meditation, e.Movement
	c := *row
	return &c, nil
}

func (f *fakeEntriesRepo) List(ctx context.Context) ([]*models.Entry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Entry, 0, len(f.rows))
	for _, e := range f.rows {
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].UserName < out[j].UserName
	})
	return out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	e entries.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository          { return m.u }
func (m *fakeRepoManager) Entries(db dbx.DBTX) entries.Repository      { return m.e }

type fakeAuth struct {
	info *UserInfo
	err  error
}

func (f *fakeAuth) Authenticate(ctx context.Context, userName, token string) (*UserInfo, error) {
	return f.info, f.err
}
