package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/habitcheck/internal/civil"
	"github.com/dmitrijs2005/habitcheck/internal/common"
	"github.com/dmitrijs2005/habitcheck/internal/server/models"
	"github.com/dmitrijs2005/habitcheck/internal/server/repositories/repomanager"
)

// Authenticator checks a username/token pair.
type Authenticator interface {
	Authenticate(ctx context.Context, userName, token string) (*UserInfo, error)
}

// Submission is one day's check-in. All three habits are replaced on every
// submission; a false value clears a previous true.
type Submission struct {
	Date       string
	UserName   string
	Token      string
	Journal    bool
	Meditation bool
	Movement   bool
}

type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	auth        Authenticator
	clock       *civil.Clock
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, auth Authenticator, clock *civil.Clock) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: m,
		auth:        auth,
		clock:       clock,
	}
}

// ListEntries returns every user's entries, newest date first.
func (s *EntryService) ListEntries(ctx context.Context) ([]*models.Entry, error) {
	entries, err := s.repomanager.Entries(s.db).List(ctx)
	if err != nil {
		return nil, internalError("list entries", err)
	}
	return entries, nil
}

// SubmitEntry creates or replaces the caller's entry for today. The date
// must equal today in Europe/Berlin as seen by the server clock.
func (s *EntryService) SubmitEntry(ctx context.Context, sub Submission) (*models.Entry, error) {
	if sub.Date == "" || sub.UserName == "" || sub.Token == "" {
		return nil, ErrIncompleteEntry
	}

	if _, err := s.auth.Authenticate(ctx, sub.UserName, sub.Token); err != nil {
		return nil, err
	}

	if sub.Date != s.clock.Today() {
		return nil, ErrNotToday
	}

	entry := &models.Entry{
		Date:       sub.Date,
		UserName:   sub.UserName,
		Journal:    sub.Journal,
		Meditation: sub.Meditation,
		Movement:   sub.Movement,
	}

	repo := s.repomanager.Entries(s.db)

	_, err := repo.FindByKey(ctx, entry.Date, entry.UserName)
	switch {
	case err == nil:
		return s.update(ctx, entry)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, internalError("find entry", err)
	}

	created, err := repo.Insert(ctx, entry)
	if err == nil {
		return created, nil
	}
	// A concurrent submission for the same key won the insert.
	if errors.Is(err, common.ErrorAlreadyExists) {
		return s.update(ctx, entry)
	}
	return nil, internalError("insert entry", err)
}

func (s *EntryService) update(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	updated, err := s.repomanager.Entries(s.db).UpdateByKey(ctx, entry)
	if err != nil {
		return nil, internalError("update entry", err)
	}
	return updated, nil
}
