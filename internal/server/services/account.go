// Package services contains the server-side business logic: account
// verification and issuance, the daily entry upsert, and the startup
// admin bootstrap. Services talk to storage only through repomanager.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/habitcheck/internal/common"
	"github.com/dmitrijs2005/habitcheck/internal/server/models"
	"github.com/dmitrijs2005/habitcheck/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/habitcheck/internal/server/tokens"
)

// UserInfo is the public view of an account. It never carries the token.
type UserInfo struct {
	UserName string
	IsAdmin  bool
}

// NewAccount is returned once, when an account is issued.
type NewAccount struct {
	UserName string
	Token    string
}

// AccountService verifies credentials and issues accounts.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *tokens.Generator
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, gen *tokens.Generator) *AccountService {
	if gen == nil {
		gen = tokens.NewGenerator(nil)
	}
	return &AccountService{db: db, repomanager: m, tokens: gen}
}

// Authenticate succeeds only when userName exists and token equals the
// stored token exactly.
func (s *AccountService) Authenticate(ctx context.Context, userName, token string) (*UserInfo, error) {
	if userName == "" || token == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, internalError("get user", err)
	}

	if subtle.ConstantTimeCompare([]byte(user.Token), []byte(token)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return &UserInfo{UserName: user.UserName, IsAdmin: user.IsAdmin}, nil
}

// ListUsers returns every account in creation order.
func (s *AccountService) ListUsers(ctx context.Context) ([]UserInfo, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, internalError("list users", err)
	}

	out := make([]UserInfo, 0, len(users))
	for _, u := range users {
		out = append(out, UserInfo{UserName: u.UserName, IsAdmin: u.IsAdmin})
	}
	return out, nil
}

// CreateUser issues a non-admin account on behalf of an admin. The returned
// token is not retrievable later.
func (s *AccountService) CreateUser(ctx context.Context, adminUserName, adminToken, newUserName string) (*NewAccount, error) {
	admin, err := s.Authenticate(ctx, adminUserName, adminToken)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, ErrNotAdmin
		}
		return nil, err
	}
	if !admin.IsAdmin {
		return nil, ErrNotAdmin
	}

	if strings.TrimSpace(newUserName) == "" {
		return nil, ErrMissingUsername
	}

	repo := s.repomanager.Users(s.db)

	_, err = repo.GetUserByLogin(ctx, newUserName)
	switch {
	case err == nil:
		return nil, ErrUserExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, internalError("get user", err)
	}

	token, err := s.tokens.Generate()
	if err != nil {
		return nil, internalError("generate token", err)
	}

	created, err := repo.Create(ctx, &models.User{UserName: newUserName, Token: token})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrUserExists
		}
		return nil, internalError("create user", err)
	}

	return &NewAccount{UserName: created.UserName, Token: created.Token}, nil
}
