package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/habitcheck/internal/common"
	"github.com/dmitrijs2005/habitcheck/internal/dbx"
	"github.com/dmitrijs2005/habitcheck/internal/server/models"
)

// DefaultAdminToken seeds the admin when no token is configured.
const DefaultAdminToken = "ABCDEF"

// BootstrapResult reports what Bootstrap did to the admin account.
type BootstrapResult string

const (
	AdminCreated    BootstrapResult = "created"
	AdminReconciled BootstrapResult = "reconciled"
	AdminUnchanged  BootstrapResult = "unchanged"
)

// Bootstrap makes sure the admin account exists. An absent admin is created
// with token, or DefaultAdminToken when token is empty. An existing admin
// has its stored token replaced only when token is non-empty and differs.
// It is safe to run on every start.
func (s *AccountService) Bootstrap(ctx context.Context, adminUserName, token string) (BootstrapResult, error) {
	result := AdminUnchanged

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		admin, err := repo.GetUserByLogin(ctx, adminUserName)
		if errors.Is(err, common.ErrorNotFound) {
			seed := token
			if seed == "" {
				seed = DefaultAdminToken
			}
			if _, err := repo.Create(ctx, &models.User{UserName: adminUserName, Token: seed, IsAdmin: true}); err != nil {
				return err
			}
			result = AdminCreated
			return nil
		}
		if err != nil {
			return err
		}

		if token != "" && admin.Token != token {
			if err := repo.UpdateToken(ctx, adminUserName, token); err != nil {
				return err
			}
			result = AdminReconciled
		}
		return nil
	})
	if err != nil {
		return "", internalError("bootstrap admin", err)
	}
	return result, nil
}
