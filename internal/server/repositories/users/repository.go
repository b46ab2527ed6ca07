package users

import (
	"context"

	"github.com/dmitrijs2005/habitcheck/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateToken(ctx context.Context, userName string, token string) error
}
