package entries

import (
	"context"

	"github.com/dmitrijs2005/habitcheck/internal/server/models"
)

// Repository exposes the three keyed primitives the upsert rule needs plus a
// listing. Insert reports a (date, username) collision as
// common.ErrorAlreadyExists.
type Repository interface {
	FindByKey(ctx context.Context, date, userName string) (*models.Entry, error)
	Insert(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	UpdateByKey(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	List(ctx context.Context) ([]*models.Entry, error)
}
