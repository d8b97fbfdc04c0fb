package entries

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/server/models"
)

// Repository stores entries. Every method is scoped by owner; an entry
// owned by someone else is reported as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, e *models.Entry) (*models.Entry, error)
	Get(ctx context.Context, id, userID string) (*models.Entry, error)
	List(ctx context.Context, userID string) ([]*models.Entry, error)
	Update(ctx context.Context, e *models.Entry) (*models.Entry, error)
	Delete(ctx context.Context, id, userID string) error
}
