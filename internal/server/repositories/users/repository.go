package users

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/server/models"
)

// Repository is the identity store.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
