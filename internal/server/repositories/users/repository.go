package users

import (
	"context"

	domain "github.com/internova/internova/internal/models"
	"github.com/internova/internova/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, profile domain.Profile) error
}
