package internships

import (
	"context"

	domain "github.com/internova/internova/internal/models"
)

type Repository interface {
	SelectAll(ctx context.Context) ([]domain.Internship, error)
	SelectByCompany(ctx context.Context, companyID string) ([]domain.Internship, error)
	Get(ctx context.Context, id string) (*domain.Internship, error)
	Insert(ctx context.Context, in *domain.Internship) error
	Replace(ctx context.Context, in *domain.Internship) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (domain.ImportStats, error)
}
