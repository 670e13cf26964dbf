package applications

import (
	"context"

	domain "github.com/internova/internova/internal/models"
)

type Repository interface {
	Insert(ctx context.Context, app *domain.Application) error
	SelectAll(ctx context.Context) ([]domain.Application, error)
	SelectByStudent(ctx context.Context, studentID string) ([]domain.Application, error)
	SelectByCompany(ctx context.Context, companyID string) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
	CountByInternship(ctx context.Context) (map[string]int, error)
}
