package messages

import (
	"context"

	domain "github.com/internova/internova/internal/models"
)

type Repository interface {
	Insert(ctx context.Context, msg *domain.Message) error
	SelectForUser(ctx context.Context, email string) ([]domain.Message, error)
	MarkRead(ctx context.Context, id string) error
	UnreadCount(ctx context.Context, email string) (int, error)
}
