package saved

import "context"

type Repository interface {
	Insert(ctx context.Context, studentID, internshipID string) error
	Delete(ctx context.Context, studentID, internshipID string) error
	SelectByStudent(ctx context.Context, studentID string) ([]string, error)
}
