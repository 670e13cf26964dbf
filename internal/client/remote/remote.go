// Package remote defines the contract with the Internova backend and a
// concrete HTTP/JSON implementation.
//
// The data-access layer treats this collaborator as best-effort: every
// operation may fail with ErrUnavailable (wrapped) and callers are expected
// to fall back to local state. Common conditions are exposed as sentinel
// errors from internal/common that callers match with errors.Is.
package remote

import (
	"context"

	"github.com/internova/internova/internal/models"
)

// Aliases for the shared wire types so callers of this package do not need a
// second import.
type (
	ImportResult = models.ImportResult
	SourceCount  = models.SourceCount
	ImportStats  = models.ImportStats
)

// Client is the transport-agnostic API contract with the backend. All
// operations accept a context and honor cancellation.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	// Accounts.
	Register(ctx context.Context, email, password, name string, accType models.AccountType, companyName string) (models.Account, error)
	Login(ctx context.Context, email, password string) (models.Account, error)
	UpdateUserProfile(ctx context.Context, userID string, profile models.Profile) error

	// Internships.
	Internships(ctx context.Context) ([]models.Internship, error)
	InternshipsByCompany(ctx context.Context, companyID string) ([]models.Internship, error)
	CreateInternship(ctx context.Context, in models.Internship) (models.Internship, error)
	UpdateInternship(ctx context.Context, id string, upd models.InternshipUpdate) error
	DeleteInternship(ctx context.Context, id string) error
	Recommendations(ctx context.Context, skills []string) ([]models.Internship, error)
	ImportInternships(ctx context.Context, csvData, source string, removeDupes bool) (ImportResult, error)
	InternshipStats(ctx context.Context) (ImportStats, error)

	// Applications.
	Apply(ctx context.Context, app models.Application) (models.Application, error)
	Applications(ctx context.Context) ([]models.Application, error)
	ApplicationsByStudent(ctx context.Context, studentID string) ([]models.Application, error)
	ApplicationsByCompany(ctx context.Context, companyID string) ([]models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, error)

	// Saved relations.
	SavedInternships(ctx context.Context, studentID string) ([]string, error)
	SaveInternship(ctx context.Context, studentID, internshipID string) error
	UnsaveInternship(ctx context.Context, studentID, internshipID string) error

	// Messages.
	SendMessage(ctx context.Context, msg models.Message) error
	MessagesForUser(ctx context.Context, email string) ([]models.Message, error)
	MarkMessageRead(ctx context.Context, id string) error
	UnreadCount(ctx context.Context, email string) (int, error)

	// Resume handling.
	ExtractSkills(ctx context.Context, resumeText string) ([]string, error)
	ResumeUploadURL(ctx context.Context) (url, key string, err error)
	ResumeDownloadURL(ctx context.Context, key string) (string, error)
	UploadResume(ctx context.Context, url string, data []byte) error
}
