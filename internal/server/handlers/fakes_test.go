package handlers

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/internova/internova/internal/common"
	"github.com/internova/internova/internal/dbx"
	domain "github.com/internova/internova/internal/models"
	"github.com/internova/internova/internal/server/models"
	"github.com/internova/internova/internal/server/repositories/applications"
	"github.com/internova/internova/internal/server/repositories/internships"
	"github.com/internova/internova/internal/server/repositories/messages"
	"github.com/internova/internova/internal/server/repositories/saved"
	"github.com/internova/internova/internal/server/repositories/users"
)

// memManager backs every repository with in-process maps so handlers can be
// exercised without a database.
type memManager struct {
	mu           sync.Mutex
	users        map[string]*models.User
	listings     []domain.Internship
	applications []domain.Application
	saved        map[string][]string
	messages     []domain.Message
}

func newMemManager() *memManager {
	return &memManager{
		users: make(map[string]*models.User),
		saved: make(map[string][]string),
	}
}

func (m *memManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *memManager) Users(dbx.DBTX) users.Repository               { return (*memUsers)(m) }
func (m *memManager) Internships(dbx.DBTX) internships.Repository   { return (*memInternships)(m) }
func (m *memManager) Applications(dbx.DBTX) applications.Repository { return (*memApplications)(m) }
func (m *memManager) Saved(dbx.DBTX) saved.Repository               { return (*memSaved)(m) }
func (m *memManager) Messages(dbx.DBTX) messages.Repository         { return (*memMessages)(m) }

type memUsers memManager

func (r *memUsers) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (r *memUsers) UpdateProfile(_ context.Context, id string, profile domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Profile = profile
	return nil
}

type memInternships memManager

func (r *memInternships) SelectAll(context.Context) ([]domain.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Internship(nil), r.listings...), nil
}

func (r *memInternships) SelectByCompany(_ context.Context, companyID string) ([]domain.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Internship
	for _, in := range r.listings {
		if in.CompanyID == companyID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (r *memInternships) Get(_ context.Context, id string) (*domain.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, in := range r.listings {
		if in.ID == id {
			cp := in
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memInternships) Insert(_ context.Context, in *domain.Internship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings = append(r.listings, *in)
	return nil
}

func (r *memInternships) Replace(_ context.Context, in *domain.Internship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.listings {
		if r.listings[i].ID == in.ID {
			r.listings[i] = *in
			return nil
		}
	}
	return nil
}

func (r *memInternships) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.listings[:0]
	for _, in := range r.listings {
		if in.ID != id {
			out = append(out, in)
		}
	}
	r.listings = out
	return nil
}

func (r *memInternships) Stats(context.Context) (domain.ImportStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := domain.ImportStats{Total: len(r.listings)}
	companies := make(map[string]struct{})
	sources := make(map[string]int)
	for _, in := range r.listings {
		if in.Status == domain.ListingStatusClosed {
			stats.Closed++
		} else {
			stats.Active++
		}
		companies[in.Company] = struct{}{}
		if in.Source != "" {
			sources[in.Source]++
		}
	}
	stats.Companies = len(companies)
	for src, n := range sources {
		stats.Sources = append(stats.Sources, domain.SourceCount{Source: src, Count: n})
	}
	sort.Slice(stats.Sources, func(i, j int) bool { return stats.Sources[i].Source < stats.Sources[j].Source })
	return stats, nil
}

type memApplications memManager

func (r *memApplications) Insert(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applications = append(r.applications, *app)
	return nil
}

func (r *memApplications) SelectAll(context.Context) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Application(nil), r.applications...), nil
}

func (r *memApplications) SelectByStudent(_ context.Context, studentID string) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Application
	for _, a := range r.applications {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memApplications) SelectByCompany(_ context.Context, companyID string) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Application
	for _, a := range r.applications {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memApplications) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.applications {
		if r.applications[i].ID == id {
			r.applications[i].Status = status
			cp := r.applications[i]
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memApplications) CountByInternship(context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int)
	for _, a := range r.applications {
		counts[a.InternshipID]++
	}
	return counts, nil
}

type memSaved memManager

func (r *memSaved) Insert(_ context.Context, studentID, internshipID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.saved[studentID] {
		if id == internshipID {
			return nil
		}
	}
	r.saved[studentID] = append(r.saved[studentID], internshipID)
	return nil
}

func (r *memSaved) Delete(_ context.Context, studentID, internshipID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.saved[studentID][:0]
	for _, id := range r.saved[studentID] {
		if id != internshipID {
			out = append(out, id)
		}
	}
	r.saved[studentID] = out
	return nil
}

func (r *memSaved) SelectByStudent(_ context.Context, studentID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.saved[studentID]...), nil
}

type memMessages memManager

func (r *memMessages) Insert(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *memMessages) SelectForUser(_ context.Context, email string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.messages {
		if m.From == email || m.To == email {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (r *memMessages) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages[i].Read = true
		}
	}
	return nil
}

func (r *memMessages) UnreadCount(_ context.Context, email string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.messages {
		if m.To == email && !m.Read {
			n++
		}
	}
	return n, nil
}
