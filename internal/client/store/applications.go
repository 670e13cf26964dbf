package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/internova/internova/internal/models"
)

// loadApplicationsLocked rehydrates the application cache from the durable
// store.
func (s *Store) loadApplicationsLocked(ctx context.Context) {
	var items []models.Application
	if s.loadJSON(ctx, keyApplications, &items) {
		s.applications = items
	}
}

// fetchApplications folds the backend's applications into the cache. The
// network call runs without holding the cache lock.
func (s *Store) fetchApplications(ctx context.Context) {
	fetched, err := s.remote.Applications(ctx)
	if err != nil {
		s.log.Debug(ctx, "application refresh skipped, backend unavailable", "error", err)
		return
	}
	s.mu.Lock()
	s.applications = mergeByID(s.applications, fetched)
	s.lastFetch[keyApplications] = s.now()
	s.saveJSON(ctx, keyApplications, s.applications)
	s.mu.Unlock()
}

// Apply submits an application for the current state of the student account.
// The student's name, email and profile are snapshotted into the record so
// later profile edits leave submitted applications untouched. Re-applying to
// the same listing is allowed and creates a new record.
func (s *Store) Apply(ctx context.Context, student models.Account, in models.Internship) models.Application {
	profile := student.Profile
	profile.Skills = append([]string(nil), student.Profile.Skills...)

	app := models.Application{
		ID:             "app_" + uuid.NewString(),
		StudentID:      student.ID,
		InternshipID:   in.ID,
		CompanyID:      in.CompanyID,
		AppliedAt:      s.now(),
		Status:         models.ApplicationStatusApplied,
		StudentProfile: profile,
		StudentName:    student.Name,
		StudentEmail:   student.Email,
	}

	s.mu.Lock()
	s.applications = append(s.applications, app)
	s.saveJSON(ctx, keyApplications, s.applications)
	s.mu.Unlock()

	created, err := s.remote.Apply(ctx, app)
	if err != nil {
		s.log.Warn(ctx, "application kept local only, backend unavailable", "id", app.ID, "error", err)
		return app
	}

	s.mu.Lock()
	for i := range s.applications {
		if s.applications[i].ID == app.ID {
			s.applications[i] = created
			break
		}
	}
	s.saveJSON(ctx, keyApplications, s.applications)
	s.mu.Unlock()
	return created
}

// Applications returns every application visible to this client. A populated
// cache is returned as-is; the backend is consulted only when both local
// tiers are empty, at most once per freshness window.
func (s *Store) Applications(ctx context.Context) []models.Application {
	s.mu.Lock()
	if len(s.applications) == 0 {
		s.loadApplicationsLocked(ctx)
	}
	needFetch := len(s.applications) == 0 && !s.cacheFresh(keyApplications)
	s.mu.Unlock()

	if needFetch {
		s.fetchApplications(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Application, len(s.applications))
	copy(out, s.applications)
	return out
}

// ApplicationsByStudent returns the student's own applications.
func (s *Store) ApplicationsByStudent(ctx context.Context, studentID string) []models.Application {
	all := s.Applications(ctx)
	out := make([]models.Application, 0)
	for _, app := range all {
		if app.StudentID == studentID {
			out = append(out, app)
		}
	}
	return out
}

// ApplicationsByCompany returns the applications submitted to a company's
// listings. Ownership uses the same id-or-fuzzy-name rules as listing
// lookups, plus the owner id stamped on the application itself.
func (s *Store) ApplicationsByCompany(ctx context.Context, companyID, companyName string) []models.Application {
	owned := make(map[string]struct{})
	for _, in := range s.InternshipsByOwner(ctx, companyID, companyName) {
		owned[in.ID] = struct{}{}
	}

	all := s.Applications(ctx)
	out := make([]models.Application, 0)
	for _, app := range all {
		if _, ok := owned[app.InternshipID]; ok {
			out = append(out, app)
			continue
		}
		if companyID != "" && app.CompanyID == companyID {
			out = append(out, app)
		}
	}
	return out
}

// UpdateApplicationStatus moves an application to a new review status and
// forwards the change best-effort. An unknown id is a no-op reported as
// false.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) bool {
	s.mu.Lock()
	found := false
	for i := range s.applications {
		if s.applications[i].ID == id {
			s.applications[i].Status = status
			found = true
			break
		}
	}
	if found {
		s.saveJSON(ctx, keyApplications, s.applications)
	}
	s.mu.Unlock()

	if !found {
		return false
	}
	if _, err := s.remote.UpdateApplicationStatus(ctx, id, status); err != nil {
		s.log.Warn(ctx, "application status kept local only", "id", id, "error", err)
	}
	return true
}
