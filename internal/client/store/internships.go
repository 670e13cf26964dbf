package store

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/internova/internova/internal/match"
	"github.com/internova/internova/internal/models"
)

var parenRe = regexp.MustCompile(`\s*\(.*?\)\s*`)

// ownerMatch reports whether a listing belongs to the company identified by
// id or display name. Listings imported from external feeds carry no owner
// id, so the name comparison is deliberately loose: case-insensitive
// equality, substring containment either way, and equality after stripping
// parenthesized qualifiers like "(Remote)".
func ownerMatch(in models.Internship, companyID, companyName string) bool {
	if companyID != "" && in.CompanyID == companyID {
		return true
	}
	if companyName == "" || in.Company == "" {
		return false
	}
	a := strings.ToLower(strings.TrimSpace(in.Company))
	b := strings.ToLower(strings.TrimSpace(companyName))
	if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return strings.TrimSpace(parenRe.ReplaceAllString(a, " ")) ==
		strings.TrimSpace(parenRe.ReplaceAllString(b, " "))
}

// loadInternshipsLocked rehydrates the listing cache from the durable store.
func (s *Store) loadInternshipsLocked(ctx context.Context) {
	var items []models.Internship
	if s.loadJSON(ctx, keyInternships, &items) {
		s.internships = items
	}
}

// fetchInternships folds the backend's listings into the cache and persists
// the merged result. The network call runs without holding the cache lock so
// other operations proceed while it is in flight. Remote failure leaves the
// cache untouched.
func (s *Store) fetchInternships(ctx context.Context) {
	fetched, err := s.remote.Internships(ctx)
	if err != nil {
		s.log.Debug(ctx, "listing refresh skipped, backend unavailable", "error", err)
		return
	}
	s.mu.Lock()
	s.internships = mergeByID(s.internships, fetched)
	s.lastFetch[keyInternships] = s.now()
	s.saveJSON(ctx, keyInternships, s.internships)
	s.mu.Unlock()
}

// Internships returns all non-closed listings. The cache is rehydrated from
// the durable store on first use and, while it stays populated, is returned
// as-is: the backend is consulted only when both local tiers are empty, and
// at most once per freshness window. Reconciliation of a populated cache is
// the background poller's job. It never returns an error.
func (s *Store) Internships(ctx context.Context) []models.Internship {
	s.mu.Lock()
	if len(s.internships) == 0 {
		s.loadInternshipsLocked(ctx)
	}
	needFetch := len(s.internships) == 0 && !s.cacheFresh(keyInternships)
	s.mu.Unlock()

	if needFetch {
		s.fetchInternships(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Internship, 0, len(s.internships))
	for _, in := range s.internships {
		if in.Status == models.ListingStatusClosed {
			continue
		}
		out = append(out, in)
	}
	return out
}

// InternshipByID looks up a cached listing. It consults local tiers only;
// a listing the client has never seen is reported as absent.
func (s *Store) InternshipByID(ctx context.Context, id string) (models.Internship, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.internships) == 0 {
		s.loadInternshipsLocked(ctx)
	}
	for _, in := range s.internships {
		if in.ID == id {
			return in, true
		}
	}
	return models.Internship{}, false
}

// InternshipsByOwner returns the listings belonging to a company account,
// matched by owner id or fuzzy display name. Closed listings are included so
// owners can manage them.
func (s *Store) InternshipsByOwner(ctx context.Context, companyID, companyName string) []models.Internship {
	all := s.allInternships(ctx)

	out := make([]models.Internship, 0)
	for _, in := range all {
		if ownerMatch(in, companyID, companyName) {
			out = append(out, in)
		}
	}
	return out
}

// allInternships is Internships without the status filter.
func (s *Store) allInternships(ctx context.Context) []models.Internship {
	s.mu.Lock()
	if len(s.internships) == 0 {
		s.loadInternshipsLocked(ctx)
	}
	needFetch := len(s.internships) == 0 && !s.cacheFresh(keyInternships)
	s.mu.Unlock()

	if needFetch {
		s.fetchInternships(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Internship, len(s.internships))
	copy(out, s.internships)
	return out
}

// CreateInternship assigns a provisional local id, commits the listing to
// cache and durable store, then offers it to the backend. When the backend
// answers with its own id the local copy is rewritten to the authoritative
// one; when the backend is unreachable the provisional listing stands and a
// later refresh reconciles.
func (s *Store) CreateInternship(ctx context.Context, in models.Internship) models.Internship {
	if in.ID == "" {
		in.ID = "local_int_" + uuid.NewString()
	}
	if in.Status == "" {
		in.Status = models.ListingStatusActive
	}
	if in.Posted.IsZero() {
		in.Posted = s.now()
	}
	in.CreatedAt = s.now()
	in.Skills = models.DedupeSkills(in.Skills)

	s.mu.Lock()
	s.internships = mergeByID(s.internships, []models.Internship{in})
	s.saveJSON(ctx, keyInternships, s.internships)
	s.mu.Unlock()

	created, err := s.remote.CreateInternship(ctx, in)
	if err != nil {
		s.log.Warn(ctx, "listing kept local only, backend unavailable", "id", in.ID, "error", err)
		return in
	}

	s.mu.Lock()
	for i := range s.internships {
		if s.internships[i].ID == in.ID {
			s.internships[i] = created
			break
		}
	}
	s.saveJSON(ctx, keyInternships, s.internships)
	s.mu.Unlock()
	return created
}

// UpdateInternship applies a partial update to a cached listing and forwards
// it to the backend best-effort. It reports whether the listing was found
// locally; an unknown id is a no-op.
func (s *Store) UpdateInternship(ctx context.Context, id string, upd models.InternshipUpdate) bool {
	s.mu.Lock()
	found := false
	for i := range s.internships {
		if s.internships[i].ID == id {
			upd.ApplyTo(&s.internships[i])
			found = true
			break
		}
	}
	if found {
		s.saveJSON(ctx, keyInternships, s.internships)
	}
	s.mu.Unlock()

	if !found {
		return false
	}
	if err := s.remote.UpdateInternship(ctx, id, upd); err != nil {
		s.log.Warn(ctx, "listing update kept local only", "id", id, "error", err)
	}
	return true
}

// DeleteInternship removes a listing locally and forwards the deletion.
// Deleting an unknown id succeeds silently.
func (s *Store) DeleteInternship(ctx context.Context, id string) {
	s.mu.Lock()
	out := s.internships[:0]
	for _, in := range s.internships {
		if in.ID != id {
			out = append(out, in)
		}
	}
	s.internships = out
	s.saveJSON(ctx, keyInternships, s.internships)
	s.mu.Unlock()

	if err := s.remote.DeleteInternship(ctx, id); err != nil {
		s.log.Warn(ctx, "listing deletion kept local only", "id", id, "error", err)
	}
}

// Recommended returns listings ranked for the given skills. The backend does
// the ranking when reachable; otherwise the local listing set is ranked with
// the same scoring rules.
func (s *Store) Recommended(ctx context.Context, skills []string) []models.Internship {
	if recs, err := s.remote.Recommendations(ctx, skills); err == nil {
		return s.enrich(ctx, recs)
	} else {
		s.log.Debug(ctx, "recommendations served from local listings", "error", err)
	}

	all := s.Internships(ctx)
	ranked := make([]models.Internship, 0, len(all))
	for _, in := range all {
		if match.MatchedCount(skills, in.Skills) >= 1 {
			ranked = append(ranked, in)
		}
	}
	return s.enrich(ctx, ranked)
}

// Enriched decorates listings with per-viewer derived fields: match score
// against the current student's skills, a synthetic acceptance estimate, and
// the local applicant count.
func (s *Store) Enriched(ctx context.Context, items []models.Internship) []models.Internship {
	return s.enrich(ctx, items)
}

func (s *Store) enrich(ctx context.Context, items []models.Internship) []models.Internship {
	s.mu.Lock()
	defer s.mu.Unlock()

	var profile models.Profile
	if s.current != nil {
		profile = s.current.Profile
	}

	counts := make(map[string]int, len(s.applications))
	for _, app := range s.applications {
		counts[app.InternshipID]++
	}

	out := make([]models.Internship, len(items))
	for i, in := range items {
		in.MatchScore = match.Score(profile.Skills, in.Skills)
		base := match.AcceptanceBase(s.rng)
		in.AcceptanceRate = match.AcceptanceEstimate(base, profile, in)
		in.Applicants = counts[in.ID]
		out[i] = in
	}
	return out
}
