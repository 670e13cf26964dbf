package store

import (
	"context"
	"slices"
)

// loadSavedLocked rehydrates the saved-relation cache from the durable store.
func (s *Store) loadSavedLocked(ctx context.Context) {
	items := make(map[string][]string)
	if s.loadJSON(ctx, keySaved, &items) {
		s.saved = items
	}
}

// Saved returns the ids of the listings a student has bookmarked. A populated
// local set is returned as-is; the backend copy is consulted only when
// nothing is known locally, at most once per freshness window.
func (s *Store) Saved(ctx context.Context, studentID string) []string {
	s.mu.Lock()
	if len(s.saved) == 0 {
		s.loadSavedLocked(ctx)
	}
	needFetch := len(s.saved[studentID]) == 0 && !s.cacheFresh(keySaved)
	s.mu.Unlock()

	if needFetch {
		if ids, err := s.remote.SavedInternships(ctx, studentID); err == nil {
			s.mu.Lock()
			merged := s.saved[studentID]
			for _, id := range ids {
				if !slices.Contains(merged, id) {
					merged = append(merged, id)
				}
			}
			s.saved[studentID] = merged
			s.lastFetch[keySaved] = s.now()
			s.saveJSON(ctx, keySaved, s.saved)
			s.mu.Unlock()
		} else {
			s.log.Debug(ctx, "saved refresh skipped, backend unavailable", "error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.saved[studentID]...)
}

// IsSaved reports whether the student has bookmarked the listing. Local tiers
// only.
func (s *Store) IsSaved(ctx context.Context, studentID, internshipID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.saved) == 0 {
		s.loadSavedLocked(ctx)
	}
	return slices.Contains(s.saved[studentID], internshipID)
}

// Save bookmarks a listing for a student. Saving an already-saved listing is
// a no-op.
func (s *Store) Save(ctx context.Context, studentID, internshipID string) {
	s.mu.Lock()
	if len(s.saved) == 0 {
		s.loadSavedLocked(ctx)
	}
	if !slices.Contains(s.saved[studentID], internshipID) {
		s.saved[studentID] = append(s.saved[studentID], internshipID)
		s.saveJSON(ctx, keySaved, s.saved)
	}
	s.mu.Unlock()

	if err := s.remote.SaveInternship(ctx, studentID, internshipID); err != nil {
		s.log.Warn(ctx, "bookmark kept local only", "internship", internshipID, "error", err)
	}
}

// Unsave removes a bookmark. Removing an absent bookmark is a no-op.
func (s *Store) Unsave(ctx context.Context, studentID, internshipID string) {
	s.mu.Lock()
	if len(s.saved) == 0 {
		s.loadSavedLocked(ctx)
	}
	ids := s.saved[studentID]
	if i := slices.Index(ids, internshipID); i >= 0 {
		s.saved[studentID] = slices.Delete(ids, i, i+1)
		s.saveJSON(ctx, keySaved, s.saved)
	}
	s.mu.Unlock()

	if err := s.remote.UnsaveInternship(ctx, studentID, internshipID); err != nil {
		s.log.Warn(ctx, "bookmark removal kept local only", "internship", internshipID, "error", err)
	}
}
