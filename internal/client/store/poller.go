package store

import (
	"context"
	"slices"
	"time"
)

// StartRefresh polls the backend on the given interval, folding fresh
// listings, applications, messages and saved relations into the local tiers.
// It blocks until ctx is cancelled; callers run it in a goroutine.
func (s *Store) StartRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug(ctx, "background refresh stopped")
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh performs one synchronization pass against the backend regardless of
// cache freshness. Failures are logged and skipped; local state is never
// rolled back.
func (s *Store) Refresh(ctx context.Context) {
	s.fetchInternships(ctx)
	s.fetchApplications(ctx)

	s.mu.Lock()
	var email, studentID string
	if s.current != nil {
		email = s.current.Email
		studentID = s.current.ID
	}
	s.mu.Unlock()

	if email == "" {
		return
	}

	if fetched, err := s.remote.MessagesForUser(ctx, email); err == nil {
		s.mu.Lock()
		if len(s.messages) == 0 {
			s.loadMessagesLocked(ctx)
		}
		s.messages = mergeByID(s.messages, fetched)
		s.lastFetch[keyMessages] = s.now()
		s.saveJSON(ctx, keyMessages, s.messages)
		s.mu.Unlock()
	} else {
		s.log.Debug(ctx, "message refresh skipped, backend unavailable", "error", err)
	}

	if ids, err := s.remote.SavedInternships(ctx, studentID); err == nil {
		s.mu.Lock()
		if len(s.saved) == 0 {
			s.loadSavedLocked(ctx)
		}
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
