package store

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/internova/internova/internal/models"
)

// loadMessagesLocked rehydrates the message cache from the durable store.
func (s *Store) loadMessagesLocked(ctx context.Context) {
	var items []models.Message
	if s.loadJSON(ctx, keyMessages, &items) {
		s.messages = items
	}
}

// SendMessage stores a message locally and forwards it best-effort. The
// sender's address is stamped from the message as given; addressing is by
// email on both ends.
func (s *Store) SendMessage(ctx context.Context, msg models.Message) models.Message {
	if msg.ID == "" {
		msg.ID = "msg_" + uuid.NewString()
	}
	if msg.Type == "" {
		msg.Type = models.MessageTypeMessage
	}
	msg.From = models.NormalizeEmail(msg.From)
	msg.To = models.NormalizeEmail(msg.To)
	msg.Timestamp = s.now()

	s.mu.Lock()
	if len(s.messages) == 0 {
		s.loadMessagesLocked(ctx)
	}
	s.messages = append(s.messages, msg)
	s.saveJSON(ctx, keyMessages, s.messages)
	s.mu.Unlock()

	if err := s.remote.SendMessage(ctx, msg); err != nil {
		s.log.Warn(ctx, "message kept local only, backend unavailable", "id", msg.ID, "error", err)
	}
	return msg
}

// MessagesFor returns the messages a user sent or received, newest first.
// A populated cache is returned as-is; the backend is consulted only when
// both local tiers are empty, at most once per freshness window. New mail on
// a populated cache arrives through the background poller.
func (s *Store) MessagesFor(ctx context.Context, email string) []models.Message {
	email = models.NormalizeEmail(email)

	s.mu.Lock()
	if len(s.messages) == 0 {
		s.loadMessagesLocked(ctx)
	}
	needFetch := len(s.messages) == 0 && !s.cacheFresh(keyMessages)
	s.mu.Unlock()

	if needFetch {
		if fetched, err := s.remote.MessagesForUser(ctx, email); err == nil {
			s.mu.Lock()
			s.messages = mergeByID(s.messages, fetched)
			s.lastFetch[keyMessages] = s.now()
			s.saveJSON(ctx, keyMessages, s.messages)
			s.mu.Unlock()
		} else {
			s.log.Debug(ctx, "message refresh skipped, backend unavailable", "error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Message, 0)
	for _, m := range s.messages {
		if m.From == email || m.To == email {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// MarkRead flips a message's read flag. Only the recipient's view changes;
// an unknown id is a no-op.
func (s *Store) MarkRead(ctx context.Context, id string) {
	s.mu.Lock()
	if len(s.messages) == 0 {
		s.loadMessagesLocked(ctx)
	}
	found := false
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Read = true
			found = true
			break
		}
	}
	if found {
		s.saveJSON(ctx, keyMessages, s.messages)
	}
	s.mu.Unlock()

	if err := s.remote.MarkMessageRead(ctx, id); err != nil {
		s.log.Warn(ctx, "read flag kept local only", "id", id, "error", err)
	}
}

// UnreadCount returns the number of unread messages addressed to the user.
// The backend's count is preferred; when unreachable the count falls back to
// the local cache.
func (s *Store) UnreadCount(ctx context.Context, email string) int {
	email = models.NormalizeEmail(email)

	if n, err := s.remote.UnreadCount(ctx, email); err == nil {
		return n
	} else {
		s.log.Debug(ctx, "unread count served from local cache", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		s.loadMessagesLocked(ctx)
	}
	n := 0
	for _, m := range s.messages {
		if m.To == email && !m.Read {
			n++
		}
	}
	return n
}
