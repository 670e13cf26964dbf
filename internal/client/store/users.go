package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/internova/internova/internal/common"
	"github.com/internova/internova/internal/match"
	"github.com/internova/internova/internal/models"
)

// localAccount is an account enrolled in the durable store so that login
// works without the backend. The password is kept as a bcrypt hash only.
type localAccount struct {
	Account      models.Account `json:"account"`
	PasswordHash string         `json:"password_hash"`
}

func (s *Store) loadCurrentUserLocked(ctx context.Context) {
	var acc models.Account
	if s.loadJSON(ctx, keyCurrentUser, &acc) && acc.ID != "" {
		s.current = &acc
	}
}

func (s *Store) localAccounts(ctx context.Context) map[string]localAccount {
	accounts := make(map[string]localAccount)
	s.loadJSON(ctx, keyAccounts, &accounts)
	return accounts
}

// enrollLocked records an account in the durable store for offline login and
// makes it the current user. Callers hold s.mu.
func (s *Store) enrollLocked(ctx context.Context, acc models.Account, passwordHash string) {
	accounts := s.localAccounts(ctx)
	accounts[models.NormalizeEmail(acc.Email)] = localAccount{Account: acc, PasswordHash: passwordHash}
	s.saveJSON(ctx, keyAccounts, accounts)

	s.current = &acc
	s.saveJSON(ctx, keyCurrentUser, acc)
}

// Register creates an account. The backend is authoritative when reachable;
// when it is not, a local account is enrolled and synchronization is left to
// a later session. Registering an email that already exists locally fails
// with ErrAlreadyExists.
func (s *Store) Register(ctx context.Context, email, password, name string, accType models.AccountType, companyName string) (models.Account, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return models.Account{}, fmt.Errorf("%w: email and password are required", common.ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	acc, err := s.remote.Register(ctx, email, password, name, accType, companyName)
	if err != nil {
		if !errors.Is(err, common.ErrUnavailable) {
			return models.Account{}, err
		}
		s.log.Warn(ctx, "registration kept local only, backend unavailable", "email", email)

		s.mu.Lock()
		if _, exists := s.localAccounts(ctx)[email]; exists {
			s.mu.Unlock()
			return models.Account{}, common.ErrAlreadyExists
		}
		acc = models.Account{
			ID:        "local_user_" + uuid.NewString(),
			Name:      name,
			Email:     email,
			Type:      accType,
			IsNewUser: true,
		}
		if accType == models.AccountTypeCompany {
			acc.Profile.Company = companyName
		}
		s.enrollLocked(ctx, acc, string(hash))
		s.mu.Unlock()
		return acc, nil
	}

	s.mu.Lock()
	s.enrollLocked(ctx, acc, string(hash))
	s.mu.Unlock()
	return acc, nil
}

// Login authenticates against the backend, falling back to locally enrolled
// accounts when it is unreachable. A bad password is ErrInvalidCredentials in
// both paths.
func (s *Store) Login(ctx context.Context, email, password string) (models.Account, error) {
	email = models.NormalizeEmail(email)

	hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	acc, err := s.remote.Login(ctx, email, password)
	if err == nil {
		s.mu.Lock()
		if hashErr == nil {
			s.enrollLocked(ctx, acc, string(hash))
		} else {
			s.current = &acc
			s.saveJSON(ctx, keyCurrentUser, acc)
		}
		s.mu.Unlock()
		return acc, nil
	}
	if errors.Is(err, common.ErrUnauthorized) {
		return models.Account{}, common.ErrInvalidCredentials
	}
	if !errors.Is(err, common.ErrUnavailable) {
		return models.Account{}, err
	}

	s.log.Debug(ctx, "login served from local accounts, backend unavailable", "email", email)

	s.mu.Lock()
	defer s.mu.Unlock()
	local, ok := s.localAccounts(ctx)[email]
	if !ok {
		return models.Account{}, common.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(local.PasswordHash), []byte(password)) != nil {
		return models.Account{}, common.ErrInvalidCredentials
	}
	s.current = &local.Account
	s.saveJSON(ctx, keyCurrentUser, local.Account)
	return local.Account, nil
}

// Logout clears the current-user snapshot. Cached entity data stays.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	if err := s.kv.Delete(ctx, keyCurrentUser); err != nil {
		s.log.Warn(ctx, "failed to clear current user", "error", err)
	}
}

// CurrentUser returns the signed-in account, or false when nobody is.
func (s *Store) CurrentUser() (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.Account{}, false
	}
	return *s.current, true
}

// UpdateProfile overlays the non-zero fields of upd onto the current user's
// profile, persists the result, and forwards it best-effort. It fails only
// when nobody is signed in.
func (s *Store) UpdateProfile(ctx context.Context, upd models.Profile) (models.Account, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return models.Account{}, common.ErrUnauthorized
	}

	s.current.Profile = s.current.Profile.Merge(upd)
	s.current.IsNewUser = false
	acc := *s.current
	s.saveJSON(ctx, keyCurrentUser, acc)

	accounts := s.localAccounts(ctx)
	key := models.NormalizeEmail(acc.Email)
	if local, ok := accounts[key]; ok {
		local.Account = acc
		accounts[key] = local
		s.saveJSON(ctx, keyAccounts, accounts)
	}
	s.mu.Unlock()

	if err := s.remote.UpdateUserProfile(ctx, acc.ID, acc.Profile); err != nil {
		s.log.Warn(ctx, "profile update kept local only", "user", acc.ID, "error", err)
	}
	return acc, nil
}

// ProfileCompleteness returns the current user's profile completeness
// percentage, zero when nobody is signed in.
func (s *Store) ProfileCompleteness() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return match.Completeness(s.current.Profile)
}

// ExtractResumeSkills derives skill tags from resume text. The backend's
// extraction is preferred; when unreachable the local keyword scan runs
// instead. The result is padded or trimmed to a fixed size and filtered
// against the current user's declared skills.
func (s *Store) ExtractResumeSkills(ctx context.Context, resumeText string) []string {
	extracted, err := s.remote.ExtractSkills(ctx, resumeText)
	if err != nil {
		s.log.Debug(ctx, "skill extraction served by local keyword scan", "error", err)
		extracted = nil
	}
	skills := match.FinalizeSkills(extracted, resumeText)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		skills = match.WithoutExisting(skills, s.current.Profile.Skills)
	}
	return skills
}
