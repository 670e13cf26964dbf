package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/internova/internova/internal/client/remote"
	"github.com/internova/internova/internal/common"
	"github.com/internova/internova/internal/logging"
	"github.com/internova/internova/internal/models"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// memKV is an in-memory durable store.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKV) List(_ context.Context) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		out[k] = append([]byte(nil), v...)
	}
	return out, nil
}

func (m *memKV) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}

// failKV errors on every call, standing in for a corrupt durable store.
type failKV struct{}

var errDisk = errors.New("disk failure")

func (failKV) Get(context.Context, string) ([]byte, error)     { return nil, errDisk }
func (failKV) Set(context.Context, string, []byte) error       { return errDisk }
func (failKV) Delete(context.Context, string) error            { return errDisk }
func (failKV) List(context.Context) (map[string][]byte, error) { return nil, errDisk }
func (failKV) Clear(context.Context) error                     { return errDisk }

// unavailableRemote answers every call with ErrUnavailable, standing in for
// an unreachable backend. Test doubles embed it and override what they need.
type unavailableRemote struct{}

func (unavailableRemote) Close() error               { return nil }
func (unavailableRemote) Ping(context.Context) error { return common.ErrUnavailable }

func (unavailableRemote) Register(context.Context, string, string, string, models.AccountType, string) (models.Account, error) {
	return models.Account{}, common.ErrUnavailable
}

func (unavailableRemote) Login(context.Context, string, string) (models.Account, error) {
	return models.Account{}, common.ErrUnavailable
}

func (unavailableRemote) UpdateUserProfile(context.Context, string, models.Profile) error {
	return common.ErrUnavailable
}

func (unavailableRemote) Internships(context.Context) ([]models.Internship, error) {
	return nil, common.ErrUnavailable
}

func (unavailableRemote) InternshipsByCompany(context.Context, string) ([]models.Internship, error) {
	return nil, common.ErrUnavailable
}

func (unavailableRemote) CreateInternship(context.Context, models.Internship) (models.Internship, error) {
	return models.Internship{}, common.ErrUnavailable
}

func (unavailableRemote) UpdateInternship(context.Context, string, models.InternshipUpdate) error {
	return common.ErrUnavailable
}

func (unavailableRemote) DeleteInternship(context.Context, string) error {
	return common.ErrUnavailable
}

func (unavailableRemote) Recommendations(context.Context, []string) ([]models.Internship, error) {
	return nil, common.ErrUnavailable
}

func (unavailableRemote) ImportInternships(context.Context, string, string, bool) (remote.ImportResult, error) {
	return remote.ImportResult{}, common.ErrUnavailable
}

func (unavailableRemote) InternshipStats(context.Context) (remote.ImportStats, error) {
	return remote.ImportStats{}, common.ErrUnavailable
}

func (unavailableRemote) Apply(context.Context, models.Application) (models.Application, error) {
	return models.Application{}, common.ErrUnavailable
}

func (unavailableRemote) Applications(context.Context) ([]models.Application, error) {
	return nil, common.ErrUnavailable
}

func (unavailableRemote) ApplicationsByStudent(context.Context, string) ([]models.Application, error) {
	return nil, common.ErrUnavailable
}

func (unavailableRemote) ApplicationsByCompany(context.Context, string) ([]models.Application, error) {
	return nil, common.ErrUnavailable
}

func (unavailableRemote) UpdateApplicationStatus(context.Context, string, models.ApplicationStatus) (models.Application, error) {
	return models.Application{}, common.ErrUnavailable
}

func (unavailableRemote) SavedInternships(context.Context, string) ([]string, error) {
	return nil, common.ErrUnavailable
}

func (unavailableRemote) SaveInternship(context.Context, string, string) error {
	return common.ErrUnavailable
}

func (unavailableRemote) UnsaveInternship(context.Context, string, string) error {
	return common.ErrUnavailable
}

func (unavailableRemote) SendMessage(context.Context, models.Message) error {
	return common.ErrUnavailable
}

func (unavailableRemote) MessagesForUser(context.Context, string) ([]models.Message, error) {
	return nil, common.ErrUnavailable
}

func (unavailableRemote) MarkMessageRead(context.Context, string) error {
	return common.ErrUnavailable
}

func (unavailableRemote) UnreadCount(context.Context, string) (int, error) {
	return 0, common.ErrUnavailable
}

func (unavailableRemote) ExtractSkills(context.Context, string) ([]string, error) {
	return nil, common.ErrUnavailable
}

func (unavailableRemote) ResumeUploadURL(context.Context) (string, string, error) {
	return "", "", common.ErrUnavailable
}

func (unavailableRemote) ResumeDownloadURL(context.Context, string) (string, error) {
	return "", common.ErrUnavailable
}

func (unavailableRemote) UploadResume(context.Context, string, []byte) error {
	return common.ErrUnavailable
}

// listingRemote serves a fixed listing set and counts fetches.
type listingRemote struct {
	unavailableRemote
	listings []models.Internship
	fetches  int
}

func (r *listingRemote) Internships(context.Context) ([]models.Internship, error) {
	r.fetches++
	return append([]models.Internship(nil), r.listings...), nil
}
