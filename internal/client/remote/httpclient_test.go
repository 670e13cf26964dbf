package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/internova/internova/internal/common"
	"github.com/internova/internova/internal/models"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Internships(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/internships", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]models.Internship{{ID: "i1", Title: "Backend Intern"}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	got, err := c.Internships(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "i1", got[0].ID)
}

func TestHTTPClient_LoginStoresToken(t *testing.T) {
	var sawAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			_ = json.NewEncoder(w).Encode(authResponse{
				Token: "tok123",
				User:  models.Account{ID: "u1", Email: "a@b.c", Type: models.AccountTypeStudent},
			})
		case "/api/ping":
			sawAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	acc, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.Equal(t, "u1", acc.ID)

	require.NoError(t, c.Ping(context.Background()))
	require.Equal(t, "Bearer tok123", sawAuth)
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, common.ErrUnauthorized},
		{http.StatusForbidden, common.ErrUnauthorized},
		{http.StatusNotFound, common.ErrNotFound},
		{http.StatusInternalServerError, common.ErrUnavailable},
		{http.StatusBadGateway, common.ErrUnavailable},
	}

	for _, tc := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		c := NewHTTPClient(srv.URL)
		err := c.Ping(context.Background())
		require.ErrorIs(t, err, tc.want, "status %d", tc.status)
		srv.Close()
	}
}

func TestHTTPClient_ConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse subsequent connections

	c := NewHTTPClient(srv.URL)
	err := c.Ping(context.Background())
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestHTTPClient_UnreadCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/messages/unread-count", r.URL.Path)
		require.Equal(t, "x@y.z", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`{"count": 3}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	n, err := c.UnreadCount(context.Background(), "x@y.z")
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestHTTPClient_BadRequestSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"title is required"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.CreateInternship(context.Background(), models.Internship{})
	require.ErrorContains(t, err, "title is required")
}
