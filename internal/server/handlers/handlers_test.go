package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/internova/internova/internal/logging"
	domain "github.com/internova/internova/internal/models"
	"github.com/internova/internova/internal/server/config"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTestRouter(t *testing.T) (*gin.Engine, *memManager) {
	t.Helper()

	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	mm := newMemManager()
	h := New(nil, mm, cfg, nil, log)
	return h.Router(), mm
}

// doJSON performs a request against the router and decodes the JSON response
// into out when it is non-nil.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if out != nil && w.Code < 300 {
		require.NoError(t, json.NewDecoder(w.Body).Decode(out))
	}
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email string, accType domain.AccountType) (string, domain.Account) {
	t.Helper()

	body := map[string]any{
		"email":    email,
		"password": "pa55word",
		"name":     "Test User",
		"type":     accType,
		"company":  "Acme Robotics",
	}
	var resp authResponse
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", body, &resp)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.User.ID)
	return resp.Token, resp.User
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	_, user := registerUser(t, r, "Dana@Uni.edu", domain.AccountTypeStudent)
	require.Equal(t, "dana@uni.edu", user.Email)
	require.True(t, user.IsNewUser)

	// Same address again, different case.
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "dana@uni.edu", "password": "x", "name": "Dana", "type": "student",
	}, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	var resp authResponse
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "dana@uni.edu", "password": "pa55word",
	}, &resp)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, user.ID, resp.User.ID)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "dana@uni.edu", "password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@uni.edu", "password": "x",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/internships", "", domain.Internship{Title: "x", Company: "y"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/internships", "not-a-token", domain.Internship{Title: "x", Company: "y"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndListInternships(t *testing.T) {
	r, _ := newTestRouter(t)
	token, company := registerUser(t, r, "hr@acme.io", domain.AccountTypeCompany)

	var created domain.Internship
	w := doJSON(t, r, http.MethodPost, "/api/internships", token, domain.Internship{
		ID:      "local_int_123",
		Title:   "Backend Intern",
		Company: "Acme Robotics",
		Skills:  []string{"Go", "Go", "SQL"},
	}, &created)
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, strings.HasPrefix(created.ID, "int_"), "client-minted id must be replaced, got %q", created.ID)
	require.Equal(t, company.ID, created.CompanyID)
	require.Equal(t, domain.ListingStatusActive, created.Status)
	require.Equal(t, []string{"Go", "SQL"}, created.Skills)

	var all []domain.Internship
	w = doJSON(t, r, http.MethodGet, "/api/internships", "", nil, &all)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, all, 1)

	var mine []domain.Internship
	w = doJSON(t, r, http.MethodGet, "/api/internships/company/"+company.ID, "", nil, &mine)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mine, 1)
}

func TestUpdateInternship(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := registerUser(t, r, "hr@acme.io", domain.AccountTypeCompany)

	var created domain.Internship
	doJSON(t, r, http.MethodPost, "/api/internships", token, domain.Internship{Title: "Old", Company: "Acme"}, &created)

	newTitle := "New Title"
	var updated domain.Internship
	w := doJSON(t, r, http.MethodPatch, "/api/internships/"+created.ID, token,
		domain.InternshipUpdate{Title: &newTitle}, &updated)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "New Title", updated.Title)
	require.Equal(t, "Acme", updated.Company)

	w = doJSON(t, r, http.MethodPatch, "/api/internships/does-not-exist", token,
		domain.InternshipUpdate{Title: &newTitle}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteInternship(t *testing.T) {
	r, mm := newTestRouter(t)
	token, _ := registerUser(t, r, "hr@acme.io", domain.AccountTypeCompany)

	var created domain.Internship
	doJSON(t, r, http.MethodPost, "/api/internships", token, domain.Internship{Title: "T", Company: "C"}, &created)

	w := doJSON(t, r, http.MethodDelete, "/api/internships/"+created.ID, token, nil, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, mm.listings)
}

func TestRecommendations(t *testing.T) {
	r, mm := newTestRouter(t)

	mm.listings = []domain.Internship{
		{ID: "i1", Title: "Frontend", Skills: []string{"React"}},
		{ID: "i2", Title: "Backend", Skills: []string{"Go", "SQL"}},
		{ID: "i3", Title: "Closed Backend", Skills: []string{"Go"}, Status: domain.ListingStatusClosed},
		{ID: "i4", Title: "Data", Skills: []string{"Go", "SQL", "Docker", "Kubernetes"}},
	}

	var out []domain.Internship
	w := doJSON(t, r, http.MethodPost, "/api/internships/recommendations", "",
		map[string][]string{"skills": {"Go", "SQL"}}, &out)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, out, 2)
	// Full coverage of i2's requirements ranks it above the partial match.
	require.Equal(t, "i2", out[0].ID)
	require.Equal(t, "i4", out[1].ID)
	require.Greater(t, out[0].MatchScore, out[1].MatchScore)
}

func TestImportInternships(t *testing.T) {
	r, mm := newTestRouter(t)
	token, _ := registerUser(t, r, "hr@acme.io", domain.AccountTypeCompany)

	csv := "Role,Organization,Skills\n" +
		"Backend Intern,Acme,Go;SQL\n" +
		"Backend Intern,Acme,Go\n" +
		",Acme,Go\n"

	var res domain.ImportResult
	w := doJSON(t, r, http.MethodPost, "/api/internships/import", token, map[string]any{
		"csv_data": csv, "source": "board", "remove_dupes": true,
	}, &res)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, res.Imported)
	require.Equal(t, 1, res.Skipped)
	require.Equal(t, 1, res.Invalid)
	require.Len(t, mm.listings, 1)
	require.Equal(t, "board", mm.listings[0].Source)
}

func TestInternshipStats(t *testing.T) {
	r, mm := newTestRouter(t)

	mm.listings = []domain.Internship{
		{ID: "i1", Company: "Acme", Source: "board"},
		{ID: "i2", Company: "Acme", Source: "board", Status: domain.ListingStatusClosed},
		{ID: "i3", Company: "Globex"},
	}

	var stats domain.ImportStats
	w := doJSON(t, r, http.MethodGet, "/api/internships/stats", "", nil, &stats)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 1, stats.Closed)
	require.Equal(t, 2, stats.Companies)
}

func TestApplications(t *testing.T) {
	r, mm := newTestRouter(t)
	token, student := registerUser(t, r, "dana@uni.edu", domain.AccountTypeStudent)

	mm.listings = []domain.Internship{{ID: "i1", Title: "Backend", CompanyID: "co-9"}}

	var created domain.Application
	w := doJSON(t, r, http.MethodPost, "/api/applications", token, domain.Application{
		StudentID:    student.ID,
		InternshipID: "i1",
		StudentEmail: student.Email,
	}, &created)
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, strings.HasPrefix(created.ID, "app_"))
	require.Equal(t, domain.ApplicationStatusApplied, created.Status)
	require.Equal(t, "co-9", created.CompanyID, "company id backfilled from the listing")
	require.False(t, created.AppliedAt.IsZero())

	var mine []domain.Application
	w = doJSON(t, r, http.MethodGet, "/api/applications/student/"+student.ID, token, nil, &mine)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mine, 1)

	var byCompany []domain.Application
	w = doJSON(t, r, http.MethodGet, "/api/applications/company/co-9", token, nil, &byCompany)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, byCompany, 1)

	var updated domain.Application
	w = doJSON(t, r, http.MethodPatch, "/api/applications/"+created.ID+"/status", token,
		map[string]string{"status": "Accepted"}, &updated)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, domain.ApplicationStatusAccepted, updated.Status)

	w = doJSON(t, r, http.MethodPatch, "/api/applications/"+created.ID+"/status", token,
		map[string]string{"status": "Shortlisted"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/applications/nope/status", token,
		map[string]string{"status": "Rejected"}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSavedRoundtrip(t *testing.T) {
	r, _ := newTestRouter(t)
	token, student := registerUser(t, r, "dana@uni.edu", domain.AccountTypeStudent)

	w := doJSON(t, r, http.MethodPost, "/api/saved/"+student.ID+"/i1", token, nil, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/saved/"+student.ID+"/i1", token, nil, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var ids []string
	w = doJSON(t, r, http.MethodGet, "/api/saved/"+student.ID, token, nil, &ids)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"i1"}, ids)

	w = doJSON(t, r, http.MethodDelete, "/api/saved/"+student.ID+"/i1", token, nil, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/saved/"+student.ID, token, nil, &ids)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, ids)
}

func TestMessages(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := registerUser(t, r, "hr@acme.io", domain.AccountTypeCompany)

	var sent domain.Message
	w := doJSON(t, r, http.MethodPost, "/api/messages", token, domain.Message{
		From:    "HR@Acme.io",
		To:      "Dana@Uni.edu",
		Subject: "Interview",
		Body:    "Monday 10am",
		Type:    domain.MessageTypeInterview,
	}, &sent)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "hr@acme.io", sent.From)
	require.Equal(t, "dana@uni.edu", sent.To)
	require.False(t, sent.Read)

	var inbox []domain.Message
	w = doJSON(t, r, http.MethodGet, "/api/messages?email=dana@uni.edu", token, nil, &inbox)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, inbox, 1)

	var count struct {
		Count int `json:"count"`
	}
	w = doJSON(t, r, http.MethodGet, "/api/messages/unread-count?email=dana@uni.edu", token, nil, &count)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, count.Count)

	w = doJSON(t, r, http.MethodPatch, "/api/messages/"+sent.ID+"/read", token, nil, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/messages/unread-count?email=dana@uni.edu", token, nil, &count)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, count.Count)

	// unread counts are not exposed to anonymous callers
	w = doJSON(t, r, http.MethodGet, "/api/messages/unread-count?email=dana@uni.edu", "", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMessages_EmailRequired(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := registerUser(t, r, "hr@acme.io", domain.AccountTypeCompany)

	w := doJSON(t, r, http.MethodGet, "/api/messages", token, nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/messages/unread-count", token, nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	r, mm := newTestRouter(t)
	token, student := registerUser(t, r, "dana@uni.edu", domain.AccountTypeStudent)

	var updated domain.Account
	w := doJSON(t, r, http.MethodPatch, "/api/users/"+student.ID+"/profile", token,
		domain.Profile{University: "State U", Skills: []string{"Go"}}, &updated)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "State U", updated.Profile.University)

	// A later partial update keeps untouched fields.
	w = doJSON(t, r, http.MethodPatch, "/api/users/"+student.ID+"/profile", token,
		domain.Profile{Bio: "Hello"}, &updated)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "State U", updated.Profile.University)
	require.Equal(t, "Hello", updated.Profile.Bio)
	require.Equal(t, []string{"Go"}, updated.Profile.Skills)

	w = doJSON(t, r, http.MethodPatch, "/api/users/someone-else/profile", token,
		domain.Profile{Bio: "x"}, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	stored, err := mm.Users(nil).GetByID(context.Background(), student.ID)
	require.NoError(t, err)
	require.Equal(t, "Hello", stored.Profile.Bio)
}

func TestExtractSkills(t *testing.T) {
	r, _ := newTestRouter(t)

	var out struct {
		Skills []string `json:"skills"`
	}
	w := doJSON(t, r, http.MethodPost, "/api/resumes/extract-skills", "", map[string]string{
		"resume_text": "Built services in Go with PostgreSQL and Docker, deployed on AWS with Git workflows.",
	}, &out)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, out.Skills, 5)

	w = doJSON(t, r, http.MethodPost, "/api/resumes/extract-skills", "", map[string]string{}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPing(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/ping", "", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
}
