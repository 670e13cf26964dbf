package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/internova/internova/internal/common"
	"github.com/internova/internova/internal/models"
)

const defaultTimeout = 12 * time.Second

// HTTPClient implements Client over the backend's JSON API. It keeps the
// bearer token issued at login/registration and attaches it to subsequent
// requests.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewHTTPClient returns a client for the API rooted at baseURL
// (e.g. "http://127.0.0.1:8080").
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// do performs a JSON round-trip. A nil body sends no payload; a nil out
// discards the response body. Transport failures map to ErrUnavailable,
// auth failures to ErrUnauthorized, 404 to ErrNotFound.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return common.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", common.ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("request failed: %s", apiErr.Error)
		}
		return fmt.Errorf("request failed: status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

type authResponse struct {
	Token string         `json:"token"`
	User  models.Account `json:"user"`
}

func (c *HTTPClient) Register(ctx context.Context, email, password, name string, accType models.AccountType, companyName string) (models.Account, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"name":     name,
		"type":     accType,
		"company":  companyName,
	}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return models.Account{}, err
	}
	c.token = resp.Token
	return resp.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.Account, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return models.Account{}, err
	}
	c.token = resp.Token
	return resp.User, nil
}

func (c *HTTPClient) UpdateUserProfile(ctx context.Context, userID string, profile models.Profile) error {
	path := fmt.Sprintf("/api/users/%s/profile", url.PathEscape(userID))
	return c.do(ctx, http.MethodPatch, path, profile, nil)
}

func (c *HTTPClient) Internships(ctx context.Context) ([]models.Internship, error) {
	var out []models.Internship
	if err := c.do(ctx, http.MethodGet, "/api/internships", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) InternshipsByCompany(ctx context.Context, companyID string) ([]models.Internship, error) {
	var out []models.Internship
	path := "/api/internships/company/" + url.PathEscape(companyID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateInternship(ctx context.Context, in models.Internship) (models.Internship, error) {
	var out models.Internship
	if err := c.do(ctx, http.MethodPost, "/api/internships", in, &out); err != nil {
		return models.Internship{}, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateInternship(ctx context.Context, id string, upd models.InternshipUpdate) error {
	return c.do(ctx, http.MethodPatch, "/api/internships/"+url.PathEscape(id), upd, nil)
}

func (c *HTTPClient) DeleteInternship(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/internships/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) Recommendations(ctx context.Context, skills []string) ([]models.Internship, error) {
	body := map[string][]string{"skills": skills}
	var out []models.Internship
	if err := c.do(ctx, http.MethodPost, "/api/internships/recommendations", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ImportInternships(ctx context.Context, csvData, source string, removeDupes bool) (ImportResult, error) {
	body := map[string]any{
		"csv_data":     csvData,
		"source":       source,
		"remove_dupes": removeDupes,
	}
	var out ImportResult
	if err := c.do(ctx, http.MethodPost, "/api/internships/import", body, &out); err != nil {
		return ImportResult{}, err
	}
	return out, nil
}

func (c *HTTPClient) InternshipStats(ctx context.Context) (ImportStats, error) {
	var out ImportStats
	if err := c.do(ctx, http.MethodGet, "/api/internships/stats", nil, &out); err != nil {
		return ImportStats{}, err
	}
	return out, nil
}

func (c *HTTPClient) Apply(ctx context.Context, app models.Application) (models.Application, error) {
	var out models.Application
	if err := c.do(ctx, http.MethodPost, "/api/applications", app, &out); err != nil {
		return models.Application{}, err
	}
	return out, nil
}

func (c *HTTPClient) Applications(ctx context.Context) ([]models.Application, error) {
	var out []models.Application
	if err := c.do(ctx, http.MethodGet, "/api/applications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ApplicationsByStudent(ctx context.Context, studentID string) ([]models.Application, error) {
	var out []models.Application
	path := "/api/applications/student/" + url.PathEscape(studentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ApplicationsByCompany(ctx context.Context, companyID string) ([]models.Application, error) {
	var out []models.Application
	path := "/api/applications/company/" + url.PathEscape(companyID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, error) {
	body := map[string]models.ApplicationStatus{"status": status}
	var out models.Application
	path := fmt.Sprintf("/api/applications/%s/status", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPatch, path, body, &out); err != nil {
		return models.Application{}, err
	}
	return out, nil
}

func (c *HTTPClient) SavedInternships(ctx context.Context, studentID string) ([]string, error) {
	var out []string
	path := "/api/saved/" + url.PathEscape(studentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SaveInternship(ctx context.Context, studentID, internshipID string) error {
	path := fmt.Sprintf("/api/saved/%s/%s", url.PathEscape(studentID), url.PathEscape(internshipID))
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *HTTPClient) UnsaveInternship(ctx context.Context, studentID, internshipID string) error {
	path := fmt.Sprintf("/api/saved/%s/%s", url.PathEscape(studentID), url.PathEscape(internshipID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *HTTPClient) SendMessage(ctx context.Context, msg models.Message) error {
	return c.do(ctx, http.MethodPost, "/api/messages", msg, nil)
}

func (c *HTTPClient) MessagesForUser(ctx context.Context, email string) ([]models.Message, error) {
	var out []models.Message
	path := "/api/messages?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) MarkMessageRead(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/messages/%s/read", url.PathEscape(id))
	return c.do(ctx, http.MethodPatch, path, nil, nil)
}

func (c *HTTPClient) UnreadCount(ctx context.Context, email string) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	path := "/api/messages/unread-count?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *HTTPClient) ExtractSkills(ctx context.Context, resumeText string) ([]string, error) {
	body := map[string]string{"resume_text": resumeText}
	var out struct {
		Skills []string `json:"skills"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/resumes/extract-skills", body, &out); err != nil {
		return nil, err
	}
	return out.Skills, nil
}

func (c *HTTPClient) ResumeUploadURL(ctx context.Context) (string, string, error) {
	var out struct {
		URL string `json:"url"`
		Key string `json:"key"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/resumes/upload-url", nil, &out); err != nil {
		return "", "", err
	}
	return out.URL, out.Key, nil
}

func (c *HTTPClient) ResumeDownloadURL(ctx context.Context, key string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	path := "/api/resumes/download-url?key=" + url.QueryEscape(key)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// UploadResume PUTs the file bytes to a presigned URL issued by the backend.
func (c *HTTPClient) UploadResume(ctx context.Context, presignedURL string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
