package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"folio/internal/config"
	"folio/internal/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	return NewRouter(config.Config{}, store), store
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var bearer = map[string]string{"Authorization": "Bearer public-anon-key"}

func TestContactEndToEnd(t *testing.T) {
	h, _ := newTestRouter(t)

	// submit
	rec := doJSON(t, h, http.MethodPost, "/contact",
		`{"name":"A","email":"a@x.com","subject":"Hi","message":"Hello"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var submitResp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&submitResp))
	assert.True(t, submitResp.Success)
	assert.NotEmpty(t, submitResp.Message)
	require.NotEmpty(t, submitResp.ID)

	// admin list contains exactly that record with status new
	rec = doJSON(t, h, http.MethodGet, "/admin/contacts", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)

	var listResp struct {
		Contacts []map[string]any `json:"contacts"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listResp))
	require.Len(t, listResp.Contacts, 1)
	got := listResp.Contacts[0]
	assert.Equal(t, submitResp.ID, got["id"])
	assert.Equal(t, "A", got["name"])
	assert.Equal(t, "a@x.com", got["email"])
	assert.Equal(t, "Hi", got["subject"])
	assert.Equal(t, "Hello", got["message"])
	assert.Equal(t, "new", got["status"])

	// status update sets read + updatedAt
	rec = doJSON(t, h, http.MethodPut, "/admin/contacts/"+submitResp.ID, `{"status":"read"}`, bearer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updateResp struct {
		Success bool           `json:"success"`
		Contact map[string]any `json:"contact"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updateResp))
	assert.True(t, updateResp.Success)
	assert.Equal(t, "read", updateResp.Contact["status"])
	assert.NotEmpty(t, updateResp.Contact["updatedAt"])
}

func TestContactValidation(t *testing.T) {
	h, store := newTestRouter(t)

	bodies := []string{
		`{"email":"a@x.com","subject":"s","message":"m"}`,
		`{"name":"A","subject":"s","message":"m"}`,
		`{"name":"A","email":"a@x.com","message":"m"}`,
		`{"name":"A","email":"a@x.com","subject":"s"}`,
		`{"name":"  ","email":"a@x.com","subject":"s","message":"m"}`,
		`not json`,
	}
	for _, body := range bodies {
		rec := doJSON(t, h, http.MethodPost, "/contact", body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)

		var resp map[string]string
		_ = json.NewDecoder(rec.Body).Decode(&resp)
		assert.NotEmpty(t, resp["error"], "body %s", body)
	}

	// nothing was stored
	rec := doJSON(t, h, http.MethodGet, "/admin/contacts", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp struct {
		Contacts []any `json:"contacts"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listResp))
	assert.Empty(t, listResp.Contacts)

	_, err := store.Get(context.Background(), "contact_submissions")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestContactUpdateUnknownID(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := doJSON(t, h, http.MethodPut, "/admin/contacts/contact_0_missing", `{"status":"read"}`, bearer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesRequireBearer(t *testing.T) {
	h, store := newTestRouter(t)

	routes := []struct{ method, path, body string }{
		{http.MethodGet, "/admin/contacts", ""},
		{http.MethodPut, "/admin/contacts/some-id", `{"status":"read"}`},
		{http.MethodPost, "/admin/projects", `{"title":"x"}`},
		{http.MethodDelete, "/admin/projects/some-id", ""},
		{http.MethodGet, "/admin/analytics", ""},
	}

	badHeaders := []map[string]string{
		nil,
		{"Authorization": "Basic dXNlcjpwYXNz"},
		{"Authorization": "bearer lowercase-prefix"},
	}

	for _, rt := range routes {
		for _, hdr := range badHeaders {
			rec := doJSON(t, h, rt.method, rt.path, rt.body, hdr)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s headers %v", rt.method, rt.path, hdr)
		}
	}

	// rejected calls must not have written anything
	_, err := store.Get(context.Background(), "portfolio_projects")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestProjectLifecycle(t *testing.T) {
	h, _ := newTestRouter(t)

	// public list starts empty, not null
	rec := doJSON(t, h, http.MethodGet, "/projects", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"projects":[]}`, rec.Body.String())

	// create
	rec = doJSON(t, h, http.MethodPost, "/admin/projects", `{"title":"Folio","tech":["go"]}`, bearer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created struct {
		Success bool           `json:"success"`
		Project map[string]any `json:"project"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	id, _ := created.Project["id"].(string)
	require.NotEmpty(t, id)

	// update by id keeps the list at one entry
	rec = doJSON(t, h, http.MethodPost, "/admin/projects", `{"id":"`+id+`","title":"Folio v2"}`, bearer)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/projects", "", nil)
	var listResp struct {
		Projects []map[string]any `json:"projects"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listResp))
	require.Len(t, listResp.Projects, 1)
	assert.Equal(t, "Folio v2", listResp.Projects[0]["title"])

	// delete twice, both succeed
	for i := 0; i < 2; i++ {
		rec = doJSON(t, h, http.MethodDelete, "/admin/projects/"+id, "", bearer)
		require.Equal(t, http.StatusOK, rec.Code)
		var delResp struct {
			Success bool `json:"success"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&delResp))
		assert.True(t, delResp.Success)
	}

	rec = doJSON(t, h, http.MethodGet, "/projects", "", nil)
	assert.JSONEq(t, `{"projects":[]}`, rec.Body.String())
}

func TestVisitBeaconAndAnalytics(t *testing.T) {
	h, _ := newTestRouter(t)

	for i := 0; i < 3; i++ {
		rec := doJSON(t, h, http.MethodPost, "/analytics/visit",
			`{"page":"/","userAgent":"go-test","referrer":""}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	}

	rec := doJSON(t, h, http.MethodGet, "/admin/analytics", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		Analytics []struct {
			Date   string `json:"date"`
			Visits int64  `json:"visits"`
		} `json:"analytics"`
		Summary struct {
			TotalVisits     int64   `json:"totalVisits"`
			TotalContacts   int     `json:"totalContacts"`
			AvgVisitsPerDay float64 `json:"avgVisitsPerDay"`
		} `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	require.Len(t, report.Analytics, 30)
	assert.Equal(t, int64(3), report.Analytics[29].Visits)
	assert.Equal(t, int64(3), report.Summary.TotalVisits)
	assert.Equal(t, 0, report.Summary.TotalContacts)
	assert.Equal(t, float64(3)/30, report.Summary.AvgVisitsPerDay)
}

func TestHealthEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var hs struct {
		Status   string `json:"status"`
		Version  string `json:"version"`
		Services struct {
			Server   bool `json:"server"`
			Database bool `json:"database"`
		} `json:"services"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&hs))
	assert.Equal(t, "ok", hs.Status)
	assert.True(t, hs.Services.Server)
	assert.True(t, hs.Services.Database)
	assert.Equal(t, "1.0.0", hs.Version)
}

func TestCORSHeaders(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/contact", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, Authorization")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")

	// simple requests carry the origin header too
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := doJSON(t, h, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestBasePathMounting(t *testing.T) {
	store := kv.NewMemory()
	h := NewRouter(config.Config{BasePath: "/api/v1"}, store)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
