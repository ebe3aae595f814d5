package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rizkylsmp/portfolio-server/internal/middleware"
	"github.com/rizkylsmp/portfolio-server/internal/models"
	"github.com/rizkylsmp/portfolio-server/internal/service"
)

// nopFlush satisfies service.FlushScheduler without doing anything.
type nopFlush struct{}

func (nopFlush) Schedule() {}

// fakeSessions accepts exactly one token.
type fakeSessions struct {
	valid string
}

func (f fakeSessions) IsAuthenticated(token string) bool {
	return token != "" && token == f.valid
}

const routerSeed = `{
  "profile": {"name": "Test Person", "position": "Developer"},
  "skills": [
    {"name": "JavaScript", "src": "/js.svg", "alt": "js", "order": 0}
  ],
  "experiences": [
    {"company": "First Corp", "position": "Engineer"}
  ],
  "projects": [
    {"title": "Site", "category": "website"},
    {"title": "Game", "category": "game"}
  ],
  "certificates": [
    {"title": "Cert A"}
  ],
  "contact": {"heading": "Get In Touch"}
}`

const testToken = "test-session-token"

func newTestRouter(t *testing.T, save *SaveHandler) (http.Handler, *service.ContentService) {
	t.Helper()

	store, err := service.NewContentService([]byte(routerSeed), nopFlush{})
	require.NoError(t, err)

	authHandler := &AuthHandler{Auth: &fakeAuthGate{}, Validate: validator.New()}
	contentHandler := &ContentHandler{Store: store}

	router := NewRouter(authHandler, contentHandler, save,
		fakeSessions{valid: testToken}, "", zap.NewNop())
	return router, store
}

func jsonReq(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func adminReq(method, target, body string) *http.Request {
	req := jsonReq(method, target, body)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: testToken})
	return req
}

func TestPublicPortfolio(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonReq(http.MethodGet, "/api/portfolio", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "Test Person", snap.Profile.Name)
	assert.Len(t, snap.Skills, 1)
	assert.Len(t, snap.Projects, 2)
	require.NotNil(t, snap.Contact)
}

func TestPublicProjectsFilter(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonReq(http.MethodGet, "/api/projects?category=game", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var projects []models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "Game", projects[0].Title)
}

func TestAdminRequiresSession(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	// No cookie.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonReq(http.MethodPut, "/api/admin/profile", `{"name":"X"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong token.
	req := jsonReq(http.MethodPut, "/api/admin/profile", `{"name":"X"}`)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "stale"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Active session.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodPut, "/api/admin/profile", `{"name":"X"}`))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContentTypeEnforced(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/skills", strings.NewReader("name=Go"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: testToken})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestSkillCRUD(t *testing.T) {
	router, store := newTestRouter(t, nil)

	// Create: client-supplied id is ignored, a fresh one is minted.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodPost, "/api/admin/skills",
		`{"id":"client-id","name":"Go","src":"/go.svg","alt":"go","order":1}`))
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Skill
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "client-id", created.ID)
	assert.Equal(t, "Go", created.Name)

	// Partial update touches only the patched field.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodPut, "/api/admin/skills/"+created.ID,
		`{"order":5}`))
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Skill
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 5, updated.Order)
	assert.Equal(t, "Go", updated.Name)

	// Unknown id.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodPut, "/api/admin/skills/unknown", `{"order":1}`))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Delete, then delete again.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodDelete, "/api/admin/skills/"+created.ID, ""))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodDelete, "/api/admin/skills/"+created.ID, ""))
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Len(t, store.Skills(), 1)
}

func TestReorderSkills(t *testing.T) {
	router, store := newTestRouter(t, nil)
	skills := store.Skills()
	skills[0].Order = 7

	body, err := json.Marshal(skills)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodPut, "/api/admin/skills/order", string(body)))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 7, store.Skills()[0].Order)
}

func TestExperienceCRUD(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodPost, "/api/admin/experiences",
		`{"company":"Second Corp","position":"Intern","skills":["Go"]}`))
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Experience
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.NotZero(t, created.CreatedAt)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodPut, "/api/admin/experiences/"+created.ID,
		`{"position":"Engineer"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Experience
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Engineer", updated.Position)
	assert.Equal(t, []string{"Go"}, updated.Skills)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodDelete, "/api/admin/experiences/"+created.ID, ""))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestExportAndImport(t *testing.T) {
	router, store := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodGet, "/api/admin/export", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="portfolio-export.json"`,
		w.Header().Get("Content-Disposition"))
	exported := w.Body.String()
	assert.Contains(t, exported, `"exportedAt"`)

	// A malformed payload is rejected and changes nothing.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodPost, "/api/admin/import", `{"skills": 42}`))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid import file")
	assert.Len(t, store.Skills(), 1)

	// Re-importing the export round-trips.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodPost, "/api/admin/import", exported))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.Skills(), 1)
}

func TestResetData(t *testing.T) {
	router, store := newTestRouter(t, nil)
	store.AddSkill(models.Skill{Name: "Go", Order: 2})
	require.Len(t, store.Skills(), 2)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminReq(http.MethodPost, "/api/admin/reset", ""))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, store.Skills(), 1)
}

func TestSavePortfolioDevOnly(t *testing.T) {
	// Not mounted without a save handler.
	router, _ := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonReq(http.MethodPost, "/api/save-portfolio", `{"skills":[]}`))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Mounted in development: writes the data file.
	path := filepath.Join(t.TempDir(), "portfolio.json")
	router, _ = newTestRouter(t, &SaveHandler{Path: path, Log: zap.NewNop()})

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonReq(http.MethodPost, "/api/save-portfolio", `{"skills":[{"name":"Go"}]}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Data saved to portfolio.json")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Go")

	// Invalid JSON never reaches the file.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonReq(http.MethodPost, "/api/save-portfolio", `{broken`))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid JSON data")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(after))
}
