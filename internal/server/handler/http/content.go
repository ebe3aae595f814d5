package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rizkylsmp/portfolio-server/internal/models"
)

// maxImportSize caps import payloads at 10 MiB.
const maxImportSize = 10 << 20

// ContentStore defines the content operations required by ContentHandler.
type ContentStore interface {
	Profile() *models.Profile
	SaveProfile(models.Profile)
	Contact() *models.ContactConfig
	SaveContact(models.ContactConfig)

	Skills() []models.Skill
	Skill(id string) *models.Skill
	AddSkill(models.Skill) models.Skill
	UpdateSkill(id string, patch models.SkillPatch) *models.Skill
	DeleteSkill(id string) bool
	ReorderSkills([]models.Skill)

	Experiences() []models.Experience
	Experience(id string) *models.Experience
	AddExperience(models.Experience) models.Experience
	UpdateExperience(id string, patch models.ExperiencePatch) *models.Experience
	DeleteExperience(id string) bool

	Projects() []models.Project
	ProjectsByCategory(category string) []models.Project
	Project(id string) *models.Project
	AddProject(models.Project) models.Project
	UpdateProject(id string, patch models.ProjectPatch) *models.Project
	DeleteProject(id string) bool

	Certificates() []models.Certificate
	Certificate(id string) *models.Certificate
	AddCertificate(models.Certificate) models.Certificate
	UpdateCertificate(id string, patch models.CertificatePatch) *models.Certificate
	DeleteCertificate(id string) bool

	ExportAll() ([]byte, error)
	ImportAll([]byte) bool
	ResetAll() error
}

// ContentHandler handles HTTP requests for portfolio content, both the public
// read surface and the session-guarded admin CRUD.
type ContentHandler struct {
	Store ContentStore
}

// Portfolio serves the full portfolio in display order.
func (h *ContentHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Snapshot{
		Profile:      h.Store.Profile(),
		Skills:       h.Store.Skills(),
		Experiences:  h.Store.Experiences(),
		Projects:     h.Store.Projects(),
		Certificates: h.Store.Certificates(),
		Contact:      h.Store.Contact(),
	})
}

// Projects serves all projects, optionally filtered with ?category=website|game.
func (h *ContentHandler) Projects(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		writeJSON(w, http.StatusOK, h.Store.ProjectsByCategory(category))
		return
	}
	writeJSON(w, http.StatusOK, h.Store.Projects())
}

// ---- Singletons ----

// SaveProfile replaces the whole profile.
func (h *ContentHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	h.Store.SaveProfile(p)
	writeJSON(w, http.StatusOK, p)
}

// SaveContact replaces the whole contact configuration.
func (h *ContentHandler) SaveContact(w http.ResponseWriter, r *http.Request) {
	var c models.ContactConfig
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	h.Store.SaveContact(c)
	writeJSON(w, http.StatusOK, c)
}

// ---- Skills ----

// CreateSkill adds a skill; the id in the payload, if any, is ignored.
func (h *ContentHandler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var data models.Skill
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, h.Store.AddSkill(data))
}

// UpdateSkill merges a partial update into an existing skill.
func (h *ContentHandler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	var patch models.SkillPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	updated := h.Store.UpdateSkill(chi.URLParam(r, "id"), patch)
	if updated == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteSkill removes a skill.
func (h *ContentHandler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	if !h.Store.DeleteSkill(chi.URLParam(r, "id")) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderSkills replaces the whole skill list with the submitted order.
func (h *ContentHandler) ReorderSkills(w http.ResponseWriter, r *http.Request) {
	var skills []models.Skill
	if err := json.NewDecoder(r.Body).Decode(&skills); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	h.Store.ReorderSkills(skills)
	w.WriteHeader(http.StatusNoContent)
}

// ---- Experiences ----

// CreateExperience adds an experience entry.
func (h *ContentHandler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	var data models.Experience
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, h.Store.AddExperience(data))
}

// UpdateExperience merges a partial update into an existing experience.
func (h *ContentHandler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	var patch models.ExperiencePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	updated := h.Store.UpdateExperience(chi.URLParam(r, "id"), patch)
	if updated == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteExperience removes an experience entry.
func (h *ContentHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	if !h.Store.DeleteExperience(chi.URLParam(r, "id")) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Projects ----

// CreateProject adds a project entry.
func (h *ContentHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var data models.Project
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, h.Store.AddProject(data))
}

// UpdateProject merges a partial update into an existing project.
func (h *ContentHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var patch models.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	updated := h.Store.UpdateProject(chi.URLParam(r, "id"), patch)
	if updated == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteProject removes a project entry.
func (h *ContentHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if !h.Store.DeleteProject(chi.URLParam(r, "id")) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Certificates ----

// CreateCertificate adds a certificate entry.
func (h *ContentHandler) CreateCertificate(w http.ResponseWriter, r *http.Request) {
	var data models.Certificate
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, h.Store.AddCertificate(data))
}

// UpdateCertificate merges a partial update into an existing certificate.
func (h *ContentHandler) UpdateCertificate(w http.ResponseWriter, r *http.Request) {
	var patch models.CertificatePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	updated := h.Store.UpdateCertificate(chi.URLParam(r, "id"), patch)
	if updated == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteCertificate removes a certificate entry.
func (h *ContentHandler) DeleteCertificate(w http.ResponseWriter, r *http.Request) {
	if !h.Store.DeleteCertificate(chi.URLParam(r, "id")) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Export / import / reset ----

// Export serves the full state as a downloadable JSON file.
func (h *ContentHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.Store.ExportAll()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio-export.json"`)
	_, _ = w.Write(data)
}

// Import applies an exported document. A payload that fails to parse leaves
// the store untouched and is reported as a client error.
func (h *ContentHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if !h.Store.ImportAll(data) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid import file"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ResetData discards all in-session edits and re-seeds from the bundled
// snapshot.
func (h *ContentHandler) ResetData(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.ResetAll(); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
