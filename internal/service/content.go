package service

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rizkylsmp/portfolio-server/internal/models"
)

// ContentService holds the authoritative in-memory working copy of all
// portfolio content. It is seeded once from the bundled snapshot; every
// mutation schedules a debounced best-effort flush through the FlushScheduler.
// Reads return copies sorted by each kind's natural order. The store never
// validates field contents; that is the caller's contract.
type ContentService struct {
	flush FlushScheduler
	now   func() time.Time

	mu           sync.Mutex
	seed         []byte
	profile      *models.Profile
	skills       []models.Skill
	experiences  []models.Experience
	projects     []models.Project
	certificates []models.Certificate
	contact      *models.ContactConfig
}

// NewContentService parses the bundled snapshot and builds the store.
// seed is retained verbatim so ResetAll can return to it.
func NewContentService(seed []byte, flush FlushScheduler) (*ContentService, error) {
	s := &ContentService{flush: flush, now: time.Now, seed: seed}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadSeedLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadSeedLocked reinitializes every collection from the seed bytes. List
// entities in the canonical file carry no ids or timestamps: ids are minted
// fresh and timestamps reconstructed as now minus one second per position, so
// file order survives the newest-first display sort.
func (s *ContentService) loadSeedLocked() error {
	var snap models.Snapshot
	if err := json.Unmarshal(s.seed, &snap); err != nil {
		return fmt.Errorf("parse bundled snapshot: %w", err)
	}

	now := s.now().UnixMilli()
	for i := range snap.Skills {
		if snap.Skills[i].ID == "" {
			snap.Skills[i].ID = s.generateID()
		}
	}
	for i := range snap.Experiences {
		e := &snap.Experiences[i]
		if e.ID == "" {
			e.ID = s.generateID()
		}
		if e.CreatedAt == 0 {
			e.CreatedAt = now - int64(i)*1000
		}
		if e.UpdatedAt == 0 {
			e.UpdatedAt = e.CreatedAt
		}
	}
	for i := range snap.Projects {
		p := &snap.Projects[i]
		if p.ID == "" {
			p.ID = s.generateID()
		}
		if p.CreatedAt == 0 {
			p.CreatedAt = now - int64(i)*1000
		}
		if p.UpdatedAt == 0 {
			p.UpdatedAt = p.CreatedAt
		}
	}
	for i := range snap.Certificates {
		c := &snap.Certificates[i]
		if c.ID == "" {
			c.ID = s.generateID()
		}
		if c.CreatedAt == 0 {
			c.CreatedAt = now - int64(i)*1000
		}
		if c.UpdatedAt == 0 {
			c.UpdatedAt = c.CreatedAt
		}
	}

	s.profile = snap.Profile
	s.skills = snap.Skills
	s.experiences = snap.Experiences
	s.projects = snap.Projects
	s.certificates = snap.Certificates
	s.contact = snap.Contact
	return nil
}

// generateID returns a time-prefixed identifier: base-36 unix milliseconds
// plus a random suffix. Unique enough for a single-operator store; ids are
// never reused within a process lifetime.
func (s *ContentService) generateID() string {
	suffix := make([]byte, 5)
	_, _ = rand.Read(suffix)
	return strconv.FormatInt(s.now().UnixMilli(), 36) + hex.EncodeToString(suffix)
}

// ---- Profile (singleton) ----

// Profile returns a copy of the profile, or nil if the seed had none.
func (s *ContentService) Profile() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// SaveProfile replaces the whole profile. Singletons have no partial update.
func (s *ContentService) SaveProfile(p models.Profile) {
	s.mu.Lock()
	s.profile = &p
	s.mu.Unlock()
	s.flush.Schedule()
}

// ---- Contact config (singleton) ----

// Contact returns a copy of the contact configuration, or nil.
func (s *ContentService) Contact() *models.ContactConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contact == nil {
		return nil
	}
	c := *s.contact
	return &c
}

// SaveContact replaces the whole contact configuration.
func (s *ContentService) SaveContact(c models.ContactConfig) {
	s.mu.Lock()
	s.contact = &c
	s.mu.Unlock()
	s.flush.Schedule()
}

// ---- Skills ----

// Skills returns a copy of all skills sorted by ascending order value.
// Equal order values keep insertion order.
func (s *ContentService) Skills() []models.Skill {
	s.mu.Lock()
	out := make([]models.Skill, len(s.skills))
	copy(out, s.skills)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Skill returns a copy of the skill with the given id, or nil.
func (s *ContentService) Skill(id string) *models.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.skills {
		if s.skills[i].ID == id {
			sk := s.skills[i]
			return &sk
		}
	}
	return nil
}

// AddSkill assigns a fresh id, appends the skill, and schedules a flush.
func (s *ContentService) AddSkill(data models.Skill) models.Skill {
	data.ID = s.generateID()
	s.mu.Lock()
	s.skills = append(s.skills, data)
	s.mu.Unlock()
	s.flush.Schedule()
	return data
}

// UpdateSkill shallow-merges patch into the skill with the given id.
// Returns nil when no skill has that id.
func (s *ContentService) UpdateSkill(id string, patch models.SkillPatch) *models.Skill {
	s.mu.Lock()
	var updated *models.Skill
	for i := range s.skills {
		if s.skills[i].ID != id {
			continue
		}
		sk := &s.skills[i]
		if patch.Name != nil {
			sk.Name = *patch.Name
		}
		if patch.Src != nil {
			sk.Src = *patch.Src
		}
		if patch.Alt != nil {
			sk.Alt = *patch.Alt
		}
		if patch.Order != nil {
			sk.Order = *patch.Order
		}
		out := *sk
		updated = &out
		break
	}
	s.mu.Unlock()

	if updated == nil {
		return nil
	}
	s.flush.Schedule()
	return updated
}

// DeleteSkill removes the skill with the given id, reporting whether it
// existed. Unknown ids are a normal no-op outcome.
func (s *ContentService) DeleteSkill(id string) bool {
	s.mu.Lock()
	removed := false
	for i := range s.skills {
		if s.skills[i].ID == id {
			s.skills = append(s.skills[:i], s.skills[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.flush.Schedule()
	}
	return removed
}

// ReorderSkills replaces the whole skill collection, typically after the
// admin drags entries into a new order.
func (s *ContentService) ReorderSkills(skills []models.Skill) {
	s.mu.Lock()
	s.skills = append([]models.Skill(nil), skills...)
	s.mu.Unlock()
	s.flush.Schedule()
}

// ---- Experiences ----

// Experiences returns a copy of all experiences, newest first.
func (s *ContentService) Experiences() []models.Experience {
	s.mu.Lock()
	out := make([]models.Experience, len(s.experiences))
	copy(out, s.experiences)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out
}

// Experience returns a copy of the experience with the given id, or nil.
func (s *ContentService) Experience(id string) *models.Experience {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.experiences {
		if s.experiences[i].ID == id {
			e := s.experiences[i]
			return &e
		}
	}
	return nil
}

// AddExperience assigns a fresh id and timestamps, appends, and schedules
// a flush.
func (s *ContentService) AddExperience(data models.Experience) models.Experience {
	now := s.now().UnixMilli()
	data.ID = s.generateID()
	data.CreatedAt = now
	data.UpdatedAt = now

	s.mu.Lock()
	s.experiences = append(s.experiences, data)
	s.mu.Unlock()
	s.flush.Schedule()
	return data
}

// UpdateExperience shallow-merges patch into the experience with the given id
// and bumps UpdatedAt. CreatedAt and the id never change. Returns nil when no
// experience has that id.
func (s *ContentService) UpdateExperience(id string, patch models.ExperiencePatch) *models.Experience {
	s.mu.Lock()
	var updated *models.Experience
	for i := range s.experiences {
		if s.experiences[i].ID != id {
			continue
		}
		e := &s.experiences[i]
		if patch.Company != nil {
			e.Company = *patch.Company
		}
		if patch.CompanyDescription != nil {
			e.CompanyDescription = *patch.CompanyDescription
		}
		if patch.Position != nil {
			e.Position = *patch.Position
		}
		if patch.Period != nil {
			e.Period = *patch.Period
		}
		if patch.Location != nil {
			e.Location = *patch.Location
		}
		if patch.Description != nil {
			e.Description = *patch.Description
		}
		if patch.CompanyLogo != nil {
			e.CompanyLogo = *patch.CompanyLogo
		}
		if patch.Image != nil {
			e.Image = *patch.Image
		}
		if patch.Responsibilities != nil {
			e.Responsibilities = patch.Responsibilities
		}
		if patch.Skills != nil {
			e.Skills = patch.Skills
		}
		if patch.Badge != nil {
			e.Badge = *patch.Badge
		}
		e.UpdatedAt = s.now().UnixMilli()
		out := *e
		updated = &out
		break
	}
	s.mu.Unlock()

	if updated == nil {
		return nil
	}
	s.flush.Schedule()
	return updated
}

// DeleteExperience removes the experience with the given id, reporting
// whether it existed.
func (s *ContentService) DeleteExperience(id string) bool {
	s.mu.Lock()
	removed := false
	for i := range s.experiences {
		if s.experiences[i].ID == id {
			s.experiences = append(s.experiences[:i], s.experiences[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.flush.Schedule()
	}
	return removed
}

// ---- Projects ----

// Projects returns a copy of all projects, newest first.
func (s *ContentService) Projects() []models.Project {
	s.mu.Lock()
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out
}

// ProjectsByCategory returns the projects in the given category, newest first.
func (s *ContentService) ProjectsByCategory(category string) []models.Project {
	all := s.Projects()
	out := make([]models.Project, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Project returns a copy of the project with the given id, or nil.
func (s *ContentService) Project(id string) *models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			p := s.projects[i]
			return &p
		}
	}
	return nil
}

// AddProject assigns a fresh id and timestamps, appends, and schedules a flush.
func (s *ContentService) AddProject(data models.Project) models.Project {
	now := s.now().UnixMilli()
	data.ID = s.generateID()
	data.CreatedAt = now
	data.UpdatedAt = now

	s.mu.Lock()
	s.projects = append(s.projects, data)
	s.mu.Unlock()
	s.flush.Schedule()
	return data
}

// UpdateProject shallow-merges patch into the project with the given id and
// bumps UpdatedAt. Returns nil when no project has that id.
func (s *ContentService) UpdateProject(id string, patch models.ProjectPatch) *models.Project {
	s.mu.Lock()
	var updated *models.Project
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		p := &s.projects[i]
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Images != nil {
			p.Images = patch.Images
		}
		if patch.TechIcons != nil {
			p.TechIcons = patch.TechIcons
		}
		if patch.Link != nil {
			p.Link = *patch.Link
		}
		if patch.ButtonText != nil {
			p.ButtonText = *patch.ButtonText
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.AOS != nil {
			p.AOS = *patch.AOS
		}
		p.UpdatedAt = s.now().UnixMilli()
		out := *p
		updated = &out
		break
	}
	s.mu.Unlock()

	if updated == nil {
		return nil
	}
	s.flush.Schedule()
	return updated
}

// DeleteProject removes the project with the given id, reporting whether it
// existed.
func (s *ContentService) DeleteProject(id string) bool {
	s.mu.Lock()
	removed := false
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.flush.Schedule()
	}
	return removed
}

// ---- Certificates ----

// Certificates returns a copy of all certificates, newest first.
func (s *ContentService) Certificates() []models.Certificate {
	s.mu.Lock()
	out := make([]models.Certificate, len(s.certificates))
	copy(out, s.certificates)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out
}

// Certificate returns a copy of the certificate with the given id, or nil.
func (s *ContentService) Certificate(id string) *models.Certificate {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.certificates {
		if s.certificates[i].ID == id {
			c := s.certificates[i]
			return &c
		}
	}
	return nil
}

// AddCertificate assigns a fresh id and timestamps, appends, and schedules
// a flush.
func (s *ContentService) AddCertificate(data models.Certificate) models.Certificate {
	now := s.now().UnixMilli()
	data.ID = s.generateID()
	data.CreatedAt = now
	data.UpdatedAt = now

	s.mu.Lock()
	s.certificates = append(s.certificates, data)
	s.mu.Unlock()
	s.flush.Schedule()
	return data
}

// UpdateCertificate shallow-merges patch into the certificate with the given
// id and bumps UpdatedAt. Returns nil when no certificate has that id.
func (s *ContentService) UpdateCertificate(id string, patch models.CertificatePatch) *models.Certificate {
	s.mu.Lock()
	var updated *models.Certificate
	for i := range s.certificates {
		if s.certificates[i].ID != id {
			continue
		}
		c := &s.certificates[i]
		if patch.Title != nil {
			c.Title = *patch.Title
		}
		if patch.Description != nil {
			c.Description = *patch.Description
		}
		if patch.Images != nil {
			c.Images = patch.Images
		}
		if patch.Count != nil {
			c.Count = *patch.Count
		}
		if patch.Color != nil {
			c.Color = *patch.Color
		}
		if patch.Category != nil {
			c.Category = *patch.Category
		}
		if patch.Icon != nil {
			c.Icon = *patch.Icon
		}
		c.UpdatedAt = s.now().UnixMilli()
		out := *c
		updated = &out
		break
	}
	s.mu.Unlock()

	if updated == nil {
		return nil
	}
	s.flush.Schedule()
	return updated
}

// DeleteCertificate removes the certificate with the given id, reporting
// whether it existed.
func (s *ContentService) DeleteCertificate(id string) bool {
	s.mu.Lock()
	removed := false
	for i := range s.certificates {
		if s.certificates[i].ID == id {
			s.certificates = append(s.certificates[:i], s.certificates[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.flush.Schedule()
	}
	return removed
}

// ---- Snapshots, export/import, reset ----

// snapshotLocked builds a full copy of the current state in insertion order.
func (s *ContentService) snapshotLocked() *models.Snapshot {
	snap := &models.Snapshot{
		Skills:       append([]models.Skill(nil), s.skills...),
		Experiences:  append([]models.Experience(nil), s.experiences...),
		Projects:     append([]models.Project(nil), s.projects...),
		Certificates: append([]models.Certificate(nil), s.certificates...),
	}
	if s.profile != nil {
		p := *s.profile
		snap.Profile = &p
	}
	if s.contact != nil {
		c := *s.contact
		snap.Contact = &c
	}
	return snap
}

// StrippedSnapshot returns the canonical wire form of the current state:
// list entities lose their ids and timestamps, which the loader reconstructs
// from array position. This is what the persistence sink receives.
func (s *ContentService) StrippedSnapshot() *models.Snapshot {
	s.mu.Lock()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	for i := range snap.Skills {
		snap.Skills[i].ID = ""
	}
	for i := range snap.Experiences {
		snap.Experiences[i].ID = ""
		snap.Experiences[i].CreatedAt = 0
		snap.Experiences[i].UpdatedAt = 0
	}
	for i := range snap.Projects {
		snap.Projects[i].ID = ""
		snap.Projects[i].CreatedAt = 0
		snap.Projects[i].UpdatedAt = 0
	}
	for i := range snap.Certificates {
		snap.Certificates[i].ID = ""
		snap.Certificates[i].CreatedAt = 0
		snap.Certificates[i].UpdatedAt = 0
	}
	return snap
}

// ExportAll serializes the full state, ids and timestamps included, together
// with an export timestamp, suitable for download and later re-import.
func (s *ContentService) ExportAll() ([]byte, error) {
	s.mu.Lock()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	out := models.Export{
		Snapshot:   *snap,
		ExportedAt: s.now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// ImportAll parses an exported document and wholesale-replaces every
// collection present in it. The parse happens entirely before any state is
// touched: a malformed payload returns false and leaves the store unchanged.
func (s *ContentService) ImportAll(data []byte) bool {
	var in models.Snapshot
	if err := json.Unmarshal(data, &in); err != nil {
		return false
	}

	s.mu.Lock()
	if in.Profile != nil {
		s.profile = in.Profile
	}
	if in.Skills != nil {
		s.skills = in.Skills
	}
	if in.Experiences != nil {
		s.experiences = in.Experiences
	}
	if in.Projects != nil {
		s.projects = in.Projects
	}
	if in.Certificates != nil {
		s.certificates = in.Certificates
	}
	if in.Contact != nil {
		s.contact = in.Contact
	}
	s.mu.Unlock()

	s.flush.Schedule()
	return true
}

// ResetAll discards every in-session mutation and re-seeds from the original
// bundled snapshot, not from whatever was last persisted. No flush is
// scheduled; the reset state reaches the sink with the next edit.
func (s *ContentService) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSeedLocked()
}
