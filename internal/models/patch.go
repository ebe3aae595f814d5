package models

// Patch types model partial updates: nil fields keep the stored value,
// set fields overwrite it. Updates are a shallow merge; slices replace
// wholesale, they are never merged element-wise.

// SkillPatch is a partial update of a Skill.
type SkillPatch struct {
	Name  *string `json:"name"`
	Src   *string `json:"src"`
	Alt   *string `json:"alt"`
	Order *int    `json:"order"`
}

// ExperiencePatch is a partial update of an Experience.
type ExperiencePatch struct {
	Company            *string          `json:"company"`
	CompanyDescription *string          `json:"companyDescription"`
	Position           *string          `json:"position"`
	Period             *string          `json:"period"`
	Location           *string          `json:"location"`
	Description        *string          `json:"description"`
	CompanyLogo        *string          `json:"companyLogo"`
	Image              *string          `json:"image"`
	Responsibilities   []Responsibility `json:"responsibilities"`
	Skills             []string         `json:"skills"`
	Badge              *string          `json:"badge"`
}

// ProjectPatch is a partial update of a Project.
type ProjectPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Images      []string `json:"images"`
	TechIcons   []string `json:"techIcons"`
	Link        *string  `json:"link"`
	ButtonText  *string  `json:"buttonText"`
	Category    *string  `json:"category"`
	AOS         *string  `json:"aos"`
}

// CertificatePatch is a partial update of a Certificate.
type CertificatePatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Images      []string `json:"images"`
	Count       *int     `json:"count"`
	Color       *string  `json:"color"`
	Category    *string  `json:"category"`
	Icon        *string  `json:"icon"`
}
