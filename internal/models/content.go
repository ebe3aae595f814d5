// Package models defines the portfolio content entities and their wire shapes.
package models

// SocialMedia is a single social-media entry on the profile.
type SocialMedia struct {
	// Type identifies the platform ("email", "whatsapp", "linkedin", "github", ...).
	Type string `json:"type"`
	// URL is the full link to the profile or contact address.
	URL string `json:"url"`
}

// Profile is the singleton identity block shown on the landing page.
type Profile struct {
	Name        string        `json:"name"`
	Position    string        `json:"position"`
	Description string        `json:"description"`
	Photo       string        `json:"photo"`
	SocialMedia []SocialMedia `json:"socialMedia"`
	ResumeURL   string        `json:"resumeUrl"`
	ResumeLabel string        `json:"resumeLabel"`
}

// Skill is one entry in the skills grid. Order controls display sorting;
// it is not required to be unique, ties keep insertion order.
type Skill struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Order int    `json:"order"`
}

// Responsibility is a single bullet inside an experience entry.
type Responsibility struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Experience is one work-experience entry. CreatedAt/UpdatedAt are unix
// milliseconds; both are bookkeeping fields stripped from the canonical file.
type Experience struct {
	ID                 string           `json:"id,omitempty"`
	Company            string           `json:"company"`
	CompanyDescription string           `json:"companyDescription"`
	Position           string           `json:"position"`
	Period             string           `json:"period"`
	Location           string           `json:"location"`
	Description        string           `json:"description"`
	CompanyLogo        string           `json:"companyLogo"`
	Image              string           `json:"image"`
	Responsibilities   []Responsibility `json:"responsibilities"`
	Skills             []string         `json:"skills"`
	Badge              string           `json:"badge"`
	CreatedAt          int64            `json:"createdAt,omitempty"`
	UpdatedAt          int64            `json:"updatedAt,omitempty"`
}

// ProjectCategory defines the set of valid project categories.
type ProjectCategory string

const (
	// CategoryWebsite marks web projects.
	CategoryWebsite ProjectCategory = "website"
	// CategoryGame marks game projects.
	CategoryGame ProjectCategory = "game"
)

// Project is one portfolio project entry.
type Project struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	TechIcons   []string `json:"techIcons"`
	Link        string   `json:"link"`
	ButtonText  string   `json:"buttonText"`
	// Category is "website" or "game".
	Category  string `json:"category"`
	AOS       string `json:"aos"`
	CreatedAt int64  `json:"createdAt,omitempty"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}

// Certificate is one certificate entry. Count mirrors the number of non-empty
// images; keeping them in sync is the editor's responsibility.
type Certificate struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Count       int      `json:"count"`
	Color       string   `json:"color"`
	Category    string   `json:"category"`
	Icon        string   `json:"icon"`
	CreatedAt   int64    `json:"createdAt,omitempty"`
	UpdatedAt   int64    `json:"updatedAt,omitempty"`
}

// ContactLink is one entry on the contact page.
type ContactLink struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Href        string `json:"href"`
	Color       string `json:"color"`
	Description string `json:"description"`
	// Category is "social" (Follow Me) or "contact" (Quick Contact).
	Category string `json:"category"`
}

// ContactConfig is the singleton configuration of the contact page.
type ContactConfig struct {
	Heading      string        `json:"heading"`
	Subheading   string        `json:"subheading"`
	ProfileImage string        `json:"profileImage"`
	ProfileName  string        `json:"profileName"`
	ProfileTitle string        `json:"profileTitle"`
	ProfileTags  []string      `json:"profileTags"`
	FooterNote   string        `json:"footerNote"`
	ContactEmail string        `json:"contactEmail"`
	Links        []ContactLink `json:"links"`
}

// Snapshot is the full portfolio document. It doubles as the canonical file
// shape: with the bookkeeping fields zeroed, omitempty drops them from the
// output, and ids/timestamps are reconstructed from array position on load.
type Snapshot struct {
	Profile      *Profile       `json:"profile"`
	Skills       []Skill        `json:"skills"`
	Experiences  []Experience   `json:"experiences"`
	Projects     []Project      `json:"projects"`
	Certificates []Certificate  `json:"certificates"`
	Contact      *ContactConfig `json:"contact"`
}

// Export wraps a snapshot with the time it was exported,
// suitable for download and later re-import.
type Export struct {
	Snapshot
	ExportedAt string `json:"exportedAt"`
}
