// Package models defines the Internova domain types shared by the client
// data-access layer and the reference backend: accounts, internship listings,
// applications, saved relations, and messages.
package models

import (
	"strings"
	"time"
)

// AccountType tags an account as a student or a company.
type AccountType string

const (
	AccountTypeStudent AccountType = "student"
	AccountTypeCompany AccountType = "company"
)

// Account is a registered user. The credential itself lives with the auth
// collaborator (or, for local fallback accounts, as a bcrypt hash in the
// durable store) and is never part of this struct.
type Account struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Type      AccountType `json:"type"`
	Profile   Profile     `json:"profile"`
	IsNewUser bool        `json:"is_new_user,omitempty"`
}

// Profile carries the role-specific fields of an account. Company accounts
// fill the company block, student accounts the rest; both are kept on one
// struct because applications snapshot the whole blob.
type Profile struct {
	// Company fields.
	Company     string `json:"company,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`

	// Student fields.
	University string   `json:"university,omitempty"`
	Course     string   `json:"course,omitempty"`
	Year       string   `json:"year,omitempty"`
	CGPA       string   `json:"cgpa,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Photo      string   `json:"photo,omitempty"`
	ResumeKey  string   `json:"resume_key,omitempty"`

	// Shared.
	Location string `json:"location,omitempty"`
}

// Merge overlays the non-zero fields of upd onto p and returns the result.
// Zero-valued fields of upd leave the existing value untouched, mirroring the
// original partial-profile update semantics.
func (p Profile) Merge(upd Profile) Profile {
	out := p
	if upd.Company != "" {
		out.Company = upd.Company
	}
	if upd.Description != "" {
		out.Description = upd.Description
	}
	if upd.Website != "" {
		out.Website = upd.Website
	}
	if upd.University != "" {
		out.University = upd.University
	}
	if upd.Course != "" {
		out.Course = upd.Course
	}
	if upd.Year != "" {
		out.Year = upd.Year
	}
	if upd.CGPA != "" {
		out.CGPA = upd.CGPA
	}
	if upd.Bio != "" {
		out.Bio = upd.Bio
	}
	if len(upd.Skills) > 0 {
		out.Skills = append([]string(nil), upd.Skills...)
	}
	if upd.Photo != "" {
		out.Photo = upd.Photo
	}
	if upd.ResumeKey != "" {
		out.ResumeKey = upd.ResumeKey
	}
	if upd.Location != "" {
		out.Location = upd.Location
	}
	return out
}

// WorkMode is the work arrangement of a listing.
type WorkMode string

const (
	WorkModeRemote WorkMode = "Remote"
	WorkModeOnSite WorkMode = "On-site"
	WorkModeHybrid WorkMode = "Hybrid"
)

// ListingStatus is the lifecycle state of a listing.
type ListingStatus string

const (
	ListingStatusActive ListingStatus = "Active"
	ListingStatusClosed ListingStatus = "Closed"
)

// Requirements are the optional eligibility constraints on a listing.
type Requirements struct {
	CGPA       float64  `json:"cgpa,omitempty"`
	Years      []string `json:"years,omitempty"`
	Experience string   `json:"experience,omitempty"`
}

// Internship is a posting owned by a company account. MatchScore,
// AcceptanceRate and Applicants are derived at read time and are never a
// persisted source of truth.
type Internship struct {
	ID            string        `json:"id"`
	CompanyID     string        `json:"company_id,omitempty"`
	Title         string        `json:"title"`
	Company       string        `json:"company,omitempty"`
	Location      string        `json:"location,omitempty"`
	Mode          WorkMode      `json:"type,omitempty"`
	Duration      string        `json:"duration,omitempty"`
	Stipend       string        `json:"stipend,omitempty"`
	StipendAmount int           `json:"stipend_amount,omitempty"`
	Description   string        `json:"description,omitempty"`
	Skills        []string      `json:"skills,omitempty"`
	Source        string        `json:"source,omitempty"`
	Posted        time.Time     `json:"posted,omitempty"`
	CreatedAt     time.Time     `json:"created_at,omitempty"`
	Status        ListingStatus `json:"status,omitempty"`
	Requirements  *Requirements `json:"requirements,omitempty"`

	// Derived at read time.
	MatchScore     int `json:"match_score,omitempty"`
	AcceptanceRate int `json:"acceptance_rate,omitempty"`
	Applicants     int `json:"applicants,omitempty"`
}

// Key returns the merge identity of the listing.
func (in Internship) Key() string { return in.ID }

// InternshipUpdate is a partial update; nil fields are left unchanged.
type InternshipUpdate struct {
	Title         *string        `json:"title,omitempty"`
	Company       *string        `json:"company,omitempty"`
	CompanyID     *string        `json:"company_id,omitempty"`
	Location      *string        `json:"location,omitempty"`
	Mode          *WorkMode      `json:"type,omitempty"`
	Duration      *string        `json:"duration,omitempty"`
	Stipend       *string        `json:"stipend,omitempty"`
	StipendAmount *int           `json:"stipend_amount,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Skills        []string       `json:"skills,omitempty"`
	Status        *ListingStatus `json:"status,omitempty"`
}

// ApplyTo merges the set fields of u into in.
func (u InternshipUpdate) ApplyTo(in *Internship) {
	if u.Title != nil {
		in.Title = *u.Title
	}
	if u.Company != nil {
		in.Company = *u.Company
	}
	if u.CompanyID != nil {
		in.CompanyID = *u.CompanyID
	}
	if u.Location != nil {
		in.Location = *u.Location
	}
	if u.Mode != nil {
		in.Mode = *u.Mode
	}
	if u.Duration != nil {
		in.Duration = *u.Duration
	}
	if u.Stipend != nil {
		in.Stipend = *u.Stipend
	}
	if u.StipendAmount != nil {
		in.StipendAmount = *u.StipendAmount
	}
	if u.Description != nil {
		in.Description = *u.Description
	}
	if u.Skills != nil {
		in.Skills = DedupeSkills(u.Skills)
	}
	if u.Status != nil {
		in.Status = *u.Status
	}
}

// ApplicationStatus tracks an application through review. Transitions are
// monotonic in practice: nothing moves back to Applied.
type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "Applied"
	ApplicationStatusUnderReview ApplicationStatus = "Under Review"
	ApplicationStatusAccepted    ApplicationStatus = "Accepted"
	ApplicationStatusRejected    ApplicationStatus = "Rejected"
)

// Application records a student's submission to a listing. StudentProfile,
// StudentName and StudentEmail are snapshots taken at submission time; later
// profile edits do not alter them.
type Application struct {
	ID           string            `json:"id"`
	StudentID    string            `json:"student_id"`
	InternshipID string            `json:"internship_id"`
	CompanyID    string            `json:"company_id,omitempty"`
	AppliedAt    time.Time         `json:"applied_at"`
	Status       ApplicationStatus `json:"status"`

	StudentProfile Profile `json:"student_profile"`
	StudentName    string  `json:"student_name"`
	StudentEmail   string  `json:"student_email"`
}

// Key returns the merge identity of the application.
func (a Application) Key() string { return a.ID }

// MessageType classifies a message sent to an applicant.
type MessageType string

const (
	MessageTypeMessage    MessageType = "message"
	MessageTypeInterview  MessageType = "interview"
	MessageTypeAcceptance MessageType = "acceptance"
	MessageTypeRejection  MessageType = "rejection"
)

// Message is addressed by email on both ends. Read is the only field that
// changes after creation, and only the recipient flips it.
type Message struct {
	ID           string      `json:"id"`
	From         string      `json:"from_email"`
	To           string      `json:"to_email"`
	Subject      string      `json:"subject"`
	Body         string      `json:"content"`
	Type         MessageType `json:"type"`
	InternshipID string      `json:"internship_id,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
	Read         bool        `json:"read"`
}

// Key returns the merge identity of the message.
func (m Message) Key() string { return m.ID }

// ImportResult reports the outcome of a bulk CSV import.
type ImportResult struct {
	Imported       int                 `json:"imported"`
	Skipped        int                 `json:"skipped"`
	Invalid        int                 `json:"invalid"`
	InvalidRecords []map[string]string `json:"invalid_records,omitempty"`
}

// SourceCount is a per-source listing count.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// ImportStats summarizes the stored listing corpus.
type ImportStats struct {
	Total     int           `json:"total"`
	Active    int           `json:"active"`
	Closed    int           `json:"closed"`
	Companies int           `json:"companies"`
	Sources   []SourceCount `json:"sources"`
}

// DedupeSkills removes duplicate tags, preserving order and case (tags are
// deduplicated case-sensitively as entered; no normalization is applied).
func DedupeSkills(skills []string) []string {
	if len(skills) == 0 {
		return skills
	}
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// NormalizeEmail lowercases and trims an email address. Durable-store
// account keys use this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
