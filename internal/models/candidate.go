package models

import (
	"time"
)

// CandidateProfile is the structured form of one uploaded resume. It is
// created once per resume and only overwritten by a re-parse; RawText keeps
// the original source so the profile is always recomputable.
type CandidateProfile struct {
	CandidateID       string    `gorm:"type:text;primaryKey" json:"candidate_id"`
	JobID             string    `gorm:"type:text;primaryKey;index" json:"job_id"`
	Name              string    `gorm:"type:text;not null" json:"name"`
	Email             string    `gorm:"type:text" json:"email,omitempty"`
	Phone             string    `gorm:"type:text" json:"phone,omitempty"`
	ExperienceYears   *int      `gorm:"type:int" json:"experience_years,omitempty"`
	ExperienceSummary string    `gorm:"type:text" json:"experience_summary"`
	Skills            []string  `gorm:"serializer:json" json:"skills"`
	Education         []string  `gorm:"serializer:json" json:"education"`
	RawText           string    `gorm:"type:text" json:"-"`
	CreatedAt         time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt         time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (CandidateProfile) TableName() string {
	return "candidate_profiles"
}
