package models

import (
	"time"
)

type JobDescription struct {
	ID                    string    `gorm:"type:text;primaryKey" json:"job_id"`
	Title                 string    `gorm:"type:text;not null" json:"title"`
	Description           string    `gorm:"type:text" json:"description"`
	MandatorySkills       []string  `gorm:"serializer:json" json:"mandatory_skills"`
	OptionalSkills        []string  `gorm:"serializer:json" json:"optional_skills"`
	MinExperienceYears    *int      `gorm:"type:int" json:"min_experience_years,omitempty"`
	EducationRequirements string    `gorm:"type:text" json:"education_requirements,omitempty"`
	CreatedAt             time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt             time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (JobDescription) TableName() string {
	return "job_descriptions"
}
