package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type JobRequest struct {
	JobID                 string   `json:"job_id"`
	Title                 string   `json:"title" validate:"required"`
	Description           string   `json:"description" validate:"required"`
	MandatorySkills       []string `json:"mandatory_skills"`
	OptionalSkills        []string `json:"optional_skills"`
	MinExperienceYears    *int     `json:"min_experience_years" validate:"omitempty,gte=0"`
	EducationRequirements string   `json:"education_requirements"`
}

func (r *JobRequest) Validate() error {
	return validate.Struct(r)
}

type ResumeRequest struct {
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name" validate:"required"`
	ResumeText    string `json:"resume_text" validate:"required"`
}

func (r *ResumeRequest) Validate() error {
	return validate.Struct(r)
}

type BulkResumeRequest struct {
	Resumes []ResumeRequest `json:"resumes" validate:"required,min=1,max=50,dive"`
}

func (r *BulkResumeRequest) Validate() error {
	return validate.Struct(r)
}

type EvaluateRequest struct {
	JobID        string   `json:"job_id" validate:"required"`
	CandidateIDs []string `json:"candidate_ids"`
}

func (r *EvaluateRequest) Validate() error {
	return validate.Struct(r)
}

type CompareRequest struct {
	JobID        string   `json:"job_id" validate:"required"`
	CandidateIDs []string `json:"candidate_ids" validate:"required,min=2"`
}

func (r *CompareRequest) Validate() error {
	return validate.Struct(r)
}

type UploadResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	JobID       string `json:"job_id,omitempty"`
	CandidateID string `json:"candidate_id,omitempty"`
	Count       int    `json:"count,omitempty"`
}

// EvaluationResponse wraps the ranked per-candidate results for a job.
type EvaluationResponse struct {
	JobID           string             `json:"job_id"`
	JobTitle        string             `json:"job_title"`
	RoleLevel       RoleLevel          `json:"role_level"`
	TotalCandidates int                `json:"total_candidates"`
	EvaluatedAt     time.Time          `json:"evaluated_at"`
	Candidates      []EvaluationResult `json:"candidates"`
}

// CandidateDetailResponse is a candidate profile joined with its skill
// match against the job's requirements.
type CandidateDetailResponse struct {
	CandidateProfile
	MatchedSkills         []string `json:"matched_skills"`
	MatchedOptionalSkills []string `json:"matched_optional_skills,omitempty"`
	MissingSkills         []string `json:"missing_skills"`
	MatchPercentage       int      `json:"match_percentage"`
}

type ResultsSummary struct {
	StrongFitCount  int `json:"strong_fit_count"`
	PartialFitCount int `json:"partial_fit_count"`
	WeakFitCount    int `json:"weak_fit_count"`
	AverageScore    int `json:"average_score"`
	HighestScore    int `json:"highest_score"`
	LowestScore     int `json:"lowest_score"`
}
