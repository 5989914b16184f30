package models

import (
	"time"
)

type Recommendation string

const (
	StrongFit  Recommendation = "Strong Fit"
	PartialFit Recommendation = "Partial Fit"
	WeakFit    Recommendation = "Weak Fit"
)

type RoleLevel string

const (
	LevelIntern RoleLevel = "Intern"
	LevelJunior RoleLevel = "Junior"
	LevelMid    RoleLevel = "Mid"
	LevelSenior RoleLevel = "Senior"
	LevelLead   RoleLevel = "Lead"
)

// ScoreBreakdown holds the heuristic sub-scores. Each component and the
// final weighted score is an integer in [0,100].
type ScoreBreakdown struct {
	SkillsScore     int `json:"skills_score"`
	ExperienceScore int `json:"experience_score"`
	EducationScore  int `json:"education_score"`
	FinalScore      int `json:"final_score"`
}

// EvaluationResult is the full evaluation of one candidate against one job.
// It is keyed by (job_id, candidate_id) and overwritten on every evaluate
// call. Degraded is set when AI commentary could not be obtained and only
// the heuristic scores are authoritative.
type EvaluationResult struct {
	JobID                 string         `json:"job_id"`
	CandidateID           string         `json:"candidate_id"`
	CandidateName         string         `json:"candidate_name"`
	RoleLevel             RoleLevel      `json:"role_level"`
	Scores                ScoreBreakdown `json:"scores"`
	MatchedSkills         []string       `json:"matched_skills"`
	MatchedOptionalSkills []string       `json:"matched_optional_skills,omitempty"`
	MissingSkills         []string       `json:"missing_skills"`
	Strengths             []string       `json:"strengths"`
	Weaknesses            []string       `json:"weaknesses"`
	Summary               string         `json:"summary"`
	Recommendation        Recommendation `json:"recommendation"`
	ConfidenceNote        string         `json:"confidence_note"`
	Degraded              bool           `json:"degraded,omitempty"`
	EvaluatedAt           time.Time      `json:"evaluated_at"`
}
