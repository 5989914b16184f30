package models

import (
	"time"
)

// RankingEntry is one candidate's position in a comparison ranking.
type RankingEntry struct {
	CandidateID   string   `json:"candidate_id"`
	CandidateName string   `json:"candidate_name"`
	MatchScore    int      `json:"match_score"`
	KeyAdvantages []string `json:"key_advantages"`
	KeyGaps       []string `json:"key_gaps"`
}

// ComparisonResult ranks a set of candidates for one job. The ranking always
// contains exactly the compared candidates and BestCandidateID always names
// the first entry.
type ComparisonResult struct {
	JobID           string         `json:"job_id"`
	Ranking         []RankingEntry `json:"ranking"`
	BestCandidate   string         `json:"best_candidate"`
	BestCandidateID string         `json:"best_candidate_id"`
	Degraded        bool           `json:"degraded,omitempty"`
	ComparedAt      time.Time      `json:"compared_at"`
}
